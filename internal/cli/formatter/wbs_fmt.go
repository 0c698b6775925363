package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/wbs"
)

// FormatWbsList renders items as a table; items should already be in code order.
func FormatWbsList(items []domain.WbsItem) string {
	if len(items) == 0 {
		return Dim("No WBS items.")
	}
	headers := []string{"CODE", "TITLE", "TYPE", "START", "END", "DAYS", "BUDGET", "ACTUAL", "DONE"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Code,
			strings.Repeat("  ", max(it.Level-1, 0)) + it.Title,
			WbsTypeBadge(it.Type),
			FormatDate(it.StartDate),
			FormatDate(it.EndDate),
			fmt.Sprintf("%d", it.Duration),
			FormatMoney(it.BudgetedCost),
			FormatMoney(it.ActualCost),
			FormatPercent(it.PercentComplete),
		})
	}
	return RenderTableAligned(headers, rows, map[int]bool{5: true, 6: true, 7: true, 8: true})
}

// FormatWbsTree renders the hierarchy with connectors.
func FormatWbsTree(roots []*wbs.Node) string {
	if len(roots) == 0 {
		return Dim("No WBS items.")
	}
	return RenderTree(TreeItemsFromNodes(wbs.Flatten(roots)))
}

// FormatWbsItem renders a single item card.
func FormatWbsItem(it *domain.WbsItem) string {
	var b strings.Builder
	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-8s", label)), value))
	}
	b.WriteString(StyleBold.Render(it.Code+"  "+it.Title) + "\n\n")
	field("TYPE", WbsTypeBadge(it.Type))
	field("LEVEL", fmt.Sprintf("%d", it.Level))
	field("DATES", DateRange(it.StartDate, it.EndDate, it.Duration))
	field("BUDGET", FormatMoney(it.BudgetedCost))
	field("ACTUAL", FormatMoney(it.ActualCost))
	field("DONE", RenderProgress(it.PercentComplete/100, 20))
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}
