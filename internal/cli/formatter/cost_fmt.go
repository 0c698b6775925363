package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/report"
	"github.com/alexanderramin/trestle/internal/wbs"
)

// FormatCostReport renders the earned-value table with a totals row and a
// legend of the performance bands.
func FormatCostReport(r *report.CostReport) string {
	var b strings.Builder
	b.WriteString(Header("Cost control"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n\n", Bold(r.ProjectName), Dim("· as of "+FormatDate(r.AsOf))))

	if len(r.Lines) == 0 {
		b.WriteString(Dim("No summary or work-package items carry a budget yet.") + "\n")
		return b.String()
	}

	headers := []string{"CODE", "TITLE", "BAC", "PV", "EV", "AC", "CV", "SV", "CPI", "SPI", "STATUS"}
	rows := make([][]string, 0, len(r.Lines)+1)
	for _, line := range r.Lines {
		rows = append(rows, costRow(line.Code, strings.Repeat("  ", max(line.Level-1, 0))+line.Title, line.Metrics))
	}
	rows = append(rows, costRow("", Bold("Project total"), r.Total))

	b.WriteString(RenderTableAligned(headers, rows, map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true, 9: true}))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		Dim("EAC"), FormatMoney(r.Total.EstimateAtCompl),
		Dim("VAC"), FormatVariance(r.Total.VarianceAtCompl),
		Dim("DONE"), RenderProgress(r.Total.PercentComplete/100, 16)))
	return b.String()
}

func costRow(code, title string, m wbs.Metrics) []string {
	return []string{
		code,
		title,
		FormatMoney(m.BudgetAtCompletion),
		FormatMoney(m.PlannedValue),
		FormatMoney(m.EarnedValue),
		FormatMoney(m.ActualCost),
		FormatVariance(m.CostVariance),
		FormatVariance(m.ScheduleVariance),
		FormatIndex(m.CPI, m.CostStatus),
		FormatIndex(m.SPI, m.ScheduleStatus),
		PerformanceIndicator(worse(m.CostStatus, m.ScheduleStatus)),
	}
}

var statusRank = map[domain.PerformanceStatus]int{
	domain.PerformanceBehind:         0,
	domain.PerformanceSlightlyBehind: 1,
	domain.PerformanceOnTarget:       2,
	domain.PerformanceExcellent:      3,
}

// worse picks the lower of the cost and schedule bands for the row pill.
func worse(a, b domain.PerformanceStatus) domain.PerformanceStatus {
	if statusRank[b] < statusRank[a] {
		return b
	}
	return a
}
