package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/scheduler"
	"github.com/alexanderramin/trestle/internal/wbs"
	"github.com/charmbracelet/lipgloss"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project, now time.Time) string {
	if len(projects) == 0 {
		return Dim("No projects yet. Create one with `trestle project add` or `trestle import`.")
	}
	headers := []string{"ID", "NAME", "CLIENT", "STATUS", "START", "TARGET"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		target := Dim("--")
		if p.TargetDate != nil {
			target = FormatDate(*p.TargetDate) + " " + Dim(RelativeDateFrom(*p.TargetDate, now))
		}
		rows = append(rows, []string{
			p.DisplayID(),
			Bold(p.Name),
			ClientBadge(p.Client),
			ProjectStatusPill(p.Status),
			FormatDate(p.StartDate),
			target,
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}

// ProjectDetailData holds everything the project detail card shows.
type ProjectDetailData struct {
	Project      *domain.Project
	Roots        []*wbs.Node
	Dependencies int
	Total        wbs.Metrics
	Risk         *scheduler.RiskResult
	Now          time.Time
}

// FormatProjectDetail renders metadata beside the WBS tree.
func FormatProjectDetail(data ProjectDetailData) string {
	left := buildMetadataPanel(data)
	right := buildTreePanel(data.Roots)
	return RenderBox("", lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
}

func buildMetadataPanel(data ProjectDetailData) string {
	p := data.Project
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Name) + "\n")
	b.WriteString(ClientBadge(p.Client) + "\n\n")

	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-7s", label)), value))
	}
	field("STATUS", ProjectStatusPill(p.Status))
	field("ID", Dim(p.ShortID))
	field("UUID", TruncID(p.ID))
	field("START", StyleFg.Render(FormatDate(p.StartDate)))
	if p.TargetDate != nil {
		field("TARGET", StyleFg.Render(FormatDate(*p.TargetDate))+" "+Dim("("+RelativeDateFrom(*p.TargetDate, data.Now)+")"))
	}
	field("DEPS", StyleFg.Render(fmt.Sprintf("%d", data.Dependencies)))
	if data.Risk != nil {
		field("RISK", RiskPill(*data.Risk))
	}

	if !data.Total.BudgetAtCompletion.IsZero() {
		b.WriteString("\n")
		field("BAC", StyleFg.Render(FormatMoney(data.Total.BudgetAtCompletion)))
		field("AC", StyleFg.Render(FormatMoney(data.Total.ActualCost)))
		field("CPI", FormatIndex(data.Total.CPI, data.Total.CostStatus))
		field("SPI", FormatIndex(data.Total.SPI, data.Total.ScheduleStatus))
		b.WriteString(RenderProgress(data.Total.PercentComplete/100, 20) + "\n")
	}

	return lipgloss.NewStyle().Width(45).Render(b.String())
}

func buildTreePanel(roots []*wbs.Node) string {
	if len(roots) == 0 {
		return StyleDim.Render("No WBS items")
	}
	return StyleHeader.Render("WBS") + "\n\n" + RenderTree(TreeItemsFromNodes(wbs.Flatten(roots)))
}
