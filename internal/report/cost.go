// Package report assembles the cost-control view of a project and writes it
// out as a spreadsheet.
package report

import (
	"time"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/wbs"
)

// CostLine is one budget-carrying item in the cost-control view.
type CostLine struct {
	ItemID  string
	Code    string
	Title   string
	Type    domain.WbsType
	Level   int
	Metrics wbs.Metrics
}

// CostReport is the earned-value view of a whole project as of one date.
type CostReport struct {
	ProjectID   string
	ProjectName string
	AsOf        time.Time
	Lines       []CostLine
	Total       wbs.Metrics
}

// BuildCostReport computes per-item metrics for summary and work-package
// items, ordered by WBS code, plus the rolled-up project total.
func BuildCostReport(project *domain.Project, items []domain.WbsItem, asOf time.Time) *CostReport {
	sorted := append([]domain.WbsItem(nil), items...)
	wbs.SortByCode(sorted)

	r := &CostReport{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		AsOf:        asOf,
	}
	for _, item := range sorted {
		if !item.BudgetCarrying() {
			continue
		}
		r.Lines = append(r.Lines, CostLine{
			ItemID:  item.ID,
			Code:    item.Code,
			Title:   item.Title,
			Type:    item.Type,
			Level:   item.Level,
			Metrics: wbs.ComputeMetrics(item, asOf),
		})
	}
	r.Total = wbs.RollupAll(wbs.BuildHierarchy(sorted), asOf)
	return r
}
