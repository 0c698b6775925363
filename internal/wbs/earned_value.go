package wbs

import (
	"time"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/shopspring/decimal"
)

// Performance bands shared by CPI and SPI.
const (
	ExcellentThreshold      = 1.05
	OnTargetThreshold       = 1.0
	SlightlyBehindThreshold = 0.95
)

var hundred = decimal.NewFromInt(100)

// EarnedValue is the budgeted cost of the work performed.
func EarnedValue(budgetedCost decimal.Decimal, percentComplete float64) decimal.Decimal {
	return budgetedCost.Mul(decimal.NewFromFloat(percentComplete)).Div(hundred)
}

// CPI is the cost performance index. It is 1 when nothing has been spent.
func CPI(earnedValue, actualCost decimal.Decimal) float64 {
	if actualCost.IsZero() {
		return 1
	}
	return earnedValue.Div(actualCost).InexactFloat64()
}

// SPI is the schedule performance index. It is 1 when nothing was planned.
func SPI(earnedValue, plannedValue decimal.Decimal) float64 {
	if plannedValue.IsZero() {
		return 1
	}
	return earnedValue.Div(plannedValue).InexactFloat64()
}

// PerformanceStatus bands a CPI or SPI value.
func PerformanceStatus(index float64) domain.PerformanceStatus {
	switch {
	case index >= ExcellentThreshold:
		return domain.PerformanceExcellent
	case index >= OnTargetThreshold:
		return domain.PerformanceOnTarget
	case index >= SlightlyBehindThreshold:
		return domain.PerformanceSlightlyBehind
	default:
		return domain.PerformanceBehind
	}
}

// StatusColor returns the hex colour used to render a performance band.
func StatusColor(status domain.PerformanceStatus) string {
	switch status {
	case domain.PerformanceExcellent:
		return "#8ec07c"
	case domain.PerformanceOnTarget:
		return "#83a598"
	case domain.PerformanceSlightlyBehind:
		return "#fabd2f"
	case domain.PerformanceBehind:
		return "#fb4934"
	default:
		return "#928374"
	}
}

// PlannedValue is the share of the budget scheduled to be done by asOf,
// assuming linear spend between StartDate and EndDate.
func PlannedValue(item domain.WbsItem, asOf time.Time) decimal.Decimal {
	if asOf.Before(item.StartDate) {
		return decimal.Zero
	}
	if !asOf.Before(item.EndDate) {
		return item.BudgetedCost
	}
	total := item.EndDate.Sub(item.StartDate)
	elapsed := asOf.Sub(item.StartDate)
	fraction := decimal.NewFromInt(int64(elapsed)).Div(decimal.NewFromInt(int64(total)))
	return item.BudgetedCost.Mul(fraction)
}

// Metrics is the earned-value picture of one item or subtree.
type Metrics struct {
	BudgetAtCompletion decimal.Decimal
	ActualCost         decimal.Decimal
	EarnedValue        decimal.Decimal
	PlannedValue       decimal.Decimal
	CostVariance       decimal.Decimal
	ScheduleVariance   decimal.Decimal
	CPI                float64
	SPI                float64
	EstimateAtCompl    decimal.Decimal
	VarianceAtCompl    decimal.Decimal
	PercentComplete    float64
	CostStatus         domain.PerformanceStatus
	ScheduleStatus     domain.PerformanceStatus
}

// ComputeMetrics derives the full metric set for a single item.
func ComputeMetrics(item domain.WbsItem, asOf time.Time) Metrics {
	return buildMetrics(
		item.BudgetedCost,
		item.ActualCost,
		EarnedValue(item.BudgetedCost, item.PercentComplete),
		PlannedValue(item, asOf),
	)
}

// Rollup sums a subtree's metrics bottom-up. A node with budget-carrying
// descendants takes their totals and ignores its own budget, so summary
// budgets are not double counted. A budget-carrying leaf contributes its
// own figures; activities contribute nothing.
func Rollup(node *Node, asOf time.Time) Metrics {
	bac, ac, ev, pv := rollupSums(node, asOf)
	return buildMetrics(bac, ac, ev, pv)
}

func rollupSums(node *Node, asOf time.Time) (bac, ac, ev, pv decimal.Decimal) {
	var fromChildren bool
	for _, child := range node.Children {
		if !subtreeCarriesBudget(child) {
			continue
		}
		fromChildren = true
		cb, ca, ce, cp := rollupSums(child, asOf)
		bac, ac, ev, pv = bac.Add(cb), ac.Add(ca), ev.Add(ce), pv.Add(cp)
	}
	if fromChildren || !node.Item.BudgetCarrying() {
		return bac, ac, ev, pv
	}
	item := node.Item
	return item.BudgetedCost, item.ActualCost,
		EarnedValue(item.BudgetedCost, item.PercentComplete),
		PlannedValue(item, asOf)
}

func subtreeCarriesBudget(node *Node) bool {
	if node.Item.BudgetCarrying() {
		return true
	}
	for _, child := range node.Children {
		if subtreeCarriesBudget(child) {
			return true
		}
	}
	return false
}

// RollupAll sums every root in a forest.
func RollupAll(roots []*Node, asOf time.Time) Metrics {
	var bac, ac, ev, pv decimal.Decimal
	for _, root := range roots {
		if !subtreeCarriesBudget(root) {
			continue
		}
		rb, ra, re, rp := rollupSums(root, asOf)
		bac, ac, ev, pv = bac.Add(rb), ac.Add(ra), ev.Add(re), pv.Add(rp)
	}
	return buildMetrics(bac, ac, ev, pv)
}

func buildMetrics(bac, ac, ev, pv decimal.Decimal) Metrics {
	m := Metrics{
		BudgetAtCompletion: bac,
		ActualCost:         ac,
		EarnedValue:        ev,
		PlannedValue:       pv,
		CostVariance:       ev.Sub(ac),
		ScheduleVariance:   ev.Sub(pv),
		CPI:                CPI(ev, ac),
		SPI:                SPI(ev, pv),
	}
	m.EstimateAtCompl = EstimateAtCompletion(bac, m.CPI)
	m.VarianceAtCompl = bac.Sub(m.EstimateAtCompl)
	if !bac.IsZero() {
		m.PercentComplete = ev.Div(bac).Mul(hundred).InexactFloat64()
	}
	m.CostStatus = PerformanceStatus(m.CPI)
	m.ScheduleStatus = PerformanceStatus(m.SPI)
	return m
}

// EstimateAtCompletion forecasts final cost as BAC / CPI. A zero CPI (work
// spent with nothing earned) has no meaningful forecast and yields BAC.
func EstimateAtCompletion(budgetAtCompletion decimal.Decimal, cpi float64) decimal.Decimal {
	if cpi == 0 {
		return budgetAtCompletion
	}
	return budgetAtCompletion.Div(decimal.NewFromFloat(cpi))
}
