package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidWbsItem is wrapped by every WbsItem.Validate failure.
var ErrInvalidWbsItem = errors.New("invalid wbs item")

type WbsItem struct {
	ID        string
	ProjectID string
	ParentID  *string
	Level     int
	Code      string
	Title     string
	Type      WbsType

	// Schedule. Dates are day-granular; EndDate = StartDate + Duration days.
	StartDate time.Time
	EndDate   time.Time
	Duration  int

	// Cost control
	BudgetedCost    decimal.Decimal
	ActualCost      decimal.Decimal
	PercentComplete float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot reports whether the item sits at the top of the hierarchy.
func (w *WbsItem) IsRoot() bool {
	return w.ParentID == nil
}

// BudgetCarrying reports whether the item's budget is meaningful in the
// cost-control view. Activities roll their cost into their work package.
func (w *WbsItem) BudgetCarrying() bool {
	return w.Type == WbsSummary || w.Type == WbsWorkPackage
}

// DeriveEndDate recomputes EndDate from StartDate and Duration.
func (w *WbsItem) DeriveEndDate() {
	w.EndDate = AddDays(w.StartDate, w.Duration)
}

// Validate checks the item invariants.
func (w *WbsItem) Validate() error {
	if w.Code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidWbsItem)
	}
	if !ValidWbsTypes[string(w.Type)] {
		return fmt.Errorf("%w: %s: unknown type %q", ErrInvalidWbsItem, w.Code, w.Type)
	}
	if w.ParentID != nil && *w.ParentID == w.ID {
		return fmt.Errorf("%w: %s: item cannot be its own parent", ErrInvalidWbsItem, w.Code)
	}
	if w.Duration < 0 {
		return fmt.Errorf("%w: %s: duration must be >= 0", ErrInvalidWbsItem, w.Code)
	}
	if w.EndDate.Before(w.StartDate) {
		return fmt.Errorf("%w: %s: end date %s is before start date %s", ErrInvalidWbsItem, w.Code,
			w.EndDate.Format(DateLayout), w.StartDate.Format(DateLayout))
	}
	if w.BudgetedCost.IsNegative() {
		return fmt.Errorf("%w: %s: budgeted cost must be non-negative", ErrInvalidWbsItem, w.Code)
	}
	if w.ActualCost.IsNegative() {
		return fmt.Errorf("%w: %s: actual cost must be non-negative", ErrInvalidWbsItem, w.Code)
	}
	if w.PercentComplete < 0 || w.PercentComplete > 100 {
		return fmt.Errorf("%w: %s: percent complete must be within 0-100", ErrInvalidWbsItem, w.Code)
	}
	return nil
}
