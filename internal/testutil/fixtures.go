package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var testShortIDCounter atomic.Int64

// Date parses a YYYY-MM-DD literal and panics on bad input.
func Date(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Project options
type ProjectOption func(*domain.Project)

func WithTargetDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.TargetDate = &d
	}
}

func WithStartDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = d
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		Client:    "test",
		Status:    domain.ProjectActive,
		StartDate: Date("2024-01-01"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WbsItem options
type WbsItemOption func(*domain.WbsItem)

func WithParent(parent *domain.WbsItem) WbsItemOption {
	return func(w *domain.WbsItem) {
		id := parent.ID
		w.ParentID = &id
		w.Level = parent.Level + 1
	}
}

func WithType(t domain.WbsType) WbsItemOption {
	return func(w *domain.WbsItem) {
		w.Type = t
	}
}

// WithSchedule sets the start date and duration and derives the end date.
func WithSchedule(start string, durationDays int) WbsItemOption {
	return func(w *domain.WbsItem) {
		w.StartDate = Date(start)
		w.Duration = durationDays
		w.DeriveEndDate()
	}
}

func WithCosts(budgeted, actual string) WbsItemOption {
	return func(w *domain.WbsItem) {
		w.BudgetedCost = decimal.RequireFromString(budgeted)
		w.ActualCost = decimal.RequireFromString(actual)
	}
}

func WithPercentComplete(pct float64) WbsItemOption {
	return func(w *domain.WbsItem) {
		w.PercentComplete = pct
	}
}

func WithTitle(title string) WbsItemOption {
	return func(w *domain.WbsItem) {
		w.Title = title
	}
}

func NewTestWbsItem(projectID, code string, opts ...WbsItemOption) *domain.WbsItem {
	now := time.Now().UTC().Truncate(time.Second)
	w := &domain.WbsItem{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Level:     1,
		Code:      code,
		Title:     "Item " + code,
		Type:      domain.WbsActivity,
		StartDate: Date("2024-01-01"),
		Duration:  5,
		CreatedAt: now,
		UpdatedAt: now,
	}
	w.DeriveEndDate()
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dependency options
type DependencyOption func(*domain.Dependency)

func WithLag(days int) DependencyOption {
	return func(d *domain.Dependency) {
		d.Lag = days
	}
}

func WithDependencyType(t domain.DependencyType) DependencyOption {
	return func(d *domain.Dependency) {
		d.Type = t
	}
}

func NewTestDependency(predecessorID, successorID string, opts ...DependencyOption) *domain.Dependency {
	d := &domain.Dependency{
		PredecessorID: predecessorID,
		SuccessorID:   successorID,
		Type:          domain.FinishToStart,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}
