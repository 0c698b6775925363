package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GeneratedProject holds the domain objects produced from an import file,
// in insertion order: parents precede their children.
type GeneratedProject struct {
	Project      *domain.Project
	Items        []*domain.WbsItem
	Dependencies []domain.Dependency
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*GeneratedProject, error) {
	now := time.Now().UTC()

	startDate, err := domain.ParseDate(schema.Project.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}

	var targetDate *time.Time
	if schema.Project.TargetDate != nil {
		t, err := domain.ParseDate(*schema.Project.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("parsing target_date: %w", err)
		}
		targetDate = &t
	}

	project := &domain.Project{
		ID:         uuid.New().String(),
		ShortID:    strings.ToUpper(schema.Project.ShortID),
		Name:       schema.Project.Name,
		Client:     schema.Project.Client,
		Status:     domain.ProjectStatus(domain.CoalesceStr(schema.Project.Status, string(domain.ProjectActive))),
		StartDate:  startDate,
		TargetDate: targetDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var defaults DefaultsImport
	if schema.Defaults != nil {
		defaults = *schema.Defaults
	}

	byCode := make(map[string]*domain.WbsItem, len(schema.Items))
	items := make([]*domain.WbsItem, 0, len(schema.Items))
	for _, it := range schema.Items {
		parent := resolveParent(it, byCode)

		start := startDate
		if parent != nil {
			start = parent.StartDate
		}
		if it.StartDate != "" {
			if start, err = domain.ParseDate(it.StartDate); err != nil {
				return nil, fmt.Errorf("item %s: parsing start_date: %w", it.Code, err)
			}
		}

		budget, err := parseAmount(it.BudgetedCost)
		if err != nil {
			return nil, fmt.Errorf("item %s: budgeted_cost: %w", it.Code, err)
		}
		actual, err := parseAmount(it.ActualCost)
		if err != nil {
			return nil, fmt.Errorf("item %s: actual_cost: %w", it.Code, err)
		}

		item := &domain.WbsItem{
			ID:              uuid.New().String(),
			ProjectID:       project.ID,
			Level:           1,
			Code:            it.Code,
			Title:           it.Title,
			Type:            domain.WbsType(domain.CoalesceStr(it.Type, defaults.ItemType, string(domain.WbsWorkPackage))),
			StartDate:       start,
			Duration:        domain.Deref(0, it.DurationDays, defaults.DurationDays),
			BudgetedCost:    budget,
			ActualCost:      actual,
			PercentComplete: domain.Deref(0.0, it.PercentComplete),
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if parent != nil {
			pid := parent.ID
			item.ParentID = &pid
			item.Level = parent.Level + 1
		}
		item.DeriveEndDate()

		byCode[it.Code] = item
		items = append(items, item)
	}

	deps := make([]domain.Dependency, 0, len(schema.Dependencies))
	for _, d := range schema.Dependencies {
		pred, ok := byCode[d.Predecessor]
		if !ok {
			return nil, fmt.Errorf("predecessor %q not found", d.Predecessor)
		}
		succ, ok := byCode[d.Successor]
		if !ok {
			return nil, fmt.Errorf("successor %q not found", d.Successor)
		}
		deps = append(deps, domain.Dependency{
			PredecessorID: pred.ID,
			SuccessorID:   succ.ID,
			Type:          domain.DependencyType(domain.CoalesceStr(d.Type, defaults.DependencyType, string(domain.FinishToStart))),
			Lag:           d.LagDays,
		})
	}

	return &GeneratedProject{
		Project:      project,
		Items:        items,
		Dependencies: deps,
	}, nil
}

// resolveParent returns the explicit parent, or infers one from the code
// ("1.2.3" belongs under "1.2") when that code was declared earlier.
func resolveParent(it ItemImport, byCode map[string]*domain.WbsItem) *domain.WbsItem {
	if it.Parent != nil {
		if *it.Parent == "" {
			return nil
		}
		return byCode[*it.Parent]
	}
	idx := strings.LastIndex(it.Code, ".")
	if idx <= 0 {
		return nil
	}
	return byCode[it.Code[:idx]]
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
