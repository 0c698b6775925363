package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/wbs"
	"github.com/shopspring/decimal"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateProject(&schema.Project)...)
	errs = append(errs, validateDefaults(schema.Defaults)...)

	codes := make(map[string]bool)
	errs = append(errs, validateItems(schema, codes)...)
	errs = append(errs, validateDependencies(schema.Dependencies, defaultDependencyType(schema.Defaults), codes)...)

	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if p.ShortID == "" {
		errs = append(errs, fmt.Errorf("project.short_id is required"))
	} else {
		probe := domain.Project{ShortID: strings.ToUpper(p.ShortID)}
		if err := probe.ValidateShortID(); err != nil {
			errs = append(errs, fmt.Errorf("project.short_id: %w", err))
		}
	}
	if p.Name == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}
	if p.Status != "" && !domain.ValidProjectStatuses[p.Status] {
		errs = append(errs, fmt.Errorf("project.status: invalid value %q", p.Status))
	}
	if p.StartDate == "" {
		errs = append(errs, fmt.Errorf("project.start_date is required"))
	} else if _, err := domain.ParseDate(p.StartDate); err != nil {
		errs = append(errs, fmt.Errorf("project.start_date: invalid date format %q (expected YYYY-MM-DD)", p.StartDate))
	}
	if p.TargetDate != nil {
		target, err := domain.ParseDate(*p.TargetDate)
		if err != nil {
			errs = append(errs, fmt.Errorf("project.target_date: invalid date format %q (expected YYYY-MM-DD)", *p.TargetDate))
		} else if start, startErr := domain.ParseDate(p.StartDate); startErr == nil && !target.After(start) {
			errs = append(errs, fmt.Errorf("project.target_date %q must be after start_date %q", *p.TargetDate, p.StartDate))
		}
	}

	return errs
}

func validateDefaults(d *DefaultsImport) []error {
	if d == nil {
		return nil
	}
	var errs []error

	if d.ItemType != "" && !domain.ValidWbsTypes[d.ItemType] {
		errs = append(errs, fmt.Errorf("defaults.item_type: invalid value %q", d.ItemType))
	}
	if d.DurationDays != nil && *d.DurationDays < 0 {
		errs = append(errs, fmt.Errorf("defaults.duration_days must be >= 0"))
	}
	if d.DependencyType != "" && !domain.ValidDependencyTypes[d.DependencyType] {
		errs = append(errs, fmt.Errorf("defaults.dependency_type: invalid value %q", d.DependencyType))
	}

	return errs
}

func validateItems(schema *ImportSchema, codes map[string]bool) []error {
	var errs []error

	for i, it := range schema.Items {
		prefix := fmt.Sprintf("items[%d]", i)

		if it.Code == "" {
			errs = append(errs, fmt.Errorf("%s.code is required", prefix))
		} else if codes[it.Code] {
			errs = append(errs, fmt.Errorf("%s.code: duplicate code %q", prefix, it.Code))
		}

		if it.Parent != nil && *it.Parent != "" && !codes[*it.Parent] {
			errs = append(errs, fmt.Errorf("%s.parent: code %q not found (must appear earlier in items list)", prefix, *it.Parent))
		}
		if it.Code != "" {
			codes[it.Code] = true
		}

		if it.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if it.Type != "" && !domain.ValidWbsTypes[it.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, it.Type))
		}
		if it.StartDate != "" {
			if _, err := domain.ParseDate(it.StartDate); err != nil {
				errs = append(errs, fmt.Errorf("%s.start_date: invalid date format %q (expected YYYY-MM-DD)", prefix, it.StartDate))
			}
		}
		if it.DurationDays != nil && *it.DurationDays < 0 {
			errs = append(errs, fmt.Errorf("%s.duration_days must be >= 0", prefix))
		}
		errs = append(errs, validateMoney(prefix+".budgeted_cost", it.BudgetedCost)...)
		errs = append(errs, validateMoney(prefix+".actual_cost", it.ActualCost)...)
		if it.PercentComplete != nil && (*it.PercentComplete < 0 || *it.PercentComplete > 100) {
			errs = append(errs, fmt.Errorf("%s.percent_complete must be within 0-100", prefix))
		}
	}

	return errs
}

func validateMoney(field, s string) []error {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return []error{fmt.Errorf("%s: invalid amount %q", field, s)}
	}
	if d.IsNegative() {
		return []error{fmt.Errorf("%s must be non-negative", field)}
	}
	return nil
}

// validateDependencies checks refs and types, then replays the edges through
// the engine's dependency check so cycles are reported at the edge that
// closes them.
func validateDependencies(deps []DependencyImport, defaultType string, codes map[string]bool) []error {
	var errs []error
	var accepted []domain.Dependency

	for i, d := range deps {
		prefix := fmt.Sprintf("dependencies[%d]", i)
		refsOK := true

		if d.Predecessor == "" {
			errs = append(errs, fmt.Errorf("%s.predecessor is required", prefix))
			refsOK = false
		} else if !codes[d.Predecessor] {
			errs = append(errs, fmt.Errorf("%s.predecessor: code %q not found in items", prefix, d.Predecessor))
			refsOK = false
		}
		if d.Successor == "" {
			errs = append(errs, fmt.Errorf("%s.successor is required", prefix))
			refsOK = false
		} else if !codes[d.Successor] {
			errs = append(errs, fmt.Errorf("%s.successor: code %q not found in items", prefix, d.Successor))
			refsOK = false
		}

		typ := domain.CoalesceStr(d.Type, defaultType)
		if typ != "" && !domain.ValidDependencyTypes[typ] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, typ))
		}

		if !refsOK {
			continue
		}
		if err := wbs.CheckDependency(d.Predecessor, d.Successor, accepted); err != nil {
			errs = append(errs, fmt.Errorf("%s: %s -> %s: %w", prefix, d.Predecessor, d.Successor, err))
			continue
		}
		accepted = append(accepted, domain.Dependency{PredecessorID: d.Predecessor, SuccessorID: d.Successor})
	}

	return errs
}

// JoinErrors folds validation errors into one error that still matches each
// wrapped sentinel with errors.Is.
func JoinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, "  - "+e.Error())
	}
	return &ValidationError{
		Errs: errs,
		msg:  fmt.Sprintf("import validation failed (%d errors):\n%s", len(errs), strings.Join(lines, "\n")),
	}
}

// ValidationError carries every problem found in an import file.
type ValidationError struct {
	Errs []error
	msg  string
}

func (e *ValidationError) Error() string { return e.msg }

func (e *ValidationError) Unwrap() []error { return e.Errs }

func defaultDependencyType(d *DefaultsImport) string {
	if d != nil {
		return d.DependencyType
	}
	return ""
}
