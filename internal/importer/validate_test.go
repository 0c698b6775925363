package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/alexanderramin/trestle/internal/wbs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string    { return &s }
func ptrInt(n int) *int          { return &n }
func ptrFloat(f float64) *float64 { return &f }

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		Project: ProjectImport{
			ShortID:   "BR01",
			Name:      "Bridge Retrofit",
			Client:    "County",
			StartDate: "2025-03-01",
		},
		Items: []ItemImport{
			{Code: "1", Title: "Bridge", Type: "summary"},
		},
	}
}

func errorsContain(errs []error, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e.Error(), substr) {
			return true
		}
	}
	return false
}

func TestValidate_MinimalSchema(t *testing.T) {
	errs := ValidateImportSchema(validMinimalSchema())
	assert.Empty(t, errs)
}

func TestValidate_ProjectFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *ProjectImport)
		wantErr string
	}{
		{"missing short id", func(p *ProjectImport) { p.ShortID = "" }, "project.short_id is required"},
		{"bad short id", func(p *ProjectImport) { p.ShortID = "B1" }, "project.short_id"},
		{"missing name", func(p *ProjectImport) { p.Name = "" }, "project.name is required"},
		{"missing start", func(p *ProjectImport) { p.StartDate = "" }, "project.start_date is required"},
		{"bad start", func(p *ProjectImport) { p.StartDate = "03/01/2025" }, "project.start_date: invalid date format"},
		{"bad status", func(p *ProjectImport) { p.Status = "paused" }, "project.status: invalid value"},
		{"target before start", func(p *ProjectImport) { p.TargetDate = ptrStr("2025-01-01") }, "must be after start_date"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			schema := validMinimalSchema()
			tc.mutate(&schema.Project)
			errs := ValidateImportSchema(schema)
			assert.True(t, errorsContain(errs, tc.wantErr), "expected %q in %v", tc.wantErr, errs)
		})
	}
}

func TestValidate_LowercaseShortIDAccepted(t *testing.T) {
	schema := validMinimalSchema()
	schema.Project.ShortID = "br01"
	assert.Empty(t, ValidateImportSchema(schema))
}

func TestValidate_Items(t *testing.T) {
	tests := []struct {
		name    string
		items   []ItemImport
		wantErr string
	}{
		{"missing code", []ItemImport{{Title: "x"}}, "items[0].code is required"},
		{"duplicate code", []ItemImport{{Code: "1", Title: "a"}, {Code: "1", Title: "b"}}, "duplicate code"},
		{"parent declared later", []ItemImport{{Code: "1.1", Parent: ptrStr("1"), Title: "a"}, {Code: "1", Title: "b"}}, "must appear earlier"},
		{"missing title", []ItemImport{{Code: "1"}}, "items[0].title is required"},
		{"bad type", []ItemImport{{Code: "1", Title: "a", Type: "phase"}}, "items[0].type: invalid value"},
		{"bad start", []ItemImport{{Code: "1", Title: "a", StartDate: "tomorrow"}}, "items[0].start_date"},
		{"negative duration", []ItemImport{{Code: "1", Title: "a", DurationDays: ptrInt(-1)}}, "duration_days must be >= 0"},
		{"bad budget", []ItemImport{{Code: "1", Title: "a", BudgetedCost: "lots"}}, "invalid amount"},
		{"negative actual", []ItemImport{{Code: "1", Title: "a", ActualCost: "-5"}}, "actual_cost must be non-negative"},
		{"percent over 100", []ItemImport{{Code: "1", Title: "a", PercentComplete: ptrFloat(120)}}, "percent_complete must be within 0-100"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			schema := validMinimalSchema()
			schema.Items = tc.items
			errs := ValidateImportSchema(schema)
			assert.True(t, errorsContain(errs, tc.wantErr), "expected %q in %v", tc.wantErr, errs)
		})
	}
}

func TestValidate_Dependencies(t *testing.T) {
	items := []ItemImport{
		{Code: "1", Title: "Site"},
		{Code: "2", Title: "Foundations"},
		{Code: "3", Title: "Deck"},
	}

	t.Run("unknown ref", func(t *testing.T) {
		schema := validMinimalSchema()
		schema.Items = items
		schema.Dependencies = []DependencyImport{{Predecessor: "1", Successor: "9"}}
		errs := ValidateImportSchema(schema)
		assert.True(t, errorsContain(errs, `successor: code "9" not found`))
	})

	t.Run("bad type", func(t *testing.T) {
		schema := validMinimalSchema()
		schema.Items = items
		schema.Dependencies = []DependencyImport{{Predecessor: "1", Successor: "2", Type: "XX"}}
		errs := ValidateImportSchema(schema)
		assert.True(t, errorsContain(errs, "type: invalid value"))
	})

	t.Run("self loop", func(t *testing.T) {
		schema := validMinimalSchema()
		schema.Items = items
		schema.Dependencies = []DependencyImport{{Predecessor: "2", Successor: "2"}}
		errs := ValidateImportSchema(schema)
		require.Len(t, errs, 1)
		assert.True(t, errors.Is(errs[0], wbs.ErrSelfDependency))
	})

	t.Run("duplicate", func(t *testing.T) {
		schema := validMinimalSchema()
		schema.Items = items
		schema.Dependencies = []DependencyImport{
			{Predecessor: "1", Successor: "2"},
			{Predecessor: "1", Successor: "2", LagDays: 3},
		}
		errs := ValidateImportSchema(schema)
		require.Len(t, errs, 1)
		assert.True(t, errors.Is(errs[0], wbs.ErrDuplicateDependency))
		assert.Contains(t, errs[0].Error(), "dependencies[1]")
	})

	t.Run("cycle reported at closing edge", func(t *testing.T) {
		schema := validMinimalSchema()
		schema.Items = items
		schema.Dependencies = []DependencyImport{
			{Predecessor: "1", Successor: "2"},
			{Predecessor: "2", Successor: "3"},
			{Predecessor: "3", Successor: "1"},
		}
		errs := ValidateImportSchema(schema)
		require.Len(t, errs, 1)
		assert.True(t, errors.Is(errs[0], wbs.ErrDependencyCycle))
		assert.Contains(t, errs[0].Error(), "dependencies[2]")
	})
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	schema := &ImportSchema{
		Items: []ItemImport{{Code: "1"}},
	}
	errs := ValidateImportSchema(schema)
	assert.GreaterOrEqual(t, len(errs), 4)
}

func TestJoinErrors(t *testing.T) {
	assert.NoError(t, JoinErrors(nil))

	err := JoinErrors([]error{errors.New("first"), wbs.ErrDependencyCycle})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "  - first")
	assert.ErrorIs(t, err, wbs.ErrDependencyCycle)
}
