package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/trestle/internal/importer"
	"github.com/alexanderramin/trestle/internal/testutil"
	"github.com/alexanderramin/trestle/internal/wbs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func validImportSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Project: importer.ProjectImport{
			Name:      "Rollback Test Project",
			ShortID:   "RBT01",
			Client:    "testing",
			StartDate: "2026-01-01",
		},
		Items: []importer.ItemImport{
			{Code: "1", Title: "Works", Type: "summary"},
			{Code: "1.1", Title: "Excavation", DurationDays: intPtr(5), BudgetedCost: "2500"},
			{Code: "1.2", Title: "Concrete", DurationDays: intPtr(8), BudgetedCost: "7000"},
		},
		Dependencies: []importer.DependencyImport{
			{Predecessor: "1.1", Successor: "1.2", LagDays: 1},
		},
	}
}

func TestImportService_ImportProjectFromSchema(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	obs := &recordingObserver{}
	svc := NewImportService(r.uow, obs)

	res, err := svc.ImportProjectFromSchema(ctx, validImportSchema())
	require.NoError(t, err)
	assert.Equal(t, 3, res.ItemCount)
	assert.Equal(t, 1, res.DependencyCount)

	items, err := r.items.ListByProject(ctx, res.Project.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, 2, items[1].Level)

	deps, err := r.deps.ListByProject(ctx, res.Project.ID)
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, 1, deps[0].Lag)

	event := obs.last(t)
	assert.Equal(t, "import-project", event.Name)
	assert.Equal(t, 3, event.Fields["items"])
}

func TestImportService_ImportProject_FromFile(t *testing.T) {
	r := setupRepos(t)
	svc := NewImportService(r.uow)
	path := filepath.Join(t.TempDir(), "plan.yaml")
	body := `project:
  short_id: YML01
  name: From YAML
  start_date: "2026-02-02"
items:
  - code: "1"
    title: Only item
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	res, err := svc.ImportProject(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "YML01", res.Project.ShortID)
	assert.Equal(t, 1, res.ItemCount)
}

func TestImportService_ValidationFailureWritesNothing(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewImportService(r.uow)

	schema := validImportSchema()
	schema.Dependencies = append(schema.Dependencies, importer.DependencyImport{Predecessor: "1.2", Successor: "1.1"})

	_, err := svc.ImportProjectFromSchema(ctx, schema)
	require.Error(t, err)
	assert.True(t, errors.Is(err, wbs.ErrDependencyCycle))
	assert.Contains(t, err.Error(), "import validation failed")

	projects, err := r.projects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestImportService_RollbackOnItemCreateFailure(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	// Exec calls: #1 = project, #2..#4 = items, #5 = dependency.
	// Fail on #3 so the second item fails after project + first item succeed within tx.
	failUoW := &testutil.FailOnNthExecUoW{DB: r.db, FailOn: 3, Err: errors.New("injected item create failure")}
	svc := NewImportService(failUoW)

	_, err := svc.ImportProjectFromSchema(ctx, validImportSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected item create failure")

	projects, err := r.projects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects, "no projects should exist after rollback")
}

func TestImportService_RollbackOnDependencyCreateFailure(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	failUoW := &testutil.FailOnNthExecUoW{DB: r.db, FailOn: 5, Err: errors.New("injected dependency create failure")}
	svc := NewImportService(failUoW)

	_, err := svc.ImportProjectFromSchema(ctx, validImportSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected dependency create failure")

	projects, err := r.projects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}
