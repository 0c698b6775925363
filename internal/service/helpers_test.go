package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/trestle/internal/db"
	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/repository"
	"github.com/alexanderramin/trestle/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testRepos struct {
	db       *sql.DB
	projects repository.ProjectRepo
	items    repository.WbsItemRepo
	deps     repository.DependencyRepo
	uow      db.UnitOfWork
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		db:       database,
		projects: repository.NewSQLiteProjectRepo(database),
		items:    repository.NewSQLiteWbsItemRepo(database),
		deps:     repository.NewSQLiteDependencyRepo(database),
		uow:      testutil.NewTestUoW(database),
	}
}

func seedProject(t *testing.T, r testRepos, name string) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(name)
	require.NoError(t, r.projects.Create(context.Background(), p))
	return p
}

func seedItem(t *testing.T, r testRepos, projectID, code string, opts ...testutil.WbsItemOption) *domain.WbsItem {
	t.Helper()
	w := testutil.NewTestWbsItem(projectID, code, opts...)
	require.NoError(t, r.items.Create(context.Background(), w))
	return w
}

func seedDep(t *testing.T, r testRepos, pred, succ *domain.WbsItem, opts ...testutil.DependencyOption) {
	t.Helper()
	require.NoError(t, r.deps.Create(context.Background(), testutil.NewTestDependency(pred.ID, succ.ID, opts...)))
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last(t *testing.T) UseCaseEvent {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.events, "expected at least one use-case event")
	return o.events[len(o.events)-1]
}
