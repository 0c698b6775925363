package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/trestle/internal/db"
	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// depTestSetup creates a project and two WBS items for dependency tests.
func depTestSetup(t *testing.T) (*SQLiteDependencyRepo, *SQLiteWbsItemRepo, string, string, string) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	projRepo := NewSQLiteProjectRepo(database)
	itemRepo := NewSQLiteWbsItemRepo(database)
	depRepo := NewSQLiteDependencyRepo(database)

	proj := testutil.NewTestProject("DepTest")
	require.NoError(t, projRepo.Create(ctx, proj))

	w1 := testutil.NewTestWbsItem(proj.ID, "1")
	require.NoError(t, itemRepo.Create(ctx, w1))
	w2 := testutil.NewTestWbsItem(proj.ID, "2")
	require.NoError(t, itemRepo.Create(ctx, w2))

	return depRepo, itemRepo, proj.ID, w1.ID, w2.ID
}

func TestDependencyRepo_CreateAndList(t *testing.T) {
	depRepo, _, projectID, w1, w2 := depTestSetup(t)
	ctx := context.Background()

	dep := testutil.NewTestDependency(w1, w2, testutil.WithLag(-2), testutil.WithDependencyType(domain.StartToStart))
	require.NoError(t, depRepo.Create(ctx, dep))

	preds, err := depRepo.ListPredecessors(ctx, w2)
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, w1, preds[0].PredecessorID)
	assert.Equal(t, w2, preds[0].SuccessorID)
	assert.Equal(t, -2, preds[0].Lag)
	assert.Equal(t, domain.StartToStart, preds[0].Type)

	succs, err := depRepo.ListSuccessors(ctx, w1)
	require.NoError(t, err)
	require.Len(t, succs, 1)
	assert.Equal(t, w2, succs[0].SuccessorID)

	all, err := depRepo.ListByProject(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Dependency{*dep}, all)
}

func TestDependencyRepo_DefaultsToFinishToStart(t *testing.T) {
	depRepo, _, _, w1, w2 := depTestSetup(t)
	ctx := context.Background()

	require.NoError(t, depRepo.Create(ctx, &domain.Dependency{PredecessorID: w1, SuccessorID: w2}))

	preds, err := depRepo.ListPredecessors(ctx, w2)
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, domain.FinishToStart, preds[0].Type)
}

func TestDependencyRepo_Delete(t *testing.T) {
	depRepo, _, _, w1, w2 := depTestSetup(t)
	ctx := context.Background()

	require.NoError(t, depRepo.Create(ctx, testutil.NewTestDependency(w1, w2)))
	require.NoError(t, depRepo.Delete(ctx, w1, w2))

	preds, err := depRepo.ListPredecessors(ctx, w2)
	require.NoError(t, err)
	assert.Empty(t, preds)

	assert.ErrorIs(t, depRepo.Delete(ctx, w1, w2), ErrNotFound)
}

func TestDependencyRepo_DuplicateRejected(t *testing.T) {
	depRepo, _, _, w1, w2 := depTestSetup(t)
	ctx := context.Background()

	require.NoError(t, depRepo.Create(ctx, testutil.NewTestDependency(w1, w2)))
	assert.Error(t, depRepo.Create(ctx, testutil.NewTestDependency(w1, w2, testutil.WithLag(3))))
}

func TestDependencyRepo_UnknownItemRejected(t *testing.T) {
	depRepo, _, _, w1, _ := depTestSetup(t)
	assert.Error(t, depRepo.Create(context.Background(), testutil.NewTestDependency(w1, "ghost")))
}

func TestDependencyRepo_WithinTransaction(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	proj := testutil.NewTestProject("Tx")
	require.NoError(t, NewSQLiteProjectRepo(database).Create(ctx, proj))
	a := testutil.NewTestWbsItem(proj.ID, "1")
	b := testutil.NewTestWbsItem(proj.ID, "2")

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		items := NewSQLiteWbsItemRepo(tx)
		if err := items.Create(ctx, a); err != nil {
			return err
		}
		if err := items.Create(ctx, b); err != nil {
			return err
		}
		return NewSQLiteDependencyRepo(tx).Create(ctx, testutil.NewTestDependency(a.ID, b.ID))
	})
	require.NoError(t, err)

	deps, err := NewSQLiteDependencyRepo(database).ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, deps, 1)
}
