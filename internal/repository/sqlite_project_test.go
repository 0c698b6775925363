package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	target := testutil.Date("2024-12-31")
	p := testutil.NewTestProject("Harbour Bridge", testutil.WithTargetDate(target), testutil.WithShortID("HB01"))
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, "HB01", got.ShortID)
	assert.Equal(t, domain.ProjectActive, got.Status)
	assert.Equal(t, p.StartDate, got.StartDate)
	require.NotNil(t, got.TargetDate)
	assert.Equal(t, target, *got.TargetDate)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
}

func TestProjectRepo_GetByShortID_CaseInsensitive(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := testutil.NewTestProject("Tower", testutil.WithShortID("TWR02"))
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByShortID(ctx, "twr02")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestProjectRepo_NotFound(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), ErrNotFound)
}

func TestProjectRepo_DuplicateShortIDRejected(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("A", testutil.WithShortID("DUP01"))))
	assert.Error(t, repo.Create(ctx, testutil.NewTestProject("B", testutil.WithShortID("DUP01"))))
}

func TestProjectRepo_UpdateAndList(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a := testutil.NewTestProject("Alpha")
	b := testutil.NewTestProject("Beta")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	a.Status = domain.ProjectOnHold
	a.Client = "City Council"
	require.NoError(t, repo.Update(ctx, a))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectOnHold, got.Status)
	assert.Equal(t, "City Council", got.Client)
}

func TestProjectRepo_DeleteCascadesItems(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := NewSQLiteProjectRepo(database)
	items := NewSQLiteWbsItemRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProject("Cascade")
	require.NoError(t, projects.Create(ctx, p))
	w := testutil.NewTestWbsItem(p.ID, "1")
	require.NoError(t, items.Create(ctx, w))

	require.NoError(t, projects.Delete(ctx, p.ID))

	_, err := items.GetByID(ctx, w.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
