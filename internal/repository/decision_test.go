package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/decisions-extractor/internal/common"
	"github.com/joseph-ayodele/decisions-extractor/internal/entity"
)

func str(s string) *string { return &s }

func openMemory(t *testing.T) (*DB, DecisionRepository) {
	t.Helper()
	db, err := Open(context.Background(), Config{DSN: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db, NewDecisionRepository(db.Driver, nil)
}

func TestInsertThenGetByID(t *testing.T) {
	_, repo := openMemory(t)
	ctx := context.Background()

	triples := []entity.Decision{
		{DecisionDate: str("12.03.2021"), DebtAmount: str("1500"), FineAmount: str("300")},
		{DecisionDate: str("01.02.2020")},
		{},
		{DecisionDate: str(""), DebtAmount: str(""), FineAmount: nil},
	}

	var prev int64
	for _, want := range triples {
		id, err := repo.Insert(ctx, want.DecisionDate, want.DebtAmount, want.FineAmount)
		require.NoError(t, err)
		assert.Greater(t, id, prev, "ids are monotonic")
		prev = id

		got, found, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		require.True(t, found)
		want.ID = id
		assert.Equal(t, &want, got, "stored triple round-trips exactly")
	}

	// absent and empty stay distinguishable
	got, _, err := repo.GetByID(ctx, 4)
	require.NoError(t, err)
	require.NotNil(t, got.DecisionDate)
	assert.Equal(t, "", *got.DecisionDate)
	assert.Nil(t, got.FineAmount)
}

func TestGetByID_NotFound(t *testing.T) {
	_, repo := openMemory(t)

	for _, id := range []int64{0, 1, 42, -7} {
		got, found, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, got)
	}
}

func TestGetByIDs(t *testing.T) {
	_, repo := openMemory(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.Insert(ctx, str("12.03.2021"), str("1500"), nil)
		require.NoError(t, err)
	}

	empty, err := repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	recs, err := repo.GetByIDs(ctx, []int64{9, 2, 4, 10, 5})
	require.NoError(t, err)
	ids := make([]int64, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []int64{2, 4, 5}, ids)

	none, err := repo.GetByIDs(ctx, []int64{6, 7, 8})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListAndCount(t *testing.T) {
	_, repo := openMemory(t)
	ctx := context.Background()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = repo.Insert(ctx, str("a"), nil, nil)
	require.NoError(t, err)
	_, err = repo.Insert(ctx, nil, str("b"), nil)
	require.NoError(t, err)

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, int64(2), all[1].ID)
}

func TestOpen_FileIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "decisions.db")

	db, err := Open(ctx, Config{DSN: path}, nil)
	require.NoError(t, err)
	repo := NewDecisionRepository(db.Driver, nil)
	id, err := repo.Insert(ctx, str("12.03.2021"), str("1500"), str("300"))
	require.NoError(t, err)
	require.NoError(t, db.HealthCheck(ctx, 0))
	db.Close()

	// reopening keeps existing rows; the schema step is create-if-absent
	db, err = Open(ctx, Config{DSN: path}, nil)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, EnsureSchema(ctx, db.Driver))

	got, found, err := NewDecisionRepository(db.Driver, nil).GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "300", *got.FineAmount)
}

func TestStorageUnavailable(t *testing.T) {
	db, repo := openMemory(t)
	require.NoError(t, db.Driver.Close())

	_, err := repo.Insert(context.Background(), nil, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDatabase))

	_, _, err = repo.GetByID(context.Background(), 1)
	assert.True(t, errors.Is(err, common.ErrDatabase))
}

func TestIsPostgresDSN(t *testing.T) {
	assert.True(t, IsPostgresDSN("postgres://u:p@localhost:5432/db"))
	assert.True(t, IsPostgresDSN("postgresql://localhost/db"))
	assert.False(t, IsPostgresDSN("./decisions.db"))
	assert.False(t, IsPostgresDSN(":memory:"))
}
