package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/decisions-extractor/internal/repository"
)

func TestExportDecisionsXLSX(t *testing.T) {
	ctx := context.Background()
	db, err := repository.Open(ctx, repository.Config{DSN: ":memory:"}, nil)
	require.NoError(t, err)
	defer db.Close()
	repo := repository.NewDecisionRepository(db.Driver, nil)

	date, debt, fine := "12.03.2021", "1500", "300"
	_, err = repo.Insert(ctx, &date, &debt, &fine)
	require.NoError(t, err)
	_, err = repo.Insert(ctx, nil, nil, nil)
	require.NoError(t, err)

	b, err := NewService(repo, nil).ExportDecisionsXLSX(ctx)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Decisions"}, f.GetSheetList())
	rows, err := f.GetRows("Decisions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Decision Date", "Debt Amount", "Fine Amount"}, rows[0])
	assert.Equal(t, []string{"1", "12.03.2021", "1500", "300"}, rows[1])
	require.NotEmpty(t, rows[2])
	assert.Equal(t, "2", rows[2][0])
	for _, cell := range rows[2][1:] {
		assert.Empty(t, cell, "absent fields are empty cells")
	}
}
