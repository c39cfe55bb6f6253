package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/decisions-extractor/constants"
	"github.com/joseph-ayodele/decisions-extractor/internal/entity"
	"github.com/joseph-ayodele/decisions-extractor/internal/extract"
	"github.com/joseph-ayodele/decisions-extractor/internal/llm"
	"github.com/joseph-ayodele/decisions-extractor/internal/repository"
)

const wellFormedReply = `{"decision_date":"12.03.2021","debt_amount":"1500","fine_amount":"300"}`

func newStore(t *testing.T) repository.DecisionRepository {
	t.Helper()
	db, err := repository.Open(context.Background(), repository.Config{DSN: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return repository.NewDecisionRepository(db.Driver, nil)
}

// stage copies fixtures from testdata into a fresh folder under new names.
func stage(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for dst, src := range files {
		b, err := os.ReadFile(filepath.Join("testdata", src))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, dst), b, 0o600))
	}
	return dir
}

func echo(reply string, ok bool, prompts *[]string) llm.Completer {
	return llm.CompleterFunc(func(_ context.Context, prompt string) (string, bool) {
		if prompts != nil {
			*prompts = append(*prompts, prompt)
		}
		return reply, ok
	})
}

func listAll(t *testing.T, repo repository.DecisionRepository) []*entity.Decision {
	t.Helper()
	all, err := repo.List(context.Background())
	require.NoError(t, err)
	return all
}

func TestRun_StoresParsedDecision(t *testing.T) {
	repo := newStore(t)
	dir := stage(t, map[string]string{"decision.pdf": "decision.pdf"})
	var prompts []string

	b := NewBatch(nil, extract.NewPDFExtractor(extract.Config{}, nil), echo(wellFormedReply, true, &prompts), repo)
	summary, err := b.Run(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Decision date 12.03.2021, debt 1500, fine 300")

	assert.Equal(t, 1, summary.Stored)
	assert.Equal(t, 1, summary.Records())
	assert.NotEmpty(t, summary.RunID)
	require.Len(t, summary.Files, 1)
	assert.Equal(t, constants.OutcomeStored, summary.Files[0].Outcome)

	all := listAll(t, repo)
	require.Len(t, all, 1)
	assert.Equal(t, summary.Files[0].DecisionID, all[0].ID)
	assert.Equal(t, "12.03.2021", *all[0].DecisionDate)
	assert.Equal(t, "1500", *all[0].DebtAmount)
	assert.Equal(t, "300", *all[0].FineAmount)
}

func TestRun_SkipsUnreadablePDF(t *testing.T) {
	repo := newStore(t)
	dir := stage(t, map[string]string{"broken.pdf": "broken.pdf"})
	calls := 0
	c := llm.CompleterFunc(func(context.Context, string) (string, bool) {
		calls++
		return wellFormedReply, true
	})

	summary, err := NewBatch(nil, extract.NewPDFExtractor(extract.Config{}, nil), c, repo).Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Zero(t, calls, "no inference for a skipped file")
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, constants.OutcomeSkippedExtraction, summary.Files[0].Outcome)
	assert.NotEmpty(t, summary.Files[0].Reason)
	assert.Empty(t, listAll(t, repo))
}

func TestRun_DegradedRepliesStoreNulls(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		ok    bool
	}{
		{name: "no response", reply: "", ok: false},
		{name: "invalid json", reply: `{"decision_date": `, ok: true},
		{name: "prose", reply: "Sorry, I cannot help with that.", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStore(t)
			dir := stage(t, map[string]string{"decision.pdf": "decision.pdf"})

			summary, err := NewBatch(nil, extract.NewPDFExtractor(extract.Config{}, nil), echo(tt.reply, tt.ok, nil), repo).
				Run(context.Background(), dir)
			require.NoError(t, err)
			assert.Equal(t, 1, summary.StoredWithNulls)
			assert.Equal(t, constants.OutcomeStoredWithNulls, summary.Files[0].Outcome)

			all := listAll(t, repo)
			require.Len(t, all, 1)
			assert.Nil(t, all[0].DecisionDate)
			assert.Nil(t, all[0].DebtAmount)
			assert.Nil(t, all[0].FineAmount)
		})
	}
}

func TestRun_FiltersAndContinues(t *testing.T) {
	repo := newStore(t)
	dir := stage(t, map[string]string{
		"a.pdf":     "decision.pdf",
		"B.PDF":     "decision.pdf",
		"c.Pdf":     "broken.pdf",
		"notes.txt": "decision.pdf",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o700))

	summary, err := NewBatch(nil, extract.NewPDFExtractor(extract.Config{}, nil), echo(wellFormedReply, true, nil), repo).
		Run(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, summary.Files, 3)
	for _, f := range summary.Files {
		assert.True(t, strings.EqualFold(filepath.Ext(f.Path), ".pdf"), f.Path)
	}
	assert.Equal(t, 2, summary.Stored)
	assert.Equal(t, 1, summary.Skipped)
	assert.Len(t, listAll(t, repo), 2)
}

type failingRepo struct {
	repository.DecisionRepository
	inserts int
}

func (f *failingRepo) Insert(context.Context, *string, *string, *string) (int64, error) {
	f.inserts++
	return 0, errors.New("disk I/O error")
}

func TestRun_StorageFailureAborts(t *testing.T) {
	dir := stage(t, map[string]string{"a.pdf": "decision.pdf", "b.pdf": "decision.pdf"})
	repo := &failingRepo{}

	summary, err := NewBatch(nil, extract.NewPDFExtractor(extract.Config{}, nil), echo(wellFormedReply, true, nil), repo).
		Run(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
	assert.Equal(t, 1, repo.inserts, "run stops at the first storage failure")
	assert.Empty(t, summary.Files)
}

func TestRun_MissingDir(t *testing.T) {
	_, err := NewBatch(nil, extract.NewPDFExtractor(extract.Config{}, nil), echo("", false, nil), newStore(t)).
		Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestRun_CancelledBetweenFiles(t *testing.T) {
	repo := newStore(t)
	dir := stage(t, map[string]string{"a.pdf": "decision.pdf", "b.pdf": "decision.pdf"})
	ctx, cancel := context.WithCancel(context.Background())
	c := llm.CompleterFunc(func(context.Context, string) (string, bool) {
		cancel()
		return wellFormedReply, true
	})

	summary, err := NewBatch(nil, extract.NewPDFExtractor(extract.Config{}, nil), c, repo).Run(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, summary.Files, 1, "the in-flight file completes")
	assert.Len(t, listAll(t, repo), 1)
}

func TestRun_CancelledDuringInferenceStoresNothing(t *testing.T) {
	repo := newStore(t)
	dir := stage(t, map[string]string{"a.pdf": "decision.pdf", "b.pdf": "decision.pdf"})
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	// the HTTP client reports an aborted request as no response
	c := llm.CompleterFunc(func(context.Context, string) (string, bool) {
		calls++
		cancel()
		return "", false
	})

	summary, err := NewBatch(nil, extract.NewPDFExtractor(extract.Config{}, nil), c, repo).Run(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, err.Error(), "store")
	assert.Equal(t, 1, calls)
	assert.Empty(t, summary.Files)
	assert.Zero(t, summary.Records())
	assert.Empty(t, listAll(t, repo))
}
