package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/decisions-extractor/constants"
	"github.com/joseph-ayodele/decisions-extractor/internal/common"
	"github.com/joseph-ayodele/decisions-extractor/internal/extract"
	"github.com/joseph-ayodele/decisions-extractor/internal/llm"
	"github.com/joseph-ayodele/decisions-extractor/internal/repository"
)

// Batch runs extract -> prompt -> complete -> parse -> store over a folder of
// PDFs, one file at a time.
type Batch struct {
	Logger    *slog.Logger
	Extractor extract.TextExtractor
	Completer llm.Completer
	Decisions repository.DecisionRepository
}

func NewBatch(logger *slog.Logger, ex extract.TextExtractor, c llm.Completer, decisions repository.DecisionRepository) *Batch {
	if logger == nil {
		logger = slog.Default()
	}
	return &Batch{Logger: logger, Extractor: ex, Completer: c, Decisions: decisions}
}

// Run processes every *.pdf directly inside dir in listing order. Per-file
// extraction, inference and parse failures only degrade that file's outcome.
// A storage failure, an unreadable dir, or a cancelled ctx ends the run; the
// summary gathered so far is returned with the error.
func (b *Batch) Run(ctx context.Context, dir string) (RunSummary, error) {
	runID := common.NewRunID()
	ctx = common.WithRunID(ctx, runID)
	log := b.Logger.With("run_id", runID)
	start := time.Now()

	summary := RunSummary{RunID: runID, Dir: dir, Files: []FileResult{}}

	paths, err := listPDFs(dir)
	if err != nil {
		log.Error("pipeline.run.list_failed", "dir", dir, "error", err)
		return summary, err
	}
	log.Info("pipeline.run.start", "dir", dir, "files", len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			log.Warn("pipeline.run.cancelled", "processed", len(summary.Files), "error", err)
			return summary, err
		}
		res, err := b.processFile(ctx, log.With("path", path), path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				log.Warn("pipeline.run.cancelled", "processed", len(summary.Files), "path", path, "error", err)
				return summary, err
			}
			log.Error("pipeline.run.aborted", "path", path, "error", err)
			return summary, fmt.Errorf("store %s: %w", path, err)
		}
		summary.add(res)
	}

	log.Info("pipeline.run.done",
		"stored", summary.Stored,
		"stored_with_nulls", summary.StoredWithNulls,
		"skipped", summary.Skipped,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return summary, nil
}

// processFile returns an error when the store rejects the insert, or ctx.Err()
// when ctx is cancelled before a reply arrives. In the latter case nothing is
// written for the file.
func (b *Batch) processFile(ctx context.Context, log *slog.Logger, path string) (FileResult, error) {
	res := FileResult{Path: path}

	text, err := b.Extractor.Extract(ctx, path)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, ctxErr
	}
	if err != nil || text.Empty() {
		reason := "empty text"
		if err != nil {
			reason = err.Error()
		}
		log.Warn("pipeline.file.skipped", "reason", reason)
		res.Outcome = constants.OutcomeSkippedExtraction
		res.Reason = reason
		return res, nil
	}

	reply, ok := b.Completer.Complete(ctx, llm.BuildUserPrompt(text.Text))
	if ctxErr := ctx.Err(); ctxErr != nil && !ok {
		// interrupted, not an endpoint failure
		return res, ctxErr
	}
	parsed := llm.ParseReply(reply, ok, log)

	var fields llm.DecisionFields
	switch parsed.Status {
	case llm.StatusParsed:
		fields = parsed.Fields
		res.Outcome = constants.OutcomeStored
	case llm.StatusUnparsed:
		res.Outcome = constants.OutcomeStoredWithNulls
		res.Reason = parsed.Reason
	}

	// Once a reply is in hand the record is written even if ctx is cancelled.
	id, err := b.Decisions.Insert(context.WithoutCancel(ctx), fields.DecisionDate, fields.DebtAmount, fields.FineAmount)
	if err != nil {
		return res, err
	}
	res.DecisionID = id

	if res.Outcome == constants.OutcomeStored {
		log.Info("pipeline.file.stored", "decision_id", id, "pages", text.Pages)
	} else {
		log.Warn("pipeline.file.stored_with_nulls", "decision_id", id, "reason", res.Reason)
	}
	return res, nil
}

// listPDFs returns regular files in dir (not recursive) with a .pdf extension
// in any letter case, in directory listing order.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || !constants.IsPDF(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out, nil
}
