package pipeline

import (
	"github.com/joseph-ayodele/decisions-extractor/constants"
)

// FileResult is the terminal outcome for one PDF in a run.
type FileResult struct {
	Path       string                `json:"path"`
	Outcome    constants.FileOutcome `json:"outcome"`
	DecisionID int64                 `json:"decision_id,omitempty"`
	Reason     string                `json:"reason,omitempty"`
}

// RunSummary aggregates per-file outcomes of one Run, in processing order.
type RunSummary struct {
	RunID           string       `json:"run_id"`
	Dir             string       `json:"dir"`
	Files           []FileResult `json:"files"`
	Stored          int          `json:"stored"`
	StoredWithNulls int          `json:"stored_with_nulls"`
	Skipped         int          `json:"skipped"`
}

func (s *RunSummary) add(r FileResult) {
	s.Files = append(s.Files, r)
	switch r.Outcome {
	case constants.OutcomeStored:
		s.Stored++
	case constants.OutcomeStoredWithNulls:
		s.StoredWithNulls++
	case constants.OutcomeSkippedExtraction:
		s.Skipped++
	}
}

// Records returns how many decision rows the run wrote.
func (s RunSummary) Records() int {
	return s.Stored + s.StoredWithNulls
}
