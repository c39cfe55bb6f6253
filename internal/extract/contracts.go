package extract

import (
	"context"
	"errors"
	"time"
)

// ErrExtraction marks a file whose text could not be pulled out. Callers skip
// the file; it is never fatal to a batch.
var ErrExtraction = errors.New("text extraction failed")

// TextExtractor is Stage 1: file -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text     string
	Pages    int
	Method   string // "pdf-text"
	Duration time.Duration
}

// Empty reports whether the result carries no usable text.
func (r TextExtractionResult) Empty() bool {
	return r.Text == ""
}
