package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

type Config struct {
	MaxPages int // 0 = no limit
}

// PDFExtractor reads the embedded text layer of a PDF page by page.
type PDFExtractor struct {
	cfg    Config
	logger *slog.Logger
}

func NewPDFExtractor(cfg Config, logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxPages < 0 {
		cfg.MaxPages = 0
	}
	return &PDFExtractor{cfg: cfg, logger: logger}
}

// Extract returns the text of every page joined by newlines. The result is
// all-or-nothing: if the file cannot be opened, any page yields no text, or
// the library panics on a malformed stream, an empty result and an error
// wrapping ErrExtraction are returned.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()
	e.logger.Debug("extract.pdf.start", "path", path)

	text, pages, err := e.readPages(ctx, path)
	if err != nil {
		e.logger.Warn("extract.pdf.failed", "path", path, "error", err)
		return TextExtractionResult{}, fmt.Errorf("%w: %s: %v", ErrExtraction, path, err)
	}

	text = Normalize(text)
	if text == "" {
		e.logger.Warn("extract.pdf.empty", "path", path, "pages", pages)
		return TextExtractionResult{}, fmt.Errorf("%w: %s: no text layer", ErrExtraction, path)
	}

	res := TextExtractionResult{
		Text:     text,
		Pages:    pages,
		Method:   "pdf-text",
		Duration: time.Since(start),
	}
	e.logger.Debug("extract.pdf.done", "path", path, "pages", pages, "chars", len(text), "duration_ms", res.Duration.Milliseconds())
	return res, nil
}

func (e *PDFExtractor) readPages(ctx context.Context, path string) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, pages, err = "", 0, fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	total := r.NumPage()
	if total == 0 {
		return "", 0, fmt.Errorf("document has no pages")
	}
	if e.cfg.MaxPages > 0 && total > e.cfg.MaxPages {
		total = e.cfg.MaxPages
	}

	parts := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			return "", 0, fmt.Errorf("page %d: missing page object", i)
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", 0, fmt.Errorf("page %d: %w", i, err)
		}
		if strings.TrimSpace(pageText) == "" {
			return "", 0, fmt.Errorf("page %d: no text", i)
		}
		parts = append(parts, pageText)
	}
	return strings.Join(parts, "\n"), total, nil
}
