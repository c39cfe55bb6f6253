package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/decisions-extractor/internal/repository"
)

const sheet = "Decisions"

// Service is a tiny façade over the decision store that produces XLSX bytes for exports.
type Service struct {
	decisions repository.DecisionRepository
	logger    *slog.Logger
}

func NewService(decisions repository.DecisionRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{decisions: decisions, logger: logger}
}

// ExportDecisionsXLSX returns every stored decision, ordered by id, as an XLSX
// workbook. Absent fields are left as empty cells.
func (s *Service) ExportDecisionsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	recs, err := s.decisions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Decision Date", "Debt Amount", "Fine Amount"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, d := range recs {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, d.ID)
		// amounts stay text: they are stored exactly as extracted
		for col, v := range []*string{d.DecisionDate, d.DebtAmount, d.FineAmount} {
			if v != nil {
				write(col+2, *v)
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 8)
	_ = f.SetColWidth(sheet, "B", "D", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
