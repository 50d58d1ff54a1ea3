package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/claimlens/estimate-ledger/internal/ledger"
	"github.com/claimlens/estimate-ledger/internal/pipeline"
)

// Service produces XLSX bytes from processed document results.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportLedgerXLSX returns an XLSX workbook (as bytes) with one "Ledger"
// sheet of bucket totals per document and one "Lines" sheet of the atomic
// money lines behind them. Amounts are written as exact decimal strings so
// spreadsheet float coercion cannot introduce drift.
func (s *Service) ExportLedgerXLSX(results []*pipeline.DocumentResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const ledgerSheet = "Ledger"
	const linesSheet = "Lines"

	if err := prepareSheet(f, ledgerSheet); err != nil {
		return nil, err
	}
	if err := prepareSheet(f, linesSheet); err != nil {
		return nil, err
	}
	// drop excelize's default sheet
	_ = f.DeleteSheet("Sheet1")
	activeIndex, _ := f.GetSheetIndex(ledgerSheet)
	f.SetActiveSheet(activeIndex)

	writeHeader(f, ledgerSheet, []string{"Document", "Role", "Bucket", "Total"})
	writeHeader(f, linesSheet, []string{"Document", "Line ID", "Raw Line", "Bucket", "Amount", "Text"})

	ledgerRow, lineRow := 2, 2
	for _, res := range results {
		for _, bt := range res.Ordered {
			writeRow(f, ledgerSheet, ledgerRow, []any{
				res.Filename,
				string(res.Role),
				string(bt.Bucket),
				ledger.FormatMoney(bt.Total),
			})
			ledgerRow++
		}
		for _, ml := range res.MoneyLines {
			writeRow(f, linesSheet, lineRow, []any{
				res.Filename,
				ml.ID,
				ml.RawLineNo + 1,
				string(res.BucketMap[ml.ID]),
				ml.Amount.StringFixed(2),
				truncate(ml.Text, 140),
			})
			lineRow++
		}
	}

	_ = f.SetColWidth(ledgerSheet, "A", "A", 32)
	_ = f.SetColWidth(ledgerSheet, "B", "C", 22)
	_ = f.SetColWidth(ledgerSheet, "D", "D", 14)
	_ = f.SetColWidth(linesSheet, "A", "A", 32)
	_ = f.SetColWidth(linesSheet, "B", "C", 10)
	_ = f.SetColWidth(linesSheet, "D", "D", 22)
	_ = f.SetColWidth(linesSheet, "E", "E", 14)
	_ = f.SetColWidth(linesSheet, "F", "F", 72)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"documents", len(results),
		"ledger_rows", ledgerRow-2,
		"line_rows", lineRow-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func prepareSheet(f *excelize.File, sheet string) error {
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
