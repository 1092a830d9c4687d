// Package excel renders processed document results into an XLSX
// workbook for download by back-office users.
package excel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/achartier/docintel/internal/core/domain"
	"github.com/achartier/docintel/internal/core/ports"
)

type Service struct {
	repo   ports.DocumentRepository
	logger *slog.Logger
}

func NewService(repo ports.DocumentRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ExportXLSX returns a workbook of ready documents in the date window.
// A from without a to means from..today; neither means everything.
func (s *Service) ExportXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	var fromDate, toDate *time.Time
	if from != nil {
		f := dateOnly(*from)
		fromDate = &f
	}
	if to != nil {
		t := dateOnly(*to).AddDate(0, 0, 1) // inclusive end of day
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		t := dateOnly(time.Now().UTC()).AddDate(0, 0, 1)
		toDate = &t
	}

	docs, err := s.repo.ListProcessed(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query processed documents: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Documents"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{
		"Processed At",
		"Filename",
		"Document Type",
		"Confidence",
		"Reference",
		"Counterparty",
		"Amount",
		"Currency",
		"Summary",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, doc := range docs {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, doc.UpdatedAt.UTC().Format("2006-01-02 15:04"))
		write(2, doc.Filename)

		result := doc.Result
		if result == nil {
			continue
		}
		if result.Classification != nil {
			write(3, string(result.Classification.DocumentType))
			write(4, result.Classification.Confidence)
		}
		if result.Extraction != nil {
			ref, counterparty, amount, currency := keyColumns(result.Extraction.Fields)
			write(5, ref)
			write(6, counterparty)
			if amount != nil {
				write(7, *amount)
			}
			write(8, currency)
		}
		if result.Summary != nil {
			write(9, excerpt(result.Summary.Summary, 200))
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 18)
	_ = f.SetColWidth(sheet, "B", "B", 32)
	_ = f.SetColWidth(sheet, "C", "D", 14)
	_ = f.SetColWidth(sheet, "E", "F", 26)
	_ = f.SetColWidth(sheet, "G", "H", 12)
	_ = f.SetColWidth(sheet, "I", "I", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export_xlsx_ok",
		"rows", len(docs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// keyColumns flattens the typed field variants into the four columns
// shared by every document type.
func keyColumns(fields domain.ExtractedFields) (ref, counterparty string, amount *float64, currency string) {
	switch f := fields.(type) {
	case domain.InvoiceFields:
		return deref(f.InvoiceNumber), deref(f.VendorName), f.TotalAmount, deref(f.Currency)
	case domain.ContractFields:
		return "", strings.Join(f.Parties, "; "), f.ContractValue, deref(f.Currency)
	case domain.QuoteFields:
		return deref(f.QuoteNumber), deref(f.VendorName), f.TotalAmount, deref(f.Currency)
	case domain.TenderFields:
		return deref(f.Reference), deref(f.Issuer), f.EstimatedValue, deref(f.Currency)
	case domain.LicenseFields:
		return deref(f.LicenseType), deref(f.Licensor), f.Fee, ""
	default:
		return "", "", nil, ""
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
