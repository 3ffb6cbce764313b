package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/merchantscan/merchantscan/internal/model"
)

// merchantHeaders are the merchant sheet columns, in output order.
var merchantHeaders = []string{
	"Name",
	"Address",
	"Latitude",
	"Longitude",
	"Business Types",
	"MCC Code",
	"MCC Category",
	"Place ID",
	"Rating",
	"Rating Count",
	"Price Level",
	"Is Open",
	"Phone",
	"Website",
}

// merchantColWidths are the merchant sheet column widths, matching the
// header order.
var merchantColWidths = []float64{30, 35, 12, 12, 35, 10, 28, 30, 8, 12, 11, 8, 18, 35}

const (
	merchantsSheet = "Merchants"
	summarySheet   = "Summary"
)

// ExcelWriter outputs reports as an XLSX workbook: a Merchants sheet with
// one row per merchant and a Summary sheet with run metadata and category
// breakdowns. This is the primary artifact format.
type ExcelWriter struct {
	baseWriter
}

// NewExcelWriter creates an ExcelWriter that outputs to the given writer.
func NewExcelWriter(output io.Writer) *ExcelWriter {
	return &ExcelWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report as an XLSX workbook.
func (w *ExcelWriter) Write(report *model.ScanReport) (int, error) {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // In-memory workbook close error is not actionable

	if err := f.SetSheetName("Sheet1", merchantsSheet); err != nil {
		return 0, fmt.Errorf("excel report: %w", err)
	}
	if err := w.writeMerchants(f, report); err != nil {
		return 0, fmt.Errorf("excel report: %w", err)
	}
	if err := w.writeSummary(f, report); err != nil {
		return 0, fmt.Errorf("excel report: %w", err)
	}

	n, err := f.WriteTo(w.output)
	if err != nil {
		return int(n), fmt.Errorf("excel report: %w", err)
	}
	return int(n), nil
}

// writeMerchants fills the merchant sheet: styled header row, frozen panes,
// one row per merchant in discovery order.
func (w *ExcelWriter) writeMerchants(f *excelize.File, report *model.ScanReport) error {
	header := make([]any, len(merchantHeaders))
	for i, h := range merchantHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(merchantsSheet, "A1", &header); err != nil {
		return err
	}

	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(merchantHeaders))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(merchantsSheet, "A1", lastCol+"1", style); err != nil {
		return err
	}

	for i, width := range merchantColWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(merchantsSheet, col, col, width); err != nil {
			return err
		}
	}

	// Keep the header visible while scrolling.
	if err := f.SetPanes(merchantsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	for i, m := range report.Merchants {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			m.Name,
			m.Address,
			m.Latitude,
			m.Longitude,
			strings.Join(m.BusinessTypes, ", "),
			m.MCCCode,
			m.MCCCategory,
			m.PlaceID,
			m.Rating,
			m.RatingCount,
			m.PriceLevel,
			m.IsOpen,
			m.Phone,
			m.Website,
		}
		if err := f.SetSheetRow(merchantsSheet, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

// writeSummary fills the summary sheet: run metadata followed by the MCC
// category and coarse category breakdowns.
func (w *ExcelWriter) writeSummary(f *excelize.File, report *model.ScanReport) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	style, err := headerStyle(f)
	if err != nil {
		return err
	}

	rows := [][]any{
		{"Run ID", report.RunID},
		{"Location", report.Location},
		{"Center", fmt.Sprintf("%.6f, %.6f", report.Latitude, report.Longitude)},
		{"Radius (m)", report.Radius},
		{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
		{"Duration", report.Duration.Round(time.Millisecond).String()},
		{"API Requests", report.RequestCount},
		{"Merchants", report.MerchantCount()},
	}

	line := 1
	for _, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(summarySheet, cell, &r); err != nil {
			return err
		}
		line++
	}

	line++
	line, err = w.writeBreakdown(f, style, line, "Merchants by MCC Category", report.CategoryCounts())
	if err != nil {
		return err
	}

	line++
	if _, err := w.writeBreakdown(f, style, line, "Merchants by Business Group", report.CoarseCounts()); err != nil {
		return err
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 34); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "B", "B", 40)
}

// writeBreakdown writes one titled label/count section starting at the
// given line, returning the next free line.
func (w *ExcelWriter) writeBreakdown(f *excelize.File, style int, line int, title string, counts map[string]int) (int, error) {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return line, err
	}
	titleRow := []any{title, "Count"}
	if err := f.SetSheetRow(summarySheet, cell, &titleRow); err != nil {
		return line, err
	}
	if err := f.SetCellStyle(summarySheet, cell, "B"+cell[1:], style); err != nil {
		return line, err
	}
	line++

	for _, pair := range sortedCounts(counts) {
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return line, err
		}
		row := []any{pair.Label, pair.Count}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return line, err
		}
		line++
	}

	return line, nil
}

// headerStyle returns the shared header row style: bold white text on a
// steel blue fill with thin borders.
func headerStyle(f *excelize.File) (int, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	return f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Border: border,
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
}
