package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/merchantscan/merchantscan/internal/model"
)

// sampleReport returns a fixed two-merchant report for writer tests.
func sampleReport() *model.ScanReport {
	return &model.ScanReport{
		RunID:        "run-1",
		Location:     "New York, NY",
		Latitude:     40.7128,
		Longitude:    -74.0060,
		Radius:       5000,
		StartedAt:    time.Date(2025, 1, 14, 9, 30, 45, 0, time.UTC),
		Duration:     3 * time.Second,
		RequestCount: 7,
		Merchants: []model.Merchant{
			{
				Name:          "Test Restaurant",
				Address:       "123 Test St",
				Latitude:      40.7128,
				Longitude:     -74.0060,
				BusinessTypes: []string{"restaurant", "food"},
				MCCCode:       "5812",
				MCCCategory:   "Food & Beverage",
				PlaceID:       "p1",
				Rating:        4.5,
				RatingCount:   100,
				PriceLevel:    2,
				IsOpen:        true,
				Phone:         "+1 212-555-0100",
				Website:       "https://example.com",
			},
			{
				Name:          "Corner Boutique",
				Address:       "456 Test Ave",
				BusinessTypes: []string{"clothing_store", "store"},
				MCCCode:       "5651",
				MCCCategory:   "Retail",
				PlaceID:       "p2",
			},
		},
	}
}

// TestFilename tests artifact naming.
func TestFilename(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 14, 9, 30, 45, 0, time.UTC)

	tests := []struct {
		format string
		want   string
	}{
		{"excel", "merchants_20250114_093045.xlsx"},
		{"xlsx", "merchants_20250114_093045.xlsx"},
		{"markdown", "merchants_20250114_093045.md"},
		{"json", "merchants_20250114_093045.json"},
		{"simple", "merchants_20250114_093045.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()
			if got := Filename(tt.format, now); got != tt.want {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
		})
	}
}

// TestNewWriter tests the format-to-writer factory.
func TestNewWriter(t *testing.T) {
	t.Parallel()

	t.Run("supported formats", func(t *testing.T) {
		t.Parallel()
		for _, format := range []string{"excel", "xlsx", "markdown", "md", "json", "simple", "text"} {
			if _, err := NewWriter(format, &bytes.Buffer{}); err != nil {
				t.Errorf("format %q: unexpected error: %v", format, err)
			}
		}
	})

	t.Run("unknown format is an error", func(t *testing.T) {
		t.Parallel()
		if _, err := NewWriter("csv", &bytes.Buffer{}); err == nil {
			t.Error("expected an error for an unknown format")
		}
	})
}

// TestJSONWriter tests structured output.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("output decodes with derived counts", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		n, err := w.Write(sampleReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
		}

		var decoded struct {
			Location       string         `json:"location"`
			Merchants      []model.Merchant `json:"merchants"`
			CategoryCounts map[string]int `json:"category_counts"`
			GroupCounts    map[string]int `json:"group_counts"`
		}
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Location != "New York, NY" {
			t.Errorf("got location %q", decoded.Location)
		}
		if len(decoded.Merchants) != 2 {
			t.Errorf("got %d merchants, expected 2", len(decoded.Merchants))
		}
		if decoded.CategoryCounts["Food & Beverage"] != 1 || decoded.CategoryCounts["Retail"] != 1 {
			t.Errorf("unexpected category counts: %+v", decoded.CategoryCounts)
		}
		if decoded.GroupCounts["Food & Beverage"] != 1 {
			t.Errorf("unexpected group counts: %+v", decoded.GroupCounts)
		}
	})

	t.Run("compact output is a single line", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := strings.Count(strings.TrimRight(buf.String(), "\n"), "\n"); got != 0 {
			t.Errorf("compact output spans %d extra lines", got+1)
		}
	})
}

// TestSimpleWriter tests terminal output.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("summary includes metadata and category counts", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"MERCHANTSCAN REPORT",
			"New York, NY",
			"Merchants:    2",
			"Food & Beverage",
			"Retail",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
		if strings.Contains(out, "Test Restaurant") {
			t.Error("merchant listing shown without verbose")
		}
	})

	t.Run("verbose lists merchants with humanized types", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))

		if _, err := w.Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "Test Restaurant [5812]") {
			t.Error("verbose output missing the merchant listing")
		}
		if !strings.Contains(out, "Clothing Store") {
			t.Error("expected clothing_store rendered as Clothing Store")
		}
	})

	t.Run("empty report states so", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		empty := model.NewScanReport("nowhere at all", 5000)
		if _, err := w.Write(empty); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No consumer-facing merchants found") {
			t.Error("empty report missing the no-merchants notice")
		}
	})
}

// TestMarkdownWriter tests Markdown output.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders metadata, chart, and merchant table", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"# MerchantScan Report",
			"New York, NY",
			"```mermaid",
			"Merchant Category Distribution",
			"Test Restaurant",
			"5812",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("empty report skips the chart", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		empty := model.NewScanReport("nowhere at all", 5000)
		if _, err := w.Write(empty); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "```mermaid") {
			t.Error("empty report should not include a pie chart")
		}
	})
}

// TestExcelWriter tests the XLSX artifact by reading it back.
func TestExcelWriter(t *testing.T) {
	t.Parallel()

	t.Run("workbook round-trips header and rows", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		w := NewExcelWriter(&buf)

		n, err := w.Write(sampleReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n == 0 {
			t.Fatal("expected a non-empty workbook")
		}

		f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("workbook does not open: %v", err)
		}
		defer f.Close() //nolint:errcheck // Read-only workbook

		got, err := f.GetCellValue("Merchants", "A1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Name" {
			t.Errorf("got header %q, expected Name", got)
		}

		got, err = f.GetCellValue("Merchants", "A2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Test Restaurant" {
			t.Errorf("got first row %q, expected Test Restaurant", got)
		}

		got, err = f.GetCellValue("Merchants", "F3")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "5651" {
			t.Errorf("got second row MCC %q, expected 5651", got)
		}

		got, err = f.GetCellValue("Summary", "B2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "New York, NY" {
			t.Errorf("got summary location %q", got)
		}
	})
}

// TestMultiWriter tests fan-out to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to every destination", func(t *testing.T) {
		t.Parallel()
		var a, b bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b))

		total, err := mw.Write(sampleReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != a.Len()+b.Len() {
			t.Errorf("got total %d, expected %d", total, a.Len()+b.Len())
		}
	})

	t.Run("stops on the first failing writer", func(t *testing.T) {
		t.Parallel()
		var b bytes.Buffer
		mw := NewMultiWriter(&failingWriter{}, NewJSONWriter(&b))

		if _, err := mw.Write(sampleReport()); err == nil {
			t.Fatal("expected the failure to propagate")
		}
		if b.Len() != 0 {
			t.Error("writer after the failure should not run")
		}
	})
}

// failingWriter always fails, for MultiWriter error-path tests.
type failingWriter struct{}

func (f *failingWriter) Write(_ *model.ScanReport) (int, error) {
	return 0, errors.New("write failed")
}
