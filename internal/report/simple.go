package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/merchantscan/merchantscan/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
// Plain ASCII formatting keeps the output pipeable and readable in any
// terminal.
type SimpleWriter struct {
	baseWriter

	// verbose enables the per-merchant listing in addition to the summary.
	verbose bool

	// titler renders place type tags as display labels.
	titler cases.Caser
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the per-merchant listing.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		titler:     cases.Title(language.English),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.ScanReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeCategories(&sb, report)
	if w.verbose {
		w.writeMerchants(&sb, report)
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the run metadata block.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        MERCHANTSCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Location:     %s\n", report.Location))
	sb.WriteString(fmt.Sprintf("Center:       %.6f, %.6f\n", report.Latitude, report.Longitude))
	sb.WriteString(fmt.Sprintf("Radius:       %d m\n", report.Radius))
	sb.WriteString(fmt.Sprintf("Scan Date:    %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("API Requests: %d\n", report.RequestCount))
	sb.WriteString(fmt.Sprintf("Merchants:    %d\n", report.MerchantCount()))
	sb.WriteString("\n")
}

// writeCategories writes the category breakdown section.
func (w *SimpleWriter) writeCategories(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("MERCHANTS BY CATEGORY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if report.MerchantCount() == 0 {
		sb.WriteString("  No consumer-facing merchants found\n\n")
		return
	}

	for _, pair := range sortedCounts(report.CategoryCounts()) {
		sb.WriteString(fmt.Sprintf("  %-40s %d\n", pair.Label, pair.Count))
	}
	sb.WriteString("\n")
}

// writeMerchants writes the per-merchant listing.
func (w *SimpleWriter) writeMerchants(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("MERCHANTS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if report.MerchantCount() == 0 {
		sb.WriteString("  No merchants to list\n\n")
		return
	}

	for _, m := range report.Merchants {
		sb.WriteString(fmt.Sprintf("  * %s [%s]\n", m.Name, m.MCCCode))
		sb.WriteString(fmt.Sprintf("    Type:    %s\n", w.humanizeType(m.PrimaryType())))
		if m.Address != "" {
			sb.WriteString(fmt.Sprintf("    Address: %s\n", m.Address))
		}
		if m.Phone != "" {
			sb.WriteString(fmt.Sprintf("    Phone:   %s\n", m.Phone))
		}
		if m.RatingCount > 0 {
			sb.WriteString(fmt.Sprintf("    Rating:  %.1f (%d reviews)\n", m.Rating, m.RatingCount))
		}
	}
	sb.WriteString("\n")
}

// humanizeType renders a place type tag as a display label, e.g.
// "clothing_store" becomes "Clothing Store".
func (w *SimpleWriter) humanizeType(placeType string) string {
	if placeType == "" {
		return "Unknown"
	}
	return w.titler.String(strings.ReplaceAll(placeType, "_", " "))
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by MerchantScan\n")
	sb.WriteString("https://github.com/merchantscan/merchantscan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
