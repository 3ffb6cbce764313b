package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/merchantscan/merchantscan/internal/model"
)

// MarkdownWriter outputs reports in GitHub-flavored Markdown, with a
// mermaid pie chart for the category distribution. This format is for
// documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeCategories(md, report)
	w.writeMerchants(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and run metadata table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ScanReport) {
	md.H1("MerchantScan Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Location", report.Location},
			{"Center", fmt.Sprintf("%.6f, %.6f", report.Latitude, report.Longitude)},
			{"Radius", strconv.Itoa(report.Radius) + " m"},
			{"Scan Date", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"API Requests", strconv.Itoa(report.RequestCount)},
			{"Merchants", strconv.Itoa(report.MerchantCount())},
			{"Run ID", "`" + report.RunID + "`"},
		},
	})
	md.PlainText("")
}

// writeCategories writes the category breakdown tables and the
// distribution pie chart.
func (w *MarkdownWriter) writeCategories(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Category Breakdown")
	md.PlainText("")

	if report.MerchantCount() == 0 {
		md.Note("No consumer-facing merchants were found in the search area.")
		md.PlainText("")
		return
	}

	rows := [][]string{}
	for _, pair := range sortedCounts(report.CategoryCounts()) {
		rows = append(rows, []string{pair.Label, strconv.Itoa(pair.Count)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"MCC Category", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, report)

	md.H3("Business Groups")
	md.PlainText("")
	rows = rows[:0]
	for _, pair := range sortedCounts(report.CoarseCounts()) {
		rows = append(rows, []string{pair.Label, strconv.Itoa(pair.Count)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Group", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of the MCC category
// distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.ScanReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Merchant Category Distribution"),
		piechart.WithShowData(true),
	)

	for _, pair := range sortedCounts(report.CategoryCounts()) {
		chart.LabelAndIntValue(pair.Label, uint64(pair.Count))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeMerchants writes the merchant table in discovery order.
func (w *MarkdownWriter) writeMerchants(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Merchants")
	md.PlainText("")

	if report.MerchantCount() == 0 {
		md.PlainText("No merchants to list.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Merchants))
	for i, m := range report.Merchants {
		rating := "-"
		if m.RatingCount > 0 {
			rating = fmt.Sprintf("%.1f (%d)", m.Rating, m.RatingCount)
		}
		phone := m.Phone
		if phone == "" {
			phone = "-"
		}
		rows[i] = []string{
			m.Name,
			m.MCCCode,
			m.MCCCategory,
			rating,
			truncateString(m.Address, 40),
			phone,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Name", "MCC", "Category", "Rating", "Address", "Phone"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [MerchantScan](https://github.com/merchantscan/merchantscan)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
