package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/merchantscan/merchantscan/internal/model"
)

// Writer outputs a scan report in a concrete format. Implementations write
// to files, stdout, or anything else that satisfies io.Writer with the same
// API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.ScanReport) (int, error)
}

// NewWriter creates the Writer for the given format name. It accepts the
// canonical format names and their common aliases.
func NewWriter(format string, output io.Writer) (Writer, error) {
	switch format {
	case "excel", "xlsx":
		return NewExcelWriter(output), nil
	case "markdown", "md":
		return NewMarkdownWriter(output), nil
	case "json":
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case "simple", "text":
		return NewSimpleWriter(output), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// Filename returns the timestamped artifact name for the given format,
// e.g. "merchants_20250114_093045.xlsx".
func Filename(format string, now time.Time) string {
	ext := "txt"
	switch format {
	case "excel", "xlsx":
		ext = "xlsx"
	case "markdown", "md":
		ext = "md"
	case "json":
		ext = "json"
	}
	return fmt.Sprintf("merchants_%s.%s", now.Format("20060102_150405"), ext)
}

// MultiWriter writes to multiple Writers simultaneously, e.g. a terminal
// summary alongside a file artifact. It stops on the first error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
func (m *MultiWriter) Write(report *model.ScanReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides the shared output destination for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// sortedCounts flattens a count map into label/count pairs sorted by
// descending count, then label. Report output must not depend on map
// iteration order.
func sortedCounts(counts map[string]int) []labelCount {
	pairs := make([]labelCount, 0, len(counts))
	for label, count := range counts {
		pairs = append(pairs, labelCount{Label: label, Count: count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Count != pairs[j].Count {
			return pairs[i].Count > pairs[j].Count
		}
		return pairs[i].Label < pairs[j].Label
	})
	return pairs
}

// labelCount is one row of a category breakdown.
type labelCount struct {
	Label string
	Count int
}
