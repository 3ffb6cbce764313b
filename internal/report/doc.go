// Package report renders scan results in the supported output formats:
//   - ExcelWriter: XLSX workbook, the primary file artifact
//   - MarkdownWriter: Markdown with a mermaid category chart
//   - JSONWriter: structured output for tool integration
//   - SimpleWriter: human-readable text for terminal display
//
// Writers implement the Writer interface, so they can be used
// interchangeably and composed with MultiWriter for simultaneous terminal
// and file output. Report data structures live in the model package;
// this package only renders them.
package report
