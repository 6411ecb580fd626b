// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/sohia/remote-work-tracker/internal/store"
	"github.com/sohia/remote-work-tracker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCollectedBatch outputs a sample of the raw records a collector
// returned, before normalization.
func (p *Printer) PrintCollectedBatch(source string, records []types.RawRecord) {
	if len(records) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:  %s\n", source))
	sb.WriteString(fmt.Sprintf("Records: %d\n\n", len(records)))

	count := min(len(records), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := records[i]
		title, _ := rec["Job Title"].(string)
		company, _ := rec["Company Name"].(string)
		sb.WriteString(fmt.Sprintf("  • %s", title))
		if company != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", company))
		}
		sb.WriteString("\n")
	}
	if len(records) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(records)-maxItemsToShow))
	}

	p.printBox("COLLECTED BATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInsertReport outputs the outcome of a batch insert.
func (p *Printer) PrintInsertReport(source string, report store.InsertReport) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:    %s\n", source))
	sb.WriteString(fmt.Sprintf("Attempted: %d\n", report.Attempted))
	sb.WriteString(fmt.Sprintf("Inserted:  %d\n", report.Inserted))
	sb.WriteString(fmt.Sprintf("Skipped:   %d (already stored)", report.Skipped))

	p.printBox("INGEST REPORT", sb.String())
}
