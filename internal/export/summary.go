package export

import (
	"context"
	"log/slog"
	"sort"
	"strconv"

	"github.com/sohia/remote-work-tracker/internal/types"
)

// summaryHeader is the flat (metric, value, category) shape of the summary
// export, matching the downstream-analysis convention.
var summaryHeader = []string{"Metric", "Value", "Category"}

// topLocations caps the per-location breakdown to the most frequent values.
const topLocations = 10

// Summary exports aggregate statistics over the whole store as a flat
// metric table: overall totals, then per-category, per-location (top 10),
// and per-job-type counts.
func (e *Exporter) Summary(ctx context.Context, filename string) (*Result, error) {
	records, err := e.store.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		slog.WarnContext(ctx, "no data found in store, export aborted")
		return nil, nil
	}

	rows := summaryRows(records)
	name := defaultedFilename(filename, "remote_jobs_summary")
	return e.writeCSV(ctx, name, summaryHeader, rows)
}

func summaryRows(records []types.JobRecord) [][]string {
	companies := make(map[string]bool)
	categories := newCounter()
	locations := newCounter()
	jobTypes := newCounter()

	for _, rec := range records {
		companies[rec.CompanyName] = true
		categories.add(rec.Category)
		locations.add(rec.CandidateRequiredLocation)
		jobTypes.add(rec.JobType)
	}

	rows := [][]string{
		{"Total Jobs", strconv.Itoa(len(records)), "Overall"},
		{"Unique Companies", strconv.Itoa(len(companies)), "Overall"},
		{"Unique Categories", strconv.Itoa(len(categories.counts)), "Overall"},
	}

	for _, label := range categories.keys {
		rows = append(rows, []string{"Jobs Count", strconv.Itoa(categories.counts[label]), label})
	}
	for _, label := range locations.top(topLocations) {
		rows = append(rows, []string{"Jobs by Location", strconv.Itoa(locations.counts[label]), label})
	}
	for _, label := range jobTypes.keys {
		rows = append(rows, []string{"Jobs by Type", strconv.Itoa(jobTypes.counts[label]), label})
	}

	return rows
}

// counter tallies distinct non-null values while remembering the order they
// were first seen, so tie-breaking stays deterministic.
type counter struct {
	counts map[string]int
	keys   []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(v *string) {
	if v == nil {
		return
	}
	if _, seen := c.counts[*v]; !seen {
		c.keys = append(c.keys, *v)
	}
	c.counts[*v]++
}

// top returns up to n keys sorted by descending count, ties broken by
// first-encountered order.
func (c *counter) top(n int) []string {
	ordered := make([]string, len(c.keys))
	copy(ordered, c.keys)
	sort.SliceStable(ordered, func(i, j int) bool {
		return c.counts[ordered[i]] > c.counts[ordered[j]]
	})
	if len(ordered) > n {
		ordered = ordered[:n]
	}
	return ordered
}
