// Package export projects the canonical store into CSV output files.
//
// Every operation reads the full canonical set, applies a pure in-memory
// transform, and writes exactly one UTF-8 CSV with a header row. Nothing
// here mutates stored state.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sohia/remote-work-tracker/internal/store"
	"github.com/sohia/remote-work-tracker/internal/types"
)

// Exporter writes projections of the canonical store to an output directory.
type Exporter struct {
	store     *store.Store
	outputDir string
}

// Result describes a completed export. A nil Result with a nil error means
// there was nothing to export, which is an outcome, not a failure.
type Result struct {
	Path string
	Rows int
}

// New creates an Exporter, ensuring the output directory exists.
func New(s *store.Store, outputDir string) (*Exporter, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	return &Exporter{store: s, outputDir: outputDir}, nil
}

// All exports every stored record, all columns.
func (e *Exporter) All(ctx context.Context, filename string) (*Result, error) {
	records, err := e.store.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		slog.WarnContext(ctx, "no data found in store, export aborted")
		return nil, nil
	}

	name := defaultedFilename(filename, "remote_jobs_export")
	return e.writeCSV(ctx, name, types.Columns, recordRows(records))
}

// ByCategory exports records whose category exactly matches the given value.
// Zero matches is reported as a nil Result, not an error.
func (e *Exporter) ByCategory(ctx context.Context, category, filename string) (*Result, error) {
	records, err := e.store.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	var matched []types.JobRecord
	for _, rec := range records {
		if rec.Category != nil && *rec.Category == category {
			matched = append(matched, rec)
		}
	}
	if len(matched) == 0 {
		slog.WarnContext(ctx, "no jobs found for category", "category", category)
		return nil, nil
	}

	name := defaultedFilename(filename, "remote_jobs_"+sanitizeForFilename(category))
	return e.writeCSV(ctx, name, types.Columns, recordRows(matched))
}

// ByDateRange exports records whose publication date falls inside
// [start, end], both endpoints inclusive. Dates are YYYY-MM-DD; the end
// bound covers the whole end day. Records with missing or unparseable
// publication dates can never satisfy the bounds and are excluded.
func (e *Exporter) ByDateRange(ctx context.Context, start, end, filename string) (*Result, error) {
	startT, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endT, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	endExclusive := endT.AddDate(0, 0, 1)

	records, err := e.store.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	var matched []types.JobRecord
	for _, rec := range records {
		t := publicationTime(rec)
		if t == nil {
			continue
		}
		if !t.Before(startT) && t.Before(endExclusive) {
			matched = append(matched, rec)
		}
	}
	if len(matched) == 0 {
		slog.WarnContext(ctx, "no jobs found in date range", "start", start, "end", end)
		return nil, nil
	}

	name := defaultedFilename(filename, fmt.Sprintf("remote_jobs_%s_to_%s", start, end))
	return e.writeCSV(ctx, name, types.Columns, recordRows(matched))
}

// publicationTime parses a stored publication date into a comparable
// instant. Stored dates are either offset-aware or naive ISO-8601; naive
// values are compared as UTC.
func publicationTime(rec types.JobRecord) *time.Time {
	if rec.PublicationDate == nil {
		return nil
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05-07:00",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.Parse(layout, *rec.PublicationDate); err == nil {
			return &t
		}
	}
	return nil
}

// recordRows projects records into CSV rows following types.Columns order.
func recordRows(records []types.JobRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			int64Field(rec.ID),
			rec.JobTitle,
			rec.CompanyName,
			stringField(rec.PublicationDate),
			stringField(rec.JobType),
			stringField(rec.Category),
			stringField(rec.CandidateRequiredLocation),
			stringField(rec.SalaryRange),
			stringField(rec.JobDescription),
			rec.SourceURL,
			stringField(rec.CompanyLogo),
			rec.JobBoard,
			rec.IngestionTimestamp,
		})
	}
	return rows
}

func stringField(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func int64Field(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func floatField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// defaultedFilename applies the timestamped default when the caller supplied
// no filename, and enforces the .csv extension either way.
func defaultedFilename(filename, defaultStem string) string {
	if filename == "" {
		filename = fmt.Sprintf("%s_%s.csv", defaultStem, time.Now().Format("20060102_150405"))
	}
	if !strings.HasSuffix(filename, ".csv") {
		filename += ".csv"
	}
	return filename
}

// sanitizeForFilename makes a category label safe to embed in a filename.
func sanitizeForFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "/", "_")
	return s
}

// writeCSV writes one header row plus the given rows, UTF-8 encoded.
func (e *Exporter) writeCSV(ctx context.Context, filename string, header []string, rows [][]string) (*Result, error) {
	path := filepath.Join(e.outputDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write rows: %w", err)
	}

	slog.InfoContext(ctx, "export written", "path", path, "rows", len(rows))
	return &Result{Path: path, Rows: len(rows)}, nil
}
