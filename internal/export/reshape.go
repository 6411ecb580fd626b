package export

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/sohia/remote-work-tracker/internal/types"
)

// analyticsHeader extends the canonical columns with derived calendar parts
// and parsed salary bounds for downstream BI tools.
var analyticsHeader = append(append([]string{}, types.Columns...),
	"year", "month", "month_name", "day", "day_of_week", "quarter",
	"salary_min", "salary_max", "salary_avg",
)

// Analytics exports the full set reshaped for analytic consumption: every
// canonical column plus calendar fields derived from publication_date and
// numeric fields derived from salary_range. Derivation is best effort; parse
// failures yield empty cells, never abort the export.
func (e *Exporter) Analytics(ctx context.Context, filename string) (*Result, error) {
	records, err := e.store.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		slog.WarnContext(ctx, "no data found in store, export aborted")
		return nil, nil
	}

	base := recordRows(records)
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		rows = append(rows, append(base[i], derivedColumns(rec)...))
	}

	name := defaultedFilename(filename, "remote_jobs_analytics")
	return e.writeCSV(ctx, name, analyticsHeader, rows)
}

func derivedColumns(rec types.JobRecord) []string {
	var year, month, monthName, day, dayOfWeek, quarter string
	if t := publicationTime(rec); t != nil {
		year = strconv.Itoa(t.Year())
		month = strconv.Itoa(int(t.Month()))
		monthName = t.Month().String()
		day = strconv.Itoa(t.Day())
		dayOfWeek = t.Weekday().String()
		quarter = strconv.Itoa((int(t.Month())-1)/3 + 1)
	}

	var min, max *float64
	if rec.SalaryRange != nil {
		min, max = ParseSalary(*rec.SalaryRange)
	}
	avg := SalaryAverage(min, max)

	return []string{
		year, month, monthName, day, dayOfWeek, quarter,
		floatField(min), floatField(max), floatField(avg),
	}
}
