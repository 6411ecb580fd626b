// Package normalize maps raw source field bags into canonical job records.
//
// Every source collector speaks the same loose vocabulary ("Job Title",
// "Source URL", ...); this package is the single place that vocabulary is
// translated into the canonical schema. Unknown source fields are dropped,
// missing canonical fields become explicit nils, and per-record parse
// failures never abort the batch.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sohia/remote-work-tracker/internal/types"
)

// setter assigns one recognized source field onto a canonical record.
type setter func(rec *types.JobRecord, value any)

// fieldSetters is the fixed mapping from source vocabulary to canonical
// fields. A source field not present here is ignored (fail closed).
var fieldSetters = map[string]setter{
	"Job ID": func(rec *types.JobRecord, v any) { rec.ID = toInt64(v) },
	"Job Title": func(rec *types.JobRecord, v any) {
		if s := toString(v); s != nil {
			rec.JobTitle = *s
		}
	},
	"Company Name": func(rec *types.JobRecord, v any) {
		if s := toString(v); s != nil {
			rec.CompanyName = *s
		}
	},
	"Publication Date": func(rec *types.JobRecord, v any) {
		if s := toString(v); s != nil {
			rec.PublicationDate = ParseDate(*s)
		}
	},
	"Job Type":                    func(rec *types.JobRecord, v any) { rec.JobType = toString(v) },
	"Category":                    func(rec *types.JobRecord, v any) { rec.Category = toString(v) },
	"Candidate Required Location": func(rec *types.JobRecord, v any) { rec.CandidateRequiredLocation = toString(v) },
	"Salary Range":                func(rec *types.JobRecord, v any) { rec.SalaryRange = toString(v) },
	"Job Description":             func(rec *types.JobRecord, v any) { rec.JobDescription = toString(v) },
	"Source URL": func(rec *types.JobRecord, v any) {
		if s := toString(v); s != nil {
			rec.SourceURL = *s
		}
	},
	"Company Logo": func(rec *types.JobRecord, v any) { rec.CompanyLogo = toString(v) },
	"Job Board": func(rec *types.JobRecord, v any) {
		if s := toString(v); s != nil {
			rec.JobBoard = *s
		}
	},
}

// Batch converts a raw batch into canonical candidates, preserving order.
// The ingestion timestamp is captured once for the whole batch.
func Batch(records []types.RawRecord) []types.JobRecord {
	return batchAt(records, time.Now())
}

func batchAt(records []types.RawRecord, now time.Time) []types.JobRecord {
	ts := now.Format(time.RFC3339)
	out := make([]types.JobRecord, 0, len(records))
	for _, raw := range records {
		rec := types.JobRecord{IngestionTimestamp: ts}
		for field, set := range fieldSetters {
			v, ok := raw[field]
			if !ok {
				continue
			}
			set(&rec, v)
		}
		out = append(out, rec)
	}
	return out
}

// dateLayouts are the ISO-8601 shapes accepted for publication dates, tried
// in order. Anything else is a parse failure, not a guess.
var dateLayouts = []struct {
	layout string
	naive  bool
}{
	{"2006-01-02T15:04:05-07:00", false},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02", true},
}

// ParseDate normalizes an ISO-8601 date-time string. A trailing "Z" is
// treated as the explicit UTC offset "+00:00". Returns nil when the input
// does not match any accepted shape; the failure is the caller's signal that
// the record simply has no usable date.
func ParseDate(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, dl := range dateLayouts {
		t, err := time.Parse(dl.layout, s)
		if err != nil {
			continue
		}
		var formatted string
		if dl.naive {
			formatted = t.Format("2006-01-02T15:04:05")
		} else {
			formatted = t.Format("2006-01-02T15:04:05-07:00")
		}
		return &formatted
	}
	return nil
}

// toString converts a raw value to a trimmed string pointer, mapping every
// not-a-value sentinel (absent, nil, empty, whitespace, NaN) to nil.
func toString(v any) *string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" || strings.EqualFold(s, "nan") {
			return nil
		}
		return &s
	case float64:
		if math.IsNaN(val) {
			return nil
		}
		s := strconv.FormatFloat(val, 'f', -1, 64)
		return &s
	case int:
		s := strconv.Itoa(val)
		return &s
	case int64:
		s := strconv.FormatInt(val, 10)
		return &s
	case bool:
		s := strconv.FormatBool(val)
		return &s
	default:
		return nil
	}
}

// toInt64 converts a raw id value to an int64 pointer. Source ids arrive as
// JSON numbers (float64), native ints, or numeric strings.
func toInt64(v any) *int64 {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) {
			return nil
		}
		n := int64(val)
		return &n
	case int:
		n := int64(val)
		return &n
	case int64:
		return &val
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}
