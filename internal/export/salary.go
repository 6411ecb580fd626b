package export

import (
	"strconv"
	"strings"
)

// ParseSalary extracts numeric bounds from a free-text salary range.
//
// Recognized shapes, after stripping currency symbols and thousands
// separators and expanding a "k" multiplier:
//
//	"$80,000 - $120,000" -> 80000, 120000
//	"120000"             -> 120000, 120000
//	"$90k"               -> 90000, 90000
//
// Anything outside those shapes returns nil, nil. In particular, hourly
// strings like "$50/hr - $70/hr" fail the numeric conversion and degrade to
// nil rather than a wrong figure.
func ParseSalary(raw string) (min, max *float64) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "k", "000")

	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, nil
		}
		hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, nil
		}
		return &lo, &hi
	}

	val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, nil
	}
	return &val, &val
}

// SalaryAverage returns (min+max)/2, or nil when either bound is missing.
func SalaryAverage(min, max *float64) *float64 {
	if min == nil || max == nil {
		return nil
	}
	avg := (*min + *max) / 2
	return &avg
}
