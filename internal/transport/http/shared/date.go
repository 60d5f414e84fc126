package shared

import (
	"strconv"
	"strings"
	"time"
)

// ParseDate accepts RFC3339 or YYYY-MM-DD. Blank input yields the zero time.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

// Date parses a calendar date and normalises it to midnight UTC.
func (v *Validator) Date(field, raw string) (time.Time, bool) {
	parsed, err := ParseDate(strings.TrimSpace(raw))
	if err != nil || parsed.IsZero() {
		v.Add(field, "must be a valid date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	y, m, d := parsed.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
}

// YearMonth reads the year and month query parameters, defaulting to the
// current UTC month when both are absent.
func (v *Validator) YearMonth(rawYear, rawMonth string, now time.Time) (int, time.Month) {
	rawYear, rawMonth = strings.TrimSpace(rawYear), strings.TrimSpace(rawMonth)
	year, month := now.UTC().Year(), now.UTC().Month()
	if rawYear == "" && rawMonth == "" {
		return year, month
	}

	y, err := strconv.Atoi(rawYear)
	if err != nil || y < 1 || y > 9999 {
		v.Add("year", "must be a year between 1 and 9999")
	}
	m, err := strconv.Atoi(rawMonth)
	if err != nil || m < 1 || m > 12 {
		v.Add("month", "must be a month between 1 and 12")
	}
	return y, time.Month(m)
}
