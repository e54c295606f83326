// Package biztime provides the time conventions for usage accounting.
// All storage and transport use UTC; the accounting period is the UTC
// calendar month, identified by a "YYYY-MM" month key.
package biztime

import (
	"fmt"
	"regexp"
	"time"
)

// MonthKeyLayout is the time layout producing a "YYYY-MM" month key.
const MonthKeyLayout = "2006-01"

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// CurrentMonthKey returns the month key for the current UTC wall-clock time.
func CurrentMonthKey() string {
	return NowUTC().Format(MonthKeyLayout)
}

// MonthKeyOf returns the month key for the given instant, evaluated in UTC.
func MonthKeyOf(t time.Time) string {
	return t.UTC().Format(MonthKeyLayout)
}

// ValidMonthKey reports whether s is a well-formed "YYYY-MM" month key.
func ValidMonthKey(s string) bool {
	return monthKeyPattern.MatchString(s)
}

// MonthStart returns the UTC instant at which the month identified by key
// begins. Returns an error for malformed keys.
func MonthStart(key string) (time.Time, error) {
	if !ValidMonthKey(key) {
		return time.Time{}, fmt.Errorf("invalid month key %q", key)
	}
	t, err := time.ParseInLocation(MonthKeyLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return t, nil
}

// NextMonthStart returns the UTC instant at which the month following the
// given instant begins. Used to schedule the monthly counter reset.
func NextMonthStart(from time.Time) time.Time {
	from = from.UTC()
	return time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}
