package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used for every stored and
// exchanged date. Dates compare correctly as plain strings.
const DateLayout = "2006-01-02"

// ParseDate validates an ISO date string and returns it as a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// FormatDate truncates t to its calendar date in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FreezeBoundary returns the first date that may still be changed: today
// plus freezeDays. Everything strictly before it is frozen.
func FreezeBoundary(now time.Time, freezeDays int) string {
	if freezeDays < 0 {
		freezeDays = 0
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return FormatDate(today.AddDate(0, 0, freezeDays))
}

// MaxDate returns the later of two ISO dates. Empty strings are ignored.
func MaxDate(a, b string) string {
	if a == "" {
		return b
	}
	if b > a {
		return b
	}
	return a
}
