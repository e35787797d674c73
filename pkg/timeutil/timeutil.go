// Package timeutil provides calendar-day utilities for habit tracking.
// Every day is represented as a time.Time at 00:00:00 UTC so that day
// arithmetic is independent of time-of-day and daylight saving changes.
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// Layouts used across storage and presentation.
const (
	// FormatDate is the canonical day layout (YYYY-MM-DD).
	FormatDate = "2006-01-02"

	// FormatDateTime is used for console output.
	FormatDateTime = "2006-01-02 15:04:05"
)

const day = 24 * time.Hour

// StartOfDay returns the calendar day of t as 00:00:00 UTC.
// The calendar date is taken from t's own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date creates a UTC day from its components.
func Date(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day in UTC.
func Today() time.Time {
	return StartOfDay(time.Now().UTC())
}

// DaysBetween returns the signed number of calendar days from a to b.
// DaysBetween(Monday, Tuesday) == 1 and DaysBetween(Tuesday, Monday) == -1.
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)) / day)
}

// IsSameDay checks if two times fall on the same calendar day.
func IsSameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

// IsConsecutiveDay checks if b is the calendar day right after a.
func IsConsecutiveDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 1
}

// FormatDateStr formats a day as YYYY-MM-DD.
func FormatDateStr(t time.Time) string {
	return StartOfDay(t).Format(FormatDate)
}

// ParseDate parses a YYYY-MM-DD string into a UTC day.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(FormatDate, value, time.UTC)
}
