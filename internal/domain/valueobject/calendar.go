// Package valueobject contains domain value objects for the ledger.
package valueobject

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DateOf truncates t to a calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FirstOfMonth returns the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateInMonth returns the given day within the month of anchor, clamped to the
// month length (day 31 in April yields April 30).
func DateInMonth(anchor time.Time, day int) time.Time {
	last := DaysInMonth(anchor.Year(), anchor.Month())
	if day > last {
		day = last
	}
	return time.Date(anchor.Year(), anchor.Month(), day, 0, 0, 0, 0, time.UTC)
}

// AddMonths adds n calendar months to date. Unlike time.AddDate, the day is
// clamped to the end of the target month instead of overflowing into the next.
func AddMonths(date time.Time, n int) time.Time {
	date = DateOf(date)
	target := time.Date(date.Year(), date.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return DateInMonth(target, date.Day())
}

// ParseDate parses a yyyy-mm-dd date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}
