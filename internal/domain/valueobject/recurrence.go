package valueobject

import (
	"fmt"
	"strings"
	"time"
)

// RecurrencePeriod is the spacing between occurrences of a recurring transaction.
type RecurrencePeriod string

const (
	RecurrenceDaily      RecurrencePeriod = "daily"
	RecurrenceWeekly     RecurrencePeriod = "weekly"
	RecurrenceMonthly    RecurrencePeriod = "monthly"
	RecurrenceSemiannual RecurrencePeriod = "semiannual"
	RecurrenceAnnual     RecurrencePeriod = "annual"
)

// ParseRecurrencePeriod parses a period name. An empty value means monthly.
func ParseRecurrencePeriod(value string) (RecurrencePeriod, error) {
	if strings.TrimSpace(value) == "" {
		return RecurrenceMonthly, nil
	}

	period := RecurrencePeriod(strings.ToLower(strings.TrimSpace(value)))
	if !period.IsValid() {
		return "", fmt.Errorf("unknown recurrence period %q", value)
	}
	return period, nil
}

// IsValid reports whether p is a known period.
func (p RecurrencePeriod) IsValid() bool {
	switch p {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceSemiannual, RecurrenceAnnual:
		return true
	}
	return false
}

// Occurrence returns the date of the i-th occurrence counted from base, where
// the base itself is occurrence 0. It is always derived from base rather than
// from the previous occurrence, so month-end dates do not drift
// (Jan 31, Feb 28, Mar 31, Apr 30).
func (p RecurrencePeriod) Occurrence(base time.Time, i int) time.Time {
	base = DateOf(base)
	switch p {
	case RecurrenceDaily:
		return base.AddDate(0, 0, i)
	case RecurrenceWeekly:
		return base.AddDate(0, 0, 7*i)
	case RecurrenceSemiannual:
		return AddMonths(base, 6*i)
	case RecurrenceAnnual:
		return AddMonths(base, 12*i)
	default:
		return AddMonths(base, i)
	}
}
