package valueobject

import (
	"testing"
	"time"
)

func TestRecurrencePeriod_Occurrence(t *testing.T) {
	t.Run("monthly keeps month end", func(t *testing.T) {
		base := date(2023, time.January, 31)
		want := []time.Time{
			date(2023, time.January, 31),
			date(2023, time.February, 28),
			date(2023, time.March, 31),
			date(2023, time.April, 30),
		}
		for i, expected := range want {
			got := RecurrenceMonthly.Occurrence(base, i)
			if !got.Equal(expected) {
				t.Errorf("occurrence %d: expected %s, got %s", i, expected.Format(DateLayout), got.Format(DateLayout))
			}
		}
	})

	t.Run("monthly in a leap year", func(t *testing.T) {
		got := RecurrenceMonthly.Occurrence(date(2024, time.January, 31), 1)
		if !got.Equal(date(2024, time.February, 29)) {
			t.Errorf("expected 2024-02-29, got %s", got.Format(DateLayout))
		}
	})

	tests := []struct {
		period RecurrencePeriod
		base   time.Time
		i      int
		want   time.Time
	}{
		{RecurrenceDaily, date(2023, time.December, 31), 1, date(2024, time.January, 1)},
		{RecurrenceWeekly, date(2023, time.February, 22), 2, date(2023, time.March, 8)},
		{RecurrenceSemiannual, date(2023, time.August, 31), 1, date(2024, time.February, 29)},
		{RecurrenceAnnual, date(2024, time.February, 29), 1, date(2025, time.February, 28)},
		{RecurrenceAnnual, date(2024, time.February, 29), 4, date(2028, time.February, 29)},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			got := tt.period.Occurrence(tt.base, tt.i)
			if !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want.Format(DateLayout), got.Format(DateLayout))
			}
		})
	}
}

func TestParseRecurrencePeriod(t *testing.T) {
	period, err := ParseRecurrencePeriod("")
	if err != nil || period != RecurrenceMonthly {
		t.Errorf("expected monthly default, got %q (err %v)", period, err)
	}

	period, err = ParseRecurrencePeriod(" Weekly ")
	if err != nil || period != RecurrenceWeekly {
		t.Errorf("expected weekly, got %q (err %v)", period, err)
	}

	if _, err := ParseRecurrencePeriod("fortnightly"); err == nil {
		t.Error("expected error for unknown period")
	}
}
