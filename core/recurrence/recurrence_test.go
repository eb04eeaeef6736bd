package recurrence_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthkeep/hearthkeep/core/recurrence"
)

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestGenerateEmptyWeekdays(t *testing.T) {
	for _, interval := range []recurrence.Interval{
		recurrence.IntervalNone,
		recurrence.IntervalWeekly,
		recurrence.IntervalBiweekly,
		recurrence.IntervalMonthly,
	} {
		got := recurrence.Generate(recurrence.Request{
			Interval: interval,
			Start:    d(2024, time.March, 1),
			End:      d(2024, time.December, 31),
		})
		assert.Empty(t, got, "interval %q", interval)
	}
}

func TestGenerateInvertedRange(t *testing.T) {
	got := recurrence.Generate(recurrence.Request{
		Weekdays: []time.Weekday{time.Monday, time.Friday},
		Interval: recurrence.IntervalWeekly,
		Start:    d(2024, time.March, 17),
		End:      d(2024, time.March, 4),
	})
	assert.Empty(t, got)
}

func TestGenerateNoRepeat(t *testing.T) {
	// 2024-03-06 is a Wednesday.
	start := d(2024, time.March, 6)

	got := recurrence.Generate(recurrence.Request{
		Weekdays: []time.Weekday{time.Wednesday},
		Start:    start,
		End:      d(2024, time.March, 31),
	})
	assert.Equal(t, []time.Time{start}, got)

	got = recurrence.Generate(recurrence.Request{
		Weekdays: []time.Weekday{time.Monday},
		Start:    start,
		End:      d(2024, time.March, 31),
	})
	assert.Empty(t, got, "start's weekday not selected")
}

func TestGenerateNoRepeatIgnoresEnd(t *testing.T) {
	// The single-occurrence case emits start even when end precedes other
	// candidate weekdays; only start's own weekday matters.
	start := d(2024, time.March, 6)
	got := recurrence.Generate(recurrence.Request{
		Weekdays: []time.Weekday{time.Wednesday, time.Thursday},
		Start:    start,
		End:      start,
	})
	assert.Equal(t, []time.Time{start}, got)
}

func TestGenerateWeekly(t *testing.T) {
	// Monday 2024-03-04 through Sunday 2024-03-17, Mon+Fri.
	got := recurrence.Generate(recurrence.Request{
		Weekdays: []time.Weekday{time.Monday, time.Friday},
		Interval: recurrence.IntervalWeekly,
		Start:    d(2024, time.March, 4),
		End:      d(2024, time.March, 17),
	})

	want := []time.Time{
		d(2024, time.March, 4),
		d(2024, time.March, 8),
		d(2024, time.March, 11),
		d(2024, time.March, 15),
	}
	assert.Equal(t, want, got)
}

func TestGenerateWeeklyMidweekStart(t *testing.T) {
	// Start Wednesday: the Monday of the first anchor week is behind start
	// and must not appear.
	got := recurrence.Generate(recurrence.Request{
		Weekdays: []time.Weekday{time.Monday, time.Friday},
		Interval: recurrence.IntervalWeekly,
		Start:    d(2024, time.March, 6),
		End:      d(2024, time.March, 12),
	})

	want := []time.Time{
		d(2024, time.March, 8),
		d(2024, time.March, 11),
	}
	assert.Equal(t, want, got)
}

func TestGenerateBiweekly(t *testing.T) {
	// Four anchor weeks from Monday 2024-03-04; only weeks 0 and 2 emit.
	got := recurrence.Generate(recurrence.Request{
		Weekdays: []time.Weekday{time.Monday, time.Friday},
		Interval: recurrence.IntervalBiweekly,
		Start:    d(2024, time.March, 4),
		End:      d(2024, time.March, 31),
	})

	want := []time.Time{
		d(2024, time.March, 4),
		d(2024, time.March, 8),
		d(2024, time.March, 18),
		d(2024, time.March, 22),
	}
	assert.Equal(t, want, got)
}

func TestGenerateMonthly(t *testing.T) {
	// 2024-01-02 is the 1st Tuesday of January; expect the 1st Tuesday of
	// each month through April, no matter how many Tuesdays the range holds.
	got := recurrence.Generate(recurrence.Request{
		Weekdays: []time.Weekday{time.Tuesday},
		Interval: recurrence.IntervalMonthly,
		Start:    d(2024, time.January, 2),
		End:      d(2024, time.April, 30),
	})

	want := []time.Time{
		d(2024, time.January, 2),
		d(2024, time.February, 6),
		d(2024, time.March, 5),
		d(2024, time.April, 2),
	}
	assert.Equal(t, want, got)
}

func TestGenerateMonthlyFifthOccurrenceSkips(t *testing.T) {
	// 2024-03-29 is the 5th Friday of March. Months with only four Fridays
	// are skipped, not rolled into an adjacent week.
	got := recurrence.Generate(recurrence.Request{
		Weekdays: []time.Weekday{time.Friday},
		Interval: recurrence.IntervalMonthly,
		Start:    d(2024, time.March, 29),
		End:      d(2024, time.August, 31),
	})

	want := []time.Time{
		d(2024, time.March, 29),
		d(2024, time.May, 31),
		d(2024, time.August, 30),
	}
	assert.Equal(t, want, got)
}

func TestGenerateMonthlyWeekdayPastEnd(t *testing.T) {
	// The first matching Saturday lies beyond end, so that weekday
	// contributes nothing; the Tuesday pattern still expands.
	got := recurrence.Generate(recurrence.Request{
		Weekdays: []time.Weekday{time.Tuesday, time.Saturday},
		Interval: recurrence.IntervalMonthly,
		Start:    d(2024, time.January, 2),
		End:      d(2024, time.January, 3),
	})

	want := []time.Time{d(2024, time.January, 2)}
	assert.Equal(t, want, got)
}

func TestGenerateIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, time.March, 4, 15, 30, 45, 0, time.UTC)
	end := time.Date(2024, time.March, 17, 4, 0, 0, 0, time.UTC)

	got := recurrence.Generate(recurrence.Request{
		Weekdays: []time.Weekday{time.Monday},
		Interval: recurrence.IntervalWeekly,
		Start:    start,
		End:      end,
	})

	want := []time.Time{
		d(2024, time.March, 4),
		d(2024, time.March, 11),
	}
	assert.Equal(t, want, got)
}

func TestGenerateProperties(t *testing.T) {
	// Every result date lies within bounds, falls on a selected weekday,
	// and the sequence is strictly ascending.
	cases := []recurrence.Request{
		{
			Weekdays: []time.Weekday{time.Sunday, time.Wednesday, time.Saturday},
			Interval: recurrence.IntervalWeekly,
			Start:    d(2024, time.February, 14),
			End:      d(2024, time.June, 1),
		},
		{
			Weekdays: []time.Weekday{time.Monday, time.Thursday},
			Interval: recurrence.IntervalBiweekly,
			Start:    d(2023, time.November, 3),
			End:      d(2024, time.February, 29),
		},
		{
			Weekdays: []time.Weekday{time.Tuesday, time.Friday, time.Sunday},
			Interval: recurrence.IntervalMonthly,
			Start:    d(2024, time.January, 10),
			End:      d(2025, time.January, 10),
		},
	}

	for _, req := range cases {
		got := recurrence.Generate(req)
		require.NotEmpty(t, got)

		selected := make(map[time.Weekday]bool)
		for _, wd := range req.Weekdays {
			selected[wd] = true
		}

		for i, date := range got {
			assert.False(t, date.Before(req.Start), "date %v before start", date)
			assert.False(t, date.After(req.End), "date %v after end", date)
			assert.True(t, selected[date.Weekday()], "date %v on unselected weekday", date)
			if i > 0 {
				assert.True(t, got[i-1].Before(date), "sequence not strictly ascending at %d", i)
			}
		}
	}
}

func TestIntervalValid(t *testing.T) {
	assert.True(t, recurrence.IntervalNone.Valid())
	assert.True(t, recurrence.IntervalWeekly.Valid())
	assert.True(t, recurrence.IntervalBiweekly.Valid())
	assert.True(t, recurrence.IntervalMonthly.Valid())
	assert.False(t, recurrence.Interval("daily").Valid())
}
