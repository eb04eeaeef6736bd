package recurrence_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hearthkeep/hearthkeep/core/recurrence"
)

func TestDescribe(t *testing.T) {
	cases := []struct {
		name     string
		weekdays []time.Weekday
		interval recurrence.Interval
		want     string
	}{
		{
			name:     "weekly",
			weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
			interval: recurrence.IntervalWeekly,
			want:     "Repeats every week on Mon, Wed, Fri",
		},
		{
			name:     "biweekly",
			weekdays: []time.Weekday{time.Tuesday},
			interval: recurrence.IntervalBiweekly,
			want:     "Repeats every 2 weeks on Tue",
		},
		{
			name:     "monthly",
			weekdays: []time.Weekday{time.Saturday, time.Sunday},
			interval: recurrence.IntervalMonthly,
			want:     "Repeats every month on Sun, Sat",
		},
		{
			name:     "input order does not matter",
			weekdays: []time.Weekday{time.Friday, time.Monday, time.Wednesday},
			interval: recurrence.IntervalWeekly,
			want:     "Repeats every week on Mon, Wed, Fri",
		},
		{
			name:     "no interval",
			weekdays: []time.Weekday{time.Monday},
			interval: recurrence.IntervalNone,
			want:     "",
		},
		{
			name:     "no weekdays",
			weekdays: nil,
			interval: recurrence.IntervalWeekly,
			want:     "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := recurrence.Describe(recurrence.Request{
				Weekdays: tc.weekdays,
				Interval: tc.interval,
			})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWeekdayCSVRoundTrip(t *testing.T) {
	in := []time.Weekday{time.Friday, time.Monday, time.Wednesday}
	csv := recurrence.FormatWeekdayCSV(in)
	assert.Equal(t, "1,3,5", csv)

	out := recurrence.ParseWeekdayCSV(csv)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, out)
}

func TestParseWeekdayCSVTolerant(t *testing.T) {
	assert.Nil(t, recurrence.ParseWeekdayCSV(""))
	assert.Nil(t, recurrence.ParseWeekdayCSV("  "))
	assert.Equal(t,
		[]time.Weekday{time.Sunday, time.Saturday},
		recurrence.ParseWeekdayCSV("0, 6, 9, x,"),
	)
}

func TestFormatWeekdayCSVDropsInvalid(t *testing.T) {
	assert.Equal(t, "2", recurrence.FormatWeekdayCSV([]time.Weekday{time.Tuesday, time.Weekday(12), time.Tuesday}))
	assert.Equal(t, "", recurrence.FormatWeekdayCSV(nil))
}
