// Package recurrence expands weekday/interval patterns into concrete
// calendar dates. Everything here is pure: no clock, no I/O, deterministic
// for a given input.
package recurrence

import (
	"sort"
	"time"
)

// Interval selects the repetition semantics. The empty value means the
// pattern does not repeat.
type Interval string

const (
	IntervalNone     Interval = ""
	IntervalWeekly   Interval = "weekly"
	IntervalBiweekly Interval = "biweekly"
	IntervalMonthly  Interval = "monthly"
)

// Valid reports whether the interval is one of the known values.
func (i Interval) Valid() bool {
	switch i {
	case IntervalNone, IntervalWeekly, IntervalBiweekly, IntervalMonthly:
		return true
	}
	return false
}

// Request describes one expansion. Start and End are inclusive calendar
// dates; any time-of-day component is ignored.
type Request struct {
	Weekdays []time.Weekday
	Interval Interval
	Start    time.Time
	End      time.Time
}

// Generate expands the request into an ascending, duplicate-free sequence of
// dates within [Start, End], each falling on a selected weekday. Degenerate
// inputs (no weekdays, inverted range) yield an empty result, never an error:
// "nothing matches" is a valid answer to a pattern query.
func Generate(req Request) []time.Time {
	selected := weekdaySet(req.Weekdays)
	if len(selected) == 0 {
		return nil
	}

	start := Date(req.Start)
	end := Date(req.End)
	if start.After(end) {
		return nil
	}

	seen := make(map[time.Time]struct{})

	switch req.Interval {
	case IntervalWeekly:
		collectWeeks(seen, selected, start, end, 1)

	case IntervalBiweekly:
		collectWeeks(seen, selected, start, end, 2)

	case IntervalMonthly:
		collectMonthly(seen, selected, start, end)

	default:
		// No repetition: the start date itself, and only if its weekday is
		// selected. End and the other weekdays play no part.
		if _, ok := selected[start.Weekday()]; ok {
			seen[start] = struct{}{}
		}
	}

	// Dedupe-and-sort once at the end regardless of branch. The monthly
	// per-weekday loops can in principle overlap; the set makes that a
	// non-issue without per-branch bookkeeping.
	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	return dates
}

// collectWeeks walks 7-day anchor windows from start, visiting every
// `everyNth` window, and emits each selected weekday's date within the
// window when it lands inside [start, end].
func collectWeeks(seen map[time.Time]struct{}, selected map[time.Weekday]struct{}, start, end time.Time, everyNth int) {
	week := 0
	for anchor := start; !anchor.After(end); anchor = anchor.AddDate(0, 0, 7) {
		if week%everyNth == 0 {
			for wd := range selected {
				d := anchor.AddDate(0, 0, daysUntilWeekday(anchor, wd))
				if !d.Before(start) && !d.After(end) {
					seen[d] = struct{}{}
				}
			}
		}
		week++
	}
}

// collectMonthly implements the same-week-of-month pattern ("2nd Tuesday of
// every month"). Each selected weekday is expanded independently: its first
// occurrence at or after start fixes the week-of-month ordinal, and that
// ordinal's occurrence is emitted for every month through end. Months where
// the n-th occurrence does not exist (a 5th Friday in a four-Friday month)
// are skipped outright - no rollover into an adjacent week or month.
func collectMonthly(seen map[time.Time]struct{}, selected map[time.Weekday]struct{}, start, end time.Time) {
	for wd := range selected {
		first := start.AddDate(0, 0, daysUntilWeekday(start, wd))
		if first.After(end) {
			continue
		}

		ordinal := (first.Day() + 6) / 7

		lastMonth := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
		for month := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, first.Location()); !month.After(lastMonth); month = month.AddDate(0, 1, 0) {
			d, ok := nthWeekdayOfMonth(month, wd, ordinal)
			if !ok {
				continue
			}
			if !d.Before(start) && !d.After(end) {
				seen[d] = struct{}{}
			}
		}
	}
}

// nthWeekdayOfMonth returns the n-th occurrence of wd within the month that
// firstOfMonth belongs to, reporting false when the month has fewer than n
// occurrences.
func nthWeekdayOfMonth(firstOfMonth time.Time, wd time.Weekday, n int) (time.Time, bool) {
	day := 1 + daysUntilWeekday(firstOfMonth, wd) + (n-1)*7
	if day > daysInMonth(firstOfMonth) {
		return time.Time{}, false
	}
	return firstOfMonth.AddDate(0, 0, day-1), true
}

// daysUntilWeekday returns how many days forward from d the next wd is,
// zero when d already falls on wd.
func daysUntilWeekday(d time.Time, wd time.Weekday) int {
	return (int(wd) - int(d.Weekday()) + 7) % 7
}

func daysInMonth(d time.Time) int {
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location()).Day()
}

// Date truncates t to its calendar date, keeping the location.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func weekdaySet(weekdays []time.Weekday) map[time.Weekday]struct{} {
	set := make(map[time.Weekday]struct{}, len(weekdays))
	for _, wd := range weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			continue
		}
		set[wd] = struct{}{}
	}
	return set
}
