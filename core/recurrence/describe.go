package recurrence

import (
	"sort"
	"strings"
)

// Describe renders a short human-readable summary of a pattern, e.g.
// "Repeats every week on Mon, Wed, Fri". The empty string is returned when
// the pattern does not repeat or selects no weekdays. Weekday names are
// listed in ascending weekday order regardless of input order.
func Describe(req Request) string {
	if req.Interval == IntervalNone {
		return ""
	}

	selected := weekdaySet(req.Weekdays)
	if len(selected) == 0 {
		return ""
	}

	// Scoped here on purpose; nothing else needs the table.
	names := [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

	ordered := make([]int, 0, len(selected))
	for wd := range selected {
		ordered = append(ordered, int(wd))
	}
	sort.Ints(ordered)

	parts := make([]string, len(ordered))
	for i, wd := range ordered {
		parts[i] = names[wd]
	}
	days := strings.Join(parts, ", ")

	switch req.Interval {
	case IntervalWeekly:
		return "Repeats every week on " + days
	case IntervalBiweekly:
		return "Repeats every 2 weeks on " + days
	case IntervalMonthly:
		return "Repeats every month on " + days
	}

	return ""
}
