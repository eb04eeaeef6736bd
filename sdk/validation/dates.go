package validation

import (
	"fmt"
	"time"
)

// ParseCalendarDate parses a YYYY-MM-DD string as a local calendar date. The
// result is midnight local time; parsing as UTC instead shifts the date by a
// day for anyone west of Greenwich, so don't.
func ParseCalendarDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatCalendarDate renders a date as YYYY-MM-DD, dropping any time of day.
func FormatCalendarDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseFlexibleDate tries several common date layouts before giving up.
func ParseFlexibleDate(dateStr string) (time.Time, error) {
	formats := []string{
		time.DateOnly,
		"01/02/2006",
		"02/01/2006",
		"2006/01/02",
		time.RFC3339,
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, dateStr, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}
