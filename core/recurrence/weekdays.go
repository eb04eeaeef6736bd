package recurrence

import (
	"strconv"
	"strings"
	"time"
)

// ParseWeekdayCSV parses a "1,3,5" style weekday list as persisted on task
// rows. Blanks are tolerated and out-of-range values ignored, matching the
// generator's own edge policy of silent omission.
func ParseWeekdayCSV(s string) []time.Weekday {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var weekdays []time.Weekday
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			continue
		}
		weekdays = append(weekdays, time.Weekday(n))
	}

	return weekdays
}

// FormatWeekdayCSV renders weekdays as a sorted "1,3,5" string. Duplicates
// collapse; invalid values are dropped.
func FormatWeekdayCSV(weekdays []time.Weekday) string {
	set := weekdaySet(weekdays)
	if len(set) == 0 {
		return ""
	}

	var b strings.Builder
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if _, ok := set[wd]; !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(wd)))
	}
	return b.String()
}
