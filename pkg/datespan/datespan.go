package datespan

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Midnight returns the date with the time-of-day components dropped,
// keeping the location of the input.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of the calendar day of t.
func EndOfDay(t time.Time) time.Time {
	return Midnight(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Days enumerates every calendar day from start to end inclusive, normalized
// to midnight, in ascending order. Returns nil when end is before start.
func Days(start, end time.Time) []time.Time {
	start = Midnight(start)
	end = Midnight(end)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsWeekend reports whether the date is a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsFullDay reports whether both instants sit on midnight boundaries,
// meaning the span carries no time-of-day information.
func IsFullDay(start, end time.Time) bool {
	return start.Equal(Midnight(start)) && end.Equal(Midnight(end))
}

// MinutesOfDay returns the minutes elapsed since midnight for t.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ParseClock parses a "HH:MM" string into minutes since midnight.
func ParseClock(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock format %q, expected HH:MM", clock)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hours in %q, must be between 0 and 23", clock)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minutes in %q, must be between 0 and 59", clock)
	}

	return hours*60 + minutes, nil
}
