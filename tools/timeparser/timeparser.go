package timeparser

import (
	"fmt"
	"time"
)

// Clock is a wall-clock time of day
type Clock struct {
	Hour   int
	Minute int
	Second int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// ParseClock attempts to parse a time of day with multiple formats
func ParseClock(s string) (Clock, error) {
	formats := []string{
		"15:04",    // HH:mm
		"15:04:05", // HH:mm:ss
		"3PM",      // 3PM
		"3:04PM",   // 3:30PM
	}

	var lastErr error
	for _, format := range formats {
		t, err := time.Parse(format, s)
		if err == nil {
			return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
		lastErr = err
	}

	return Clock{}, fmt.Errorf("failed to parse time of day '%s': %w", s, lastErr)
}

// On returns the instant at which the clock reads c on the calendar day of day,
// in day's location.
func (c Clock) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, c.Second, 0, day.Location())
}

// NextAt returns the first instant strictly after now at which the clock reads c:
// today when now is before that time, tomorrow otherwise.
func NextAt(now time.Time, c Clock) time.Time {
	next := c.On(now)
	if next.After(now) {
		return next
	}
	return c.On(now.AddDate(0, 0, 1))
}
