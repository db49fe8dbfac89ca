package util

import (
	"fmt"
	"strings"
	"time"
)

// Clock is a time of day with minute resolution, stored as minutes since
// midnight. It compares and ranges cheaply without involving dates or zones.
type Clock int

// NewClock builds a Clock from hour and minute.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock parses "HH:MM" (24h).
func ParseClock(s string) (Clock, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	return NewClock(h, m), nil
}

// ClockOf extracts the time of day from t.
func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute())
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// ClockRange is an inclusive time-of-day window. When Start > End the range
// wraps past midnight and matches times >= Start or <= End.
type ClockRange struct {
	Start Clock
	End   Clock
}

// Contains reports whether c falls inside the range (inclusive on both ends).
func (r ClockRange) Contains(c Clock) bool {
	if r.Start <= r.End {
		return c >= r.Start && c <= r.End
	}
	return c >= r.Start || c <= r.End
}

// ParseClockRange parses a start/end pair of "HH:MM" strings.
func ParseClockRange(start, end string) (ClockRange, error) {
	s, err := ParseClock(start)
	if err != nil {
		return ClockRange{}, fmt.Errorf("range start: %w", err)
	}
	e, err := ParseClock(end)
	if err != nil {
		return ClockRange{}, fmt.Errorf("range end: %w", err)
	}
	return ClockRange{Start: s, End: e}, nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday resolves a full or three-letter English weekday name.
func ParseWeekday(s string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if d, ok := weekdayNames[key]; ok {
		return d, nil
	}
	if len(key) == 3 {
		for name, d := range weekdayNames {
			if strings.HasPrefix(name, key) {
				return d, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
