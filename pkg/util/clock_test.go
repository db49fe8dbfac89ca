package util

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Hour() != 9 || c.Minute() != 30 {
		t.Fatalf("unexpected clock %v", c)
	}
	if c.String() != "09:30" {
		t.Fatalf("unexpected string %q", c.String())
	}
	for _, bad := range []string{"", "24:00", "09:60", "nine"} {
		if _, err := ParseClock(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestClockRangeContains(t *testing.T) {
	r := ClockRange{Start: NewClock(9, 30), End: NewClock(16, 0)}
	if !r.Contains(NewClock(9, 30)) || !r.Contains(NewClock(16, 0)) {
		t.Fatalf("range must be inclusive")
	}
	if r.Contains(NewClock(8, 0)) || r.Contains(NewClock(16, 1)) {
		t.Fatalf("out-of-range time accepted")
	}
}

func TestClockRangeWraps(t *testing.T) {
	r := ClockRange{Start: NewClock(22, 0), End: NewClock(2, 0)}
	for _, c := range []Clock{NewClock(22, 0), NewClock(23, 59), NewClock(0, 0), NewClock(2, 0)} {
		if !r.Contains(c) {
			t.Fatalf("expected %v inside wrapped range", c)
		}
	}
	if r.Contains(NewClock(12, 0)) {
		t.Fatalf("midday inside wrapped overnight range")
	}
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]time.Weekday{
		"Monday":    time.Monday,
		"friday":    time.Friday,
		" Sunday ":  time.Sunday,
		"wed":       time.Wednesday,
		"THU":       time.Thursday,
	}
	for in, want := range cases {
		got, err := ParseWeekday(in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: got %v want %v", in, got, want)
		}
	}
	if _, err := ParseWeekday("someday"); err == nil {
		t.Fatalf("expected error")
	}
}
