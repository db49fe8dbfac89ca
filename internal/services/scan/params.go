package scan

import (
	"fmt"
	"time"

	"BumpSlide/pkg/util"
)

// Mode selects how a window's open-to-close change is expressed.
type Mode string

const (
	// ModePercent expresses the change as (close-open)/open*100.
	ModePercent Mode = "percent"
	// ModeAbsolute expresses the change in raw price units.
	ModeAbsolute Mode = "absolute"
)

// ParseMode resolves a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePercent, ModeAbsolute:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown threshold mode %q", s)
	}
}

// Params configures a single scan. Windows are measured in rows (minute bars),
// thresholds in the unit selected by the corresponding mode.
type Params struct {
	BumpLen        int
	BumpThreshold  float64
	BumpMode       Mode
	SlideLen       int
	SlideThreshold float64
	SlideMode      Mode

	MinBumpVolume  int64
	MinSlideVolume int64

	// TimeRange restricts matches by the bump start's time of day; nil disables.
	TimeRange *util.ClockRange
	// Days restricts matches by the bump start's weekday name; empty disables.
	Days []string
}

// Validate checks the configuration before any scan work starts.
func (p Params) Validate() error {
	if p.BumpLen < 1 {
		return fmt.Errorf("bump length must be >= 1, got %d", p.BumpLen)
	}
	if p.SlideLen < 1 {
		return fmt.Errorf("slide length must be >= 1, got %d", p.SlideLen)
	}
	if p.BumpThreshold < 0 {
		return fmt.Errorf("bump threshold must be >= 0, got %v", p.BumpThreshold)
	}
	if p.SlideThreshold < 0 {
		return fmt.Errorf("slide threshold must be >= 0, got %v", p.SlideThreshold)
	}
	if _, err := ParseMode(string(p.BumpMode)); err != nil {
		return fmt.Errorf("bump mode: %w", err)
	}
	if _, err := ParseMode(string(p.SlideMode)); err != nil {
		return fmt.Errorf("slide mode: %w", err)
	}
	if p.MinBumpVolume < 0 || p.MinSlideVolume < 0 {
		return fmt.Errorf("volume minimums must be >= 0")
	}
	if _, err := p.daySet(); err != nil {
		return err
	}
	return nil
}

// daySet compiles the configured weekday names. An empty set means the
// filter is disabled, not "matches nothing".
func (p Params) daySet() (map[time.Weekday]bool, error) {
	if len(p.Days) == 0 {
		return nil, nil
	}
	set := make(map[time.Weekday]bool, len(p.Days))
	for _, name := range p.Days {
		d, err := util.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		set[d] = true
	}
	return set, nil
}
