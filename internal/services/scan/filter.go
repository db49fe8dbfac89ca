package scan

import (
	"math"
	"time"

	"BumpSlide/internal/domain/models"
	"BumpSlide/pkg/util"
)

// passesBump applies the bump-leg filters: magnitude threshold and minimum
// window volume. These also gate the statistics base.
func passesBump(c models.Match, p Params) bool {
	if math.Abs(c.BumpChange) < p.BumpThreshold {
		return false
	}
	if c.BumpVolume < p.MinBumpVolume {
		return false
	}
	return true
}

// passesSlide applies the slide-leg filters.
func passesSlide(c models.Match, p Params) bool {
	if math.Abs(c.SlideChange) < p.SlideThreshold {
		return false
	}
	if c.SlideVolume < p.MinSlideVolume {
		return false
	}
	return true
}

// filterThresholds keeps candidates whose both legs qualify.
func filterThresholds(candidates []models.Match, p Params) []models.Match {
	out := make([]models.Match, 0, len(candidates))
	for _, c := range candidates {
		if passesBump(c, p) && passesSlide(c, p) {
			out = append(out, c)
		}
	}
	return out
}

// filterSchedule applies the time-of-day and weekday restrictions, judged by
// each candidate's bump start. A nil range and an empty day set each disable
// their filter.
func filterSchedule(matches []models.Match, timeRange *util.ClockRange, days map[time.Weekday]bool) []models.Match {
	if timeRange == nil && len(days) == 0 {
		return matches
	}
	out := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if timeRange != nil && !timeRange.Contains(util.ClockOf(m.Start)) {
			continue
		}
		if len(days) > 0 && !days[m.Start.Weekday()] {
			continue
		}
		out = append(out, m)
	}
	return out
}
