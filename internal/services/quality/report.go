package quality

import (
	"math"
	"time"

	"BumpSlide/internal/domain/models"
)

// sessionMinutes is the expected bar count for a complete trading day,
// 09:30 through 16:00 inclusive.
const sessionMinutes = 391

var (
	sessionOpen  = 9*60 + 30
	sessionClose = 16 * 60
)

// Report inspects a time-ordered bar series for duplicate timestamps, rows
// with unusable fields, intraday gaps longer than a minute, and trading days
// with fewer session bars than expected. It never mutates the input.
func Report(bars []models.Bar) models.QualityReport {
	rep := models.QualityReport{
		Rows:           len(bars),
		IntradayGaps:   []models.Gap{},
		IncompleteDays: []models.IncompleteDay{},
	}
	if len(bars) == 0 {
		return rep
	}

	seen := make(map[int64]bool, len(bars))
	dayCounts := make(map[string]int)
	seenDay := make(map[string]bool)
	dayOrder := make([]string, 0)

	var prev *models.Bar
	for i := range bars {
		b := &bars[i]
		if badFields(b) {
			rep.MissingFields++
		}

		ts := b.Time.Unix()
		if seen[ts] {
			rep.DuplicateRows++
			// Duplicates would double-count session minutes.
			continue
		}
		seen[ts] = true

		day := b.Time.Format("2006-01-02")
		if !seenDay[day] {
			seenDay[day] = true
			dayOrder = append(dayOrder, day)
		}
		if inSession(b.Time) {
			dayCounts[day]++
		}

		if prev != nil && sameDay(prev.Time, b.Time) {
			if d := b.Time.Sub(prev.Time); d > time.Minute {
				rep.IntradayGaps = append(rep.IntradayGaps, models.Gap{
					Start:           prev.Time,
					End:             b.Time,
					DurationMinutes: int(d / time.Minute),
				})
			}
		}
		prev = b
	}

	for _, day := range dayOrder {
		actual := dayCounts[day]
		if actual == 0 || actual >= sessionMinutes {
			continue
		}
		missing := sessionMinutes - actual
		rep.IncompleteDays = append(rep.IncompleteDays, models.IncompleteDay{
			Date:         day,
			ActualCount:  actual,
			MissingCount: missing,
			Completeness: float64(actual) / sessionMinutes * 100,
		})
		rep.MissingMinutes += missing
	}
	return rep
}

func badFields(b *models.Bar) bool {
	for _, v := range []float64{b.Open, b.High, b.Low, b.Close} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return b.Volume < 0
}

func inSession(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	return m >= sessionOpen && m <= sessionClose
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
