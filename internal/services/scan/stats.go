package scan

import "BumpSlide/internal/domain/models"

// reduce computes the hit statistics over the full candidate set. The base is
// every candidate passing the bump-leg filters; a hit also passes the
// slide-leg filters. Time-of-day and weekday filters never change the stats.
func reduce(candidates []models.Match, p Params) models.ScanStats {
	var s models.ScanStats
	for _, c := range candidates {
		if !passesBump(c, p) {
			continue
		}
		s.TotalBumps++
		if passesSlide(c, p) {
			s.Hits++
		} else {
			s.Misses++
		}
	}
	if s.TotalBumps > 0 {
		s.HitRatio = float64(s.Hits) / float64(s.TotalBumps) * 100
	}
	return s
}
