package scan

import "BumpSlide/internal/domain/models"

// Progress receives coarse stage updates while a scan runs. Nil is fine.
type Progress func(message string, percent int)

func (p Progress) report(message string, percent int) {
	if p != nil {
		p(message, percent)
	}
}

// Scan runs the full pipeline over a time-ordered bar series: windowed volume
// totals, open-to-close changes, candidate assembly, threshold and volume
// filters, then time-of-day and weekday filters. Stats are reduced over the
// candidate set before the schedule filters, so restricting the scan to a
// session window never changes the hit ratio. An empty series yields empty
// results, not an error.
func Scan(bars []models.Bar, p Params, progress Progress) ([]models.Match, models.ScanStats, error) {
	if err := p.Validate(); err != nil {
		return nil, models.ScanStats{}, err
	}
	days, err := p.daySet()
	if err != nil {
		return nil, models.ScanStats{}, err
	}

	progress.report("calculating volume totals", 10)
	prefix := prefixVolumes(bars)

	progress.report("computing price changes", 30)
	progress.report("assembling candidates", 50)
	candidates := assemble(bars, prefix, p)

	progress.report("filtering candidates", 70)
	stats := reduce(candidates, p)
	matches := filterThresholds(candidates, p)

	progress.report("applying time and day filters", 85)
	matches = filterSchedule(matches, p.TimeRange, days)

	progress.report("scan complete", 100)
	return matches, stats, nil
}
