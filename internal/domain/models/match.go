package models

import "time"

// Match is one candidate start position that survived the full filter chain.
// Changes are signed and expressed in the unit the scan was configured with
// (percent or absolute price units).
type Match struct {
	Start           time.Time `json:"start"`
	BumpEnd         time.Time `json:"bump_end"`
	SlideEnd        time.Time `json:"slide_end"`
	BumpChange      float64   `json:"bump_change"`
	SlideChange     float64   `json:"slide_change"`
	BumpVolume      int64     `json:"bump_volume"`
	SlideVolume     int64     `json:"slide_volume"`
	BumpStartPrice  float64   `json:"bump_start_price"`
	BumpEndPrice    float64   `json:"bump_end_price"`
	SlideStartPrice float64   `json:"slide_start_price"`
	SlideEndPrice   float64   `json:"slide_end_price"`
	NewsURL         string    `json:"news_url,omitempty"`
}

// ScanStats answers "of all bump-shaped moves, how many converted into a
// qualifying slide". It is computed over the candidate set with only the
// bump-leg filters applied, independent of time-of-day and weekday filters.
type ScanStats struct {
	TotalBumps int     `json:"total_bumps"`
	Hits       int     `json:"hits"`
	Misses     int     `json:"misses"`
	HitRatio   float64 `json:"hit_ratio"` // percent, 0 when TotalBumps == 0
}
