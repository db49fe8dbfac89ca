package models

import "time"

// Gap is a hole between two consecutive bars of the same trading day.
type Gap struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
}

// IncompleteDay is a trading day with fewer session bars than expected.
type IncompleteDay struct {
	Date         string  `json:"date"` // YYYY-MM-DD
	ActualCount  int     `json:"actual_count"`
	MissingCount int     `json:"missing_count"`
	Completeness float64 `json:"completeness_pct"`
}

// QualityReport summarizes data issues in a bar series.
type QualityReport struct {
	Rows           int             `json:"rows"`
	DuplicateRows  int             `json:"duplicate_rows"`
	MissingFields  int             `json:"missing_field_rows"`
	IntradayGaps   []Gap           `json:"intraday_gaps"`
	IncompleteDays []IncompleteDay `json:"incomplete_days"`
	MissingMinutes int             `json:"missing_minutes"`
}
