package models

// TrendRow holds monotonic-run statistics for one sample size.
type TrendRow struct {
	SampleSize   int     `json:"sample_size"`
	TotalSamples int     `json:"total_samples"`
	Matches      int     `json:"matches"`
	Continued    int     `json:"continued"`
	PctMatching  float64 `json:"pct_matching"`
	PctContTotal float64 `json:"pct_continued_total"`
	PctContRel   float64 `json:"pct_continuation"`
}
