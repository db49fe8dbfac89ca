package models

// HTTP request payloads. Tags drive echo binding, creasty defaults and
// go-playground validation in pkg/http.

type ScanRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	From   string `query:"from" json:"from" validate:"required"`
	To     string `query:"to" json:"to" validate:"required"`
	TF     string `query:"tf" json:"tf" default:"1m" validate:"oneof=1m 5m"`

	BumpLen        int     `query:"bump_len" json:"bump_len" default:"5" validate:"gte=1,lte=500"`
	BumpThreshold  float64 `query:"bump_threshold" json:"bump_threshold" default:"0.05" validate:"gte=0"`
	BumpMode       string  `query:"bump_mode" json:"bump_mode" default:"percent" validate:"oneof=percent absolute"`
	SlideLen       int     `query:"slide_len" json:"slide_len" default:"3" validate:"gte=1,lte=500"`
	SlideThreshold float64 `query:"slide_threshold" json:"slide_threshold" default:"0.05" validate:"gte=0"`
	SlideMode      string  `query:"slide_mode" json:"slide_mode" default:"percent" validate:"oneof=percent absolute"`

	MinBumpVolume  int64 `query:"min_bump_volume" json:"min_bump_volume" default:"0" validate:"gte=0"`
	MinSlideVolume int64 `query:"min_slide_volume" json:"min_slide_volume" default:"0" validate:"gte=0"`

	// Optional session window, "HH:MM". Both must be set to enable the filter.
	StartTime string `query:"start_time" json:"start_time,omitempty"`
	EndTime   string `query:"end_time" json:"end_time,omitempty"`
	// Optional weekday names; empty matches all days.
	Days []string `query:"days" json:"days,omitempty"`

	AttachNews bool `query:"attach_news" json:"attach_news" default:"false"`
}

type BarsRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	From   string `query:"from" json:"from" validate:"required"`
	To     string `query:"to" json:"to" validate:"required"`
	TF     string `query:"tf" json:"tf" default:"1m" validate:"oneof=1m 5m"`
	Limit  int    `query:"limit" json:"limit" default:"10000" validate:"gte=1,lte=50000"`
}

type TrendRequest struct {
	Symbol      string `query:"symbol" json:"symbol" validate:"required"`
	From        string `query:"from" json:"from" validate:"required"`
	To          string `query:"to" json:"to" validate:"required"`
	StartSample int    `query:"start_sample" json:"start_sample" default:"2" validate:"gte=2,lte=100"`
	EndSample   int    `query:"end_sample" json:"end_sample" default:"10" validate:"gte=2,lte=100"`
	Direction   string `query:"direction" json:"direction" default:"increase" validate:"oneof=increase decrease"`
}

type QualityRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	From   string `query:"from" json:"from" validate:"required"`
	To     string `query:"to" json:"to" validate:"required"`
}
