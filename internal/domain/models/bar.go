package models

import "time"

// Bar represents one minute-resolution OHLCV record.
type Bar struct {
	Time   time.Time `json:"time"`
	Symbol string    `json:"symbol,omitempty"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}
