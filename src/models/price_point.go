package models

import "time"

// MPricePoint represents one daily price bar for a symbol.
type MPricePoint struct {
	Symbol             string    `json:"symbol"`
	Date               int64     `json:"date"` // unix seconds, midnight UTC of the trading day
	Open               float64   `json:"open"`
	High               float64   `json:"high"`
	Low                float64   `json:"low"`
	Close              float64   `json:"close"`
	Volume             float64   `json:"volume"`
	PricePercentChange float64   `json:"price_percent_change"` // close vs previous close
	FetchedAt          time.Time `json:"fetched_at"`
}

// Day returns the bar's trading date in UTC.
func (p MPricePoint) Day() time.Time {
	return time.Unix(p.Date, 0).UTC()
}
