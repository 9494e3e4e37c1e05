package models

import "time"

// MQuote is the latest snapshot for one watchlist symbol.
type MQuote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Sector        string    `json:"sector"`
	Price         float64   `json:"price"`
	PercentChange float64   `json:"percent_change"` // latest close vs previous close
	Volume        float64   `json:"volume"`
	MarketCap     float64   `json:"market_cap"`
	PERatio       float64   `json:"pe_ratio"`
	DividendYield float64   `json:"dividend_yield"` // percent
	FetchedAt     time.Time `json:"fetched_at"`
}
