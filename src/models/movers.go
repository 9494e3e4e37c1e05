package models

// MMoverRanking holds the top/bottom performers for one refresh cycle.
type MMoverRanking struct {
	Top    []MQuote `json:"top"`
	Bottom []MQuote `json:"bottom"`
}

// MMarketSummary aggregates the whole watchlist for the overview page.
type MMarketSummary struct {
	TotalMarketCap       float64 `json:"total_market_cap"`
	AveragePercentChange float64 `json:"average_percent_change"`
	TotalVolume          float64 `json:"total_volume"`
	AveragePERatio       float64 `json:"average_pe_ratio"`
	SymbolCount          int     `json:"symbol_count"`
}

// MSectorStat summarizes one sector across the watchlist.
type MSectorStat struct {
	Sector               string  `json:"sector"`
	SymbolCount          int     `json:"symbol_count"`
	TotalMarketCap       float64 `json:"total_market_cap"`
	AveragePercentChange float64 `json:"average_percent_change"`
}
