package models

// -----------------------------------------------------------------------------
// Server State Structure
// -----------------------------------------------------------------------------

type MDashboardSnapshot struct {
	Type           string            `json:"type"` // "INITIAL" or "UPDATE"
	Quotes         map[string]MQuote `json:"quotes"`
	Movers         MMoverRanking     `json:"movers"`
	Summary        MMarketSummary    `json:"summary"`
	Sectors        []MSectorStat     `json:"sectors"`
	MostActive     []MQuote          `json:"most_active"`
	Timestamp      int64             `json:"timestamp"`
	RefreshMetrics MRefreshMetrics   `json:"refresh_metrics"`
}

// MRefreshMetrics reports how the last refresh cycle went.
type MRefreshMetrics struct {
	FetchTimeSeconds float64 `json:"fetch_time_seconds"`
	ValidSymbols     int     `json:"valid_symbols"`
	SkippedSymbols   int     `json:"skipped_symbols"`
}

// -----------------------------------------------------------------------------
// SubscribeCommand for websocket client messages
// -----------------------------------------------------------------------------

type MSubscribeCommand struct {
	Command string   `json:"command"`
	Symbols []string `json:"symbols"`
}
