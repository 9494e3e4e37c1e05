package models

// MComparisonMetric is one row of the side-by-side comparison table.
type MComparisonMetric struct {
	Metric string  `json:"metric"`
	A      float64 `json:"a"`
	B      float64 `json:"b"`
}

// MComparison compares two watchlist symbols.
type MComparison struct {
	SymbolA           string              `json:"symbol_a"`
	SymbolB           string              `json:"symbol_b"`
	Metrics           []MComparisonMetric `json:"metrics"`
	ReturnCorrelation float64             `json:"return_correlation"`
	// CorrelationDefined is false when the histories share fewer than two
	// trading dates. The correlation value is meaningless in that case.
	CorrelationDefined bool `json:"correlation_defined"`
	OverlappingDays    int  `json:"overlapping_days"`
}
