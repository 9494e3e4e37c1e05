package models

// -----------------------------------------------------------------------------
// Chart specifications consumed by the front-end plotting library.
// The renderer maps computed series/metrics into these; no drawing happens here.
// -----------------------------------------------------------------------------

type MChartPoint struct {
	X int64   `json:"x"` // date (unix seconds)
	Y float64 `json:"y"`
}

// MCandlePoint is a bar for candlestick charts.
type MCandlePoint struct {
	X     int64   `json:"x"`
	Open  float64 `json:"o"`
	High  float64 `json:"h"`
	Low   float64 `json:"l"`
	Close float64 `json:"c"`
}

// MCategoryPoint is a labeled value for bar/pie charts.
type MCategoryPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type MChartSeries struct {
	Name       string           `json:"name"`
	Color      string           `json:"color,omitempty"`
	Fill       bool             `json:"fill,omitempty"` // fill to previous series (confidence band)
	Points     []MChartPoint    `json:"points,omitempty"`
	Candles    []MCandlePoint   `json:"candles,omitempty"`
	Categories []MCategoryPoint `json:"categories,omitempty"`
}

type MChartSpec struct {
	Type       string         `json:"type"` // "line", "bar", "candlestick", "pie"
	Title      string         `json:"title"`
	XAxisTitle string         `json:"x_axis_title,omitempty"`
	YAxisTitle string         `json:"y_axis_title,omitempty"`
	LogY       bool           `json:"log_y,omitempty"`
	Series     []MChartSeries `json:"series"`
}
