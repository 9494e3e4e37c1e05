package charts

import (
	"fmt"

	"stock-dashboard/src/analysis"
	"stock-dashboard/src/config"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// ChartRenderer maps computed series and metrics into chart specifications for
// the front-end. It never draws; it decides chart type, series layout and
// colors so every client renders the same thing.
// -----------------------------------------------------------------------------

const (
	colorGain     = "#28a745"
	colorLoss     = "#dc3545"
	colorPrimary  = "#1f77b4"
	colorSecond   = "#ff7f0e"
	colorForecast = "#9467bd"
	colorBand     = "#e1d5f0"
)

// -----------------------------------------------------------------------------

type ChartRenderer struct {
	Config *config.Config
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewChartRenderer(cfg *config.Config) *ChartRenderer {
	return &ChartRenderer{
		Config: cfg,
		Logger: logger.NewLogger(cfg.LogLevel, "ChartRenderer"),
	}
}

// -----------------------------------------------------------------------------

// RenderMoversChart builds a horizontal bar chart of the refresh cycle's top
// and bottom movers. Gainers are green, losers red, regardless of which list
// they came from.
func (cr *ChartRenderer) RenderMoversChart(ranking models.MMoverRanking) models.MChartSpec {
	gainers := models.MChartSeries{Name: "Gainers", Color: colorGain}
	losers := models.MChartSeries{Name: "Losers", Color: colorLoss}

	for _, q := range ranking.Top {
		cat := models.MCategoryPoint{Label: q.Symbol, Value: q.PercentChange}
		if q.PercentChange >= 0 {
			gainers.Categories = append(gainers.Categories, cat)
		} else {
			losers.Categories = append(losers.Categories, cat)
		}
	}
	for _, q := range ranking.Bottom {
		cat := models.MCategoryPoint{Label: q.Symbol, Value: q.PercentChange}
		if q.PercentChange >= 0 {
			gainers.Categories = append(gainers.Categories, cat)
		} else {
			losers.Categories = append(losers.Categories, cat)
		}
	}

	return models.MChartSpec{
		Type:       "bar",
		Title:      "Top Movers",
		XAxisTitle: "Symbol",
		YAxisTitle: "Change %",
		Series:     []models.MChartSeries{gainers, losers},
	}
}

// -----------------------------------------------------------------------------

// RenderHistoryChart builds a price history chart for one symbol. Intervals
// other than daily are resampled into weekly or monthly bars first. When
// candles is false a close-price line is rendered instead.
func (cr *ChartRenderer) RenderHistoryChart(symbol string, series []models.MPricePoint, interval string, candles bool) models.MChartSpec {
	if interval != analysis.IntervalDaily {
		series = analysis.Resample(series, interval)
	}

	spec := models.MChartSpec{
		Title:      fmt.Sprintf("%s Price History", symbol),
		XAxisTitle: "Date",
		YAxisTitle: "Price (USD)",
	}

	if candles {
		s := models.MChartSeries{Name: symbol}
		for _, p := range series {
			s.Candles = append(s.Candles, models.MCandlePoint{
				X: p.Date, Open: p.Open, High: p.High, Low: p.Low, Close: p.Close,
			})
		}
		spec.Type = "candlestick"
		spec.Series = []models.MChartSeries{s}
		return spec
	}

	s := models.MChartSeries{Name: symbol, Color: colorPrimary}
	for _, p := range series {
		s.Points = append(s.Points, models.MChartPoint{X: p.Date, Y: p.Close})
	}
	spec.Type = "line"
	spec.Series = []models.MChartSeries{s}
	return spec
}

// -----------------------------------------------------------------------------

// RenderMostActiveChart builds a volume bar chart. Volumes span orders of
// magnitude across the watchlist, so the y-axis is logarithmic.
func (cr *ChartRenderer) RenderMostActiveChart(quotes []models.MQuote) models.MChartSpec {
	s := models.MChartSeries{Name: "Volume", Color: colorPrimary}
	for _, q := range quotes {
		s.Categories = append(s.Categories, models.MCategoryPoint{
			Label: q.Symbol,
			Value: float64(q.Volume),
		})
	}

	return models.MChartSpec{
		Type:       "bar",
		Title:      "Most Active",
		XAxisTitle: "Symbol",
		YAxisTitle: "Volume",
		LogY:       true,
		Series:     []models.MChartSeries{s},
	}
}

// -----------------------------------------------------------------------------

// RenderSectorChart builds a market-cap pie across the watchlist's sectors.
func (cr *ChartRenderer) RenderSectorChart(sectors []models.MSectorStat) models.MChartSpec {
	s := models.MChartSeries{Name: "Market Cap"}
	for _, sec := range sectors {
		s.Categories = append(s.Categories, models.MCategoryPoint{
			Label: sec.Sector,
			Value: sec.TotalMarketCap,
		})
	}

	return models.MChartSpec{
		Type:   "pie",
		Title:  "Market Cap by Sector",
		Series: []models.MChartSeries{s},
	}
}

// -----------------------------------------------------------------------------

// RenderComparisonChart overlays two symbols' close prices on one time axis.
func (cr *ChartRenderer) RenderComparisonChart(symbolA, symbolB string, histA, histB []models.MPricePoint) models.MChartSpec {
	seriesA := models.MChartSeries{Name: symbolA, Color: colorPrimary}
	for _, p := range histA {
		seriesA.Points = append(seriesA.Points, models.MChartPoint{X: p.Date, Y: p.Close})
	}
	seriesB := models.MChartSeries{Name: symbolB, Color: colorSecond}
	for _, p := range histB {
		seriesB.Points = append(seriesB.Points, models.MChartPoint{X: p.Date, Y: p.Close})
	}

	return models.MChartSpec{
		Type:       "line",
		Title:      fmt.Sprintf("%s vs %s", symbolA, symbolB),
		XAxisTitle: "Date",
		YAxisTitle: "Price (USD)",
		Series:     []models.MChartSeries{seriesA, seriesB},
	}
}

// -----------------------------------------------------------------------------

// RenderForecastChart builds the forecast view: observed closes, the model
// line across the fitted range and projection, and the confidence band as a
// pair of fill series. Series order matters: the band must precede the lines
// so the front-end draws it underneath.
func (cr *ChartRenderer) RenderForecastChart(result *models.MForecastResult, observed []models.MPricePoint) models.MChartSpec {
	upper := models.MChartSeries{Name: "Upper Bound", Color: colorBand}
	lower := models.MChartSeries{Name: "Lower Bound", Color: colorBand, Fill: true}
	model := models.MChartSeries{Name: "Forecast", Color: colorForecast}

	for _, p := range result.Points {
		upper.Points = append(upper.Points, models.MChartPoint{X: p.Date, Y: p.YhatUpper})
		lower.Points = append(lower.Points, models.MChartPoint{X: p.Date, Y: p.YhatLower})
		model.Points = append(model.Points, models.MChartPoint{X: p.Date, Y: p.Yhat})
	}

	actual := models.MChartSeries{Name: "Observed", Color: colorPrimary}
	for _, p := range observed {
		actual.Points = append(actual.Points, models.MChartPoint{X: p.Date, Y: p.Close})
	}

	return models.MChartSpec{
		Type:       "line",
		Title:      fmt.Sprintf("%s %d-Day Forecast", result.Symbol, result.HorizonDays),
		XAxisTitle: "Date",
		YAxisTitle: "Price (USD)",
		Series:     []models.MChartSeries{upper, lower, model, actual},
	}
}
