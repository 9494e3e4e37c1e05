package charts

import (
	"testing"
	"time"

	"stock-dashboard/src/config"
	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------

func newTestRenderer() *ChartRenderer {
	cfg := &config.Config{MConfig: &models.MConfig{LogLevel: "ERROR"}}
	return NewChartRenderer(cfg)
}

func closeSeries(symbol string, closes ...float64) []models.MPricePoint {
	base := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	points := make([]models.MPricePoint, 0, len(closes))
	for i, c := range closes {
		points = append(points, models.MPricePoint{
			Symbol: symbol,
			Date:   base.AddDate(0, 0, i).Unix(),
			Open:   c, High: c + 1, Low: c - 1, Close: c,
			Volume: 1000,
		})
	}
	return points
}

// -----------------------------------------------------------------------------

func TestRenderMoversChart(t *testing.T) {
	cr := newTestRenderer()

	ranking := models.MMoverRanking{
		Top: []models.MQuote{
			{Symbol: "NVDA", PercentChange: 5},
			{Symbol: "AAPL", PercentChange: 2},
		},
		Bottom: []models.MQuote{
			{Symbol: "INTC", PercentChange: -3},
		},
	}

	spec := cr.RenderMoversChart(ranking)
	if spec.Type != "bar" {
		t.Errorf("type = %s, want bar", spec.Type)
	}
	if len(spec.Series) != 2 {
		t.Fatalf("got %d series, want 2", len(spec.Series))
	}

	gainers, losers := spec.Series[0], spec.Series[1]
	if gainers.Color != "#28a745" || losers.Color != "#dc3545" {
		t.Errorf("colors = %s/%s", gainers.Color, losers.Color)
	}
	if len(gainers.Categories) != 2 || len(losers.Categories) != 1 {
		t.Errorf("got %d gainers / %d losers, want 2/1", len(gainers.Categories), len(losers.Categories))
	}
	if losers.Categories[0].Label != "INTC" {
		t.Errorf("loser = %s, want INTC", losers.Categories[0].Label)
	}
}

// -----------------------------------------------------------------------------

func TestRenderHistoryChartLine(t *testing.T) {
	cr := newTestRenderer()
	series := closeSeries("AAPL", 100, 102, 101)

	spec := cr.RenderHistoryChart("AAPL", series, "1d", false)
	if spec.Type != "line" {
		t.Errorf("type = %s, want line", spec.Type)
	}
	if len(spec.Series) != 1 || len(spec.Series[0].Points) != 3 {
		t.Fatalf("unexpected series layout: %+v", spec.Series)
	}
	if spec.Series[0].Points[2].Y != 101 {
		t.Errorf("last point = %f, want 101", spec.Series[0].Points[2].Y)
	}
}

// -----------------------------------------------------------------------------

func TestRenderHistoryChartCandlesResampled(t *testing.T) {
	cr := newTestRenderer()

	// Ten consecutive days span at least two Monday-anchored weeks.
	series := closeSeries("AAPL", 100, 101, 102, 103, 104, 105, 106, 107, 108, 109)

	spec := cr.RenderHistoryChart("AAPL", series, "1wk", true)
	if spec.Type != "candlestick" {
		t.Errorf("type = %s, want candlestick", spec.Type)
	}
	if len(spec.Series[0].Candles) >= len(series) {
		t.Errorf("weekly candles (%d) should be fewer than daily bars (%d)",
			len(spec.Series[0].Candles), len(series))
	}
}

// -----------------------------------------------------------------------------

func TestRenderMostActiveChart(t *testing.T) {
	cr := newTestRenderer()

	spec := cr.RenderMostActiveChart([]models.MQuote{
		{Symbol: "AAPL", Volume: 5e7},
		{Symbol: "MSFT", Volume: 3e7},
	})

	if spec.Type != "bar" || !spec.LogY {
		t.Errorf("type/logY = %s/%v, want bar/true", spec.Type, spec.LogY)
	}
	if len(spec.Series[0].Categories) != 2 {
		t.Errorf("got %d categories, want 2", len(spec.Series[0].Categories))
	}
}

// -----------------------------------------------------------------------------

func TestRenderSectorChart(t *testing.T) {
	cr := newTestRenderer()

	spec := cr.RenderSectorChart([]models.MSectorStat{
		{Sector: "Technology", TotalMarketCap: 5000},
		{Sector: "Healthcare", TotalMarketCap: 2000},
	})

	if spec.Type != "pie" {
		t.Errorf("type = %s, want pie", spec.Type)
	}
	if spec.Series[0].Categories[0].Label != "Technology" {
		t.Errorf("first slice = %s, want Technology", spec.Series[0].Categories[0].Label)
	}
}

// -----------------------------------------------------------------------------

func TestRenderForecastChartSeriesOrder(t *testing.T) {
	cr := newTestRenderer()

	base := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC).Unix()
	result := &models.MForecastResult{
		Symbol:       "AAPL",
		HorizonDays:  30,
		LastObserved: base,
		Points: []models.MForecastPoint{
			{Date: base, Yhat: 100, YhatLower: 98, YhatUpper: 102},
			{Date: base + 86400, Yhat: 101, YhatLower: 98, YhatUpper: 104},
		},
	}

	spec := cr.RenderForecastChart(result, closeSeries("AAPL", 100))
	if len(spec.Series) != 4 {
		t.Fatalf("got %d series, want 4", len(spec.Series))
	}

	// Band first (under the lines), lower bound carries the fill flag.
	if spec.Series[0].Name != "Upper Bound" || spec.Series[1].Name != "Lower Bound" {
		t.Errorf("band series order wrong: %s, %s", spec.Series[0].Name, spec.Series[1].Name)
	}
	if !spec.Series[1].Fill {
		t.Error("lower bound series should fill against the upper bound")
	}
	if spec.Series[2].Name != "Forecast" || spec.Series[3].Name != "Observed" {
		t.Errorf("line series order wrong: %s, %s", spec.Series[2].Name, spec.Series[3].Name)
	}
}
