package forecast

import (
	"math"
	"testing"
	"time"

	"stock-dashboard/src/config"
	"stock-dashboard/src/helpers"
	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------

func newTestEngine() *ForecastEngine {
	cfg := &config.Config{MConfig: &models.MConfig{
		LogLevel: "ERROR",
		Forecast: models.MForecastConfig{
			MinHorizonDays: 30,
			MaxHorizonDays: 365,
			IntervalWidth:  0.95,
		},
	}}
	return NewForecastEngine(cfg)
}

// linearSeries builds n consecutive calendar days of closes following
// 100 + i, starting on a Monday.
func linearSeries(n int) []models.MPricePoint {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]models.MPricePoint, 0, n)
	for i := 0; i < n; i++ {
		c := 100 + float64(i)
		points = append(points, models.MPricePoint{
			Symbol: "AAPL",
			Date:   start.AddDate(0, 0, i).Unix(),
			Open:   c, High: c, Low: c, Close: c,
			Volume: 1e6,
		})
	}
	return points
}

// -----------------------------------------------------------------------------

func TestForecastHorizonValidation(t *testing.T) {
	fe := newTestEngine()
	series := linearSeries(50)

	for _, horizon := range []int{-1, 0, 29, 366, 1000} {
		_, err := fe.Forecast("AAPL", series, horizon)
		if !helpers.IsInvalidHorizon(err) {
			t.Errorf("horizon %d: got %v, want InvalidHorizonError", horizon, err)
		}
	}

	for _, horizon := range []int{30, 365} {
		if _, err := fe.Forecast("AAPL", series, horizon); err != nil {
			t.Errorf("horizon %d: unexpected error %v", horizon, err)
		}
	}
}

// -----------------------------------------------------------------------------

func TestForecastHorizonCheckedFirst(t *testing.T) {
	fe := newTestEngine()

	// An unusable series must not mask the horizon error.
	_, err := fe.Forecast("AAPL", nil, 29)
	if !helpers.IsInvalidHorizon(err) {
		t.Errorf("got %v, want InvalidHorizonError", err)
	}
}

// -----------------------------------------------------------------------------

func TestForecastInsufficientHistory(t *testing.T) {
	fe := newTestEngine()

	if _, err := fe.Forecast("AAPL", nil, 30); !helpers.IsInsufficientHistory(err) {
		t.Errorf("empty series: got %v, want InsufficientHistoryError", err)
	}
	if _, err := fe.Forecast("AAPL", linearSeries(1), 30); !helpers.IsInsufficientHistory(err) {
		t.Errorf("single point: got %v, want InsufficientHistoryError", err)
	}

	// Constant closes: no variance to model.
	flat := linearSeries(50)
	for i := range flat {
		flat[i].Close = 100
	}
	if _, err := fe.Forecast("AAPL", flat, 30); !helpers.IsInsufficientHistory(err) {
		t.Errorf("flat series: got %v, want InsufficientHistoryError", err)
	}
}

// -----------------------------------------------------------------------------

func TestForecastContinuesLinearTrend(t *testing.T) {
	fe := newTestEngine()
	series := linearSeries(400)

	result, err := fe.Forecast("AAPL", series, 30)
	if err != nil {
		t.Fatalf("forecast failed: %v", err)
	}

	if math.Abs(result.TrendPerDay-1) > 0.05 {
		t.Errorf("TrendPerDay = %f, want ~1", result.TrendPerDay)
	}

	fitted := result.FittedPoints()
	if len(fitted) != 400 {
		t.Errorf("got %d fitted points, want 400", len(fitted))
	}

	projected := result.ProjectedPoints()
	if len(projected) == 0 {
		t.Fatal("no projected points")
	}

	firstDate := series[0].Date
	for _, p := range projected {
		if p.Date <= result.LastObserved {
			t.Fatalf("projected point at %d not past last observation %d", p.Date, result.LastObserved)
		}
		// On a noiseless line the projection continues 100 + day offset.
		want := 100 + float64(p.Date-firstDate)/86400
		if math.Abs(p.Yhat-want) > 0.5 {
			t.Errorf("yhat at %d = %f, want ~%f", p.Date, p.Yhat, want)
		}
	}

	// Projection stays within the requested horizon.
	horizonEnd := time.Unix(result.LastObserved, 0).UTC().AddDate(0, 0, 30).Unix()
	last := projected[len(projected)-1]
	if last.Date > horizonEnd {
		t.Errorf("projection at %d exceeds horizon end %d", last.Date, horizonEnd)
	}
}

// -----------------------------------------------------------------------------

func TestForecastBoundsOrderedAndWidening(t *testing.T) {
	fe := newTestEngine()

	// Trend plus alternating noise the model cannot absorb.
	series := linearSeries(200)
	for i := range series {
		offset := 3.0
		if i%2 == 1 {
			offset = -3.0
		}
		series[i].Close += offset
	}

	result, err := fe.Forecast("AAPL", series, 60)
	if err != nil {
		t.Fatalf("forecast failed: %v", err)
	}
	if result.ResidualStd <= 0 {
		t.Fatalf("ResidualStd = %f, want > 0", result.ResidualStd)
	}

	prevDate := int64(0)
	for _, p := range result.Points {
		if p.Date <= prevDate {
			t.Fatalf("dates not strictly increasing at %d", p.Date)
		}
		prevDate = p.Date

		if p.YhatLower > p.Yhat || p.Yhat > p.YhatUpper {
			t.Fatalf("bounds out of order at %d: [%f, %f, %f]", p.Date, p.YhatLower, p.Yhat, p.YhatUpper)
		}
	}

	prevWidth := 0.0
	for i, p := range result.ProjectedPoints() {
		width := p.YhatUpper - p.YhatLower
		if i > 0 && width < prevWidth-1e-9 {
			t.Fatalf("interval narrowed at %d: %f -> %f", p.Date, prevWidth, width)
		}
		prevWidth = width
	}
}

// -----------------------------------------------------------------------------

func TestForecastProjectsTradingDaysOnly(t *testing.T) {
	fe := newTestEngine()
	series := linearSeries(120)

	result, err := fe.Forecast("AAPL", series, 30)
	if err != nil {
		t.Fatalf("forecast failed: %v", err)
	}

	for _, p := range result.ProjectedPoints() {
		day := time.Unix(p.Date, 0).UTC().Weekday()
		if day == time.Saturday || day == time.Sunday {
			t.Errorf("projected point lands on %s", day)
		}
	}
}
