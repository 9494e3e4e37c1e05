package forecast

import (
	"math"
	"time"

	"stock-dashboard/src/analysis/core"
	"stock-dashboard/src/config"
	"stock-dashboard/src/helpers"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/utils"
)

// -----------------------------------------------------------------------------
// ForecastEngine fits an additive model to a daily close series: linear trend
// plus weekly and yearly seasonality expressed as Fourier terms, estimated by
// ordinary least squares. The output covers the fitted historical range and
// then projects forward over trading days only.
// -----------------------------------------------------------------------------

const (
	secondsPerDay = 86400

	// Seasonal blocks are only fitted when the series is long enough to
	// identify them.
	minPointsForWeekly = 28
	minPointsForYearly = 366

	weeklyHarmonics = 2
	yearlyHarmonics = 3

	weeklyPeriodDays = 7.0
	yearlyPeriodDays = 365.25
)

// -----------------------------------------------------------------------------

type ForecastEngine struct {
	Config *config.Config
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewForecastEngine(cfg *config.Config) *ForecastEngine {
	return &ForecastEngine{
		Config: cfg,
		Logger: logger.NewLogger(cfg.LogLevel, "ForecastEngine"),
	}
}

// -----------------------------------------------------------------------------

// Forecast fits the model to the given daily series and projects horizonDays
// calendar days past the last observation. The horizon is validated before
// anything else, so an out-of-range request never touches the series.
func (fe *ForecastEngine) Forecast(symbol string, series []models.MPricePoint, horizonDays int) (*models.MForecastResult, error) {
	minH := fe.Config.Forecast.MinHorizonDays
	maxH := fe.Config.Forecast.MaxHorizonDays
	if horizonDays < minH || horizonDays > maxH {
		return nil, helpers.NewInvalidHorizon(horizonDays, minH, maxH)
	}

	if len(series) < 2 {
		return nil, helpers.NewInsufficientHistory(symbol, len(series))
	}

	closes := make([]float64, len(series))
	for i, p := range series {
		closes[i] = p.Close
	}
	if _, std := core.CalculateMeanStd(closes); std == 0 {
		// A flat series has no trend or seasonality to estimate.
		return nil, helpers.NewInsufficientHistory(symbol, len(series))
	}

	n := len(series)
	firstDate := series[0].Date
	lastDate := series[n-1].Date

	includeWeekly := n >= minPointsForWeekly
	includeYearly := n >= minPointsForYearly

	// Time axis in calendar days since the first observation. Gaps from
	// weekends and holidays keep their true width.
	ts := make([]float64, n)
	for i, p := range series {
		ts[i] = float64(p.Date-firstDate) / secondsPerDay
	}

	beta, err := fe.fit(ts, closes, includeWeekly, includeYearly)
	if err != nil {
		// Collinear seasonal columns can make the normal equations
		// singular on short or gappy series. Trend alone always fits.
		fe.Logger.Warning("%s: seasonal fit failed (%v), refitting trend only", symbol, err)
		includeWeekly, includeYearly = false, false
		beta, err = fe.fit(ts, closes, false, false)
		if err != nil {
			return nil, helpers.NewInsufficientHistory(symbol, n)
		}
	}

	// In-sample residual spread drives the confidence band.
	residuals := make([]float64, n)
	for i := range series {
		residuals[i] = closes[i] - Dot(featureRow(ts[i], includeWeekly, includeYearly), beta)
	}
	_, residualStd := core.CalculateMeanStd(residuals)

	z := zScore(fe.Config.Forecast.IntervalWidth)
	baseWidth := z * residualStd
	fitSpanDays := ts[n-1] - ts[0] + 1

	points := make([]models.MForecastPoint, 0, n+horizonDays)

	// Fitted range: constant-width band around the model.
	for i, p := range series {
		yhat := Dot(featureRow(ts[i], includeWeekly, includeYearly), beta)
		points = append(points, models.MForecastPoint{
			Date:      p.Date,
			Yhat:      yhat,
			YhatLower: yhat - baseWidth,
			YhatUpper: yhat + baseWidth,
		})
	}

	// Projected range: the band widens with the square root of the distance
	// past the last observation, scaled by the fitted span.
	cal := utils.GetCalendar(symbol)
	for _, day := range cal.TradingDaysAfter(time.Unix(lastDate, 0).UTC(), horizonDays) {
		t := float64(day.Unix()-firstDate) / secondsPerDay
		ahead := t - ts[n-1]
		width := baseWidth * math.Sqrt(1+ahead/fitSpanDays)
		yhat := Dot(featureRow(t, includeWeekly, includeYearly), beta)
		points = append(points, models.MForecastPoint{
			Date:      day.Unix(),
			Yhat:      yhat,
			YhatLower: yhat - width,
			YhatUpper: yhat + width,
		})
	}

	result := &models.MForecastResult{
		Symbol:        symbol,
		HorizonDays:   horizonDays,
		LastObserved:  lastDate,
		Points:        points,
		TrendPerDay:   beta[1],
		ResidualStd:   residualStd,
		IntervalWidth: fe.Config.Forecast.IntervalWidth,
		GeneratedAt:   time.Now().UTC(),
	}

	fe.Logger.Debug("%s: fitted %d points, projecting %d trading days (trend %.4f/day, residual std %.4f)",
		symbol, n, len(points)-n, result.TrendPerDay, residualStd)

	return result, nil
}

// -----------------------------------------------------------------------------

func (fe *ForecastEngine) fit(ts, closes []float64, weekly, yearly bool) ([]float64, error) {
	X := make([][]float64, len(ts))
	for i, t := range ts {
		X[i] = featureRow(t, weekly, yearly)
	}
	return SolveLeastSquares(X, closes)
}

// -----------------------------------------------------------------------------

// featureRow builds one design-matrix row: intercept, trend, then the enabled
// Fourier blocks. Column order must stay stable across fit and predict.
func featureRow(t float64, weekly, yearly bool) []float64 {
	row := []float64{1, t}
	if weekly {
		for k := 1; k <= weeklyHarmonics; k++ {
			angle := 2 * math.Pi * float64(k) * t / weeklyPeriodDays
			row = append(row, math.Sin(angle), math.Cos(angle))
		}
	}
	if yearly {
		for k := 1; k <= yearlyHarmonics; k++ {
			angle := 2 * math.Pi * float64(k) * t / yearlyPeriodDays
			row = append(row, math.Sin(angle), math.Cos(angle))
		}
	}
	return row
}

// -----------------------------------------------------------------------------

// zScore maps the configured interval width to a two-sided normal quantile.
func zScore(intervalWidth float64) float64 {
	switch {
	case intervalWidth >= 0.99:
		return 2.576
	case intervalWidth >= 0.95:
		return 1.960
	case intervalWidth >= 0.90:
		return 1.645
	case intervalWidth >= 0.80:
		return 1.282
	default:
		return 1.0
	}
}
