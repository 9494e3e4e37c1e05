package models

import "time"

// MForecastPoint is one row of a forecast: point estimate plus confidence bounds.
type MForecastPoint struct {
	Date      int64   `json:"date"` // unix seconds, midnight UTC
	Yhat      float64 `json:"yhat"`
	YhatLower float64 `json:"yhat_lower"`
	YhatUpper float64 `json:"yhat_upper"`
}

// MForecastResult covers the fitted historical range followed by the projected
// horizon. Invariants: dates strictly increasing, lower <= yhat <= upper on
// every row, interval width non-decreasing past the last observation.
type MForecastResult struct {
	Symbol        string           `json:"symbol"`
	HorizonDays   int              `json:"horizon_days"`
	LastObserved  int64            `json:"last_observed"` // date of final historical point
	Points        []MForecastPoint `json:"points"`
	TrendPerDay   float64          `json:"trend_per_day"`  // fitted linear slope
	ResidualStd   float64          `json:"residual_std"`   // std of in-sample residuals
	IntervalWidth float64          `json:"interval_width"` // confidence level, e.g. 0.95
	GeneratedAt   time.Time        `json:"generated_at"`
}

// FittedPoints returns the rows covering the historical range.
func (r *MForecastResult) FittedPoints() []MForecastPoint {
	for i, p := range r.Points {
		if p.Date > r.LastObserved {
			return r.Points[:i]
		}
	}
	return r.Points
}

// ProjectedPoints returns the rows past the last observed date.
func (r *MForecastResult) ProjectedPoints() []MForecastPoint {
	for i, p := range r.Points {
		if p.Date > r.LastObserved {
			return r.Points[i:]
		}
	}
	return nil
}
