package core

import "math"

// -----------------------------------------------------------------------------

// CalculateChangePercent calculates fractional change vs a previous value.
func CalculateChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0.0
	}
	return (current - previous) / previous
}

// -----------------------------------------------------------------------------

// ComputeOHLCV collapses aligned price/volume arrays into one candle.
func ComputeOHLCV(prices []float64, volumes []float64) map[string]float64 {
	if len(prices) == 0 {
		return map[string]float64{
			"open": 0, "high": 0, "low": 0, "close": 0, "volume": 0, "avg_price": 0,
		}
	}

	open := prices[0]
	closePrice := prices[len(prices)-1]
	high := -1.0
	low := math.MaxFloat64
	totalVol := 0.0
	sumPrice := 0.0

	for i, p := range prices {
		if p > high {
			high = p
		}
		if p < low {
			low = p
		}
		if i < len(volumes) {
			totalVol += volumes[i]
		}
		sumPrice += p
	}

	return map[string]float64{
		"open":      open,
		"high":      high,
		"low":       low,
		"close":     closePrice,
		"volume":    totalVol,
		"avg_price": sumPrice / float64(len(prices)),
	}
}

// -----------------------------------------------------------------------------

// DailyReturns converts a close series into day-over-day fractional returns.
// The result has len(closes)-1 entries.
func DailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, CalculateChangePercent(closes[i], closes[i-1]))
	}
	return returns
}
