package analysis

import (
	"sort"
	"time"

	"stock-dashboard/src/analysis/core"
	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// Daily-bar resampling for long-range history charts. Daily points are
// grouped into calendar weeks or months and collapsed into one candle per
// bucket.
// -----------------------------------------------------------------------------

const (
	IntervalDaily   = "1d"
	IntervalWeekly  = "1wk"
	IntervalMonthly = "1mo"
)

// ValidInterval reports whether interval names a supported resampling window.
func ValidInterval(interval string) bool {
	switch interval {
	case IntervalDaily, IntervalWeekly, IntervalMonthly:
		return true
	}
	return false
}

// -----------------------------------------------------------------------------

// bucketStart returns the first day of the bucket containing t.
func bucketStart(t time.Time, interval string) time.Time {
	switch interval {
	case IntervalWeekly:
		// Monday-anchored weeks
		offset := (int(t.Weekday()) + 6) % 7
		day := t.AddDate(0, 0, -offset)
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	case IntervalMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// -----------------------------------------------------------------------------

// Resample collapses a daily series into interval-sized candles. Daily input
// is returned unchanged. Output is ordered by bucket date, one point per
// bucket, keyed by the bucket's first calendar day.
func Resample(points []models.MPricePoint, interval string) []models.MPricePoint {
	if interval == IntervalDaily || len(points) == 0 {
		return points
	}

	type bucket struct {
		start  int64
		open   float64
		prices []float64
		vols   []float64
		high   float64
		low    float64
	}

	buckets := make(map[int64]*bucket)

	for _, p := range points {
		start := bucketStart(p.Day(), interval).Unix()
		b, ok := buckets[start]
		if !ok {
			// First point of a bucket is its earliest day; input is ordered.
			b = &bucket{start: start, open: p.Open, high: p.High, low: p.Low}
			buckets[start] = b
		}
		b.prices = append(b.prices, p.Close)
		b.vols = append(b.vols, p.Volume)
		if p.High > b.high {
			b.high = p.High
		}
		if p.Low < b.low {
			b.low = p.Low
		}
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].start < ordered[j].start })

	symbol := points[0].Symbol
	fetchedAt := points[0].FetchedAt
	result := make([]models.MPricePoint, 0, len(ordered))
	prevClose := 0.0

	for _, b := range ordered {
		ohlcv := core.ComputeOHLCV(b.prices, b.vols)

		pct := 0.0
		if prevClose > 0 {
			pct = core.CalculateChangePercent(ohlcv["close"], prevClose)
		}

		result = append(result, models.MPricePoint{
			Symbol:             symbol,
			Date:               b.start,
			Open:               b.open,
			High:               b.high,
			Low:                b.low,
			Close:              ohlcv["close"],
			Volume:             ohlcv["volume"],
			PricePercentChange: pct,
			FetchedAt:          fetchedAt,
		})
		prevClose = ohlcv["close"]
	}

	return result
}
