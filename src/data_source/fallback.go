package datasource

import (
	"fmt"
	"time"

	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// FallbackFetcher chains providers: each call tries them in order and returns
// the first usable answer. Failures stay scoped to the single symbol/request.
type FallbackFetcher struct {
	Fetchers []interfaces.IHistoryFetcher
	Logger   *logger.Logger
}

// -----------------------------------------------------------------------------

func NewFallbackFetcher(log *logger.Logger, fetchers ...interfaces.IHistoryFetcher) *FallbackFetcher {
	return &FallbackFetcher{
		Fetchers: fetchers,
		Logger:   log,
	}
}

// -----------------------------------------------------------------------------

func (f *FallbackFetcher) Name() string {
	return "fallback"
}

// -----------------------------------------------------------------------------

func (f *FallbackFetcher) FetchDailyHistory(symbol string, start, end time.Time) ([]models.MPricePoint, error) {
	var lastErr error
	for _, fetcher := range f.Fetchers {
		points, err := fetcher.FetchDailyHistory(symbol, start, end)
		if err == nil {
			return points, nil
		}
		f.Logger.Info("Provider %s failed for %s: %v", fetcher.Name(), symbol, err)
		lastErr = err
	}
	return nil, lastErr
}

// -----------------------------------------------------------------------------

// FetchQuotes asks the primary provider first and only falls through for the
// symbols it could not serve, merging partial results.
func (f *FallbackFetcher) FetchQuotes(symbols []string) (map[string]models.MQuote, error) {
	results := make(map[string]models.MQuote, len(symbols))
	remaining := symbols

	for _, fetcher := range f.Fetchers {
		if len(remaining) == 0 {
			break
		}

		quotes, err := fetcher.FetchQuotes(remaining)
		if err != nil {
			f.Logger.Info("Provider %s quote batch failed: %v", fetcher.Name(), err)
			continue
		}

		var missing []string
		for _, sym := range remaining {
			if q, ok := quotes[sym]; ok {
				results[sym] = q
			} else {
				missing = append(missing, sym)
			}
		}
		remaining = missing
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no provider served any of %d symbols", len(symbols))
	}
	return results, nil
}
