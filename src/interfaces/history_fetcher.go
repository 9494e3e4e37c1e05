package interfaces

import (
	"time"

	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// IHistoryFetcher wraps an external market-data provider.
// -----------------------------------------------------------------------------

type IHistoryFetcher interface {

	// Name returns the unique identifier of the provider
	Name() string

	// -----------------------------------------------------------------------------

	// FetchDailyHistory returns ordered daily bars for a symbol within
	// [start, end]. An empty provider response, a network failure, or a
	// timeout yields *helpers.DataUnavailableError; callers skip the symbol
	// rather than abort the dashboard.
	FetchDailyHistory(symbol string, start, end time.Time) ([]models.MPricePoint, error)

	// -----------------------------------------------------------------------------

	// FetchQuotes returns the latest snapshot for each symbol. Symbols the
	// provider cannot serve are absent from the result; only a total failure
	// returns an error.
	FetchQuotes(symbols []string) (map[string]models.MQuote, error)
}
