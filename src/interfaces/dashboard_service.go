package interfaces

import (
	"time"

	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// IDashboardService answers the on-demand REST queries. The refresh loop keeps
// the broadcast snapshot current; these calls are driven by individual clients
// and may hit the provider when the cache is cold.
// -----------------------------------------------------------------------------

type IDashboardService interface {

	// -----------------------------------------------------------------------------

	// History returns daily bars for a symbol within [start, end], resampled
	// to the requested interval, plus the chart specification for them.
	History(symbol string, start, end time.Time, interval string, candles bool) ([]models.MPricePoint, models.MChartSpec, error)

	// -----------------------------------------------------------------------------

	// Compare builds the side-by-side comparison of two symbols.
	Compare(symbolA, symbolB string) (*models.MComparison, models.MChartSpec, error)

	// -----------------------------------------------------------------------------

	// ForecastSymbol fits and projects a forecast for one symbol.
	ForecastSymbol(symbol string, horizonDays int) (*models.MForecastResult, models.MChartSpec, error)
}
