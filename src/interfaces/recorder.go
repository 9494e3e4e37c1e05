package interfaces

import "stock-dashboard/src/models"

// -----------------------------------------------------------------------------
// IRecorder defines the contract for the optional snapshot recorder.
// Tables are recreated on Initialize; the dashboard never depends on data
// written by a previous session.
// -----------------------------------------------------------------------------

type IRecorder interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveQuotes inserts one refresh cycle's snapshot rows.
	SaveQuotes(quotes []models.MQuote) error

	// -----------------------------------------------------------------------------

	// SaveForecast records a generated forecast's projected rows.
	SaveForecast(result *models.MForecastResult) error

	// -----------------------------------------------------------------------------

	// CleanupOldData removes rows older than the retention policy.
	CleanupOldData() error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
