package helpers

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type DashboardError struct {
	Message string
	Cause   error
}

func (e *DashboardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DashboardError) Unwrap() error {
	return e.Cause
}

// -----------------------------------------------------------------------------

// DataUnavailableError: the provider returned no rows for a symbol (delisting,
// holiday range, network failure, timeout). Callers skip the symbol and keep
// the dashboard alive.
type DataUnavailableError struct {
	DashboardError
	Symbol string
}

// InsufficientHistoryError: too little data to fit a forecast model. Surfaced
// to the user, never silently defaulted.
type InsufficientHistoryError struct {
	DashboardError
	Symbol     string
	DataPoints int
}

// InvalidHorizonError: forecast horizon outside the allowed bounds. Rejected
// before any fetching or fitting happens.
type InvalidHorizonError struct {
	DashboardError
	Horizon int
	Min     int
	Max     int
}

type ConfigurationError struct{ DashboardError }

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

func NewDataUnavailable(symbol string, cause error) *DataUnavailableError {
	return &DataUnavailableError{
		DashboardError: DashboardError{
			Message: fmt.Sprintf("no data available for %s", symbol),
			Cause:   cause,
		},
		Symbol: symbol,
	}
}

// -----------------------------------------------------------------------------

func NewInsufficientHistory(symbol string, points int) *InsufficientHistoryError {
	return &InsufficientHistoryError{
		DashboardError: DashboardError{
			Message: fmt.Sprintf("insufficient history for %s: %d usable points", symbol, points),
		},
		Symbol:     symbol,
		DataPoints: points,
	}
}

// -----------------------------------------------------------------------------

func NewInvalidHorizon(horizon, min, max int) *InvalidHorizonError {
	return &InvalidHorizonError{
		DashboardError: DashboardError{
			Message: fmt.Sprintf("horizon %d days out of range [%d, %d]", horizon, min, max),
		},
		Horizon: horizon,
		Min:     min,
		Max:     max,
	}
}

// -----------------------------------------------------------------------------
// Classification helpers
// -----------------------------------------------------------------------------

func IsDataUnavailable(err error) bool {
	var target *DataUnavailableError
	return errors.As(err, &target)
}

// -----------------------------------------------------------------------------

func IsInsufficientHistory(err error) bool {
	var target *InsufficientHistoryError
	return errors.As(err, &target)
}

// -----------------------------------------------------------------------------

func IsInvalidHorizon(err error) bool {
	var target *InvalidHorizonError
	return errors.As(err, &target)
}
