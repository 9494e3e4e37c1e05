package helpers

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// -----------------------------------------------------------------------------

func TestErrorClassification(t *testing.T) {
	dataErr := NewDataUnavailable("AAPL", errors.New("timeout"))
	historyErr := NewInsufficientHistory("MSFT", 1)
	horizonErr := NewInvalidHorizon(29, 30, 365)

	if !IsDataUnavailable(dataErr) || IsDataUnavailable(historyErr) || IsDataUnavailable(horizonErr) {
		t.Error("IsDataUnavailable misclassified")
	}
	if !IsInsufficientHistory(historyErr) || IsInsufficientHistory(dataErr) {
		t.Error("IsInsufficientHistory misclassified")
	}
	if !IsInvalidHorizon(horizonErr) || IsInvalidHorizon(dataErr) {
		t.Error("IsInvalidHorizon misclassified")
	}
}

// -----------------------------------------------------------------------------

func TestClassificationThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("refresh cycle: %w", NewDataUnavailable("AAPL", nil))
	if !IsDataUnavailable(wrapped) {
		t.Error("classification should survive fmt.Errorf wrapping")
	}
}

// -----------------------------------------------------------------------------

func TestErrorMessages(t *testing.T) {
	err := NewDataUnavailable("AAPL", errors.New("connection refused"))
	if !strings.Contains(err.Error(), "AAPL") || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("message lacks context: %q", err.Error())
	}

	horizonErr := NewInvalidHorizon(400, 30, 365)
	if !strings.Contains(horizonErr.Error(), "400") || !strings.Contains(horizonErr.Error(), "[30, 365]") {
		t.Errorf("message lacks bounds: %q", horizonErr.Error())
	}
	if horizonErr.Min != 30 || horizonErr.Max != 365 || horizonErr.Horizon != 400 {
		t.Errorf("fields not populated: %+v", horizonErr)
	}
}

// -----------------------------------------------------------------------------

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewDataUnavailable("AAPL", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause through Unwrap")
	}
}
