package core

import (
	"math"
	"testing"
)

// -----------------------------------------------------------------------------

func TestCalculateMeanStd(t *testing.T) {
	mean, std := CalculateMeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if mean != 5 {
		t.Errorf("mean = %f, want 5", mean)
	}
	if std != 2 {
		t.Errorf("std = %f, want 2", std)
	}
}

// -----------------------------------------------------------------------------

func TestCalculateMeanStdDegenerate(t *testing.T) {
	if mean, std := CalculateMeanStd(nil); mean != 0 || std != 0 {
		t.Errorf("empty input: got mean=%f std=%f", mean, std)
	}
	if mean, std := CalculateMeanStd([]float64{42}); mean != 42 || std != 0 {
		t.Errorf("single value: got mean=%f std=%f", mean, std)
	}
}

// -----------------------------------------------------------------------------

func TestCalculateCorrelationPerfect(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{10, 20, 30, 40, 50}

	corr, ok := CalculateCorrelation(x, y)
	if !ok {
		t.Fatal("correlation should be defined")
	}
	if math.Abs(corr-1) > 1e-9 {
		t.Errorf("corr = %f, want 1", corr)
	}

	inverted := []float64{50, 40, 30, 20, 10}
	corr, ok = CalculateCorrelation(x, inverted)
	if !ok {
		t.Fatal("correlation should be defined")
	}
	if math.Abs(corr+1) > 1e-9 {
		t.Errorf("corr = %f, want -1", corr)
	}
}

// -----------------------------------------------------------------------------

func TestCalculateCorrelationUndefined(t *testing.T) {
	cases := []struct {
		name string
		x, y []float64
	}{
		{"too short", []float64{1}, []float64{2}},
		{"mismatched lengths", []float64{1, 2, 3}, []float64{1, 2}},
		{"zero variance x", []float64{5, 5, 5}, []float64{1, 2, 3}},
		{"zero variance y", []float64{1, 2, 3}, []float64{7, 7, 7}},
		{"empty", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if corr, ok := CalculateCorrelation(tc.x, tc.y); ok {
				t.Errorf("expected undefined correlation, got %f", corr)
			}
		})
	}
}

// -----------------------------------------------------------------------------

func TestDailyReturns(t *testing.T) {
	returns := DailyReturns([]float64{100, 110, 99})
	if len(returns) != 2 {
		t.Fatalf("len = %d, want 2", len(returns))
	}
	if math.Abs(returns[0]-0.1) > 1e-9 {
		t.Errorf("returns[0] = %f, want 0.1", returns[0])
	}
	if math.Abs(returns[1]+0.1) > 1e-9 {
		t.Errorf("returns[1] = %f, want -0.1", returns[1])
	}

	if DailyReturns([]float64{100}) != nil {
		t.Error("single close should yield nil returns")
	}
}

// -----------------------------------------------------------------------------

func TestComputeOHLCV(t *testing.T) {
	ohlcv := ComputeOHLCV([]float64{10, 15, 8, 12}, []float64{100, 200, 300, 400})
	if ohlcv["open"] != 10 || ohlcv["close"] != 12 {
		t.Errorf("open/close = %f/%f, want 10/12", ohlcv["open"], ohlcv["close"])
	}
	if ohlcv["high"] != 15 || ohlcv["low"] != 8 {
		t.Errorf("high/low = %f/%f, want 15/8", ohlcv["high"], ohlcv["low"])
	}
	if ohlcv["volume"] != 1000 {
		t.Errorf("volume = %f, want 1000", ohlcv["volume"])
	}
}
