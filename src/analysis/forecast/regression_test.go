package forecast

import (
	"math"
	"testing"
)

// -----------------------------------------------------------------------------

func TestSolveLeastSquaresExactLine(t *testing.T) {
	// y = 3 + 2x, noiseless
	X := [][]float64{{1, 0}, {1, 1}, {1, 2}, {1, 3}}
	y := []float64{3, 5, 7, 9}

	beta, err := SolveLeastSquares(X, y)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if math.Abs(beta[0]-3) > 1e-9 || math.Abs(beta[1]-2) > 1e-9 {
		t.Errorf("beta = %v, want [3 2]", beta)
	}
}

// -----------------------------------------------------------------------------

func TestSolveLeastSquaresOverdetermined(t *testing.T) {
	// Points off the line by symmetric noise; LS recovers the midline.
	X := [][]float64{{1, 0}, {1, 1}, {1, 2}, {1, 3}}
	y := []float64{1, 4, 5, 8} // around y = 1.2 + 2.2x

	beta, err := SolveLeastSquares(X, y)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	// Residuals must be orthogonal to the columns of X
	for col := 0; col < 2; col++ {
		dot := 0.0
		for i := range X {
			residual := y[i] - Dot(X[i], beta)
			dot += residual * X[i][col]
		}
		if math.Abs(dot) > 1e-9 {
			t.Errorf("residuals not orthogonal to column %d: %f", col, dot)
		}
	}
}

// -----------------------------------------------------------------------------

func TestSolveLeastSquaresSingular(t *testing.T) {
	// Second column is a multiple of the first: rank deficient.
	X := [][]float64{{1, 2}, {2, 4}, {3, 6}}
	y := []float64{1, 2, 3}

	if _, err := SolveLeastSquares(X, y); err == nil {
		t.Error("expected error for singular system")
	}
}

// -----------------------------------------------------------------------------

func TestSolveLeastSquaresShapeErrors(t *testing.T) {
	if _, err := SolveLeastSquares(nil, nil); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := SolveLeastSquares([][]float64{{1, 2, 3}}, []float64{1}); err == nil {
		t.Error("expected error for more columns than rows")
	}
}
