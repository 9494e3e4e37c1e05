package forecast

import (
	"fmt"
	"math"
)

// -----------------------------------------------------------------------------
// Ordinary least squares via the normal equations. The design matrices here
// are tiny (at most a dozen columns), so Gaussian elimination with partial
// pivoting is plenty.
// -----------------------------------------------------------------------------

// SolveLeastSquares returns beta minimizing ||X*beta - y||.
func SolveLeastSquares(X [][]float64, y []float64) ([]float64, error) {
	n := len(X)
	if n == 0 || n != len(y) {
		return nil, fmt.Errorf("least squares: %d rows vs %d targets", n, len(y))
	}
	p := len(X[0])
	if n < p {
		return nil, fmt.Errorf("least squares: %d rows for %d coefficients", n, p)
	}

	// Normal equations: A = X'X, b = X'y
	A := make([][]float64, p)
	b := make([]float64, p)
	for i := 0; i < p; i++ {
		A[i] = make([]float64, p)
	}

	for _, row := range X {
		if len(row) != p {
			return nil, fmt.Errorf("least squares: ragged design matrix")
		}
	}

	for k := 0; k < n; k++ {
		for i := 0; i < p; i++ {
			b[i] += X[k][i] * y[k]
			for j := i; j < p; j++ {
				A[i][j] += X[k][i] * X[k][j]
			}
		}
	}
	// Mirror the upper triangle
	for i := 0; i < p; i++ {
		for j := 0; j < i; j++ {
			A[i][j] = A[j][i]
		}
	}

	return solveLinearSystem(A, b)
}

// -----------------------------------------------------------------------------

// solveLinearSystem solves A*x = b in place by Gaussian elimination with
// partial pivoting.
func solveLinearSystem(A [][]float64, b []float64) ([]float64, error) {
	p := len(A)

	for col := 0; col < p; col++ {
		// Pivot
		pivot := col
		for row := col + 1; row < p; row++ {
			if math.Abs(A[row][col]) > math.Abs(A[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(A[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("singular system at column %d", col)
		}
		A[col], A[pivot] = A[pivot], A[col]
		b[col], b[pivot] = b[pivot], b[col]

		// Eliminate below
		for row := col + 1; row < p; row++ {
			factor := A[row][col] / A[col][col]
			if factor == 0 {
				continue
			}
			for j := col; j < p; j++ {
				A[row][j] -= factor * A[col][j]
			}
			b[row] -= factor * b[col]
		}
	}

	// Back substitution
	x := make([]float64, p)
	for i := p - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < p; j++ {
			sum -= A[i][j] * x[j]
		}
		x[i] = sum / A[i][i]
	}

	return x, nil
}

// -----------------------------------------------------------------------------

// Dot computes the inner product of a feature row and coefficient vector.
func Dot(features, beta []float64) float64 {
	sum := 0.0
	for i := range features {
		sum += features[i] * beta[i]
	}
	return sum
}
