package linalg

import "fmt"

// Dot returns the Euclidean inner product of a and b. The slices must have
// equal length; a mismatch is an adapter shape bug and panics rather than
// silently truncating the product.
func Dot(a, b []float64) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("linalg: dot dimension mismatch (%d/%d)", len(a), len(b)))
	}
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Axpy returns alpha*x + y as a new slice. x and y must have equal length.
func Axpy(alpha float64, x, y []float64) []float64 {
	if len(x) != len(y) {
		panic(fmt.Sprintf("linalg: axpy dimension mismatch (%d/%d)", len(x), len(y)))
	}
	out := make([]float64, len(y))
	for i := range y {
		out[i] = y[i] + alpha*x[i]
	}
	return out
}

// Scale returns alpha*x as a new slice.
func Scale(alpha float64, x []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = alpha * x[i]
	}
	return out
}

// SolveTridiag solves a tridiagonal system by the Thomas algorithm.
//
// The system has diag on the main diagonal, lower on the subdiagonal
// (lower[0] unused) and upper on the superdiagonal (upper[n-1] unused).
// Inputs are not mutated. The algorithm is the direct forward-elimination /
// back-substitution sweep and assumes the system is nonsingular; a vanishing
// pivot is reported as an error.
func SolveTridiag(lower, diag, upper, rhs []float64) ([]float64, error) {
	n := len(diag)
	if len(lower) != n || len(upper) != n || len(rhs) != n {
		return nil, fmt.Errorf("linalg: tridiagonal system dimensions disagree (%d/%d/%d/%d)",
			len(lower), n, len(upper), len(rhs))
	}
	if n == 0 {
		return []float64{}, nil
	}

	cp := make([]float64, n)
	dp := make([]float64, n)

	if diag[0] == 0 {
		return nil, fmt.Errorf("linalg: zero pivot at row 0")
	}
	cp[0] = upper[0] / diag[0]
	dp[0] = rhs[0] / diag[0]
	for i := 1; i < n; i++ {
		den := diag[i] - lower[i]*cp[i-1]
		if den == 0 {
			return nil, fmt.Errorf("linalg: zero pivot at row %d", i)
		}
		cp[i] = upper[i] / den
		dp[i] = (rhs[i] - lower[i]*dp[i-1]) / den
	}

	x := make([]float64, n)
	x[n-1] = dp[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = dp[i] - cp[i]*x[i+1]
	}
	return x, nil
}
