package problems

import "fmt"

// Circle is the scalar problem f(u, lambda) = u² + lambda² - 1.
//
// The branch is the unit circle in the (lambda, u) plane: a closed curve
// with folds at lambda = 1 and lambda = -1 where the Jacobian df/du = 2u
// vanishes.
// A long enough pseudo-arclength run traverses both folds and returns to
// its starting region.
type Circle struct {
	euclidean
}

func NewCircle() *Circle { return &Circle{} }

func (*Circle) Name() string { return "circle" }

// Initial starts at the top of the circle, (u, lambda) = (1, 0).
func (*Circle) Initial() ([]float64, float64) { return []float64{1}, 0 }

func (*Circle) F(u []float64, lmbda float64) []float64 {
	return []float64{u[0]*u[0] + lmbda*lmbda - 1}
}

func (*Circle) DfDlmbda(u []float64, lmbda float64) []float64 {
	return []float64{2 * lmbda}
}

func (*Circle) JacobianSolve(u []float64, lmbda float64, rhs []float64) ([]float64, error) {
	if len(u) != 1 || len(rhs) != 1 {
		return nil, fmt.Errorf("circle: scalar problem, got dim %d/%d", len(u), len(rhs))
	}
	return []float64{rhs[0] / (2 * u[0])}, nil
}
