package continuation

import (
	"errors"
	"math"
	"testing"
)

// sineCurve is the scalar problem f(u, lambda) = sin(u) - lambda over a bare
// float64 unknown. Branch: lambda = sin(u), fold at (pi/2, 1).
type sineCurve struct{}

func (sineCurve) F(u float64, lmbda float64) float64 { return math.Sin(u) - lmbda }

func (sineCurve) Inner(a, b float64) float64 { return a * b }

func (sineCurve) Norm2R(r float64) float64 { return r * r }

func (sineCurve) JacobianSolve(u, lmbda, rhs float64) (float64, error) {
	return rhs / math.Cos(u), nil
}

func (sineCurve) DfDlmbda(u, lmbda float64) float64 { return -1 }

func (sineCurve) Axpy(alpha, x, y float64) float64 { return alpha*x + y }

func (sineCurve) Scale(alpha, x float64) float64 { return alpha * x }

// nanCurve returns a non-finite residual everywhere.
type nanCurve struct{ sineCurve }

func (nanCurve) F(u float64, lmbda float64) float64 { return math.NaN() }

func TestNewtonCorrectorConverges(t *testing.T) {
	f := fixedLmbda[float64](sineCurve{}, 0.5)

	u, iters, err := newtonCorrect(f, 0.7, 1e-10, 10)
	if err != nil {
		t.Fatalf("corrector failed: %v", err)
	}
	want := math.Asin(0.5)
	if math.Abs(u-want) > 1e-9 {
		t.Errorf("converged to %v, want %v", u, want)
	}
	if iters < 1 {
		t.Errorf("expected at least one iteration, got %d", iters)
	}
}

func TestNewtonCorrectorZeroIterationsAtRoot(t *testing.T) {
	f := fixedLmbda[float64](sineCurve{}, 0.5)

	root := math.Asin(0.5)
	u, iters, err := newtonCorrect(f, root, 1e-6, 10)
	if err != nil {
		t.Fatalf("corrector failed: %v", err)
	}
	if iters != 0 {
		t.Errorf("point already on branch should cost zero iterations, got %d", iters)
	}
	if u != root {
		t.Errorf("point must not move, got %v", u)
	}
}

func TestNewtonCorrectorIdempotent(t *testing.T) {
	f := fixedLmbda[float64](sineCurve{}, 0.3)

	u1, it1, err1 := newtonCorrect(f, 0.9, 1e-10, 10)
	u2, it2, err2 := newtonCorrect(f, 0.9, 1e-10, 10)

	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if u1 != u2 || it1 != it2 {
		t.Errorf("corrector not deterministic: (%v, %d) vs (%v, %d)", u1, it1, u2, it2)
	}
}

func TestNewtonCorrectorBudgetExceeded(t *testing.T) {
	f := fixedLmbda[float64](sineCurve{}, 0.5)

	_, iters, err := newtonCorrect(f, 1.4, 1e-14, 1)
	if !errors.Is(err, ErrNoConvergence) {
		t.Fatalf("expected ErrNoConvergence, got %v", err)
	}
	if iters != 1 {
		t.Errorf("expected exactly the budget of 1 iteration, got %d", iters)
	}
}

func TestNewtonCorrectorNonFiniteResidual(t *testing.T) {
	f := fixedLmbda[float64](nanCurve{}, 0.5)

	_, _, err := newtonCorrect(f, 0.1, 1e-10, 10)
	if !errors.Is(err, ErrAdapterViolation) {
		t.Fatalf("expected ErrAdapterViolation, got %v", err)
	}
}
