package continuation

import (
	"errors"
	"math"
	"testing"
)

func TestNaturalTracksBranch(t *testing.T) {
	opts := NaturalOptions[float64]{
		MaxSteps:       9,
		StepSize:       0.1,
		NewtonTol:      1e-9,
		MaxNewtonSteps: 8,
	}

	var seen []int
	branch, err := Natural[float64](sineCurve{}, 0, 0, func(step int, lmbda float64, u float64) {
		seen = append(seen, step)
	}, opts)
	if err != nil {
		t.Fatalf("natural continuation failed: %v", err)
	}

	if branch.Len() != 10 {
		t.Fatalf("expected 10 accepted states, got %d", branch.Len())
	}
	for i, p := range branch.Points {
		wantLmbda := 0.1 * float64(i)
		if math.Abs(p.Lmbda-wantLmbda) > 1e-12 {
			t.Errorf("step %d: lambda = %v, want %v", i, p.Lmbda, wantLmbda)
		}
		if r := math.Sin(p.U) - p.Lmbda; r*r > opts.NewtonTol*opts.NewtonTol {
			t.Errorf("step %d: accepted state violates tolerance, residual %v", i, r)
		}
		if seen[i] != i {
			t.Errorf("callback order broken at %d: got step %d", i, seen[i])
		}
	}
}

func TestNaturalFailsAtFold(t *testing.T) {
	opts := NaturalOptions[float64]{
		MaxSteps:       30,
		StepSize:       0.1,
		NewtonTol:      1e-9,
		MaxNewtonSteps: 8,
	}

	branch, err := Natural[float64](sineCurve{}, 0, 0, nil, opts)
	if !errors.Is(err, ErrNoConvergence) {
		t.Fatalf("expected ErrNoConvergence at the fold, got %v", err)
	}

	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if cerr.Step != branch.Len() {
		t.Errorf("error reports step %d, branch has %d accepted states", cerr.Step, branch.Len())
	}

	last, ok := branch.Last()
	if !ok {
		t.Fatal("expected accepted states before the fold")
	}
	if last.Lmbda > 1 {
		t.Errorf("natural continuation passed the fold, lambda = %v", last.Lmbda)
	}
	if last.Lmbda < 0.8 {
		t.Errorf("stalled too early, lambda = %v", last.Lmbda)
	}
}

func TestNaturalMaxStepsZero(t *testing.T) {
	opts := NaturalOptions[float64]{
		MaxSteps:       0,
		StepSize:       0.1,
		NewtonTol:      1e-9,
		MaxNewtonSteps: 8,
	}

	called := false
	branch, err := Natural[float64](sineCurve{}, 0, 0, func(int, float64, float64) {
		called = true
	}, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if branch.Len() != 0 {
		t.Errorf("expected empty branch, got %d states", branch.Len())
	}
	if called {
		t.Error("callback must not fire when max steps is zero")
	}
}

func TestNaturalNegativeStepSize(t *testing.T) {
	opts := NaturalOptions[float64]{
		MaxSteps:       5,
		StepSize:       -0.1,
		NewtonTol:      1e-9,
		MaxNewtonSteps: 8,
	}

	branch, err := Natural[float64](sineCurve{}, 0, 0, nil, opts)
	if err != nil {
		t.Fatalf("downward sweep failed: %v", err)
	}
	last, _ := branch.Last()
	if math.Abs(last.Lmbda+0.5) > 1e-12 {
		t.Errorf("expected lambda -0.5, got %v", last.Lmbda)
	}
}

func TestNaturalBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts NaturalOptions[float64]
	}{
		{"zero step size", NaturalOptions[float64]{MaxSteps: 1, NewtonTol: 1e-9, MaxNewtonSteps: 3}},
		{"negative max steps", NaturalOptions[float64]{MaxSteps: -1, StepSize: 0.1, NewtonTol: 1e-9, MaxNewtonSteps: 3}},
		{"zero tolerance", NaturalOptions[float64]{MaxSteps: 1, StepSize: 0.1, MaxNewtonSteps: 3}},
		{"zero newton budget", NaturalOptions[float64]{MaxSteps: 1, StepSize: 0.1, NewtonTol: 1e-9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Natural[float64](sineCurve{}, 0, 0, nil, tt.opts); !errors.Is(err, ErrBadOptions) {
				t.Errorf("expected ErrBadOptions, got %v", err)
			}
		})
	}
}
