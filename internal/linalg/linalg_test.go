package linalg

import (
	"math"
	"testing"
)

func TestDot(t *testing.T) {
	if got := Dot([]float64{1, 2, 3}, []float64{4, 5, 6}); got != 32 {
		t.Fatalf("Dot = %g, want 32", got)
	}
	if got := Dot(nil, nil); got != 0 {
		t.Fatalf("Dot of empty slices = %g, want 0", got)
	}
}

func TestDotMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("mismatched lengths must panic, not truncate")
		}
	}()
	Dot([]float64{1}, []float64{1, 2})
}

func TestAxpyMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("mismatched lengths must panic, not truncate")
		}
	}()
	Axpy(1, []float64{1}, []float64{1, 2})
}

func TestAxpy(t *testing.T) {
	got := Axpy(2, []float64{1, 2}, []float64{10, 20})
	for i, want := range []float64{12, 24} {
		if got[i] != want {
			t.Fatalf("Axpy = %v, want [12 24]", got)
		}
	}
}

func TestAxpyDoesNotMutate(t *testing.T) {
	x := []float64{1, 1}
	y := []float64{5, 5}
	Axpy(3, x, y)
	if x[0] != 1 || y[0] != 5 {
		t.Fatalf("inputs mutated: x=%v y=%v", x, y)
	}
}

func TestScale(t *testing.T) {
	got := Scale(-1, []float64{1, -2, 3})
	for i, want := range []float64{-1, 2, -3} {
		if got[i] != want {
			t.Fatalf("Scale = %v", got)
		}
	}
}

// applyTridiag computes A*x for the tridiagonal matrix with the given bands.
func applyTridiag(lower, diag, upper, x []float64) []float64 {
	n := len(diag)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = diag[i] * x[i]
		if i > 0 {
			out[i] += lower[i] * x[i-1]
		}
		if i < n-1 {
			out[i] += upper[i] * x[i+1]
		}
	}
	return out
}

func TestSolveTridiag(t *testing.T) {
	// Discrete Laplacian, diagonally dominant after shifting.
	n := 12
	lower := make([]float64, n)
	diag := make([]float64, n)
	upper := make([]float64, n)
	rhs := make([]float64, n)
	for i := 0; i < n; i++ {
		diag[i] = -2.5
		if i > 0 {
			lower[i] = 1
		}
		if i < n-1 {
			upper[i] = 1
		}
		rhs[i] = math.Sin(float64(i + 1))
	}

	x, err := SolveTridiag(lower, diag, upper, rhs)
	if err != nil {
		t.Fatalf("SolveTridiag: %v", err)
	}

	back := applyTridiag(lower, diag, upper, x)
	for i := range rhs {
		if math.Abs(back[i]-rhs[i]) > 1e-12 {
			t.Fatalf("row %d: A*x = %g, want %g", i, back[i], rhs[i])
		}
	}
}

func TestSolveTridiagSingleRow(t *testing.T) {
	x, err := SolveTridiag([]float64{0}, []float64{4}, []float64{0}, []float64{8})
	if err != nil {
		t.Fatalf("SolveTridiag: %v", err)
	}
	if x[0] != 2 {
		t.Fatalf("x = %v, want [2]", x)
	}
}

func TestSolveTridiagEmpty(t *testing.T) {
	x, err := SolveTridiag(nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("SolveTridiag: %v", err)
	}
	if len(x) != 0 {
		t.Fatalf("x = %v, want empty", x)
	}
}

func TestSolveTridiagZeroPivot(t *testing.T) {
	_, err := SolveTridiag([]float64{0, 0}, []float64{0, 1}, []float64{0, 0}, []float64{1, 1})
	if err == nil {
		t.Fatal("want zero pivot error")
	}
}

func TestSolveTridiagDimensionMismatch(t *testing.T) {
	_, err := SolveTridiag([]float64{0}, []float64{1, 1}, []float64{0, 0}, []float64{1, 1})
	if err == nil {
		t.Fatal("want dimension error")
	}
}
