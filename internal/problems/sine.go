package problems

import (
	"fmt"
	"math"
)

// Sine is the scalar problem f(u, lambda) = sin(u) - lambda.
//
// Its branch is the curve lambda = sin(u) with a turning point at
// (u, lambda) = (pi/2, 1): natural continuation stalls there while
// pseudo-arclength continuation turns around and follows the descending
// flank.
type Sine struct {
	euclidean
}

func NewSine() *Sine { return &Sine{} }

func (*Sine) Name() string { return "sine" }

// Initial starts on the trivial root at the origin.
func (*Sine) Initial() ([]float64, float64) { return []float64{0}, 0 }

func (*Sine) F(u []float64, lmbda float64) []float64 {
	return []float64{math.Sin(u[0]) - lmbda}
}

func (*Sine) DfDlmbda(u []float64, lmbda float64) []float64 {
	return []float64{-1}
}

func (*Sine) JacobianSolve(u []float64, lmbda float64, rhs []float64) ([]float64, error) {
	if len(u) != 1 || len(rhs) != 1 {
		return nil, fmt.Errorf("sine: scalar problem, got dim %d/%d", len(u), len(rhs))
	}
	return []float64{rhs[0] / math.Cos(u[0])}, nil
}
