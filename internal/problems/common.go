package problems

import (
	"github.com/adtzlr/pacopy/internal/continuation"
	"github.com/adtzlr/pacopy/internal/linalg"
)

// Model is a named problem together with its canonical starting point.
type Model interface {
	continuation.ExtendedProblem[[]float64]
	Name() string
	Initial() (u0 []float64, lmbda0 float64)
}

// euclidean supplies the vector-space operations shared by the built-in
// problems: plain dot product inner, squared Euclidean range norm.
type euclidean struct{}

func (euclidean) Inner(a, b []float64) float64 { return linalg.Dot(a, b) }

func (euclidean) Norm2R(r []float64) float64 { return linalg.Dot(r, r) }

func (euclidean) Axpy(alpha float64, x, y []float64) []float64 { return linalg.Axpy(alpha, x, y) }

func (euclidean) Scale(alpha float64, x []float64) []float64 { return linalg.Scale(alpha, x) }
