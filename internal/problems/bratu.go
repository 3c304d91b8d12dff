package problems

import (
	"fmt"
	"math"

	"github.com/adtzlr/pacopy/internal/linalg"
)

// DefaultBratuNodes is the default number of interior grid nodes.
const DefaultBratuNodes = 51

// Bratu is the one-dimensional Gelfand-Bratu boundary value problem
//
//	u'' + lambda*exp(u) = 0 on (0, 1),  u(0) = u(1) = 0,
//
// discretized with central differences on n interior nodes. The residual at
// node i is (u[i-1] - 2u[i] + u[i+1])/h² + lambda*exp(u[i]) with homogeneous
// boundary values, so the Jacobian is tridiagonal and solved directly.
//
// The lower solution branch folds at lambda ≈ 3.5138; beyond the fold the
// branch continues with growing u and decreasing lambda.
type Bratu struct {
	n int
	h float64
}

// NewBratu discretizes the problem with n interior nodes. Non-positive n
// falls back to DefaultBratuNodes.
func NewBratu(n int) *Bratu {
	if n <= 0 {
		n = DefaultBratuNodes
	}
	return &Bratu{n: n, h: 1 / float64(n+1)}
}

func (b *Bratu) Name() string { return "bratu" }

// Dim returns the number of interior grid nodes.
func (b *Bratu) Dim() int { return b.n }

// Initial starts on the trivial solution u = 0 at lambda = 0.
func (b *Bratu) Initial() ([]float64, float64) { return make([]float64, b.n), 0 }

func (b *Bratu) F(u []float64, lmbda float64) []float64 {
	h2 := b.h * b.h
	r := make([]float64, b.n)
	for i := range r {
		left, right := 0.0, 0.0
		if i > 0 {
			left = u[i-1]
		}
		if i < b.n-1 {
			right = u[i+1]
		}
		r[i] = (left-2*u[i]+right)/h2 + lmbda*math.Exp(u[i])
	}
	return r
}

func (b *Bratu) DfDlmbda(u []float64, lmbda float64) []float64 {
	r := make([]float64, b.n)
	for i := range r {
		r[i] = math.Exp(u[i])
	}
	return r
}

// JacobianSolve solves the tridiagonal system df/du * x = rhs directly.
func (b *Bratu) JacobianSolve(u []float64, lmbda float64, rhs []float64) ([]float64, error) {
	if len(u) != b.n || len(rhs) != b.n {
		return nil, fmt.Errorf("bratu: dimension mismatch, want %d got %d/%d", b.n, len(u), len(rhs))
	}
	h2 := b.h * b.h
	lower := make([]float64, b.n)
	diag := make([]float64, b.n)
	upper := make([]float64, b.n)
	for i := 0; i < b.n; i++ {
		if i > 0 {
			lower[i] = 1 / h2
		}
		if i < b.n-1 {
			upper[i] = 1 / h2
		}
		diag[i] = -2/h2 + lmbda*math.Exp(u[i])
	}
	return linalg.SolveTridiag(lower, diag, upper, rhs)
}

// Inner is the mesh-weighted inner product h*<a, b>, the discrete L² form on
// the grid. The arclength weighting is therefore mesh independent.
func (b *Bratu) Inner(a, x []float64) float64 { return b.h * linalg.Dot(a, x) }

// Norm2R is the mesh-weighted squared residual norm h*<r, r>.
func (b *Bratu) Norm2R(r []float64) float64 { return b.h * linalg.Dot(r, r) }

func (b *Bratu) Axpy(alpha float64, x, y []float64) []float64 { return linalg.Axpy(alpha, x, y) }

func (b *Bratu) Scale(alpha float64, x []float64) []float64 { return linalg.Scale(alpha, x) }
