package continuation

// Problem is the capability contract a nonlinear problem f(u, lambda) = 0 must
// satisfy for natural continuation. The unknown type V is opaque to the
// drivers: every operation on it, including plain vector arithmetic, goes
// through these methods. Axpy and Scale exist because V carries no operators
// of its own.
//
// Implementations must be deterministic: repeated calls with identical inputs
// return identical values, and no call may mutate its arguments.
type Problem[V any] interface {
	// F evaluates the residual f(u, lambda).
	F(u V, lmbda float64) V

	// Inner is a symmetric positive-definite bilinear form on the solution
	// space, used for tangent normalization and arclength weighting.
	Inner(a, b V) float64

	// Norm2R is the squared norm in the residual space. It is the sole
	// convergence metric of the Newton corrector and need not agree with
	// Inner.
	Norm2R(r V) float64

	// JacobianSolve solves df/du(u, lambda) * x = rhs for x.
	JacobianSolve(u V, lmbda float64, rhs V) (V, error)

	// Axpy returns alpha*x + y without mutating x or y.
	Axpy(alpha float64, x, y V) V

	// Scale returns alpha*x without mutating x.
	Scale(alpha float64, x V) V
}

// ExtendedProblem adds the parameter derivative required by the Euler-Newton
// driver for tangent computation and the bordered corrector system.
type ExtendedProblem[V any] interface {
	Problem[V]

	// DfDlmbda evaluates the partial derivative of f with respect to lambda
	// at (u, lambda). Same shape as the residual.
	DfDlmbda(u V, lmbda float64) V
}

// Callback is invoked once per accepted step, synchronously, after the point
// has been appended to the branch.
type Callback[V any] func(step int, lmbda float64, u V)

// Tangent is the direction of travel along the branch, normalized so that
// Inner(Du, Du) + Dlmbda*Dlmbda == 1.
type Tangent[V any] struct {
	Du     V
	Dlmbda float64
}

// Observer receives per-step details beyond what the callback carries: the
// current tangent, the step length used, and the corrector cost. The natural
// driver reports a zero tangent and ds equal to the fixed lambda increment.
type Observer[V any] interface {
	OnAccept(step int, lmbda float64, u V, tan Tangent[V], ds float64, newtonIters int)
}
