package continuation

import "math"

// newtonFuncs bundles the operations one Newton correction works with. X is
// the point being refined (u alone for natural continuation, the joint
// (u, lambda) pair for the arclength corrector) and R the residual at such a
// point.
type newtonFuncs[X, R any] struct {
	// residual evaluates the residual at x together with its squared range
	// norm.
	residual func(x X) (R, float64, error)

	// update performs one Newton step: solve the Jacobian system at x for r
	// and subtract the solution from x.
	update func(x X, r R) (X, error)
}

// newtonCorrect refines x0 until the squared residual norm falls below tol²,
// applying at most maxSteps updates. It returns the refined point and the
// number of updates applied; a point that already satisfies the tolerance
// costs zero iterations. The corrector holds no state across invocations.
func newtonCorrect[X, R any](f newtonFuncs[X, R], x0 X, tol float64, maxSteps int) (X, int, error) {
	x := x0
	for iters := 0; ; iters++ {
		r, n2, err := f.residual(x)
		if err != nil {
			return x, iters, err
		}
		if math.IsNaN(n2) || math.IsInf(n2, 0) {
			return x, iters, ErrAdapterViolation
		}
		if n2 < tol*tol {
			return x, iters, nil
		}
		if iters == maxSteps {
			return x, iters, ErrNoConvergence
		}
		if x, err = f.update(x, r); err != nil {
			return x, iters, err
		}
	}
}
