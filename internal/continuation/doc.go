// Package continuation traces solution branches of parametrized nonlinear
// equations f(u, lambda) = 0 as the scalar parameter lambda varies.
//
// Two predictor-corrector drivers are provided:
//
//   - [Natural]: sweeps lambda in fixed increments and Newton-corrects u at
//     each value. Simple, but stalls at turning points where the branch
//     folds back in lambda.
//   - [EulerNewton]: pseudo-arclength continuation. Predicts along the
//     branch tangent in joint (u, lambda) space and corrects with an
//     arclength-augmented Newton system, so folds are traversed instead of
//     fatal.
//
// The problem is supplied through the [Problem] capability interface; the
// unknown type is opaque to the drivers and all linear algebra happens
// inside the adapter's JacobianSolve. The augmented system of the
// Euler-Newton corrector is solved by block elimination with two plain
// Jacobian solves per iteration, never by forming a bordered matrix.
//
// # Example
//
//	p := problems.NewSine()
//	u0, lmbda0 := p.Initial()
//	opts := continuation.DefaultEulerNewtonOptions[[]float64]()
//	branch, err := continuation.EulerNewton[[]float64](p, u0, lmbda0,
//		func(step int, lmbda float64, u []float64) {
//			fmt.Printf("%4d  lambda=%.4f\n", step, lmbda)
//		}, opts)
//
// # Thread Safety
//
// A driver call is a single sequential loop; nothing runs concurrently and
// the adapter is only ever called from the driver's goroutine.
package continuation
