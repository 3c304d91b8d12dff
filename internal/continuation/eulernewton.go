package continuation

import (
	"errors"
	"math"
)

// EulerNewtonOptions configures the pseudo-arclength driver.
type EulerNewtonOptions[V any] struct {
	// MaxSteps is the number of continuation steps taken beyond the initial
	// point. Zero returns an empty branch after the initial consistency
	// solve.
	MaxSteps int

	// StepSize is the initial arclength step length ds. It is adapted by the
	// step controller as the run proceeds.
	StepSize float64

	// NewtonTol is the corrector tolerance on the squared range norm of the
	// augmented residual.
	NewtonTol float64

	// MaxNewtonSteps is the corrector iteration budget per predictor step.
	MaxNewtonSteps int

	// Steps is the step-length adaptation policy.
	Steps StepController

	// Observers, if any, receive per-step details after each acceptance.
	Observers []Observer[V]
}

// DefaultEulerNewtonOptions returns the documented defaults.
func DefaultEulerNewtonOptions[V any]() EulerNewtonOptions[V] {
	return EulerNewtonOptions[V]{
		MaxSteps:       DefaultMaxSteps,
		StepSize:       DefaultStepSize,
		NewtonTol:      DefaultNewtonTol,
		MaxNewtonSteps: DefaultMaxNewtonSteps,
		Steps:          DefaultStepController(),
	}
}

func (o EulerNewtonOptions[V]) validate() error {
	if o.MaxSteps < 0 || o.StepSize <= 0 || o.NewtonTol <= 0 || o.MaxNewtonSteps < 1 {
		return ErrBadOptions
	}
	return o.Steps.validate()
}

// extPoint is the joint unknown of the augmented corrector.
type extPoint[V any] struct {
	u     V
	lmbda float64
}

// extResidual pairs the problem residual with the scalar arclength
// constraint value.
type extResidual[V any] struct {
	r V
	c float64
}

// arclength returns corrector operations for the bordered system
//
//	f(u, lambda)                                                  = 0
//	inner(du, u - uPred) + dlmbda*(lambda - lmbdaPred)            = 0
//
// which pins the correction to the hyperplane orthogonal to the tangent
// through the predicted point. The bordered Jacobian is never formed: each
// Newton update is assembled by block elimination from two plain Jacobian
// solves, one for the residual block and one for the df/dlmbda column.
func arclength[V any](p ExtendedProblem[V], uPred V, lmbdaPred float64, tan Tangent[V]) newtonFuncs[extPoint[V], extResidual[V]] {
	return newtonFuncs[extPoint[V], extResidual[V]]{
		residual: func(x extPoint[V]) (extResidual[V], float64, error) {
			r := p.F(x.u, x.lmbda)
			c := p.Inner(tan.Du, p.Axpy(-1, uPred, x.u)) + tan.Dlmbda*(x.lmbda-lmbdaPred)
			return extResidual[V]{r: r, c: c}, p.Norm2R(r) + c*c, nil
		},
		update: func(x extPoint[V], res extResidual[V]) (extPoint[V], error) {
			z1, err := p.JacobianSolve(x.u, x.lmbda, res.r)
			if err != nil {
				return x, err
			}
			z2, err := p.JacobianSolve(x.u, x.lmbda, p.DfDlmbda(x.u, x.lmbda))
			if err != nil {
				return x, err
			}
			denom := tan.Dlmbda - p.Inner(tan.Du, z2)
			dlmbda := (res.c - p.Inner(tan.Du, z1)) / denom
			if math.IsNaN(dlmbda) || math.IsInf(dlmbda, 0) {
				// Singular bordered system; let the driver shrink and retry.
				return x, ErrNoConvergence
			}
			du := p.Axpy(-dlmbda, z2, z1)
			return extPoint[V]{u: p.Axpy(-1, du, x.u), lmbda: x.lmbda - dlmbda}, nil
		},
	}
}

// EulerNewton traces the solution branch of f(u, lambda) = 0 by
// pseudo-arclength continuation: an Euler predictor along the branch tangent
// followed by a Newton corrector on the arclength-augmented system. Because
// lambda is a dependent unknown of the corrector, the branch may fold back in
// lambda and the run keeps tracking it through turning points.
//
// The initial tangent comes from the implicit function theorem,
// du/dlmbda = -J⁻¹ df/dlmbda, normalized with positive dlmbda; every later
// tangent is the normalized secant between the two newest accepted states,
// sign-matched to its predecessor. The branch traced so far is always
// returned, also on error.
func EulerNewton[V any](p ExtendedProblem[V], u0 V, lmbda0 float64, cb Callback[V], opts EulerNewtonOptions[V]) (*Branch[V], error) {
	branch := &Branch[V]{}
	if err := opts.validate(); err != nil {
		return branch, err
	}

	// Converge onto the branch at lmbda0 before stepping.
	u, iters, err := newtonCorrect[V, V](fixedLmbda[V](p, lmbda0), u0, opts.NewtonTol, opts.MaxNewtonSteps)
	if err != nil {
		return branch, &Error{Step: 0, Lmbda: lmbda0, Wrapped: err}
	}
	if opts.MaxSteps == 0 {
		return branch, nil
	}

	lmbda := lmbda0
	dudlmbda, err := p.JacobianSolve(u, lmbda, p.Scale(-1, p.DfDlmbda(u, lmbda)))
	if err != nil {
		return branch, &Error{Step: 0, Lmbda: lmbda, Wrapped: err}
	}
	dlmbda := 1 / math.Sqrt(1+p.Inner(dudlmbda, dudlmbda))
	if math.IsNaN(dlmbda) || math.IsInf(dlmbda, 0) {
		return branch, &Error{Step: 0, Lmbda: lmbda, Wrapped: ErrAdapterViolation}
	}
	tan := Tangent[V]{Du: p.Scale(dlmbda, dudlmbda), Dlmbda: dlmbda}

	accept := func(step int, u V, tan Tangent[V], ds float64, iters int) {
		branch.append(step, lmbda, u)
		if cb != nil {
			cb(step, lmbda, u)
		}
		for _, obs := range opts.Observers {
			obs.OnAccept(step, lmbda, u, tan, ds, iters)
		}
	}

	ds := opts.StepSize
	accept(0, u, tan, ds, iters)

	for k := 1; k <= opts.MaxSteps; k++ {
		for {
			uPred := p.Axpy(ds, tan.Du, u)
			lmbdaPred := lmbda + ds*tan.Dlmbda

			start := extPoint[V]{u: uPred, lmbda: lmbdaPred}
			x, iters, err := newtonCorrect(arclength(p, uPred, lmbdaPred, tan), start, opts.NewtonTol, opts.MaxNewtonSteps)
			if err != nil {
				if !errors.Is(err, ErrNoConvergence) {
					return branch, &Error{Step: k, Lmbda: lmbdaPred, Wrapped: err}
				}
				var ok bool
				if ds, ok = opts.Steps.AfterFailure(ds); !ok {
					return branch, &Error{Step: k, Lmbda: lmbda, Wrapped: ErrStepSizeUnderflow}
				}
				continue
			}

			// Secant tangent through the two newest accepted states,
			// normalized so inner(du,du) + dlmbda² = 1 and sign-matched to
			// the previous tangent so travel direction never reverses.
			diff := p.Axpy(-1, u, x.u)
			dl := x.lmbda - lmbda
			nrm := math.Sqrt(p.Inner(diff, diff) + dl*dl)
			if math.IsNaN(nrm) || math.IsInf(nrm, 0) || nrm == 0 {
				return branch, &Error{Step: k, Lmbda: x.lmbda, Wrapped: ErrAdapterViolation}
			}
			next := Tangent[V]{Du: p.Scale(1/nrm, diff), Dlmbda: dl / nrm}
			if p.Inner(next.Du, tan.Du)+next.Dlmbda*tan.Dlmbda < 0 {
				next.Du = p.Scale(-1, next.Du)
				next.Dlmbda = -next.Dlmbda
			}

			u, lmbda, tan = x.u, x.lmbda, next
			accept(k, u, tan, ds, iters)
			ds = opts.Steps.AfterSuccess(ds, iters)
			break
		}
	}
	return branch, nil
}
