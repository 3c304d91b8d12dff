package continuation

// Default corrector settings shared by both drivers.
const (
	DefaultMaxSteps       = 100
	DefaultStepSize       = 0.1
	DefaultNewtonTol      = 1e-10
	DefaultMaxNewtonSteps = 5
)

// NaturalOptions configures the natural-parameter driver.
type NaturalOptions[V any] struct {
	// MaxSteps is the number of continuation steps taken beyond the initial
	// point. Zero returns an empty branch after the initial consistency
	// solve.
	MaxSteps int

	// StepSize is the fixed lambda increment per step. It may be negative to
	// sweep downward.
	StepSize float64

	// NewtonTol is the corrector tolerance: a point is accepted when the
	// squared range norm of the residual is below NewtonTol².
	NewtonTol float64

	// MaxNewtonSteps is the corrector iteration budget per step.
	MaxNewtonSteps int

	// Observers, if any, receive per-step details after each acceptance.
	Observers []Observer[V]
}

// DefaultNaturalOptions returns the documented defaults.
func DefaultNaturalOptions[V any]() NaturalOptions[V] {
	return NaturalOptions[V]{
		MaxSteps:       DefaultMaxSteps,
		StepSize:       DefaultStepSize,
		NewtonTol:      DefaultNewtonTol,
		MaxNewtonSteps: DefaultMaxNewtonSteps,
	}
}

func (o NaturalOptions[V]) validate() error {
	if o.MaxSteps < 0 || o.StepSize == 0 || o.NewtonTol <= 0 || o.MaxNewtonSteps < 1 {
		return ErrBadOptions
	}
	return nil
}

// fixedLmbda returns corrector operations for u -> f(u, lmbda) at fixed
// lmbda.
func fixedLmbda[V any](p Problem[V], lmbda float64) newtonFuncs[V, V] {
	return newtonFuncs[V, V]{
		residual: func(u V) (V, float64, error) {
			r := p.F(u, lmbda)
			return r, p.Norm2R(r), nil
		},
		update: func(u V, r V) (V, error) {
			du, err := p.JacobianSolve(u, lmbda, r)
			if err != nil {
				return u, err
			}
			return p.Axpy(-1, du, u), nil
		},
	}
}

// Natural traces the solution branch of f(u, lambda) = 0 by sweeping lambda
// in fixed increments and Newton-correcting u at each value. It cannot pass
// turning points: where the branch folds back in lambda the corrector stops
// converging and the run halts with an error. Use EulerNewton there.
//
// The branch traced so far is always returned, also on error.
func Natural[V any](p Problem[V], u0 V, lmbda0 float64, cb Callback[V], opts NaturalOptions[V]) (*Branch[V], error) {
	branch := &Branch[V]{}
	if err := opts.validate(); err != nil {
		return branch, err
	}

	// Converge onto the branch at lmbda0 before stepping.
	u, iters, err := newtonCorrect(fixedLmbda(p, lmbda0), u0, opts.NewtonTol, opts.MaxNewtonSteps)
	if err != nil {
		return branch, &Error{Step: 0, Lmbda: lmbda0, Wrapped: err}
	}
	if opts.MaxSteps == 0 {
		return branch, nil
	}
	lmbda := lmbda0
	accept := func(step int, lmbda float64, u V, iters int) {
		branch.append(step, lmbda, u)
		if cb != nil {
			cb(step, lmbda, u)
		}
		for _, obs := range opts.Observers {
			obs.OnAccept(step, lmbda, u, Tangent[V]{}, opts.StepSize, iters)
		}
	}
	accept(0, lmbda, u, iters)

	for k := 1; k <= opts.MaxSteps; k++ {
		lmbdaTrial := lmbda + opts.StepSize
		uNew, iters, err := newtonCorrect(fixedLmbda(p, lmbdaTrial), u, opts.NewtonTol, opts.MaxNewtonSteps)
		if err != nil {
			return branch, &Error{Step: k, Lmbda: lmbdaTrial, Wrapped: err}
		}
		u, lmbda = uNew, lmbdaTrial
		accept(k, lmbda, u, iters)
	}
	return branch, nil
}
