package continuation

import (
	"errors"
	"fmt"
)

// Domain errors for continuation runs.
var (
	// ErrNoConvergence indicates the Newton corrector exhausted its iteration
	// budget without meeting the tolerance.
	ErrNoConvergence = errors.New("continuation: newton corrector did not converge")

	// ErrStepSizeUnderflow indicates repeated corrector failures shrank the
	// step length below the configured minimum.
	ErrStepSizeUnderflow = errors.New("continuation: step size below minimum")

	// ErrAdapterViolation indicates the problem adapter returned a non-finite
	// value (NaN or Inf).
	ErrAdapterViolation = errors.New("continuation: adapter returned non-finite value")

	// ErrBadOptions indicates invalid driver options.
	ErrBadOptions = errors.New("continuation: invalid options")
)

// Error wraps a halt condition with the step index and parameter value at
// which the run stopped. The branch traced up to that point is still returned
// by the driver.
type Error struct {
	Step    int
	Lmbda   float64
	Wrapped error
}

func (e *Error) Error() string {
	return fmt.Sprintf("step %d (lambda=%g): %v", e.Step, e.Lmbda, e.Wrapped)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}
