package continuation

import "math"

// Default step-size policy values. Tuning these is the primary way to adapt
// convergence behavior to a problem, so they are all named fields on
// StepController rather than literals in the drivers.
const (
	DefaultGrowthFactor  = 2.0
	DefaultShrinkFactor  = 0.5
	DefaultLowWatermark  = 2
	DefaultHighWatermark = 4
	DefaultMinStepSize   = 1e-10
)

// StepController is the pure step-length adaptation policy shared by the
// drivers: grow after cheap corrections, shrink after expensive or failed
// ones, leave alone otherwise. It holds no state beyond its configuration.
type StepController struct {
	// GrowthFactor multiplies the step length after a correction that took
	// at most LowWatermark iterations.
	GrowthFactor float64

	// ShrinkFactor multiplies the step length after a corrector failure or a
	// correction that took more than HighWatermark iterations.
	ShrinkFactor float64

	// LowWatermark is the iteration count at or below which a correction
	// counts as cheap.
	LowWatermark int

	// HighWatermark is the iteration count above which a converged
	// correction still triggers a shrink.
	HighWatermark int

	// MinStepSize is the underflow threshold: shrinking below it is fatal.
	MinStepSize float64

	// MaxStepSize caps growth so that a run of cheap corrections cannot
	// compound the step without bound. Zero or negative means unbounded.
	MaxStepSize float64
}

// DefaultStepController returns the documented default policy.
func DefaultStepController() StepController {
	return StepController{
		GrowthFactor:  DefaultGrowthFactor,
		ShrinkFactor:  DefaultShrinkFactor,
		LowWatermark:  DefaultLowWatermark,
		HighWatermark: DefaultHighWatermark,
		MinStepSize:   DefaultMinStepSize,
		MaxStepSize:   math.Inf(1),
	}
}

func (c StepController) validate() error {
	if c.GrowthFactor <= 1 || c.ShrinkFactor <= 0 || c.ShrinkFactor >= 1 {
		return ErrBadOptions
	}
	if c.MinStepSize <= 0 {
		return ErrBadOptions
	}
	return nil
}

func (c StepController) maxStep() float64 {
	if c.MaxStepSize <= 0 {
		return math.Inf(1)
	}
	return c.MaxStepSize
}

// AfterSuccess returns the step length to use after a converged correction
// that took iters Newton iterations.
func (c StepController) AfterSuccess(ds float64, iters int) float64 {
	switch {
	case iters <= c.LowWatermark:
		return math.Min(ds*c.GrowthFactor, c.maxStep())
	case iters > c.HighWatermark:
		return ds * c.ShrinkFactor
	default:
		return ds
	}
}

// AfterFailure returns the step length to retry with after a corrector
// failure. ok is false when the shrunk step falls below MinStepSize.
func (c StepController) AfterFailure(ds float64) (next float64, ok bool) {
	next = ds * c.ShrinkFactor
	return next, next >= c.MinStepSize
}
