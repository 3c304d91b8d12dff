// Package metrics reduces a continuation run to summary scalars.
package metrics

// Metric observes accepted continuation steps and reduces them to a single
// value, reported after the run.
type Metric interface {
	Name() string
	Observe(lmbda, ds float64, newtonIters int)
	Value() float64
	Reset()
}

// FoldCount counts turning points: reversals of the sign of the lambda
// increment between consecutive accepted steps.
type FoldCount struct {
	prev     float64
	havePrev bool
	prevSign int
	folds    int
}

func NewFoldCount() *FoldCount { return &FoldCount{} }

func (f *FoldCount) Name() string { return "folds" }

func (f *FoldCount) Observe(lmbda, ds float64, newtonIters int) {
	if !f.havePrev {
		f.prev, f.havePrev = lmbda, true
		return
	}
	d := lmbda - f.prev
	f.prev = lmbda
	sign := 0
	if d > 0 {
		sign = 1
	} else if d < 0 {
		sign = -1
	}
	if sign == 0 {
		return
	}
	if f.prevSign != 0 && sign != f.prevSign {
		f.folds++
	}
	f.prevSign = sign
}

func (f *FoldCount) Value() float64 { return float64(f.folds) }

func (f *FoldCount) Reset() { *f = FoldCount{} }

// CorrectorCost reports the mean Newton iteration count per accepted step.
type CorrectorCost struct {
	total int
	steps int
}

func NewCorrectorCost() *CorrectorCost { return &CorrectorCost{} }

func (c *CorrectorCost) Name() string { return "corrector_cost" }

func (c *CorrectorCost) Observe(lmbda, ds float64, newtonIters int) {
	c.total += newtonIters
	c.steps++
}

func (c *CorrectorCost) Value() float64 {
	if c.steps == 0 {
		return 0
	}
	return float64(c.total) / float64(c.steps)
}

func (c *CorrectorCost) Reset() { *c = CorrectorCost{} }

// LmbdaMax tracks the largest parameter value reached.
type LmbdaMax struct {
	max  float64
	seen bool
}

func NewLmbdaMax() *LmbdaMax { return &LmbdaMax{} }

func (m *LmbdaMax) Name() string { return "lambda_max" }

func (m *LmbdaMax) Observe(lmbda, ds float64, newtonIters int) {
	if !m.seen || lmbda > m.max {
		m.max, m.seen = lmbda, true
	}
}

func (m *LmbdaMax) Value() float64 { return m.max }

func (m *LmbdaMax) Reset() { *m = LmbdaMax{} }

// LmbdaMin tracks the smallest parameter value reached.
type LmbdaMin struct {
	min  float64
	seen bool
}

func NewLmbdaMin() *LmbdaMin { return &LmbdaMin{} }

func (m *LmbdaMin) Name() string { return "lambda_min" }

func (m *LmbdaMin) Observe(lmbda, ds float64, newtonIters int) {
	if !m.seen || lmbda < m.min {
		m.min, m.seen = lmbda, true
	}
}

func (m *LmbdaMin) Value() float64 { return m.min }

func (m *LmbdaMin) Reset() { *m = LmbdaMin{} }

// Default returns the metric set reported after a trace.
func Default() []Metric {
	return []Metric{NewFoldCount(), NewCorrectorCost(), NewLmbdaMax(), NewLmbdaMin()}
}
