package metrics

import "github.com/adtzlr/pacopy/internal/continuation"

// Recorder feeds accepted steps from a driver into a set of metrics. It
// implements continuation.Observer for vector problems.
type Recorder struct {
	Metrics []Metric
}

func NewRecorder(ms ...Metric) *Recorder { return &Recorder{Metrics: ms} }

func (r *Recorder) OnAccept(step int, lmbda float64, u []float64, tan continuation.Tangent[[]float64], ds float64, newtonIters int) {
	for _, m := range r.Metrics {
		m.Observe(lmbda, ds, newtonIters)
	}
}

// Values collects the current metric values by name.
func (r *Recorder) Values() map[string]float64 {
	out := make(map[string]float64, len(r.Metrics))
	for _, m := range r.Metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Reset resets all metrics.
func (r *Recorder) Reset() {
	for _, m := range r.Metrics {
		m.Reset()
	}
}
