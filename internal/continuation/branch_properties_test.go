package continuation_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/adtzlr/pacopy/internal/continuation"
	"github.com/adtzlr/pacopy/internal/problems"
)

// The specs below drive the vector-valued built-in problems through the
// public driver surface, complementing the scalar unit tests.

var _ = Describe("EulerNewton on built-in problems", func() {
	var opts continuation.EulerNewtonOptions[[]float64]

	BeforeEach(func() {
		opts = continuation.DefaultEulerNewtonOptions[[]float64]()
		opts.StepSize = 0.1
		opts.NewtonTol = 1e-9
		opts.MaxNewtonSteps = 8
		opts.Steps.HighWatermark = 6
		opts.Steps.MaxStepSize = 0.25
	})

	It("turns around the fold of lambda = sin(u)", func() {
		p := problems.NewSine()
		u0, lmbda0 := p.Initial()
		opts.MaxSteps = 50

		branch, err := continuation.EulerNewton[[]float64](p, u0, lmbda0, nil, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(branch.Len()).To(Equal(51))

		lmbdas := branch.Lmbdas()
		peak, peakIdx := lmbdas[0], 0
		for i, l := range lmbdas {
			if l > peak {
				peak, peakIdx = l, i
			}
		}
		Expect(peak).To(BeNumerically("~", 1.0, 0.02))
		Expect(peakIdx).To(BeNumerically(">", 0))
		Expect(peakIdx).To(BeNumerically("<", branch.Len()-1))

		for _, p2 := range branch.Points {
			Expect(math.Sin(p2.U[0]) - p2.Lmbda).To(BeNumerically("~", 0, 1e-8))
		}
	})

	It("keeps every accepted state within the corrector tolerance", func() {
		p := problems.NewBratu(31)
		u0, lmbda0 := p.Initial()
		opts.MaxSteps = 40

		branch, err := continuation.EulerNewton[[]float64](p, u0, lmbda0, nil, opts)
		Expect(err).NotTo(HaveOccurred())

		for _, pt := range branch.Points {
			Expect(p.Norm2R(p.F(pt.U, pt.Lmbda))).To(BeNumerically("<", opts.NewtonTol*opts.NewtonTol))
		}
	})

	It("reports tangent normalization through the observer hook", func() {
		p := problems.NewCircle()
		u0, lmbda0 := p.Initial()
		opts.MaxSteps = 60
		opts.Steps.MaxStepSize = 0.1

		var norms []float64
		var dots []float64
		var prev continuation.Tangent[[]float64]
		havePrev := false
		opts.Observers = []continuation.Observer[[]float64]{obsFunc(
			func(step int, lmbda float64, u []float64, tan continuation.Tangent[[]float64], ds float64, iters int) {
				norms = append(norms, p.Inner(tan.Du, tan.Du)+tan.Dlmbda*tan.Dlmbda)
				if havePrev {
					dots = append(dots, p.Inner(tan.Du, prev.Du)+tan.Dlmbda*prev.Dlmbda)
				}
				prev, havePrev = tan, true
			})}

		_, err := continuation.EulerNewton[[]float64](p, u0, lmbda0, nil, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(norms).NotTo(BeEmpty())

		for _, n := range norms {
			Expect(n).To(BeNumerically("~", 1.0, 1e-8))
		}
		for _, d := range dots {
			Expect(d).To(BeNumerically(">", 0))
		}
	})

	It("returns an empty branch for zero steps", func() {
		p := problems.NewSine()
		u0, lmbda0 := p.Initial()
		opts.MaxSteps = 0

		branch, err := continuation.EulerNewton[[]float64](p, u0, lmbda0, nil, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(branch.Len()).To(BeZero())
	})
})

var _ = Describe("Natural on built-in problems", func() {
	It("stalls at the sine fold where EulerNewton keeps going", func() {
		p := problems.NewSine()
		u0, lmbda0 := p.Initial()

		opts := continuation.DefaultNaturalOptions[[]float64]()
		opts.MaxSteps = 30
		opts.StepSize = 0.1
		opts.NewtonTol = 1e-9
		opts.MaxNewtonSteps = 8

		branch, err := continuation.Natural[[]float64](p, u0, lmbda0, nil, opts)
		Expect(err).To(MatchError(continuation.ErrNoConvergence))

		last, ok := branch.Last()
		Expect(ok).To(BeTrue())
		Expect(last.Lmbda).To(BeNumerically("<=", 1.0))
	})
})

// obsFunc adapts a function to the Observer interface.
type obsFunc func(step int, lmbda float64, u []float64, tan continuation.Tangent[[]float64], ds float64, iters int)

func (f obsFunc) OnAccept(step int, lmbda float64, u []float64, tan continuation.Tangent[[]float64], ds float64, iters int) {
	f(step, lmbda, u, tan, ds, iters)
}
