package trajectory_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/physics"
	"github.com/san-kum/lorenz/internal/trajectory"
)

func distance(a, b dynamo.State) float64 { return a.Sub(b).Norm() }

var _ = Describe("Sampler", func() {
	var (
		ctx     context.Context
		sampler *trajectory.Sampler
	)

	BeforeEach(func() {
		ctx = context.Background()
		sampler = trajectory.NewSampler(physics.NewLorenz(), dynamo.DefaultConfig())
	})

	It("is deterministic", func() {
		a, err := sampler.Sample(ctx, dynamo.State{0.5, 1, 1.05}, 5)
		Expect(err).NotTo(HaveOccurred())
		b, err := sampler.Sample(ctx, dynamo.State{0.5, 1, 1.05}, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Times).To(Equal(b.Times))
		Expect(a.States).To(Equal(b.States))
	})

	It("returns one state per point of the half-open grid", func() {
		tr, err := sampler.Sample(ctx, dynamo.State{0.5, 1, 1.05}, 10)
		Expect(err).NotTo(HaveOccurred())

		grid := trajectory.Arange(0, 10, 0.001)
		Expect(tr.Len()).To(Equal(len(grid)))
		Expect(tr.Times).To(Equal(grid))
		Expect(tr.Times[tr.Len()-1]).To(BeNumerically("<", 10.0))
		n := int(math.Ceil(10 / 0.001))
		Expect(tr.Len()).To(Or(Equal(n), Equal(n-1)))
		Expect(tr.First()).To(Equal(dynamo.State{0.5, 1, 1.05}))
	})

	It("keeps accuracy when the display grid is coarse", func() {
		fine, err := sampler.Sample(ctx, dynamo.State{1, 1, 1}, 10)
		Expect(err).NotTo(HaveOccurred())

		cfg := dynamo.DefaultConfig()
		cfg.Dt = 0.5
		coarse, err := trajectory.NewSampler(physics.NewLorenz(), cfg).Sample(ctx, dynamo.State{1, 1, 1}, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(coarse.Len()).To(Equal(20))

		for j, s := range coarse.States {
			f := fine.States[j*500]
			Expect(distance(s, f)).To(BeNumerically("<", 1e-6), "t=%v", coarse.Times[j])
		}
	})

	It("separates trajectories started 0.001 apart", func() {
		eps := 0.001
		a, err := sampler.Sample(ctx, dynamo.State{0.5, 1, 1.05}, 10)
		Expect(err).NotTo(HaveOccurred())
		b, err := sampler.Sample(ctx, dynamo.State{0.5, 1, 1.05 + eps}, 10)
		Expect(err).NotTo(HaveOccurred())

		Expect(distance(a.First(), b.First())).To(BeNumerically("~", eps, 1e-12))
		Expect(distance(a.Last(), b.Last())).To(BeNumerically(">", 5*eps))
	})

	It("reproduces the static figure samples", func() {
		grid := trajectory.Linspace(0, 50, 10000)
		tr, err := sampler.SampleGrid(ctx, dynamo.State{1, 1, 1}, 50, grid)
		Expect(err).NotTo(HaveOccurred())

		Expect(tr.Len()).To(Equal(10000))
		Expect(tr.First()).To(Equal(dynamo.State{1, 1, 1}))
		for i := 0; i < 3; i++ {
			Expect(tr.Axis(i)).To(HaveLen(10000))
		}
		Expect(tr.Times[9999]).To(Equal(50.0))
		for _, s := range tr.States {
			Expect(s.IsValid()).To(BeTrue())
		}
	})

	DescribeTable("signals no solution",
		func(duration float64) {
			tr, err := sampler.Sample(ctx, dynamo.State{1, 1, 1}, duration)
			Expect(err).To(MatchError(dynamo.ErrNoSolution))
			Expect(tr).To(BeNil())
		},
		Entry("duration below dt", 0.0005),
		Entry("duration equal to dt", 0.001),
		Entry("zero duration", 0.0),
		Entry("negative duration", -1.0),
		Entry("NaN duration", math.NaN()),
		Entry("duration beyond the grid limit", 1e13),
		Entry("infinite duration", math.Inf(1)),
	)

	It("signals no solution for an invalid config", func() {
		cfg := dynamo.DefaultConfig()
		cfg.Dt = 0
		_, err := trajectory.NewSampler(physics.NewLorenz(), cfg).Sample(ctx, dynamo.State{1, 1, 1}, 10)
		Expect(err).To(MatchError(dynamo.ErrNoSolution))
	})

	It("signals no solution for short explicit grids", func() {
		_, err := sampler.SampleGrid(ctx, dynamo.State{1, 1, 1}, 1, []float64{0})
		Expect(err).To(MatchError(dynamo.ErrNoSolution))
		_, err = sampler.SampleGrid(ctx, dynamo.State{1, 1, 1}, 1, nil)
		Expect(err).To(MatchError(dynamo.ErrNoSolution))
	})

	It("wraps solver failures", func() {
		_, err := sampler.Sample(ctx, dynamo.State{math.NaN(), 1, 1}, 1)
		Expect(err).To(MatchError(dynamo.ErrNoSolution))
		Expect(err).To(MatchError(dynamo.ErrInvalidState))

		_, err = sampler.Sample(ctx, dynamo.State{1, 1}, 1)
		Expect(err).To(MatchError(dynamo.ErrDimensionMismatch))
	})

	It("honors cancellation", func() {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := sampler.Sample(canceled, dynamo.State{1, 1, 1}, 10)
		Expect(err).To(MatchError(dynamo.ErrNoSolution))
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Trajectory", func() {
	var tr *trajectory.Trajectory

	BeforeEach(func() {
		tr = &trajectory.Trajectory{Times: make([]float64, 11), States: make([]dynamo.State, 11)}
		for i := range tr.States {
			tr.Times[i] = float64(i)
			tr.States[i] = dynamo.State{float64(i), float64(-i), float64(2 * i)}
		}
	})

	It("maps the normalized parameter by rounding", func() {
		Expect(tr.At(0)).To(Equal(tr.First()))
		Expect(tr.At(1)).To(Equal(tr.Last()))
		Expect(tr.Index(0.5)).To(Equal(5))
		Expect(tr.Index(0.04)).To(Equal(0))
		Expect(tr.Index(0.06)).To(Equal(1))
		Expect(tr.Index(0.96)).To(Equal(10))
	})

	It("clamps outside the unit interval", func() {
		Expect(tr.Index(-0.3)).To(Equal(0))
		Expect(tr.Index(1.7)).To(Equal(10))
		Expect(tr.Index(math.NaN())).To(Equal(0))
	})

	It("builds polylines over [0, 1]", func() {
		pts := tr.Polyline(0.01)
		Expect(pts).To(HaveLen(101))
		Expect(pts[0]).To(Equal(tr.First()))
		Expect(pts[100]).To(Equal(tr.Last()))
		Expect(tr.Polyline(0)).To(BeNil())
	})

	It("extracts coordinate series", func() {
		Expect(tr.Axis(1)).To(Equal([]float64{0, -1, -2, -3, -4, -5, -6, -7, -8, -9, -10}))
	})
})

var _ = Describe("Ensemble", func() {
	It("samples members independently and in order", func() {
		sampler := trajectory.NewSampler(physics.NewLorenz(), dynamo.DefaultConfig())
		inits := []dynamo.State{
			{0.5, 1, 1.05},
			{math.NaN(), 1, 1},
			{0.5, 1, 1.051},
		}

		members := trajectory.NewEnsemble(sampler, 2).Sample(context.Background(), inits, 2)
		Expect(members).To(HaveLen(3))
		for i, m := range members {
			Expect(m.Index).To(Equal(i))
		}
		Expect(members[0].OK()).To(BeTrue())
		Expect(members[1].Err).To(MatchError(dynamo.ErrNoSolution))
		Expect(members[1].Trajectory).To(BeNil())
		Expect(members[2].OK()).To(BeTrue())
		Expect(members[2].Trajectory.First()).To(Equal(inits[2]))

		ok := trajectory.Successful(members)
		Expect(ok).To(HaveLen(2))
		Expect(ok[1].Index).To(Equal(2))
	})

	It("matches sequential sampling", func() {
		sampler := trajectory.NewSampler(physics.NewLorenz(), dynamo.DefaultConfig())
		inits := []dynamo.State{{1, 1, 1}, {2, 1, 1}, {3, 1, 1}}

		par := trajectory.NewEnsemble(sampler, 3).Sample(context.Background(), inits, 1)
		seq := trajectory.NewEnsemble(sampler, 0).Sample(context.Background(), inits, 1)
		for i := range inits {
			Expect(par[i].Trajectory.States).To(Equal(seq[i].Trajectory.States))
		}
	})
})
