package trajectory_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lorenz/internal/trajectory"
)

var _ = Describe("Grids", func() {
	Describe("Arange", func() {
		DescribeTable("half-open grids",
			func(stop, step float64, n int) {
				g := trajectory.Arange(0, stop, step)
				Expect(g).To(HaveLen(n))
				if n > 0 {
					Expect(g[0]).To(Equal(0.0))
					Expect(g[len(g)-1]).To(BeNumerically("<", stop))
				}
			},
			Entry("exact multiple", 1.0, 0.25, 4),
			Entry("inexact multiple", 1.0, 0.3, 4),
			Entry("decimal step", 0.3, 0.1, 3),
			Entry("animation grid", 10.0, 0.001, int(math.Ceil(10.0/0.001))),
			Entry("step larger than span", 0.5, 1.0, 1),
			Entry("zero step", 1.0, 0.0, 0),
			Entry("negative step", 1.0, -0.1, 0),
			Entry("empty span", 0.0, 0.1, 0),
			Entry("more points than the limit", 1e13, 0.001, 0),
		)

		It("rejects one point past the limit", func() {
			Expect(trajectory.Arange(0, trajectory.MaxGridPoints+1, 1)).To(BeNil())
		})

		It("never includes the stop value", func() {
			for _, step := range []float64{0.001, 0.005, 0.01, 0.1, 0.7} {
				g := trajectory.Arange(0, 10, step)
				Expect(g[len(g)-1]).To(BeNumerically("<", 10.0))
				n := int(math.Ceil(10 / step))
				Expect(len(g)).To(Or(Equal(n), Equal(n-1)))
			}
		})
	})

	Describe("Linspace", func() {
		It("includes both ends", func() {
			g := trajectory.Linspace(0, 50, 10000)
			Expect(g).To(HaveLen(10000))
			Expect(g[0]).To(Equal(0.0))
			Expect(g[9999]).To(Equal(50.0))
			Expect(g[1]).To(BeNumerically("~", 50.0/9999, 1e-12))
		})

		It("handles degenerate counts", func() {
			Expect(trajectory.Linspace(0, 1, 0)).To(BeEmpty())
			Expect(trajectory.Linspace(3, 5, 1)).To(Equal([]float64{3}))
			Expect(trajectory.Linspace(0, 1, trajectory.MaxGridPoints+1)).To(BeNil())
		})
	})
})
