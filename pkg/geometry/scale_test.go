package geometry_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cardpress/cardpress/pkg/geometry"
)

var _ = Describe("Responsive scale calculator", func() {
	It("picks the limiting axis", func() {
		res := geometry.FitScale(1400, 500, 700, 500)
		Expect(res.Scale).To(Equal(1.0))
		Expect(res.WidthScale).To(Equal(2.0))
		Expect(res.HeightScale).To(Equal(1.0))
	})

	It("reports the scaled stage footprint", func() {
		res := geometry.FitScale(350, 1000, 700, 500)
		Expect(res.Scale).To(Equal(0.5))
		Expect(res.StageWidth).To(Equal(350.0))
		Expect(res.StageHeight).To(Equal(250.0))
	})

	DescribeTable("degenerate containers floor at the minimum scale",
		func(containerW, containerH float64) {
			res := geometry.FitScale(containerW, containerH, 700, 500)
			Expect(res.Scale).To(Equal(geometry.MinScale))
			Expect(math.IsNaN(res.StageWidth)).To(BeFalse())
			Expect(math.IsNaN(res.StageHeight)).To(BeFalse())
		},
		Entry("zero size during initial mount", 0.0, 0.0),
		Entry("negative measurement", -10.0, 200.0),
		Entry("NaN measurement", math.NaN(), 200.0),
		Entry("infinite measurement", math.Inf(1), 200.0),
	)

	It("floors when the content footprint is zero", func() {
		res := geometry.FitScale(800, 600, 0, 0)
		Expect(res.Scale).To(Equal(geometry.MinScale))
	})

	Context("stage layout orientation", func() {
		It("splits horizontally above the stack breakpoint", func() {
			ctx, _ := geometry.StageLayout(geometry.StackBreakpoint, 800, 700, 500, true)
			Expect(ctx.HorizontalSplit).To(BeTrue())
			Expect(ctx.ContentWidth()).To(Equal(1400.0))
		})

		It("stacks vertically below the stack breakpoint", func() {
			ctx, _ := geometry.StageLayout(geometry.StackBreakpoint-1, 800, 700, 500, true)
			Expect(ctx.HorizontalSplit).To(BeFalse())
			Expect(ctx.ContentHeight()).To(Equal(1000.0))
		})

		It("scales against the doubled footprint", func() {
			_, res := geometry.StageLayout(1400, 500, 700, 500, true)
			Expect(res.Scale).To(Equal(1.0))
		})
	})
})
