package geometry_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cardpress/cardpress/pkg/geometry"
	"github.com/cardpress/cardpress/pkg/models"
)

var _ = Describe("Side projection", func() {
	var vertical, horizontal, single geometry.LayoutContext

	BeforeEach(func() {
		vertical = geometry.LayoutContext{SideWidth: 700, SideHeight: 500, DoubleSided: true}
		horizontal = geometry.LayoutContext{SideWidth: 700, SideHeight: 500, DoubleSided: true, HorizontalSplit: true}
		single = geometry.LayoutContext{SideWidth: 700, SideHeight: 500}
	})

	Context("forward projection", func() {
		It("applies no offset for side 1", func() {
			x, y := vertical.ToCanvas(120, 80, models.SideFront)
			Expect(x).To(Equal(120.0))
			Expect(y).To(Equal(80.0))
		})

		It("offsets side 2 by the side height when stacked vertically", func() {
			x, y := vertical.ToCanvas(120, 80, models.SideBack)
			Expect(x).To(Equal(120.0))
			Expect(y).To(Equal(580.0))
		})

		It("offsets side 2 by the side width when split horizontally", func() {
			x, y := horizontal.ToCanvas(120, 80, models.SideBack)
			Expect(x).To(Equal(820.0))
			Expect(y).To(Equal(80.0))
		})

		It("never offsets when single-sided, even for side 2 regions", func() {
			x, y := single.ToCanvas(120, 80, models.SideBack)
			Expect(x).To(Equal(120.0))
			Expect(y).To(Equal(80.0))
		})
	})

	Context("round trip", func() {
		DescribeTable("FromCanvas(ToCanvas(p)) restores side and local position",
			func(localX, localY float64, side int, horizontalSplit bool) {
				ctx := vertical
				if horizontalSplit {
					ctx = horizontal
				}
				w, h := 100.0, 60.0
				cx, cy := ctx.ToCanvas(localX, localY, side)
				gotSide, gotX, gotY := ctx.FromCanvas(cx, cy, w, h)
				Expect(gotSide).To(Equal(side))
				Expect(gotX).To(BeNumerically("~", localX, 1e-9))
				Expect(gotY).To(BeNumerically("~", localY, 1e-9))
			},
			Entry("side 1 interior, vertical", 50.0, 40.0, models.SideFront, false),
			Entry("side 2 interior, vertical", 50.0, 40.0, models.SideBack, false),
			Entry("side 1 origin, vertical", 0.0, 0.0, models.SideFront, false),
			Entry("side 2 bottom edge, vertical", 0.0, 440.0, models.SideBack, false),
			Entry("side 1 interior, horizontal", 50.0, 40.0, models.SideFront, true),
			Entry("side 2 interior, horizontal", 50.0, 40.0, models.SideBack, true),
		)
	})

	Context("side detection at the boundary", func() {
		It("uses the midpoint, not the top edge", func() {
			// top edge past the boundary but midpoint still on side 1
			h := 200.0
			side, _, localY := vertical.FromCanvas(0, 420, 100, h)
			Expect(side).To(Equal(models.SideFront))
			Expect(localY).To(Equal(420.0))
		})

		It("resolves a midpoint exactly on the boundary to side 2", func() {
			// midpoint = 450 + 50 = 500 = boundary
			side, _, localY := vertical.FromCanvas(0, 450, 100, 100)
			Expect(side).To(Equal(models.SideBack))
			Expect(localY).To(Equal(-50.0))
		})

		It("resolves a midpoint just under the boundary to side 1", func() {
			side, _, _ := vertical.FromCanvas(0, 449.999, 100, 100)
			Expect(side).To(Equal(models.SideFront))
		})

		It("mirrors the rule on the x axis under horizontal split", func() {
			side, localX, _ := horizontal.FromCanvas(650, 0, 100, 100)
			Expect(side).To(Equal(models.SideBack))
			Expect(localX).To(Equal(-50.0))
		})

		It("forces side 1 when single-sided regardless of position", func() {
			side, _, localY := single.FromCanvas(0, 900, 100, 100)
			Expect(side).To(Equal(models.SideFront))
			Expect(localY).To(Equal(900.0))
		})
	})

	Context("content footprint", func() {
		It("doubles height under vertical stacking", func() {
			Expect(vertical.ContentWidth()).To(Equal(700.0))
			Expect(vertical.ContentHeight()).To(Equal(1000.0))
		})

		It("doubles width under horizontal split", func() {
			Expect(horizontal.ContentWidth()).To(Equal(1400.0))
			Expect(horizontal.ContentHeight()).To(Equal(500.0))
		})

		It("matches one face when single-sided", func() {
			Expect(single.ContentWidth()).To(Equal(700.0))
			Expect(single.ContentHeight()).To(Equal(500.0))
		})
	})
})
