package geometry

import (
	"math"

	"github.com/cardpress/cardpress/pkg/models"
)

// ClampAxis keeps an element's center inside [0, extent] on one axis.
// The valid position range is [-size/2, extent-size/2], which lets a
// large element hang partly off the canvas as long as its center stays
// in bounds. Non-finite candidates snap to the nearest bound.
func ClampAxis(pos, size, extent float64) float64 {
	lo := -size / 2
	hi := extent - size/2
	if hi < lo {
		hi = lo
	}
	if math.IsNaN(pos) {
		return lo
	}
	if pos < lo {
		return lo
	}
	if pos > hi {
		return hi
	}
	return pos
}

// ClampCanvasPoint clamps a candidate canvas-space position for an
// element of the given size against the full content footprint.
func ClampCanvasPoint(ctx LayoutContext, x, y, w, h float64) (float64, float64) {
	return ClampAxis(x, w, ctx.ContentWidth()), ClampAxis(y, h, ctx.ContentHeight())
}

// ReclampRegion projects a stored region into canvas space under the
// given context, clamps it, and re-derives side and local position.
// Used whenever the viewport, split orientation or footprint changes:
// a region valid under one orientation can be out of bounds under
// another.
func ReclampRegion(ctx LayoutContext, r models.Region) models.Region {
	side := r.Side
	if !ctx.DoubleSided {
		side = models.SideFront
	}
	cx, cy := ctx.ToCanvas(r.X, r.Y, side)
	cx, cy = ClampCanvasPoint(ctx, cx, cy, r.Width, r.Height)
	newSide, lx, ly := ctx.FromCanvas(cx, cy, r.Width, r.Height)
	r.Side = newSide
	r.X = lx
	r.Y = ly
	return r
}

// ReclampTemplate applies ReclampRegion to every region of a template.
func ReclampTemplate(ctx LayoutContext, t models.CardTemplate) models.CardTemplate {
	t.Image.Region = ReclampRegion(ctx, t.Image.Region)
	for i := range t.TextElements {
		t.TextElements[i].Region = ReclampRegion(ctx, t.TextElements[i].Region)
	}
	return t
}
