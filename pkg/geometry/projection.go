// Package geometry holds the template coordinate model shared by the
// interactive editor and the document exporter: side projection,
// responsive scaling and bounds clamping. Everything here is pure and
// cheap enough to call on every pointer-move event.
package geometry

import "github.com/cardpress/cardpress/pkg/models"

// LayoutContext describes how the two card faces are arranged on the
// editing canvas. Stacking orientation is a view concern only; stored
// region geometry is always template-local.
type LayoutContext struct {
	SideWidth       float64
	SideHeight      float64
	DoubleSided     bool
	HorizontalSplit bool
}

// ContentWidth returns the canvas-space width of the full content
// footprint (both faces when split horizontally).
func (ctx LayoutContext) ContentWidth() float64 {
	if ctx.DoubleSided && ctx.HorizontalSplit {
		return ctx.SideWidth * 2
	}
	return ctx.SideWidth
}

// ContentHeight returns the canvas-space height of the full content
// footprint (both faces when stacked vertically).
func (ctx LayoutContext) ContentHeight() float64 {
	if ctx.DoubleSided && !ctx.HorizontalSplit {
		return ctx.SideHeight * 2
	}
	return ctx.SideHeight
}

// sideOffset is the canvas-space displacement of side 2's origin.
func (ctx LayoutContext) sideOffset() (dx, dy float64) {
	if !ctx.DoubleSided {
		return 0, 0
	}
	if ctx.HorizontalSplit {
		return ctx.SideWidth, 0
	}
	return 0, ctx.SideHeight
}

// ToCanvas maps a template-local position on the given side into
// canvas space. The offset is zero for side 1 and always zero when
// single-sided, regardless of the stored side tag.
func (ctx LayoutContext) ToCanvas(localX, localY float64, side int) (canvasX, canvasY float64) {
	if side != models.SideBack {
		return localX, localY
	}
	dx, dy := ctx.sideOffset()
	return localX + dx, localY + dy
}

// FromCanvas inverts ToCanvas for a dragged element of the given size.
// The side is decided by the element's midpoint against the stacking
// boundary, which keeps an element from flickering between sides while
// its top edge straddles the boundary. A midpoint exactly on the
// boundary resolves to side 2.
func (ctx LayoutContext) FromCanvas(canvasX, canvasY, width, height float64) (side int, localX, localY float64) {
	if !ctx.DoubleSided {
		return models.SideFront, canvasX, canvasY
	}
	if ctx.HorizontalSplit {
		if canvasX+width/2 >= ctx.SideWidth {
			return models.SideBack, canvasX - ctx.SideWidth, canvasY
		}
		return models.SideFront, canvasX, canvasY
	}
	if canvasY+height/2 >= ctx.SideHeight {
		return models.SideBack, canvasX, canvasY - ctx.SideHeight
	}
	return models.SideFront, canvasX, canvasY
}
