package geometry

import "math"

// MinScale floors the stage scale so a zero-sized container (common
// during initial mount, before layout settles) never produces a
// non-positive or NaN render.
const MinScale = 0.01

// Viewport breakpoints, in CSS pixels. Below StackBreakpoint the two
// faces stack vertically; below CompactBreakpoint the UI switches to
// compact labels.
const (
	StackBreakpoint   = 900.0
	CompactBreakpoint = 560.0
)

// ScaleResult carries the clamped stage scale plus the raw per-axis
// scales for diagnostics.
type ScaleResult struct {
	Scale       float64
	WidthScale  float64
	HeightScale float64
	StageWidth  float64
	StageHeight float64
}

// FitScale computes the uniform scale that fits the content footprint
// into the measured container, clamped to MinScale. Non-finite and
// non-positive inputs degrade to the floor rather than propagating.
func FitScale(containerW, containerH, contentW, contentH float64) ScaleResult {
	ws := safeRatio(containerW, contentW)
	hs := safeRatio(containerH, contentH)
	scale := math.Min(ws, hs)
	if !(scale > MinScale) {
		scale = MinScale
	}
	return ScaleResult{
		Scale:       scale,
		WidthScale:  ws,
		HeightScale: hs,
		StageWidth:  contentW * scale,
		StageHeight: contentH * scale,
	}
}

// StageLayout derives the full layout context plus stage scale for a
// measured container. Stacking orientation follows the container
// width: side-by-side above StackBreakpoint, stacked below.
func StageLayout(containerW, containerH, cardW, cardH float64, doubleSided bool) (LayoutContext, ScaleResult) {
	ctx := LayoutContext{
		SideWidth:       cardW,
		SideHeight:      cardH,
		DoubleSided:     doubleSided,
		HorizontalSplit: containerW >= StackBreakpoint,
	}
	return ctx, FitScale(containerW, containerH, ctx.ContentWidth(), ctx.ContentHeight())
}

func safeRatio(container, content float64) float64 {
	if !(content > 0) || math.IsInf(container, 0) || math.IsNaN(container) {
		return MinScale
	}
	r := container / content
	if !(r > 0) {
		return MinScale
	}
	return r
}
