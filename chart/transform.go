package chart

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Point is a position in pixel space. Rows grow downward.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Viewport describes the pixel area available to the chart. Width is the
// content width spanned by the thumb track; Height is the full height. The
// reserved heights carve a band for the thumb track and one for callouts
// above the plotted area.
type Viewport struct {
	Width, Height                                        float64
	PaddingLeft, PaddingTop, PaddingRight, PaddingBottom float64
	ReservedBarHeight, ReservedLabelHeight               float64
}

// Empty reports whether the viewport has no area.
func (v Viewport) Empty() bool { return v.Width <= 0 || v.Height <= 0 }

// Track is the horizontal extent of the thumb track and its centre line.
type Track struct {
	Left, Right, Y float64
}

func (t Track) Width() float64 { return t.Right - t.Left }

// Transform is an affine mapping between data space and pixel space.
type Transform struct {
	corners        CornerPoints
	bounds         AxisBounds
	viewport       Viewport
	scaleX, scaleY float64
	padX, padY     float64
	drawWidth      float64
	drawHeight     float64
}

// NewTransform builds the data-to-pixel mapping for the given bounds and
// viewport. It returns a *DegenerateViewportError when either scale is
// not a positive finite number.
func NewTransform(cp CornerPoints, bounds AxisBounds, vp Viewport) (Transform, error) {
	t := Transform{
		corners:    cp,
		bounds:     bounds,
		viewport:   vp,
		drawWidth:  vp.Width - vp.ReservedBarHeight,
		drawHeight: vp.Height - vp.PaddingTop - vp.PaddingBottom - vp.ReservedBarHeight - vp.ReservedLabelHeight,
		padX:       vp.PaddingLeft + vp.ReservedBarHeight/2,
		padY:       vp.PaddingTop + vp.ReservedBarHeight + vp.ReservedLabelHeight,
	}
	t.scaleX = t.drawWidth / cp.XRange()
	t.scaleY = t.drawHeight / (bounds.Upper - bounds.Lower)
	if !usableScale(t.scaleX) || !usableScale(t.scaleY) {
		return Transform{}, &DegenerateViewportError{ScaleX: t.scaleX, ScaleY: t.scaleY}
	}
	return t, nil
}

func usableScale(s float64) bool {
	return s > 0 && !math.IsInf(s, 0) && !math.IsNaN(s)
}

// ToPixel maps a sample into pixel space.
func (t Transform) ToPixel(s Sample) Point {
	return Point{
		X: (s.X-t.corners.Top.X)*t.scaleX + t.padX,
		Y: (t.bounds.Upper-s.Y)*t.scaleY + t.padY,
	}
}

// ToData is the inverse of ToPixel.
func (t Transform) ToData(p Point) Sample {
	return Sample{
		X: (p.X-t.padX)/t.scaleX + t.corners.Top.X,
		Y: t.bounds.Upper - (p.Y-t.padY)/t.scaleY,
	}
}

func (t Transform) Corners() CornerPoints { return t.corners }
func (t Transform) Bounds() AxisBounds    { return t.bounds }
func (t Transform) Viewport() Viewport    { return t.viewport }

// Track returns the thumb track, which spans exactly the plotted x-range.
func (t Transform) Track() Track {
	return Track{
		Left:  t.padX,
		Right: t.padX + t.drawWidth,
		Y:     t.viewport.PaddingTop + t.viewport.ReservedBarHeight/2,
	}
}

// PlotRect returns the top-left and bottom-right corners of the plotted
// area.
func (t Transform) PlotRect() (min, max Point) {
	return Point{X: t.padX, Y: t.padY}, Point{X: t.padX + t.drawWidth, Y: t.padY + t.drawHeight}
}

// ProgressToX converts a progress value into a data-space X.
func (t Transform) ProgressToX(progress, progressRange int) float64 {
	return progressToX(t.corners, progress, progressRange)
}

// XToProgress converts a data-space X into the nearest progress value,
// clamped to [0, progressRange].
func (t Transform) XToProgress(x float64, progressRange int) int {
	return xToProgress(t.corners, x, progressRange)
}

// ThumbCenter returns the pixel centre of the thumb at the given
// progress.
func (t Transform) ThumbCenter(progress float64, progressRange int) Point {
	tr := t.Track()
	frac := 0.0
	if progressRange > 0 {
		frac = clamp(progress/float64(progressRange), 0, 1)
	}
	return Point{X: tr.Left + frac*tr.Width(), Y: tr.Y}
}

func progressToX(cp CornerPoints, progress, progressRange int) float64 {
	if progressRange <= 0 {
		return cp.Top.X
	}
	return cp.Top.X + cp.XRange()*float64(progress)/float64(progressRange)
}

func xToProgress(cp CornerPoints, x float64, progressRange int) int {
	rng := cp.XRange()
	if rng <= 0 || progressRange <= 0 {
		return 0
	}
	p := int(math.Round((x - cp.Top.X) / rng * float64(progressRange)))
	return clamp(p, 0, progressRange)
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	return max(min(v, hi), lo)
}
