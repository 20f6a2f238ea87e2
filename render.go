package main

import (
	"image"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/seekchart/chart"
)

// gioRenderer draws chart primitives into a frame's ops.
type gioRenderer struct {
	gtx C
	th  *material.Theme
}

var _ chart.Renderer = gioRenderer{}

func pt(p chart.Point) f32.Point {
	return f32.Pt(float32(p.X), float32(p.Y))
}

func strokeWidth(s chart.Style) float32 {
	if s.StrokeWidth <= 0 {
		return 1
	}
	return float32(s.StrokeWidth)
}

func (r gioRenderer) DrawLine(a, b chart.Point, style chart.Style) {
	var p clip.Path
	p.Begin(r.gtx.Ops)
	p.MoveTo(pt(a))
	p.LineTo(pt(b))
	paint.FillShape(r.gtx.Ops, style.Color, clip.Stroke{
		Path:  p.End(),
		Width: strokeWidth(style),
	}.Op())
}

func (r gioRenderer) DrawPath(points []chart.Point, style chart.Style, closed bool) {
	if len(points) < 2 {
		return
	}
	var p clip.Path
	p.Begin(r.gtx.Ops)
	p.MoveTo(pt(points[0]))
	for _, point := range points[1:] {
		p.LineTo(pt(point))
	}
	if closed || style.Fill {
		p.Close()
	}
	if style.Fill {
		paint.FillShape(r.gtx.Ops, style.Color, clip.Outline{Path: p.End()}.Op())
		return
	}
	paint.FillShape(r.gtx.Ops, style.Color, clip.Stroke{
		Path:  p.End(),
		Width: strokeWidth(style),
	}.Op())
}

func (r gioRenderer) DrawCircle(center chart.Point, radius float64, style chart.Style) {
	bounds := clip.Ellipse{
		Min: image.Pt(int(math.Round(center.X-radius)), int(math.Round(center.Y-radius))),
		Max: image.Pt(int(math.Round(center.X+radius)), int(math.Round(center.Y+radius))),
	}
	if style.Fill {
		paint.FillShape(r.gtx.Ops, style.Color, bounds.Op(r.gtx.Ops))
		return
	}
	paint.FillShape(r.gtx.Ops, style.Color, clip.Stroke{
		Path:  bounds.Path(r.gtx.Ops),
		Width: strokeWidth(style),
	}.Op())
}

func (r gioRenderer) label(text string, style chart.Style) material.LabelStyle {
	l := material.Label(r.th, r.gtx.Metric.PxToSp(int(math.Round(style.TextSize))), text)
	l.Color = style.Color
	l.MaxLines = 1
	return l
}

func (r gioRenderer) DrawText(text string, anchor chart.Point, style chart.Style) {
	gtx := r.gtx
	gtx.Constraints.Min = image.Point{}
	_, call := rec(gtx, r.label(text, style).Layout)
	defer op.Offset(image.Pt(int(anchor.X), int(anchor.Y))).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

func (r gioRenderer) MeasureText(text string, style chart.Style) chart.TextMetrics {
	gtx := r.gtx
	gtx.Constraints.Min = image.Point{}
	dims, _ := rec(gtx, r.label(text, style).Layout)
	return chart.TextMetrics{
		Width:  float64(dims.Size.X),
		Height: float64(dims.Size.Y),
	}
}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}
