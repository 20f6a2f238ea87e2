package main

import (
	"image"
	"image/color"
	"testing"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/seekchart/chart"
)

func newTestRenderer() gioRenderer {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Constraints: layout.Exact(image.Pt(2000, 1000)),
	}
	return gioRenderer{gtx: gtx, th: th}
}

func TestGioRendererMeasureText(t *testing.T) {
	r := newTestRenderer()
	style := chart.Style{Color: color.NRGBA{A: 0xff}, TextSize: 30}
	short := r.MeasureText("1", style)
	long := r.MeasureText("1000", style)
	if short.Width <= 0 || short.Height <= 0 {
		t.Fatalf("expected a positive size, got %+v", short)
	}
	if long.Width <= short.Width {
		t.Errorf("expected %q to be wider than %q: %v <= %v", "1000", "1", long.Width, short.Width)
	}
	if long.Width >= 2000 {
		t.Errorf("expected text to shrink to fit, got width %v", long.Width)
	}
}

func TestGioRendererDrawsWidget(t *testing.T) {
	r := newTestRenderer()
	cfg := chart.DefaultConfig()
	w := chart.NewWidget(cfg, nil)
	if err := w.SetData([]chart.Sample{{X: 0, Y: 10}, {X: 5, Y: 40}, {X: 10, Y: 20}}); err != nil {
		t.Fatalf("failed setting data: %v", err)
	}
	if err := w.Resize(cfg.Viewport(2000, 1000, 8)); err != nil {
		t.Fatalf("failed resizing: %v", err)
	}
	if err := w.Draw(r); err != nil {
		t.Fatalf("failed drawing: %v", err)
	}
}
