package main

import (
	"errors"
	"log"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/op/clip"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/seekchart/chart"
)

// ChartView connects a chart.Widget to gio: it feeds pointer events in and
// draws the widget with a gioRenderer.
type ChartView struct {
	widget *chart.Widget
	// Padding around the plot.
	Padding unit.Dp
	// resizeErr holds the last viewport error so that it is only logged
	// once.
	resizeErr error
}

func NewChartView(cfg chart.Config, invalidate func()) *ChartView {
	return &ChartView{
		widget:  chart.NewWidget(cfg, invalidate),
		Padding: 8,
	}
}

func (c *ChartView) Widget() *chart.Widget {
	return c.widget
}

func toChartPoint(ev pointer.Event) chart.Point {
	return chart.Pt(float64(ev.Position.X), float64(ev.Position.Y))
}

func (c *ChartView) Update(gtx C) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: c,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case pointer.Press:
			if e.Buttons != 0 && !e.Buttons.Contain(pointer.ButtonPrimary) {
				continue
			}
			c.widget.PointerDown(toChartPoint(e))
		case pointer.Drag:
			c.widget.PointerMove(toChartPoint(e))
		case pointer.Release:
			c.widget.PointerUp(toChartPoint(e))
		case pointer.Cancel:
			c.widget.PointerCancel()
		}
	}
}

func (c *ChartView) Layout(gtx C, th *material.Theme) D {
	c.Update(gtx)
	size := gtx.Constraints.Max
	vp := c.widget.Config().Viewport(float64(size.X), float64(size.Y), float64(gtx.Dp(c.Padding)))
	if err := c.widget.Resize(vp); err != nil {
		if c.resizeErr == nil || c.resizeErr.Error() != err.Error() {
			log.Printf("chart: %v", err)
		}
		c.resizeErr = err
	} else {
		c.resizeErr = nil
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, c)
	if c.widget.DragState() == chart.DragDragging {
		pointer.CursorGrabbing.Add(gtx.Ops)
	}
	err := c.widget.Draw(gioRenderer{gtx: gtx, th: th})
	if err != nil && !errors.Is(err, chart.ErrNotReady) {
		log.Printf("chart: failed drawing: %v", err)
	}
	return D{Size: size}
}
