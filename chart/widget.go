package chart

import (
	"fmt"
)

// Widget composes the chart core: it owns the data, derives a RenderState
// from it and the viewport, routes pointer events to the drag controller
// and draws through a Renderer. It is not safe for concurrent use; one
// goroutine drives both input and drawing.
type Widget struct {
	cfg       Config
	calc      BoundsCalculator
	notifier  Notifier
	selection *Selection
	drag      *DragController

	data        *DataState
	viewport    Viewport
	hasViewport bool
	state       *RenderState
	// stateErr is why state could not be built for the current data and
	// viewport.
	stateErr error

	// invalidate asks the host for a frame. pending is set between the
	// request and the next Draw so bursts of changes ask only once.
	invalidate func()
	pending    bool
}

// NewWidget returns an empty widget. invalidate is called when the widget
// needs to be redrawn and may be nil.
func NewWidget(cfg Config, invalidate func()) *Widget {
	w := &Widget{
		cfg: cfg,
		calc: BoundsCalculator{
			TickCount: cfg.TickCount,
			Policy:    cfg.Policy(),
		},
		selection:  NewSelection(cfg.ProgressRange, cfg.SnapMode),
		invalidate: invalidate,
	}
	w.drag = NewDragController(w.selection, &w.notifier, cfg.HitRadius)
	return w
}

// Viewport returns a viewport of the given pixel size with the configured
// bar and label bands and uniform padding.
func (c Config) Viewport(width, height, padding float64) Viewport {
	return Viewport{
		Width:               width - 2*padding,
		Height:              height,
		PaddingLeft:         padding,
		PaddingTop:          padding,
		PaddingRight:        padding,
		PaddingBottom:       padding,
		ReservedBarHeight:   c.BarHeight,
		ReservedLabelHeight: c.LabelHeight,
	}
}

// SetData replaces the series. Data that cannot be charted is rejected
// and the previous state kept. Accepted data that does not fit the current
// viewport leaves the widget without a drawable state until the next
// successful Resize; the error is still returned.
func (w *Widget) SetData(samples []Sample) error {
	data, err := NewDataState(samples, w.calc, w.cfg.ProgressRange)
	if err != nil {
		return fmt.Errorf("failed setting data: %w", err)
	}
	w.data = &data
	w.selection.SetData(data.Series, data.Corners, data.Index)
	if !w.hasViewport {
		w.requestRedraw()
		return nil
	}
	if err := w.rebuild(); err != nil {
		return fmt.Errorf("failed setting data: %w", err)
	}
	return nil
}

// Resize installs a new viewport. An unusable viewport leaves the widget
// without a drawable state until the next successful Resize. Repeating a
// failed Resize returns the same error without requesting a redraw.
func (w *Widget) Resize(vp Viewport) error {
	if w.hasViewport && vp == w.viewport {
		if w.state != nil || w.data == nil {
			return nil
		}
		if w.stateErr != nil {
			return fmt.Errorf("failed resizing: %w", w.stateErr)
		}
	}
	w.viewport = vp
	w.hasViewport = true
	if w.data == nil {
		w.requestRedraw()
		return nil
	}
	if err := w.rebuild(); err != nil {
		return fmt.Errorf("failed resizing: %w", err)
	}
	return nil
}

// rebuild derives the render state from the installed data and viewport.
// On failure the error is kept for repeated Resize calls.
func (w *Widget) rebuild() error {
	state, err := NewRenderState(*w.data, w.viewport)
	w.stateErr = err
	w.setState(state)
	return err
}

func (w *Widget) setState(state *RenderState) {
	if state == nil && w.state == nil {
		w.drag.ClearTransform()
		return
	}
	w.state = state
	if state != nil {
		w.drag.SetTransform(state.Transform)
	} else {
		w.drag.ClearTransform()
	}
	w.requestRedraw()
}

// Subscribe registers l for progress notifications.
func (w *Widget) Subscribe(l Listener) (cancel func()) {
	return w.notifier.Subscribe(l)
}

// SetProgress moves the thumb programmatically. Listeners receive a final
// event with FromUser unset.
func (w *Widget) SetProgress(progress int) {
	progress = w.selection.Update(progress)
	w.drag.PointerCancel()
	w.requestRedraw()
	w.notifier.Notify(ProgressEvent{Progress: progress, Final: true})
}

// SetSnapMode switches between discrete and continuous dragging. A drag in
// progress is abandoned.
func (w *Widget) SetSnapMode(m SnapMode) {
	if m == w.selection.Mode() {
		return
	}
	w.drag.PointerCancel()
	w.selection.SetMode(m)
	w.requestRedraw()
}

func (w *Widget) PointerDown(p Point) {
	if w.drag.PointerDown(p) {
		w.requestRedraw()
	}
}

func (w *Widget) PointerMove(p Point) {
	if w.drag.PointerMove(p) {
		w.requestRedraw()
	}
}

func (w *Widget) PointerUp(p Point) {
	if w.drag.PointerUp(p) {
		w.requestRedraw()
	}
}

func (w *Widget) PointerCancel() {
	if w.drag.PointerCancel() {
		w.requestRedraw()
	}
}

func (w *Widget) Progress() int         { return w.selection.Progress() }
func (w *Widget) SnapMode() SnapMode    { return w.selection.Mode() }
func (w *Widget) DragState() DragState  { return w.drag.State() }
func (w *Widget) State() *RenderState   { return w.state }
func (w *Widget) Config() Config        { return w.cfg }
func (w *Widget) RedrawPending() bool   { return w.pending }
func (w *Widget) Selection() *Selection { return w.selection }
func (w *Widget) Drag() *DragController { return w.drag }

// Highlight returns the point of the curve the cursor currently marks.
func (w *Widget) Highlight() (Sample, error) {
	return w.selection.SampleAt(w.drag.DisplayProgress())
}

func (w *Widget) requestRedraw() {
	if w.pending {
		return
	}
	w.pending = true
	if w.invalidate != nil {
		w.invalidate()
	}
}

const (
	gridLabelOffset = 10
	trackWidth      = 2
)

// Draw renders the current state through r. It returns ErrNotReady when
// there is no data or viewport to draw.
func (w *Widget) Draw(r Renderer) error {
	w.pending = false
	s := w.state
	if s == nil {
		return ErrNotReady
	}
	t := s.Transform
	cp := s.Corners
	b := s.Bounds
	vp := s.Viewport
	cfg := w.cfg

	text := Style{Color: cfg.TextColor.NRGBA(), TextSize: cfg.TextSize}
	highlight, err := w.Highlight()
	if err != nil {
		return err
	}
	cross := t.ToPixel(highlight)

	// Area under the curve, closed along the lower bound.
	path := Downsample(s.Pixels, int(t.Track().Width()))
	area := make([]Point, 0, len(path)+2)
	area = append(area, t.ToPixel(Sample{X: cp.Top.X, Y: b.Lower}))
	area = append(area, path...)
	area = append(area, t.ToPixel(Sample{X: cp.Bottom.X, Y: b.Lower}))
	r.DrawPath(area, Style{Color: cfg.AreaColor.NRGBA(), Fill: true}, true)
	r.DrawPath(path, Style{Color: cfg.StrokeColor.NRGBA(), StrokeWidth: cfg.StrokeWidth}, false)

	// Cursor line.
	x := w.selection.X(w.drag.DisplayProgress())
	r.DrawLine(
		t.ToPixel(Sample{X: x, Y: b.Lower}),
		t.ToPixel(Sample{X: x, Y: b.Upper}),
		Style{Color: cfg.TextColor.NRGBA(), StrokeWidth: 1},
	)

	// Grid.
	grid := Style{Color: cfg.GridColor.NRGBA(), StrokeWidth: 1}
	for _, tick := range b.Ticks() {
		left := t.ToPixel(Sample{X: cp.Top.X, Y: tick})
		right := t.ToPixel(Sample{X: cp.Bottom.X, Y: tick})
		r.DrawLine(left, right, grid)
		label := w.formatValue(tick)
		m := r.MeasureText(label, text)
		r.DrawText(label, Point{X: left.X + gridLabelOffset, Y: left.Y - gridLabelOffset - m.Height}, text)
	}

	// Markers, with the one under the cursor crossing enlarged.
	selected := selectedMarker(s.Pixels, cross, 2*cfg.MarkerRadius)
	marker := Style{Color: cfg.TextColor.NRGBA(), Fill: true}
	for i, p := range s.Pixels {
		radius := cfg.MarkerRadius
		if i == selected {
			radius *= 2
		}
		r.DrawCircle(p, radius, marker)
	}

	// Thumb track and thumb.
	tr := t.Track()
	r.DrawLine(Point{X: tr.Left, Y: tr.Y}, Point{X: tr.Right, Y: tr.Y}, Style{Color: cfg.GridColor.NRGBA(), StrokeWidth: trackWidth})
	if c, ok := w.drag.ThumbCenter(); ok {
		r.DrawCircle(c, cfg.BarHeight/2, Style{Color: cfg.ThumbColor.NRGBA(), Fill: true})
	}

	// Callout at the highlighted point.
	value := fmt.Sprintf("%.2f", highlight.Y)
	m := r.MeasureText(value, text)
	callout := PlaceCallout(cross, value, m, vp.PaddingLeft+vp.Width+vp.PaddingRight)
	r.DrawPath(callout.Polygon, Style{Color: cfg.FlagColor.NRGBA(), Fill: true}, true)
	r.DrawText(value, callout.TextAnchor, text)

	// Value readout in the label band.
	readout := fmt.Sprintf("%s: %s", cfg.ValueLabel, w.formatValue(highlight.Y))
	r.DrawText(readout, Point{X: tr.Left, Y: vp.PaddingTop + vp.ReservedBarHeight}, text)
	return nil
}

func (w *Widget) formatValue(v float64) string {
	if w.cfg.Unit == "" {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.2f %s", v, w.cfg.Unit)
}

// selectedMarker returns the index of the first pixel within radius of
// cross, or -1.
func selectedMarker(pixels []Point, cross Point, radius float64) int {
	for i, p := range pixels {
		dx, dy := p.X-cross.X, p.Y-cross.Y
		if dx*dx+dy*dy <= radius*radius {
			return i
		}
	}
	return -1
}
