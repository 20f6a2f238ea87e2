package chart

// DragState is the state of a DragController.
type DragState uint8

const (
	DragIdle DragState = iota
	DragDragging
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// DragController turns pointer gestures on the thumb into progress
// updates. It never fails: events it cannot use are ignored.
type DragController struct {
	state     DragState
	selection *Selection
	notifier  *Notifier
	hitRadius float64

	transform    Transform
	hasTransform bool

	// visual is the unsnapped thumb position while dragging.
	visual float64
	// last is the most recent progress computed from the pointer.
	last int
}

// NewDragController drives sel and reports through n. A pointer press
// within hitRadius pixels of the thumb centre starts a drag.
func NewDragController(sel *Selection, n *Notifier, hitRadius float64) *DragController {
	return &DragController{
		selection: sel,
		notifier:  n,
		hitRadius: hitRadius,
		visual:    float64(sel.Progress()),
		last:      sel.Progress(),
	}
}

// SetTransform installs the mapping used for hit testing and pointer
// conversion. Until one is installed every pointer event is ignored.
func (d *DragController) SetTransform(t Transform) {
	d.transform = t
	d.hasTransform = true
}

// ClearTransform drops the installed mapping and abandons any drag.
func (d *DragController) ClearTransform() {
	d.hasTransform = false
	d.reset()
}

func (d *DragController) State() DragState { return d.state }

// VisualProgress is where the thumb is drawn: the pointer-following
// position during a drag and the committed progress otherwise.
func (d *DragController) VisualProgress() float64 {
	if d.state == DragDragging {
		return d.visual
	}
	return float64(d.selection.Progress())
}

// DisplayProgress is the progress the highlight follows: the last pointer
// progress during a drag and the committed progress otherwise.
func (d *DragController) DisplayProgress() int {
	if d.state == DragDragging {
		return d.last
	}
	return d.selection.Progress()
}

// ThumbCenter is the pixel centre of the thumb as currently drawn.
func (d *DragController) ThumbCenter() (Point, bool) {
	if !d.hasTransform {
		return Point{}, false
	}
	return d.transform.ThumbCenter(d.VisualProgress(), d.selection.ProgressRange()), true
}

// HitTest reports whether p is within the hit radius of the thumb.
func (d *DragController) HitTest(p Point) bool {
	c, ok := d.ThumbCenter()
	if !ok {
		return false
	}
	dx, dy := p.X-c.X, p.Y-c.Y
	return dx*dx+dy*dy <= d.hitRadius*d.hitRadius
}

// PointerDown starts a drag when p hits the thumb. It reports whether the
// event was consumed.
func (d *DragController) PointerDown(p Point) bool {
	if d.state != DragIdle || !d.HitTest(p) {
		return false
	}
	d.state = DragDragging
	d.visual = float64(d.selection.Progress())
	d.last = d.selection.Progress()
	return true
}

// PointerMove follows the pointer during a drag. Continuous mode reports
// every move as a non-final event; discrete mode only moves the thumb.
func (d *DragController) PointerMove(p Point) bool {
	if d.state != DragDragging {
		return false
	}
	d.follow(p)
	if d.selection.Mode() == SnapContinuous {
		d.notifier.Notify(ProgressEvent{Progress: d.last, FromUser: true})
	}
	return true
}

// PointerUp ends a drag and commits its result with one final event.
func (d *DragController) PointerUp(p Point) bool {
	if d.state != DragDragging {
		return false
	}
	progress := d.last
	if d.selection.Mode() == SnapDiscrete {
		d.follow(p)
		progress = d.last
		if snapped, err := d.selection.Index().Nearest(progress); err == nil {
			progress = snapped
		}
	}
	progress = d.selection.Update(progress)
	d.reset()
	d.notifier.Notify(ProgressEvent{Progress: progress, Final: true, FromUser: true})
	return true
}

// PointerCancel abandons a drag without reporting anything.
func (d *DragController) PointerCancel() bool {
	if d.state != DragDragging {
		return false
	}
	d.reset()
	return true
}

func (d *DragController) reset() {
	d.state = DragIdle
	d.visual = float64(d.selection.Progress())
	d.last = d.selection.Progress()
}

// follow moves the thumb to the pointer's x, clamped to the track.
func (d *DragController) follow(p Point) {
	tr := d.transform.Track()
	x := clamp(p.X, tr.Left, tr.Right)
	r := d.selection.ProgressRange()
	if w := tr.Width(); w > 0 {
		d.visual = (x - tr.Left) / w * float64(r)
	}
	data := d.transform.ToData(Point{X: x, Y: p.Y})
	d.last = d.transform.XToProgress(data.X, r)
}
