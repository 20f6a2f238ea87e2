package chart

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/floats/scalar"
	"pgregory.net/rapid"
)

// testViewport leaves a 1000px wide, 375px tall plot area below a 75px
// thumb band and a 150px callout band.
var testViewport = Viewport{
	Width:               1075,
	Height:              600,
	ReservedBarHeight:   75,
	ReservedLabelHeight: 150,
}

func TestTransform(t *testing.T) {
	cp := CornerPoints{Top: Sample{X: 0, Y: 100}, Bottom: Sample{X: 10, Y: 0}}
	bounds := AxisBounds{Lower: 0, Upper: 120, TickSize: 40}
	tr, err := NewTransform(cp, bounds, testViewport)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	type testcase struct {
		name   string
		sample Sample
		pixel  Point
	}
	for _, tc := range []testcase{
		{name: "top left", sample: Sample{X: 0, Y: 120}, pixel: Pt(37.5, 225)},
		{name: "bottom right", sample: Sample{X: 10, Y: 0}, pixel: Pt(1037.5, 600)},
		{name: "centre", sample: Sample{X: 5, Y: 60}, pixel: Pt(537.5, 412.5)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.pixel, tr.ToPixel(tc.sample)); diff != "" {
				t.Errorf("ToPixel mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.sample, tr.ToData(tc.pixel)); diff != "" {
				t.Errorf("ToData mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if diff := cmp.Diff(Track{Left: 37.5, Right: 1037.5, Y: 37.5}, tr.Track()); diff != "" {
		t.Errorf("track mismatch (-want +got):\n%s", diff)
	}
	if c := tr.ThumbCenter(500, 1000); c != Pt(537.5, 37.5) {
		t.Errorf("expected thumb at (537.5, 37.5), got %v", c)
	}
	if c := tr.ThumbCenter(2000, 1000); c != Pt(1037.5, 37.5) {
		t.Errorf("expected thumb clamped to track end, got %v", c)
	}
}

func TestProgressConversion(t *testing.T) {
	cp := CornerPoints{Top: Sample{X: 10, Y: 1}, Bottom: Sample{X: 30, Y: 0}}
	tr, err := NewTransform(cp, AxisBounds{Lower: 0, Upper: 2, TickSize: 1}, testViewport)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x := tr.ProgressToX(250, 1000); x != 15 {
		t.Errorf("expected x=15 at progress 250, got %g", x)
	}
	for x, expected := range map[float64]int{
		10:   0,
		20:   500,
		30:   1000,
		5:    0,
		99:   1000,
		12.3: 115,
	} {
		if p := tr.XToProgress(x, 1000); p != expected {
			t.Errorf("expected progress %d for x=%g, got %d", expected, x, p)
		}
	}
}

func TestDegenerateViewport(t *testing.T) {
	cp := CornerPoints{Top: Sample{X: 0, Y: 10}, Bottom: Sample{X: 10, Y: 0}}
	bounds := AxisBounds{Lower: 0, Upper: 20, TickSize: 10}
	type testcase struct {
		name   string
		cp     CornerPoints
		bounds AxisBounds
		vp     Viewport
	}
	for _, tc := range []testcase{
		{name: "zero width", cp: cp, bounds: bounds, vp: Viewport{Height: 600}},
		{name: "bands taller than viewport", cp: cp, bounds: bounds, vp: Viewport{Width: 500, Height: 200, ReservedBarHeight: 75, ReservedLabelHeight: 150}},
		{name: "single x", cp: CornerPoints{Top: Sample{X: 3, Y: 1}, Bottom: Sample{X: 3, Y: 1}}, bounds: bounds, vp: testViewport},
		{name: "empty y range", cp: cp, bounds: AxisBounds{Lower: 5, Upper: 5}, vp: testViewport},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTransform(tc.cp, tc.bounds, tc.vp)
			if !errors.Is(err, ErrDegenerateViewport) {
				t.Errorf("expected ErrDegenerateViewport, got %v", err)
			}
			var dve *DegenerateViewportError
			if !errors.As(err, &dve) {
				t.Errorf("expected *DegenerateViewportError, got %T", err)
			}
		})
	}
}

func TestTransformRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		span := rapid.Float64Range(1, 1e4).Draw(t, "span")
		ys := rapid.SliceOfN(rapid.Float64Range(0, 1e4), 1, 40).Draw(t, "ys")
		samples := make([]Sample, 0, len(ys)+1)
		for i, y := range ys {
			samples = append(samples, Sample{X: span * float64(i) / float64(len(ys)), Y: y})
		}
		samples = append(samples, Sample{X: span, Y: ys[0]})
		vp := Viewport{
			Width:               rapid.Float64Range(100, 4000).Draw(t, "width"),
			Height:              rapid.Float64Range(300, 4000).Draw(t, "height"),
			PaddingLeft:         rapid.Float64Range(0, 50).Draw(t, "padding"),
			ReservedBarHeight:   75,
			ReservedLabelHeight: 150,
		}
		data, err := NewDataState(samples, BoundsCalculator{}, 1000)
		if err != nil {
			t.Fatalf("data state: %v", err)
		}
		tr, err := NewTransform(data.Corners, data.Bounds, vp)
		if err != nil {
			t.Fatalf("transform: %v", err)
		}
		for _, s := range data.Series.Samples() {
			back := tr.ToData(tr.ToPixel(s))
			if !scalar.EqualWithinAbsOrRel(back.X, s.X, 1e-9, 1e-9) || !scalar.EqualWithinAbsOrRel(back.Y, s.Y, 1e-9, 1e-9) {
				t.Fatalf("round trip of %v gave %v", s, back)
			}
		}
	})
}
