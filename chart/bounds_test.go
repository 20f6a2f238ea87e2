package chart

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"pgregory.net/rapid"
)

func TestCornerPoints(t *testing.T) {
	type testcase struct {
		name     string
		samples  []Sample
		policy   ValidationPolicy
		expected CornerPoints
		err      error
	}
	for _, tc := range []testcase{
		{
			name:    "unsorted input",
			samples: []Sample{{X: 10, Y: 5}, {X: 0, Y: 10}, {X: 5, Y: 40}},
			expected: CornerPoints{
				Top:    Sample{X: 0, Y: 40},
				Bottom: Sample{X: 10, Y: 5},
			},
		},
		{
			name:    "single sample",
			samples: []Sample{{X: 3, Y: 7}},
			expected: CornerPoints{
				Top:    Sample{X: 3, Y: 7},
				Bottom: Sample{X: 3, Y: 7},
			},
		},
		{
			name: "empty",
			err:  ErrEmptySeries,
		},
		{
			name:    "negative x rejected",
			samples: []Sample{{X: -1, Y: 5}, {X: 4, Y: 6}},
			err:     ErrInvalidBounds,
		},
		{
			name:    "negative y rejected",
			samples: []Sample{{X: 1, Y: -5}, {X: 4, Y: 6}},
			err:     ErrInvalidBounds,
		},
		{
			name:    "negative allowed",
			samples: []Sample{{X: -1, Y: -5}, {X: 4, Y: 6}},
			policy:  PolicyAllowNegative,
			expected: CornerPoints{
				Top:    Sample{X: -1, Y: 6},
				Bottom: Sample{X: 4, Y: -5},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			calc := BoundsCalculator{Policy: tc.policy}
			cp, err := calc.CornerPoints(NewSeries(tc.samples))
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Errorf("expected error %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.expected, cp); diff != "" {
				t.Errorf("corner points mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInvalidBoundsErrorAxis(t *testing.T) {
	calc := BoundsCalculator{}
	_, err := calc.CornerPoints(NewSeries([]Sample{{X: 0, Y: -2}, {X: 1, Y: 3}}))
	var ibe *InvalidBoundsError
	if !errors.As(err, &ibe) {
		t.Fatalf("expected *InvalidBoundsError, got %v", err)
	}
	if ibe.Axis != "y" || ibe.Value != -2 {
		t.Errorf("expected y=-2, got %s=%g", ibe.Axis, ibe.Value)
	}
}

func TestAxisBounds(t *testing.T) {
	type testcase struct {
		name     string
		low, top float64
		expected AxisBounds
	}
	for _, tc := range []testcase{
		{
			name:     "zero to hundred",
			low:      0,
			top:      100,
			expected: AxisBounds{Lower: 0, Upper: 120, TickSize: 40},
		},
		{
			name:     "offset range",
			low:      5,
			top:      40,
			expected: AxisBounds{Lower: 0, Upper: 60, TickSize: 20},
		},
		{
			name:     "flat series",
			low:      7,
			top:      7,
			expected: AxisBounds{Lower: 7, Upper: 8, TickSize: 1},
		},
		{
			name:     "decimal ticks",
			low:      0,
			top:      0.9,
			expected: AxisBounds{Lower: 0, Upper: 1.2, TickSize: 0.3},
		},
		{
			name:     "uneven range",
			low:      12.5,
			top:      87.3,
			expected: AxisBounds{Lower: 0, Upper: 90, TickSize: 30},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			calc := BoundsCalculator{TickCount: 4}
			b, err := calc.AxisBounds(CornerPoints{
				Top:    Sample{X: 0, Y: tc.top},
				Bottom: Sample{X: 1, Y: tc.low},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := []float64{b.Lower, b.Upper, b.TickSize}
			want := []float64{tc.expected.Lower, tc.expected.Upper, tc.expected.TickSize}
			if !floats.EqualApprox(got, want, 1e-12) {
				t.Errorf("expected %+v, got %+v", tc.expected, b)
			}
		})
	}
}

func TestAxisBoundsNonFinite(t *testing.T) {
	calc := BoundsCalculator{}
	_, err := calc.AxisBounds(CornerPoints{Top: Sample{Y: math.Inf(1)}})
	if !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("expected ErrInvalidBounds, got %v", err)
	}
}

func TestTicks(t *testing.T) {
	b := AxisBounds{Lower: 0, Upper: 120, TickSize: 40}
	if diff := cmp.Diff([]float64{0, 40, 80, 120}, b.Ticks()); diff != "" {
		t.Errorf("ticks mismatch (-want +got):\n%s", diff)
	}
	if ticks := (AxisBounds{}).Ticks(); ticks != nil {
		t.Errorf("expected no ticks for zero bounds, got %v", ticks)
	}
}

func TestAxisBoundsCoverRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// Hundredths keep ranges away from the float64 resolution limit.
		cents := rapid.SliceOfN(rapid.IntRange(-100_000, 100_000), 1, 50).Draw(t, "cents")
		samples := make([]Sample, len(cents))
		for i, c := range cents {
			samples[i] = Sample{X: float64(i), Y: float64(c) / 100}
		}
		calc := BoundsCalculator{TickCount: 4, Policy: PolicyAllowNegative}
		cp, err := calc.CornerPoints(NewSeries(samples))
		if err != nil {
			t.Fatalf("corner points: %v", err)
		}
		b, err := calc.AxisBounds(cp)
		if err != nil {
			t.Fatalf("axis bounds: %v", err)
		}
		if b.Lower > cp.Bottom.Y {
			t.Fatalf("lower %v above min %v", b.Lower, cp.Bottom.Y)
		}
		if b.Upper < cp.Top.Y {
			t.Fatalf("upper %v below max %v", b.Upper, cp.Top.Y)
		}
		steps := (b.Upper - b.Lower) / b.TickSize
		if !scalar.EqualWithinAbs(steps, math.Round(steps), 1e-6) {
			t.Fatalf("range %g is not a multiple of tick %g", b.Upper-b.Lower, b.TickSize)
		}
	})
}

func TestAxisBoundsExactCover(t *testing.T) {
	calc := BoundsCalculator{TickCount: 4}
	for lo := 0; lo <= 300; lo++ {
		for span := 0; span <= 40; span++ {
			cp := CornerPoints{
				Top:    Sample{X: 0, Y: float64(lo+span) / 100},
				Bottom: Sample{X: 1, Y: float64(lo) / 100},
			}
			b, err := calc.AxisBounds(cp)
			if err != nil {
				t.Fatalf("[%v, %v]: unexpected error: %v", cp.Bottom.Y, cp.Top.Y, err)
			}
			if b.Lower > cp.Bottom.Y || b.Upper < cp.Top.Y {
				t.Fatalf("[%v, %v]: bounds %+v do not cover the range", cp.Bottom.Y, cp.Top.Y, b)
			}
			if b.Lower < 0 {
				t.Fatalf("[%v, %v]: lower %v below zero", cp.Bottom.Y, cp.Top.Y, b.Lower)
			}
		}
	}
}
