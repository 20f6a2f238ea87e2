package chart

import (
	"fmt"
	"math"
)

const defaultTickCount = 4

// CornerPoints are the two corners of the plotted bounding box. Top holds
// the largest Y at the smallest X; Bottom holds the smallest Y at the
// largest X.
type CornerPoints struct {
	Top, Bottom Sample
}

// XRange is the width of the series' domain.
func (c CornerPoints) XRange() float64 { return c.Bottom.X - c.Top.X }

// AxisBounds are rounded Y-axis bounds covering the series' range, spaced
// by TickSize.
type AxisBounds struct {
	Lower, Upper, TickSize float64
}

// Ticks returns every gridline value from Lower to Upper inclusive.
func (b AxisBounds) Ticks() []float64 {
	if b.TickSize <= 0 || b.Upper < b.Lower {
		return nil
	}
	n := int(math.Round((b.Upper - b.Lower) / b.TickSize))
	ticks := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		ticks = append(ticks, b.Lower+float64(i)*b.TickSize)
	}
	return ticks
}

// ValidationPolicy decides which corner points are acceptable for the
// charted quantity.
type ValidationPolicy uint8

const (
	// PolicyNonNegative rejects series with any negative X or Y.
	PolicyNonNegative ValidationPolicy = iota
	// PolicyAllowNegative accepts any finite corner points.
	PolicyAllowNegative
)

func (p ValidationPolicy) String() string {
	switch p {
	case PolicyNonNegative:
		return "non-negative"
	case PolicyAllowNegative:
		return "allow-negative"
	default:
		return "unknown"
	}
}

// Validate returns an *InvalidBoundsError when cp violates the policy.
func (p ValidationPolicy) Validate(cp CornerPoints) error {
	if p != PolicyNonNegative {
		return nil
	}
	if cp.Top.X < 0 {
		return &InvalidBoundsError{Axis: "x", Value: cp.Top.X}
	}
	if cp.Bottom.Y < 0 {
		return &InvalidBoundsError{Axis: "y", Value: cp.Bottom.Y}
	}
	return nil
}

// BoundsCalculator derives corner points and nice axis bounds from a
// Series.
type BoundsCalculator struct {
	// TickCount is the number of gridlines the tick size is chosen for.
	// Values below 2 use the default of 4.
	TickCount int
	Policy    ValidationPolicy
}

// CornerPoints computes the series' extrema and validates them against
// the calculator's policy.
func (b BoundsCalculator) CornerPoints(s Series) (CornerPoints, error) {
	if s.Len() < 1 {
		return CornerPoints{}, ErrEmptySeries
	}
	first, last := s.At(0), s.At(s.Len()-1)
	cp := CornerPoints{
		Top:    Sample{X: first.X, Y: first.Y},
		Bottom: Sample{X: last.X, Y: first.Y},
	}
	for _, p := range s.samples {
		cp.Top.Y = max(cp.Top.Y, p.Y)
		cp.Bottom.Y = min(cp.Bottom.Y, p.Y)
	}
	if err := b.Policy.Validate(cp); err != nil {
		return cp, err
	}
	return cp, nil
}

// AxisBounds picks a tick size of the form d*10^e covering the corner
// points' Y range in TickCount-1 steps, and rounds the bounds outward to
// multiples of it.
func (b BoundsCalculator) AxisBounds(cp CornerPoints) (AxisBounds, error) {
	if math.IsNaN(cp.Top.Y) || math.IsInf(cp.Top.Y, 0) || math.IsNaN(cp.Bottom.Y) || math.IsInf(cp.Bottom.Y, 0) {
		return AxisBounds{}, fmt.Errorf("%w: non-finite range [%g, %g]", ErrInvalidBounds, cp.Bottom.Y, cp.Top.Y)
	}
	tickCount := b.TickCount
	if tickCount < 2 {
		tickCount = defaultTickCount
	}
	rng := cp.Top.Y - cp.Bottom.Y
	rawTick := 1.0
	if rng > 0 {
		rawTick = rng / float64(tickCount-1)
	}
	tick := niceTick(rawTick)
	lower := tick * math.Floor(cp.Bottom.Y/tick)
	upper := tick * math.Floor(1+cp.Top.Y/tick)
	// Rounding can leave a bound an ulp inside the range.
	if lower > cp.Bottom.Y {
		lower -= tick
		if lower < 0 && cp.Bottom.Y >= 0 {
			lower = 0
		}
	}
	if upper < cp.Top.Y {
		upper += tick
	}
	return AxisBounds{
		Lower:    lower,
		Upper:    upper,
		TickSize: tick,
	}, nil
}

// niceTick rounds raw up to one significant digit.
func niceTick(raw float64) float64 {
	exponent := math.Ceil(math.Log10(raw) - 1)
	if exponent < 0 {
		// Divide by 10^-e so decimal ticks like 0.3 stay exact.
		scale := math.Pow(10, -exponent)
		return math.Ceil(raw*scale) / scale
	}
	pow10 := math.Pow(10, exponent)
	return math.Ceil(raw/pow10) * pow10
}
