package chart

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySeries is returned when bounds are requested for a series
	// without samples.
	ErrEmptySeries = errors.New("chart: empty series")
	// ErrEmptyIndex is returned when snapping against an index without
	// progress values.
	ErrEmptyIndex = errors.New("chart: empty snap index")
	// ErrNotReady is returned by Widget.Draw until both data and a
	// viewport have been installed.
	ErrNotReady = errors.New("chart: no data or viewport")

	ErrDegenerateViewport = errors.New("chart: degenerate viewport")
	ErrInvalidBounds      = errors.New("chart: invalid bounds")
)

// DegenerateViewportError reports a data-to-pixel scale that cannot be
// inverted: zero, negative, infinite or NaN.
type DegenerateViewportError struct {
	ScaleX, ScaleY float64
}

func (e *DegenerateViewportError) Error() string {
	return fmt.Sprintf("chart: degenerate viewport (scaleX=%g, scaleY=%g)", e.ScaleX, e.ScaleY)
}

func (e *DegenerateViewportError) Is(target error) bool {
	return target == ErrDegenerateViewport
}

// InvalidBoundsError reports a corner point rejected by a ValidationPolicy.
type InvalidBoundsError struct {
	Axis  string
	Value float64
}

func (e *InvalidBoundsError) Error() string {
	return fmt.Sprintf("chart: invalid bounds: %s=%g is negative", e.Axis, e.Value)
}

func (e *InvalidBoundsError) Is(target error) bool {
	return target == ErrInvalidBounds
}
