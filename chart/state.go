package chart

// DataState is everything derived from a Series alone.
type DataState struct {
	Series  Series
	Corners CornerPoints
	Bounds  AxisBounds
	Index   SnapIndex
}

// NewDataState sorts samples and derives corner points, axis bounds and
// the snap index from them.
func NewDataState(samples []Sample, calc BoundsCalculator, progressRange int) (DataState, error) {
	series := NewSeries(samples)
	cp, err := calc.CornerPoints(series)
	if err != nil {
		return DataState{}, err
	}
	bounds, err := calc.AxisBounds(cp)
	if err != nil {
		return DataState{}, err
	}
	return DataState{
		Series:  series,
		Corners: cp,
		Bounds:  bounds,
		Index:   NewSnapIndex(series, cp, progressRange),
	}, nil
}

// RenderState is the immutable bundle of derived state a frame is drawn
// from. It is rebuilt whenever the data or the viewport change.
type RenderState struct {
	DataState
	Viewport  Viewport
	Transform Transform
	// Pixels holds every sample mapped through Transform, in series
	// order.
	Pixels []Point
}

// NewRenderState combines data-derived state with a viewport.
func NewRenderState(data DataState, vp Viewport) (*RenderState, error) {
	t, err := NewTransform(data.Corners, data.Bounds, vp)
	if err != nil {
		return nil, err
	}
	pixels := make([]Point, data.Series.Len())
	for i := range pixels {
		pixels[i] = t.ToPixel(data.Series.At(i))
	}
	return &RenderState{
		DataState: data,
		Viewport:  vp,
		Transform: t,
		Pixels:    pixels,
	}, nil
}
