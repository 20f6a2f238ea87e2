package chart

import (
	lttb "github.com/dgryski/go-lttb"
)

// Downsample reduces points to at most threshold points with the
// Largest-Triangle-Three-Buckets algorithm, keeping the first and last
// point. Inputs that already fit, and thresholds below 3, are returned
// unchanged.
func Downsample(points []Point, threshold int) []Point {
	if threshold < 3 || len(points) <= threshold {
		return points
	}
	in := make([]lttb.Point[float64], len(points))
	for i, p := range points {
		in[i] = lttb.Point[float64]{X: p.X, Y: p.Y}
	}
	out := lttb.LTTB(in, threshold)
	res := make([]Point, len(out))
	for i, p := range out {
		res[i] = Point{X: p.X, Y: p.Y}
	}
	return res
}
