// Package chart implements the geometry and interaction core of a
// single-series chart with a draggable, snapping thumb. It knows nothing
// about windows or drawing APIs; hosts feed it data, a Viewport and pointer
// positions, and it hands geometry to a Renderer.
package chart

import (
	"cmp"
	"slices"
	"sort"
)

// Sample is a single data point in domain units.
type Sample struct {
	X, Y float64
}

// Series is an immutable collection of samples sorted ascending by X.
type Series struct {
	samples []Sample
}

// NewSeries copies samples and sorts the copy by X. Samples sharing an X
// keep their original relative order.
func NewSeries(samples []Sample) Series {
	s := slices.Clone(samples)
	slices.SortStableFunc(s, func(a, b Sample) int {
		return cmp.Compare(a.X, b.X)
	})
	return Series{samples: s}
}

func (s Series) Len() int { return len(s.samples) }

func (s Series) At(i int) Sample { return s.samples[i] }

// Samples returns a copy of the sorted samples.
func (s Series) Samples() []Sample { return slices.Clone(s.samples) }

// Domain returns the smallest and largest X. ok is false for an empty
// series.
func (s Series) Domain() (min, max float64, ok bool) {
	if len(s.samples) < 1 {
		return 0, 0, false
	}
	return s.samples[0].X, s.samples[len(s.samples)-1].X, true
}

// Equal reports whether both series hold the same samples in the same
// order.
func (s Series) Equal(o Series) bool {
	return slices.Equal(s.samples, o.samples)
}

// search returns the index of the first sample whose X is not less than x.
func (s Series) search(x float64) int {
	return sort.Search(len(s.samples), func(i int) bool {
		return s.samples[i].X >= x
	})
}
