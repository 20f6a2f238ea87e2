package chart

import "slices"

// SnapIndex holds one progress value per sample of a Series, in sample
// order, for nearest-match snapping.
type SnapIndex struct {
	points []int
}

// NewSnapIndex projects every sample's X into [0, progressRange] using the
// corner points' domain.
func NewSnapIndex(s Series, cp CornerPoints, progressRange int) SnapIndex {
	points := make([]int, s.Len())
	for i := range points {
		points[i] = xToProgress(cp, s.At(i).X, progressRange)
	}
	return SnapIndex{points: points}
}

func (x SnapIndex) Len() int { return len(x.points) }

// Points returns a copy of the progress values.
func (x SnapIndex) Points() []int { return slices.Clone(x.points) }

// Nearest returns the indexed progress value closest to query. When two
// candidates are equally close, the one probed first by the binary search
// wins.
func (x SnapIndex) Nearest(query int) (int, error) {
	i, err := x.nearestIndex(query)
	if err != nil {
		return 0, err
	}
	return x.points[i], nil
}

// nearestIndex is Nearest, returning the position of the winning value.
func (x SnapIndex) nearestIndex(query int) (int, error) {
	if len(x.points) < 1 {
		return 0, ErrEmptyIndex
	}
	lo, hi := 0, len(x.points)-1
	best := 0
	for lo <= hi {
		mid := lo + (hi-lo)/2
		if abs(x.points[mid]-query) < abs(query-x.points[best]) {
			best = mid
		}
		switch {
		case query < x.points[mid]:
			hi = mid - 1
		case query > x.points[mid]:
			lo = mid + 1
		default:
			return mid, nil
		}
	}
	return best, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
