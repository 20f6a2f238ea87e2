package chart

import "fmt"

// SnapMode selects how the thumb position resolves to a value.
type SnapMode uint8

const (
	// SnapDiscrete snaps the thumb to the nearest sample on release.
	SnapDiscrete SnapMode = iota
	// SnapContinuous interpolates between samples and reports every move.
	SnapContinuous
)

func (m SnapMode) String() string {
	switch m {
	case SnapDiscrete:
		return "discrete"
	case SnapContinuous:
		return "continuous"
	default:
		return "unknown"
	}
}

// ParseSnapMode is the inverse of SnapMode.String.
func ParseSnapMode(s string) (SnapMode, error) {
	switch s {
	case "discrete", "":
		return SnapDiscrete, nil
	case "continuous":
		return SnapContinuous, nil
	default:
		return SnapDiscrete, fmt.Errorf("unknown snap mode %q", s)
	}
}

// Selection tracks the committed progress and resolves progress values to
// samples of the current Series.
type Selection struct {
	progress      int
	progressRange int
	mode          SnapMode
	series        Series
	corners       CornerPoints
	index         SnapIndex
}

// NewSelection returns a selection at progress zero with no data.
func NewSelection(progressRange int, mode SnapMode) *Selection {
	return &Selection{
		progressRange: max(progressRange, 0),
		mode:          mode,
	}
}

// SetData points the selection at a new series and its derived state.
// The committed progress is kept.
func (s *Selection) SetData(series Series, cp CornerPoints, index SnapIndex) {
	s.series = series
	s.corners = cp
	s.index = index
}

func (s *Selection) Progress() int         { return s.progress }
func (s *Selection) ProgressRange() int    { return s.progressRange }
func (s *Selection) Mode() SnapMode        { return s.mode }
func (s *Selection) SetMode(m SnapMode)    { s.mode = m }
func (s *Selection) Index() SnapIndex      { return s.index }
func (s *Selection) Corners() CornerPoints { return s.corners }

// Update sets the committed progress, clamped to [0, ProgressRange]. It
// returns the stored value.
func (s *Selection) Update(progress int) int {
	s.progress = clamp(progress, 0, s.progressRange)
	return s.progress
}

// X returns the data-space X of the given progress.
func (s *Selection) X(progress int) float64 {
	return progressToX(s.corners, progress, s.progressRange)
}

// ValueAt linearly interpolates the series at x. Queries outside the
// domain clamp to the nearest boundary sample. An empty series yields
// zero.
func (s *Selection) ValueAt(x float64) float64 {
	n := s.series.Len()
	if n < 1 {
		return 0
	}
	i := s.series.search(x)
	switch {
	case i == n:
		return s.series.At(n - 1).Y
	case s.series.At(i).X == x:
		return s.series.At(i).Y
	case i == 0:
		return s.series.At(0).Y
	}
	p1, p2 := s.series.At(i-1), s.series.At(i)
	return p1.Y + (x-p1.X)*(p2.Y-p1.Y)/(p2.X-p1.X)
}

// SampleAt resolves a progress value to a point on the curve. In discrete
// mode it is the sample nearest to progress in the snap index; in
// continuous mode it is the interpolated point at the progress' X.
func (s *Selection) SampleAt(progress int) (Sample, error) {
	if s.series.Len() < 1 {
		return Sample{}, ErrEmptySeries
	}
	progress = clamp(progress, 0, s.progressRange)
	if s.mode == SnapDiscrete {
		i, err := s.index.nearestIndex(progress)
		if err != nil {
			return Sample{}, err
		}
		return s.series.At(i), nil
	}
	x := s.X(progress)
	return Sample{X: x, Y: s.ValueAt(x)}, nil
}

// Highlight returns the point of the curve under the committed progress.
func (s *Selection) Highlight() (Sample, error) {
	return s.SampleAt(s.progress)
}
