package chart

// TextMetrics is the measured size of a piece of text.
type TextMetrics struct {
	Width, Height float64
}

// Callout is a flag-shaped label: a pole rising from the anchor, a short
// taper and a body wide enough for the text.
type Callout struct {
	Polygon []Point
	// TextAnchor is the top-left corner of the text box.
	TextAnchor Point
	// Flipped is set when the flag extends to the left of the anchor.
	Flipped bool
}

// PlaceCallout builds the callout for text measured as m, anchored at a
// sample's pixel position. The flag extends right of the anchor unless
// that would cross viewportWidth, in which case it is mirrored to the left.
// The flag always sits above the anchor and may clip at the top edge. text
// is not inspected beyond its measured size.
func PlaceCallout(anchor Point, text string, m TextMetrics, viewportWidth float64) Callout {
	x := clamp(anchor.X, 0, max(viewportWidth, 0))
	y := anchor.Y
	w := m.Width * 1.5
	h := m.Height
	flipped := x+w > viewportWidth
	if flipped {
		w = -w
	}
	taperTop := y - h/3
	bodyTop := taperTop - h
	c := Callout{
		Polygon: []Point{
			{X: x, Y: y},
			{X: x, Y: bodyTop},
			{X: x + w, Y: bodyTop},
			{X: x + w, Y: taperTop},
			{X: x + w/3, Y: taperTop},
		},
		Flipped: flipped,
	}
	if flipped {
		c.TextAnchor = Point{X: x + 5*w/6, Y: bodyTop}
	} else {
		c.TextAnchor = Point{X: x + w/6, Y: bodyTop}
	}
	return c
}
