package chart

import "image/color"

// Style describes how a Renderer should draw a primitive.
type Style struct {
	Color color.NRGBA
	// StrokeWidth is the line width in pixels. Zero means hairline.
	StrokeWidth float64
	// Fill requests a filled shape instead of an outline.
	Fill bool
	// TextSize is the text height in pixels, for DrawText and MeasureText.
	TextSize float64
}

// Renderer is the drawing capability the chart draws through. Coordinates
// are pixels with the origin at the top-left of the viewport.
type Renderer interface {
	DrawLine(a, b Point, style Style)
	DrawPath(points []Point, style Style, closed bool)
	DrawCircle(center Point, radius float64, style Style)
	// DrawText draws text with its top-left corner at anchor.
	DrawText(text string, anchor Point, style Style)
	MeasureText(text string, style Style) TextMetrics
}
