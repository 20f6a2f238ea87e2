// Package export renders charts without a window.
package export

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"git.sr.ht/~whereswaldon/seekchart/chart"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Canvas is a chart.Renderer that draws into an in-memory image, one
// canvas unit per pixel.
type Canvas struct {
	img    *vgimg.Canvas
	dc     draw.Canvas
	height vg.Length
}

var _ chart.Renderer = (*Canvas)(nil)

func NewCanvas(width, height int, background color.Color) *Canvas {
	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(width), vg.Length(height)),
		vgimg.UseDPI(72),
		vgimg.UseBackgroundColor(background),
	)
	return &Canvas{
		img:    img,
		dc:     draw.New(img),
		height: vg.Length(height),
	}
}

// point converts from chart pixels, y pointing down, to canvas units.
func (c *Canvas) point(p chart.Point) vg.Point {
	return vg.Point{X: vg.Length(p.X), Y: c.height - vg.Length(p.Y)}
}

func (c *Canvas) setStroke(style chart.Style) {
	c.dc.SetColor(style.Color)
	width := style.StrokeWidth
	if width <= 0 {
		width = 1
	}
	c.dc.SetLineWidth(vg.Length(width))
}

func (c *Canvas) DrawLine(a, b chart.Point, style chart.Style) {
	var p vg.Path
	p.Move(c.point(a))
	p.Line(c.point(b))
	c.setStroke(style)
	c.dc.Stroke(p)
}

func (c *Canvas) DrawPath(points []chart.Point, style chart.Style, closed bool) {
	if len(points) < 2 {
		return
	}
	var p vg.Path
	p.Move(c.point(points[0]))
	for _, pt := range points[1:] {
		p.Line(c.point(pt))
	}
	if closed || style.Fill {
		p.Close()
	}
	if style.Fill {
		c.dc.SetColor(style.Color)
		c.dc.Fill(p)
		return
	}
	c.setStroke(style)
	c.dc.Stroke(p)
}

func (c *Canvas) DrawCircle(center chart.Point, radius float64, style chart.Style) {
	ctr := c.point(center)
	r := vg.Length(radius)
	var p vg.Path
	p.Move(vg.Point{X: ctr.X + r, Y: ctr.Y})
	p.Arc(ctr, r, 0, 2*math.Pi)
	p.Close()
	if style.Fill {
		c.dc.SetColor(style.Color)
		c.dc.Fill(p)
		return
	}
	c.setStroke(style)
	c.dc.Stroke(p)
}

func textStyle(style chart.Style) draw.TextStyle {
	return draw.TextStyle{
		Color:   style.Color,
		Font:    font.From(plot.DefaultFont, vg.Length(style.TextSize)),
		XAlign:  draw.XLeft,
		YAlign:  draw.YTop,
		Handler: plot.DefaultTextHandler,
	}
}

func (c *Canvas) DrawText(text string, anchor chart.Point, style chart.Style) {
	c.dc.FillText(textStyle(style), c.point(anchor), text)
}

func (c *Canvas) MeasureText(text string, style chart.Style) chart.TextMetrics {
	sty := textStyle(style)
	return chart.TextMetrics{
		Width:  float64(sty.Width(text)),
		Height: float64(sty.Height(text)),
	}
}

// Image returns the pixels drawn so far.
func (c *Canvas) Image() image.Image {
	return c.img.Image()
}

// WritePNG encodes the canvas as a PNG image.
func (c *Canvas) WritePNG(w io.Writer) error {
	_, err := vgimg.PngCanvas{Canvas: c.img}.WriteTo(w)
	return err
}

// Options describe a single exported frame.
type Options struct {
	Width, Height int
	// Padding around the plot, in pixels.
	Padding    float64
	Progress   int
	Background color.Color
}

// Render draws samples with the thumb at opts.Progress and writes the
// result to w as a PNG.
func Render(w io.Writer, samples []chart.Sample, cfg chart.Config, opts Options) error {
	if opts.Background == nil {
		opts.Background = color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xff}
	}
	widget := chart.NewWidget(cfg, nil)
	if err := widget.SetData(samples); err != nil {
		return err
	}
	vp := cfg.Viewport(float64(opts.Width), float64(opts.Height), opts.Padding)
	if err := widget.Resize(vp); err != nil {
		return err
	}
	widget.SetProgress(opts.Progress)
	canvas := NewCanvas(opts.Width, opts.Height, opts.Background)
	if err := widget.Draw(canvas); err != nil {
		return fmt.Errorf("failed drawing chart: %w", err)
	}
	if err := canvas.WritePNG(w); err != nil {
		return fmt.Errorf("failed encoding png: %w", err)
	}
	return nil
}
