package lison

import (
	"fmt"
	"image/color"
	"math"
)

// Given a decoded document, implements how to draw it.
// This requires a Canvas implementing the actual paint operations,
// such as a rasterizer to output .png images or a pdf writer.

// FillRule selects how overlapping sub-paths are filled.
type FillRule uint8

const (
	FillNonZero FillRule = iota
	FillEvenOdd
)

// PathBuilder receives path construction operations.
// Coordinates are already scaled to device space.
type PathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(x1, y1, x2, y2, x3, y3 float64)
	// ClosePath joins the current sub-path to its start.
	ClosePath()
}

// Canvas knows how to do the actual paint operations,
// but doesn't need any lison knowledge. It follows the usual
// model of 2D graphics libraries: a current path is built, then
// painted with the current source and stroke settings.
type Canvas interface {
	PathBuilder

	// NewSubPath starts a new sub-path without a current point;
	// the next operation is a MoveTo.
	NewSubPath()
	// NewPath discards the current path.
	NewPath()

	SetFillRule(rule FillRule)

	SetSolidSource(c Color)
	// SetLinearGradientSource blends c0 at (x0, y0) to c1 at (x1, y1).
	SetLinearGradientSource(x0, y0, x1, y1 float64, c0, c1 Color)
	// SetRadialGradientSource blends c0 on the circle (cx0, cy0, r0)
	// to c1 on the circle (cx1, cy1, r1).
	SetRadialGradientSource(cx0, cy0, r0, cx1, cy1, r1 float64, c0, c1 Color)

	SetLineWidth(width float64)
	SetLineCap(c LineCap)
	SetLineJoin(j LineJoin)

	// Stroke paints the current path with the current source and
	// stroke settings, then clears it.
	Stroke() error
	// FillPreserve fills the current path with the current source,
	// following the current fill rule, and keeps it.
	FillPreserve() error
}

// Render draws img on c, scaling every coordinate and length by
// conf.Factor(img). Shapes are painted depth first, in document order.
// Rendering stops at the first error, which is an *IndexError
// for a dangling pen or brush reference.
func Render(c Canvas, img *Image, conf RenderConfig) error {
	r := renderer{canvas: c, img: img, factor: conf.Factor(img)}
	Logger().Debug("lison: render", "factor", r.factor, "pens", len(img.Pens),
		"brushes", len(img.Brushes), "shapes", len(img.Shapes))

	c.SetFillRule(FillEvenOdd)
	c.NewPath()
	return img.Walk(r.drawShape)
}

type renderer struct {
	canvas Canvas
	img    *Image
	factor float64

	current Point // in device space
}

func (r *renderer) scale(p Point) Point {
	return Point{X: p.X * r.factor, Y: p.Y * r.factor}
}

func (r *renderer) drawShape(s Shape) error {
	switch s := s.(type) {
	case Curve:
		r.plot(s.Data)
		pen, err := r.img.pen(s.Pen)
		if err != nil {
			return err
		}
		r.setPen(pen)
		return r.canvas.Stroke()
	case Region:
		for i, cd := range s.Data {
			if i > 0 {
				r.canvas.NewSubPath()
			}
			r.plot(cd)
			r.canvas.ClosePath()
		}
		if s.Brush != nil {
			brush, err := r.img.brush(*s.Brush)
			if err != nil {
				return err
			}
			r.setPattern(brush.Pattern)
			if err := r.canvas.FillPreserve(); err != nil {
				return err
			}
		}
		if s.Pen != nil {
			pen, err := r.img.pen(*s.Pen)
			if err != nil {
				return err
			}
			r.setPen(pen)
			return r.canvas.Stroke()
		}
		r.canvas.NewPath()
		return nil
	default:
		return fmt.Errorf("lison: unexpected shape %T", s)
	}
}

// plot adds cd to the current path, starting with a MoveTo.
// Quadratic segments are raised to cubic ones.
func (r *renderer) plot(cd CurveData) {
	r.current = r.scale(cd.Start)
	r.canvas.MoveTo(r.current.X, r.current.Y)
	for _, seg := range cd.Segments {
		switch seg := seg.(type) {
		case Line:
			p := r.scale(seg.Point2)
			r.canvas.LineTo(p.X, p.Y)
			r.current = p
		case QuadraticBezier:
			c1, c2, p := raiseQuadratic(r.current, r.scale(seg.Point2), r.scale(seg.Point3))
			r.canvas.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
			r.current = p
		case CubicBezier:
			c1, c2, p := r.scale(seg.Point2), r.scale(seg.Point3), r.scale(seg.Point4)
			r.canvas.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
			r.current = p
		}
	}
}

// raiseQuadratic returns the control points and end point of the cubic
// curve equivalent to the quadratic one (p1, p2, p3).
func raiseQuadratic(p1, p2, p3 Point) (c1, c2, end Point) {
	c1 = Point{X: p1.X + 2./3*(p2.X-p1.X), Y: p1.Y + 2./3*(p2.Y-p1.Y)}
	c2 = Point{X: p3.X + 2./3*(p2.X-p3.X), Y: p3.Y + 2./3*(p2.Y-p3.Y)}
	return c1, c2, p3
}

func (r *renderer) setPen(pen Pen) {
	r.setPattern(pen.Pattern)
	r.canvas.SetLineWidth(pen.Width * r.factor)
	r.canvas.SetLineCap(pen.Cap)
	r.canvas.SetLineJoin(pen.Join)
}

func (r *renderer) setPattern(p Pattern) {
	switch p := p.(type) {
	case Monochrome:
		r.canvas.SetSolidSource(p.Color)
	case LinearGradient:
		p1, p2 := r.scale(p.Point1), r.scale(p.Point2)
		r.canvas.SetLinearGradientSource(p1.X, p1.Y, p2.X, p2.Y, p.Color1, p.Color2)
	case RadialGradient:
		c1, c2 := r.scale(p.Center1), r.scale(p.Center2)
		r.canvas.SetRadialGradientSource(c1.X, c1.Y, p.Radius1*r.factor,
			c2.X, c2.Y, p.Radius2*r.factor, p.Color1, p.Color2)
	}
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NRGBA converts c to 8 bit components, clamping each one to [0, 1].
func (c Color) NRGBA() color.NRGBA {
	to8 := func(v float64) uint8 { return uint8(math.Round(clampUnit(v) * 0xff)) }
	return color.NRGBA{R: to8(c.Red), G: to8(c.Green), B: to8(c.Blue), A: to8(c.Alpha)}
}

// Lerp returns the color at t in [0, 1] between c and other.
func (c Color) Lerp(other Color, t float64) Color {
	mix := func(a, b float64) float64 { return a + (b-a)*t }
	return Color{
		Red:   mix(c.Red, other.Red),
		Green: mix(c.Green, other.Green),
		Blue:  mix(c.Blue, other.Blue),
		Alpha: mix(c.Alpha, other.Alpha),
	}
}
