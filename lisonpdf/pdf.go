// Implements a PDF backend to render lison images,
// by wrapping github.com/jung-kurt/gofpdf.
package lisonpdf

import (
	"io"
	"math"

	"github.com/benoitkugler/lison"
	"github.com/jung-kurt/gofpdf"
	"honnef.co/go/curve"
)

var _ lison.Canvas = (*Renderer)(nil) // assert interface conformance

// pointsPerInch is the resolution of PDF user space.
const pointsPerInch = 72

// flatness is the tolerance, in points, used to flatten clipping outlines.
const flatness = 0.1

// Renderer writes on the current page of a PDF document,
// in points. The current path is recorded and written
// once for each paint operation.
type Renderer struct {
	pdf  *gofpdf.Fpdf
	path lison.Path

	fillRule lison.FillRule
	source   source
}

// source is the current color source, in user space.
type source struct {
	pattern lison.Pattern
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) *Renderer {
	return &Renderer{pdf: pdf, source: source{pattern: lison.Monochrome{Color: lison.RGB(0, 0, 0)}}}
}

// NewPDF returns a one page document holding the rendering of doc.
// The page is measured in points: the resolution of conf is ignored
// and only its scale is used.
func NewPDF(doc *lison.Image, conf lison.RenderConfig) (*gofpdf.Fpdf, error) {
	conf.Resolution = pointsPerInch
	if _, _, err := conf.Dimensions(doc); err != nil {
		return nil, err
	}
	factor := conf.Factor(doc)
	size := gofpdf.SizeType{Wd: doc.Width * factor, Ht: doc.Height * factor}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: size})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if doc.Editor != nil {
		pdf.SetCreator(*doc.Editor, true)
	}
	pdf.AddPageFormat("P", size)

	lison.Logger().Debug("lisonpdf: render", "width", size.Wd, "height", size.Ht)
	if err := lison.Render(NewRenderer(pdf), doc, conf); err != nil {
		return nil, err
	}
	return pdf, pdf.Error()
}

// RenderToPDF writes a one page PDF document with the rendering of doc.
// See NewPDF for the page dimensions.
func RenderToPDF(w io.Writer, doc *lison.Image, conf lison.RenderConfig) error {
	pdf, err := NewPDF(doc, conf)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func (rd *Renderer) MoveTo(x, y float64) { rd.path.MoveTo(x, y) }

func (rd *Renderer) LineTo(x, y float64) { rd.path.LineTo(x, y) }

func (rd *Renderer) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	rd.path.CubicTo(x1, y1, x2, y2, x3, y3)
}

func (rd *Renderer) ClosePath() { rd.path.ClosePath() }

// NewSubPath is implied by the next MoveTo.
func (rd *Renderer) NewSubPath() {}

func (rd *Renderer) NewPath() { rd.path.Clear() }

func (rd *Renderer) SetFillRule(rule lison.FillRule) { rd.fillRule = rule }

func (rd *Renderer) SetSolidSource(c lison.Color) {
	rd.source = source{pattern: lison.Monochrome{Color: c}}
}

func (rd *Renderer) SetLinearGradientSource(x0, y0, x1, y1 float64, c0, c1 lison.Color) {
	rd.source = source{pattern: lison.LinearGradient{
		Point1: lison.Point{X: x0, Y: y0}, Color1: c0,
		Point2: lison.Point{X: x1, Y: y1}, Color2: c1,
	}}
}

func (rd *Renderer) SetRadialGradientSource(cx0, cy0, r0, cx1, cy1, r1 float64, c0, c1 lison.Color) {
	rd.source = source{pattern: lison.RadialGradient{
		Center1: lison.Point{X: cx0, Y: cy0}, Radius1: r0, Color1: c0,
		Center2: lison.Point{X: cx1, Y: cy1}, Radius2: r1, Color2: c1,
	}}
}

func (rd *Renderer) SetLineWidth(width float64) { rd.pdf.SetLineWidth(width) }

// gofpdf uses the same names for caps and joins
func (rd *Renderer) SetLineCap(c lison.LineCap) { rd.pdf.SetLineCapStyle(c.String()) }

func (rd *Renderer) SetLineJoin(j lison.LineJoin) { rd.pdf.SetLineJoinStyle(j.String()) }

// uniform returns the color used when the source can't be painted
// natively: the average of the gradient stops.
func (s source) uniform() (lison.Color, bool) {
	switch p := s.pattern.(type) {
	case lison.Monochrome:
		return p.Color, true
	case lison.LinearGradient:
		return p.Color1.Lerp(p.Color2, 0.5), false
	case lison.RadialGradient:
		return p.Color1.Lerp(p.Color2, 0.5), false
	default:
		return lison.RGB(0, 0, 0), true
	}
}

func rgb(c lison.Color) (r, g, b int) {
	n := c.NRGBA()
	return int(n.R), int(n.G), int(n.B)
}

func alpha(c lison.Color) float64 { return float64(c.NRGBA().A) / 0xff }

// FillPreserve fills the current path, which is kept.
func (rd *Renderer) FillPreserve() error {
	if rd.source.isGradient() && rd.path.SubPaths() == 1 {
		rd.fillGradient()
		return rd.pdf.Error()
	}
	c, ok := rd.source.uniform()
	if !ok {
		lison.Logger().Warn("lisonpdf: gradient fill of several sub-paths replaced by a plain color",
			"sub-paths", rd.path.SubPaths())
	}
	rd.pdf.SetFillColor(rgb(c))
	rd.pdf.SetAlpha(alpha(c), "")
	rd.path.Replay(pather{rd.pdf})
	if rd.fillRule == lison.FillEvenOdd {
		rd.pdf.DrawPath("F*")
	} else {
		rd.pdf.DrawPath("F")
	}
	return rd.pdf.Error()
}

// Stroke strokes the current path, then clears it.
func (rd *Renderer) Stroke() error {
	c, ok := rd.source.uniform()
	if !ok {
		lison.Logger().Warn("lisonpdf: gradient stroke replaced by a plain color")
	}
	rd.pdf.SetDrawColor(rgb(c))
	rd.pdf.SetAlpha(alpha(c), "")
	rd.path.Replay(pather{rd.pdf})
	rd.pdf.DrawPath("D")
	rd.path.Clear()
	return rd.pdf.Error()
}

func (s source) isGradient() bool {
	_, plain := s.uniform()
	return !plain
}

// fillGradient clips to the flattened current path, then paints
// the gradient over the whole page.
// gofpdf gradients are expressed in a unit square, whose origin is
// its lower left corner: we use a square covering the page.
func (rd *Renderer) fillGradient() {
	pageW, pageH := rd.pdf.GetPageSize()
	side := math.Max(pageW, pageH)
	rel := func(p lison.Point) (float64, float64) { return p.X / side, 1 - p.Y/side }

	rd.pdf.ClipPolygon(rd.outline(), false)
	switch p := rd.source.pattern.(type) {
	case lison.LinearGradient:
		x1, y1 := rel(p.Point1)
		x2, y2 := rel(p.Point2)
		r1, g1, b1 := rgb(p.Color1)
		r2, g2, b2 := rgb(p.Color2)
		rd.pdf.SetAlpha((alpha(p.Color1)+alpha(p.Color2))/2, "")
		rd.pdf.LinearGradient(0, 0, side, side, r1, g1, b1, r2, g2, b2, x1, y1, x2, y2)
	case lison.RadialGradient:
		// PDF radial shadings start from a point: the start radius is dropped
		x1, y1 := rel(p.Center1)
		x2, y2 := rel(p.Center2)
		r1, g1, b1 := rgb(p.Color1)
		r2, g2, b2 := rgb(p.Color2)
		rd.pdf.SetAlpha((alpha(p.Color1)+alpha(p.Color2))/2, "")
		rd.pdf.RadialGradient(0, 0, side, side, r1, g1, b1, r2, g2, b2, x1, y1, x2, y2, p.Radius2/side)
	}
	rd.pdf.ClipEnd()
}

// outline flattens the current path to a polygon.
func (rd *Renderer) outline() []gofpdf.PointType {
	var bez curve.BezPath
	rd.path.Replay(bezPather{&bez})
	var points []gofpdf.PointType
	for el := range bez.Flatten(flatness) {
		switch el.Kind {
		case curve.MoveToKind, curve.LineToKind:
			points = append(points, gofpdf.PointType{X: el.P0.X, Y: el.P0.Y})
		}
	}
	return points
}

// pather writes path operations to the page
type pather struct {
	pdf *gofpdf.Fpdf
}

func (p pather) MoveTo(x, y float64) { p.pdf.MoveTo(x, y) }

func (p pather) LineTo(x, y float64) { p.pdf.LineTo(x, y) }

func (p pather) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	p.pdf.CurveBezierCubicTo(x1, y1, x2, y2, x3, y3)
}

func (p pather) ClosePath() { p.pdf.ClosePath() }

// bezPather builds a curve.BezPath
type bezPather struct {
	path *curve.BezPath
}

func (b bezPather) MoveTo(x, y float64) { b.path.MoveTo(curve.Point{X: x, Y: y}) }

func (b bezPather) LineTo(x, y float64) { b.path.LineTo(curve.Point{X: x, Y: y}) }

func (b bezPather) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	b.path.CubicTo(curve.Point{X: x1, Y: y1}, curve.Point{X: x2, Y: y2}, curve.Point{X: x3, Y: y3})
}

func (b bezPather) ClosePath() { b.path.ClosePath() }
