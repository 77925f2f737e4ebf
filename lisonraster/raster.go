// Implements a raster backend to render lison images,
// by wrapping rasterx.
package lisonraster

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/benoitkugler/lison"
	"github.com/srwiley/rasterx"
	"github.com/srwiley/scanx"
	"golang.org/x/image/math/fixed"
)

var _ lison.Canvas = (*Renderer)(nil) // assert interface conformance

// miterLimit is expressed in line widths.
const miterLimit = 10

// Renderer paints on a rasterx.Scanner. The current path is recorded,
// then replayed on the filler or the dasher when painting, since
// rasterx needs the stroke options before the path is built.
type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance

	path     lison.Path
	fillRule lison.FillRule
	source   interface{} // color.Color or rasterx.ColorFunc

	lineWidth float64
	lineCap   lison.LineCap
	lineJoin  lison.LineJoin
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize cubic bezier curves.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{
		dasher:    rasterx.NewDasher(width, height, scanner),
		filler:    rasterx.NewFiller(width, height, scanner),
		source:    color.Black,
		lineWidth: 1,
	}
}

type options struct {
	scanner    func(img *image.RGBA) rasterx.Scanner
	background color.Color
}

// Option configures RenderToImage.
type Option func(*options)

// WithScanner replaces the default scanx.Scanner.
// The function is called with the destination image.
// Note that rasterx.ScannerGV ignores the fill rule and
// always uses the non-zero rule.
func WithScanner(fn func(img *image.RGBA) rasterx.Scanner) Option {
	return func(o *options) {
		o.scanner = fn
	}
}

// WithBackground fills the image with c before painting.
// The default background is transparent.
func WithBackground(c color.Color) Option {
	return func(o *options) {
		o.background = c
	}
}

// RenderToImage allocates an image with the dimensions required by conf
// and renders the document into it.
func RenderToImage(doc *lison.Image, conf lison.RenderConfig, opts ...Option) (*image.RGBA, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	w, h, err := conf.Dimensions(doc)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if o.background != nil {
		fillBackground(img, o.background)
	}

	var scanner rasterx.Scanner
	if o.scanner != nil {
		scanner = o.scanner(img)
	} else {
		scanner = scanx.NewScanner(scanx.NewImgSpanner(img), w, h)
	}
	lison.Logger().Debug("lisonraster: render", "width", w, "height", h)
	if err := lison.Render(NewRenderer(w, h, scanner), doc, conf); err != nil {
		return nil, err
	}
	return img, nil
}

func fillBackground(img *image.RGBA, c color.Color) {
	r, g, b, a := c.RGBA()
	px := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, px)
		}
	}
}

// EncodePNG renders the document and writes it as PNG to w.
func EncodePNG(w io.Writer, doc *lison.Image, conf lison.RenderConfig, opts ...Option) error {
	img, err := RenderToImage(doc, conf, opts...)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
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
	rd.source = rasterx.ApplyOpacity(opaque(c), alphaOf(c))
}

func (rd *Renderer) SetLinearGradientSource(x0, y0, x1, y1 float64, c0, c1 lison.Color) {
	grad := newGradient(c0, c1)
	grad.Points = [5]float64{x0, y0, x1, y1}
	rd.source = grad.GetColorFunction(1)
}

// SetRadialGradientSource approximates the two circles gradient:
// rasterx has no start radius, so the focus is the first center
// and the gradient circle the second one.
func (rd *Renderer) SetRadialGradientSource(cx0, cy0, r0, cx1, cy1, r1 float64, c0, c1 lison.Color) {
	grad := newGradient(c0, c1)
	grad.IsRadial = true
	grad.Points = [5]float64{cx1, cy1, cx0, cy0, r1}
	rd.source = grad.GetColorFunction(1)
}

func newGradient(c0, c1 lison.Color) rasterx.Gradient {
	return rasterx.Gradient{
		Stops: []rasterx.GradStop{
			{StopColor: opaque(c0), Offset: 0, Opacity: alphaOf(c0)},
			{StopColor: opaque(c1), Offset: 1, Opacity: alphaOf(c1)},
		},
		Matrix: rasterx.Identity,
		Spread: rasterx.PadSpread,
		Units:  rasterx.UserSpaceOnUse,
	}
}

func opaque(c lison.Color) color.NRGBA {
	out := c.NRGBA()
	out.A = 0xff
	return out
}

func alphaOf(c lison.Color) float64 { return float64(c.NRGBA().A) / 0xff }

func (rd *Renderer) SetLineWidth(width float64) { rd.lineWidth = width }

func (rd *Renderer) SetLineCap(c lison.LineCap) { rd.lineCap = c }

func (rd *Renderer) SetLineJoin(j lison.LineJoin) { rd.lineJoin = j }

var (
	joinToJoin = [...]rasterx.JoinMode{
		lison.JoinMiter: rasterx.Miter,
		lison.JoinRound: rasterx.Round,
		lison.JoinBevel: rasterx.Bevel,
	}

	capToFunc = [...]rasterx.CapFunc{
		lison.CapButt:   rasterx.ButtCap,
		lison.CapRound:  rasterx.RoundCap,
		lison.CapSquare: rasterx.SquareCap,
	}
)

// FillPreserve fills the current path, which is kept.
func (rd *Renderer) FillPreserve() error {
	rd.filler.Clear()
	rd.filler.SetWinding(rd.fillRule == lison.FillNonZero)
	rd.filler.SetColor(rd.source)
	ad := &adder{a: rd.filler}
	rd.path.Replay(ad)
	ad.flush()
	rd.filler.Draw()
	rd.filler.Clear()
	return nil
}

// Stroke strokes the current path, then clears it.
func (rd *Renderer) Stroke() error {
	rd.dasher.Clear()
	rd.dasher.SetStroke(
		toFixed(rd.lineWidth), toFixed(miterLimit), capToFunc[rd.lineCap],
		capToFunc[rd.lineCap], rasterx.FlatGap, joinToJoin[rd.lineJoin], nil, 0,
	)
	rd.dasher.SetWinding(true) // stroke outlines overlap
	rd.dasher.SetColor(rd.source)
	ad := &adder{a: rd.dasher}
	rd.path.Replay(ad)
	ad.flush()
	rd.dasher.Draw()
	rd.dasher.Clear()
	rd.path.Clear()
	return nil
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

// adder feeds a rasterx.Adder from path operations.
type adder struct {
	a       rasterx.Adder
	started bool
	first   lison.Point // start of the current sub-path
}

func (ad *adder) MoveTo(x, y float64) {
	if ad.started {
		ad.a.Stop(false)
	}
	ad.a.Start(rasterx.ToFixedP(x, y))
	ad.started, ad.first = true, lison.Point{X: x, Y: y}
}

// ensureStarted restarts at the beginning of the last sub-path,
// after a ClosePath.
func (ad *adder) ensureStarted() {
	if !ad.started {
		ad.a.Start(rasterx.ToFixedP(ad.first.X, ad.first.Y))
		ad.started = true
	}
}

func (ad *adder) LineTo(x, y float64) {
	ad.ensureStarted()
	ad.a.Line(rasterx.ToFixedP(x, y))
}

func (ad *adder) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	ad.ensureStarted()
	ad.a.CubeBezier(rasterx.ToFixedP(x1, y1), rasterx.ToFixedP(x2, y2), rasterx.ToFixedP(x3, y3))
}

func (ad *adder) ClosePath() {
	if ad.started {
		ad.a.Stop(true)
		ad.started = false
	}
}

// flush ends the last sub-path, which is open for curves.
func (ad *adder) flush() {
	if ad.started {
		ad.a.Stop(false)
		ad.started = false
	}
}
