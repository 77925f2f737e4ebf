// Implements a raster backend to render lison images,
// by wrapping a gg drawing context.
package lisongg

import (
	"image"
	"io"

	"github.com/benoitkugler/lison"
	"github.com/gogpu/gg"
)

var _ lison.Canvas = (*Canvas)(nil) // assert interface conformance

// Canvas adapts a *gg.Context, which already follows the
// path then paint model.
type Canvas struct {
	dc *gg.Context
}

// NewCanvas wraps dc. Its transform is used as is.
func NewCanvas(dc *gg.Context) *Canvas { return &Canvas{dc: dc} }

// Context returns the wrapped context.
func (c *Canvas) Context() *gg.Context { return c.dc }

type options struct {
	background *gg.RGBA
	context    []gg.ContextOption
}

// Option configures RenderToImage.
type Option func(*options)

// WithBackground fills the image with col before painting.
// The default background is transparent.
func WithBackground(col lison.Color) Option {
	return func(o *options) {
		bg := toRGBA(col)
		o.background = &bg
	}
}

// WithContextOptions forwards options to gg.NewContext.
func WithContextOptions(opts ...gg.ContextOption) Option {
	return func(o *options) {
		o.context = append(o.context, opts...)
	}
}

// RenderToImage allocates a context with the dimensions required by conf
// and renders the document into it.
func RenderToImage(doc *lison.Image, conf lison.RenderConfig, opts ...Option) (image.Image, error) {
	dc, err := render(doc, conf, opts)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// EncodePNG renders the document and writes it as PNG to w.
func EncodePNG(w io.Writer, doc *lison.Image, conf lison.RenderConfig, opts ...Option) error {
	dc, err := render(doc, conf, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

func render(doc *lison.Image, conf lison.RenderConfig, opts []Option) (*gg.Context, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	w, h, err := conf.Dimensions(doc)
	if err != nil {
		return nil, err
	}
	dc := gg.NewContext(w, h, o.context...)
	if o.background != nil {
		dc.ClearWithColor(*o.background)
	}
	lison.Logger().Debug("lisongg: render", "width", w, "height", h)
	if err := lison.Render(NewCanvas(dc), doc, conf); err != nil {
		dc.Close()
		return nil, err
	}
	// pending GPU shapes must reach the pixmap before it is read
	if err := dc.FlushGPU(); err != nil {
		dc.Close()
		return nil, err
	}
	return dc, nil
}

func toRGBA(c lison.Color) gg.RGBA {
	n := c.NRGBA()
	return gg.RGBA2(float64(n.R)/0xff, float64(n.G)/0xff, float64(n.B)/0xff, float64(n.A)/0xff)
}

func (c *Canvas) MoveTo(x, y float64) { c.dc.MoveTo(x, y) }

func (c *Canvas) LineTo(x, y float64) { c.dc.LineTo(x, y) }

func (c *Canvas) CubicTo(x1, y1, x2, y2, x3, y3 float64) { c.dc.CubicTo(x1, y1, x2, y2, x3, y3) }

func (c *Canvas) ClosePath() { c.dc.ClosePath() }

func (c *Canvas) NewSubPath() { c.dc.NewSubPath() }

func (c *Canvas) NewPath() { c.dc.ClearPath() }

func (c *Canvas) SetFillRule(rule lison.FillRule) {
	if rule == lison.FillEvenOdd {
		c.dc.SetFillRule(gg.FillRuleEvenOdd)
	} else {
		c.dc.SetFillRule(gg.FillRuleNonZero)
	}
}

// fill and stroke share the same brush in gg
func (c *Canvas) setBrush(b gg.Brush) {
	c.dc.SetFillBrush(b)
	c.dc.SetStrokeBrush(b)
}

func (c *Canvas) SetSolidSource(col lison.Color) { c.setBrush(gg.Solid(toRGBA(col))) }

func (c *Canvas) SetLinearGradientSource(x0, y0, x1, y1 float64, c0, c1 lison.Color) {
	c.setBrush(gg.NewLinearGradientBrush(x0, y0, x1, y1).
		AddColorStop(0, toRGBA(c0)).
		AddColorStop(1, toRGBA(c1)))
}

// SetRadialGradientSource maps the first circle to the focus and
// the start radius, the second one to the gradient circle.
func (c *Canvas) SetRadialGradientSource(cx0, cy0, r0, cx1, cy1, r1 float64, c0, c1 lison.Color) {
	c.setBrush(gg.NewRadialGradientBrush(cx1, cy1, r0, r1).
		SetFocus(cx0, cy0).
		AddColorStop(0, toRGBA(c0)).
		AddColorStop(1, toRGBA(c1)))
}

func (c *Canvas) SetLineWidth(width float64) { c.dc.SetLineWidth(width) }

var (
	capToCap = [...]gg.LineCap{
		lison.CapButt:   gg.LineCapButt,
		lison.CapRound:  gg.LineCapRound,
		lison.CapSquare: gg.LineCapSquare,
	}
	joinToJoin = [...]gg.LineJoin{
		lison.JoinMiter: gg.LineJoinMiter,
		lison.JoinRound: gg.LineJoinRound,
		lison.JoinBevel: gg.LineJoinBevel,
	}
)

func (c *Canvas) SetLineCap(lc lison.LineCap) { c.dc.SetLineCap(capToCap[lc]) }

func (c *Canvas) SetLineJoin(j lison.LineJoin) { c.dc.SetLineJoin(joinToJoin[j]) }

func (c *Canvas) Stroke() error { return c.dc.Stroke() }

func (c *Canvas) FillPreserve() error { return c.dc.FillPreserve() }
