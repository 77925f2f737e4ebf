package lisonraster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/lison"
	"github.com/srwiley/rasterx"
	"github.com/srwiley/scanx"
)

func square(x, y, size float64) lison.CurveData {
	return lison.CurveData{Start: lison.Point{X: x, Y: y}, Segments: []lison.Segment{
		lison.Line{Point2: lison.Point{X: x + size, Y: y}},
		lison.Line{Point2: lison.Point{X: x + size, Y: y + size}},
		lison.Line{Point2: lison.Point{X: x, Y: y + size}},
	}}
}

func newDoc(pattern lison.Pattern, shapes ...lison.Shape) *lison.Image {
	return &lison.Image{
		Width: 20, Height: 20, UnitPerInch: 96,
		Pens:    []lison.Pen{{Pattern: pattern, Width: 4, Cap: lison.CapButt, Join: lison.JoinMiter}},
		Brushes: []lison.Brush{{Pattern: pattern}},
		Shapes:  shapes,
	}
}

func rgbaAt(img *image.RGBA, x, y int) color.RGBA { return img.RGBAAt(x, y) }

func TestFillEvenOdd(t *testing.T) {
	doc := newDoc(lison.Monochrome{Color: lison.RGB(1, 0, 0)},
		lison.Region{Brush: lison.Ref(0), Data: []lison.CurveData{square(0, 0, 20), square(6, 6, 8)}},
	)
	img, err := RenderToImage(doc, lison.DefaultRenderConfig())
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Fatalf("unexpected size %v", b)
	}
	if c := rgbaAt(img, 2, 2); c != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("expected red, got %v", c)
	}
	// the inner square is a hole
	if c := rgbaAt(img, 10, 10); c.A != 0 {
		t.Errorf("expected transparent, got %v", c)
	}
}

func TestFillRule(t *testing.T) {
	for _, test := range []struct {
		rule lison.FillRule
		hole bool
	}{
		{lison.FillEvenOdd, true},
		{lison.FillNonZero, false},
	} {
		img := image.NewRGBA(image.Rect(0, 0, 20, 20))
		rd := NewRenderer(20, 20, scanx.NewScanner(scanx.NewImgSpanner(img), 20, 20))
		rd.SetFillRule(test.rule)
		rd.SetSolidSource(lison.RGB(0, 0, 1))
		// both squares share the same orientation
		for _, cd := range []lison.CurveData{square(0, 0, 20), square(6, 6, 8)} {
			rd.MoveTo(cd.Start.X, cd.Start.Y)
			for _, seg := range cd.Segments {
				p := seg.(lison.Line).Point2
				rd.LineTo(p.X, p.Y)
			}
			rd.ClosePath()
		}
		if err := rd.FillPreserve(); err != nil {
			t.Fatal(err)
		}
		if c := rgbaAt(img, 2, 2); c != (color.RGBA{B: 0xff, A: 0xff}) {
			t.Errorf("rule %d: expected blue, got %v", test.rule, c)
		}
		if c := rgbaAt(img, 10, 10); (c.A == 0) != test.hole {
			t.Errorf("rule %d: unexpected color %v in the inner square", test.rule, c)
		}
	}
}

func TestStroke(t *testing.T) {
	doc := newDoc(lison.Monochrome{Color: lison.RGB(0, 0, 0)},
		lison.Curve{Pen: 0, Data: lison.CurveData{
			Start:    lison.Point{X: 0, Y: 10},
			Segments: []lison.Segment{lison.QuadraticBezier{Point2: lison.Point{X: 10, Y: 10}, Point3: lison.Point{X: 20, Y: 10}}},
		}},
	)
	img, err := RenderToImage(doc, lison.DefaultRenderConfig(), WithBackground(color.White))
	if err != nil {
		t.Fatal(err)
	}
	if c := rgbaAt(img, 10, 9); c != (color.RGBA{A: 0xff}) {
		t.Errorf("expected black, got %v", c)
	}
	if c := rgbaAt(img, 10, 2); c != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Errorf("expected white background, got %v", c)
	}
}

func TestLinearGradient(t *testing.T) {
	grad := lison.LinearGradient{
		Point1: lison.Point{X: 0, Y: 0}, Color1: lison.RGB(1, 0, 0),
		Point2: lison.Point{X: 20, Y: 0}, Color2: lison.RGB(0, 0, 1),
	}
	doc := newDoc(grad, lison.Region{Brush: lison.Ref(0), Data: []lison.CurveData{square(0, 0, 20)}})
	img, err := RenderToImage(doc, lison.RenderConfig{Resolution: 96, Scale: 2})
	if err != nil {
		t.Fatal(err)
	}
	left, right := rgbaAt(img, 2, 20), rgbaAt(img, 37, 20)
	if left.R <= left.B || right.B <= right.R {
		t.Errorf("unexpected gradient colors %v %v", left, right)
	}
}

func TestRadialGradient(t *testing.T) {
	grad := lison.RadialGradient{
		Center1: lison.Point{X: 10, Y: 10}, Radius1: 0, Color1: lison.RGB(1, 1, 1),
		Center2: lison.Point{X: 10, Y: 10}, Radius2: 10, Color2: lison.RGB(0, 0, 0),
	}
	doc := newDoc(grad, lison.Region{Brush: lison.Ref(0), Data: []lison.CurveData{square(0, 0, 20)}})
	img, err := RenderToImage(doc, lison.DefaultRenderConfig())
	if err != nil {
		t.Fatal(err)
	}
	center, border := rgbaAt(img, 10, 10), rgbaAt(img, 1, 10)
	if center.R <= border.R {
		t.Errorf("center should be lighter: %v %v", center, border)
	}
}

func TestCustomScanner(t *testing.T) {
	called := false
	doc := newDoc(lison.Monochrome{Color: lison.RGB(0, 1, 0)},
		lison.Region{Brush: lison.Ref(0), Data: []lison.CurveData{square(0, 0, 20)}})
	img, err := RenderToImage(doc, lison.DefaultRenderConfig(), WithScanner(func(img *image.RGBA) rasterx.Scanner {
		called = true
		return rasterx.NewScannerGV(img.Bounds().Dx(), img.Bounds().Dy(), img, img.Bounds())
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("custom scanner not used")
	}
	if c := rgbaAt(img, 10, 10); c != (color.RGBA{G: 0xff, A: 0xff}) {
		t.Errorf("expected green, got %v", c)
	}
}

func TestErrors(t *testing.T) {
	doc := newDoc(lison.Monochrome{Color: lison.RGB(0, 0, 0)},
		lison.Region{Brush: lison.Ref(4), Data: []lison.CurveData{square(0, 0, 20)}})
	var ie *lison.IndexError
	if _, err := RenderToImage(doc, lison.DefaultRenderConfig()); !errors.As(err, &ie) {
		t.Errorf("expected index error, got %v", err)
	}

	doc.Width = 0
	if _, err := RenderToImage(doc, lison.DefaultRenderConfig()); !errors.Is(err, lison.ErrBadDimension) {
		t.Errorf("expected dimension error, got %v", err)
	}
}

func TestEncodeSample(t *testing.T) {
	doc, err := lison.ReadImage(filepath.Join("..", "testdata", "sample.json"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := EncodePNG(&buf, doc, lison.DefaultRenderConfig()); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	// 100x50 units at 72 units per inch
	if b := img.Bounds(); b.Dx() != 133 || b.Dy() != 67 {
		t.Errorf("unexpected size %v", b)
	}
	if err := os.WriteFile(filepath.Join(t.TempDir(), "sample.png"), buf.Bytes(), os.ModePerm); err != nil {
		t.Fatal(err)
	}
}
