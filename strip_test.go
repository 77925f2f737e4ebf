package lison

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestStrip(t *testing.T) {
	img, err := ReadImage("testdata/sample.json")
	if err != nil {
		t.Fatal(err)
	}
	stripped := Strip(img)
	if stripped.Editor != nil {
		t.Errorf("editor should be cleared, got %s", *stripped.Editor)
	}
	if len(stripped.Shapes) != 3 {
		t.Fatalf("expected 3 shapes, got %d", len(stripped.Shapes))
	}
	if _, ok := stripped.Shapes[0].(Curve); !ok {
		t.Errorf("unexpected first shape %T", stripped.Shapes[0])
	}
	if reg, ok := stripped.Shapes[1].(Region); !ok || *reg.Brush != 1 {
		t.Errorf("unexpected second shape %v", stripped.Shapes[1])
	}
	if reg, ok := stripped.Shapes[2].(Region); !ok || *reg.Brush != 0 {
		t.Errorf("unexpected third shape %v", stripped.Shapes[2])
	}
	if len(stripped.Pens) != 2 || len(stripped.Brushes) != 2 {
		t.Errorf("pens and brushes should be kept")
	}

	// the input is left untouched
	if img.Editor == nil || len(img.Shapes) != 2 {
		t.Error("Strip modified its input")
	}

	b, err := stripped.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(b, []byte(`"group"`)) || bytes.Contains(b, []byte(`"editor"`)) {
		t.Errorf("unexpected output %s", b)
	}
}

func TestStripFlattenOrder(t *testing.T) {
	leaf := func(pen int) Shape { return Curve{Pen: pen, Data: CurveData{Start: Point{}}} }
	img := &Image{Shapes: []Shape{
		leaf(0),
		Group{Content: []Shape{
			Group{Content: []Shape{leaf(1), Group{}}},
			leaf(2),
		}},
		Group{},
		leaf(3),
	}}
	stripped := Strip(img)
	if len(stripped.Shapes) != 4 {
		t.Fatalf("expected 4 shapes, got %d", len(stripped.Shapes))
	}
	for i, s := range stripped.Shapes {
		if c := s.(Curve); c.Pen != i {
			t.Errorf("shape %d: unexpected pen %d", i, c.Pen)
		}
	}

	if s := Strip(&Image{Shapes: []Shape{Group{}}}); s.Shapes != nil {
		t.Errorf("expected no shapes, got %v", s.Shapes)
	}
}

func TestDimensions(t *testing.T) {
	for _, test := range []struct {
		width, height, upi float64
		conf               RenderConfig
		w, h               int
	}{
		{100, 50, 96, DefaultRenderConfig(), 100, 50},
		{100, 50, 72, RenderConfig{Resolution: 96, Scale: 2}, 267, 133},
		{100, 50, 72, RenderConfig{Resolution: 72, Scale: 0.5}, 50, 25},
		{0.4, 10, 96, RenderConfig{Resolution: 96, Scale: 2}, 1, 20},
	} {
		img := &Image{Width: test.width, Height: test.height, UnitPerInch: test.upi}
		w, h, err := test.conf.Dimensions(img)
		if err != nil {
			t.Fatal(err)
		}
		if w != test.w || h != test.h {
			t.Errorf("expected %dx%d, got %dx%d", test.w, test.h, w, h)
		}
	}
}

func TestBadDimensions(t *testing.T) {
	for _, img := range []*Image{
		{Width: 0, Height: 10, UnitPerInch: 96},
		{Width: 0.4, Height: 10, UnitPerInch: 96},
		{Width: 10, Height: -10, UnitPerInch: 96},
		{Width: 10, Height: 1e10, UnitPerInch: 96},
		{Width: 10, Height: 10, UnitPerInch: 0},
		{Width: math.NaN(), Height: 10, UnitPerInch: 96},
	} {
		if _, _, err := DefaultRenderConfig().Dimensions(img); !errors.Is(err, ErrBadDimension) {
			t.Errorf("%v: expected bad dimension, got %v", img, err)
		}
	}
}

func TestBounds(t *testing.T) {
	img := &Image{Shapes: []Shape{
		Curve{Data: CurveData{Start: Point{10, 10}, Segments: []Segment{
			QuadraticBezier{Point{50, 90}, Point{90, 10}},
		}}},
		Group{Content: []Shape{
			Region{Data: []CurveData{{Start: Point{-5, 20}}}},
		}},
	}}
	bbox, ok := img.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	want := Rect{X0: -5, Y0: 10, X1: 90, Y1: 50}
	for _, v := range [][2]float64{
		{bbox.X0, want.X0}, {bbox.Y0, want.Y0}, {bbox.X1, want.X1}, {bbox.Y1, want.Y1},
	} {
		if math.Abs(v[0]-v[1]) > 1e-9 {
			t.Errorf("expected %v, got %v", want, bbox)
			break
		}
	}
	if math.Abs(bbox.Width()-95) > 1e-9 || math.Abs(bbox.Height()-40) > 1e-9 {
		t.Errorf("unexpected size %v %v", bbox.Width(), bbox.Height())
	}

	if _, ok := (&Image{Shapes: []Shape{Group{}}}).Bounds(); ok {
		t.Error("expected no bounds for an empty image")
	}
}
