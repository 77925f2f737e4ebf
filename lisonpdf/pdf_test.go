package lisonpdf

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/lison"
)

func square(x, y, size float64) lison.CurveData {
	return lison.CurveData{Start: lison.Point{X: x, Y: y}, Segments: []lison.Segment{
		lison.Line{Point2: lison.Point{X: x + size, Y: y}},
		lison.Line{Point2: lison.Point{X: x + size, Y: y + size}},
		lison.Line{Point2: lison.Point{X: x, Y: y + size}},
	}}
}

// output renders doc without compression, to inspect the content stream.
func output(t *testing.T, doc *lison.Image) string {
	t.Helper()
	pdf, err := NewPDF(doc, lison.DefaultRenderConfig())
	if err != nil {
		t.Fatal(err)
	}
	pdf.SetCompression(false)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestPlainRegion(t *testing.T) {
	doc := &lison.Image{
		Width: 72, Height: 36, UnitPerInch: 72,
		Pens:    []lison.Pen{{Pattern: lison.Monochrome{Color: lison.RGB(0, 0, 1)}, Width: 2, Cap: lison.CapRound, Join: lison.JoinBevel}},
		Brushes: []lison.Brush{{Pattern: lison.Monochrome{Color: lison.RGBA(1, 0, 0, 0.5)}}},
		Shapes: []lison.Shape{
			lison.Region{Pen: lison.Ref(0), Brush: lison.Ref(0), Data: []lison.CurveData{square(0, 0, 30), square(10, 10, 10)}},
		},
	}
	out := output(t, doc)
	if !strings.HasPrefix(out, "%PDF-") {
		t.Fatalf("unexpected output %q", out[:10])
	}
	for _, op := range []string{"f*", "\nS", "/MediaBox [0 0 72.00 36.00]", "1 J", "2 j"} {
		if !strings.Contains(out, op) {
			t.Errorf("missing %q in content", op)
		}
	}
}

func TestGradientFill(t *testing.T) {
	doc := &lison.Image{
		Width: 100, Height: 100, UnitPerInch: 72,
		Brushes: []lison.Brush{
			{Pattern: lison.LinearGradient{
				Point1: lison.Point{X: 0, Y: 0}, Color1: lison.RGB(1, 0, 0),
				Point2: lison.Point{X: 100, Y: 0}, Color2: lison.RGB(0, 0, 1),
			}},
			{Pattern: lison.RadialGradient{
				Center1: lison.Point{X: 50, Y: 50}, Radius1: 0, Color1: lison.RGB(1, 1, 1),
				Center2: lison.Point{X: 50, Y: 50}, Radius2: 50, Color2: lison.RGB(0, 0, 0),
			}},
		},
		Shapes: []lison.Shape{
			lison.Region{Brush: lison.Ref(0), Data: []lison.CurveData{{
				Start: lison.Point{X: 0, Y: 0},
				Segments: []lison.Segment{
					lison.QuadraticBezier{Point2: lison.Point{X: 50, Y: 100}, Point3: lison.Point{X: 100, Y: 0}},
				},
			}}},
			lison.Region{Brush: lison.Ref(1), Data: []lison.CurveData{square(25, 25, 50)}},
		},
	}
	out := output(t, doc)
	for _, op := range []string{"/ShadingType 2", "/ShadingType 3", "W n"} {
		if !strings.Contains(out, op) {
			t.Errorf("missing %q in content", op)
		}
	}
}

func TestGradientFallback(t *testing.T) {
	var logs bytes.Buffer
	lison.SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer lison.SetLogger(nil)

	grad := lison.LinearGradient{
		Point1: lison.Point{X: 0, Y: 0}, Color1: lison.RGB(1, 0, 0),
		Point2: lison.Point{X: 10, Y: 0}, Color2: lison.RGB(0, 0, 1),
	}
	doc := &lison.Image{
		Width: 40, Height: 40, UnitPerInch: 72,
		Pens:    []lison.Pen{{Pattern: grad, Width: 1}},
		Brushes: []lison.Brush{{Pattern: grad}},
		Shapes: []lison.Shape{
			lison.Region{Brush: lison.Ref(0), Data: []lison.CurveData{square(0, 0, 30), square(10, 10, 10)}},
			lison.Curve{Pen: 0, Data: square(0, 0, 5)},
		},
	}
	out := output(t, doc)
	if strings.Contains(out, "/ShadingType") {
		t.Error("gradient should be replaced by a plain color")
	}
	// average of red and blue
	if !strings.Contains(out, "0.502 0.000 0.502 rg") {
		t.Error("missing average fill color")
	}
	if got := strings.Count(logs.String(), "level=WARN"); got != 2 {
		t.Errorf("expected 2 warnings, got %d:\n%s", got, logs.String())
	}
	if !strings.Contains(logs.String(), "lison: render") {
		t.Error("missing debug log")
	}
}

func TestRenderSample(t *testing.T) {
	doc, err := lison.ReadImage(filepath.Join("..", "testdata", "sample.json"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := RenderToPDF(&buf, doc, lison.RenderConfig{Scale: 2}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("invalid PDF output")
	}
}

func TestErrors(t *testing.T) {
	doc := &lison.Image{Width: 10, Height: 10, UnitPerInch: 72, Shapes: []lison.Shape{
		lison.Region{Pen: lison.Ref(1), Data: []lison.CurveData{square(0, 0, 5)}},
	}}
	var ie *lison.IndexError
	if err := RenderToPDF(new(bytes.Buffer), doc, lison.DefaultRenderConfig()); !errors.As(err, &ie) {
		t.Errorf("expected index error, got %v", err)
	}
	doc.Height = -1
	if err := RenderToPDF(new(bytes.Buffer), doc, lison.DefaultRenderConfig()); !errors.Is(err, lison.ErrBadDimension) {
		t.Errorf("expected dimension error, got %v", err)
	}
}
