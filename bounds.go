package lison

import "honnef.co/go/curve"

// Rect is an axis aligned rectangle, in document units.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

func toCurvePoint(p Point) curve.Point { return curve.Point{X: p.X, Y: p.Y} }

// bezPath converts cd to a curve.BezPath, closing it if required.
func (cd CurveData) bezPath(closed bool) curve.BezPath {
	var path curve.BezPath
	path.MoveTo(toCurvePoint(cd.Start))
	for _, seg := range cd.Segments {
		switch seg := seg.(type) {
		case Line:
			path.LineTo(toCurvePoint(seg.Point2))
		case QuadraticBezier:
			path.QuadTo(toCurvePoint(seg.Point2), toCurvePoint(seg.Point3))
		case CubicBezier:
			path.CubicTo(toCurvePoint(seg.Point2), toCurvePoint(seg.Point3), toCurvePoint(seg.Point4))
		}
	}
	if closed {
		path.ClosePath()
	}
	return path
}

// boundingBox returns the tight bounding box of the curve geometry.
// A curve without segments is reduced to its start point.
func (cd CurveData) boundingBox(closed bool) curve.Rect {
	if len(cd.Segments) == 0 {
		pt := toCurvePoint(cd.Start)
		return curve.NewRectFromPoints(pt, pt)
	}
	return cd.bezPath(closed).BoundingBox()
}

// Bounds returns the bounding box of the geometry of every curve
// of img, in document units. Stroke widths are not taken into account.
// The boolean is false when img has no geometry.
func (img *Image) Bounds() (Rect, bool) {
	var (
		bbox  curve.Rect
		found bool
	)
	add := func(r curve.Rect) {
		if !found {
			bbox, found = r, true
		} else {
			bbox = bbox.Union(r)
		}
	}
	_ = img.Walk(func(s Shape) error {
		switch s := s.(type) {
		case Curve:
			add(s.Data.boundingBox(false))
		case Region:
			for _, cd := range s.Data {
				add(cd.boundingBox(true))
			}
		}
		return nil
	})
	if !found {
		return Rect{}, false
	}
	return Rect{X0: bbox.X0, Y0: bbox.Y0, X1: bbox.X1, Y1: bbox.Y1}, true
}
