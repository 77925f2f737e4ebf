package lison

// Segment continues a curve from its current point.
// It is one of Line, QuadraticBezier or CubicBezier, encoded as
// a tagged array: ["L", p2], ["Q", p2, p3] or ["C", p2, p3, p4].
type Segment interface {
	value() interface{}
	// end returns the point the segment ends at
	end() Point
}

var segmentTags = []string{"L", "Q", "C"}

// Line is a straight segment to Point2.
type Line struct {
	Point2 Point
}

// QuadraticBezier has one control point, Point2, and ends at Point3.
type QuadraticBezier struct {
	Point2, Point3 Point
}

// CubicBezier has two control points, Point2 and Point3, and ends at Point4.
type CubicBezier struct {
	Point2, Point3, Point4 Point
}

func (s Line) end() Point            { return s.Point2 }
func (s QuadraticBezier) end() Point { return s.Point3 }
func (s CubicBezier) end() Point     { return s.Point4 }

func (s Line) value() interface{} { return []interface{}{"L", s.Point2.value()} }

func (s QuadraticBezier) value() interface{} {
	return []interface{}{"Q", s.Point2.value(), s.Point3.value()}
}

func (s CubicBezier) value() interface{} {
	return []interface{}{"C", s.Point2.value(), s.Point3.value(), s.Point4.value()}
}

// decodeSegment reads the tag, then exactly the number of points it requires.
func decodeSegment(v interface{}, path string) (Segment, error) {
	list, err := asArray(v, path)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, arityErr(path, "empty segment")
	}
	tag, err := asString(list[0], index(path, 0))
	if err != nil {
		return nil, err
	}
	var want int
	switch tag {
	case "L":
		want = 1
	case "Q":
		want = 2
	case "C":
		want = 3
	default:
		return nil, &DecodeError{Path: index(path, 0), Err: &UnknownVariantError{Value: tag, Allowed: segmentTags}}
	}
	if got := len(list) - 1; got != want {
		return nil, arityErr(path, "segment %q expects %d points, got %d", tag, want, got)
	}
	var pts [3]Point
	for i := 0; i < want; i++ {
		pts[i], err = decodePoint(list[i+1], index(path, i+1))
		if err != nil {
			return nil, err
		}
	}
	switch tag {
	case "L":
		return Line{Point2: pts[0]}, nil
	case "Q":
		return QuadraticBezier{Point2: pts[0], Point3: pts[1]}, nil
	default:
		return CubicBezier{Point2: pts[0], Point3: pts[1], Point4: pts[2]}, nil
	}
}

// MarshalSegment returns the JSON encoding of s.
func MarshalSegment(s Segment) ([]byte, error) { return marshalValue(s.value()) }

// UnmarshalSegment strictly decodes a JSON segment.
func UnmarshalSegment(data []byte) (s Segment, err error) {
	err = unmarshalWith(data, func(v interface{}) error {
		s, err = decodeSegment(v, "")
		return err
	})
	return s, err
}

// CurveData is a start point followed by segments, encoded as
// the flat array [start, segment1, segment2, ...].
// A curve without segments is a single point.
type CurveData struct {
	Start    Point
	Segments []Segment
}

// End returns the last point of the curve.
func (c CurveData) End() Point {
	if len(c.Segments) == 0 {
		return c.Start
	}
	return c.Segments[len(c.Segments)-1].end()
}

// decodeCurveData uses the position only: the first element is
// the start point, every following one a segment.
func decodeCurveData(v interface{}, path string) (CurveData, error) {
	list, err := asArray(v, path)
	if err != nil {
		return CurveData{}, err
	}
	if len(list) == 0 {
		return CurveData{}, arityErr(path, "curve data requires a start point")
	}
	start, err := decodePoint(list[0], index(path, 0))
	if err != nil {
		return CurveData{}, err
	}
	cd := CurveData{Start: start}
	for i := 1; i < len(list); i++ {
		seg, err := decodeSegment(list[i], index(path, i))
		if err != nil {
			return CurveData{}, err
		}
		cd.Segments = append(cd.Segments, seg)
	}
	return cd, nil
}

func (c CurveData) value() interface{} {
	out := make([]interface{}, 0, len(c.Segments)+1)
	out = append(out, c.Start.value())
	for _, seg := range c.Segments {
		out = append(out, seg.value())
	}
	return out
}

func (c CurveData) MarshalJSON() ([]byte, error) { return marshalValue(c.value()) }

func (c *CurveData) UnmarshalJSON(data []byte) error {
	return unmarshalWith(data, func(v interface{}) (err error) {
		*c, err = decodeCurveData(v, "")
		return err
	})
}
