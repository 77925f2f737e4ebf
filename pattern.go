package lison

// Pattern is a color source, one of Monochrome, LinearGradient
// or RadialGradient. It is encoded as an object tagged by its "type" field.
type Pattern interface {
	// value returns the tree to encode
	value() interface{}
}

var patternTags = []string{"monochrome", "linear-gradient", "radial-gradient"}

// Monochrome is a solid color.
type Monochrome struct {
	Color Color
}

// LinearGradient blends Color1 at Point1 to Color2 at Point2.
type LinearGradient struct {
	Point1 Point
	Color1 Color
	Point2 Point
	Color2 Color
}

// RadialGradient blends Color1 on the circle (Center1, Radius1)
// to Color2 on the circle (Center2, Radius2).
type RadialGradient struct {
	Center1 Point
	Radius1 float64
	Color1  Color
	Center2 Point
	Radius2 float64
	Color2  Color
}

func (p Monochrome) value() interface{} {
	return object{{"type", "monochrome"}, {"color", p.Color.value()}}
}

func (p LinearGradient) value() interface{} {
	return object{
		{"type", "linear-gradient"},
		{"point-1", p.Point1.value()},
		{"color-1", p.Color1.value()},
		{"point-2", p.Point2.value()},
		{"color-2", p.Color2.value()},
	}
}

func (p RadialGradient) value() interface{} {
	return object{
		{"type", "radial-gradient"},
		{"center-1", p.Center1.value()},
		{"radius-1", p.Radius1},
		{"color-1", p.Color1.value()},
		{"center-2", p.Center2.value()},
		{"radius-2", p.Radius2},
		{"color-2", p.Color2.value()},
	}
}

func decodePattern(v interface{}, path string) (Pattern, error) {
	r := newObjectReader(v, path)
	tag := r.string("type")
	if r.err != nil {
		return nil, r.err
	}
	var p Pattern
	switch tag {
	case "monochrome":
		p = Monochrome{Color: r.color("color")}
	case "linear-gradient":
		p = LinearGradient{
			Point1: r.point("point-1"),
			Color1: r.color("color-1"),
			Point2: r.point("point-2"),
			Color2: r.color("color-2"),
		}
	case "radial-gradient":
		p = RadialGradient{
			Center1: r.point("center-1"),
			Radius1: r.number("radius-1"),
			Color1:  r.color("color-1"),
			Center2: r.point("center-2"),
			Radius2: r.number("radius-2"),
			Color2:  r.color("color-2"),
		}
	default:
		return nil, &DecodeError{Path: at(path, "type"), Err: &UnknownVariantError{Value: tag, Allowed: patternTags}}
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return p, nil
}

// MarshalPattern returns the JSON encoding of p.
func MarshalPattern(p Pattern) ([]byte, error) { return marshalValue(p.value()) }

// UnmarshalPattern strictly decodes a JSON pattern.
func UnmarshalPattern(data []byte) (p Pattern, err error) {
	err = unmarshalWith(data, func(v interface{}) error {
		p, err = decodePattern(v, "")
		return err
	})
	return p, err
}
