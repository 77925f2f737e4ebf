package lison

// Point is encoded as [x, y].
type Point struct {
	X, Y float64
}

// Color holds RGBA components in [0, 1].
// It is encoded as [r, g, b] or [r, g, b, a]; a missing alpha means 1.
type Color struct {
	Red, Green, Blue, Alpha float64
}

// RGB returns an opaque color.
func RGB(r, g, b float64) Color { return Color{Red: r, Green: g, Blue: b, Alpha: 1} }

// RGBA returns a color with the given alpha.
func RGBA(r, g, b, a float64) Color { return Color{Red: r, Green: g, Blue: b, Alpha: a} }

// HasAlpha reports whether the alpha channel is written when encoding,
// that is when 0 <= alpha < 1. Any other alpha is encoded as opaque.
func (c Color) HasAlpha() bool { return c.Alpha >= 0 && c.Alpha < 1 }

func decodePoint(v interface{}, path string) (Point, error) {
	list, err := asArray(v, path)
	if err != nil {
		return Point{}, err
	}
	if len(list) != 2 {
		return Point{}, arityErr(path, "point expects 2 numbers, got %d", len(list))
	}
	x, err := asNumber(list[0], index(path, 0))
	if err != nil {
		return Point{}, err
	}
	y, err := asNumber(list[1], index(path, 1))
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

func decodeColor(v interface{}, path string) (Color, error) {
	list, err := asArray(v, path)
	if err != nil {
		return Color{}, err
	}
	if len(list) < 3 || len(list) > 4 {
		return Color{}, arityErr(path, "color expects 3 or 4 numbers, got %d", len(list))
	}
	var comps [4]float64
	comps[3] = 1
	for i, e := range list {
		comps[i], err = asNumber(e, index(path, i))
		if err != nil {
			return Color{}, err
		}
	}
	return Color{Red: comps[0], Green: comps[1], Blue: comps[2], Alpha: comps[3]}, nil
}

func (p Point) value() interface{} { return []interface{}{p.X, p.Y} }

func (c Color) value() interface{} {
	if c.HasAlpha() {
		return []interface{}{c.Red, c.Green, c.Blue, c.Alpha}
	}
	return []interface{}{c.Red, c.Green, c.Blue}
}

func (p Point) MarshalJSON() ([]byte, error) { return marshalValue(p.value()) }

func (p *Point) UnmarshalJSON(data []byte) error {
	return unmarshalWith(data, func(v interface{}) (err error) {
		*p, err = decodePoint(v, "")
		return err
	})
}

func (c Color) MarshalJSON() ([]byte, error) { return marshalValue(c.value()) }

func (c *Color) UnmarshalJSON(data []byte) error {
	return unmarshalWith(data, func(v interface{}) (err error) {
		*c, err = decodeColor(v, "")
		return err
	})
}
