package lison

// LineCap defines how to draw the ends of stroked curves.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

var capNames = [...]string{CapButt: "butt", CapRound: "round", CapSquare: "square"}

func (c LineCap) String() string {
	if int(c) < len(capNames) {
		return capNames[c]
	}
	return "<unknown LineCap>"
}

// LineJoin defines how stroked segments are joined.
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

var joinNames = [...]string{JoinMiter: "miter", JoinRound: "round", JoinBevel: "bevel"}

func (j LineJoin) String() string {
	if int(j) < len(joinNames) {
		return joinNames[j]
	}
	return "<unknown LineJoin>"
}

// Pen is a stroke style. Width is expressed in document units.
type Pen struct {
	Pattern Pattern
	Width   float64
	Cap     LineCap
	Join    LineJoin
}

// Brush is a fill style.
type Brush struct {
	Pattern Pattern
}

// decodeName maps a string field to its position in names.
func decodeName(r *objectReader, key string, names []string) int {
	s := r.string(key)
	if r.err != nil {
		return 0
	}
	for i, n := range names {
		if n == s {
			return i
		}
	}
	r.fail(&DecodeError{Path: at(r.path, key), Err: &UnknownVariantError{Value: s, Allowed: names}})
	return 0
}

func decodePen(v interface{}, path string) (Pen, error) {
	r := newObjectReader(v, path)
	pen := Pen{
		Pattern: r.pattern("pattern"),
		Width:   r.number("width"),
		Cap:     LineCap(decodeName(r, "cap", capNames[:])),
		Join:    LineJoin(decodeName(r, "join", joinNames[:])),
	}
	return pen, r.finish()
}

func decodeBrush(v interface{}, path string) (Brush, error) {
	r := newObjectReader(v, path)
	brush := Brush{Pattern: r.pattern("pattern")}
	return brush, r.finish()
}

func (p Pen) value() interface{} {
	return object{
		{"pattern", patternValue(p.Pattern)},
		{"width", p.Width},
		{"cap", p.Cap.String()},
		{"join", p.Join.String()},
	}
}

func (b Brush) value() interface{} {
	return object{{"pattern", patternValue(b.Pattern)}}
}

// patternValue encodes a nil pattern as null, which the decoder refuses.
func patternValue(p Pattern) interface{} {
	if p == nil {
		return nil
	}
	return p.value()
}

func (p Pen) MarshalJSON() ([]byte, error) { return marshalValue(p.value()) }

func (p *Pen) UnmarshalJSON(data []byte) error {
	return unmarshalWith(data, func(v interface{}) (err error) {
		*p, err = decodePen(v, "")
		return err
	})
}

func (b Brush) MarshalJSON() ([]byte, error) { return marshalValue(b.value()) }

func (b *Brush) UnmarshalJSON(data []byte) error {
	return unmarshalWith(data, func(v interface{}) (err error) {
		*b, err = decodeBrush(v, "")
		return err
	})
}
