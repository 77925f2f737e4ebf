package lison

// Shape is a node of the scene graph: Group, Curve or Region.
// It is encoded as an object tagged by its "type" field.
type Shape interface {
	value() interface{}
}

var shapeTags = []string{"group", "curve", "region"}

// Group is the only recursive shape. EditAnnot is an opaque value
// kept for editing tools; nil means absent.
type Group struct {
	Content   []Shape
	EditAnnot interface{}
}

// Curve is an open path stroked with the pen at index Pen.
// The index is only checked when rendering.
type Curve struct {
	Pen  int
	Data CurveData
}

// Region is made of closed sub-paths, filled with the brush at index
// Brush and stroked with the pen at index Pen, when they are not nil.
// Overlapping sub-paths follow the even-odd rule.
type Region struct {
	Pen   *int
	Brush *int
	Data  []CurveData
}

// Ref returns a pointer to i, to build optional indices.
func Ref(i int) *int { return &i }

func (g Group) value() interface{} {
	content := make([]interface{}, len(g.Content))
	for i, s := range g.Content {
		content[i] = s.value()
	}
	obj := object{{"type", "group"}, {"content", content}}
	if g.EditAnnot != nil {
		obj = append(obj, member{"edit-annot", annotValue(g.EditAnnot)})
	}
	return obj
}

func (c Curve) value() interface{} {
	return object{{"type", "curve"}, {"pen", c.Pen}, {"data", c.Data.value()}}
}

func (r Region) value() interface{} {
	obj := object{{"type", "region"}}
	if r.Pen != nil {
		obj = append(obj, member{"pen", *r.Pen})
	}
	if r.Brush != nil {
		obj = append(obj, member{"brush", *r.Brush})
	}
	data := make([]interface{}, len(r.Data))
	for i, cd := range r.Data {
		data[i] = cd.value()
	}
	return append(obj, member{"data", data})
}

func decodeShapes(list []interface{}, path string) ([]Shape, error) {
	var shapes []Shape
	for i, v := range list {
		s, err := decodeShape(v, index(path, i))
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

func decodeShape(v interface{}, path string) (Shape, error) {
	r := newObjectReader(v, path)
	tag := r.string("type")
	if r.err != nil {
		return nil, r.err
	}
	var s Shape
	switch tag {
	case "group":
		var g Group
		content := r.array("content")
		if r.err == nil {
			var err error
			g.Content, err = decodeShapes(content, at(path, "content"))
			r.fail(err)
		}
		if annot, ok := r.lookup("edit-annot"); ok {
			var err error
			g.EditAnnot, err = normalizeAny(annot, at(path, "edit-annot"))
			r.fail(err)
		}
		s = g
	case "curve":
		c := Curve{Pen: r.index("pen")}
		if v, ok := r.required("data"); ok {
			var err error
			c.Data, err = decodeCurveData(v, at(path, "data"))
			r.fail(err)
		}
		s = c
	case "region":
		reg := Region{Pen: r.optionalIndex("pen"), Brush: r.optionalIndex("brush")}
		data := r.array("data")
		for i, v := range data {
			if r.err != nil {
				break
			}
			cd, err := decodeCurveData(v, index(at(path, "data"), i))
			r.fail(err)
			reg.Data = append(reg.Data, cd)
		}
		s = reg
	default:
		return nil, &DecodeError{Path: at(path, "type"), Err: &UnknownVariantError{Value: tag, Allowed: shapeTags}}
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return s, nil
}

// MarshalShape returns the JSON encoding of s.
func MarshalShape(s Shape) ([]byte, error) { return marshalValue(s.value()) }

// UnmarshalShape strictly decodes a JSON shape.
func UnmarshalShape(data []byte) (s Shape, err error) {
	err = unmarshalWith(data, func(v interface{}) error {
		s, err = decodeShape(v, "")
		return err
	})
	return s, err
}
