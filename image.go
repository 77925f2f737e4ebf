// Provides decoding, encoding and rendering of lison images,
// a compact JSON format for 2D vector drawings.
// Documents are strictly decoded into an in-memory scene graph,
// which can then be consumed by painting backends implementing Canvas.
// See for example lison/lisonraster or lison/lisonpdf .
package lison

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

// Image is a whole document. It owns its pens, brushes and shapes.
// Dimensions are expressed in document units, UnitPerInch of them
// making an inch.
type Image struct {
	Width, Height float64
	UnitPerInch   float64
	Editor        *string // provenance tag, nil when absent

	Pens    []Pen
	Brushes []Brush
	Shapes  []Shape
}

func decodeImage(v interface{}) (*Image, error) {
	r := newObjectReader(v, "")
	img := &Image{
		Width:       r.number("width"),
		Height:      r.number("height"),
		UnitPerInch: r.number("unit-per-inch"),
	}
	if ed, ok := r.lookup("editor"); ok {
		s, err := asString(ed, "editor")
		r.fail(err)
		img.Editor = &s
	}
	for i, v := range r.array("pens") {
		pen, err := decodePen(v, index("pens", i))
		if err != nil {
			return nil, err
		}
		img.Pens = append(img.Pens, pen)
	}
	for i, v := range r.array("brushes") {
		brush, err := decodeBrush(v, index("brushes", i))
		if err != nil {
			return nil, err
		}
		img.Brushes = append(img.Brushes, brush)
	}
	shapes := r.array("shapes")
	if r.err == nil {
		var err error
		img.Shapes, err = decodeShapes(shapes, "shapes")
		r.fail(err)
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return img, nil
}

func (img *Image) value() interface{} {
	obj := object{
		{"width", img.Width},
		{"height", img.Height},
		{"unit-per-inch", img.UnitPerInch},
	}
	if img.Editor != nil {
		obj = append(obj, member{"editor", *img.Editor})
	}
	pens := make([]interface{}, len(img.Pens))
	for i, p := range img.Pens {
		pens[i] = p.value()
	}
	brushes := make([]interface{}, len(img.Brushes))
	for i, b := range img.Brushes {
		brushes[i] = b.value()
	}
	shapes := make([]interface{}, len(img.Shapes))
	for i, s := range img.Shapes {
		shapes[i] = s.value()
	}
	return append(obj,
		member{"pens", pens},
		member{"brushes", brushes},
		member{"shapes", shapes},
	)
}

// ParseImage strictly decodes a JSON document. Pen and brush indices
// are not checked: see Validate.
func ParseImage(data []byte) (*Image, error) {
	data, err := toUTF8(data)
	if err != nil {
		return nil, err
	}
	v, err := parseValue(data)
	if err != nil {
		return nil, err
	}
	return decodeImage(v)
}

// ReadImageStream reads the whole document from the given io.Reader
// and decodes it.
func ReadImageStream(stream io.Reader) (*Image, error) {
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}
	return ParseImage(data)
}

// ReadImage reads the document from the named file.
func ReadImage(imageFile string) (*Image, error) {
	fin, err := os.Open(imageFile)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadImageStream(fin)
}

// WriteImage writes the JSON encoding of img to w.
func WriteImage(w io.Writer, img *Image) error {
	b, err := img.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func (img *Image) MarshalJSON() ([]byte, error) { return marshalValue(img.value()) }

func (img *Image) UnmarshalJSON(data []byte) error {
	parsed, err := ParseImage(data)
	if err != nil {
		return err
	}
	*img = *parsed
	return nil
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// toUTF8 transcodes UTF-16 documents starting with a byte order mark
// and strips the UTF-8 one.
func toUTF8(data []byte) ([]byte, error) {
	var label string
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], nil
	case bytes.HasPrefix(data, bomUTF16BE):
		label = "utf-16be"
	case bytes.HasPrefix(data, bomUTF16LE):
		label = "utf-16le"
	default:
		return data, nil
	}
	r, err := charset.NewReaderLabel(label, bytes.NewReader(data[2:]))
	if err != nil {
		return nil, err
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.TrimPrefix(out, bomUTF8), nil
}
