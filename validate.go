package lison

func (img *Image) pen(i int) (Pen, error) {
	if i < 0 || i >= len(img.Pens) {
		return Pen{}, &IndexError{Kind: "pen", Index: i, Len: len(img.Pens)}
	}
	return img.Pens[i], nil
}

func (img *Image) brush(i int) (Brush, error) {
	if i < 0 || i >= len(img.Brushes) {
		return Brush{}, &IndexError{Kind: "brush", Index: i, Len: len(img.Brushes)}
	}
	return img.Brushes[i], nil
}

// Validate checks that every pen and brush reference resolves,
// returning the first *IndexError found in document order.
// Decoding does not perform this check, and Render only performs it
// for the shapes it reaches.
func (img *Image) Validate() error {
	return img.Walk(func(s Shape) error {
		switch s := s.(type) {
		case Curve:
			_, err := img.pen(s.Pen)
			return err
		case Region:
			if s.Brush != nil {
				if _, err := img.brush(*s.Brush); err != nil {
					return err
				}
			}
			if s.Pen != nil {
				if _, err := img.pen(*s.Pen); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
