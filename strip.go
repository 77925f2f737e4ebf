package lison

// Walk calls fn for every leaf shape (Curve or Region) of img,
// depth first, in document order. Groups are not passed to fn.
// Walk stops at the first error returned by fn.
func (img *Image) Walk(fn func(Shape) error) error {
	return walkShapes(img.Shapes, fn)
}

func walkShapes(shapes []Shape, fn func(Shape) error) error {
	for _, s := range shapes {
		if g, isGroup := s.(Group); isGroup {
			if err := walkShapes(g.Content, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(s); err != nil {
			return err
		}
	}
	return nil
}

// Strip returns a copy of img without editing metadata: the editor tag
// is cleared and groups are replaced by their leaves, in traversal order.
// img is not modified.
func Strip(img *Image) *Image {
	out := &Image{
		Width:       img.Width,
		Height:      img.Height,
		UnitPerInch: img.UnitPerInch,
		Pens:        append([]Pen(nil), img.Pens...),
		Brushes:     append([]Brush(nil), img.Brushes...),
	}
	_ = img.Walk(func(s Shape) error {
		out.Shapes = append(out.Shapes, s)
		return nil
	})
	return out
}
