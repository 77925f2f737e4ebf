package lison

import (
	"errors"
	"fmt"
	"strings"
)

// Structural decoding errors. They are wrapped in a *DecodeError
// locating the fault in the document.
var (
	ErrArity          = errors.New("wrong number of elements")
	ErrType           = errors.New("unexpected value type")
	ErrMissingField   = errors.New("missing field")
	ErrUnknownField   = errors.New("unknown field")
	ErrDuplicateField = errors.New("duplicate field")
	ErrTrailingData   = errors.New("trailing data after document")
)

// ErrBadDimension is returned when the raster size computed for a
// document is not a positive 32 bit integer.
var ErrBadDimension = errors.New("bad image dimension")

// DecodeError reports a structural fault in a document.
// Path locates the faulty value, for instance `shapes[2].data[0][3]`.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return "lison: " + e.Err.Error()
	}
	return fmt.Sprintf("lison: %s: %s", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UnknownVariantError is returned for an unrecognized union tag.
type UnknownVariantError struct {
	Value   string
	Allowed []string
}

func (e *UnknownVariantError) Error() string {
	quoted := make([]string, len(e.Allowed))
	for i, a := range e.Allowed {
		quoted[i] = fmt.Sprintf("%q", a)
	}
	return fmt.Sprintf("unknown variant %q, expected one of %s", e.Value, strings.Join(quoted, ", "))
}

// IndexError is returned at render time when a shape references
// a pen or a brush which does not exist.
type IndexError struct {
	Kind  string // "pen" or "brush"
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("lison: invalid %s index %d, must be less than %d", e.Kind, e.Index, e.Len)
}

func decodeErr(path string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Path: path, Err: err}
}

func arityErr(path string, format string, args ...interface{}) error {
	return &DecodeError{Path: path, Err: fmt.Errorf("%w: "+format, append([]interface{}{ErrArity}, args...)...)}
}
