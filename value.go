package lison

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
)

// This file implements the generic value tree the codecs work on.
// Decoded values are one of nil, bool, string, json.Number (or the
// numeric types of the CBOR decoder), []interface{} and
// map[string]interface{}.

// readValue reads one JSON value from dec, which must have been
// configured with UseNumber. Duplicate object keys are rejected.
func readValue(dec *json.Decoder, path string) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, decodeErr(path, err)
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '[':
		list := []interface{}{}
		for dec.More() {
			v, err := readValue(dec, index(path, len(list)))
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, decodeErr(path, err)
		}
		return list, nil
	case '{':
		obj := map[string]interface{}{}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, decodeErr(path, err)
			}
			key, _ := tok.(string)
			if _, dup := obj[key]; dup {
				return nil, &DecodeError{Path: at(path, key), Err: ErrDuplicateField}
			}
			v, err := readValue(dec, at(path, key))
			if err != nil {
				return nil, err
			}
			obj[key] = v
		}
		if _, err := dec.Token(); err != nil {
			return nil, decodeErr(path, err)
		}
		return obj, nil
	default:
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("unexpected delimiter %q", delim)}
	}
}

// parseValue reads exactly one JSON value from data.
func parseValue(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := readValue(dec, "")
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &DecodeError{Err: ErrTrailingData}
	}
	return v, nil
}

// unmarshalWith parses data and hands the value tree to fn.
func unmarshalWith(data []byte, fn func(v interface{}) error) error {
	v, err := parseValue(data)
	if err != nil {
		return err
	}
	return fn(v)
}

func at(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func kindOf(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64, float32, int64, uint64:
		return "number"
	case []interface{}:
		return "array"
	case map[string]interface{}, map[interface{}]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func typeErr(path, want string, got interface{}) error {
	return &DecodeError{Path: path, Err: fmt.Errorf("%w: expected %s, got %s", ErrType, want, kindOf(got))}
}

func asArray(v interface{}, path string) ([]interface{}, error) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, typeErr(path, "array", v)
	}
	return list, nil
}

func asObject(v interface{}, path string) (map[string]interface{}, error) {
	switch obj := v.(type) {
	case map[string]interface{}:
		return obj, nil
	case map[interface{}]interface{}: // CBOR maps
		out := make(map[string]interface{}, len(obj))
		for k, v := range obj {
			key, ok := k.(string)
			if !ok {
				return nil, typeErr(path, "string key", k)
			}
			out[key] = v
		}
		return out, nil
	default:
		return nil, typeErr(path, "object", v)
	}
}

func asString(v interface{}, path string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeErr(path, "string", v)
	}
	return s, nil
}

func asNumber(v interface{}, path string) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, &DecodeError{Path: path, Err: fmt.Errorf("%w: %s", ErrType, err)}
		}
		return f, nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, typeErr(path, "number", v)
	}
}

// asIndex accepts non-negative integers only: 1.0 or 1e0 are rejected.
func asIndex(v interface{}, path string) (int, error) {
	switch n := v.(type) {
	case json.Number:
		u, err := strconv.ParseUint(string(n), 10, strconv.IntSize-1)
		if err != nil {
			return 0, typeErr(path, "non-negative integer", v)
		}
		return int(u), nil
	case uint64:
		if n > math.MaxInt {
			return 0, typeErr(path, "non-negative integer", v)
		}
		return int(n), nil
	case int64:
		if n < 0 || n > math.MaxInt {
			return 0, typeErr(path, "non-negative integer", v)
		}
		return int(n), nil
	default:
		return 0, typeErr(path, "non-negative integer", v)
	}
}

// normalizeAny converts an opaque value to plain Go types:
// numbers become int64 (integers) or float64, objects map[string]interface{}.
func normalizeAny(v interface{}, path string) (interface{}, error) {
	switch v := v.(type) {
	case nil, bool, string, float64, int64:
		return v, nil
	case float32:
		return float64(v), nil
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), nil
		}
		return float64(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, &DecodeError{Path: path, Err: fmt.Errorf("%w: %s", ErrType, err)}
		}
		return f, nil
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, e := range v {
			n, err := normalizeAny(e, index(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]interface{}, map[interface{}]interface{}:
		obj, err := asObject(v, path)
		if err != nil {
			return nil, err
		}
		out := make(map[string]interface{}, len(obj))
		for k, e := range obj {
			n, err := normalizeAny(e, at(path, k))
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	default:
		return nil, typeErr(path, "JSON value", v)
	}
}

// annotFloat is a float64 whose JSON form always has a fraction or
// an exponent, so that it decodes back to a float64 and not an int64.
type annotFloat float64

func (f annotFloat) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(float64(f))
	if err != nil {
		return nil, err
	}
	if !bytes.ContainsAny(b, ".eE") {
		b = append(b, ".0"...)
	}
	return b, nil
}

// annotValue prepares an opaque value for encoding.
func annotValue(v interface{}) interface{} {
	switch v := v.(type) {
	case float64:
		return annotFloat(v)
	case float32:
		return annotFloat(v)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = annotValue(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, e := range v {
			out[k] = annotValue(e)
		}
		return out
	default:
		return v
	}
}

// objectReader consumes the fields of a strict object.
// The first error is kept and returned by finish, which also
// reports the fields that were never consumed.
type objectReader struct {
	path string
	obj  map[string]interface{}
	used map[string]bool
	err  error
}

func newObjectReader(v interface{}, path string) *objectReader {
	r := &objectReader{path: path, used: map[string]bool{}}
	r.obj, r.err = asObject(v, path)
	return r
}

func (r *objectReader) fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// lookup returns the field value; a null value counts as absent.
func (r *objectReader) lookup(key string) (interface{}, bool) {
	if r.err != nil {
		return nil, false
	}
	v, ok := r.obj[key]
	if ok {
		r.used[key] = true
	}
	return v, ok && v != nil
}

func (r *objectReader) required(key string) (interface{}, bool) {
	if r.err != nil {
		return nil, false
	}
	if v, ok := r.obj[key]; ok {
		r.used[key] = true
		return v, true
	}
	r.fail(&DecodeError{Path: at(r.path, key), Err: ErrMissingField})
	return nil, false
}

func (r *objectReader) number(key string) float64 {
	v, ok := r.required(key)
	if !ok {
		return 0
	}
	f, err := asNumber(v, at(r.path, key))
	r.fail(err)
	return f
}

func (r *objectReader) string(key string) string {
	v, ok := r.required(key)
	if !ok {
		return ""
	}
	s, err := asString(v, at(r.path, key))
	r.fail(err)
	return s
}

func (r *objectReader) index(key string) int {
	v, ok := r.required(key)
	if !ok {
		return 0
	}
	i, err := asIndex(v, at(r.path, key))
	r.fail(err)
	return i
}

func (r *objectReader) optionalIndex(key string) *int {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	i, err := asIndex(v, at(r.path, key))
	r.fail(err)
	return &i
}

func (r *objectReader) point(key string) Point {
	v, ok := r.required(key)
	if !ok {
		return Point{}
	}
	p, err := decodePoint(v, at(r.path, key))
	r.fail(err)
	return p
}

func (r *objectReader) color(key string) Color {
	v, ok := r.required(key)
	if !ok {
		return Color{}
	}
	c, err := decodeColor(v, at(r.path, key))
	r.fail(err)
	return c
}

func (r *objectReader) pattern(key string) Pattern {
	v, ok := r.required(key)
	if !ok {
		return nil
	}
	p, err := decodePattern(v, at(r.path, key))
	r.fail(err)
	return p
}

func (r *objectReader) array(key string) []interface{} {
	v, ok := r.required(key)
	if !ok {
		return nil
	}
	list, err := asArray(v, at(r.path, key))
	r.fail(err)
	return list
}

func (r *objectReader) finish() error {
	if r.err != nil {
		return r.err
	}
	var unknown []string
	for k := range r.obj {
		if !r.used[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) != 0 {
		sort.Strings(unknown)
		return &DecodeError{Path: at(r.path, unknown[0]), Err: ErrUnknownField}
	}
	return nil
}

// member is one field of an encoded object.
type member struct {
	key   string
	value interface{}
}

// object is an encoded object, keeping its fields in canonical order.
type object []member

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalValue encodes the value tree of a document entity.
func marshalValue(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		var ue *json.UnsupportedValueError
		if errors.As(err, &ue) {
			return nil, fmt.Errorf("lison: can't encode %s", ue.Str)
		}
		return nil, fmt.Errorf("lison: %w", err)
	}
	return b, nil
}
