package lison

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// The CBOR form of a document uses the same value tree as the JSON one:
// positional arrays, tagged objects and kebab-case field names.

var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	cborEncMode = em
	// groups nest without limit, like in JSON
	dm, err := cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxNestedLevels:  65535,
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	cborDecMode = dm
}

// cborValue converts the encoded objects of a value tree to maps.
func cborValue(v interface{}) interface{} {
	switch v := v.(type) {
	case object:
		out := make(map[string]interface{}, len(v))
		for _, m := range v {
			out[m.key] = cborValue(m.value)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = cborValue(e)
		}
		return out
	case map[string]interface{}: // edit annotations
		out := make(map[string]interface{}, len(v))
		for k, e := range v {
			out[k] = cborValue(e)
		}
		return out
	default:
		return v
	}
}

// MarshalCBOR returns the deterministic CBOR encoding of img.
func MarshalCBOR(img *Image) ([]byte, error) {
	b, err := cborEncMode.Marshal(cborValue(img.value()))
	if err != nil {
		return nil, fmt.Errorf("lison: %w", err)
	}
	return b, nil
}

// UnmarshalCBOR strictly decodes a CBOR document, with the same rules
// as ParseImage.
func UnmarshalCBOR(data []byte) (*Image, error) {
	var v interface{}
	if err := cborDecMode.Unmarshal(data, &v); err != nil {
		var dup *cbor.DupMapKeyError
		if errors.As(err, &dup) {
			return nil, &DecodeError{Path: fmt.Sprint(dup.Key), Err: ErrDuplicateField}
		}
		return nil, &DecodeError{Err: err}
	}
	return decodeImage(v)
}
