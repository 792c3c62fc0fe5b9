package dom

import (
	"encoding/binary"
	"fmt"
	"math"
)

// AccessError reports a failed typed access against a Value: requesting an
// array iterator from a scalar, or a scalar from an array, following spec
// §4's "array iteration from a scalar is not [allowed]" rule. Narrowing
// between numeric scalar kinds is always permitted (spec §4 "safe
// narrowing check") and never returns this error.
type AccessError struct {
	Want Kind
	Got  Kind
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("dom: cannot access kind %d value as kind %d", e.Got, e.Want)
}

// Bool returns the value as a boolean. Any numeric scalar is accepted and
// compared against zero; this mirrors the binary dialect treating C/Y/I/L
// bools interchangeably in practice.
func (v Value) Bool() (bool, error) {
	switch v.Kind {
	case KindBool:
		return v.boolVal, nil
	case KindI64:
		return v.i64Val != 0, nil
	case KindF64:
		return v.f64Val != 0, nil
	default:
		return false, &AccessError{Want: KindBool, Got: v.Kind}
	}
}

// Int64 returns the value as a widened 64-bit integer, narrowing from a
// float if needed (truncating, following the binary reader's own widening
// of narrower integer types into one logical integer slot).
func (v Value) Int64() (int64, error) {
	switch v.Kind {
	case KindI64:
		return v.i64Val, nil
	case KindBool:
		return v.i64Val, nil
	case KindF64:
		return int64(v.f64Val), nil
	default:
		return 0, &AccessError{Want: KindI64, Got: v.Kind}
	}
}

// Float64 returns the value as a 64-bit float, widening from an integer if
// needed.
func (v Value) Float64() (float64, error) {
	switch v.Kind {
	case KindF64:
		return v.f64Val, nil
	case KindI64:
		return float64(v.i64Val), nil
	case KindBool:
		return float64(v.i64Val), nil
	default:
		return 0, &AccessError{Want: KindF64, Got: v.Kind}
	}
}

// String returns the value as a string. A Blob value is also accepted
// (spec §4: "requesting a string from a binary blob is allowed") and
// returned verbatim without any UTF-8 validation.
func (v Value) String() (string, error) {
	switch v.Kind {
	case KindStr:
		return v.strVal, nil
	case KindBlob:
		return string(v.blobVal), nil
	default:
		return "", &AccessError{Want: KindStr, Got: v.Kind}
	}
}

// Blob returns the value's raw bytes. A String value is also accepted.
func (v Value) Blob() ([]byte, error) {
	switch v.Kind {
	case KindBlob:
		return v.blobVal, nil
	case KindStr:
		return []byte(v.strVal), nil
	default:
		return nil, &AccessError{Want: KindBlob, Got: v.Kind}
	}
}

// Len returns the element count of an array value, or an error if v is not
// an array.
func (v Value) Len() (int, error) {
	if !v.IsArray() {
		return 0, &AccessError{Want: KindArrayF64, Got: v.Kind}
	}
	return v.arr.count, nil
}

// ArrayI32 decodes and returns an i32 array's elements. The decode (and any
// deflate call) is memoised on the Value's backing payload.
func (v Value) ArrayI32() ([]int32, error) {
	if v.Kind != KindArrayI32 {
		return nil, &AccessError{Want: KindArrayI32, Got: v.Kind}
	}
	raw, err := v.arr.bytes()
	if err != nil {
		return nil, err
	}
	out := make([]int32, len(raw)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// ArrayI64 decodes and returns an i64 array's elements.
func (v Value) ArrayI64() ([]int64, error) {
	if v.Kind != KindArrayI64 {
		return nil, &AccessError{Want: KindArrayI64, Got: v.Kind}
	}
	raw, err := v.arr.bytes()
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(raw)/8)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return out, nil
}

// ArrayF32 decodes and returns an f32 array's elements.
func (v Value) ArrayF32() ([]float32, error) {
	if v.Kind != KindArrayF32 {
		return nil, &AccessError{Want: KindArrayF32, Got: v.Kind}
	}
	raw, err := v.arr.bytes()
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(raw)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// ArrayF64 decodes and returns an f64 array's elements.
func (v Value) ArrayF64() ([]float64, error) {
	if v.Kind != KindArrayF64 {
		return nil, &AccessError{Want: KindArrayF64, Got: v.Kind}
	}
	raw, err := v.arr.bytes()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return out, nil
}

// ArrayBool decodes and returns a bool array's elements (stored one byte
// per element, nonzero is true).
func (v Value) ArrayBool() ([]bool, error) {
	if v.Kind != KindArrayBool {
		return nil, &AccessError{Want: KindArrayBool, Got: v.Kind}
	}
	raw, err := v.arr.bytes()
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(raw))
	for i, b := range raw {
		out[i] = b != 0
	}
	return out, nil
}

// ArrayI8 decodes and returns an i8 array's elements.
func (v Value) ArrayI8() ([]int8, error) {
	if v.Kind != KindArrayI8 {
		return nil, &AccessError{Want: KindArrayI8, Got: v.Kind}
	}
	raw, err := v.arr.bytes()
	if err != nil {
		return nil, err
	}
	out := make([]int8, len(raw))
	for i, b := range raw {
		out[i] = int8(b)
	}
	return out, nil
}
