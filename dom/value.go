// Package dom implements the L3/L4 layers of the FBX reader: a uniform,
// lazy tree of (name, values, children) tuples that the binary and ASCII
// tokenizers both produce and that the object reader consumes, independent
// of which dialect the source file used.
//
// Values are modelled as a closed sum type over the FBX binary type codes
// rather than a manually tagged union, following the systems-language
// guidance that a C-style tagged union be rewritten as an explicit variant
// set (spec design notes, "Heterogeneous values"). Tests and callers depend
// on the mapping from the original single-character type code to the
// variant kind staying stable, so TypeCode is preserved on every Value.
package dom

import "github.com/g3n/fbx/inflate"

// TypeCode is the single-character FBX binary value type tag this Value was
// read from (or synthesized as, for ASCII-dialect input, which has no
// native type codes and must guess a representative one per spec §4).
type TypeCode byte

const (
	TypeBool    TypeCode = 'C'
	TypeInt16   TypeCode = 'Y'
	TypeInt32   TypeCode = 'I'
	TypeInt64   TypeCode = 'L'
	TypeFloat32 TypeCode = 'F'
	TypeFloat64 TypeCode = 'D'
	TypeString  TypeCode = 'S'
	TypeBlob    TypeCode = 'R'

	TypeArrayInt32   TypeCode = 'i'
	TypeArrayInt64   TypeCode = 'l'
	TypeArrayFloat32 TypeCode = 'f'
	TypeArrayFloat64 TypeCode = 'd'
	TypeArrayBool    TypeCode = 'b'
	TypeArrayInt8    TypeCode = 'c'
)

// Kind identifies which field of Value is populated.
type Kind int

const (
	KindBool Kind = iota
	KindI64
	KindF64
	KindStr
	KindBlob
	KindArrayI32
	KindArrayI64
	KindArrayF32
	KindArrayF64
	KindArrayBool
	KindArrayI8
)

func kindForCode(code TypeCode) Kind {
	switch code {
	case TypeBool:
		return KindBool
	case TypeInt16, TypeInt32, TypeInt64:
		return KindI64
	case TypeFloat32, TypeFloat64:
		return KindF64
	case TypeString:
		return KindStr
	case TypeBlob:
		return KindBlob
	case TypeArrayInt32:
		return KindArrayI32
	case TypeArrayInt64:
		return KindArrayI64
	case TypeArrayFloat32:
		return KindArrayF32
	case TypeArrayFloat64:
		return KindArrayF64
	case TypeArrayBool:
		return KindArrayBool
	case TypeArrayInt8:
		return KindArrayI8
	default:
		return KindI64
	}
}

// arrayPayload holds the not-yet-decoded bytes of a typed array value,
// along with enough information to decode it on first access. Decoding is
// memoised in decoded/err so repeated Array* calls on the same Value never
// inflate twice.
type arrayPayload struct {
	raw      []byte // the stored bytes: either the raw elements or a deflate stream
	deflated bool
	count    int
	elemSize int

	decoded []byte
	err     error
	done    bool
}

func (a *arrayPayload) bytes() ([]byte, error) {
	if a.done {
		return a.decoded, a.err
	}
	a.done = true
	if !a.deflated {
		a.decoded = a.raw
		return a.decoded, nil
	}
	dst := make([]byte, a.count*a.elemSize)
	n, err := inflate.Inflate(dst, a.raw)
	if err != nil {
		a.err = err
		return nil, err
	}
	a.decoded = dst[:n]
	return a.decoded, nil
}

// Value is a single FBX node value: a tagged union over the scalar and
// array kinds the binary dialect's type codes name. Integer scalars of
// every width are widened to I64 at this layer (spec §3); the original
// TypeCode is kept only to drive round-trip choices outside the core.
type Value struct {
	Code TypeCode
	Kind Kind

	boolVal bool
	i64Val  int64
	f64Val  float64
	strVal  string
	blobVal []byte

	arr *arrayPayload
}

// NewBool builds a scalar boolean value.
func NewBool(v bool) Value {
	i := int64(0)
	if v {
		i = 1
	}
	return Value{Code: TypeBool, Kind: KindBool, boolVal: v, i64Val: i}
}

// NewInt builds a scalar integer value carrying the original width's type code.
func NewInt(code TypeCode, v int64) Value {
	return Value{Code: code, Kind: KindI64, i64Val: v}
}

// NewFloat builds a scalar floating-point value carrying the original width's type code.
func NewFloat(code TypeCode, v float64) Value {
	return Value{Code: code, Kind: KindF64, f64Val: v}
}

// NewString builds a string value.
func NewString(v string) Value {
	return Value{Code: TypeString, Kind: KindStr, strVal: v}
}

// NewBlob builds an opaque raw-byte value (the binary `R` type).
func NewBlob(v []byte) Value {
	return Value{Code: TypeBlob, Kind: KindBlob, blobVal: v}
}

// NewRawArray builds an array value whose bytes are already decoded
// (used by the binary tokenizer for uncompressed, encoding-0 arrays).
func NewRawArray(code TypeCode, raw []byte, count, elemSize int) Value {
	return Value{Code: code, Kind: kindForCode(code), arr: &arrayPayload{
		raw: raw, count: count, elemSize: elemSize, decoded: raw, done: true,
	}}
}

// NewDeflatedArray builds an array value whose bytes are a zlib/DEFLATE
// stream; decoding happens lazily on first Array* access and is memoised.
func NewDeflatedArray(code TypeCode, compressed []byte, count, elemSize int) Value {
	return Value{Code: code, Kind: kindForCode(code), arr: &arrayPayload{
		raw: compressed, deflated: true, count: count, elemSize: elemSize,
	}}
}

// IsArray reports whether this value is one of the array kinds.
func (v Value) IsArray() bool {
	switch v.Kind {
	case KindArrayI32, KindArrayI64, KindArrayF32, KindArrayF64, KindArrayBool, KindArrayI8:
		return true
	default:
		return false
	}
}
