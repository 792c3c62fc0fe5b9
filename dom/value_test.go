package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalarNarrowing(t *testing.T) {
	f := NewFloat(TypeFloat64, 3.0)
	i, err := f.Int64()
	assert.NoError(t, err)
	assert.Equal(t, int64(3), i)

	iv := NewInt(TypeInt32, 7)
	fv, err := iv.Float64()
	assert.NoError(t, err)
	assert.Equal(t, 7.0, fv)
}

func TestStringFromBlobAllowed(t *testing.T) {
	b := NewBlob([]byte("hi"))
	s, err := b.String()
	assert.NoError(t, err)
	assert.Equal(t, "hi", s)
}

func TestArrayAccessFromScalarFails(t *testing.T) {
	v := NewInt(TypeInt32, 1)
	_, err := v.ArrayI32()
	assert.Error(t, err)
	var ae *AccessError
	assert.ErrorAs(t, err, &ae)
}

func TestScalarAccessFromArrayFails(t *testing.T) {
	v := NewRawArray(TypeArrayInt32, []byte{1, 0, 0, 0}, 1, 4)
	_, err := v.Int64()
	assert.Error(t, err)
}

func TestRawArrayDecode(t *testing.T) {
	raw := []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}
	v := NewRawArray(TypeArrayInt32, raw, 3, 4)
	n, err := v.Len()
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	arr, err := v.ArrayI32()
	assert.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, arr)
}

func TestDeflatedArrayDecodeIsMemoised(t *testing.T) {
	// "\x78\x9c\x01\x06\x00\xf9\xffHello!\x07\xa2\x02\x16" decodes to the
	// literal bytes "Hello!" via a stored zlib block (see inflate package
	// fixtures); reused here as an arbitrary 6-byte payload, read back as
	// an i8 array of 6 elements.
	compressed := []byte("\x78\x9c\x01\x06\x00\xf9\xffHello!\x07\xa2\x02\x16")
	v := NewDeflatedArray(TypeArrayInt8, compressed, 6, 1)

	first, err := v.ArrayI8()
	assert.NoError(t, err)
	assert.Equal(t, "Hello!", string(toBytes(first)))

	second, err := v.ArrayI8()
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, v.arr.done)
}

func toBytes(in []int8) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = byte(b)
	}
	return out
}

func TestNodeChildLookup(t *testing.T) {
	root := &RawNode{
		Name: "Root",
		Children: []*RawNode{
			{Name: "A", Values: []Value{NewInt(TypeInt32, 1)}},
			{Name: "A", Values: []Value{NewInt(TypeInt32, 2)}},
			{Name: "B"},
		},
	}
	assert.Equal(t, 2, len(root.ChildrenNamed("A")))
	first := root.Child("A")
	assert.NotNil(t, first)
	v, ok := first.Value(0)
	assert.True(t, ok)
	n, _ := v.Int64()
	assert.Equal(t, int64(1), n)

	assert.Nil(t, root.Child("Missing"))
	_, ok = first.Value(5)
	assert.False(t, ok)
}
