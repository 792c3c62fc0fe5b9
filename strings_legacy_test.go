package fbx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeObjectStringPassesThroughValidUTF8(t *testing.T) {
	assert.Equal(t, "Café", decodeObjectString([]byte("Café")))
}

func TestDecodeObjectStringDecodesWindows1252(t *testing.T) {
	// 0xE9 is Windows-1252 for 'é', not valid standalone UTF-8.
	raw := []byte{'C', 'a', 'f', 0xE9}
	assert.Equal(t, "Café", decodeObjectString(raw))
}

func TestSplitNameClassTagBinaryNullSeparator(t *testing.T) {
	raw := append([]byte("Cube"), 0x00, 0x01)
	raw = append(raw, []byte("Model")...)
	assert.Equal(t, "Cube", splitNameClassTag(raw))
}

func TestSplitNameClassTagDoubleColonSeparator(t *testing.T) {
	assert.Equal(t, "Cube", splitNameClassTag([]byte("Cube::Model")))
}

func TestSplitNameClassTagNoSeparator(t *testing.T) {
	assert.Equal(t, "Cube", splitNameClassTag([]byte("Cube")))
}

func TestStringArenaInternsDuplicates(t *testing.T) {
	a := newStringArena()
	s1 := a.intern("Lcl Translation")
	s2 := a.intern("Lcl Translation")
	s3 := a.intern("Lcl Rotation")

	assert.Equal(t, s1, s2)
	assert.NotEqual(t, s1, s3)
	assert.Equal(t, 2, len(a.seen))
}
