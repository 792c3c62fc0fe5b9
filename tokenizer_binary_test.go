package fbx

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/g3n/fbx/dom"
)

func TestLooksBinaryDetectsMagic(t *testing.T) {
	assert.True(t, looksBinary(binaryMagic))
	assert.False(t, looksBinary([]byte("; FBX 7.4.0 project file")))
	assert.False(t, looksBinary([]byte("short")))
}

func TestParseBinaryRejectsBadMagic(t *testing.T) {
	_, _, err := parseBinary([]byte("not fbx at all"), newPathStack(8))
	assert.Error(t, err)
	fe := err.(*Error)
	assert.Equal(t, ErrBadMagic, fe.Kind)
}

func TestParseBinaryRejectsTruncatedHeader(t *testing.T) {
	_, _, err := parseBinary(binaryMagic[:len(binaryMagic)-2], newPathStack(8))
	assert.Error(t, err)
	fe := err.(*Error)
	assert.Equal(t, ErrTruncated, fe.Kind)
}

func TestParseBinaryRoundTripsThroughEncodeBinary(t *testing.T) {
	original := &dom.RawNode{
		Children: []*dom.RawNode{
			{
				Name: "FBXHeaderExtension",
				Children: []*dom.RawNode{
					{Name: "Creator", Values: []dom.Value{dom.NewString("tester")}},
				},
			},
			{
				Name:   "GlobalSettings",
				Values: nil,
				Children: []*dom.RawNode{
					{Name: "Empty"},
				},
			},
		},
	}

	encoded := EncodeBinary(original, version7500)
	assert.True(t, looksBinary(encoded))

	root, version, err := parseBinary(encoded, newPathStack(8))
	assert.NoError(t, err)
	assert.Equal(t, int32(version7500), version)

	hdr := root.Child("FBXHeaderExtension")
	assert.NotNil(t, hdr)
	creator := hdr.Child("Creator")
	assert.NotNil(t, creator)
	v, ok := creator.Value(0)
	assert.True(t, ok)
	s, _ := v.String()
	assert.Equal(t, "tester", s)

	gs := root.Child("GlobalSettings")
	assert.NotNil(t, gs)
	assert.NotNil(t, gs.Child("Empty"))
}

func TestParseBinaryDecodesArrayValues(t *testing.T) {
	flat := []float64{1, 2, 3, 4, 5, 6}
	raw := make([]byte, len(flat)*8)
	for i, f := range flat {
		binary.LittleEndian.PutUint64(raw[i*8:], math.Float64bits(f))
	}

	original := &dom.RawNode{
		Children: []*dom.RawNode{
			{
				Name:   "Vertices",
				Values: []dom.Value{dom.NewRawArray(dom.TypeArrayFloat64, raw, len(flat), 8)},
			},
		},
	}

	encoded := EncodeBinary(original, version7500)
	root, _, err := parseBinary(encoded, newPathStack(8))
	assert.NoError(t, err)

	v, ok := root.Child("Vertices").Value(0)
	assert.True(t, ok)
	got, err := v.ArrayF64()
	assert.NoError(t, err)
	assert.Equal(t, flat, got)
}
