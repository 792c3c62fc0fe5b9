package fbx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/g3n/fbx/dom"
)

// TestEncodeBinaryHeaderIsByteExact checks the literal header bytes spec §8
// calls out directly: the 23-byte magic string, the little-endian version,
// and the null-terminator record at the end of the top-level node list.
func TestEncodeBinaryHeaderIsByteExact(t *testing.T) {
	root := &dom.RawNode{
		Children: []*dom.RawNode{
			{Name: "Node", Values: []dom.Value{dom.NewInt(dom.TypeInt32, 1)}},
		},
	}
	encoded := EncodeBinary(root, version7500)

	assert.Equal(t, []byte("Kaydara FBX Binary  \x00\x1a\x00"), encoded[:23])
	assert.Equal(t, byte(0x4c), encoded[23]) // 7500 == 0x1d4c, little-endian
	assert.Equal(t, byte(0x1d), encoded[24])
	assert.Equal(t, byte(0x00), encoded[25])
	assert.Equal(t, byte(0x00), encoded[26])

	terminator := encoded[len(encoded)-(8*3+1):]
	for _, b := range terminator {
		assert.Equal(t, byte(0x00), b)
	}
}

// TestEncodeBinaryASCIIEchoMatchesKnownLayout is spec §8 end-to-end scenario
// 3: tokenise "Node: 1 {Sub:2,3}" and verify the binary layout nests Sub
// under Node the same way the binary tokenizer itself would produce, using
// the version parseASCII reports (7500 with no FBXVersion, so 64-bit fields).
func TestEncodeBinaryASCIIEchoMatchesKnownLayout(t *testing.T) {
	src := "Node: 1 {\nSub: 2, 3\n}\n"
	root, version, err := parseASCII([]byte(src), newPathStack(8))
	assert.NoError(t, err)

	encoded := EncodeBinary(root, version)
	decoded, decodedVersion, err := parseBinary(encoded, newPathStack(8))
	assert.NoError(t, err)
	assert.Equal(t, version, decodedVersion)

	node := decoded.Child("Node")
	assert.NotNil(t, node)
	v, ok := node.Value(0)
	assert.True(t, ok)
	n, _ := v.Int64()
	assert.Equal(t, int64(1), n)

	sub := node.Child("Sub")
	assert.NotNil(t, sub)
	v0, _ := sub.Value(0)
	v1, _ := sub.Value(1)
	n0, _ := v0.Int64()
	n1, _ := v1.Int64()
	assert.Equal(t, int64(2), n0)
	assert.Equal(t, int64(3), n1)
}

// TestEncodeBinaryNarrowWidthRoundTrips exercises the pre-7500 (32-bit
// field) framing path, which uses a different terminator length and field
// width than the version7500+ path covered elsewhere.
func TestEncodeBinaryNarrowWidthRoundTrips(t *testing.T) {
	root := &dom.RawNode{
		Children: []*dom.RawNode{
			{
				Name: "Outer",
				Children: []*dom.RawNode{
					{Name: "Inner", Values: []dom.Value{dom.NewString("leaf")}},
				},
			},
		},
	}
	encoded := EncodeBinary(root, 7400)
	terminator := encoded[len(encoded)-(4*3+1):]
	for _, b := range terminator {
		assert.Equal(t, byte(0x00), b)
	}

	decoded, version, err := parseBinary(encoded, newPathStack(8))
	assert.NoError(t, err)
	assert.Equal(t, int32(7400), version)

	inner := decoded.Child("Outer").Child("Inner")
	assert.NotNil(t, inner)
	v, ok := inner.Value(0)
	assert.True(t, ok)
	s, _ := v.String()
	assert.Equal(t, "leaf", s)
}

func TestNodeRecordSizeMatchesActualEncodedLength(t *testing.T) {
	n := &dom.RawNode{
		Name:   "Leaf",
		Values: []dom.Value{dom.NewInt(dom.TypeInt32, 42), dom.NewString("hi")},
	}
	out := EncodeBinary(&dom.RawNode{Children: []*dom.RawNode{n}}, version7500)
	buf := out[27:] // past magic + version
	assert.Equal(t, nodeRecordSize(n, true), len(buf)-(8*3+1)) // minus the trailing top-level terminator
}
