package fbx

import (
	"encoding/binary"
	"math"

	"github.com/g3n/fbx/dom"
)

// binaryMagic is the 23-byte envelope every binary FBX file starts with
// (spec §6): the ASCII string followed by the 0x00 0x1A 0x00 marker.
var binaryMagic = []byte("Kaydara FBX Binary  \x00\x1a\x00")

const version7500 = 7500

// looksBinary reports whether data begins with the binary magic.
func looksBinary(data []byte) bool {
	return len(data) >= len(binaryMagic) && string(data[:len(binaryMagic)]) == string(binaryMagic)
}

// binaryReader walks the length-prefixed node tree (spec §4.4). wide
// selects the 64-bit (FBX ≥7500) vs 32-bit record field width.
type binaryReader struct {
	data  []byte
	wide  bool
	paths *pathStack
}

func readUint(data []byte, pos int, wide bool) (uint64, int) {
	if wide {
		return binary.LittleEndian.Uint64(data[pos:]), pos + 8
	}
	return uint64(binary.LittleEndian.Uint32(data[pos:])), pos + 4
}

// parseBinary decodes the full binary envelope into a synthetic root
// RawNode whose first value is the file version, and whose children are
// the top-level nodes (FBXHeaderExtension, Definitions, Objects, ...).
func parseBinary(data []byte, paths *pathStack) (*dom.RawNode, int32, error) {
	if !looksBinary(data) {
		return nil, 0, newError(ErrBadMagic, "missing binary FBX magic")
	}
	if len(data) < len(binaryMagic)+4 {
		return nil, 0, newError(ErrTruncated, "binary header truncated")
	}
	version := int32(binary.LittleEndian.Uint32(data[len(binaryMagic):]))

	br := &binaryReader{data: data, wide: version >= version7500, paths: paths}
	pos := len(binaryMagic) + 4

	children, _, err := br.readSiblings(pos, len(data))
	if err != nil {
		return nil, version, err
	}

	root := &dom.RawNode{
		Name:     "",
		Values:   []dom.Value{dom.NewInt(dom.TypeInt32, int64(version))},
		Children: children,
	}
	return root, version, nil
}

// readSiblings reads node records starting at pos until it hits an
// all-zero terminator record, runs out of room before limit, or the
// remaining bytes can't hold a header (end of file footer). It returns the
// parsed children and the position just past the terminator (or end of
// usable data if no terminator was found, e.g. at true end of file).
func (br *binaryReader) readSiblings(pos, limit int) ([]*dom.RawNode, int, error) {
	width := 4
	if br.wide {
		width = 8
	}
	recordMin := width*3 + 1

	var out []*dom.RawNode
	for pos+recordMin <= limit {
		if br.isTerminator(pos, width) {
			return out, pos + width*3 + 1, nil
		}
		node, next, err := br.readNode(pos)
		if err != nil {
			return nil, pos, err
		}
		out = append(out, node)
		pos = next
	}
	return out, pos, nil
}

func (br *binaryReader) isTerminator(pos, width int) bool {
	for i := 0; i < width*3+1; i++ {
		if br.data[pos+i] != 0 {
			return false
		}
	}
	return true
}

// readNode reads one node record at pos: header, name, inline values, then
// recurses into children up to end_offset.
func (br *binaryReader) readNode(pos int) (*dom.RawNode, int, error) {
	data := br.data
	width := 4
	if br.wide {
		width = 8
	}
	if pos+3*width+1 > len(data) {
		return nil, pos, newError(ErrTruncated, "truncated node header")
	}

	endOffset, p := readUint(data, pos, br.wide)
	numValues, p := readUint(data, p, br.wide)
	valuesLength, p := readUint(data, p, br.wide)

	if p >= len(data) {
		return nil, pos, newError(ErrTruncated, "truncated node header")
	}
	nameLen := int(data[p])
	p++
	if p+nameLen > len(data) {
		return nil, pos, newError(ErrTruncated, "truncated node name")
	}
	name := string(data[p : p+nameLen])
	p += nameLen

	br.paths.push(name)
	defer br.paths.pop()

	valuesEnd := p + int(valuesLength)
	if valuesEnd > len(data) {
		return nil, pos, br.paths.annotate(newError(ErrTruncated, "node %q values run past end of file", name))
	}

	values := make([]dom.Value, 0, numValues)
	for i := uint64(0); i < numValues; i++ {
		v, next, err := br.readValue(p)
		if err != nil {
			return nil, pos, err
		}
		values = append(values, v)
		p = next
	}
	if p != valuesEnd {
		// Be tolerant of padding a writer may have left between the
		// declared values_length and the actual value bytes consumed.
		p = valuesEnd
	}

	end := int(endOffset)
	if end < p || end > len(data) {
		return nil, pos, br.paths.annotate(newError(ErrMalformedBinary, "node %q end_offset out of range", name))
	}

	var children []*dom.RawNode
	if end > p {
		var err error
		children, p, err = br.readSiblings(p, end)
		if err != nil {
			return nil, pos, err
		}
	}
	if p != end {
		p = end
	}

	return &dom.RawNode{Name: name, Values: values, Children: children}, end, nil
}

var elemSize = map[dom.TypeCode]int{
	dom.TypeArrayInt32:   4,
	dom.TypeArrayInt64:   8,
	dom.TypeArrayFloat32: 4,
	dom.TypeArrayFloat64: 8,
	dom.TypeArrayBool:    1,
	dom.TypeArrayInt8:    1,
}

// readValue reads one inline value starting with its one-byte type code
// (spec §4.4).
func (br *binaryReader) readValue(pos int) (dom.Value, int, error) {
	data := br.data
	if pos >= len(data) {
		return dom.Value{}, pos, newError(ErrTruncated, "truncated value")
	}
	code := dom.TypeCode(data[pos])
	pos++

	switch code {
	case 'C':
		if pos+1 > len(data) {
			return dom.Value{}, pos, newError(ErrTruncated, "truncated bool")
		}
		return dom.NewBool(data[pos] != 0), pos + 1, nil
	case 'Y':
		if pos+2 > len(data) {
			return dom.Value{}, pos, newError(ErrTruncated, "truncated int16")
		}
		return dom.NewInt(code, int64(int16(binary.LittleEndian.Uint16(data[pos:])))), pos + 2, nil
	case 'I':
		if pos+4 > len(data) {
			return dom.Value{}, pos, newError(ErrTruncated, "truncated int32")
		}
		return dom.NewInt(code, int64(int32(binary.LittleEndian.Uint32(data[pos:])))), pos + 4, nil
	case 'L':
		if pos+8 > len(data) {
			return dom.Value{}, pos, newError(ErrTruncated, "truncated int64")
		}
		return dom.NewInt(code, int64(binary.LittleEndian.Uint64(data[pos:]))), pos + 8, nil
	case 'F':
		if pos+4 > len(data) {
			return dom.Value{}, pos, newError(ErrTruncated, "truncated float32")
		}
		bits := binary.LittleEndian.Uint32(data[pos:])
		return dom.NewFloat(code, float64(math.Float32frombits(bits))), pos + 4, nil
	case 'D':
		if pos+8 > len(data) {
			return dom.Value{}, pos, newError(ErrTruncated, "truncated float64")
		}
		bits := binary.LittleEndian.Uint64(data[pos:])
		return dom.NewFloat(code, math.Float64frombits(bits)), pos + 8, nil
	case 'S':
		n, next, err := br.readLengthPrefixed(pos)
		if err != nil {
			return dom.Value{}, pos, err
		}
		return dom.NewString(string(n)), next, nil
	case 'R':
		n, next, err := br.readLengthPrefixed(pos)
		if err != nil {
			return dom.Value{}, pos, err
		}
		return dom.NewBlob(n), next, nil
	case 'f', 'd', 'l', 'i', 'b', 'c':
		return br.readArray(code, pos)
	default:
		return dom.Value{}, pos, newError(ErrBadValueType, "unknown value type code %q", string(rune(code)))
	}
}

func (br *binaryReader) readLengthPrefixed(pos int) ([]byte, int, error) {
	data := br.data
	if pos+4 > len(data) {
		return nil, pos, newError(ErrTruncated, "truncated length prefix")
	}
	n := int(binary.LittleEndian.Uint32(data[pos:]))
	pos += 4
	if pos+n > len(data) {
		return nil, pos, newError(ErrTruncated, "length-prefixed value runs past end of file")
	}
	return data[pos : pos+n], pos + n, nil
}

func (br *binaryReader) readArray(code dom.TypeCode, pos int) (dom.Value, int, error) {
	data := br.data
	if pos+12 > len(data) {
		return dom.Value{}, pos, newError(ErrTruncated, "truncated array header")
	}
	count := int(binary.LittleEndian.Uint32(data[pos:]))
	encoding := binary.LittleEndian.Uint32(data[pos+4:])
	compressedLen := int(binary.LittleEndian.Uint32(data[pos+8:]))
	pos += 12
	if pos+compressedLen > len(data) {
		return dom.Value{}, pos, newError(ErrTruncated, "array payload runs past end of file")
	}
	payload := data[pos : pos+compressedLen]
	pos += compressedLen

	domCode := arrayTypeCode(code)
	size := elemSize[domCode]

	switch encoding {
	case 0:
		if len(payload) != count*size {
			return dom.Value{}, pos, newError(ErrMalformedBinary, "raw array length mismatch: got %d bytes, want %d", len(payload), count*size)
		}
		return dom.NewRawArray(domCode, payload, count, size), pos, nil
	case 1:
		return dom.NewDeflatedArray(domCode, payload, count, size), pos, nil
	default:
		return dom.Value{}, pos, newError(ErrMalformedBinary, "unknown array encoding %d", encoding)
	}
}

func arrayTypeCode(code dom.TypeCode) dom.TypeCode {
	switch code {
	case 'i':
		return dom.TypeArrayInt32
	case 'l':
		return dom.TypeArrayInt64
	case 'f':
		return dom.TypeArrayFloat32
	case 'd':
		return dom.TypeArrayFloat64
	case 'b':
		return dom.TypeArrayBool
	case 'c':
		return dom.TypeArrayInt8
	default:
		return code
	}
}
