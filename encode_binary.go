package fbx

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/g3n/fbx/dom"
)

// EncodeBinary serialises a RawNode tree (as produced by either tokenizer)
// back into the binary envelope: magic, little-endian version, the node
// records at the chosen field width, and the 13/25-byte null terminator
// record. It exists to satisfy the round-trip testable property in spec
// §8 ("ASCII→binary encoding of a minimal node produces a byte-exact
// prefix of the binary envelope") and as a general tree-to-bytes encoder
// any future writer-side tool can reuse; this library itself never writes
// FBX files as part of a load (writing is a stated Non-goal).
func EncodeBinary(root *dom.RawNode, version int32) []byte {
	var buf bytes.Buffer
	buf.Write(binaryMagic)
	var verBytes [4]byte
	binary.LittleEndian.PutUint32(verBytes[:], uint32(version))
	buf.Write(verBytes[:])

	wide := version >= version7500
	base := buf.Len()
	for _, child := range root.Children {
		encodeNode(&buf, child, wide, base)
		base += nodeRecordSize(child, wide)
	}
	writeTerminator(&buf, wide)
	return buf.Bytes()
}

func writeUint(buf *bytes.Buffer, v uint64, wide bool) {
	if wide {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], v)
		buf.Write(b[:])
		return
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

func writeTerminator(buf *bytes.Buffer, wide bool) {
	width := 4
	if wide {
		width = 8
	}
	buf.Write(make([]byte, width*3+1))
}

// encodeNode writes n's record directly into buf at the position buf is
// already at, which must equal base (the record's absolute offset in the
// final byte stream). end_offset is a file-absolute position per the binary
// format (spec §4.4), not a length relative to the record itself, so it is
// computed from base via nodeRecordSize rather than from any local buffer
// size.
func encodeNode(buf *bytes.Buffer, n *dom.RawNode, wide bool, base int) {
	width := 4
	if wide {
		width = 8
	}

	var valuesBuf bytes.Buffer
	for _, v := range n.Values {
		encodeValue(&valuesBuf, v)
	}

	endOffset := uint64(base + nodeRecordSize(n, wide))
	writeUint(buf, endOffset, wide)
	writeUint(buf, uint64(len(n.Values)), wide)
	writeUint(buf, uint64(valuesBuf.Len()), wide)
	buf.WriteByte(byte(len(n.Name)))
	buf.WriteString(n.Name)
	buf.Write(valuesBuf.Bytes())

	childBase := base + width*3 + 1 + len(n.Name) + valuesBuf.Len()
	for _, c := range n.Children {
		encodeNode(buf, c, wide, childBase)
		childBase += nodeRecordSize(c, wide)
	}
	if len(n.Children) > 0 {
		writeTerminator(buf, wide)
	}
}

// nodeRecordSize computes the exact encoded byte length of n's record
// (header fields, name, values, children and terminator), needed up front
// so end_offset can be written before the children it covers are emitted.
func nodeRecordSize(n *dom.RawNode, wide bool) int {
	width := 4
	if wide {
		width = 8
	}
	size := width*3 + 1 + len(n.Name)
	for _, v := range n.Values {
		size += valueEncodedSize(v)
	}
	for _, c := range n.Children {
		size += nodeRecordSize(c, wide)
	}
	if len(n.Children) > 0 {
		size += width*3 + 1
	}
	return size
}

// valueEncodedSize returns how many bytes encodeValue writes for v,
// mirroring encodeValue/encodeArrayValue's layout exactly.
func valueEncodedSize(v dom.Value) int {
	switch v.Code {
	case dom.TypeBool:
		return 2
	case dom.TypeInt16:
		return 3
	case dom.TypeInt32, dom.TypeFloat32:
		return 5
	case dom.TypeInt64, dom.TypeFloat64:
		return 9
	case dom.TypeString:
		s, _ := v.String()
		return 1 + 4 + len(s)
	case dom.TypeBlob:
		b, _ := v.Blob()
		return 1 + 4 + len(b)
	default:
		n, _ := v.Len()
		size := elemSize[v.Code]
		return 1 + 12 + n*size
	}
}

func encodeValue(buf *bytes.Buffer, v dom.Value) {
	switch v.Code {
	case dom.TypeBool:
		buf.WriteByte(byte(v.Code))
		b, _ := v.Bool()
		if b {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case dom.TypeInt16:
		buf.WriteByte(byte(v.Code))
		i, _ := v.Int64()
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(int16(i)))
		buf.Write(b[:])
	case dom.TypeInt32:
		buf.WriteByte(byte(v.Code))
		i, _ := v.Int64()
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(int32(i)))
		buf.Write(b[:])
	case dom.TypeInt64:
		buf.WriteByte(byte(v.Code))
		i, _ := v.Int64()
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(i))
		buf.Write(b[:])
	case dom.TypeFloat32:
		buf.WriteByte(byte(v.Code))
		f, _ := v.Float64()
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(f)))
		buf.Write(b[:])
	case dom.TypeFloat64:
		buf.WriteByte(byte(v.Code))
		f, _ := v.Float64()
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
		buf.Write(b[:])
	case dom.TypeString:
		buf.WriteByte(byte(v.Code))
		s, _ := v.String()
		var ln [4]byte
		binary.LittleEndian.PutUint32(ln[:], uint32(len(s)))
		buf.Write(ln[:])
		buf.WriteString(s)
	case dom.TypeBlob:
		buf.WriteByte(byte(v.Code))
		b, _ := v.Blob()
		var ln [4]byte
		binary.LittleEndian.PutUint32(ln[:], uint32(len(b)))
		buf.Write(ln[:])
		buf.Write(b)
	default:
		encodeArrayValue(buf, v)
	}
}

func encodeArrayValue(buf *bytes.Buffer, v dom.Value) {
	code := byte(rawArrayCode(v.Code))
	buf.WriteByte(code)

	var payload []byte
	switch v.Kind {
	case dom.KindArrayI32:
		arr, _ := v.ArrayI32()
		payload = make([]byte, len(arr)*4)
		for i, x := range arr {
			binary.LittleEndian.PutUint32(payload[i*4:], uint32(x))
		}
	case dom.KindArrayI64:
		arr, _ := v.ArrayI64()
		payload = make([]byte, len(arr)*8)
		for i, x := range arr {
			binary.LittleEndian.PutUint64(payload[i*8:], uint64(x))
		}
	case dom.KindArrayF32:
		arr, _ := v.ArrayF32()
		payload = make([]byte, len(arr)*4)
		for i, x := range arr {
			binary.LittleEndian.PutUint32(payload[i*4:], math.Float32bits(x))
		}
	case dom.KindArrayF64:
		arr, _ := v.ArrayF64()
		payload = make([]byte, len(arr)*8)
		for i, x := range arr {
			binary.LittleEndian.PutUint64(payload[i*8:], math.Float64bits(x))
		}
	case dom.KindArrayBool:
		arr, _ := v.ArrayBool()
		payload = make([]byte, len(arr))
		for i, x := range arr {
			if x {
				payload[i] = 1
			}
		}
	case dom.KindArrayI8:
		arr, _ := v.ArrayI8()
		payload = make([]byte, len(arr))
		for i, x := range arr {
			payload[i] = byte(x)
		}
	}

	n, _ := v.Len()
	var hdr [12]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(n))
	binary.LittleEndian.PutUint32(hdr[4:], 0) // always re-emit raw, uncompressed
	binary.LittleEndian.PutUint32(hdr[8:], uint32(len(payload)))
	buf.Write(hdr[:])
	buf.Write(payload)
}

func rawArrayCode(code dom.TypeCode) dom.TypeCode {
	switch code {
	case dom.TypeArrayInt32:
		return 'i'
	case dom.TypeArrayInt64:
		return 'l'
	case dom.TypeArrayFloat32:
		return 'f'
	case dom.TypeArrayFloat64:
		return 'd'
	case dom.TypeArrayBool:
		return 'b'
	case dom.TypeArrayInt8:
		return 'c'
	default:
		return code
	}
}
