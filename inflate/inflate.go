package inflate

import (
	"encoding/binary"
	"hash/adler32"
)

var lengthBase = [29]int{3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31, 35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258}
var lengthExtra = [29]uint{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0}

var distBase = [30]int{1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193, 257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577}
var distExtra = [30]uint{0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13}

var clOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

var staticLitTree *huffTree
var staticDistTree *huffTree

func init() {
	litLens := make([]int, 288)
	for i := 0; i < 144; i++ {
		litLens[i] = 8
	}
	for i := 144; i < 256; i++ {
		litLens[i] = 9
	}
	for i := 256; i < 280; i++ {
		litLens[i] = 7
	}
	for i := 280; i < 288; i++ {
		litLens[i] = 8
	}
	staticLitTree, _ = buildHuffman(litLens)

	distLens := make([]int, 30)
	for i := range distLens {
		distLens[i] = 5
	}
	staticDistTree, _ = buildHuffman(distLens)
}

// Inflate decompresses the zlib-wrapped DEFLATE stream src into dst, which
// must already be sized to exactly hold the expected decompressed length
// (the DOM layer knows this length up front from the array header). It
// returns the number of bytes written and a stable error on failure; error
// Codes match the ufbx test fixtures bit for bit (see the Error type in
// errors.go and spec §8).
func Inflate(dst, src []byte) (int, error) {
	if len(src) < 2 {
		return 0, newErr(ErrBadCMF, "truncated zlib header")
	}
	cmf, flg := src[0], src[1]
	if cmf&0x0F != 8 || (cmf>>4) > 7 {
		return 0, newErr(ErrBadCMF, "unsupported compression method")
	}
	if (flg>>5)&1 != 0 {
		return 0, newErr(ErrFDictSet, "preset dictionary not supported")
	}
	if (uint16(cmf)*256+uint16(flg))%31 != 0 {
		return 0, newErr(ErrBadFCheck, "bad fcheck")
	}

	body := src[2:]
	br := NewBitReader(body)
	c := &cursor{br: br, limit: uint64(len(body)) * 8}

	dpos := 0
	for {
		final := c.readBit()
		btype := c.readBits(2)

		var err error
		switch btype {
		case 0:
			dpos, err = inflateStored(c, body, dst, dpos)
		case 1:
			dpos, err = inflateBlock(c, dst, dpos, staticLitTree, staticDistTree)
		case 2:
			var lit, dist *huffTree
			lit, dist, err = readDynamicTrees(c)
			if err == nil {
				dpos, err = inflateBlock(c, dst, dpos, lit, dist)
			}
		default:
			err = newErr(ErrBadBlockType, "reserved block type")
		}
		if err != nil {
			return dpos, err
		}
		if c.overflowed() {
			return dpos, newErr(ErrSourceOverflow, "consumed more bits than available")
		}
		if final == 1 {
			break
		}
	}

	c.alignToByte()
	csOff := int(c.pos / 8)
	if csOff+4 > len(body) {
		return dpos, newErr(ErrTruncatedChecksum, "truncated adler32 checksum")
	}
	stored := binary.BigEndian.Uint32(body[csOff : csOff+4])
	if got := adler32.Checksum(dst[:dpos]); got != stored {
		return dpos, newErr(ErrBadChecksum, "adler32 mismatch")
	}
	return dpos, nil
}

func inflateStored(c *cursor, body, dst []byte, dpos int) (int, error) {
	c.alignToByte()
	off := int(c.pos / 8)
	if off+4 > len(body) {
		return dpos, newErr(ErrSourceOverflow, "truncated stored block header")
	}
	length := int(body[off]) | int(body[off+1])<<8
	nlen := int(body[off+2]) | int(body[off+3])<<8
	if length != (^nlen & 0xFFFF) {
		return dpos, newErr(ErrStoredLengthMismatch, "stored block LEN/NLEN mismatch")
	}
	c.pos += 32
	start := off + 4
	if start+length > len(body) {
		return dpos, newErr(ErrSourceOverflow, "stored block runs past source")
	}
	if dpos+length > len(dst) {
		return dpos, newErr(ErrStoredDestOverflow, "stored block overflows destination")
	}
	copy(dst[dpos:dpos+length], body[start:start+length])
	c.pos += uint64(length) * 8
	return dpos + length, nil
}

func inflateBlock(c *cursor, dst []byte, dpos int, lit, dist *huffTree) (int, error) {
	for {
		if c.overflowed() {
			return dpos, newErr(ErrSourceOverflow, "consumed more bits than available")
		}
		sym, ok := lit.decode(c)
		if !ok {
			return dpos, newErr(ErrBadLitLengthHuffman, "no matching literal/length code")
		}
		if sym < 256 {
			if dpos >= len(dst) {
				return dpos, newErr(ErrLiteralOverflow, "literal overflows destination")
			}
			dst[dpos] = byte(sym)
			dpos++
			continue
		}
		if sym == 256 {
			return dpos, nil
		}

		idx := sym - 257
		if idx < 0 || idx >= len(lengthBase) {
			return dpos, newErr(ErrBadLiteralLength, "invalid length symbol")
		}
		length := lengthBase[idx] + int(c.readBits(lengthExtra[idx]))

		dsym, ok := dist.decode(c)
		if !ok {
			return dpos, newErr(ErrBadDistanceHuffman, "no matching distance code")
		}
		if dsym < 0 || dsym >= len(distBase) {
			return dpos, newErr(ErrBadDistance, "invalid distance symbol")
		}
		distance := distBase[dsym] + int(c.readBits(distExtra[dsym]))
		if distance > dpos {
			return dpos, newErr(ErrBadDistance, "distance refers before start of output")
		}
		if dpos+length > len(dst) {
			return dpos, newErr(ErrMatchOverflow, "match copy overflows destination")
		}
		for i := 0; i < length; i++ {
			dst[dpos] = dst[dpos-distance]
			dpos++
		}
	}
}

func readDynamicTrees(c *cursor) (*huffTree, *huffTree, error) {
	hlit := int(c.readBits(5)) + 257
	hdist := int(c.readBits(5)) + 1
	hclen := int(c.readBits(4)) + 4

	clLens := make([]int, 19)
	for i := 0; i < hclen; i++ {
		clLens[clOrder[i]] = int(c.readBits(3))
	}
	clTree, left := buildHuffman(clLens)
	if left < 0 {
		return nil, nil, newErr(ErrTreeOverfull, "overfull code-length tree")
	}
	if left > 0 {
		return nil, nil, newErr(ErrTreeUnderfull, "underfull code-length tree")
	}

	lengths, err := readCodeLengths(c, clTree, hlit+hdist)
	if err != nil {
		return nil, nil, err
	}
	litLens := lengths[:hlit]
	distLens := lengths[hlit:]

	litTree, left := buildHuffman(litLens)
	if left < 0 {
		return nil, nil, newErr(ErrTreeOverfull, "overfull literal/length tree")
	}
	if left > 0 {
		return nil, nil, newErr(ErrTreeUnderfull, "underfull literal/length tree")
	}

	distTree, left := buildHuffman(distLens)
	if left < 0 {
		return nil, nil, newErr(ErrTreeOverfull, "overfull distance tree")
	}
	if left > 0 && nonzeroCount(distLens) != 1 {
		return nil, nil, newErr(ErrTreeUnderfull, "underfull distance tree")
	}

	return litTree, distTree, nil
}

func readCodeLengths(c *cursor, clTree *huffTree, total int) ([]int, error) {
	lengths := make([]int, total)
	i := 0
	prev := 0
	for i < total {
		sym, ok := clTree.decode(c)
		if !ok {
			return nil, newErr(ErrBadLitLengthHuffman, "no matching code-length code")
		}
		switch {
		case sym < 16:
			lengths[i] = sym
			prev = sym
			i++
		case sym == 16:
			n := 3 + int(c.readBits(2))
			if i+n > total {
				return nil, newErr(ErrCodeLen16Overflow, "code-length 16 run overflows table")
			}
			for j := 0; j < n; j++ {
				lengths[i] = prev
				i++
			}
		case sym == 17:
			n := 3 + int(c.readBits(3))
			if i+n > total {
				return nil, newErr(ErrCodeLen17Overflow, "code-length 17 run overflows table")
			}
			for j := 0; j < n; j++ {
				lengths[i] = 0
				i++
			}
			prev = 0
		case sym == 18:
			n := 11 + int(c.readBits(7))
			if i+n > total {
				return nil, newErr(ErrCodeLen18Overflow, "code-length 18 run overflows table")
			}
			for j := 0; j < n; j++ {
				lengths[i] = 0
				i++
			}
			prev = 0
		default:
			return nil, newErr(ErrBadLiteralLength, "invalid code-length symbol")
		}
	}
	return lengths, nil
}
