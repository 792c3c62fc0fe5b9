package inflate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInflate_StoredAndFixedHuffman(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		want string
	}{
		{
			name: "stored Hello!",
			src:  []byte("\x78\x9c\x01\x06\x00\xf9\xffHello!\x07\xa2\x02\x16"),
			want: "Hello!",
		},
		{
			name: "stored chunks Hello world!",
			src: []byte("\x78\x9c\x00\x06\x00\xf9\xffHello \x01\x06\x00\xf9\xffworld!" +
				"\x1d\x09\x04\x5e"),
			want: "Hello world!",
		},
		{
			name: "fixed huffman Hello world!",
			src:  []byte("x\xda\xf3H\xcd\xc9\xc9W(\xcf/\xcaIQ\x04\x00\x1d\t\x04^"),
			want: "Hello world!",
		},
		{
			name: "fixed huffman match Hello Hello!",
			src:  []byte("x\xda\xf3H\xcd\xc9\xc9W\xf0\x00\x91\x8a\x00\x1b\xbb\x04*"),
			want: "Hello Hello!",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, len(tt.want))
			n, err := Inflate(dst, tt.src)
			assert.NoError(t, err)
			assert.Equal(t, len(tt.want), n)
			assert.Equal(t, tt.want, string(dst[:n]))
		})
	}
}

func TestInflate_MultiPartMatches(t *testing.T) {
	src := []byte("\x78\x9c\x00\x04\x00\xfb\xff\x54\x65\x73\x74\x52\x08" +
		"\x48\x2c\x02\x10\x00\x06\x32\x00\x00\x00\x0c\x52\x39\xcc\x45\x72\xc8" +
		"\x7f\xcd\x9d\x00\x08\x00\xf7\xff\x74\x61\x20\x44\x61\x74\x61\x20\x02" +
		"\x8b\x01\x38\x8c\x43\x12\x00\x00\x00\x00\x40\xff\x5f\x0b\x36\x8b\xc0" +
		"\x12\x80\xf9\xa5\x96\x23\x84\x00\x8e\x36\x10\x41")
	dst := make([]byte, 64)
	n, err := Inflate(dst, src)
	assert.NoError(t, err)
	assert.Equal(t, 48, n)
	assert.Equal(t, "Test Part Data Data Test Data Part New Test Data", string(dst[:n]))
}

func TestInflate_ErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		dst  int
		code int
	}{
		{"bad cmf", []byte("\x79\x9c"), 4, ErrBadCMF},
		{"fdict set", []byte("\x78\xbc"), 4, ErrFDictSet},
		{"bad fcheck", []byte{0x78, 0x00, 'x', '9', 'd'}, 4, ErrBadFCheck},
		{"nlen mismatch", []byte("\x78\x9c\x01\x06\x00\xf8\xffHello!\x07\xa2\x02\x16"), 64, ErrStoredLengthMismatch},
		{"dest overflow", []byte("\x78\x9c\x01\x06\x00\xf9\xffHello!\x07\xa2\x02\x16"), 5, ErrStoredDestOverflow},
		{"src overflow", []byte("\x78\x9c\x01\x06\x00\xf9\xffHello"), 64, ErrSourceOverflow},
		{"bad block type", []byte("\x78\x9c\x07\x08\x00\xf8\xff"), 64, ErrBadBlockType},
		{"truncated checksum", []byte("\x78\x9c\x01\x06\x00\xf9\xffHello!\x07\xa2\x02"), 64, ErrTruncatedChecksum},
		{"bad checksum", []byte("\x78\x9c\x01\x06\x00\xf9\xffHello!\x07\xa2\x02\xff"), 64, ErrBadChecksum},
		{"literal overflow", []byte("x\xda\xf3H\xcd\xc9\xc9W(\xcf/\xcaIQ\x04\x00\x1d\t\x04^"), 8, ErrLiteralOverflow},
		{"match overflow", []byte("x\xda\xf3H\xcd\xc9\xc9W\xf0\x00\x91\x8a\x00\x1b\xbb\x04*"), 8, ErrMatchOverflow},
		{"bad distance", []byte("\x78\x9c\x73\xc9\x2c\x2e\x51\x00\x3d\x00\x0f\xd7\x03\x49"), 64, ErrBadDistance},
		{"bad distance (bit)", []byte("\x78\x9c\x0d\xc3\x41\x09\x00\x00\x00\xc2\xc0\x2a\x56\x13\x6c\x60\x7f\xd8\x1e\xd7\x2f\x06\x0a\x41\x02\x91"), 8, ErrBadDistance},
		{"bad lit length", []byte("\x78\x9c\x05\xc0\x81\x08\x00\x00\x00\x00\x20\x7f\xeb\x0b\x00\x00\x00\x01"), 8, ErrBadLiteralLength},
		{"codelen overfull", []byte("\x78\x9c\x05\x80\x31\x11\x01\x00\x00\x01\xc3\xa9\xe2\x37\x47\xff\xcd\x69\x26\xf4\x0a\x7a\x02\xbb"), 64, ErrTreeOverfull},
		{"codelen underfull", []byte("\x78\x9c\x05\x80\x31\x11\x00\x00\x00\x41\xc3\xa9\xe2\x37\x47\xff\xcd\x69\x26\xf4\x0a\x7a\x02\xbb"), 64, ErrTreeUnderfull},
		{"litlen bad huffman", []byte("\x78\x9c\x05\x40\x81\x09\x00\x20\x08\x7b\xa5\x0f\x7a\xa4\x27\xa2\x46\x0a\xa2\xa0\xfb\x1f\x11\x23\xea\xf8\x16\xc4\xa7\xae\x9b\x0f\x3d\x4e\xe4\x07\x8d"), 64, ErrBadLitLengthHuffman},
		{"distance bad huffman", []byte("\x78\x9c\x1d\xc5\x31\x0d\x00\x00\x0c\x02\x41\x2b\x55\x80\x8a\x9a\x61\x06\xff\x21\xf9\xe5\xfe\x9d\x1e\x48\x3c\x31\xba\x05\x79"), 64, ErrBadDistanceHuffman},
		{"codelen 16 overflow", []byte("\x78\x9c\x05\x80\x85\x0c\x00\x00\x00\xc0\xfc\xa1\x5f\xc3\x06\x05\xf5\x02\xfb"), 64, ErrCodeLen16Overflow},
		{"codelen 17 overflow", []byte("\x78\x9c\x05\xc0\xb1\x0c\x00\x00\x00\x00\x20\x7f\xe7\xae\x26\x00\xfd\x00\xfd"), 64, ErrCodeLen17Overflow},
		{"codelen 18 overflow", []byte("\x78\x9c\x05\xc0\x81\x08\x00\x00\x00\x00\x20\x7f\xdf\x09\x4e\x00\xf5\x00\xf5"), 64, ErrCodeLen18Overflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, tt.dst)
			_, err := Inflate(dst, tt.src)
			if assert.Error(t, err) {
				ie, ok := err.(*Error)
				if assert.True(t, ok, "expected *inflate.Error") {
					assert.Equal(t, tt.code, ie.Code)
				}
			}
		})
	}
}

// TestInflate_BitFlipNeverPanics flips every single bit of a known-good
// stream one at a time and re-inflates it. Every flip must either still
// decode correctly (a bit that doesn't affect the decode path) or fail
// cleanly with a *Error carrying one of the package's recognised codes —
// it must never panic or hang.
func TestInflate_BitFlipNeverPanics(t *testing.T) {
	src := []byte("\x78\x9c\x00\x04\x00\xfb\xff\x54\x65\x73\x74\x52\x08" +
		"\x48\x2c\x02\x10\x00\x06\x32\x00\x00\x00\x0c\x52\x39\xcc\x45\x72\xc8" +
		"\x7f\xcd\x9d\x00\x08\x00\xf7\xff\x74\x61\x20\x44\x61\x74\x61\x20\x02" +
		"\x8b\x01\x38\x8c\x43\x12\x00\x00\x00\x00\x40\xff\x5f\x0b\x36\x8b\xc0" +
		"\x12\x80\xf9\xa5\x96\x23\x84\x00\x8e\x36\x10\x41")

	dst := make([]byte, 64)
	for byteIx := range src {
		for bitIx := 0; bitIx < 8; bitIx++ {
			bit := byte(1) << uint(bitIx)
			src[byteIx] ^= bit
			_, err := Inflate(dst, src)
			src[byteIx] ^= bit

			if err == nil {
				continue
			}
			ie, ok := err.(*Error)
			if !assert.True(t, ok, "byte %d bit %d: expected *inflate.Error, got %T", byteIx, bitIx, err) {
				continue
			}
			assert.NotEqual(t, 0, ie.Code, "byte %d bit %d: error must carry a non-zero code", byteIx, bitIx)
		}
	}
}

func TestBitReader(t *testing.T) {
	data := []byte("\xab\xcd\xef")
	br := NewBitReader(data)
	assert.Equal(t, uint64(0x00EFCDAB), br.Read(0))
	assert.Equal(t, uint64(0x00EFCDAB)>>1, br.Read(1))
}

func TestBitReader_PastEnd(t *testing.T) {
	br := NewBitReader(nil)
	assert.Equal(t, uint64(0), br.Read(0))
}
