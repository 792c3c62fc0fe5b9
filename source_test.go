package fbx

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemorySourceReadAndSkip(t *testing.T) {
	src := NewMemorySource([]byte("hello world"))
	buf := make([]byte, 5)
	n, err := src.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))

	skipper := src.(Skipper)
	assert.NoError(t, skipper.Skip(1))

	rest := make([]byte, 5)
	n, err = src.Read(rest)
	assert.NoError(t, err)
	assert.Equal(t, "world", string(rest[:n]))

	sizer := src.(Sizer)
	total, ok := sizer.Size()
	assert.True(t, ok)
	assert.Equal(t, int64(11), total)
}

type noSeekReader struct {
	r io.Reader
}

func (n *noSeekReader) Read(p []byte) (int, error) { return n.r.Read(p) }
func (n *noSeekReader) Close() error                { return nil }

func TestStreamSourceSkipWithoutSeekerReadsAndDiscards(t *testing.T) {
	src := NewStreamSource(&noSeekReader{r: bytes.NewReader([]byte("abcdefgh"))})
	skipper := src.(Skipper)
	assert.NoError(t, skipper.Skip(3))

	rest := make([]byte, 5)
	n, err := src.Read(rest)
	assert.NoError(t, err)
	assert.Equal(t, "defgh", string(rest[:n]))
}

func TestReadAllDrainsSourceFully(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 200*1024)
	src := NewMemorySource(data)
	got, err := readAll(src, nil, 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestReadAllHonoursCustomBufferSize(t *testing.T) {
	data := bytes.Repeat([]byte("z"), 10*1024)
	src := NewMemorySource(data)
	got, err := readAll(src, nil, 0, 4096)
	assert.NoError(t, err)
	assert.Equal(t, data, got, "a smaller read chunk must still drain the source fully")
}

func TestReadAllHonoursProgressCancellation(t *testing.T) {
	data := bytes.Repeat([]byte("y"), 200*1024)
	src := NewMemorySource(data)
	calls := 0
	_, err := readAll(src, func(read, total int64) ProgressStatus {
		calls++
		return ProgressCancel
	}, 0, 0)
	assert.Error(t, err)
	var fe *Error
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, ErrCancelled, fe.Kind)
	assert.Equal(t, 1, calls)
}
