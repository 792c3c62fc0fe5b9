package fbx

import (
	"bytes"
	"errors"
	"io"
)

// ByteSource is the L0 abstraction over random or streaming file access
// (spec §4.1). Implementations need only support sequential Read; Skip and
// Size are optional fast paths a source may support by also implementing
// Skipper / Sizer.
type ByteSource interface {
	io.ReadCloser
}

// Skipper is an optional ByteSource capability: advance n bytes without
// materialising them.
type Skipper interface {
	Skip(n int64) error
}

// Sizer is an optional ByteSource capability: report the total byte size
// up front, when known (e.g. a file or in-memory span, not an arbitrary
// stream).
type Sizer interface {
	Size() (int64, bool)
}

// memSource is the in-memory byte span mode: zero-copy over a []byte the
// caller already owns.
type memSource struct {
	r *bytes.Reader
}

// NewMemorySource wraps data as a zero-copy ByteSource. data is not copied
// and must not be mutated while a load using it is in progress.
func NewMemorySource(data []byte) ByteSource {
	return &memSource{r: bytes.NewReader(data)}
}

func (m *memSource) Read(p []byte) (int, error) { return m.r.Read(p) }
func (m *memSource) Close() error                { return nil }

func (m *memSource) Skip(n int64) error {
	_, err := m.r.Seek(n, io.SeekCurrent)
	return err
}

func (m *memSource) Size() (int64, bool) {
	return m.r.Size(), true
}

// streamSource adapts an arbitrary io.ReadCloser (spec §4.1's "stream with
// read and optional skip/size" mode). Skip is synthesised from Read when
// the wrapped stream doesn't support seeking, exactly as spec §4.1 allows.
type streamSource struct {
	rc io.ReadCloser
}

// NewStreamSource wraps an io.ReadCloser as a ByteSource. If rc also
// implements io.Seeker, Skip uses SeekCurrent directly; otherwise Skip
// reads and discards.
func NewStreamSource(rc io.ReadCloser) ByteSource {
	return &streamSource{rc: rc}
}

func (s *streamSource) Read(p []byte) (int, error) { return s.rc.Read(p) }
func (s *streamSource) Close() error                { return s.rc.Close() }

func (s *streamSource) Skip(n int64) error {
	if seeker, ok := s.rc.(io.Seeker); ok {
		_, err := seeker.Seek(n, io.SeekCurrent)
		return err
	}
	_, err := io.CopyN(io.Discard, s.rc, n)
	return err
}

// readAll drains a ByteSource fully, honouring an optional progress
// callback at the configured granularity (spec §5 cancellation). bufSize
// sets the read-chunk size (cfg.ReadBufferSize); a non-positive value
// falls back to a 64KiB chunk. It returns ErrCancelled (wrapped) the
// moment the callback requests cancellation.
func readAll(src ByteSource, progress ProgressFunc, total int64, bufSize int) ([]byte, error) {
	var buf bytes.Buffer
	if sz, ok := src.(Sizer); ok {
		if n, known := sz.Size(); known {
			buf.Grow(int(n))
			total = n
		}
	}

	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	chunk := make([]byte, bufSize)
	var read int64
	for {
		n, err := src.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			read += int64(n)
			if progress != nil {
				if progress(read, total) == ProgressCancel {
					return nil, newError(ErrCancelled, "load cancelled after %d bytes", read)
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, newError(ErrTruncated, "byte source read failed: %v", err)
		}
		if n == 0 {
			break
		}
	}
	return buf.Bytes(), nil
}

// ErrSourceClosed is an error value an OpenFileFunc can return when a
// requested external file resolves to no source at all. Nothing in this
// package returns or checks for it.
var ErrSourceClosed = errors.New("fbx: external file source not available")
