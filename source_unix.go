//go:build darwin || linux

package fbx

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// mmapSource is the file-opened-by-path mode from spec §4.1, backed by an
// mmap'd view of the file rather than a buffered read. Read copies out of
// the mapping, and LoadFile drains the source through readAll into its own
// buffer before tokenizing, as it does for any other ByteSource.
type mmapSource struct {
	data []byte
	pos  int
	f    *os.File
}

// OpenFile opens path as a ByteSource using mmap when possible, falling
// back to NewStreamSource over a regular *os.File if mmap fails (e.g. the
// file is on a filesystem that doesn't support it, or is empty).
func OpenFile(path string) (ByteSource, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newError(ErrFileNotFound, "open %q: %v", path, err)
		}
		return nil, newError(ErrFileNotFound, "open %q: %v", path, err)
	}

	info, err := f.Stat()
	if err != nil || info.Size() == 0 {
		return NewStreamSource(f), nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return NewStreamSource(f), nil
	}
	return &mmapSource{data: data, f: f}, nil
}

func (m *mmapSource) Read(p []byte) (int, error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

func (m *mmapSource) Skip(n int64) error {
	m.pos += int(n)
	return nil
}

func (m *mmapSource) Size() (int64, bool) {
	return int64(len(m.data)), true
}

func (m *mmapSource) Close() error {
	err := unix.Munmap(m.data)
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	return err
}
