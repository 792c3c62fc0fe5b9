//go:build !darwin && !linux

package fbx

import "os"

// OpenFile opens path as a ByteSource. On platforms without the mmap-backed
// fast path (source_unix.go), this falls back to a regular buffered
// *os.File wrapped as a stream source.
func OpenFile(path string) (ByteSource, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newError(ErrFileNotFound, "open %q: %v", path, err)
		}
		return nil, newError(ErrFileNotFound, "open %q: %v", path, err)
	}
	return NewStreamSource(f), nil
}
