package host

import (
	"fmt"
	"os"
)

// RealFileSystem implements FileSystem over the OS filesystem.
type RealFileSystem struct{}

// NewRealFileSystem returns a FileSystem backed by os.Open.
func NewRealFileSystem() RealFileSystem { return RealFileSystem{} }

func (RealFileSystem) Open(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("host: opening %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("host: statting %s: %w", path, err)
	}
	return &realFile{f: f, size: info.Size()}, nil
}

type realFile struct {
	f    *os.File
	size int64
}

func (r *realFile) ReadAt(dst []byte, offset int64) (int, error) {
	n, err := r.f.ReadAt(dst, offset)
	if n > 0 {
		// A short read purely due to EOF is permitted by the cache
		// contract; only surface an error when nothing was read.
		return n, nil
	}
	return n, err
}

func (r *realFile) Size() (int64, error) { return r.size, nil }

func (r *realFile) Close() error { return r.f.Close() }
