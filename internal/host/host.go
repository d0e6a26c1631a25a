// Package host declares the collaborator surface this module expects
// from its embedder: file access, a clock, and diagnostic printing.
// The core packages depend only on these interfaces and never touch an
// OS file handle, a wall clock, or a terminal directly. This package
// also provides concrete implementations over the real OS
// (RealFileSystem, RealClock, SlogPrinter), which cmd/smfplay uses.
package host

import "io"

// File is the minimal random-access read surface a FileCache needs.
// It intentionally mirrors the shape of the FatFs-style primitives
// (open/seek/read/close/tell) a bare-metal HAL exposes, rather than
// Go's io.ReaderAt alone, so an embedded host can implement it as a
// thin wrapper over f_open/f_lseek/f_read/f_tell without an
// intermediate abstraction layer.
type File interface {
	// ReadAt fills dst starting at offset, returning the number of
	// bytes actually read. A short read at end-of-file is not an
	// error; io.EOF is returned only when zero bytes could be read.
	ReadAt(dst []byte, offset int64) (int, error)
	// Size returns the total file length in bytes.
	Size() (int64, error)
	io.Closer
}

// FileSystem opens files by path for reading. The core never needs
// directory listing or writing.
type FileSystem interface {
	Open(path string) (File, error)
}

// Clock supplies a monotonic microsecond timestamp for the playback
// scheduler's tick computation. A millisecond-resolution host may
// derive this by multiplying by 1000, at the cost of up to ±1ms of
// jitter (see DESIGN.md Open Questions).
type Clock interface {
	NowMicros() int64
}

// Printer surfaces non-fatal diagnostics (ReadError, TruncatedMeta,
// ClockAnomaly, FixedPointOverflow, JitterExceeded) to the embedder.
// Every method must be safe to call from within Tick.
type Printer interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warning(format string, args ...any)
	Error(format string, args ...any)
}
