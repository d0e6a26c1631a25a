// Package cache implements the byte-addressable file cache the SMF
// decoder streams from: a fixed-size window over the open file,
// refilled on a miss, with no heap allocation once constructed.
package cache

import (
	"fmt"

	"github.com/zurustar/smfplayer/internal/host"
)

// DefaultSize is the default cache window size (10 KiB), matching the
// original library's PLAYBACK_CACHE_SIZE.
const DefaultSize = 10 * 1024

// retreatBytes is the conservative backward bias applied to a cache
// miss's refill offset. Undocumented in the source this module was
// distilled from; kept as a named constant rather than inlined so a
// future investigation into its rationale has somewhere to attach
// itself. See DESIGN.md Open Questions.
const retreatBytes = 8

// FileCache is a single window over one open file. One instance
// belongs to exactly one session; it is never shared across sessions.
type FileCache struct {
	file        host.File
	data        []byte
	windowStart int64
	windowLen   int
	valid       bool
	fileSize    int64
}

// New creates a FileCache of the given size (0 selects DefaultSize)
// backed by an already-open file handle.
func New(file host.File, size int) *FileCache {
	if size <= 0 {
		size = DefaultSize
	}
	sz, _ := file.Size()
	return &FileCache{
		file:     file,
		data:     make([]byte, size),
		fileSize: sz,
	}
}

// Invalidate forces the next Read to refill the window.
func (c *FileCache) Invalidate() {
	c.valid = false
	c.windowLen = 0
}

// Read copies up to numBytes bytes starting at startOffset into dst,
// refilling the cache window on a miss, and returns the number of
// bytes actually copied. A short read at end-of-file is permitted and
// is not itself an error; the caller sees fewer bytes than requested.
func (c *FileCache) Read(dst []byte, startOffset int64, numBytes int) (int, error) {
	if numBytes > len(dst) {
		numBytes = len(dst)
	}
	if startOffset < 0 || numBytes <= 0 {
		return 0, nil
	}

	if !c.covers(startOffset, numBytes) {
		if err := c.refill(startOffset); err != nil {
			return 0, err
		}
	}

	rel := int(startOffset - c.windowStart)
	if rel < 0 || rel >= c.windowLen {
		return 0, nil
	}
	avail := c.windowLen - rel
	n := numBytes
	if n > avail {
		n = avail
	}
	copy(dst[:n], c.data[rel:rel+n])
	return n, nil
}

func (c *FileCache) covers(startOffset int64, numBytes int) bool {
	if !c.valid {
		return false
	}
	end := startOffset + int64(numBytes)
	windowEnd := c.windowStart + int64(c.windowLen)
	return startOffset >= c.windowStart && end <= windowEnd
}

func (c *FileCache) refill(startOffset int64) error {
	refillFrom := startOffset - retreatBytes
	if refillFrom < 0 {
		refillFrom = 0
	}
	n, err := c.file.ReadAt(c.data, refillFrom)
	if err != nil && n == 0 {
		return fmt.Errorf("cache: refilling window at %d: %w", refillFrom, err)
	}
	c.windowStart = refillFrom
	c.windowLen = n
	c.valid = true
	return nil
}
