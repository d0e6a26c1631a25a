package smf

// ByteSource is the minimal offset-addressable read surface the
// decoder needs. internal/cache.FileCache satisfies this structurally;
// the decoder never imports the cache package directly so the two
// stay decoupled.
type ByteSource interface {
	Read(dst []byte, startOffset int64, numBytes int) (int, error)
}

func readBytes(src ByteSource, offset int64, dst []byte) error {
	n, err := src.Read(dst, offset, len(dst))
	if err != nil {
		return err
	}
	if n < len(dst) {
		return errShortRead
	}
	return nil
}

func readByte(src ByteSource, offset int64) (byte, error) {
	var buf [1]byte
	if err := readBytes(src, offset, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// readWord reads a big-endian uint16.
func readWord(src ByteSource, offset int64) (uint16, error) {
	var buf [2]byte
	if err := readBytes(src, offset, buf[:]); err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// readDword reads a big-endian uint32.
func readDword(src ByteSource, offset int64) (uint32, error) {
	var buf [4]byte
	if err := readBytes(src, offset, buf[:]); err != nil {
		return 0, err
	}
	return uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]), nil
}
