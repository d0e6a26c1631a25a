package smf

import "fmt"

// Format is the SMF header format field. Only 0 and 1 are supported;
// format 2 (independent, non-simultaneous tracks) is out of scope.
type Format uint16

const (
	FormatSingleTrack Format = 0
	FormatMultiTrack  Format = 1
)

// Limits bounds the resources a session will use. DefaultLimits
// matches the original library's compile-time constants; internal/config
// lets a deployment override them at process start.
type Limits struct {
	MaxTracks             int
	MetaEventMaxDataSize  int
	CacheSize             int
	C0Base                int // one of -2, -1, 0: controls note-name octave numbering
}

// DefaultLimits returns the compile-time defaults.
func DefaultLimits() Limits {
	return Limits{
		MaxTracks:            32,
		MetaEventMaxDataSize: MetaEventMaxDataSize,
		CacheSize:            10 * 1024,
		C0Base:               0,
	}
}

// Header describes the parsed SMF header chunk.
type Header struct {
	Format     Format
	TrackCount int
	PPQN       uint16
}

// TrackCursor tracks one track's decode position and running state.
// Running-status state lives here, per track, never globally.
type TrackCursor struct {
	BaseOffset     int64
	EndOffset      int64
	ReadOffset     int64
	AbsTick        int64
	DeltaRemaining int64
	LastStatus     byte
	LastMsgType    MessageKind
	LastMsgChannel int
	Finished       bool

	// Debug/instrumentation fields, mirroring the original's
	// debugLastClock/debugLastMsgDt: the clock reading at the track's
	// last dispatch and the delta of its last decoded message. They are
	// recorded only; the scheduler's jitter check does not read them.
	DebugLastDispatchClockUs int64
	DebugLastMsgDeltaTicks   uint32
}

const (
	mthdMagic = "MThd"
	mtrkMagic = "MTrk"
)

// ParseHeader implements the SMF open/header-parse algorithm: verify
// the MThd magic, the header size, the format (0 or 1 only), the PPQN
// (rejecting an SMPTE division), then locate each track's MTrk chunk
// and build its initial cursor.
func ParseHeader(src ByteSource, limits Limits) (*Header, []TrackCursor, error) {
	var magic [4]byte
	if err := readBytes(src, 0, magic[:]); err != nil {
		return nil, nil, fmt.Errorf("smf: reading header magic: %w", ErrInvalidFormat)
	}
	if string(magic[:]) != mthdMagic {
		return nil, nil, fmt.Errorf("smf: missing MThd magic: %w", ErrInvalidFormat)
	}

	headerSize, err := readDword(src, 4)
	if err != nil {
		return nil, nil, fmt.Errorf("smf: reading header size: %w", ErrInvalidFormat)
	}
	if headerSize < 6 {
		return nil, nil, fmt.Errorf("smf: header size %d < 6: %w", headerSize, ErrInvalidFormat)
	}

	formatField, err := readWord(src, 8)
	if err != nil {
		return nil, nil, fmt.Errorf("smf: reading format: %w", ErrInvalidFormat)
	}
	if formatField != uint16(FormatSingleTrack) && formatField != uint16(FormatMultiTrack) {
		return nil, nil, fmt.Errorf("smf: unsupported format %d: %w", formatField, ErrInvalidFormat)
	}

	trackCountField, err := readWord(src, 10)
	if err != nil {
		return nil, nil, fmt.Errorf("smf: reading track count: %w", ErrInvalidFormat)
	}
	trackCount := int(trackCountField)
	if trackCount > limits.MaxTracks {
		return nil, nil, fmt.Errorf("smf: %d tracks exceeds limit %d: %w", trackCount, limits.MaxTracks, ErrTrackLimitExceeded)
	}

	division, err := readWord(src, 12)
	if err != nil {
		return nil, nil, fmt.Errorf("smf: reading division: %w", ErrInvalidFormat)
	}
	if division&0x8000 != 0 {
		return nil, nil, fmt.Errorf("smf: SMPTE time division not supported: %w", ErrInvalidFormat)
	}

	header := &Header{
		Format:     Format(formatField),
		TrackCount: trackCount,
		PPQN:       division,
	}

	cursors := make([]TrackCursor, trackCount)
	offset := int64(8) + int64(headerSize)
	for i := 0; i < trackCount; i++ {
		var chunkMagic [4]byte
		if err := readBytes(src, offset, chunkMagic[:]); err != nil {
			return nil, nil, fmt.Errorf("smf: reading track %d chunk magic: %w", i, ErrInvalidFormat)
		}
		if string(chunkMagic[:]) != mtrkMagic {
			return nil, nil, fmt.Errorf("smf: track %d missing MTrk magic: %w", i, ErrInvalidFormat)
		}
		chunkLen, err := readDword(src, offset+4)
		if err != nil {
			return nil, nil, fmt.Errorf("smf: reading track %d chunk length: %w", i, ErrInvalidFormat)
		}
		base := offset + 8
		end := base + int64(chunkLen)
		cursors[i] = TrackCursor{
			BaseOffset: base,
			EndOffset:  end,
			ReadOffset: base,
		}
		offset = end
	}

	return header, cursors, nil
}
