// Package smf decodes Standard MIDI Files (format 0 and 1) from an
// offset-addressable byte source, one message at a time, without
// allocating on the decode path.
package smf

// MetaEventMaxDataSize bounds the payload captured inline in a Message
// for meta and system-exclusive events. Longer payloads are truncated.
const MetaEventMaxDataSize = 128

const metaBufSize = MetaEventMaxDataSize + 1

// MessageKind discriminates the union of MIDI and meta event shapes
// a Message can hold.
type MessageKind int

const (
	KindNoteOff MessageKind = iota
	KindNoteOn
	KindNoteKeyPressure
	KindControlChange
	KindProgramChange
	KindChannelPressure
	KindPitchWheel
	KindMeta
	KindSysEx
)

func (k MessageKind) String() string {
	switch k {
	case KindNoteOff:
		return "NoteOff"
	case KindNoteOn:
		return "NoteOn"
	case KindNoteKeyPressure:
		return "NoteKeyPressure"
	case KindControlChange:
		return "ControlChange"
	case KindProgramChange:
		return "ProgramChange"
	case KindChannelPressure:
		return "ChannelPressure"
	case KindPitchWheel:
		return "PitchWheel"
	case KindMeta:
		return "Meta"
	case KindSysEx:
		return "SysEx"
	default:
		return "Unknown"
	}
}

// MetaType identifies the meta event subtype (the byte following 0xFF).
type MetaType byte

const (
	MetaSequenceNumber    MetaType = 0x00
	MetaText              MetaType = 0x01
	MetaCopyright         MetaType = 0x02
	MetaTrackName         MetaType = 0x03
	MetaInstrument        MetaType = 0x04
	MetaLyric             MetaType = 0x05
	MetaMarker            MetaType = 0x06
	MetaCuePoint          MetaType = 0x07
	MetaMIDIPort          MetaType = 0x21
	MetaEndSequence       MetaType = 0x2F
	MetaSetTempo          MetaType = 0x51
	MetaSMPTEOffset       MetaType = 0x54
	MetaTimeSig           MetaType = 0x58
	MetaKeySig            MetaType = 0x59
	MetaSequencerSpecific MetaType = 0x7F
)

// key signature bit packing, reproduced from the original decoder:
// the flat/sharp count and its sign live in the low nibble of a single
// byte rather than a signed integer.
const (
	keyMaskKey = 0x07
	keyMaskNeg = 0x08
	keyMaskMin = 0x10
)

// TempoMeta holds a decoded SetTempo event.
type TempoMeta struct {
	MicrosPerQuarter uint32
}

// BPM converts the stored microseconds-per-quarter-note to beats per minute.
func (t TempoMeta) BPM() float64 {
	if t.MicrosPerQuarter == 0 {
		return 0
	}
	return 60_000_000.0 / float64(t.MicrosPerQuarter)
}

// SMPTEMeta holds a decoded SMPTEOffset event.
type SMPTEMeta struct {
	Hours, Minutes, Seconds, Frames, FractionalFrames byte
}

// TimeSigMeta holds a decoded TimeSig event.
type TimeSigMeta struct {
	Numerator              byte
	DenominatorPower       byte // denominator is 2^DenominatorPower
	ClocksPerClick         byte
	ThirtySecondsPerQuarter byte
}

// Message is a fixed-size tagged union covering every event kind this
// decoder produces. It owns its payload buffer; callers that need to
// retain meta/SysEx text past the call that produced it must copy it.
type Message struct {
	Kind       MessageKind
	DeltaTicks uint32
	AbsTick    int64
	Size       int
	Implied    bool // true if the status byte was inherited via running status
	Channel    int  // 1-based; valid for channel message kinds only

	// Channel message payload. Data1 is the note, controller, program
	// or channel pressure; Data2 is the velocity, key pressure or
	// controller value (unused for ProgramChange/ChannelPressure).
	// PitchWheel uses both as the 7-bit low/high halves of the 14-bit
	// value.
	Data1 byte
	Data2 byte

	// Meta payload.
	MetaType       MetaType
	SequenceNumber uint16
	MIDIPort       byte
	Tempo          TempoMeta
	SMPTE          SMPTEMeta
	TimeSig        TimeSigMeta
	KeySigPacked   byte

	// Truncated reports whether the meta/SysEx payload exceeded the
	// decoder's capture limit and was cut short; the scheduler warns
	// through the host print service when this is set.
	Truncated bool

	buf     [metaBufSize]byte
	dataLen int
}

// Payload returns the captured meta/SysEx bytes, NUL-terminated for
// text-carrying meta kinds. Valid only until the next ReadNextMessage
// call on the same Message value.
func (m *Message) Payload() []byte {
	return m.buf[:m.dataLen]
}

// setPayload copies src into the message's inline buffer, NUL-
// terminating it when nulTerminate is set, and reports whether src
// itself had to be cut short to fit. This only catches truncation
// introduced at this final copy step (e.g. by the NUL terminator
// eating into the capacity); a caller that already clipped its read
// to fewer bytes than the event's on-disk length must OR that into
// out.Truncated itself.
func (m *Message) setPayload(src []byte, nulTerminate bool) bool {
	n := len(src)
	limit := MetaEventMaxDataSize
	if nulTerminate {
		limit = MetaEventMaxDataSize - 1
	}
	truncated := false
	if n > limit {
		n = limit
		truncated = true
	}
	copy(m.buf[:n], src[:n])
	if nulTerminate {
		m.buf[n] = 0
		n++
	}
	m.dataLen = n
	return truncated
}

// Note returns the note number for NoteOff/NoteOn/NoteKeyPressure kinds.
func (m *Message) Note() int { return int(m.Data1) }

// Velocity returns the velocity/pressure value for NoteOff/NoteOn/NoteKeyPressure.
func (m *Message) Velocity() int { return int(m.Data2) }

// Controller returns the controller number for ControlChange.
func (m *Message) Controller() int { return int(m.Data1) }

// ControllerValue returns the controller value for ControlChange.
func (m *Message) ControllerValue() int { return int(m.Data2) }

// Program returns the program number for ProgramChange.
func (m *Message) Program() int { return int(m.Data1) }

// Pressure returns the pressure value for ChannelPressure.
func (m *Message) Pressure() int { return int(m.Data1) }

// PitchValue returns the signed 14-bit pitch wheel value, -8192..8191.
func (m *Message) PitchValue() int16 {
	v := (int(m.Data2) << 7) | int(m.Data1)
	return int16(v - 8192)
}

// KeySigAccidentals returns the signed number of sharps (positive) or
// flats (negative) encoded in KeySigPacked.
func (m *Message) KeySigAccidentals() int8 {
	n := int8(m.KeySigPacked & keyMaskKey)
	if m.KeySigPacked&keyMaskNeg != 0 {
		n = -n
	}
	return n
}

// KeySigMinor reports whether the key signature is minor.
func (m *Message) KeySigMinor() bool {
	return m.KeySigPacked&keyMaskMin != 0
}
