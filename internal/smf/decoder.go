package smf

import "fmt"

// Decoder reads Message values from tracks backed by a shared
// ByteSource, one message at a time, in offset order.
type Decoder struct {
	src    ByteSource
	limits Limits
}

// NewDecoder builds a Decoder over src using limits (see DefaultLimits).
func NewDecoder(src ByteSource, limits Limits) *Decoder {
	return &Decoder{src: src, limits: limits}
}

// channelDataBytes reports how many data bytes follow a channel
// message's status byte.
func channelDataBytes(kind MessageKind) int {
	switch kind {
	case KindProgramChange, KindChannelPressure:
		return 1
	default:
		return 2
	}
}

func kindFromStatusNibble(nibble byte) (MessageKind, bool) {
	switch nibble {
	case 0x80:
		return KindNoteOff, true
	case 0x90:
		return KindNoteOn, true
	case 0xA0:
		return KindNoteKeyPressure, true
	case 0xB0:
		return KindControlChange, true
	case 0xC0:
		return KindProgramChange, true
	case 0xD0:
		return KindChannelPressure, true
	case 0xE0:
		return KindPitchWheel, true
	default:
		return 0, false
	}
}

// ReadNextMessage decodes the next event on the given track cursor
// into out. It returns false once the track has reached its end
// offset (or has previously been marked finished by a read error);
// a non-nil error indicates a non-fatal ReadError, after which the
// track is marked finished.
func (d *Decoder) ReadNextMessage(cursor *TrackCursor, out *Message) (bool, error) {
	if cursor.Finished || cursor.ReadOffset >= cursor.EndOffset {
		cursor.Finished = true
		return false, nil
	}

	contentStart := cursor.ReadOffset

	delta, n, err := decodeVLQ(d.src, cursor.ReadOffset)
	if err != nil {
		cursor.Finished = true
		return false, fmt.Errorf("smf: track delta-time: %w", ErrReadError)
	}
	cursor.ReadOffset += n

	firstByte, err := readByte(d.src, cursor.ReadOffset)
	if err != nil {
		cursor.Finished = true
		return false, fmt.Errorf("smf: track status byte: %w", ErrReadError)
	}

	var statusByte byte
	implied := false
	if firstByte&0x80 != 0 {
		statusByte = firstByte
		cursor.ReadOffset++
	} else {
		if cursor.LastStatus < 0x80 || cursor.LastStatus > 0xEF {
			cursor.Finished = true
			return false, fmt.Errorf("smf: running status with no prior channel message: %w", ErrReadError)
		}
		statusByte = cursor.LastStatus
		implied = true
		// firstByte is the first data byte; ReadOffset is not
		// advanced past it yet, it is consumed below as data.
	}

	out.DeltaTicks = delta
	out.Implied = implied
	cursor.AbsTick += int64(delta)
	out.AbsTick = cursor.AbsTick

	switch {
	case statusByte == 0xFF:
		if err := d.decodeMeta(cursor, out); err != nil {
			cursor.Finished = true
			return false, err
		}
	case statusByte == 0xF0 || statusByte == 0xF7:
		if err := d.decodeSysEx(cursor, out); err != nil {
			cursor.Finished = true
			return false, err
		}
	default:
		nibble := statusByte & 0xF0
		kind, ok := kindFromStatusNibble(nibble)
		if !ok {
			cursor.Finished = true
			return false, fmt.Errorf("smf: unrecognized status byte 0x%02X: %w", statusByte, ErrReadError)
		}
		out.Kind = kind
		out.Channel = int(statusByte&0x0F) + 1
		cursor.LastStatus = statusByte
		cursor.LastMsgType = kind
		cursor.LastMsgChannel = out.Channel

		needed := channelDataBytes(kind)
		var data1, data2 byte
		readOffset := cursor.ReadOffset
		if implied {
			data1 = firstByte
			readOffset++
		} else {
			data1, err = readByte(d.src, readOffset)
			if err != nil {
				cursor.Finished = true
				return false, fmt.Errorf("smf: channel message data1: %w", ErrReadError)
			}
			readOffset++
		}
		if needed == 2 {
			data2, err = readByte(d.src, readOffset)
			if err != nil {
				cursor.Finished = true
				return false, fmt.Errorf("smf: channel message data2: %w", ErrReadError)
			}
			readOffset++
		}
		out.Data1 = data1
		out.Data2 = data2
		cursor.ReadOffset = readOffset
	}

	out.Size = int(cursor.ReadOffset - contentStart)
	cursor.DebugLastMsgDeltaTicks = delta
	return true, nil
}

var textMetaKinds = map[MetaType]bool{
	MetaText:       true,
	MetaCopyright:  true,
	MetaTrackName:  true,
	MetaInstrument: true,
	MetaLyric:      true,
	MetaMarker:     true,
	MetaCuePoint:   true,
}

func (d *Decoder) decodeMeta(cursor *TrackCursor, out *Message) error {
	metaTypeByte, err := readByte(d.src, cursor.ReadOffset)
	if err != nil {
		return fmt.Errorf("smf: meta type byte: %w", ErrReadError)
	}
	cursor.ReadOffset++

	length, n, err := decodeVLQ(d.src, cursor.ReadOffset)
	if err != nil {
		return fmt.Errorf("smf: meta length: %w", ErrReadError)
	}
	cursor.ReadOffset += n

	out.Kind = KindMeta
	out.MetaType = MetaType(metaTypeByte)
	payloadStart := cursor.ReadOffset

	switch out.MetaType {
	case MetaSequenceNumber:
		if length >= 2 {
			if v, err := readWord(d.src, payloadStart); err == nil {
				out.SequenceNumber = v
			}
		}
	case MetaSetTempo:
		if length >= 3 {
			b0, _ := readByte(d.src, payloadStart)
			b1, _ := readByte(d.src, payloadStart+1)
			b2, _ := readByte(d.src, payloadStart+2)
			out.Tempo.MicrosPerQuarter = uint32(b0)<<16 | uint32(b1)<<8 | uint32(b2)
		}
	case MetaSMPTEOffset:
		if length >= 5 {
			out.SMPTE.Hours, _ = readByte(d.src, payloadStart)
			out.SMPTE.Minutes, _ = readByte(d.src, payloadStart+1)
			out.SMPTE.Seconds, _ = readByte(d.src, payloadStart+2)
			out.SMPTE.Frames, _ = readByte(d.src, payloadStart+3)
			out.SMPTE.FractionalFrames, _ = readByte(d.src, payloadStart+4)
		}
	case MetaTimeSig:
		if length >= 4 {
			out.TimeSig.Numerator, _ = readByte(d.src, payloadStart)
			out.TimeSig.DenominatorPower, _ = readByte(d.src, payloadStart+1)
			out.TimeSig.ClocksPerClick, _ = readByte(d.src, payloadStart+2)
			out.TimeSig.ThirtySecondsPerQuarter, _ = readByte(d.src, payloadStart+3)
		}
	case MetaKeySig:
		if length >= 2 {
			b0, _ := readByte(d.src, payloadStart)
			b1, _ := readByte(d.src, payloadStart+1)
			out.KeySigPacked = packKeySig(b0, b1)
		}
	case MetaMIDIPort:
		if length >= 1 {
			out.MIDIPort, _ = readByte(d.src, payloadStart)
		}
	}

	isText := textMetaKinds[out.MetaType]
	limit := int64(d.limits.MetaEventMaxDataSize)
	if isText {
		limit--
	}
	capture := length
	if capture > uint32(limit) {
		capture = uint32(limit)
	}
	var raw [MetaEventMaxDataSize]byte
	if capture > 0 {
		if n, err := d.src.Read(raw[:capture], payloadStart, int(capture)); err != nil || int64(n) < int64(capture) {
			capture = uint32(max64(int64(n), 0))
		}
	}
	payloadTruncated := out.setPayload(raw[:capture], isText)
	out.Truncated = payloadTruncated || capture < length

	cursor.ReadOffset = payloadStart + int64(length)
	return nil
}

func (d *Decoder) decodeSysEx(cursor *TrackCursor, out *Message) error {
	length, n, err := decodeVLQ(d.src, cursor.ReadOffset)
	if err != nil {
		return fmt.Errorf("smf: sysex length: %w", ErrReadError)
	}
	cursor.ReadOffset += n

	out.Kind = KindSysEx
	payloadStart := cursor.ReadOffset

	limit := int64(d.limits.MetaEventMaxDataSize)
	capture := length
	if capture > uint32(limit) {
		capture = uint32(limit)
	}
	var raw [MetaEventMaxDataSize]byte
	if capture > 0 {
		if n, err := d.src.Read(raw[:capture], payloadStart, int(capture)); err != nil || int64(n) < int64(capture) {
			capture = uint32(max64(int64(n), 0))
		}
	}
	payloadTruncated := out.setPayload(raw[:capture], false)
	out.Truncated = payloadTruncated || capture < length

	cursor.ReadOffset = payloadStart + int64(length)
	return nil
}

// packKeySig reproduces the original library's key-signature bit
// packing: when the raw byte's high bit is set, the flat count is
// (256-byte)&0x07 and a separate negative-flats flag is recorded;
// otherwise the low 3 bits are the sharp count directly. The minor
// flag comes from the truthiness of the following byte.
func packKeySig(b0, b1 byte) byte {
	var key byte
	if b0&0x80 != 0 {
		key = byte((256 - int(b0)) & keyMaskKey)
		key |= keyMaskNeg
	} else {
		key = b0 & keyMaskKey
	}
	if b1 != 0 {
		key |= keyMaskMin
	}
	return key
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
