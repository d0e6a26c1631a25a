package smf

import "testing"

func TestPitchWheelBoundaries(t *testing.T) {
	cases := []struct {
		lo, hi byte
		want   int16
	}{
		{lo: 0, hi: 0x40, want: 0},
		{lo: 0x7F, hi: 0x7F, want: 8191},
		{lo: 0, hi: 0, want: -8192},
	}

	for _, c := range cases {
		m := &Message{Kind: KindPitchWheel, Data1: c.lo, Data2: c.hi}
		if got := m.PitchValue(); got != c.want {
			t.Errorf("PitchValue(lo=0x%02X, hi=0x%02X) = %d, want %d", c.lo, c.hi, got, c.want)
		}
	}
}

func TestKeySigPackingQuirk(t *testing.T) {
	cases := []struct {
		name            string
		raw, minorByte  byte
		wantAccidentals int8
		wantMinor       bool
	}{
		{name: "3 sharps major", raw: 0x03, minorByte: 0, wantAccidentals: 3, wantMinor: false},
		{name: "2 flats major", raw: 0xFE, minorByte: 0, wantAccidentals: -2, wantMinor: false},
		{name: "1 flat minor", raw: 0xFF, minorByte: 1, wantAccidentals: -1, wantMinor: true},
		{name: "0 sharps/flats minor", raw: 0x00, minorByte: 1, wantAccidentals: 0, wantMinor: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			packed := packKeySig(c.raw, c.minorByte)
			m := &Message{KeySigPacked: packed}
			if got := m.KeySigAccidentals(); got != c.wantAccidentals {
				t.Errorf("KeySigAccidentals() = %d, want %d", got, c.wantAccidentals)
			}
			if got := m.KeySigMinor(); got != c.wantMinor {
				t.Errorf("KeySigMinor() = %v, want %v", got, c.wantMinor)
			}
		})
	}
}

func TestMetaTextPayloadIsNulTerminated(t *testing.T) {
	var m Message
	m.setPayload([]byte("hello"), true)
	payload := m.Payload()
	if payload[len(payload)-1] != 0 {
		t.Fatalf("Payload() = %q, want trailing NUL", payload)
	}
	if string(payload[:len(payload)-1]) != "hello" {
		t.Fatalf("Payload() = %q, want \"hello\\x00\"", payload)
	}
}

func TestMetaTextTruncation(t *testing.T) {
	long := make([]byte, MetaEventMaxDataSize+50)
	for i := range long {
		long[i] = 'a'
	}
	var m Message
	m.setPayload(long, true)
	payload := m.Payload()
	if len(payload) > MetaEventMaxDataSize {
		t.Fatalf("Payload() length %d exceeds MetaEventMaxDataSize %d", len(payload), MetaEventMaxDataSize)
	}
	if payload[len(payload)-1] != 0 {
		t.Fatalf("truncated text payload must still be NUL-terminated")
	}
}
