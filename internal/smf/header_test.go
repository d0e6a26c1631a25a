package smf

import "testing"

func TestParseHeaderRejectsFormat2(t *testing.T) {
	data := buildSMF(2, 480, [][]byte{endOfTrack()})
	_, _, err := ParseHeader(memSource(data), DefaultLimits())
	if err == nil {
		t.Fatal("expected ParseHeader to reject format 2")
	}
}

func TestParseHeaderRejectsSMPTEDivision(t *testing.T) {
	data := buildSMF(0, 0x8258, [][]byte{endOfTrack()})
	_, _, err := ParseHeader(memSource(data), DefaultLimits())
	if err == nil {
		t.Fatal("expected ParseHeader to reject an SMPTE time division")
	}
}

func TestParseHeaderRejectsBadMagic(t *testing.T) {
	data := buildSMF(0, 480, [][]byte{endOfTrack()})
	data[0] = 'X'
	_, _, err := ParseHeader(memSource(data), DefaultLimits())
	if err == nil {
		t.Fatal("expected ParseHeader to reject a bad MThd magic")
	}
}

func TestParseHeaderRejectsTooManyTracks(t *testing.T) {
	tracks := make([][]byte, 33)
	for i := range tracks {
		tracks[i] = endOfTrack()
	}
	data := buildSMF(1, 480, tracks)
	_, _, err := ParseHeader(memSource(data), DefaultLimits())
	if err == nil {
		t.Fatal("expected ParseHeader to reject 33 tracks against the default 32-track limit")
	}
}
