// Package tempo implements the fixed-point tempo model: converting
// BPM/PPQN to microseconds-per-tick and rescaling an in-flight tick
// count when a SetTempo event changes the time base, without
// floating-point arithmetic on the hot path.
package tempo

import "math"

// DefaultBPM is the tempo a session starts at before any SetTempo
// meta event has been seen.
const DefaultBPM = 120

// Precision is the fixed-point shift used by ApplySetTempo.
const Precision = 8

// overflowThreshold mirrors the original library's warning point:
// INT32_MAX - INT32_MAX/4.
var overflowThreshold = int64(math.MaxInt32) - int64(math.MaxInt32)/4

// State holds the current tempo as microseconds-per-tick, the unit
// the playback scheduler actually advances by.
type State struct {
	PPQN      uint16
	UsPerTick int64
	BPM       float64
}

// New creates a State seeded at DefaultBPM for the given PPQN.
func New(ppqn uint16) *State {
	s := &State{PPQN: ppqn}
	s.setBPM(DefaultBPM)
	return s
}

func (s *State) setBPM(bpm float64) {
	s.BPM = bpm
	s.UsPerTick = usPerTick(bpm, s.PPQN)
}

func usPerTick(bpm float64, ppqn uint16) int64 {
	if bpm <= 0 || ppqn == 0 {
		return 0
	}
	return int64(60_000_000.0 / (bpm * float64(ppqn)))
}

func usPerTickFromMicrosPerQuarter(microsPerQuarter uint32, ppqn uint16) int64 {
	if ppqn == 0 {
		return 0
	}
	return int64(microsPerQuarter) / int64(ppqn)
}

// BPMFromMicrosPerQuarter converts a SetTempo event's microseconds-
// per-quarter-note value to BPM (500000 -> 120, 300000 -> 200).
func BPMFromMicrosPerQuarter(microsPerQuarter uint32) float64 {
	if microsPerQuarter == 0 {
		return 0
	}
	return 60_000_000.0 / float64(microsPerQuarter)
}

// ApplySetTempo rescales currentTick into the new tempo's time base
// and updates the tempo state, returning the rescaled tick and
// whether the fixed-point multiplication approached overflow (a
// FixedPointOverflow warning condition; the caller should surface it
// through host.Printer.Warning and use the result as-is regardless).
func (s *State) ApplySetTempo(currentTick int64, microsPerQuarter uint32) (rescaledTick int64, overflowWarning bool) {
	newUsPerTick := usPerTickFromMicrosPerQuarter(microsPerQuarter, s.PPQN)
	if newUsPerTick <= 0 {
		newUsPerTick = 1
	}
	oldUsPerTick := s.UsPerTick
	if oldUsPerTick <= 0 {
		oldUsPerTick = 1
	}

	fracFixed := (currentTick << Precision) / newUsPerTick
	mulFixed := fracFixed * oldUsPerTick

	overflowWarning = mulFixed > overflowThreshold || mulFixed < -overflowThreshold
	rescaledTick = mulFixed >> Precision

	s.UsPerTick = newUsPerTick
	s.BPM = BPMFromMicrosPerQuarter(microsPerQuarter)
	return rescaledTick, overflowWarning
}
