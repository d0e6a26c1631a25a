package scheduler

import "github.com/zurustar/smfplayer/internal/smf"

// CallbackTable is the dispatch surface: one nullable function
// reference per event kind plus a couple of session lifecycle hooks,
// and a single opaque user-data value threaded through every call. A
// nil entry is silently skipped.
type CallbackTable struct {
	UserData any

	OnNoteOff         func(trackIdx int, absTick int64, channel, note, velocity int, userData any)
	OnNoteOn          func(trackIdx int, absTick int64, channel, note, velocity int, userData any)
	OnNoteKeyPressure func(trackIdx int, absTick int64, channel, note, pressure int, userData any)
	OnControlChange   func(trackIdx int, absTick int64, channel, controller, value int, userData any)
	OnProgramChange   func(trackIdx int, absTick int64, channel, program int, userData any)
	OnChannelPressure func(trackIdx int, absTick int64, channel, pressure int, userData any)
	OnPitchWheel      func(trackIdx int, absTick int64, channel int, value int16, userData any)

	OnSequenceNumber    func(trackIdx int, absTick int64, sequenceNumber uint16, userData any)
	OnText              func(trackIdx int, absTick int64, text []byte, userData any)
	OnCopyright         func(trackIdx int, absTick int64, text []byte, userData any)
	OnTrackName         func(trackIdx int, absTick int64, text []byte, userData any)
	OnInstrument        func(trackIdx int, absTick int64, text []byte, userData any)
	OnLyric             func(trackIdx int, absTick int64, text []byte, userData any)
	OnMarker            func(trackIdx int, absTick int64, text []byte, userData any)
	OnCuePoint          func(trackIdx int, absTick int64, text []byte, userData any)
	OnMIDIPort          func(trackIdx int, absTick int64, port byte, userData any)
	OnEndOfTrack        func(trackIdx int, absTick int64, userData any)
	OnSetTempo          func(trackIdx int, absTick int64, bpm float64, userData any)
	OnSMPTEOffset       func(trackIdx int, absTick int64, smpte smf.SMPTEMeta, userData any)
	OnTimeSig           func(trackIdx int, absTick int64, timeSig smf.TimeSigMeta, userData any)
	OnKeySig            func(trackIdx int, absTick int64, sharpsFlats int8, minor bool, userData any)
	OnSequencerSpecific func(trackIdx int, absTick int64, data []byte, userData any)
	OnSysEx             func(trackIdx int, absTick int64, data []byte, userData any)

	OnSessionOpened   func(userData any)
	OnSessionFinished func(userData any)
}

// dispatch routes msg to its matching callback. SetTempo is handled
// by the caller before this is invoked (state must update before the
// callback fires, per the dispatch ordering contract), but OnSetTempo
// itself is still invoked from here to keep one dispatch path.
func (t *CallbackTable) dispatch(trackIdx int, msg *smf.Message) {
	ud := t.UserData
	switch msg.Kind {
	case smf.KindNoteOff:
		if t.OnNoteOff != nil {
			t.OnNoteOff(trackIdx, msg.AbsTick, msg.Channel, msg.Note(), msg.Velocity(), ud)
		}
	case smf.KindNoteOn:
		if t.OnNoteOn != nil {
			t.OnNoteOn(trackIdx, msg.AbsTick, msg.Channel, msg.Note(), msg.Velocity(), ud)
		}
	case smf.KindNoteKeyPressure:
		if t.OnNoteKeyPressure != nil {
			t.OnNoteKeyPressure(trackIdx, msg.AbsTick, msg.Channel, msg.Note(), msg.Velocity(), ud)
		}
	case smf.KindControlChange:
		if t.OnControlChange != nil {
			t.OnControlChange(trackIdx, msg.AbsTick, msg.Channel, msg.Controller(), msg.ControllerValue(), ud)
		}
	case smf.KindProgramChange:
		if t.OnProgramChange != nil {
			t.OnProgramChange(trackIdx, msg.AbsTick, msg.Channel, msg.Program(), ud)
		}
	case smf.KindChannelPressure:
		if t.OnChannelPressure != nil {
			t.OnChannelPressure(trackIdx, msg.AbsTick, msg.Channel, msg.Pressure(), ud)
		}
	case smf.KindPitchWheel:
		if t.OnPitchWheel != nil {
			t.OnPitchWheel(trackIdx, msg.AbsTick, msg.Channel, msg.PitchValue(), ud)
		}
	case smf.KindSysEx:
		if t.OnSysEx != nil {
			t.OnSysEx(trackIdx, msg.AbsTick, msg.Payload(), ud)
		}
	case smf.KindMeta:
		t.dispatchMeta(trackIdx, msg)
	}
}

func (t *CallbackTable) dispatchMeta(trackIdx int, msg *smf.Message) {
	ud := t.UserData
	switch msg.MetaType {
	case smf.MetaSequenceNumber:
		if t.OnSequenceNumber != nil {
			t.OnSequenceNumber(trackIdx, msg.AbsTick, msg.SequenceNumber, ud)
		}
	case smf.MetaText:
		if t.OnText != nil {
			t.OnText(trackIdx, msg.AbsTick, msg.Payload(), ud)
		}
	case smf.MetaCopyright:
		if t.OnCopyright != nil {
			t.OnCopyright(trackIdx, msg.AbsTick, msg.Payload(), ud)
		}
	case smf.MetaTrackName:
		if t.OnTrackName != nil {
			t.OnTrackName(trackIdx, msg.AbsTick, msg.Payload(), ud)
		}
	case smf.MetaInstrument:
		if t.OnInstrument != nil {
			t.OnInstrument(trackIdx, msg.AbsTick, msg.Payload(), ud)
		}
	case smf.MetaLyric:
		if t.OnLyric != nil {
			t.OnLyric(trackIdx, msg.AbsTick, msg.Payload(), ud)
		}
	case smf.MetaMarker:
		if t.OnMarker != nil {
			t.OnMarker(trackIdx, msg.AbsTick, msg.Payload(), ud)
		}
	case smf.MetaCuePoint:
		if t.OnCuePoint != nil {
			t.OnCuePoint(trackIdx, msg.AbsTick, msg.Payload(), ud)
		}
	case smf.MetaMIDIPort:
		if t.OnMIDIPort != nil {
			t.OnMIDIPort(trackIdx, msg.AbsTick, msg.MIDIPort, ud)
		}
	case smf.MetaEndSequence:
		if t.OnEndOfTrack != nil {
			t.OnEndOfTrack(trackIdx, msg.AbsTick, ud)
		}
	case smf.MetaSetTempo:
		if t.OnSetTempo != nil {
			t.OnSetTempo(trackIdx, msg.AbsTick, msg.Tempo.BPM(), ud)
		}
	case smf.MetaSMPTEOffset:
		if t.OnSMPTEOffset != nil {
			t.OnSMPTEOffset(trackIdx, msg.AbsTick, msg.SMPTE, ud)
		}
	case smf.MetaTimeSig:
		if t.OnTimeSig != nil {
			t.OnTimeSig(trackIdx, msg.AbsTick, msg.TimeSig, ud)
		}
	case smf.MetaKeySig:
		if t.OnKeySig != nil {
			t.OnKeySig(trackIdx, msg.AbsTick, msg.KeySigAccidentals(), msg.KeySigMinor(), ud)
		}
	case smf.MetaSequencerSpecific:
		if t.OnSequencerSpecific != nil {
			t.OnSequencerSpecific(trackIdx, msg.AbsTick, msg.Payload(), ud)
		}
	}
}
