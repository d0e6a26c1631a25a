package main

import "github.com/sinshu/go-meltysynth/meltysynth"

// synthBridge routes dispatched channel messages to a meltysynth
// synthesizer, converting this module's 1-based channel convention
// back to meltysynth's 0-based channels at the boundary.
type synthBridge struct {
	synth *meltysynth.Synthesizer
}

const (
	cmdNoteOff         = 0x80
	cmdNoteOn          = 0x90
	cmdNoteKeyPressure = 0xA0
	cmdControlChange   = 0xB0
	cmdProgramChange   = 0xC0
	cmdChannelPressure = 0xD0
	cmdPitchWheel      = 0xE0
)

func (b *synthBridge) process(channel1Based, command, data1, data2 int) {
	b.synth.ProcessMidiMessage(int32(channel1Based-1), int32(command), int32(data1), int32(data2))
}
