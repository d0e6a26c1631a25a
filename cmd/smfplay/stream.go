package main

import (
	"encoding/binary"
	"sync"

	"github.com/sinshu/go-meltysynth/meltysynth"
)

// midiStream adapts a meltysynth synthesizer to io.Reader, rendering
// interleaved 16-bit stereo PCM on demand, the same pairing
// zurustar-son-et's pkg/engine/midi_player.go uses between a
// meltysynth.Synthesizer and an ebiten audio player.
type midiStream struct {
	synth *meltysynth.Synthesizer

	mu          sync.Mutex
	left, right []float32
}

func newMIDIStream(synth *meltysynth.Synthesizer) *midiStream {
	return &midiStream{synth: synth}
}

func (s *midiStream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}
	if cap(s.left) < frames {
		s.left = make([]float32, frames)
		s.right = make([]float32, frames)
	}
	left := s.left[:frames]
	right := s.right[:frames]

	s.synth.Render(left, right)

	for i := 0; i < frames; i++ {
		li := int16(clampSample(left[i]) * 32767)
		ri := int16(clampSample(right[i]) * 32767)
		binary.LittleEndian.PutUint16(p[i*4:], uint16(li))
		binary.LittleEndian.PutUint16(p[i*4+2:], uint16(ri))
	}
	return frames * 4, nil
}

func clampSample(v float32) float32 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
