package tempo

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestBPMFromMicrosPerQuarter(t *testing.T) {
	cases := []struct {
		micros uint32
		want   float64
	}{
		{micros: 500000, want: 120},
		{micros: 300000, want: 200},
	}
	for _, c := range cases {
		if got := BPMFromMicrosPerQuarter(c.micros); got != c.want {
			t.Errorf("BPMFromMicrosPerQuarter(%d) = %f, want %f", c.micros, got, c.want)
		}
	}
}

func TestNewSeedsDefaultBPM(t *testing.T) {
	s := New(480)
	if s.BPM != DefaultBPM {
		t.Fatalf("New(480).BPM = %f, want %f", s.BPM, float64(DefaultBPM))
	}
	if s.UsPerTick <= 0 {
		t.Fatalf("New(480).UsPerTick = %d, want > 0", s.UsPerTick)
	}
}

func TestApplySetTempoUpdatesState(t *testing.T) {
	s := New(480)
	before := s.UsPerTick
	rescaled, overflow := s.ApplySetTempo(960, 300000)
	if overflow {
		t.Fatalf("unexpected overflow warning for a small tick count")
	}
	if s.UsPerTick == before {
		t.Fatalf("ApplySetTempo did not change UsPerTick")
	}
	if rescaled < 0 {
		t.Fatalf("rescaled tick went negative: %d", rescaled)
	}
	if s.BPM < 199.9 || s.BPM > 200.1 {
		t.Fatalf("BPM after ApplySetTempo = %f, want ~200", s.BPM)
	}
}

func TestApplySetTempoNonNegativeForSmallTicks(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("rescaled tick stays non-negative for non-negative input", prop.ForAll(
		func(currentTick int64, micros uint32) bool {
			s := New(480)
			rescaled, _ := s.ApplySetTempo(currentTick, micros)
			return rescaled >= 0
		},
		gen.Int64Range(0, 1_000_000),
		gen.UInt32Range(1, 2_000_000),
	))

	properties.TestingRun(t)
}
