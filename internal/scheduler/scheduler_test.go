package scheduler

import (
	"io"
	"testing"

	"github.com/zurustar/smfplayer/internal/host"
	"github.com/zurustar/smfplayer/internal/smf"
)

type fakeFile struct {
	data []byte
}

func (f *fakeFile) ReadAt(dst []byte, offset int64) (int, error) {
	if offset >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(dst, f.data[offset:])
	return n, nil
}
func (f *fakeFile) Size() (int64, error) { return int64(len(f.data)), nil }
func (f *fakeFile) Close() error         { return nil }

type fakeClock struct{ now int64 }

func (c *fakeClock) NowMicros() int64 { return c.now }

type fakePrinter struct {
	warnings []string
}

func (p *fakePrinter) Info(format string, args ...any)    {}
func (p *fakePrinter) Success(format string, args ...any) {}
func (p *fakePrinter) Warning(format string, args ...any) { p.warnings = append(p.warnings, format) }
func (p *fakePrinter) Error(format string, args ...any)   {}

var _ host.File = (*fakeFile)(nil)
var _ host.Clock = (*fakeClock)(nil)
var _ host.Printer = (*fakePrinter)(nil)

func endOfTrackBytes() []byte {
	return []byte{0x00, 0xFF, 0x2F, 0x00}
}

func buildSMFFile(format, division uint16, tracks [][]byte) []byte {
	var out []byte
	out = append(out, []byte("MThd")...)
	out = append(out, 0, 0, 0, 6)
	out = append(out, byte(format>>8), byte(format))
	out = append(out, byte(len(tracks)>>8), byte(len(tracks)))
	out = append(out, byte(division>>8), byte(division))

	for _, track := range tracks {
		out = append(out, []byte("MTrk")...)
		n := len(track)
		out = append(out, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
		out = append(out, track...)
	}
	return out
}

func TestSessionLifecycle(t *testing.T) {
	data := buildSMFFile(0, 480, [][]byte{endOfTrackBytes()})
	clock := &fakeClock{now: 1000}
	printer := &fakePrinter{}
	s := New(smf.DefaultLimits(), clock, printer, CallbackTable{})

	if s.State() != StateClosed {
		t.Fatalf("new session state = %v, want Closed", s.State())
	}

	if err := s.OpenFile(&fakeFile{data: data}); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if s.State() != StatePlaying {
		t.Fatalf("after OpenFile state = %v, want Playing", s.State())
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if s.State() != StateClosed {
		t.Fatalf("after Close state = %v, want Closed", s.State())
	}
}

func TestSessionOpenFileFiresCallback(t *testing.T) {
	data := buildSMFFile(0, 480, [][]byte{endOfTrackBytes()})
	opened := false
	callbacks := CallbackTable{
		OnSessionOpened: func(userData any) { opened = true },
	}
	s := New(smf.DefaultLimits(), &fakeClock{}, &fakePrinter{}, callbacks)
	if err := s.OpenFile(&fakeFile{data: data}); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if !opened {
		t.Fatalf("OnSessionOpened was not fired")
	}
}

func TestSessionFinishesWhenAllTracksExhausted(t *testing.T) {
	data := buildSMFFile(0, 480, [][]byte{endOfTrackBytes()})
	finished := false
	callbacks := CallbackTable{
		OnSessionFinished: func(userData any) { finished = true },
	}
	clock := &fakeClock{now: 0}
	s := New(smf.DefaultLimits(), clock, &fakePrinter{}, callbacks)
	if err := s.OpenFile(&fakeFile{data: data}); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	clock.now += int64(s.tempo.UsPerTick) * 10
	if alive := s.Tick(); alive {
		t.Fatalf("Tick() = true, want false after the only track's EndOfTrack dispatches")
	}
	if s.State() != StateFinished {
		t.Fatalf("state = %v, want Finished", s.State())
	}
	if !finished {
		t.Fatalf("OnSessionFinished was not fired")
	}
}

func TestSessionDispatchOrderAscendingTrackIndex(t *testing.T) {
	trackA := append([]byte{0x00, 0x90, 0x3C, 0x64}, endOfTrackBytes()...)
	trackB := append([]byte{0x00, 0x91, 0x40, 0x50}, endOfTrackBytes()...)
	data := buildSMFFile(1, 480, [][]byte{trackA, trackB})

	var order []int
	callbacks := CallbackTable{
		OnNoteOn: func(trackIdx int, absTick int64, channel, note, velocity int, userData any) {
			order = append(order, trackIdx)
		},
	}
	clock := &fakeClock{now: 0}
	s := New(smf.DefaultLimits(), clock, &fakePrinter{}, callbacks)
	if err := s.OpenFile(&fakeFile{data: data}); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	clock.now += int64(s.tempo.UsPerTick)
	s.Tick()

	if len(order) != 2 || order[0] != 0 || order[1] != 1 {
		t.Fatalf("dispatch order = %v, want [0 1]", order)
	}
}

func TestSessionSetTempoAppliesBeforeCallback(t *testing.T) {
	track := []byte{
		0x00, 0xFF, 0x51, 0x03, 0x04, 0x93, 0xE0, // SetTempo 300000us/q = 200bpm
	}
	track = append(track, endOfTrackBytes()...)
	data := buildSMFFile(0, 480, [][]byte{track})

	var s *Session
	var bpmAtCallback float64
	callbacks := CallbackTable{
		OnSetTempo: func(trackIdx int, absTick int64, bpm float64, userData any) {
			bpmAtCallback = s.tempo.BPM
		},
	}
	clock := &fakeClock{now: 0}
	s = New(smf.DefaultLimits(), clock, &fakePrinter{}, callbacks)
	if err := s.OpenFile(&fakeFile{data: data}); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	s.Tick()

	if bpmAtCallback < 199.9 || bpmAtCallback > 200.1 {
		t.Fatalf("OnSetTempo saw bpm=%f, want ~200 (tempo state must update before the callback fires)", bpmAtCallback)
	}
	if got := s.tempo.BPM; got < 199.9 || got > 200.1 {
		t.Fatalf("session tempo.BPM after dispatch = %f, want ~200", got)
	}
}

func TestSessionClockAnomalyClamped(t *testing.T) {
	data := buildSMFFile(0, 480, [][]byte{endOfTrackBytes()})
	clock := &fakeClock{now: 1_000_000}
	printer := &fakePrinter{}
	s := New(smf.DefaultLimits(), clock, printer, CallbackTable{})
	if err := s.OpenFile(&fakeFile{data: data}); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	clock.now -= 10_000
	s.TickAt(clock.now)

	found := false
	for _, w := range printer.warnings {
		if w == "clock anomaly: currentTick %d < lastTick %d, clamping" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a clock anomaly warning, got warnings=%v", printer.warnings)
	}
}

func TestSessionWarnsOnTruncatedMetaPayload(t *testing.T) {
	text := make([]byte, 200)
	for i := range text {
		text[i] = 'x'
	}
	var track []byte
	track = append(track, 0x00, 0xFF, 0x01, 0x81, 0x48) // TextEvent, VLQ length 200
	track = append(track, text...)
	track = append(track, endOfTrackBytes()...)
	data := buildSMFFile(0, 480, [][]byte{track})

	printer := &fakePrinter{}
	s := New(smf.DefaultLimits(), &fakeClock{}, printer, CallbackTable{})
	if err := s.OpenFile(&fakeFile{data: data}); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	s.Tick()

	found := false
	for _, w := range printer.warnings {
		if w == "track %d: meta/SysEx payload at tick %d truncated to the capture limit" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a truncated-payload warning, got warnings=%v", printer.warnings)
	}
}

func TestSessionTickBeforeOpenReturnsFalse(t *testing.T) {
	s := New(smf.DefaultLimits(), &fakeClock{}, &fakePrinter{}, CallbackTable{})
	if s.Tick() {
		t.Fatalf("Tick() on an unopened session = true, want false")
	}
}
