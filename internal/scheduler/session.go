// Package scheduler implements the multi-track playback scheduler,
// its callback dispatch surface, and the session state machine that
// ties the file cache, SMF decoder, and tempo model together behind a
// single pull-driven Tick call.
package scheduler

import (
	"fmt"

	"github.com/zurustar/smfplayer/internal/cache"
	"github.com/zurustar/smfplayer/internal/host"
	"github.com/zurustar/smfplayer/internal/smf"
	"github.com/zurustar/smfplayer/internal/tempo"
)

// State is the session lifecycle state.
type State int

const (
	StateClosed State = iota
	StateOpen
	StatePlaying
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateOpen:
		return "Open"
	case StatePlaying:
		return "Playing"
	case StateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// JitterWarningThresholdMs is the jitter instrumentation threshold:
// a dispatch more than this many milliseconds away from its expected
// clock position is surfaced as a warning.
const JitterWarningThresholdMs = 10

type lookaheadSlot struct {
	msg   smf.Message
	valid bool
}

// Session is one open-to-closed playback lifecycle over a single SMF
// file. It owns exactly one FileCache; sessions never share one.
type Session struct {
	state State

	file   host.File
	clock  host.Clock
	printer host.Printer
	limits  smf.Limits

	cache   *cache.FileCache
	decoder *smf.Decoder
	header  *smf.Header
	cursors []smf.TrackCursor

	tempo *tempo.State

	callbacks CallbackTable
	lookahead []lookaheadSlot

	startClockUs      int64
	tempoAnchorClockUs int64
	tempoAnchorTick    int64
	lastTick           int64
	allTracksFinished  bool
}

// New creates a Session. limits selects the resource bounds (see
// smf.DefaultLimits); clock and printer are the Host Services
// collaborators used by Tick.
func New(limits smf.Limits, clock host.Clock, printer host.Printer, callbacks CallbackTable) *Session {
	return &Session{
		state:     StateClosed,
		limits:    limits,
		clock:     clock,
		printer:   printer,
		callbacks: callbacks,
	}
}

// State reports the current lifecycle state.
func (s *Session) State() State { return s.state }

// Header returns the parsed SMF header, valid once the session is Open.
func (s *Session) Header() *smf.Header { return s.header }

// OpenFile parses file's header, primes every track's lookahead, and
// transitions the session to Playing. A header parse failure
// (smf.ErrInvalidFormat or smf.ErrTrackLimitExceeded) is the only
// condition that leaves the session in Closed.
func (s *Session) OpenFile(file host.File) error {
	if s.state != StateClosed {
		return fmt.Errorf("scheduler: OpenFile called in state %s", s.state)
	}

	c := cache.New(file, s.limits.CacheSize)
	header, cursors, err := smf.ParseHeader(c, s.limits)
	if err != nil {
		return err
	}

	s.file = file
	s.cache = c
	s.header = header
	s.cursors = cursors
	s.decoder = smf.NewDecoder(c, s.limits)
	s.tempo = tempo.New(header.PPQN)
	s.lookahead = make([]lookaheadSlot, len(cursors))
	s.state = StateOpen

	for i := range s.cursors {
		s.primeTrack(i)
	}

	now := s.clock.NowMicros()
	s.startClockUs = now
	s.tempoAnchorClockUs = now
	s.tempoAnchorTick = 0
	s.lastTick = 0
	s.allTracksFinished = s.noTrackHasWork()
	s.state = StatePlaying

	if s.callbacks.OnSessionOpened != nil {
		s.callbacks.OnSessionOpened(s.callbacks.UserData)
	}
	return nil
}

// Close releases the session's file handle and cache, returning the
// session to Closed. Safe to call from any state.
func (s *Session) Close() error {
	var err error
	if s.file != nil {
		err = s.file.Close()
	}
	s.file = nil
	s.cache = nil
	s.decoder = nil
	s.cursors = nil
	s.lookahead = nil
	s.state = StateClosed
	return err
}

func (s *Session) primeTrack(i int) {
	ok, err := s.decoder.ReadNextMessage(&s.cursors[i], &s.lookahead[i].msg)
	if err != nil {
		s.printer.Warning("track %d: %v", i, err)
	}
	s.lookahead[i].valid = ok
	if ok {
		s.cursors[i].DeltaRemaining = int64(s.lookahead[i].msg.DeltaTicks)
	}
}

func (s *Session) noTrackHasWork() bool {
	for _, slot := range s.lookahead {
		if slot.valid {
			return false
		}
	}
	return true
}
