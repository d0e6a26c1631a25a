package scheduler

import "github.com/zurustar/smfplayer/internal/smf"

// Tick advances playback to the host's current clock reading and
// dispatches every event now due, returning false once every track
// has finished (and transitioning the session to Finished).
func (s *Session) Tick() bool {
	return s.TickAt(s.clock.NowMicros())
}

// TickAt is Tick with an explicit host clock reading, in microseconds,
// for deterministic testing without a real Clock implementation.
func (s *Session) TickAt(hostClockUs int64) bool {
	if s.state != StatePlaying {
		return false
	}
	if s.tempo.UsPerTick <= 0 {
		s.printer.Warning("tempo: non-positive microseconds-per-tick, stalling playback")
		return false
	}

	currentTick := s.tempoAnchorTick + (hostClockUs-s.tempoAnchorClockUs)/s.tempo.UsPerTick

	deltaTick := currentTick - s.lastTick
	if deltaTick < 0 {
		s.printer.Warning("clock anomaly: currentTick %d < lastTick %d, clamping", currentTick, s.lastTick)
		deltaTick = 0
	}

	for {
		dispatchedAny := s.processTracks(deltaTick, currentTick, hostClockUs)
		if !dispatchedAny {
			break
		}
		deltaTick = 0
		// A SetTempo dispatched above re-anchors the tick counter; pick
		// up the rescaled value so lastTick stays in the new time base.
		currentTick = s.tempoAnchorTick + (hostClockUs-s.tempoAnchorClockUs)/s.tempo.UsPerTick
	}

	s.lastTick = currentTick
	s.allTracksFinished = s.noTrackHasWork()

	if s.allTracksFinished {
		s.state = StateFinished
		if s.callbacks.OnSessionFinished != nil {
			s.callbacks.OnSessionFinished(s.callbacks.UserData)
		}
		return false
	}
	return true
}

// processTracks subtracts deltaTick from every track's remaining
// countdown, dispatching and refilling the lookahead for any track
// whose event has come due. Ordering: ascending track index, matching
// file order within a track. Returns whether anything dispatched, so
// the caller can loop to drain same-tick events (the fixed-point
// convergence loop).
func (s *Session) processTracks(deltaTick, currentTick, hostClockUs int64) bool {
	dispatchedAny := false
	for i := range s.cursors {
		if !s.lookahead[i].valid {
			continue
		}
		cursor := &s.cursors[i]
		cursor.DeltaRemaining -= deltaTick
		if cursor.DeltaRemaining > 0 {
			continue
		}

		msg := &s.lookahead[i].msg
		s.checkJitter(i, currentTick, hostClockUs)

		if msg.Truncated {
			s.printer.Warning("track %d: meta/SysEx payload at tick %d truncated to the capture limit", i, msg.AbsTick)
		}

		if msg.Kind == smf.KindMeta && msg.MetaType == smf.MetaSetTempo {
			rescaled, overflow := s.tempo.ApplySetTempo(currentTick, msg.Tempo.MicrosPerQuarter)
			s.tempoAnchorTick = rescaled
			s.tempoAnchorClockUs = hostClockUs
			currentTick = rescaled
			if overflow {
				s.printer.Warning("track %d: tempo rescale approached fixed-point overflow", i)
			}
		}

		s.callbacks.dispatch(i, msg)
		cursor.DebugLastDispatchClockUs = hostClockUs
		dispatchedAny = true

		s.primeTrack(i)
	}
	return dispatchedAny
}

func (s *Session) checkJitter(trackIdx int, currentTick, hostClockUs int64) {
	if s.tempo.UsPerTick <= 0 {
		return
	}
	expectedClockUs := s.tempoAnchorClockUs + (currentTick-s.tempoAnchorTick)*s.tempo.UsPerTick
	diffMs := (hostClockUs - expectedClockUs) / 1000
	if diffMs < 0 {
		diffMs = -diffMs
	}
	if diffMs > JitterWarningThresholdMs {
		s.printer.Warning("track %d: dispatch jitter %dms exceeds %dms", trackIdx, diffMs, JitterWarningThresholdMs)
	}
}
