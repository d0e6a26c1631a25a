package host

import "time"

// RealClock implements Clock over the OS monotonic clock.
type RealClock struct {
	start time.Time
}

// NewRealClock returns a Clock anchored at the moment of construction.
func NewRealClock() *RealClock {
	return &RealClock{start: time.Now()}
}

func (c *RealClock) NowMicros() int64 {
	return time.Since(c.start).Microseconds()
}
