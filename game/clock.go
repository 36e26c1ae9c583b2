package game

import "time"

// Clock turns frame timestamps into elapsed seconds.
type Clock struct {
	last     time.Time
	maxDelta time.Duration
}

func NewClock(maxDelta time.Duration) *Clock {
	return &Clock{maxDelta: maxDelta}
}

// Tick returns the seconds since the previous tick. The first tick, a clock
// going backwards and gaps longer than maxDelta (a suspended terminal, a
// stalled loop) are capped so the local paddle never jumps.
func (c *Clock) Tick(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	d := now.Sub(c.last)
	c.last = now
	if d < 0 {
		return 0
	}
	if c.maxDelta > 0 && d > c.maxDelta {
		d = c.maxDelta
	}
	return d.Seconds()
}
