package sim

import "time"

// Clock measures the wall time between successive loop iterations on the
// monotonic clock. The first tick has no previous sample and reports a
// fixed first frame instead.
type Clock struct {
	now     func() time.Time
	last    time.Time
	started bool
	firstMs float64
}

// NewClock creates a clock reporting firstMs on its first tick.
func NewClock(firstMs float64) *Clock {
	return &Clock{now: time.Now, firstMs: firstMs}
}

// Tick returns the milliseconds since the previous Tick.
func (c *Clock) Tick() float64 {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		return c.firstMs
	}
	ms := float64(t.Sub(c.last)) / float64(time.Millisecond)
	c.last = t
	return ms
}
