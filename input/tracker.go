// Package input turns directional key events into the per-frame push signal.
package input

import "github.com/pthm-cable/pong/physics"

// Tracker holds the current push direction. The most recently pressed
// direction wins; releasing a key only clears the push if it is the
// direction currently held.
type Tracker struct {
	push physics.Push
}

// Press records a key-down for dir.
func (t *Tracker) Press(dir physics.Push) {
	t.push = dir
}

// Release records a key-up for dir.
func (t *Tracker) Release(dir physics.Push) {
	if t.push == dir {
		t.push = physics.None
	}
}

// Push returns the direction to hold for the next frame.
func (t *Tracker) Push() physics.Push {
	return t.push
}

// Reset clears any held direction, e.g. when the window loses focus.
func (t *Tracker) Reset() {
	t.push = physics.None
}
