// Package components defines ECS components for contact effects.
package components

// Position represents an entity's arena position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in arena units per millisecond.
type Velocity struct {
	X, Y float32
}

// Spark is a short-lived contact particle.
type Spark struct {
	Life    float32 // ms remaining
	MaxLife float32
	Size    float32
	Side    uint8 // paddle that emitted it, for tinting
}

// Fade returns the remaining life as a fraction in [0, 1].
func (s Spark) Fade() float32 {
	if s.MaxLife <= 0 {
		return 0
	}
	f := s.Life / s.MaxLife
	if f < 0 {
		return 0
	}
	return f
}
