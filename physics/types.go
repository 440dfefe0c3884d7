// Package physics implements the ball and paddle simulation: wall reflection,
// shape-aware paddle collision, paddle control and the fixed-step integrator.
//
// Coordinates are arena units with the origin at the top-left corner, y growing
// downward. Velocities are in arena units per millisecond.
package physics

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("invalid physics parameters")

// Side identifies one of the two paddles.
type Side uint8

const (
	Left Side = iota
	Right
)

// Other returns the opposite side.
func (s Side) Other() Side {
	return 1 - s
}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", uint8(s))
}

// ParseSide parses "left" or "right".
func ParseSide(s string) (Side, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

// Push is the player's directional input for a frame.
type Push int8

const (
	Up   Push = -1
	None Push = 0
	Down Push = 1
)

func (p Push) String() string {
	switch p {
	case Up:
		return "up"
	case None:
		return "none"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Push(%d)", int8(p))
}

// Ball is the circular projectile.
type Ball struct {
	Pos    r2.Vec // centre
	Vel    r2.Vec // units/ms
	Radius float64
}

// Speed returns |Vel|.
func (b Ball) Speed() float64 {
	return r2.Norm(b.Vel)
}

// Paddle is positioned by the top-left corner of its straight body.
// Width, height and shape are shared by both paddles and live in Body.
type Paddle struct {
	X, Y float64
}

// State is the complete simulation state for one session.
type State struct {
	Ball    Ball
	Paddles [2]Paddle // indexed by Side

	// Active is recomputed every substep from the ball; it only decides
	// which paddle responds to input.
	Active Side
}

// Paddle returns a pointer to the paddle on the given side.
func (s *State) Paddle(side Side) *Paddle {
	return &s.Paddles[side]
}

// EdgeMode selects how flat-edge collisions are gated.
type EdgeMode uint8

const (
	// EdgeGated only reflects off a face the ball is moving into and uses
	// zones that reach the paddle's centre line.
	EdgeGated EdgeMode = iota
	// EdgeLegacy uses purely positional zones ending at the face, with no
	// velocity check.
	EdgeLegacy
)

func (m EdgeMode) String() string {
	if m == EdgeLegacy {
		return "legacy"
	}
	return "gated"
}

// ParseEdgeMode parses "gated" or "legacy".
func ParseEdgeMode(s string) (EdgeMode, error) {
	switch s {
	case "gated", "":
		return EdgeGated, nil
	case "legacy":
		return EdgeLegacy, nil
	}
	return 0, fmt.Errorf("unknown edge mode %q", s)
}

// Params holds the fixed arena and tuning values.
type Params struct {
	ArenaWidth   float64
	ArenaHeight  float64
	Body         Body
	PaddleSpeed  float64 // units/ms
	MaxSubstepMs float64
	EdgeMode     EdgeMode
}

// Validate checks that the parameters describe a playable arena.
func (p Params) Validate() error {
	if p.ArenaWidth <= 0 || p.ArenaHeight <= 0 {
		return fmt.Errorf("%w: arena %gx%g", ErrInvalidParams, p.ArenaWidth, p.ArenaHeight)
	}
	if p.MaxSubstepMs <= 0 {
		return fmt.Errorf("%w: max substep %g ms", ErrInvalidParams, p.MaxSubstepMs)
	}
	if p.PaddleSpeed < 0 {
		return fmt.Errorf("%w: paddle speed %g", ErrInvalidParams, p.PaddleSpeed)
	}
	if err := p.Body.validate(); err != nil {
		return err
	}
	minY, maxY := p.PaddleRange()
	if minY > maxY {
		return fmt.Errorf("%w: paddle extent does not fit arena height %g", ErrInvalidParams, p.ArenaHeight)
	}
	return nil
}

// PaddleRange returns the valid range of Paddle.Y keeping the whole shape,
// caps included, inside the arena.
func (p Params) PaddleRange() (minY, maxY float64) {
	above, below := p.Body.overhang()
	return above, p.ArenaHeight - p.Body.Height - below
}

// NewState places the paddles hPadding from the side walls, centred
// vertically, and starts the given ball.
func NewState(p Params, hPadding float64, ball Ball, active Side) State {
	y := (p.ArenaHeight - p.Body.Height) / 2
	return State{
		Ball: ball,
		Paddles: [2]Paddle{
			Left:  {X: hPadding, Y: y},
			Right: {X: p.ArenaWidth - p.Body.Width - hPadding, Y: y},
		},
		Active: active,
	}
}
