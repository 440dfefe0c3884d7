package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// MaxSubsteps bounds the work done for a single frame. Beyond it (over an
// hour of stall at a 5 ms cap) substeps grow longer instead of more numerous.
const MaxSubsteps = 1 << 20

// Report summarises one call to Advance.
type Report struct {
	Substeps  int
	SubstepMs float64
	Contacts  []Contact
	Walls     int // wall reflections across all substeps
}

// Substeps splits a frame into n equal substeps of at most maxMs each.
// n*dt reconstructs frameMs exactly up to rounding. Non-positive, NaN or
// infinite frame times produce no substeps.
func Substeps(frameMs, maxMs float64) (n int, dt float64) {
	if !(frameMs > 0) || !(maxMs > 0) || math.IsInf(frameMs, 1) {
		return 0, 0
	}
	steps := math.Ceil(frameMs / maxMs)
	if steps > MaxSubsteps {
		steps = MaxSubsteps
	}
	n = int(steps)
	return n, frameMs / float64(n)
}

// Advance integrates the state over frameMs with the push held constant.
// Each substep moves the ball, reflects it off the walls, moves the active
// paddle, resolves both paddles in Left, Right order, keeps the ball inside
// the arena and reselects the active paddle.
func Advance(s *State, frameMs float64, push Push, prm Params) Report {
	n, dt := Substeps(frameMs, prm.MaxSubstepMs)
	rep := Report{Substeps: n, SubstepMs: dt}
	minY, maxY := prm.PaddleRange()

	for i := 0; i < n; i++ {
		s.Ball.Pos = r2.Add(s.Ball.Pos, r2.Scale(dt, s.Ball.Vel))

		rep.Walls += ReflectWalls(&s.Ball, prm.ArenaWidth, prm.ArenaHeight).Count()

		MovePaddle(s.Paddle(s.Active), push, prm.PaddleSpeed, dt, minY, maxY)

		for _, side := range [...]Side{Left, Right} {
			if c, ok := ResolvePaddle(&s.Ball, s.Paddles[side], prm.Body, prm.EdgeMode); ok {
				c.Side = side
				c.Substep = i
				rep.Contacts = append(rep.Contacts, c)
			}
		}
		confine(&s.Ball, prm.ArenaWidth, prm.ArenaHeight)

		s.Active = SelectActive(s.Ball, s.Paddles[Left], s.Paddles[Right], prm.Body)
	}
	return rep
}
