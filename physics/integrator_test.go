package physics

import (
	"math"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

// TestSubsteps verifies substep count and length for ordinary and degenerate frames.
func TestSubsteps(t *testing.T) {
	tests := []struct {
		frameMs, maxMs float64
		wantN          int
		wantDt         float64
	}{
		{20, 5, 4, 5},
		{7, 5, 2, 3.5},
		{100, 5, 20, 5},
		{0.001, 5, 1, 0.001},
		{5, 5, 1, 5},
		{0, 5, 0, 0},
		{-3, 5, 0, 0},
		{16, 0, 0, 0},
		{math.NaN(), 5, 0, 0},
		{math.Inf(1), 5, 0, 0},
	}

	for _, tc := range tests {
		n, dt := Substeps(tc.frameMs, tc.maxMs)
		if n != tc.wantN || !approx(dt, tc.wantDt) {
			t.Errorf("Substeps(%g, %g) = (%d, %g), want (%d, %g)",
				tc.frameMs, tc.maxMs, n, dt, tc.wantN, tc.wantDt)
		}
	}
}

// TestSubstepsReconstructFrame verifies n*dt reconstructs the frame, n >= 1 and no substep exceeds the cap.
func TestSubstepsReconstructFrame(t *testing.T) {
	for _, frame := range []float64{0.3, 1, 4.999, 5.001, 16.6667, 33, 99.9, 1000, 12345.678} {
		n, dt := Substeps(frame, 5)
		if n < 1 {
			t.Fatalf("frame %g: %d substeps", frame, n)
		}
		if dt > 5+eps {
			t.Errorf("frame %g: substep %g exceeds cap", frame, dt)
		}
		if got := float64(n) * dt; !approx(got, frame) {
			t.Errorf("frame %g: %d * %g = %g", frame, n, dt, got)
		}
	}
}

// TestSubstepsCapped verifies huge frames stop at MaxSubsteps and still sum to the frame.
func TestSubstepsCapped(t *testing.T) {
	n, dt := Substeps(1e12, 5)
	if n != MaxSubsteps {
		t.Fatalf("n = %d, want %d", n, MaxSubsteps)
	}
	if got := float64(n) * dt; !approx(got, 1e12) {
		t.Errorf("n*dt = %g, want 1e12", got)
	}
}

func newTestState(pos, vel r2.Vec) State {
	return NewState(testParams(), 70, Ball{Pos: pos, Vel: vel, Radius: 20}, Right)
}

// A ball crossing 100 units in one frame bounces off a paddle that is only
// 25 units thick when the frame is substepped, and sails through it when
// the whole frame is taken as a single step.
func TestAdvanceNoTunnelling(t *testing.T) {
	t.Run("substepped", func(t *testing.T) {
		s := newTestState(r2.Vec{X: 640, Y: 300}, r2.Vec{X: 5})
		rep := Advance(&s, 100, None, testParams())

		if rep.Substeps < 20 {
			t.Errorf("substeps = %d, want >= 20", rep.Substeps)
		}
		if len(rep.Contacts) == 0 {
			t.Fatal("expected a paddle contact")
		}
		c := rep.Contacts[0]
		if c.Side != Right || c.Feature != FeatureLeft || c.Substep != 1 {
			t.Errorf("first contact = %+v, want right paddle left face at substep 1", c)
		}
		if s.Ball.Vel.X >= 0 {
			t.Errorf("ball still moving right: vx = %g", s.Ball.Vel.X)
		}
		if !approx(s.Ball.Pos.X, 230) {
			t.Errorf("ball x = %g, want 230", s.Ball.Pos.X)
		}
	})

	t.Run("single step", func(t *testing.T) {
		prm := testParams()
		prm.MaxSubstepMs = 20
		s := newTestState(r2.Vec{X: 640, Y: 300}, r2.Vec{X: 5})
		rep := Advance(&s, 20, None, prm)

		if len(rep.Contacts) != 0 {
			t.Fatalf("unexpected contacts %+v", rep.Contacts)
		}
		if s.Ball.Pos.X <= 730 {
			t.Errorf("ball x = %g, expected it past the paddle", s.Ball.Pos.X)
		}
	})
}

// TestAdvanceNoTunnellingFromPaddleCentre verifies a ball launched at 50
// units/ms from the middle of either paddle is split into 20 substeps of a
// 100 ms frame and meets a paddle instead of crossing the arena unseen.
func TestAdvanceNoTunnellingFromPaddleCentre(t *testing.T) {
	prm := testParams()
	for _, side := range []Side{Left, Right} {
		t.Run(side.String(), func(t *testing.T) {
			s := newTestState(r2.Vec{}, r2.Vec{X: 50})
			p := s.Paddles[side]
			s.Ball.Pos = r2.Vec{X: p.X + prm.Body.Width/2, Y: 300}

			rep := Advance(&s, 100, None, prm)

			if rep.Substeps < 20 {
				t.Errorf("substeps = %d, want >= 20", rep.Substeps)
			}
			if len(rep.Contacts) == 0 {
				t.Fatal("expected a paddle contact")
			}
			if !approx(s.Ball.Speed(), 50) {
				t.Errorf("speed = %g, want 50", s.Ball.Speed())
			}
			if x := s.Ball.Pos.X; x < 20 || x > 780 {
				t.Errorf("ball x = %g outside the arena", x)
			}
		})
	}
}

// TestAdvanceKeepsBallInsideNearFlushPaddle verifies a rect paddle parked
// against the top wall cannot eject the ball through that wall.
func TestAdvanceKeepsBallInsideNearFlushPaddle(t *testing.T) {
	prm := testParams()
	prm.Body.Shape = Shape{Kind: ShapeRect}
	minY, _ := prm.PaddleRange()

	// Inside the right paddle's top-face zone, moving down into it
	s := newTestState(r2.Vec{X: 712, Y: 30}, r2.Vec{X: -0.1, Y: 0.3})
	s.Paddles[Right].Y = minY

	rep := Advance(&s, 0.1, None, prm)

	if len(rep.Contacts) != 1 || rep.Contacts[0].Feature != FeatureTop {
		t.Fatalf("contacts = %+v, want one top-face contact", rep.Contacts)
	}
	if y := s.Ball.Pos.Y; y < 20 || y > 580 {
		t.Errorf("ball y = %g, want inside [20, 580]", y)
	}
	if s.Ball.Vel.Y >= 0 {
		t.Errorf("vy = %g, want the ball sent upward", s.Ball.Vel.Y)
	}
}

// TestAdvanceMovesOnlyActivePaddle verifies the push moves the active paddle and leaves the other alone.
func TestAdvanceMovesOnlyActivePaddle(t *testing.T) {
	s := newTestState(r2.Vec{X: 400, Y: 300}, r2.Vec{X: 0.3})
	leftBefore := s.Paddles[Left]

	rep := Advance(&s, 10, Down, testParams())

	if rep.Substeps != 2 {
		t.Fatalf("substeps = %d, want 2", rep.Substeps)
	}
	if s.Paddles[Left] != leftBefore {
		t.Errorf("inactive paddle moved to %+v", s.Paddles[Left])
	}
	if !approx(s.Paddles[Right].Y, 242.5) {
		t.Errorf("active paddle Y = %g, want 242.5", s.Paddles[Right].Y)
	}
	if !approx(s.Ball.Pos.X, 403) {
		t.Errorf("ball x = %g, want 403", s.Ball.Pos.X)
	}
}

// TestAdvanceZeroFrame verifies a zero frame leaves the state untouched.
func TestAdvanceZeroFrame(t *testing.T) {
	s := newTestState(r2.Vec{X: 400, Y: 300}, r2.Vec{X: 0.3, Y: 0.4})
	before := s
	rep := Advance(&s, 0, Down, testParams())
	if rep.Substeps != 0 || s != before {
		t.Errorf("zero frame changed state: %+v", rep)
	}
}

// TestAdvanceActiveReassigned verifies the active paddle follows the ball across the threshold.
func TestAdvanceActiveReassigned(t *testing.T) {
	// Inside the left paddle's threshold, moving right, with the right
	// paddle active.
	s := newTestState(r2.Vec{X: 110, Y: 300}, r2.Vec{X: 0.2})
	Advance(&s, 5, None, testParams())
	if s.Active != Left {
		t.Errorf("Active = %v, want left at x=%g", s.Active, s.Ball.Pos.X)
	}
}

type frame struct {
	ms   float64
	push Push
}

func scriptedFrames(n int) []frame {
	ms := []float64{16, 17, 33, 5, 250, 1, 16.6667, 100, 0, 48}
	pushes := []Push{None, Up, Up, Down, None, Down, Up}
	frames := make([]frame, n)
	for i := range frames {
		frames[i] = frame{ms: ms[i%len(ms)], push: pushes[i%len(pushes)]}
	}
	return frames
}

// TestAdvanceDeterministic verifies identical inputs give identical states and reports.
func TestAdvanceDeterministic(t *testing.T) {
	frames := scriptedFrames(2000)
	run := func() (State, []Report) {
		s := newTestState(r2.Vec{X: 400, Y: 300}, r2.Vec{X: 0.3, Y: 0.4})
		reps := make([]Report, 0, len(frames))
		for _, f := range frames {
			reps = append(reps, Advance(&s, f.ms, f.push, testParams()))
		}
		return s, reps
	}

	s1, reps1 := run()
	s2, reps2 := run()
	if s1 != s2 {
		t.Errorf("final states differ:\n%+v\n%+v", s1, s2)
	}
	if !reflect.DeepEqual(reps1, reps2) {
		t.Error("reports differ between identical runs")
	}
}

func TestAdvanceConservesSpeed(t *testing.T) {
	for _, shape := range []Shape{
		{Kind: ShapeCapsule},
		{Kind: ShapeRect},
		{Kind: ShapeRounded, Radius: 10},
	} {
		t.Run(shape.Kind.String(), func(t *testing.T) {
			prm := testParams()
			prm.Body.Shape = shape
			s := NewState(prm, 70, Ball{Pos: r2.Vec{X: 400, Y: 300}, Vel: r2.Vec{X: 0.3, Y: 0.4}, Radius: 20}, Right)
			minY, maxY := prm.PaddleRange()

			contacts := 0
			for _, f := range scriptedFrames(5000) {
				rep := Advance(&s, f.ms, f.push, prm)
				contacts += len(rep.Contacts)

				if speed := s.Ball.Speed(); math.Abs(speed-0.5) > 1e-9 {
					t.Fatalf("speed drifted to %.12f", speed)
				}
				for _, p := range s.Paddles {
					if p.Y < minY || p.Y > maxY {
						t.Fatalf("paddle Y %g outside [%g, %g]", p.Y, minY, maxY)
					}
				}
			}
			if contacts == 0 {
				t.Error("expected at least one paddle contact over the run")
			}
		})
	}
}
