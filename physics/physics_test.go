package physics

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// testParams mirrors the shipped defaults: 800x600 arena, 25x125 capsule
// paddles, 5 ms substeps.
func testParams() Params {
	return Params{
		ArenaWidth:   800,
		ArenaHeight:  600,
		Body:         Body{Width: 25, Height: 125, Shape: Shape{Kind: ShapeCapsule}},
		PaddleSpeed:  0.5,
		MaxSubstepMs: 5,
		EdgeMode:     EdgeGated,
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		x, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.x, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%g, %g, %g) = %g, want %g", tc.x, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestSqDist(t *testing.T) {
	if got := SqDist(r2.Vec{}, r2.Vec{X: 3, Y: 4}); got != 25 {
		t.Errorf("SqDist = %g, want 25", got)
	}
	if got := SqDist(r2.Vec{X: 1, Y: 1}, r2.Vec{X: 1, Y: 1}); got != 0 {
		t.Errorf("SqDist of identical points = %g, want 0", got)
	}
}

// TestNormalize verifies unit length output and the panic on a degenerate vector.
func TestNormalize(t *testing.T) {
	n := Normalize(r2.Vec{X: 3, Y: 4})
	if !approx(n.X, 0.6) || !approx(n.Y, 0.8) {
		t.Errorf("Normalize(3,4) = %v, want (0.6, 0.8)", n)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic normalizing a zero vector")
		}
	}()
	Normalize(r2.Vec{})
}

// TestParamsValidate verifies parameter validation rejects unusable geometry.
func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr bool
	}{
		{"defaults", func(*Params) {}, false},
		{"rect", func(p *Params) { p.Body.Shape = Shape{Kind: ShapeRect} }, false},
		{"rounded", func(p *Params) { p.Body.Shape = Shape{Kind: ShapeRounded, Radius: 8} }, false},
		{"rounded zero radius", func(p *Params) { p.Body.Shape = Shape{Kind: ShapeRounded} }, true},
		{"rounded radius too big", func(p *Params) { p.Body.Shape = Shape{Kind: ShapeRounded, Radius: 13} }, true},
		{"zero substep", func(p *Params) { p.MaxSubstepMs = 0 }, true},
		{"paddle taller than arena", func(p *Params) { p.ArenaHeight = 140 }, true},
		{"negative speed", func(p *Params) { p.PaddleSpeed = -1 }, true},
		{"zero width", func(p *Params) { p.Body.Width = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := testParams()
			tc.mutate(&p)
			err := p.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidParams) {
					t.Errorf("Validate() = %v, want ErrInvalidParams", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

// TestNewState verifies paddles start centred at their padded positions.
func TestNewState(t *testing.T) {
	p := testParams()
	s := NewState(p, 70, Ball{Pos: r2.Vec{X: 400, Y: 300}, Radius: 20}, Right)

	if s.Paddles[Left].X != 70 {
		t.Errorf("left paddle X = %g, want 70", s.Paddles[Left].X)
	}
	if s.Paddles[Right].X != 705 {
		t.Errorf("right paddle X = %g, want 705", s.Paddles[Right].X)
	}
	for _, side := range []Side{Left, Right} {
		if s.Paddles[side].Y != 237.5 {
			t.Errorf("%v paddle Y = %g, want 237.5", side, s.Paddles[side].Y)
		}
	}
	if s.Active != Right {
		t.Errorf("Active = %v, want right", s.Active)
	}
	if s.Paddle(Left) != &s.Paddles[Left] {
		t.Error("Paddle(Left) does not alias Paddles[Left]")
	}
}

func TestSideOther(t *testing.T) {
	if Left.Other() != Right || Right.Other() != Left {
		t.Error("Other() does not swap sides")
	}
}

// TestParseNames verifies config names round-trip through the parsers.
func TestParseNames(t *testing.T) {
	for _, k := range []ShapeKind{ShapeRect, ShapeCapsule, ShapeRounded} {
		got, err := ParseShapeKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseShapeKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseShapeKind("oval"); err == nil {
		t.Error("expected error for unknown shape")
	}

	for _, m := range []EdgeMode{EdgeGated, EdgeLegacy} {
		got, err := ParseEdgeMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseEdgeMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseEdgeMode("sticky"); err == nil {
		t.Error("expected error for unknown edge mode")
	}

	for _, s := range []Side{Left, Right} {
		got, err := ParseSide(s.String())
		if err != nil || got != s {
			t.Errorf("ParseSide(%q) = %v, %v", s.String(), got, err)
		}
	}
}

func TestShapeKindNextCycles(t *testing.T) {
	k := ShapeRect
	seen := map[ShapeKind]bool{}
	for i := 0; i < 3; i++ {
		seen[k] = true
		k = k.Next()
	}
	if k != ShapeRect || len(seen) != 3 {
		t.Errorf("Next did not cycle through all shapes: back at %v, saw %d", k, len(seen))
	}
}
