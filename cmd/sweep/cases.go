package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/physics"
)

// Case is one point of the sweep grid.
type Case struct {
	MaxSubstepMs float64
	Shape        physics.ShapeKind
	EdgeMode     physics.EdgeMode
	SpeedScale   float64 // multiplies the configured ball velocity
}

// Apply writes the case into cfg, turning the ball by angle radians, and
// re-derives it. Effects are disabled so runs measure physics only.
func (c Case) Apply(cfg *config.Config, angle float64) error {
	cfg.Physics.MaxSubstepMs = c.MaxSubstepMs
	cfg.Paddle.Shape = c.Shape.String()
	cfg.Physics.EdgeMode = c.EdgeMode.String()
	cfg.Effects.Enabled = false

	sin, cos := math.Sincos(angle)
	vx, vy := cfg.Ball.VX*c.SpeedScale, cfg.Ball.VY*c.SpeedScale
	cfg.Ball.VX = vx*cos - vy*sin
	cfg.Ball.VY = vx*sin + vy*cos

	return cfg.Derive()
}

// Cases returns the full cartesian product of the sweep axes.
func Cases(caps []float64, shapes []physics.ShapeKind, modes []physics.EdgeMode, speeds []float64) []Case {
	cases := make([]Case, 0, len(caps)*len(shapes)*len(modes)*len(speeds))
	for _, shape := range shapes {
		for _, mode := range modes {
			for _, speed := range speeds {
				for _, maxMs := range caps {
					cases = append(cases, Case{
						MaxSubstepMs: maxMs,
						Shape:        shape,
						EdgeMode:     mode,
						SpeedScale:   speed,
					})
				}
			}
		}
	}
	return cases
}

// LaunchAngles spreads n ball directions evenly over ±spread radians.
func LaunchAngles(n int, spread float64) []float64 {
	if n <= 1 {
		return []float64{0}
	}
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = -spread + 2*spread*float64(i)/float64(n-1)
	}
	return angles
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, f := range splitList(s) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", f, err)
		}
		if v <= 0 {
			return nil, fmt.Errorf("%g must be positive", v)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	return out, nil
}

func parseShapes(s string) ([]physics.ShapeKind, error) {
	var out []physics.ShapeKind
	for _, f := range splitList(s) {
		k, err := physics.ParseShapeKind(f)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	return out, nil
}

func parseModes(s string) ([]physics.EdgeMode, error) {
	var out []physics.EdgeMode
	for _, f := range splitList(s) {
		m, err := physics.ParseEdgeMode(f)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
