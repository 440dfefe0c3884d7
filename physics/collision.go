package physics

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Feature identifies the part of a paddle the ball touched.
type Feature uint8

const (
	FeatureLeft Feature = iota
	FeatureRight
	FeatureTop
	FeatureBottom
	FeatureCorner
)

func (f Feature) String() string {
	switch f {
	case FeatureLeft:
		return "left"
	case FeatureRight:
		return "right"
	case FeatureTop:
		return "top"
	case FeatureBottom:
		return "bottom"
	case FeatureCorner:
		return "corner"
	}
	return fmt.Sprintf("Feature(%d)", uint8(f))
}

// Contact describes one resolved ball/paddle collision.
type Contact struct {
	Side    Side // set by the integrator
	Substep int  // set by the integrator
	Feature Feature
	Corner  int    // index into Body.Corners when Feature is FeatureCorner
	Point   r2.Vec // on the paddle surface
	Normal  r2.Vec // outward, unit length
}

// ResolvePaddle tests the ball against one paddle and resolves the first
// matching contact. Flat faces are tested before round parts; the straight
// spans exclude the round parts so the two families never overlap.
func ResolvePaddle(b *Ball, p Paddle, body Body, mode EdgeMode) (Contact, bool) {
	o := body.outline(p)
	r := b.Radius
	gated := mode == EdgeGated

	zones, n := o.zones(body, r, mode)
	for _, z := range zones[:n] {
		if !z.Contains(b.Pos) {
			continue
		}
		if gated && r2.Dot(b.Vel, z.Normal) >= 0 {
			continue
		}
		// Mirror about the line the ball centre touches when tangent
		if z.Normal.X != 0 {
			b.Vel.X = -b.Vel.X
			b.Pos.X = 2*(z.Face+z.Normal.X*r) - b.Pos.X
			return Contact{Feature: z.Feature, Point: r2.Vec{X: z.Face, Y: b.Pos.Y}, Normal: z.Normal}, true
		}
		b.Vel.Y = -b.Vel.Y
		b.Pos.Y = 2*(z.Face+z.Normal.Y*r) - b.Pos.Y
		return Contact{Feature: z.Feature, Point: r2.Vec{X: b.Pos.X, Y: z.Face}, Normal: z.Normal}, true
	}

	reach := r + o.radius
	for i, c := range o.corners[:o.nCorner] {
		if SqDist(c, b.Pos) > reach*reach {
			continue
		}
		n := Normalize(r2.Sub(b.Pos, c))
		if gated && r2.Dot(b.Vel, n) >= 0 {
			continue
		}
		b.Vel = mirror(b.Vel, n)
		b.Pos = r2.Add(c, r2.Scale(reach, n))
		return Contact{
			Feature: FeatureCorner,
			Corner:  i,
			Point:   r2.Add(c, r2.Scale(o.radius, n)),
			Normal:  n,
		}, true
	}

	return Contact{}, false
}
