package physics

import "gonum.org/v1/gonum/spatial/r2"

// Zone is the axis-aligned region in which a ball centre collides with one
// flat face of a paddle.
type Zone struct {
	Feature  Feature
	Min, Max r2.Vec
	Normal   r2.Vec  // outward
	Face     float64 // x of a side face, y of a top or bottom face
}

// Contains reports whether v lies in the zone, edges included.
func (z Zone) Contains(v r2.Vec) bool {
	return v.X >= z.Min.X && v.X <= z.Max.X && v.Y >= z.Min.Y && v.Y <= z.Max.Y
}

// Zones returns the flat-face collision zones of a paddle for a ball of the
// given radius, in resolution order.
func (b Body) Zones(p Paddle, radius float64, mode EdgeMode) []Zone {
	zs, n := b.outline(p).zones(b, radius, mode)
	return append([]Zone(nil), zs[:n]...)
}

// zones builds the face zones. Gated zones reach the paddle's centre line so
// a fast ball cannot step over a zone that ends at the face; legacy zones
// end at the face.
func (o outline) zones(body Body, r float64, mode EdgeMode) (zs [4]Zone, n int) {
	depthX, depthY := 0.0, 0.0
	if mode == EdgeGated {
		depthX, depthY = body.Width/2, body.Height/2
	}

	zs[0] = Zone{
		Feature: FeatureLeft,
		Min:     r2.Vec{X: o.left - r, Y: o.spanTop},
		Max:     r2.Vec{X: o.left + depthX, Y: o.spanBottom},
		Normal:  r2.Vec{X: -1},
		Face:    o.left,
	}
	zs[1] = Zone{
		Feature: FeatureRight,
		Min:     r2.Vec{X: o.right - depthX, Y: o.spanTop},
		Max:     r2.Vec{X: o.right + r, Y: o.spanBottom},
		Normal:  r2.Vec{X: 1},
		Face:    o.right,
	}
	if !o.flatCaps {
		return zs, 2
	}

	zs[2] = Zone{
		Feature: FeatureTop,
		Min:     r2.Vec{X: o.spanLeft, Y: o.top - r},
		Max:     r2.Vec{X: o.spanRight, Y: o.top + depthY},
		Normal:  r2.Vec{Y: -1},
		Face:    o.top,
	}
	zs[3] = Zone{
		Feature: FeatureBottom,
		Min:     r2.Vec{X: o.spanLeft, Y: o.bottom - depthY},
		Max:     r2.Vec{X: o.spanRight, Y: o.bottom + r},
		Normal:  r2.Vec{Y: 1},
		Face:    o.bottom,
	}
	return zs, 4
}
