package physics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// minNorm is the smallest vector length Normalize accepts.
const minNorm = 1e-12

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// SqDist returns the squared distance between two points.
func SqDist(p, q r2.Vec) float64 {
	return r2.Norm2(r2.Sub(p, q))
}

// Normalize returns v scaled to unit length.
// Callers must guarantee a non-degenerate vector; a zero-length input
// means a ball centre landed exactly on a contact point and panics.
func Normalize(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n < minNorm {
		panic(fmt.Sprintf("physics: normalize of degenerate vector (%g, %g)", v.X, v.Y))
	}
	return r2.Scale(1/n, v)
}

// mirror reflects v about the unit normal n.
func mirror(v, n r2.Vec) r2.Vec {
	return r2.Sub(v, r2.Scale(2*r2.Dot(v, n), n))
}
