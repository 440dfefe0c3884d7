package physics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ShapeKind selects the paddle outline.
type ShapeKind uint8

const (
	// ShapeRect is a plain rectangle; its corners are point contacts.
	ShapeRect ShapeKind = iota
	// ShapeCapsule is a rectangle with half-disc caps of radius Width/2
	// centred on the middle of its top and bottom edges.
	ShapeCapsule
	// ShapeRounded is a rectangle whose four corners are rounded by Radius.
	ShapeRounded
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRect:
		return "rect"
	case ShapeCapsule:
		return "capsule"
	case ShapeRounded:
		return "rounded"
	}
	return fmt.Sprintf("ShapeKind(%d)", uint8(k))
}

// ParseShapeKind parses a shape name as written in config.
func ParseShapeKind(s string) (ShapeKind, error) {
	switch s {
	case "rect":
		return ShapeRect, nil
	case "capsule":
		return ShapeCapsule, nil
	case "rounded":
		return ShapeRounded, nil
	}
	return 0, fmt.Errorf("unknown paddle shape %q", s)
}

// Next cycles through the shape kinds.
func (k ShapeKind) Next() ShapeKind {
	return (k + 1) % 3
}

// Shape describes which paddle boundaries are flat and which are round.
// Radius is only read for ShapeRounded; capsules always use Width/2 and
// rectangles zero.
type Shape struct {
	Kind   ShapeKind
	Radius float64
}

// Body is the shared paddle geometry.
type Body struct {
	Width  float64
	Height float64
	Shape  Shape
}

// CornerRadius returns the radius of the round parts of the outline.
func (b Body) CornerRadius() float64 {
	switch b.Shape.Kind {
	case ShapeCapsule:
		return b.Width / 2
	case ShapeRounded:
		return b.Shape.Radius
	}
	return 0
}

func (b Body) validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: paddle %gx%g", ErrInvalidParams, b.Width, b.Height)
	}
	switch b.Shape.Kind {
	case ShapeRect, ShapeCapsule:
	case ShapeRounded:
		r := b.Shape.Radius
		if r <= 0 || r > math.Min(b.Width, b.Height)/2 {
			return fmt.Errorf("%w: corner radius %g outside (0, %g]",
				ErrInvalidParams, r, math.Min(b.Width, b.Height)/2)
		}
	default:
		return fmt.Errorf("%w: %v", ErrInvalidParams, b.Shape.Kind)
	}
	return nil
}

// overhang returns how far the outline reaches above and below the
// straight body.
func (b Body) overhang() (above, below float64) {
	if b.Shape.Kind == ShapeCapsule {
		r := b.CornerRadius()
		return r, r
	}
	return 0, 0
}

// outline is a paddle's collision geometry resolved to arena coordinates.
type outline struct {
	left, right float64 // vertical faces
	top, bottom float64 // horizontal faces, valid when flatCaps

	// Straight spans: the y range of the side faces and the x range of the
	// top and bottom faces. Round parts lie outside these spans.
	spanTop, spanBottom float64
	spanLeft, spanRight float64
	flatCaps            bool

	corners [4]r2.Vec
	nCorner int
	radius  float64
}

func (b Body) outline(p Paddle) outline {
	o := outline{
		left:   p.X,
		right:  p.X + b.Width,
		top:    p.Y,
		bottom: p.Y + b.Height,
		radius: b.CornerRadius(),
	}

	if b.Shape.Kind == ShapeCapsule {
		cx := p.X + b.Width/2
		o.spanTop, o.spanBottom = o.top, o.bottom
		o.corners[0] = r2.Vec{X: cx, Y: o.top}
		o.corners[1] = r2.Vec{X: cx, Y: o.bottom}
		o.nCorner = 2
		return o
	}

	r := o.radius
	o.flatCaps = true
	o.spanTop, o.spanBottom = o.top+r, o.bottom-r
	o.spanLeft, o.spanRight = o.left+r, o.right-r
	o.corners[0] = r2.Vec{X: o.left + r, Y: o.top + r}
	o.corners[1] = r2.Vec{X: o.right - r, Y: o.top + r}
	o.corners[2] = r2.Vec{X: o.left + r, Y: o.bottom - r}
	o.corners[3] = r2.Vec{X: o.right - r, Y: o.bottom - r}
	o.nCorner = 4
	return o
}

// Corners returns the centres of the round parts of the paddle outline in
// resolution order.
func (b Body) Corners(p Paddle) []r2.Vec {
	o := b.outline(p)
	return append([]r2.Vec(nil), o.corners[:o.nCorner]...)
}
