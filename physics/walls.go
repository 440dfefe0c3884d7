package physics

// Wall is a bitmask of arena walls.
type Wall uint8

const (
	WallRight Wall = 1 << iota
	WallLeft
	WallBottom
	WallTop
)

// Count returns the number of walls in the mask.
func (w Wall) Count() int {
	n := 0
	for ; w != 0; w &= w - 1 {
		n++
	}
	return n
}

// ReflectWalls bounces the ball off the arena walls. Any coordinate past a
// wall's contact line is mirrored about that line and the matching velocity
// component negated, which also removes the overshoot of the last substep.
func ReflectWalls(b *Ball, width, height float64) Wall {
	var hit Wall
	r := b.Radius

	if b.Pos.X >= width-r {
		b.Pos.X = 2*(width-r) - b.Pos.X
		b.Vel.X = -b.Vel.X
		hit |= WallRight
	}
	if b.Pos.X <= r {
		b.Pos.X = 2*r - b.Pos.X
		b.Vel.X = -b.Vel.X
		hit |= WallLeft
	}
	if b.Pos.Y >= height-r {
		b.Pos.Y = 2*(height-r) - b.Pos.Y
		b.Vel.Y = -b.Vel.Y
		hit |= WallBottom
	}
	if b.Pos.Y <= r {
		b.Pos.Y = 2*r - b.Pos.Y
		b.Vel.Y = -b.Vel.Y
		hit |= WallTop
	}
	return hit
}

// confine clamps the ball centre inside the walls' contact lines. A paddle
// flush with a wall can eject the ball past it after the wall pass.
func confine(b *Ball, width, height float64) {
	r := b.Radius
	b.Pos.X = Clamp(b.Pos.X, r, width-r)
	b.Pos.Y = Clamp(b.Pos.Y, r, height-r)
}
