package physics

// SelectActive picks the paddle the player controls next. A ball at or past
// a paddle's collision line belongs to that paddle; otherwise the paddle the
// ball is travelling towards is active.
func SelectActive(b Ball, left, right Paddle, body Body) Side {
	switch {
	case b.Pos.X <= left.X+body.Width+b.Radius:
		return Left
	case b.Pos.X >= right.X-b.Radius:
		return Right
	case b.Vel.X > 0:
		return Right
	default:
		return Left
	}
}
