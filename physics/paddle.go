package physics

// MovePaddle moves a paddle along y by push*speed*dtMs and clamps it to
// [minY, maxY].
func MovePaddle(p *Paddle, push Push, speed, dtMs, minY, maxY float64) {
	p.Y += float64(push) * speed * dtMs
	p.Y = Clamp(p.Y, minY, maxY)
}
