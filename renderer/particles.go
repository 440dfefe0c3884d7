package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/camera"
	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/physics"
	"github.com/pthm-cable/pong/systems"
)

// SparkRenderer renders contact sparks.
type SparkRenderer struct{}

// NewSparkRenderer creates a new spark renderer.
func NewSparkRenderer() *SparkRenderer {
	return &SparkRenderer{}
}

// Draw renders all live sparks, fading them over their lifetime.
func (r *SparkRenderer) Draw(cam *camera.Camera, sparks *systems.SparkSystem) {
	if sparks == nil {
		return
	}
	sparks.Each(func(pos components.Position, s components.Spark) {
		fade := s.Fade()

		// Warm white from the left paddle, cool white from the right
		color := rl.Color{R: 255, G: 200, B: 120, A: uint8(fade * 230)}
		if s.Side == uint8(physics.Right) {
			color = rl.Color{R: 140, G: 180, B: 255, A: uint8(fade * 230)}
		}

		size := cam.Scale(s.Size * fade)
		if size < 0.5 {
			size = 0.5
		}
		sx, sy := cam.WorldToScreen(pos.X, pos.Y)
		rl.DrawCircle(int32(sx), int32(sy), size, color)
	})
}
