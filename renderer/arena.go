// Package renderer draws the arena, paddles, ball and effects with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/pong/camera"
	"github.com/pthm-cable/pong/physics"
	"github.com/pthm-cable/pong/systems"
)

// Palette
var (
	BackgroundColor = rl.Black
	LetterboxColor  = rl.Color{R: 12, G: 12, B: 12, A: 255}
	BoundaryColor   = rl.Color{R: 50, G: 50, B: 50, A: 255}
	CenterLineColor = rl.Color{R: 50, G: 50, B: 50, A: 255}
	ActiveColor     = rl.Color{R: 0, G: 0, B: 255, A: 255}
	InactiveColor   = rl.Color{R: 100, G: 100, B: 100, A: 255}
	BallColor       = rl.Color{R: 255, G: 0, B: 0, A: 255}

	zoneColor    = rl.Color{R: 0, G: 200, B: 120, A: 50}
	zoneEdge     = rl.Color{R: 0, G: 200, B: 120, A: 160}
	cornerColor  = rl.Color{R: 255, G: 200, B: 0, A: 140}
	contactColor = rl.Color{R: 255, G: 255, B: 255, A: 255}
)

// Frame is everything the renderer needs for one frame.
type Frame struct {
	State  physics.State
	Params physics.Params
	Sparks *systems.SparkSystem // nil hides sparks

	// Overlays
	Zones    bool              // flat-face zones and corner reach circles
	Contacts []physics.Contact // contact points and normals to mark
}

// ArenaRenderer draws the playfield through a camera.
type ArenaRenderer struct {
	cam    *camera.Camera
	sparks *SparkRenderer
}

// NewArenaRenderer creates an arena renderer.
func NewArenaRenderer(cam *camera.Camera) *ArenaRenderer {
	return &ArenaRenderer{cam: cam, sparks: NewSparkRenderer()}
}

// Draw renders the frame: background, boundary and centre line, inactive
// paddle, active paddle, sparks, ball, then any overlays. It must be called
// between rl.BeginDrawing and rl.EndDrawing.
func (r *ArenaRenderer) Draw(f Frame) {
	rl.ClearBackground(LetterboxColor)

	w, h := float32(f.Params.ArenaWidth), float32(f.Params.ArenaHeight)
	arena := r.worldRect(0, 0, w, h)
	rl.DrawRectangleRec(arena, BackgroundColor)
	rl.DrawRectangleLinesEx(arena, 1, BoundaryColor)

	top := r.screen(w/2, 0)
	bottom := r.screen(w/2, h)
	rl.DrawLineEx(top, bottom, 1, CenterLineColor)

	active := f.State.Active
	r.DrawPaddle(f.State.Paddles[active.Other()], f.Params.Body, InactiveColor)
	r.DrawPaddle(f.State.Paddles[active], f.Params.Body, ActiveColor)

	r.sparks.Draw(r.cam, f.Sparks)

	b := f.State.Ball
	r.DrawBall(b, BallColor)

	if f.Zones {
		for _, p := range f.State.Paddles {
			r.DrawZones(p, f.Params, b.Radius)
		}
	}
	for _, c := range f.Contacts {
		r.DrawContact(c)
	}
}

// DrawPaddle draws a paddle in its configured shape.
func (r *ArenaRenderer) DrawPaddle(p physics.Paddle, body physics.Body, color rl.Color) {
	x, y := float32(p.X), float32(p.Y)
	w, h := float32(body.Width), float32(body.Height)

	switch body.Shape.Kind {
	case physics.ShapeCapsule:
		rl.DrawRectangleRec(r.worldRect(x, y, w, h), color)
		radius := r.cam.Scale(float32(body.CornerRadius()))
		for _, c := range body.Corners(p) {
			sc := r.screen(float32(c.X), float32(c.Y))
			rl.DrawCircle(int32(sc.X), int32(sc.Y), radius, color)
		}
	case physics.ShapeRounded:
		// raylib's roundness is the corner radius over half the short side
		short := w
		if h < short {
			short = h
		}
		roundness := 2 * float32(body.CornerRadius()) / short
		rl.DrawRectangleRounded(r.worldRect(x, y, w, h), roundness, 8, color)
	default:
		rl.DrawRectangleRec(r.worldRect(x, y, w, h), color)
	}
}

// DrawZones shades the flat-face zones and outlines the corner reach circles
// for a ball of the given radius.
func (r *ArenaRenderer) DrawZones(p physics.Paddle, prm physics.Params, radius float64) {
	for _, z := range prm.Body.Zones(p, radius, prm.EdgeMode) {
		rec := r.worldRect(float32(z.Min.X), float32(z.Min.Y), float32(z.Max.X-z.Min.X), float32(z.Max.Y-z.Min.Y))
		rl.DrawRectangleRec(rec, zoneColor)
		rl.DrawRectangleLinesEx(rec, 1, zoneEdge)
	}

	reach := r.cam.Scale(float32(radius + prm.Body.CornerRadius()))
	for _, c := range prm.Body.Corners(p) {
		rl.DrawCircleLinesV(r.screen(float32(c.X), float32(c.Y)), reach, cornerColor)
	}
}

// DrawContact marks a contact point with its outward normal.
func (r *ArenaRenderer) DrawContact(c physics.Contact) {
	const normalLen = 30
	from := r.screen(float32(c.Point.X), float32(c.Point.Y))
	to := r.screen(float32(c.Point.X+c.Normal.X*normalLen), float32(c.Point.Y+c.Normal.Y*normalLen))
	rl.DrawLineEx(from, to, 2, contactColor)
	rl.DrawCircleV(from, 3, contactColor)
}

// DrawBall draws a filled ball.
func (r *ArenaRenderer) DrawBall(b physics.Ball, color rl.Color) {
	c := r.screen(float32(b.Pos.X), float32(b.Pos.Y))
	rl.DrawCircleV(c, r.cam.Scale(float32(b.Radius)), color)
}

// DrawArrow draws a line from one arena point to another with a dot at the
// head.
func (r *ArenaRenderer) DrawArrow(from, to r2.Vec, color rl.Color) {
	a := r.screen(float32(from.X), float32(from.Y))
	b := r.screen(float32(to.X), float32(to.Y))
	rl.DrawLineEx(a, b, 2, color)
	rl.DrawCircleV(b, 4, color)
}

func (r *ArenaRenderer) screen(wx, wy float32) rl.Vector2 {
	sx, sy := r.cam.WorldToScreen(wx, wy)
	return rl.Vector2{X: sx, Y: sy}
}

func (r *ArenaRenderer) worldRect(x, y, w, h float32) rl.Rectangle {
	sx, sy := r.cam.WorldToScreen(x, y)
	return rl.Rectangle{X: sx, Y: sy, Width: r.cam.Scale(w), Height: r.cam.Scale(h)}
}
