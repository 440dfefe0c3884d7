// Shapelab is an interactive collision lab for the paddle shapes. Drag the
// ball with the left mouse button, aim it with the right, and watch how the
// resolver handles faces, corners and edge gating.
//
// Usage: go run ./cmd/shapelab
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/pong/camera"
	"github.com/pthm-cable/pong/physics"
	"github.com/pthm-cable/pong/renderer"
)

const (
	windowWidth  = 1100
	windowHeight = 700
	panelWidth   = 280

	labWidth  = 400
	labHeight = 300

	traceMs   = 600
	ballSpeed = 0.5
)

// labState holds the lab parameters edited by the panel.
type labState struct {
	Width, Height float32
	CornerRadius  float32
	BallRadius    float32
	MaxSubstepMs  float32
	Shape         physics.ShapeKind
	Gated         bool

	Ball physics.Ball
}

func main() {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "Shape Lab")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	st := labState{
		Width:        25,
		Height:       125,
		CornerRadius: 8,
		BallRadius:   20,
		MaxSubstepMs: 5,
		Shape:        physics.ShapeCapsule,
		Gated:        true,
		Ball: physics.Ball{
			Pos:    r2.Vec{X: 120, Y: 90},
			Vel:    r2.Vec{X: 0.4, Y: 0.3},
			Radius: 20,
		},
	}

	cam := camera.New(windowWidth-panelWidth, windowHeight, labWidth, labHeight)
	draw := renderer.NewArenaRenderer(cam)

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			cam.Resize(float32(rl.GetScreenWidth()-panelWidth), float32(rl.GetScreenHeight()))
		}
		handleMouse(cam, &st)

		prm := st.params()
		paddle := physics.Paddle{
			X: (labWidth - float64(st.Width)) / 2,
			Y: (labHeight - float64(st.Height)) / 2,
		}

		// Resolve the ball where it stands, then trace its path
		resolved := st.Ball
		var contact physics.Contact
		var hit bool
		var path []r2.Vec
		var contacts []physics.Contact
		if !onCorner(st.Ball.Pos, paddle, prm.Body) {
			contact, hit = physics.ResolvePaddle(&resolved, paddle, prm.Body, prm.EdgeMode)
			path, contacts = trace(st.Ball, paddle, prm)
		}

		rl.BeginDrawing()

		draw.Draw(renderer.Frame{
			State: physics.State{
				Ball:    st.Ball,
				Paddles: [2]physics.Paddle{paddle, paddle},
			},
			Params: prm,
		})
		draw.DrawZones(paddle, prm, st.Ball.Radius)

		for i := 1; i < len(path); i++ {
			draw.DrawArrow(path[i-1], path[i], rl.Color{R: 90, G: 90, B: 90, A: 255})
		}
		for _, c := range contacts {
			draw.DrawContact(c)
		}

		draw.DrawArrow(st.Ball.Pos, st.Ball.Pos.Add(st.Ball.Vel.Scale(100)), rl.White)
		if hit {
			draw.DrawBall(resolved, rl.Color{R: 255, G: 0, B: 0, A: 90})
			draw.DrawArrow(resolved.Pos, resolved.Pos.Add(resolved.Vel.Scale(100)), rl.Green)
		}

		drawStatus(contact, hit, len(contacts))
		drawPanel(&st)

		rl.EndDrawing()
	}
}

// params builds physics parameters from the panel values.
func (st *labState) params() physics.Params {
	body := physics.Body{
		Width:  float64(st.Width),
		Height: float64(st.Height),
		Shape:  physics.Shape{Kind: st.Shape, Radius: float64(st.CornerRadius)},
	}
	mode := physics.EdgeLegacy
	if st.Gated {
		mode = physics.EdgeGated
	}
	return physics.Params{
		ArenaWidth:   labWidth,
		ArenaHeight:  labHeight,
		Body:         body,
		MaxSubstepMs: float64(st.MaxSubstepMs),
		EdgeMode:     mode,
	}
}

// trace moves a copy of the ball for traceMs against the paddle alone,
// substepped like the game loop.
func trace(b physics.Ball, p physics.Paddle, prm physics.Params) ([]r2.Vec, []physics.Contact) {
	n, dt := physics.Substeps(traceMs, prm.MaxSubstepMs)
	path := []r2.Vec{b.Pos}
	var contacts []physics.Contact
	for i := 0; i < n; i++ {
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		physics.ReflectWalls(&b, prm.ArenaWidth, prm.ArenaHeight)
		if c, ok := physics.ResolvePaddle(&b, p, prm.Body, prm.EdgeMode); ok {
			c.Substep = i + 1
			contacts = append(contacts, c)
		}
		path = append(path, b.Pos)
	}
	return path, contacts
}

// onCorner reports whether pos sits on a corner centre, where the contact
// normal is undefined.
func onCorner(pos r2.Vec, p physics.Paddle, body physics.Body) bool {
	for _, c := range body.Corners(p) {
		if physics.SqDist(pos, c) < 1e-9 {
			return true
		}
	}
	return false
}

func handleMouse(cam *camera.Camera, st *labState) {
	mouse := rl.GetMousePosition()
	if mouse.X > cam.ViewportW {
		return
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.ZoomAt(mouse.X, mouse.Y, 1+wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}

	wx, wy := cam.ScreenToWorld(mouse.X, mouse.Y)
	target := r2.Vec{X: float64(wx), Y: float64(wy)}

	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		st.Ball.Pos = target
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		if d := target.Sub(st.Ball.Pos); r2.Norm(d) > 1 {
			st.Ball.Vel = physics.Normalize(d).Scale(ballSpeed)
		}
	}
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		delta := rl.GetMouseDelta()
		cam.Pan(-delta.X, -delta.Y)
	}
}

func drawStatus(c physics.Contact, hit bool, traced int) {
	text := "no contact at the current position"
	if hit {
		text = fmt.Sprintf("contact: %s  point (%.1f, %.1f)  normal (%.2f, %.2f)",
			c.Feature, c.Point.X, c.Point.Y, c.Normal.X, c.Normal.Y)
	}
	rl.DrawText(text, 10, 10, 16, rl.LightGray)
	rl.DrawText(fmt.Sprintf("traced contacts over %d ms: %d", traceMs, traced), 10, 30, 16, rl.LightGray)
	rl.DrawText("left: place ball | right: aim | middle: pan | wheel: zoom | Home: fit", 10, int32(rl.GetScreenHeight())-25, 14, rl.Gray)
}

// drawPanel renders the parameter controls on the right.
func drawPanel(st *labState) {
	x := float32(rl.GetScreenWidth() - panelWidth + 10)
	y := float32(10)
	w := float32(panelWidth - 80)

	rl.DrawRectangle(int32(x)-10, 0, panelWidth, int32(rl.GetScreenHeight()), rl.Color{R: 20, G: 25, B: 30, A: 255})
	rl.DrawText("Shape Lab", int32(x), int32(y), 20, rl.White)
	y += 35

	slider := func(label string, value *float32, lo, hi float32) {
		rl.DrawText(fmt.Sprintf("%s: %.2f", label, *value), int32(x), int32(y), 14, rl.Gray)
		y += 18
		*value = gui.SliderBar(rl.Rectangle{X: x + 30, Y: y, Width: w, Height: 18},
			fmt.Sprintf("%g", lo), fmt.Sprintf("%g", hi), *value, lo, hi)
		y += 30
	}

	slider("Width", &st.Width, 5, 120)
	slider("Height", &st.Height, 5, 250)
	slider("Corner radius", &st.CornerRadius, 0.5, 60)
	slider("Ball radius", &st.BallRadius, 2, 60)
	slider("Max substep (ms)", &st.MaxSubstepMs, 0.1, 50)
	st.Ball.Radius = float64(st.BallRadius)

	// Keep the rounded radius valid for the current body
	limit := min(st.Width, st.Height) / 2
	if st.CornerRadius > limit {
		st.CornerRadius = limit
	}

	st.Gated = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 16, Height: 16}, "Gated edges", st.Gated)
	y += 30

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: panelWidth - 20, Height: 28}, "Shape: "+st.Shape.String()) {
		st.Shape = st.Shape.Next()
	}
}
