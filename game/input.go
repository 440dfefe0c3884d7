package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/physics"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Paddle push from key edges; the most recent press wins
	if rl.IsKeyPressed(rl.KeyUp) {
		g.tracker.Press(physics.Up)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		g.tracker.Press(physics.Down)
	}
	if rl.IsKeyReleased(rl.KeyUp) {
		g.tracker.Release(physics.Up)
	}
	if rl.IsKeyReleased(rl.KeyDown) {
		g.tracker.Release(physics.Down)
	}
	if !rl.IsWindowFocused() {
		g.tracker.Reset()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
		slog.Info("pause toggled", "paused", g.paused, "frame", g.session.Frame())
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.reset()
	}

	for _, key := range g.overlays.Keys() {
		if rl.IsKeyPressed(key) {
			if id, on, ok := g.overlays.HandleKeyPress(key); ok {
				slog.Debug("overlay toggled", "overlay", string(id), "enabled", on)
			}
		}
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		if g.tuning.Toggle() {
			g.syncTuningState()
		}
	}

	g.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.perfPanel.SetPosition(int32(w)-230, 10)
	g.tuning.SetPosition(int32(w)-230, 170)
	g.controls.SetAnchor(10, int32(h)-controlsBottomGap)
}

// handleCameraInput processes camera zoom controls. Arrow keys belong to
// the paddle, so panning is on the right mouse button.
func (g *Game) handleCameraInput() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		g.camera.ZoomAt(mouse.X, mouse.Y, 1+wheel*0.1)
	}

	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		g.camera.Pan(-delta.X, -delta.Y)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
