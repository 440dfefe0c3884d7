// Package game runs the interactive window: it polls the keyboard, steps a
// sim.Session with the measured frame time and draws the result.
package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/camera"
	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/input"
	"github.com/pthm-cable/pong/physics"
	"github.com/pthm-cable/pong/renderer"
	"github.com/pthm-cable/pong/sim"
	"github.com/pthm-cable/pong/telemetry"
	"github.com/pthm-cable/pong/ui"
)

const title = "Pong"

// controlsBottomGap keeps the overlay list above the controls line.
const controlsBottomGap = 30

const controlsText = "Up/Down: move | Space: pause | R: reset | D/C/H/P: overlays | Tab: overlay list | F1: tuning | wheel: zoom | Home: fit"

// Game holds the window-side state around a session.
type Game struct {
	cfg     *config.Config
	session *sim.Session
	clock   *sim.Clock
	tracker input.Tracker

	// Rendering
	camera    *camera.Camera
	arena     *renderer.ArenaRenderer
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	controls  *ui.ControlsPanel
	tuning    *ui.TuningPanel
	overlays  *ui.OverlayRegistry

	tuningState ui.TuningState

	// State
	paused   bool
	frameMs  float64
	contacts int

	screenWidth, screenHeight float32
}

// New creates a game for an open raylib window.
func New(cfg *config.Config, opts sim.Options) (*Game, error) {
	session, err := sim.New(cfg, opts)
	if err != nil {
		return nil, err
	}

	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	cam := camera.New(w, h, float32(cfg.Arena.Width), float32(cfg.Arena.Height))

	g := &Game{
		cfg:          cfg,
		session:      session,
		clock:        sim.NewClock(cfg.Physics.FirstFrameMs),
		camera:       cam,
		arena:        renderer.NewArenaRenderer(cam),
		hud:          ui.NewHUD(),
		perfPanel:    ui.NewPerfPanel(int32(w)-230, 10, 220),
		controls:     ui.NewControlsPanel(10, int32(h)-controlsBottomGap, 260),
		tuning:       ui.NewTuningPanel(int32(w)-230, 170, 220),
		overlays:     ui.NewOverlayRegistry(),
		screenWidth:  w,
		screenHeight: h,
	}
	g.syncTuningState()
	return g, nil
}

// Update runs one loop iteration: input, then one physics frame covering
// the wall time since the previous iteration.
func (g *Game) Update() {
	perf := g.session.Perf()
	perf.StartFrame()
	perf.StartPhase(telemetry.PhaseInput)

	g.handleInput()

	// The clock keeps running while paused so unpausing does not simulate
	// the paused time in one frame.
	frameMs := g.clock.Tick()
	if g.paused {
		return
	}
	g.frameMs = frameMs

	rep := g.session.Step(frameMs, g.tracker.Push())
	g.contacts += len(rep.Contacts)
}

// Draw renders the current state and closes the frame's perf sample.
func (g *Game) Draw() {
	perf := g.session.Perf()
	perf.StartPhase(telemetry.PhaseRender)

	rl.BeginDrawing()

	state := g.session.State()
	frame := renderer.Frame{
		State:  state,
		Params: g.session.Params(),
		Sparks: g.session.Sparks(),
		Zones:  g.overlays.IsEnabled(ui.OverlayZones),
	}
	if g.overlays.IsEnabled(ui.OverlayContacts) {
		frame.Contacts = g.session.LastReport().Contacts
	}
	g.arena.Draw(frame)

	g.drawUI(state)

	rl.EndDrawing()

	if !g.paused {
		perf.EndFrame()
	}
}

func (g *Game) drawUI(state physics.State) {
	if g.overlays.IsEnabled(ui.OverlayHUD) {
		rep := g.session.LastReport()
		prm := g.session.Params()
		substepMs := 0.0
		if rep.Substeps > 0 {
			substepMs = g.frameMs / float64(rep.Substeps)
		}
		g.hud.Draw(ui.HUDData{
			Title:     title,
			FPS:       rl.GetFPS(),
			FrameMs:   g.frameMs,
			Substeps:  rep.Substeps,
			SubstepMs: substepMs,
			Frame:     g.session.Frame(),
			Speed:     state.Ball.Speed(),
			Active:    state.Active,
			Push:      g.tracker.Push(),
			Contacts:  g.contacts,
			Sparks:    g.session.Sparks().Count(),
			Shape:     prm.Body.Shape.Kind,
			EdgeMode:  prm.EdgeMode,
			Paused:    g.paused,
		})
		g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsText)
	}

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.session.Perf().Stats())
	}

	g.controls.Draw(g.overlays)

	if act := g.tuning.Draw(&g.tuningState); act.Changed || act.Reset {
		g.applyTuning(act)
	}
}

// applyTuning pushes tuning panel edits into the session.
func (g *Game) applyTuning(act ui.TuningAction) {
	if act.Reset {
		g.reset()
		return
	}

	prm := g.session.Params()
	prm.MaxSubstepMs = float64(g.tuningState.MaxSubstepMs)
	prm.Body.Shape.Kind = g.tuningState.Shape
	if prm.Body.Shape.Kind == physics.ShapeRounded && prm.Body.Shape.Radius <= 0 {
		prm.Body.Shape.Radius = g.cfg.Paddle.CornerRadius
	}
	prm.EdgeMode = physics.EdgeLegacy
	if g.tuningState.Gated {
		prm.EdgeMode = physics.EdgeGated
	}

	if err := g.session.SetParams(prm); err != nil {
		slog.Warn("rejected tuning change", "error", err)
		g.syncTuningState()
		return
	}
	g.session.SetEffects(g.tuningState.Sparks)
	slog.Info("tuning changed",
		"max_substep_ms", prm.MaxSubstepMs,
		"shape", prm.Body.Shape.Kind.String(),
		"edge_mode", prm.EdgeMode.String(),
		"sparks", g.tuningState.Sparks,
	)
}

// syncTuningState copies the session's live values into the tuning panel.
func (g *Game) syncTuningState() {
	prm := g.session.Params()
	g.tuningState = ui.TuningState{
		MaxSubstepMs: float32(prm.MaxSubstepMs),
		Shape:        prm.Body.Shape.Kind,
		Gated:        prm.EdgeMode == physics.EdgeGated,
		Sparks:       g.session.Effects(),
	}
}

func (g *Game) reset() {
	g.session.Reset()
	g.tracker.Reset()
	g.contacts = 0
	slog.Info("session reset")
}

// Frame returns the number of physics frames stepped so far.
func (g *Game) Frame() int64 {
	return g.session.Frame()
}

// Unload flushes the last telemetry window.
func (g *Game) Unload() {
	g.session.Finish()
}
