package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/physics"
	"github.com/pthm-cable/pong/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	FPS       int32
	FrameMs   float64
	Substeps  int
	SubstepMs float64
	Frame     int64
	Speed     float64
	Active    physics.Side
	Push      physics.Push
	Contacts  int // since the session started
	Sparks    int
	Shape     physics.ShapeKind
	EdgeMode  physics.EdgeMode
	Paused    bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("FPS: %d | Frame: %.2f ms | Substeps: %d x %.2f ms", data.FPS, data.FrameMs, data.Substeps, data.SubstepMs),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Active: %s | Push: %s | Speed: %.3f | Contacts: %d | Sparks: %d",
			data.Active, data.Push, data.Speed, data.Contacts, data.Sparks),
		10, 55, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Shape: %s | Edges: %s | Frame #%d", data.Shape, data.EdgeMode, data.Frame),
		10, 75, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 95, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase frame cost panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	padding := r.Theme.Padding
	phases := telemetry.Phases()

	height := int32(len(phases)+2)*(r.Theme.LineHeight+2) + padding*2 + r.Theme.LineHeight
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := p.y + padding
	inner := p.width - padding*2

	y = r.DrawSectionHeader(x, y, "Frame Cost")
	y = r.DrawLabelValue(x, y, "Average", stats.AvgFrame.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Max", stats.MaxFrame.Round(time.Microsecond).String())

	for _, phase := range phases {
		pct := stats.PhasePct[phase]
		text := fmt.Sprintf("%5.1f%%", pct)
		y = r.DrawBar(x, y, phase, float32(pct/100), 0.5, text, inner)
	}
}
