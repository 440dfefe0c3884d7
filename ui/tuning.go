package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/physics"
)

// TuningState is the set of values the tuning panel edits.
type TuningState struct {
	MaxSubstepMs float32
	Shape        physics.ShapeKind
	Gated        bool
	Sparks       bool
}

// TuningAction reports what the user did in the tuning panel this frame.
type TuningAction struct {
	Changed bool // some value in TuningState changed
	Reset   bool // reset button pressed
}

// TuningPanel renders raygui controls for live physics tuning.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewTuningPanel creates a hidden tuning panel.
func NewTuningPanel(x, y, width int32) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (t *TuningPanel) SetPosition(x, y int32) {
	t.x = x
	t.y = y
}

// IsVisible returns whether the panel is shown.
func (t *TuningPanel) IsVisible() bool {
	return t.visible
}

// Toggle switches panel visibility.
func (t *TuningPanel) Toggle() bool {
	t.visible = !t.visible
	return t.visible
}

// Draw renders the panel and applies edits to st.
func (t *TuningPanel) Draw(st *TuningState) TuningAction {
	var act TuningAction
	if !t.visible {
		return act
	}

	r := t.renderer
	padding := r.Theme.Padding
	r.DrawPanel(t.x, t.y, t.width, 200)

	x := float32(t.x + padding)
	y := float32(t.y + padding)
	w := float32(t.width - padding*2)

	rl.DrawText("Tuning", int32(x), int32(y), 16, rl.White)
	y += 24

	rl.DrawText(fmt.Sprintf("Max substep: %.2f ms", st.MaxSubstepMs), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 16
	substep := gui.SliderBar(rl.Rectangle{X: x + 30, Y: y, Width: w - 60, Height: 16}, "0.1", "20", st.MaxSubstepMs, 0.1, 20)
	if substep != st.MaxSubstepMs {
		st.MaxSubstepMs = substep
		act.Changed = true
	}
	y += 26

	gated := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 14, Height: 14}, "Gated edges", st.Gated)
	if gated != st.Gated {
		st.Gated = gated
		act.Changed = true
	}
	y += 22

	sparks := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 14, Height: 14}, "Sparks", st.Sparks)
	if sparks != st.Sparks {
		st.Sparks = sparks
		act.Changed = true
	}
	y += 26

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 24}, "Shape: "+st.Shape.String()) {
		st.Shape = st.Shape.Next()
		act.Changed = true
	}
	y += 32

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 24}, "Reset ball") {
		act.Reset = true
	}

	return act
}
