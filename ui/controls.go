package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel lists the overlays with their keys and state. It is anchored
// by its bottom-left corner so it sits above the controls line and grows
// upward as overlays are added.
type ControlsPanel struct {
	renderer *Renderer
	x        int32
	bottom   int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a hidden panel whose bottom edge is at bottom.
func NewControlsPanel(x, bottom, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		bottom:   bottom,
		width:    width,
	}
}

// SetAnchor moves the panel's bottom-left corner, e.g. after a resize.
func (c *ControlsPanel) SetAnchor(x, bottom int32) {
	c.x = x
	c.bottom = bottom
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders one row per overlay, grouped by category, with the overlay's
// description underneath in a dimmer colour.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) {
	if !c.visible {
		return
	}

	r := c.renderer
	padding := r.Theme.Padding
	line := r.Theme.LineHeight

	categories := overlays.Categories()
	rows := int32(1) // title
	for _, cat := range categories {
		rows += 1 + 2*int32(len(overlays.ByCategory(cat)))
	}
	height := rows*line + padding*2
	top := c.bottom - height

	r.DrawPanel(c.x, top, c.width, height)

	x := c.x + padding
	y := top + padding
	rl.DrawText("Overlays  [Tab]", x, y, r.Theme.HeaderFontSize, rl.White)
	y += line

	for _, cat := range categories {
		rl.DrawText(categoryLabel(cat), x, y, r.Theme.FontSize, r.Theme.SectionHeader)
		y += line
		for _, desc := range overlays.ByCategory(cat) {
			c.drawRow(x, y, desc, overlays.IsEnabled(desc.ID))
			y += 2 * line
		}
	}
}

// drawRow draws an overlay's state marker, name, key and description.
func (c *ControlsPanel) drawRow(x, y int32, desc OverlayDescriptor, on bool) {
	t := c.renderer.Theme
	inner := c.width - 2*t.Padding

	marker := rl.Color{R: 80, G: 80, B: 80, A: 255}
	name := t.LabelColor
	if on {
		marker = rl.Color{R: 100, G: 200, B: 100, A: 255}
		name = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, marker)
	rl.DrawText(desc.Name, x+14, y, t.FontSize, name)

	if desc.KeyLabel != "" {
		key := fmt.Sprintf("[%s]", desc.KeyLabel)
		rl.DrawText(key, x+inner-rl.MeasureText(key, t.FontSize), y, t.FontSize, rl.Gray)
	}
	rl.DrawText(desc.Description, x+14, y+t.LineHeight, t.FontSize-2, rl.DarkGray)
}

func categoryLabel(cat string) string {
	switch cat {
	case "debug":
		return "Debug"
	case "info":
		return "Info"
	}
	return cat
}
