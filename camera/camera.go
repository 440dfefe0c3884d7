// Package camera maps arena coordinates onto the window.
package camera

// Camera controls the viewport into the arena. At the fit zoom the whole
// arena is letterboxed into the window with its aspect ratio kept; larger
// zooms magnify around X, Y.
type Camera struct {
	// Position is the camera center in arena coordinates
	X, Y float32

	// Zoom in screen pixels per arena unit
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Arena dimensions
	WorldW, WorldH float32

	// FitZoom shows the whole arena; it is also the minimum zoom
	FitZoom, MaxZoom float32
}

// New creates a camera showing the whole arena.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MaxZoom:   8.0,
	}
	c.FitZoom = c.fitZoom()
	c.Reset()
	return c
}

// fitZoom is the largest zoom at which the arena fits in both dimensions.
func (c *Camera) fitZoom() float32 {
	zx := c.ViewportW / c.WorldW
	zy := c.ViewportH / c.WorldH
	if zy < zx {
		return zy
	}
	return zx
}

// WorldToScreen converts arena coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to arena coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// Scale converts an arena length to screen pixels.
func (c *Camera) Scale(l float32) float32 {
	return l * c.Zoom
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions. A camera at the fit zoom stays fitted.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	fitted := c.Zoom == c.FitZoom
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.FitZoom = c.fitZoom()
	if fitted || c.Zoom < c.FitZoom {
		c.Zoom = c.FitZoom
	}
	c.clampCenter()
}

// Pan moves the camera by the given delta in screen pixels.
// The center stays inside the arena.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to [FitZoom, MaxZoom].
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.FitZoom, c.MaxZoom)
	if c.Zoom == c.FitZoom {
		c.X, c.Y = c.WorldW/2, c.WorldH/2
	}
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor keeping the arena point under (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.SetZoom(c.Zoom * factor)
	if c.Zoom == c.FitZoom {
		return
	}
	c.X = wx - (sx-c.ViewportW/2)/c.Zoom
	c.Y = wy - (sy-c.ViewportH/2)/c.Zoom
	c.clampCenter()
}

// Reset returns the camera to the fitted, centered view.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = c.FitZoom
}

// VisibleWorldBounds returns the arena-coordinate bounds of the visible area.
// At the fit zoom these extend past the arena along the letterboxed axis.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

func (c *Camera) clampCenter() {
	c.X = clamp(c.X, 0, c.WorldW)
	c.Y = clamp(c.Y, 0, c.WorldH)
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
