// Package camera maps world meters onto a screen viewport.
package camera

// Camera controls the viewport into a bounded world.
// World Y grows upwards; screen Y grows downwards.
type Camera struct {
	// Position is the camera center in world coordinates (meters)
	X, Y float64

	// Zoom level (1.0 = whole world fits the viewport)
	Zoom float64

	// Viewport origin and size on screen (pixels)
	ViewportX, ViewportY float32
	ViewportW, ViewportH float32

	// World dimensions (meters)
	WorldW, WorldH float64

	// Zoom constraints
	MinZoom, MaxZoom float64

	// fit is the pixels-per-meter scale at zoom 1
	fit float64
}

// New creates a camera that fits a worldW x worldH world into the viewport.
func New(viewportX, viewportY, viewportW, viewportH float32, worldW, worldH float64) *Camera {
	c := &Camera{
		ViewportX: viewportX,
		ViewportY: viewportY,
		WorldW:    worldW,
		WorldH:    worldH,
		MinZoom:   1.0,
		MaxZoom:   8.0,
	}
	c.Resize(viewportW, viewportH)
	c.Reset()
	return c
}

// Scale returns the current pixels per meter.
func (c *Camera) Scale() float64 {
	return c.fit * c.Zoom
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float32) {
	s := c.Scale()
	sx = c.ViewportX + c.ViewportW/2 + float32((wx-c.X)*s)
	sy = c.ViewportY + c.ViewportH/2 - float32((wy-c.Y)*s)
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float64) {
	s := c.Scale()
	wx = c.X + float64(sx-c.ViewportX-c.ViewportW/2)/s
	wy = c.Y - float64(sy-c.ViewportY-c.ViewportH/2)/s
	return wx, wy
}

// Contains reports whether a screen point lies inside the viewport.
func (c *Camera) Contains(sx, sy float32) bool {
	return sx >= c.ViewportX && sx <= c.ViewportX+c.ViewportW &&
		sy >= c.ViewportY && sy <= c.ViewportY+c.ViewportH
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	halfW := float64(c.ViewportW)/(2*c.Scale()) + radius
	halfH := float64(c.ViewportH)/(2*c.Scale()) + radius
	return abs(wx-c.X) <= halfW && abs(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions and recalculates the fit scale.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fit = 1
	if c.WorldW > 0 && c.WorldH > 0 {
		c.fit = min(float64(viewportW)/c.WorldW, float64(viewportH)/c.WorldH)
	}
	c.clampCenter()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale()
	c.X += float64(dx) / s
	c.Y -= float64(dy) / s
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the world center at zoom 1.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	halfW := float64(c.ViewportW) / (2 * c.Scale())
	halfH := float64(c.ViewportH) / (2 * c.Scale())
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// clampCenter keeps the view over the world; a view wider than the world stays centered.
func (c *Camera) clampCenter() {
	if c.Zoom == 0 {
		return
	}
	halfW := float64(c.ViewportW) / (2 * c.Scale())
	halfH := float64(c.ViewportH) / (2 * c.Scale())
	c.X = clampAxis(c.X, halfW, c.WorldW)
	c.Y = clampAxis(c.Y, halfH, c.WorldH)
}

func clampAxis(center, half, size float64) float64 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(center, half, size-half)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
