// Package camera provides a 2D camera system for viewport control.
package camera

import "math"

// Camera controls the viewport onto the grid.
// Supports pan and zoom, with optional horizontal wrapping for worlds whose
// left and right edges meet.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World dimensions in pixels
	WorldW, WorldH float32

	// WrapX makes horizontal panning and projection wrap around.
	WrapX bool

	// FitZoom shows the whole world; zoom is constrained around it.
	FitZoom, MinZoom, MaxZoom float32
}

// New creates a camera centered on the world, zoomed so all of it fits.
func New(viewportW, viewportH, worldW, worldH float32, wrapX bool) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		WrapX:     wrapX,
	}
	c.updateZoomLimits()
	c.Reset()
	return c
}

// updateZoomLimits recomputes the fit zoom for the current viewport.
func (c *Camera) updateZoomLimits() {
	c.FitZoom = min(c.ViewportW/c.WorldW, c.ViewportH/c.WorldH)
	c.MinZoom = c.FitZoom * 0.5
	c.MaxZoom = c.FitZoom * 8
}

// WorldToScreen converts world coordinates to screen coordinates.
// With WrapX the shortest horizontal path to the camera is used.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	dx := c.deltaX(wx)
	dy := wy - c.Y

	// Apply zoom and center on viewport
	sx = c.ViewportW/2 + dx*c.Zoom
	sy = c.ViewportH/2 + dy*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	// Reverse the viewport centering and zoom
	dx := (sx - c.ViewportW/2) / c.Zoom
	dy := (sy - c.ViewportH/2) / c.Zoom

	wx = c.X + dx
	if c.WrapX {
		wx = mod(wx, c.WorldW)
	}
	return wx, c.Y + dy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	dx := c.deltaX(wx)
	dy := wy - c.Y

	// Half-extents of the visible area in world coords, plus margin for radius
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius

	return absf(dx) <= halfW && absf(dy) <= halfH
}

// GhostX returns a second screen x for a point near the wrap seam, so a
// cell is drawn on both sides while the seam is in view.
func (c *Camera) GhostX(wx, radius float32) (float32, bool) {
	if !c.WrapX {
		return 0, false
	}

	halfW := c.ViewportW / (2 * c.Zoom)
	dx := c.deltaX(wx)

	// The copy lies one world away, on the far side of the center
	ghost := dx + c.WorldW
	if dx > 0 {
		ghost = dx - c.WorldW
	}
	if absf(ghost) > halfW+radius {
		return 0, false
	}
	return c.ViewportW/2 + ghost*c.Zoom, true
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.updateZoomLimits()
	c.Zoom = clamp(c.Zoom, c.MinZoom, c.MaxZoom)
}

// Pan moves the camera by the given delta in screen pixels. The center
// stays on the world; x wraps when WrapX is set.
func (c *Camera) Pan(dx, dy float32) {
	// Convert screen delta to world delta (inverse of zoom)
	x := c.X + dx/c.Zoom
	if c.WrapX {
		c.X = mod(x, c.WorldW)
	} else {
		c.X = clamp(x, 0, c.WorldW)
	}
	c.Y = clamp(c.Y+dy/c.Zoom, 0, c.WorldH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the camera and fits the whole world.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = c.FitZoom
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
// Returns (minX, minY, maxX, maxY) in world coordinates.
// Note: with WrapX the x range may extend past the world edges.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// deltaX is the signed horizontal offset of wx from the camera center.
func (c *Camera) deltaX(wx float32) float32 {
	if c.WrapX {
		return toroidalDelta(wx, c.X, c.WorldW)
	}
	return wx - c.X
}

// toroidalDelta computes the shortest signed distance from 'from' to 'to'
// in a toroidal space of the given size.
func toroidalDelta(to, from, size float32) float32 {
	d := to - from
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
