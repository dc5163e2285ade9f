package camera

import (
	"github.com/lixenwraith/skirmish/vmath"
)

const (
	MinZoom = 0.2
	MaxZoom = 5.0

	zoomOutFactor = 0.9
	zoomInFactor  = 1.1
)

// Camera is the pannable/zoomable view frame
// Offset is the world position at the screen origin
type Camera struct {
	OffsetX float64
	OffsetY float64
	zoom    float64
}

// New creates a camera at the world origin with zoom 1
func New() *Camera {
	return &Camera{zoom: 1}
}

// Zoom returns the current zoom factor
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetZoom stores z clamped to [MinZoom, MaxZoom]
func (c *Camera) SetZoom(z float64) {
	c.zoom = vmath.Clamp(z, MinZoom, MaxZoom)
}

// ZoomBy applies one wheel step; positive deltaY zooms out
// Multiplicative, so repeated steps compound
func (c *Camera) ZoomBy(deltaY float64) {
	factor := zoomInFactor
	if deltaY > 0 {
		factor = zoomOutFactor
	}
	c.SetZoom(c.zoom * factor)
}

// Pan shifts the camera opposite to a screen-space drag delta
func (c *Camera) Pan(dxScreen, dyScreen float64) {
	c.OffsetX -= dxScreen / c.zoom
	c.OffsetY -= dyScreen / c.zoom
}

// CenterOn moves the camera so world point p sits at the middle of a viewport
func (c *Camera) CenterOn(p vmath.Vec2, viewW, viewH float64) {
	c.OffsetX = p.X - viewW/2/c.zoom
	c.OffsetY = p.Y - viewH/2/c.zoom
}

// Position returns the offset as a vector
func (c *Camera) Position() vmath.Vec2 {
	return vmath.V2(c.OffsetX, c.OffsetY)
}

// ScreenToWorld maps a screen pixel to world units
func (c *Camera) ScreenToWorld(sx, sy float64) vmath.Vec2 {
	return vmath.V2(sx/c.zoom+c.OffsetX, sy/c.zoom+c.OffsetY)
}

// WorldToScreen is the exact inverse of ScreenToWorld
func (c *Camera) WorldToScreen(wx, wy float64) vmath.Vec2 {
	return vmath.V2((wx-c.OffsetX)*c.zoom, (wy-c.OffsetY)*c.zoom)
}

// Transform returns the affine used for world-space drawing:
// translate (-offset*zoom) then scale zoom
func (c *Camera) Transform() Transform {
	return Transform{
		TX:    -c.OffsetX * c.zoom,
		TY:    -c.OffsetY * c.zoom,
		Scale: c.zoom,
	}
}
