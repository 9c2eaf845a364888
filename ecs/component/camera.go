package component

// Camera views the world centered on its transform.
type Camera struct {
	Zoom      float64
	MinZoom   float64
	MaxZoom   float64
	ZoomSpeed float64
	MoveSpeed float64
	// Viewport is the logical screen size the camera renders into.
	ViewportW float64
	ViewportH float64
}

var CameraComponent = NewComponent[Camera]()

// ViewportToWorld converts a viewport pixel into world space given the
// camera's position. ok is false for a degenerate zoom.
func (c Camera) ViewportToWorld(camX, camY, sx, sy float64) (wx, wy float64, ok bool) {
	zoom := c.Zoom
	if zoom <= 0 {
		return 0, 0, false
	}
	wx = (sx-c.ViewportW/2)/zoom + camX
	wy = (sy-c.ViewportH/2)/zoom + camY
	return wx, wy, true
}

// WorldToViewport is the inverse of ViewportToWorld.
func (c Camera) WorldToViewport(camX, camY, wx, wy float64) (sx, sy float64) {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return (wx-camX)*zoom + c.ViewportW/2, (wy-camY)*zoom + c.ViewportH/2
}
