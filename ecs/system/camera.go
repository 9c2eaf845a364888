package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isotiled/common"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
)

const minZoom = 0.01

// CameraMovementSystem pans the camera with WASD and zooms with Z (out) and
// X (in).
type CameraMovementSystem struct {
	keys KeyState
	dt   float64
}

func NewCameraMovementSystem(keys KeyState, dt float64) *CameraMovementSystem {
	if keys == nil {
		keys = EbitenKeys{}
	}
	return &CameraMovementSystem{keys: keys, dt: dt}
}

func (cs *CameraMovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dx, dy := 0.0, 0.0
	if cs.keys.Pressed(ebiten.KeyA) {
		dx -= 1
	}
	if cs.keys.Pressed(ebiten.KeyD) {
		dx += 1
	}
	if cs.keys.Pressed(ebiten.KeyW) {
		dy -= 1
	}
	if cs.keys.Pressed(ebiten.KeyS) {
		dy += 1
	}
	zoomOut := cs.keys.Pressed(ebiten.KeyZ)
	zoomIn := cs.keys.Pressed(ebiten.KeyX)

	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, cam *component.Camera, t *component.Transform) {
		if n := math.Hypot(dx, dy); n > 0 {
			// Pan speed is in screen pixels, so it stays constant while zoomed.
			step := cam.MoveSpeed * cs.dt / math.Max(cam.Zoom, 1e-6)
			t.X += dx / n * step
			t.Y += dy / n * step
		}

		switch {
		case zoomOut && !zoomIn:
			cam.Zoom *= 1 - cam.ZoomSpeed
		case zoomIn && !zoomOut:
			cam.Zoom *= 1 + cam.ZoomSpeed
		}
		lo, hi := cam.MinZoom, cam.MaxZoom
		if lo <= 0 {
			lo = minZoom
		}
		if hi <= 0 {
			hi = math.Inf(1)
		}
		cam.Zoom = common.Clamp(cam.Zoom, lo, hi)
	})
}
