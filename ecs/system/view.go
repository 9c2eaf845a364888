package system

import (
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
)

// cameraView projects world space onto the screen through the first camera.
// The camera transform is the world point shown at the viewport center.
type cameraView struct {
	x, y float64
	cam  component.Camera
}

func currentView(w *ecs.World) cameraView {
	v := cameraView{cam: component.Camera{Zoom: 1}}
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return v
	}
	if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok {
		v.cam = *cam
		if v.cam.Zoom <= 0 {
			v.cam.Zoom = 1
		}
	}
	if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		v.x, v.y = t.X, t.Y
	}
	return v
}

func (v cameraView) zoom() float64 {
	return v.cam.Zoom
}

func (v cameraView) toScreen(x, y float64) (float64, float64) {
	return v.cam.WorldToViewport(v.x, v.y, x, y)
}
