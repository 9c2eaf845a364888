package entity

import (
	"fmt"

	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
)

// NewCamera builds the camera prefab for a viewport of the given size.
func NewCamera(w *ecs.World, viewportW, viewportH float64) (ecs.Entity, error) {
	camera, err := BuildEntity(w, "camera.yaml")
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	cam, ok := ecs.Get(w, camera, component.CameraComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, camera)
		return 0, fmt.Errorf("camera: prefab has no camera component")
	}
	cam.ViewportW = viewportW
	cam.ViewportH = viewportH
	return camera, nil
}

func NewCameraAt(w *ecs.World, viewportW, viewportH, x, y float64) (ecs.Entity, error) {
	camera, err := NewCamera(w, viewportW, viewportH)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, camera, x, y, 0); err != nil {
		return 0, fmt.Errorf("camera: override transform: %w", err)
	}
	return camera, nil
}
