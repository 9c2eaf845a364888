package entity

import (
	"fmt"

	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "player.yaml")
}

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	entity, err := BuildEntity(w, "player.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return entity, nil
}

// SpawnPlayer builds the player prefab at (x, y) with a collider of radius
// size. The sprite is scaled to match.
func SpawnPlayer(w *ecs.World, size, x, y float64) (ecs.Entity, error) {
	entity, err := NewPlayerAt(w, x, y)
	if err != nil {
		return 0, err
	}
	if size <= 0 {
		return entity, nil
	}

	body, ok := ecs.Get(w, entity, component.PhysicsBodyComponent.Kind())
	if !ok {
		return entity, nil
	}
	prev := body.Radius
	body.Radius = size
	if prev > 0 && prev != size {
		if t, ok := ecs.Get(w, entity, component.TransformComponent.Kind()); ok {
			t.ScaleX *= size / prev
			t.ScaleY *= size / prev
		}
	}
	return entity, nil
}
