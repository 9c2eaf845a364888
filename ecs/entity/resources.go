package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
)

// ResourceConfig seeds the singleton resources.
type ResourceConfig struct {
	CursorX  float64
	CursorY  float64
	Font     text.Face
	FontSize float64
	GravityX float64
	GravityY float64
	MapPath  string
	MapTitle string
	MapIndex int
}

// NewResources creates the entity that holds every world resource.
func NewResources(w *ecs.World, cfg ResourceConfig) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	add := func(name string, err error) error {
		if err != nil {
			ecs.DestroyEntity(w, e)
			return fmt.Errorf("resources: add %s: %w", name, err)
		}
		return nil
	}

	if err := add("cursor position", ecs.Add(w, e, component.CursorPosComponent.Kind(), &component.CursorPos{
		X: cfg.CursorX,
		Y: cfg.CursorY,
	})); err != nil {
		return 0, err
	}
	if err := add("spawned labels", ecs.Add(w, e, component.SpawnedLabelsComponent.Kind(), &component.SpawnedLabels{})); err != nil {
		return 0, err
	}
	if err := add("font", ecs.Add(w, e, component.FontHandleComponent.Kind(), &component.FontHandle{
		Face: cfg.Font,
		Size: cfg.FontSize,
	})); err != nil {
		return 0, err
	}
	if err := add("gravity", ecs.Add(w, e, component.GravityComponent.Kind(), &component.Gravity{
		X: cfg.GravityX,
		Y: cfg.GravityY,
	})); err != nil {
		return 0, err
	}
	if err := add("active map", ecs.Add(w, e, component.ActiveMapComponent.Kind(), &component.ActiveMap{
		Path:  cfg.MapPath,
		Title: cfg.MapTitle,
		Index: cfg.MapIndex,
	})); err != nil {
		return 0, err
	}
	if err := add("hovered tile", ecs.Add(w, e, component.HoveredTileComponent.Kind(), &component.HoveredTile{})); err != nil {
		return 0, err
	}

	return e, nil
}
