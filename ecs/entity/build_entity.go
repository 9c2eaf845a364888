package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/isotiled/assets"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
	"github.com/milk9111/isotiled/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"camera_tag":   addCameraTag,
	"player":       addPlayer,
	"input":        addInput,
	"transform":    addTransform,
	"sprite":       addSprite,
	"render_layer": addRenderLayer,
	"y_sort":       addYSort,
	"camera":       addCamera,
	"physics_body": addPhysicsBody,
}

// Transform is built before the components that read it.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"player",
	"input",
	"transform",
	"sprite",
	"render_layer",
	"y_sort",
	"camera",
	"physics_body",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, prefabPath, spec)
}

func buildFromSpec(w *ecs.World, prefabPath string, spec entityPrefabSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	extra := make([]string, 0, len(remaining))
	for name := range remaining {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	names = append(names, extra...)

	for _, name := range names {
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetPosition(cp.Vector{X: x, Y: y})
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed: spec.MoveSpeed,
		JumpSpeed: spec.JumpSpeed,
		RestSpeed: spec.RestSpeed,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Z:        spec.Z,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	sprite := component.Sprite{Alpha: 1}
	switch {
	case spec.Image != "":
		img, err := assets.LoadImage(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
	case spec.Shape != "":
		fill := spec.Color.Or(color.White)
		sprite.Image = assets.TileArt(assets.Shape(spec.Shape), spec.Width, spec.Height, fill)
	}

	sprite.OriginX = spec.OriginX
	sprite.OriginY = spec.OriginY
	if sprite.OriginX == 0 && sprite.OriginY == 0 && spec.CenterOriginIfZero && sprite.Image != nil {
		w, h := sprite.Image.Bounds().Dx(), sprite.Image.Bounds().Dy()
		sprite.OriginX = float64(w) / 2
		sprite.OriginY = float64(h) / 2
	}

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type ySortSpec = prefabs.YSortComponentSpec

func addYSort(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[ySortSpec](raw)
	if err != nil {
		return fmt.Errorf("decode y sort spec: %w", err)
	}
	return ecs.Add(w, e, component.YSortComponent.Kind(), &component.YSort{Offset: spec.Offset})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Zoom == 0 {
		spec.Zoom = 1
	}
	if spec.MinZoom <= 0 {
		spec.MinZoom = 0.1
	}
	if spec.MaxZoom < spec.MinZoom {
		spec.MaxZoom = spec.MinZoom
	}
	if spec.ZoomSpeed == 0 {
		spec.ZoomSpeed = 0.02
	}
	if spec.MoveSpeed == 0 {
		spec.MoveSpeed = 500
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Zoom:      spec.Zoom,
		MinZoom:   spec.MinZoom,
		MaxZoom:   spec.MaxZoom,
		ZoomSpeed: spec.ZoomSpeed,
		MoveSpeed: spec.MoveSpeed,
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Radius <= 0 && (spec.Width <= 0 || spec.Height <= 0) {
		return fmt.Errorf("physics body needs a radius or a width and height")
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:        spec.Width,
		Height:       spec.Height,
		Radius:       spec.Radius,
		Mass:         spec.Mass,
		Friction:     spec.Friction,
		Elasticity:   spec.Elasticity,
		Static:       spec.Static,
		LockRotation: spec.LockRotation,
	})
}
