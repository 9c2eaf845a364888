package entity

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/isotiled/assets"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
	"github.com/milk9111/isotiled/tiled"
	"github.com/milk9111/isotiled/tilemap"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestSpawnPlayer(t *testing.T) {
	w := ecs.NewWorld()
	e, err := SpawnPlayer(w, 10, 10, 10)
	if err != nil {
		t.Fatalf("SpawnPlayer: %v", err)
	}

	if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) || !ecs.Has(w, e, component.InputComponent.Kind()) {
		t.Fatal("player prefab should carry PlayerTag and Input")
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || tr.X != 10 || tr.Y != 10 {
		t.Fatalf("transform = %+v", tr)
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Radius != 10 || body.Static || !body.LockRotation {
		t.Fatalf("physics body = %+v", body)
	}
	sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok || sprite.Image == nil || sprite.OriginX != 10 || sprite.OriginY != 10 {
		t.Fatalf("sprite = %+v", sprite)
	}
}

func TestSpawnPlayerScalesSprite(t *testing.T) {
	w := ecs.NewWorld()
	e, err := SpawnPlayer(w, 20, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if !approx(tr.ScaleX, 2) || !approx(tr.ScaleY, 2) {
		t.Fatalf("scale = %v,%v", tr.ScaleX, tr.ScaleY)
	}
}

func TestBuildEntityRejectsUnknownComponent(t *testing.T) {
	w := ecs.NewWorld()
	_, err := buildFromSpec(w, "test.yaml", entityPrefabSpec{
		Name: "broken",
		Components: map[string]any{
			"transform": map[string]any{"x": 1},
			"wings":     map[string]any{},
		},
	})
	if err == nil {
		t.Fatal("expected error for unknown component")
	}
	if w.Len() != 0 {
		t.Fatalf("half-built entity should be destroyed, %d alive", w.Len())
	}
}

func TestBuildEntityRequiresComponents(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := buildFromSpec(w, "empty.yaml", entityPrefabSpec{Name: "empty"}); err == nil {
		t.Fatal("expected error for prefab without components")
	}
}

func TestNewCamera(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewCamera(w, 1280, 720)
	if err != nil {
		t.Fatal(err)
	}
	cam, ok := ecs.Get(w, e, component.CameraComponent.Kind())
	if !ok || cam.ViewportW != 1280 || cam.ViewportH != 720 || cam.Zoom != 1 {
		t.Fatalf("camera = %+v", cam)
	}
	if cam.MinZoom > cam.Zoom || cam.MaxZoom < cam.Zoom {
		t.Fatalf("zoom limits do not contain the zoom: %+v", cam)
	}
	if first, ok := w.First(component.CameraTagComponent.Kind()); !ok || first != e {
		t.Fatal("camera tag missing")
	}
}

func TestNewResources(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewResources(w, ResourceConfig{CursorX: -1000, CursorY: -1000, FontSize: 8, GravityY: 1000, MapPath: "a.tmx"})
	if err != nil {
		t.Fatal(err)
	}
	cursor, _ := ecs.Get(w, e, component.CursorPosComponent.Kind())
	if cursor.X != -1000 || cursor.Y != -1000 {
		t.Fatalf("cursor = %+v", cursor)
	}
	spawned, _ := ecs.Get(w, e, component.SpawnedLabelsComponent.Kind())
	if spawned.Set {
		t.Fatal("labels should start unspawned")
	}
	gravity, _ := ecs.Get(w, e, component.GravityComponent.Kind())
	if gravity.Y != 1000 {
		t.Fatalf("gravity = %+v", gravity)
	}
}

func loadMap(t *testing.T, name string) *tiled.Map {
	t.Helper()
	prev := assets.Dir
	assets.Dir = t.TempDir()
	t.Cleanup(func() { assets.Dir = prev })

	m, err := tiled.Load(assets.FS(), name)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return m
}

func findObject(w *ecs.World, name string) (ecs.Entity, *component.MapObject, bool) {
	for _, e := range w.Query(component.MapObjectComponent.Kind()) {
		obj, _ := ecs.Get(w, e, component.MapObjectComponent.Kind())
		if obj.Name == name {
			return e, obj, true
		}
	}
	return 0, nil, false
}

func TestSpawnTiledMapDiamond(t *testing.T) {
	m := loadMap(t, "testmap/untitled.tmx")
	w := ecs.NewWorld()

	got, err := SpawnTiledMap(w, m, MapSettings{Positioning: tilemap.LayerOffset, YSort: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Tilemaps) != 1 || got.Tiles != 100 || got.Objects != 4 || got.Colliders != 2 {
		t.Fatalf("spawned = %+v", got)
	}

	tm, ok := ecs.Get(w, got.Tilemaps[0], component.TilemapComponent.Kind())
	if !ok {
		t.Fatal("tilemap component missing")
	}
	if tm.Type != tilemap.IsometricDiamond || tm.Size != (tilemap.Size{X: 10, Y: 10}) || tm.Storage.Len() != 100 {
		t.Fatalf("tilemap = %+v", tm)
	}

	raw, ok := tm.Storage.Get(tilemap.TilePos{X: 4, Y: 4})
	if !ok {
		t.Fatal("tile (4,4) missing from storage")
	}
	tileEntity := ecs.Entity(raw)
	tile, _ := ecs.Get(w, tileEntity, component.TileComponent.Kind())
	if tile.Pos != (tilemap.TilePos{X: 4, Y: 4}) || tile.GID != 4 || ecs.Entity(tile.Tilemap) != got.Tilemaps[0] {
		t.Fatalf("tile = %+v", tile)
	}
	tr, _ := ecs.Get(w, tileEntity, component.TransformComponent.Kind())
	if !approx(tr.X, 0) || !approx(tr.Y, 128) {
		t.Fatalf("tile (4,4) at %v,%v, want 0,128", tr.X, tr.Y)
	}
	sprite, _ := ecs.Get(w, tileEntity, component.SpriteComponent.Kind())
	if sprite.Image == nil || sprite.OriginX != 32 || sprite.OriginY != 16 {
		t.Fatalf("sprite = %+v", sprite)
	}
	if !ecs.Has(w, tileEntity, component.YSortComponent.Kind()) {
		t.Fatal("tiles should be y-sorted")
	}

	_, spawn, ok := findObject(w, "spawn")
	if !ok || len(spawn.Points) != 1 || !approx(spawn.Points[0][0], 0) || !approx(spawn.Points[0][1], 0) {
		t.Fatalf("spawn marker = %+v", spawn)
	}

	floor, _, ok := findObject(w, "floor_east")
	if !ok {
		t.Fatal("floor_east missing")
	}
	body, ok := ecs.Get(w, floor, component.PhysicsBodyComponent.Kind())
	if !ok || !body.Static || body.Chain || len(body.Polygon) != 4 {
		t.Fatalf("floor_east body = %+v", body)
	}
	if signedArea(body.Polygon) <= 0 {
		t.Fatal("collider polygon should wind counter-clockwise")
	}

	pond, _, _ := findObject(w, "pond")
	if ecs.Has(w, pond, component.PhysicsBodyComponent.Kind()) {
		t.Fatal("markers are not colliders")
	}
}

func TestSpawnTiledMapTiledOffset(t *testing.T) {
	m := loadMap(t, "testmap/untitled.tmx")
	w := ecs.NewWorld()

	got, err := SpawnTiledMap(w, m, MapSettings{Positioning: tilemap.TiledOffset})
	if err != nil {
		t.Fatal(err)
	}
	tm, _ := ecs.Get(w, got.Tilemaps[0], component.TilemapComponent.Kind())
	raw, _ := tm.Storage.Get(tilemap.TilePos{})
	tr, _ := ecs.Get(w, ecs.Entity(raw), component.TransformComponent.Kind())
	if !approx(tr.X, 320) || !approx(tr.Y, 16) {
		t.Fatalf("tile (0,0) at %v,%v, want 320,16", tr.X, tr.Y)
	}
	if ecs.Has(w, ecs.Entity(raw), component.YSortComponent.Kind()) {
		t.Fatal("y sort disabled")
	}

	_, spawn, _ := findObject(w, "spawn")
	if !approx(spawn.Points[0][0], 320) || !approx(spawn.Points[0][1], 16) {
		t.Fatalf("spawn marker = %v", spawn.Points)
	}
}

func TestSpawnTiledMapStaggered(t *testing.T) {
	m := loadMap(t, "testmap/staggered.tmx")
	w := ecs.NewWorld()

	got, err := SpawnTiledMap(w, m, MapSettings{})
	if err != nil {
		t.Fatal(err)
	}
	if got.Tiles != 96 || got.Colliders != 1 {
		t.Fatalf("spawned = %+v", got)
	}
	tm, _ := ecs.Get(w, got.Tilemaps[0], component.TilemapComponent.Kind())
	if tm.Type != tilemap.IsometricStaggeredOdd {
		t.Fatalf("type = %v", tm.Type)
	}
	raw, _ := tm.Storage.Get(tilemap.TilePos{X: 2, Y: 1})
	tr, _ := ecs.Get(w, ecs.Entity(raw), component.TransformComponent.Kind())
	if !approx(tr.X, 160) || !approx(tr.Y, 16) {
		t.Fatalf("tile (2,1) at %v,%v, want 160,16", tr.X, tr.Y)
	}
}

func TestPolygonHelpers(t *testing.T) {
	square := []cp.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	if !isConvex(square) || signedArea(square) != 1 {
		t.Fatal("unit square")
	}
	reversed := counterClockwise([]cp.Vector{square[3], square[2], square[1], square[0]})
	if signedArea(reversed) != 1 {
		t.Fatal("reversed square should be flipped back")
	}
	arrow := []cp.Vector{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	if isConvex(arrow) {
		t.Fatal("arrow is concave")
	}
	if isConvex(square[:2]) {
		t.Fatal("two points are not a polygon")
	}
}
