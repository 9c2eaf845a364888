package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
	"github.com/milk9111/isotiled/tilemap"
)

type fakeKeys struct {
	pressed map[ebiten.Key]bool
	just    map[ebiten.Key]bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{pressed: map[ebiten.Key]bool{}, just: map[ebiten.Key]bool{}}
}

func (k *fakeKeys) Pressed(key ebiten.Key) bool     { return k.pressed[key] }
func (k *fakeKeys) JustPressed(key ebiten.Key) bool { return k.just[key] }

func (k *fakeKeys) tap(keys ...ebiten.Key) {
	for _, key := range keys {
		k.pressed[key] = true
		k.just[key] = true
	}
}

func (k *fakeKeys) release() {
	k.pressed = map[ebiten.Key]bool{}
	k.just = map[ebiten.Key]bool{}
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

// newResources adds the singleton resources the label systems read.
func newResources(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	res := ecs.CreateEntity(w)
	mustAdd(t, w, res, component.CursorPosComponent.Kind(), &component.CursorPos{X: -1000, Y: -1000})
	mustAdd(t, w, res, component.SpawnedLabelsComponent.Kind(), &component.SpawnedLabels{})
	mustAdd(t, w, res, component.FontHandleComponent.Kind(), &component.FontHandle{Size: 8})
	mustAdd(t, w, res, component.HoveredTileComponent.Kind(), &component.HoveredTile{})
	mustAdd(t, w, res, component.GravityComponent.Kind(), &component.Gravity{Y: 1000})
	return res
}

// newGrid spawns a tilemap entity with one tile entity per cell.
func newGrid(t *testing.T, w *ecs.World, name string, size tilemap.Size, grid tilemap.GridSize, typ tilemap.Type, at component.Transform) (ecs.Entity, map[tilemap.TilePos]ecs.Entity) {
	t.Helper()
	mapEntity := ecs.CreateEntity(w)
	storage := tilemap.NewStorage(size)
	tiles := make(map[tilemap.TilePos]ecs.Entity)
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			pos := tilemap.TilePos{X: x, Y: y}
			e := ecs.CreateEntity(w)
			mustAdd(t, w, e, component.TileComponent.Kind(), &component.Tile{Pos: pos, Tilemap: uint64(mapEntity), GID: 1})
			if err := storage.Set(pos, uint64(e)); err != nil {
				t.Fatal(err)
			}
			tiles[pos] = e
		}
	}
	mustAdd(t, w, mapEntity, component.TransformComponent.Kind(), &at)
	mustAdd(t, w, mapEntity, component.TilemapComponent.Kind(), &component.Tilemap{
		Name:     name,
		Size:     size,
		GridSize: grid,
		Type:     typ,
		Storage:  storage,
	})
	return mapEntity, tiles
}

func eventsOfType(w *ecs.World, typ string) []ecs.Event {
	var out []ecs.Event
	for _, evt := range w.Events().Peek() {
		if evt.Type == typ {
			out = append(out, evt)
		}
	}
	return out
}
