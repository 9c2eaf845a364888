package system

import (
	"testing"

	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
)

func TestDrawOrder(t *testing.T) {
	w := ecs.NewWorld()
	spawn := func(layer int, y float64, ySort bool) ecs.Entity {
		e := ecs.CreateEntity(w)
		mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{Y: y})
		mustAdd(t, w, e, component.SpriteComponent.Kind(), &component.Sprite{Alpha: 1})
		mustAdd(t, w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer})
		if ySort {
			mustAdd(t, w, e, component.YSortComponent.Kind(), &component.YSort{})
		}
		return e
	}

	player := spawn(1, 50, true)
	front := spawn(1, 80, true)
	back := spawn(1, 10, true)
	ground := spawn(0, 500, false)
	overlayA := spawn(2, 90, false)
	overlayB := spawn(2, 10, false)

	want := []ecs.Entity{ground, back, player, front, overlayA, overlayB}
	got := drawOrder(w)
	if len(got) != len(want) {
		t.Fatalf("got %d entities, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("draw order[%d] = %v, want %v (full %v)", i, got[i], want[i], got)
		}
	}
}

func TestLabelOrder(t *testing.T) {
	w := ecs.NewWorld()
	spawn := func(z float64) ecs.Entity {
		e := ecs.CreateEntity(w)
		mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{Z: z})
		mustAdd(t, w, e, component.TextComponent.Kind(), &component.Text{Value: "label"})
		return e
	}
	high := spawn(3)
	low := spawn(1)
	mid := spawn(2)

	got := labelOrder(w)
	want := []ecs.Entity{low, mid, high}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("label order = %v, want %v", got, want)
		}
	}
}

func TestCurrentView(t *testing.T) {
	w := ecs.NewWorld()
	if v := currentView(w); v.zoom() != 1 {
		t.Fatalf("default zoom = %v", v.zoom())
	}

	newTestCamera(t, w, 100, 100, 2)
	v := currentView(w)
	x, y := v.toScreen(100, 100)
	if x != 100 || y != 50 {
		t.Fatalf("camera center maps to (%v,%v), want viewport center", x, y)
	}
	x, y = v.toScreen(110, 90)
	if x != 120 || y != 30 {
		t.Fatalf("offset point maps to (%v,%v), want (120,30)", x, y)
	}
}
