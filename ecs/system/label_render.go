package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
)

// LabelRenderSystem draws world-space Text entities on top of the map.
type LabelRenderSystem struct{}

func NewLabelRenderSystem() *LabelRenderSystem {
	return &LabelRenderSystem{}
}

func (l *LabelRenderSystem) Update(*ecs.World) {}

func (l *LabelRenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if l == nil || w == nil || screen == nil {
		return
	}
	view := currentView(w)
	zoom := view.zoom()

	for _, e := range labelOrder(w) {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		txt, _ := ecs.Get(w, e, component.TextComponent.Kind())
		if txt.Face == nil || txt.Value == "" {
			continue
		}

		op := &text.DrawOptions{}
		op.GeoM.Scale(zoom, zoom)
		x, y := view.toScreen(t.X, t.Y)
		op.GeoM.Translate(x, y)
		op.PrimaryAlign = txt.Align
		op.SecondaryAlign = text.AlignCenter
		if txt.Color != nil {
			op.ColorScale.ScaleWithColor(txt.Color)
		}
		text.Draw(screen, txt.Value, txt.Face, op)
	}
}

// labelOrder sorts text entities by Z, then entity id.
func labelOrder(w *ecs.World) []ecs.Entity {
	entities := w.Query(component.TransformComponent.Kind(), component.TextComponent.Kind())
	z := make(map[ecs.Entity]float64, len(entities))
	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		z[e] = t.Z
	}
	sort.SliceStable(entities, func(i, j int) bool {
		zi, zj := z[entities[i]], z[entities[j]]
		if zi != zj {
			return zi < zj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})
	return entities
}
