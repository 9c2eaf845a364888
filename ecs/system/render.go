package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
)

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(*ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	view := currentView(w)
	zoom := view.zoom()

	for _, e := range drawOrder(w) {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		if s.Image == nil {
			continue
		}

		img := s.Image
		if s.UseSource {
			if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
				img = sub
			}
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}
		if s.FacingLeft != s.FlipX {
			sx = -sx
		}
		if s.FlipY {
			sy = -sy
		}

		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Scale(zoom, zoom)
		px, py := view.toScreen(t.X, t.Y)
		op.GeoM.Translate(px, py)

		if s.Alpha > 0 && s.Alpha < 1 {
			op.ColorScale.ScaleAlpha(float32(s.Alpha))
		}

		screen.DrawImage(img, op)
	}
}

// drawOrder returns sprite entities sorted back to front: by render layer,
// then by y for y-sorted entities, then by entity id.
func drawOrder(w *ecs.World) []ecs.Entity {
	type sortKey struct {
		layer int
		ySort bool
		y     float64
	}

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	keys := make(map[ecs.Entity]sortKey, len(entities))
	for _, e := range entities {
		var k sortKey
		if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			k.layer = layer.Index
		}
		if ys, ok := ecs.Get(w, e, component.YSortComponent.Kind()); ok {
			t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			k.ySort = true
			k.y = t.Y + ys.Offset
		}
		keys[e] = k
	}

	sort.SliceStable(entities, func(i, j int) bool {
		ki, kj := keys[entities[i]], keys[entities[j]]
		if ki.layer != kj.layer {
			return ki.layer < kj.layer
		}
		if ki.ySort && kj.ySort && ki.y != kj.y {
			return ki.y < kj.y
		}
		return uint64(entities[i]) < uint64(entities[j])
	})
	return entities
}
