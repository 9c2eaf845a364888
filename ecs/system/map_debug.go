package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
)

var (
	mapObjectColor = color.NRGBA{R: 0xFF, G: 0xA0, B: 0x00, A: 0xE0}
	mapPointColor  = color.NRGBA{R: 0xE0, G: 0x20, B: 0xE0, A: 0xFF}
)

const mapPointSize = 6

// MapDebugSystem outlines Tiled objects.
type MapDebugSystem struct {
	Enabled bool
}

func NewMapDebugSystem(enabled bool) *MapDebugSystem {
	return &MapDebugSystem{Enabled: enabled}
}

func (m *MapDebugSystem) Update(*ecs.World) {}

func (m *MapDebugSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if m == nil || !m.Enabled || w == nil || screen == nil {
		return
	}
	view := currentView(w)

	ecs.ForEach(w, component.MapObjectComponent.Kind(), func(_ ecs.Entity, obj *component.MapObject) {
		switch len(obj.Points) {
		case 0:
			return
		case 1:
			x, y := view.toScreen(obj.Points[0][0], obj.Points[0][1])
			strokeLine(screen, x-mapPointSize, y, x+mapPointSize, y, mapPointColor)
			strokeLine(screen, x, y-mapPointSize, x, y+mapPointSize, mapPointColor)
			return
		}

		n := len(obj.Points)
		last := n - 1
		if obj.Closed {
			last = n
		}
		for i := 0; i < last; i++ {
			a, b := obj.Points[i], obj.Points[(i+1)%n]
			x1, y1 := view.toScreen(a[0], a[1])
			x2, y2 := view.toScreen(b[0], b[1])
			strokeLine(screen, x1, y1, x2, y2, mapObjectColor)
		}
	})
}

func strokeLine(dst *ebiten.Image, x1, y1, x2, y2 float64, clr color.Color) {
	vector.StrokeLine(dst, float32(x1), float32(y1), float32(x2), float32(y2), 1.5, clr, true)
}
