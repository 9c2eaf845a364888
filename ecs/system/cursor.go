package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
)

// CursorSystem keeps CursorPos in world space. It only reprojects when the
// window cursor has moved since the last frame; the first frame only records
// where the cursor starts.
type CursorSystem struct {
	cursor func() (int, int)
}

func NewCursorSystem(cursor func() (int, int)) *CursorSystem {
	if cursor == nil {
		cursor = ebiten.CursorPosition
	}
	return &CursorSystem{cursor: cursor}
}

func (cs *CursorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	res, ok := w.First(component.CursorPosComponent.Kind())
	if !ok {
		return
	}
	pos := ecs.MustGet(w, res, component.CursorPosComponent.Kind())

	sx, sy := cs.cursor()
	moved := pos.Seen && (sx != pos.ScreenX || sy != pos.ScreenY)
	pos.ScreenX, pos.ScreenY, pos.Seen = sx, sy, true
	if !moved {
		return
	}

	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, cam *component.Camera, t *component.Transform) {
		if wx, wy, ok := cam.ViewportToWorld(t.X, t.Y, float64(sx), float64(sy)); ok {
			pos.X, pos.Y = wx, wy
		}
	})
}
