package system

import (
	"image/color"

	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
	"github.com/milk9111/isotiled/tilemap"
)

// HighlightSystem colors the label of the tile under the cursor and restores
// the previous one.
type HighlightSystem struct {
	normal    color.Color
	highlight color.Color
}

func NewHighlightSystem(normal, highlight color.Color) *HighlightSystem {
	if normal == nil {
		normal = color.Black
	}
	if highlight == nil {
		highlight = color.NRGBA{R: 0x25, G: 0x63, B: 0xEB, A: 0xFF}
	}
	return &HighlightSystem{normal: normal, highlight: highlight}
}

func (hs *HighlightSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, tileEntity := range w.Query(component.HighlightedLabelComponent.Kind()) {
		label, ok := ecs.Get(w, tileEntity, component.TileLabelComponent.Kind())
		if !ok {
			continue
		}
		txt, ok := ecs.Get(w, ecs.Entity(label.Label), component.TextComponent.Kind())
		if !ok {
			continue
		}
		txt.Color = hs.normal
		ecs.Remove(w, tileEntity, component.HighlightedLabelComponent.Kind())
	}

	res, ok := w.First(component.CursorPosComponent.Kind())
	if !ok {
		return
	}
	cursor := ecs.MustGet(w, res, component.CursorPosComponent.Kind())
	prev := component.HoveredTile{}
	hovered, hasHovered := ecs.Get(w, res, component.HoveredTileComponent.Kind())
	if hasHovered {
		prev = *hovered
		*hovered = component.HoveredTile{}
	}

	ecs.ForEach2(w, component.TilemapComponent.Kind(), component.TransformComponent.Kind(), func(mapEntity ecs.Entity, tm *component.Tilemap, mapTransform *component.Transform) {
		lx, ly, ok := mapTransform.InverseApply(cursor.X, cursor.Y)
		if !ok {
			return
		}
		pos, ok := tilemap.FromWorldPos(lx, ly, tm.Size, tm.GridSize, tm.Type)
		if !ok {
			return
		}
		raw, ok := tm.Storage.Get(pos)
		if !ok {
			return
		}
		tileEntity := ecs.Entity(raw)
		label, ok := ecs.Get(w, tileEntity, component.TileLabelComponent.Kind())
		if !ok {
			return
		}
		txt, ok := ecs.Get(w, ecs.Entity(label.Label), component.TextComponent.Kind())
		if !ok {
			return
		}
		txt.Color = hs.highlight
		if err := ecs.Add(w, tileEntity, component.HighlightedLabelComponent.Kind(), &component.HighlightedLabel{}); err != nil {
			panic("highlight system: tag tile: " + err.Error())
		}
		if hasHovered {
			*hovered = component.HoveredTile{Tilemap: uint64(mapEntity), Pos: pos, Valid: true}
		}
	})

	// Leaving the map is reported too, with Valid unset.
	if hasHovered && *hovered != prev {
		w.Events().Push(ecs.Event{Type: ecs.EventTileHovered, Data: *hovered})
	}
}
