package system

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
	"github.com/milk9111/isotiled/tilemap"
)

// TileLabelSystem spawns one coordinate label above every stored tile, once.
// It keeps trying each frame until a tilemap with tiles exists.
type TileLabelSystem struct {
	format *LabelFormatter
	color  color.Color
}

func NewTileLabelSystem(format *LabelFormatter, textColor color.Color) *TileLabelSystem {
	if textColor == nil {
		textColor = color.Black
	}
	return &TileLabelSystem{format: format, color: textColor}
}

func (s *TileLabelSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	res, ok := w.First(component.SpawnedLabelsComponent.Kind())
	if !ok {
		return
	}
	spawned, _ := ecs.Get(w, res, component.SpawnedLabelsComponent.Kind())
	if spawned.Set {
		return
	}

	var face text.Face
	if font, ok := ecs.Get(w, res, component.FontHandleComponent.Kind()); ok {
		face = font.Face
	}

	count := 0
	ecs.ForEach2(w, component.TilemapComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, tm *component.Tilemap, mapTransform *component.Transform) {
		tm.Storage.Iter(func(_ tilemap.TilePos, raw uint64) {
			tileEntity := ecs.Entity(raw)
			tile, ok := ecs.Get(w, tileEntity, component.TileComponent.Kind())
			if !ok {
				log.Printf("tile labels: %v is stored in tilemap %q but has no tile", tileEntity, tm.Name)
				return
			}

			cx, cy := tile.Pos.CenterInWorld(tm.GridSize, tm.Type)
			transform := mapTransform.Mul(component.Transform{X: cx, Y: cy})
			transform.Z++

			value, err := s.format.Format(tile.Pos)
			if err != nil {
				log.Printf("tile labels: %v", err)
			}

			label := ecs.CreateEntity(w)
			if err := ecs.Add(w, label, component.TransformComponent.Kind(), &transform); err != nil {
				panic("tile label system: add label transform: " + err.Error())
			}
			if err := ecs.Add(w, label, component.TextComponent.Kind(), &component.Text{
				Value: value,
				Color: s.color,
				Face:  face,
				Align: text.AlignCenter,
			}); err != nil {
				panic("tile label system: add label text: " + err.Error())
			}
			if err := ecs.Add(w, tileEntity, component.TileLabelComponent.Kind(), &component.TileLabel{Label: uint64(label)}); err != nil {
				panic("tile label system: link label: " + err.Error())
			}
			count++
		})
	})

	if count == 0 {
		return
	}
	spawned.Set = true
	w.Events().Push(ecs.Event{Type: ecs.EventLabelsSpawned, Data: count})
}
