package system

import (
	"fmt"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
	"golang.design/x/clipboard"
)

// ClipboardSystem copies the hovered tile's coordinates when C is pressed. It
// follows the hover through tile_hovered events.
type ClipboardSystem struct {
	keys    KeyState
	write   func([]byte) error
	hovered component.HoveredTile
}

func NewClipboardSystem(keys KeyState, write func([]byte) error) *ClipboardSystem {
	if keys == nil {
		keys = EbitenKeys{}
	}
	if write == nil {
		write = writeSystemClipboard
	}
	return &ClipboardSystem{keys: keys, write: write}
}

func (cs *ClipboardSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, evt := range w.Events().Peek() {
		if evt.Type != ecs.EventTileHovered {
			continue
		}
		if h, ok := evt.Data.(component.HoveredTile); ok {
			cs.hovered = h
		}
	}
	if !cs.hovered.Valid || !cs.keys.JustPressed(ebiten.KeyC) {
		return
	}

	value := cs.hovered.Pos.String()
	if tm, ok := ecs.Get(w, ecs.Entity(cs.hovered.Tilemap), component.TilemapComponent.Kind()); ok && tm.Name != "" {
		value = fmt.Sprintf("%s: %s", tm.Name, value)
	}
	if err := cs.write([]byte(value)); err != nil {
		log.Printf("clipboard: %v", err)
		return
	}
	log.Printf("clipboard: copied %q", value)
}

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

func writeSystemClipboard(b []byte) error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return fmt.Errorf("init: %w", clipboardErr)
	}
	clipboard.Write(clipboard.FmtText, b)
	return nil
}
