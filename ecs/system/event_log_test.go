package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
	"github.com/milk9111/isotiled/tilemap"
)

func TestEventLogCountsAndDrains(t *testing.T) {
	w := ecs.NewWorld()
	newResources(t, w)
	_, tiles := newGrid(t, w, "ground", tilemap.Size{X: 2, Y: 2}, tilemap.GridSize{X: 64, Y: 32}, tilemap.IsometricDiamond, component.Transform{})

	res, _ := w.First(component.CursorPosComponent.Kind())
	cursor, _ := ecs.Get(w, res, component.CursorPosComponent.Kind())
	cursor.X, cursor.Y = 0, 0

	var copied string
	keys := newFakeKeys()
	events := NewEventLogSystem()
	s := ecs.NewScheduler(
		NewTileLabelSystem(nil, testNormal),
		NewHighlightSystem(testNormal, testHighlight),
		NewClipboardSystem(keys, func(b []byte) error {
			copied = string(b)
			return nil
		}),
		events,
	)

	s.Update(w)
	if events.Labels() != len(tiles) {
		t.Fatalf("labels = %d, want %d", events.Labels(), len(tiles))
	}
	if events.Hovers() != 1 {
		t.Fatalf("hovers after first tick = %d, want 1", events.Hovers())
	}

	// The clipboard still knows the hover raised a tick earlier.
	keys.tap(ebiten.KeyC)
	s.Update(w)
	if events.Hovers() != 1 {
		t.Fatalf("hovers = %d, want 1", events.Hovers())
	}
	if copied != "ground: 0, 0" {
		t.Fatalf("copied %q", copied)
	}
	if len(w.Events().Peek()) != 0 {
		t.Fatal("event log should leave the queue empty")
	}

	cursor.X, cursor.Y = -1000, -1000
	keys.release()
	s.Update(w)
	if events.Hovers() != 1 {
		t.Fatal("leaving the map is not a hover")
	}

	var nilLog *EventLogSystem
	if nilLog.Labels() != 0 || nilLog.Hovers() != 0 {
		t.Fatal("nil log should report zero")
	}
}
