package system

import (
	"log"

	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
)

// EventLogSystem drains the tick's events. It runs after every system that
// reads them and keeps running totals for the inspector.
type EventLogSystem struct {
	// Verbose also logs every hover change.
	Verbose bool

	labels int
	hovers int
}

func NewEventLogSystem() *EventLogSystem {
	return &EventLogSystem{}
}

func (es *EventLogSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		switch evt.Type {
		case ecs.EventLabelsSpawned:
			n, _ := evt.Data.(int)
			es.labels += n
			log.Printf("tile labels: spawned %d", n)
		case ecs.EventTileHovered:
			h, _ := evt.Data.(component.HoveredTile)
			if !h.Valid {
				continue
			}
			es.hovers++
			if es.Verbose {
				log.Printf("hover: tile %v", h.Pos)
			}
		}
	}
}

// Labels returns how many labels have been spawned.
func (es *EventLogSystem) Labels() int {
	if es == nil {
		return 0
	}
	return es.labels
}

// Hovers returns how many times the hovered tile changed to a valid tile.
func (es *EventLogSystem) Hovers() int {
	if es == nil {
		return 0
	}
	return es.hovers
}
