package ecs

import "github.com/hajimehoshi/ebiten/v2"

type System interface {
	Update(w *World)
}

// Drawer is implemented by systems that also render.
type Drawer interface {
	Draw(w *World, screen *ebiten.Image)
}

// Scheduler runs systems in registration order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs one tick and flushes the events raised during it.
func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
	w.Events().flush()
}

// Draw calls every system that implements Drawer.
func (s *Scheduler) Draw(w *World, screen *ebiten.Image) {
	for _, system := range s.systems {
		if d, ok := system.(Drawer); ok {
			d.Draw(w, screen)
		}
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
