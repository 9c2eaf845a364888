package ecs

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isotiled/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
		wantAlive    int
	}{
		{"single", 1, 0, 0},
		{"destroy_middle_of_three", 3, 1, 2},
		{"no_destroy", 2, -1, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatal("DestroyEntity should return true for an alive entity")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatal("DestroyEntity should return false the second time")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatal("entity should not be alive after destruction")
				}
			}
			if got := len(Entities(w)); got != c.wantAlive || w.Len() != c.wantAlive {
				t.Fatalf("expected %d alive entities, got %d (Len=%d)", c.wantAlive, got, w.Len())
			}
		})
	}
}

func TestRecycledSlotGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, k, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got %v then %v", old, fresh)
	}
	if fresh == old {
		t.Fatal("recycled entity must not compare equal to the stale handle")
	}
	if Has(w, fresh, k) {
		t.Fatal("recycled entity inherited a component from the destroyed one")
	}
	if err := Add(w, old, k, intPtr(2)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func TestAddGetRemove(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	strs := component.NewComponent[string]()
	e := CreateEntity(w)

	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "get_returns_stored_pointer",
			run: func(t *testing.T) {
				if err := Add(w, e, ints.Kind(), intPtr(10)); err != nil {
					t.Fatal(err)
				}
				v, ok := Get(w, e, ints.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
				*v = 11
				if again, _ := Get(w, e, ints.Kind()); *again != 11 {
					t.Fatal("mutation through Get pointer was lost")
				}
			},
		},
		{
			name: "kinds_are_independent",
			run: func(t *testing.T) {
				s := "a"
				if err := Add(w, e, strs.Kind(), &s); err != nil {
					t.Fatal(err)
				}
				if !Has(w, e, strs.Kind()) || !Has(w, e, ints.Kind()) {
					t.Fatal("expected both components present")
				}
				if !Remove(w, e, strs.Kind()) {
					t.Fatal("remove failed")
				}
				if Has(w, e, strs.Kind()) || !Has(w, e, ints.Kind()) {
					t.Fatal("remove touched the wrong kind")
				}
			},
		},
		{
			name: "nil_and_invalid",
			run: func(t *testing.T) {
				if err := Add[int](w, e, ints.Kind(), nil); !errors.Is(err, component.ErrNilComponent) {
					t.Fatalf("expected ErrNilComponent, got %v", err)
				}
				var zero component.ComponentKind[int]
				if err := Add(w, e, zero, intPtr(1)); !errors.Is(err, component.ErrInvalidComponentKind) {
					t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
				}
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestDestroyDropsComponents(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	a := CreateEntity(w)
	b := CreateEntity(w)
	Add(w, a, k, intPtr(1))
	Add(w, b, k, intPtr(2))

	DestroyEntity(w, a)

	var seen []Entity
	ForEach(w, k, func(e Entity, _ *int) { seen = append(seen, e) })
	if len(seen) != 1 || seen[0] != b {
		t.Fatalf("expected only b, got %v", seen)
	}
}

func TestForEachIntersections(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()
	kd := component.NewComponentKind[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	Add(w, e1, ka, intPtr(1))
	for _, k := range []component.ComponentKind[int]{ka, kb, kc, kd} {
		Add(w, e2, k, intPtr(2))
	}
	Add(w, e3, kb, intPtr(3))
	Add(w, e3, kc, intPtr(3))

	var two, three, four []Entity
	ForEach2(w, kb, kc, func(e Entity, _, _ *int) { two = append(two, e) })
	ForEach3(w, ka, kb, kc, func(e Entity, _, _, _ *int) { three = append(three, e) })
	ForEach4(w, ka, kb, kc, kd, func(e Entity, _, _, _, _ *int) { four = append(four, e) })

	if len(two) != 2 || two[0] != e2 || two[1] != e3 {
		t.Fatalf("ForEach2: %v", two)
	}
	if len(three) != 1 || three[0] != e2 {
		t.Fatalf("ForEach3: %v", three)
	}
	if len(four) != 1 || four[0] != e2 {
		t.Fatalf("ForEach4: %v", four)
	}

	empty := component.NewComponentKind[int]()
	var none []Entity
	ForEach2(w, ka, empty, func(e Entity, _, _ *int) { none = append(none, e) })
	if len(none) != 0 {
		t.Fatalf("missing store should yield nothing, got %v", none)
	}
}

func TestForEachAllowsMutation(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	tag := component.NewComponentKind[struct{}]()
	for i := 0; i < 4; i++ {
		Add(w, CreateEntity(w), k, intPtr(i))
	}

	ForEach(w, k, func(e Entity, v *int) {
		if *v%2 == 0 {
			Remove(w, e, k)
			Add(w, e, tag, &struct{}{})
		}
	})

	if got := len(w.Query(k)); got != 2 {
		t.Fatalf("expected 2 left, got %d", got)
	}
	if got := len(w.Query(tag)); got != 2 {
		t.Fatalf("expected 2 tagged, got %d", got)
	}
}

func TestFirstAndQueryOrder(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	if _, ok := w.First(k); ok {
		t.Fatal("First on empty store should fail")
	}

	a := CreateEntity(w)
	b := CreateEntity(w)
	c := CreateEntity(w)
	Add(w, c, k, intPtr(3))
	Add(w, a, k, intPtr(1))
	Add(w, b, k, intPtr(2))

	if first, ok := w.First(k); !ok || first != a {
		t.Fatalf("First = %v, want %v", first, a)
	}
	got := w.Query(k)
	if len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("Query order: %v", got)
	}
}

type recordSystem struct {
	name string
	log  *[]string
}

func (r recordSystem) Update(w *World) {
	*r.log = append(*r.log, r.name)
	w.Events().Push(Event{Type: r.name})
}

type drawSystem struct {
	recordSystem
	draws *int
}

func (d drawSystem) Draw(w *World, screen *ebiten.Image) {
	*d.draws++
}

func TestSchedulerOrderAndEvents(t *testing.T) {
	var log []string
	draws := 0
	w := NewWorld()
	s := NewScheduler(
		recordSystem{name: "input", log: &log},
		nil,
		drawSystem{recordSystem: recordSystem{name: "render", log: &log}, draws: &draws},
	)
	s.Add(recordSystem{name: "highlight", log: &log})

	s.Update(w)
	if len(log) != 3 || log[0] != "input" || log[1] != "render" || log[2] != "highlight" {
		t.Fatalf("order: %v", log)
	}
	if len(w.Events().Peek()) != 0 {
		t.Fatal("events should be flushed after a tick")
	}

	s.Draw(w, nil)
	if draws != 1 {
		t.Fatalf("expected one drawer call, got %d", draws)
	}
	if len(s.Systems()) != 3 {
		t.Fatalf("nil system should be skipped, got %d", len(s.Systems()))
	}
}

func TestMustGet(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	e := CreateEntity(w)
	if err := Add(w, e, k, intPtr(7)); err != nil {
		t.Fatal(err)
	}
	if got := MustGet(w, e, k); *got != 7 {
		t.Fatalf("MustGet = %d, want 7", *got)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("MustGet on a missing component should panic")
		}
	}()
	MustGet(w, CreateEntity(w), k)
}

func TestEventQueueDrainAndPeek(t *testing.T) {
	w := NewWorld()
	w.Events().Push(Event{Type: EventLabelsSpawned, Data: 4})
	w.Events().Push(Event{Type: EventTileHovered})

	if got := len(w.Events().Peek()); got != 2 {
		t.Fatalf("peek saw %d events, want 2", got)
	}
	drained := w.Events().Drain()
	if len(drained) != 2 || drained[0].Type != EventLabelsSpawned {
		t.Fatalf("drain = %+v", drained)
	}
	if w.Events().Drain() != nil {
		t.Fatal("queue should be empty after drain")
	}
}
