package ecs

import "github.com/milk9111/isotiled/ecs/component"

// ForEach visits every alive entity holding a. Entities are visited in a
// snapshot, so fn may add or remove components and entities.
func ForEach[A any](w *World, a component.ComponentKind[A], fn func(Entity, *A)) {
	for _, e := range w.Query(a) {
		va, okA := Get(w, e, a)
		if okA {
			fn(e, va)
		}
	}
}

func ForEach2[A, B any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range w.Query(a, b) {
		va, okA := Get(w, e, a)
		vb, okB := Get(w, e, b)
		if okA && okB {
			fn(e, va, vb)
		}
	}
}

func ForEach3[A, B, C any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range w.Query(a, b, c) {
		va, okA := Get(w, e, a)
		vb, okB := Get(w, e, b)
		vc, okC := Get(w, e, c)
		if okA && okB && okC {
			fn(e, va, vb, vc)
		}
	}
}

func ForEach4[A, B, C, D any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], d component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	for _, e := range w.Query(a, b, c, d) {
		va, okA := Get(w, e, a)
		vb, okB := Get(w, e, b)
		vc, okC := Get(w, e, c)
		vd, okD := Get(w, e, d)
		if okA && okB && okC && okD {
			fn(e, va, vb, vc, vd)
		}
	}
}
