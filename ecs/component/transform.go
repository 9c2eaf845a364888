package component

import "github.com/hajimehoshi/ebiten/v2"

// Transform places an entity in world space. Z only orders drawing.
type Transform struct {
	X        float64
	Y        float64
	Z        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()

// GeoM returns the local-to-world matrix: scale, then rotate, then translate.
func (t Transform) GeoM() ebiten.GeoM {
	var m ebiten.GeoM
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	m.Scale(sx, sy)
	m.Rotate(t.Rotation)
	m.Translate(t.X, t.Y)
	return m
}

// Apply maps a local point into world space.
func (t Transform) Apply(x, y float64) (float64, float64) {
	m := t.GeoM()
	return m.Apply(x, y)
}

// InverseApply maps a world point into the transform's local space. ok is
// false when the transform is degenerate.
func (t Transform) InverseApply(x, y float64) (lx, ly float64, ok bool) {
	m := t.GeoM()
	if !m.IsInvertible() {
		return 0, 0, false
	}
	m.Invert()
	lx, ly = m.Apply(x, y)
	return lx, ly, true
}

// Mul composes t with a child transform expressed in t's local space. The
// position goes through t's full matrix, but scales multiply per axis and
// rotations add, so the result is exact only when t is unrotated or scales
// uniformly. Map and tile transforms never rotate.
func (t Transform) Mul(child Transform) Transform {
	x, y := t.Apply(child.X, child.Y)
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	csx, csy := child.ScaleX, child.ScaleY
	if csx == 0 {
		csx = 1
	}
	if csy == 0 {
		csy = 1
	}
	return Transform{
		X:        x,
		Y:        y,
		Z:        t.Z + child.Z,
		ScaleX:   sx * csx,
		ScaleY:   sy * csy,
		Rotation: t.Rotation + child.Rotation,
	}
}
