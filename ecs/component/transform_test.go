package component

import (
	"math"
	"testing"
)

func TestTransformMul(t *testing.T) {
	cases := []struct {
		name   string
		parent Transform
		child  Transform
	}{
		{"translate", Transform{X: 100, Y: 50, Z: 2}, Transform{X: 32, Y: 16, Z: 1}},
		{"non-uniform scale", Transform{X: 100, Y: 50, ScaleX: 2, ScaleY: 3}, Transform{X: 10, Y: 10, ScaleX: 0.5}},
		{"rotated uniform scale", Transform{X: 5, Rotation: math.Pi / 2, ScaleX: 2, ScaleY: 2}, Transform{X: 1, Y: 3, Rotation: 0.25}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.parent.Mul(c.child)
			if got.Z != c.parent.Z+c.child.Z {
				t.Fatalf("z = %v", got.Z)
			}
			// A point in the child's space lands in the same place either way.
			for _, p := range [][2]float64{{0, 0}, {1, 0}, {-3, 7}} {
				cx, cy := c.child.Apply(p[0], p[1])
				wantX, wantY := c.parent.Apply(cx, cy)
				gotX, gotY := got.Apply(p[0], p[1])
				if math.Abs(gotX-wantX) > 1e-9 || math.Abs(gotY-wantY) > 1e-9 {
					t.Fatalf("point %v: composed (%v,%v), nested (%v,%v)", p, gotX, gotY, wantX, wantY)
				}
			}
		})
	}
}

func TestTransformInverseApply(t *testing.T) {
	tr := Transform{X: 100, Y: 50, ScaleX: 2, ScaleY: 2}
	lx, ly, ok := tr.InverseApply(164, 82)
	if !ok || lx != 32 || ly != 16 {
		t.Fatalf("InverseApply = (%v,%v,%v), want (32,16,true)", lx, ly, ok)
	}
}
