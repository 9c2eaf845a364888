package common

import "testing"

func TestLerp(t *testing.T) {
	cases := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.25, 2.5},
		{-4, 4, 0.5, 0},
	}
	for _, c := range cases {
		if got := Lerp(c.a, c.b, c.t); got != c.want {
			t.Fatalf("Lerp(%v,%v,%v) = %v, want %v", c.a, c.b, c.t, got, c.want)
		}
	}
	if got := Lerp[float32](1, 3, 0.5); got != 2 {
		t.Fatalf("float32 Lerp = %v", got)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"inside", 2, 1, 3, 2},
		{"below", 0.1, 0.25, 4, 0.25},
		{"above", 9, 0.25, 4, 4},
		{"inverted range", 5, 3, 1, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Clamp(c.v, c.lo, c.hi); got != c.want {
				t.Fatalf("Clamp(%v,%v,%v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
			}
		})
	}
}
