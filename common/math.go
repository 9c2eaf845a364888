// Package common holds small numeric helpers shared by systems and assets.
package common

type Float interface {
	~float32 | ~float64
}

func Lerp[T Float](a, b, t T) T {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi]. lo wins when the range is inverted.
func Clamp[T Float](v, lo, hi T) T {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
