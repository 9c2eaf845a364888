// Package tilemap holds the grid math shared by map spawning, label placement
// and cursor hit-testing. All positions are in map-local pixels with y pointing
// down; tile (0,0) is centered on the origin.
package tilemap

import (
	"errors"
	"fmt"
	"math"
)

var ErrOutOfBounds = errors.New("tilemap: position out of bounds")

// TilePos is a tile index inside a map.
type TilePos struct {
	X int
	Y int
}

func (p TilePos) String() string {
	return fmt.Sprintf("%d, %d", p.X, p.Y)
}

// Size is the map size in tiles.
type Size struct {
	X int
	Y int
}

// Count returns the number of cells.
func (s Size) Count() int {
	if s.X <= 0 || s.Y <= 0 {
		return 0
	}
	return s.X * s.Y
}

// Contains reports whether p is inside the map.
func (s Size) Contains(p TilePos) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < s.X && p.Y < s.Y
}

// GridSize is the size of one grid cell in pixels. For isometric maps this is
// the diamond's bounding box, not the tile image.
type GridSize struct {
	X float64
	Y float64
}

// Type selects the grid projection.
type Type int

const (
	Square Type = iota
	IsometricDiamond
	// IsometricStaggeredOdd shifts odd rows right by half a tile.
	IsometricStaggeredOdd
	// IsometricStaggeredEven shifts even rows right by half a tile.
	IsometricStaggeredEven
)

func (t Type) String() string {
	switch t {
	case Square:
		return "square"
	case IsometricDiamond:
		return "isometric diamond"
	case IsometricStaggeredOdd:
		return "isometric staggered (odd)"
	case IsometricStaggeredEven:
		return "isometric staggered (even)"
	default:
		return fmt.Sprintf("tilemap.Type(%d)", int(t))
	}
}

// IsIsometric reports whether tiles are diamonds.
func (t Type) IsIsometric() bool {
	return t != Square
}

func (t Type) rowShifted(y int) bool {
	odd := y%2 != 0
	switch t {
	case IsometricStaggeredOdd:
		return odd
	case IsometricStaggeredEven:
		return !odd
	default:
		return false
	}
}

// CenterInWorld returns the center of the tile in map-local pixels.
func (p TilePos) CenterInWorld(grid GridSize, t Type) (float64, float64) {
	x, y := float64(p.X), float64(p.Y)
	switch t {
	case IsometricDiamond:
		return (x - y) * grid.X / 2, (x + y) * grid.Y / 2
	case IsometricStaggeredOdd, IsometricStaggeredEven:
		cx := x * grid.X
		if t.rowShifted(p.Y) {
			cx += grid.X / 2
		}
		return cx, y * grid.Y / 2
	default:
		return x * grid.X, y * grid.Y
	}
}

// FromWorldPos returns the tile whose cell contains the map-local point.
// Points on a shared diamond edge resolve to the tile with the larger index.
func FromWorldPos(x, y float64, size Size, grid GridSize, t Type) (TilePos, bool) {
	if grid.X <= 0 || grid.Y <= 0 {
		return TilePos{}, false
	}

	var pos TilePos
	switch t {
	case IsometricDiamond:
		nx, ny := x/grid.X, y/grid.Y
		pos = TilePos{X: roundHalfUp(nx + ny), Y: roundHalfUp(ny - nx)}
	case IsometricStaggeredOdd, IsometricStaggeredEven:
		var ok bool
		pos, ok = staggeredFromWorld(x, y, grid, t)
		if !ok {
			return TilePos{}, false
		}
	default:
		pos = TilePos{X: roundHalfUp(x / grid.X), Y: roundHalfUp(y / grid.Y)}
	}

	if !size.Contains(pos) {
		return TilePos{}, false
	}
	return pos, true
}

// staggeredFromWorld picks the nearest diamond among the rows that can
// overlap y, measured in the diamond's own L1 metric.
func staggeredFromWorld(x, y float64, grid GridSize, t Type) (TilePos, bool) {
	halfW, halfH := grid.X/2, grid.Y/2
	row := int(math.Floor(y / halfH))

	best := TilePos{}
	bestDist := math.Inf(1)
	for r := row - 1; r <= row+2; r++ {
		shift := 0.0
		if t.rowShifted(r) {
			shift = halfW
		}
		col := roundHalfUp((x - shift) / grid.X)
		for c := col - 1; c <= col+1; c++ {
			cand := TilePos{X: c, Y: r}
			cx, cy := cand.CenterInWorld(grid, t)
			d := math.Abs(x-cx)/halfW + math.Abs(y-cy)/halfH
			if d < bestDist {
				best, bestDist = cand, d
			}
		}
	}
	const eps = 1e-9
	return best, bestDist <= 1+eps
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
