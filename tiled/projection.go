package tiled

import (
	"fmt"
	"math"
)

// ObjectToPixel converts object coordinates into the map's pixel space.
// Isometric maps store objects in a square space where both axes are
// measured in tile heights.
func (m *Map) ObjectToPixel(x, y float64) (float64, float64) {
	if m.Orientation != Isometric {
		return x, y
	}
	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	tx, ty := x/th, y/th
	originX := float64(m.Height) * tw / 2
	return (tx-ty)*tw/2 + originX, (tx + ty) * th / 2
}

// Outline returns the object's shape as map pixel points. Rectangles and
// ellipses are closed polygons; points yield a single vertex.
func (m *Map) Outline(o *Object) ([][2]float64, error) {
	var local [][2]float64
	switch o.Shape() {
	case ShapePoint:
		local = [][2]float64{{0, 0}}
	case ShapePolygon, ShapePolyline:
		if len(o.Points) == 0 {
			return nil, fmt.Errorf("tiled: object %d has no points", o.ID)
		}
		local = o.Points
	case ShapeEllipse:
		const segments = 16
		rx, ry := o.Width/2, o.Height/2
		for i := 0; i < segments; i++ {
			a := 2 * math.Pi * float64(i) / segments
			local = append(local, [2]float64{rx + rx*math.Cos(a), ry + ry*math.Sin(a)})
		}
	case ShapeTile:
		// Tile objects are anchored at their bottom-left corner.
		local = [][2]float64{{0, -o.Height}, {o.Width, -o.Height}, {o.Width, 0}, {0, 0}}
	default:
		local = [][2]float64{{0, 0}, {o.Width, 0}, {o.Width, o.Height}, {0, o.Height}}
	}

	sin, cos := math.Sincos(o.Rotation * math.Pi / 180)
	out := make([][2]float64, len(local))
	for i, p := range local {
		rx := p[0]*cos - p[1]*sin
		ry := p[0]*sin + p[1]*cos
		px, py := m.ObjectToPixel(o.X+rx, o.Y+ry)
		out[i] = [2]float64{px, py}
	}
	return out, nil
}
