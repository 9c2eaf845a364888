package assets

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isotiled/common"
)

// Shape selects the silhouette of generated art.
type Shape string

const (
	ShapeDiamond Shape = "diamond"
	ShapeSquare  Shape = "square"
	ShapeCircle  Shape = "circle"
)

// outlineWidth is the fraction of the shape drawn as a darker rim.
const outlineWidth = 0.08

// TileArt generates art for tiles and sprites that have no image.
func TileArt(shape Shape, w, h int, fill color.Color) *ebiten.Image {
	return ebiten.NewImageFromImage(RasterizeShape(shape, w, h, fill))
}

// RasterizeShape draws shape into a w x h image: fill inside, a darker rim
// along the edge and transparent outside.
func RasterizeShape(shape Shape, w, h int, fill color.Color) *image.NRGBA {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	base := color.NRGBAModel.Convert(fill).(color.NRGBA)
	rim := darken(base, 0.7)

	hw, hh := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			nx := (float64(x) + 0.5 - hw) / hw
			ny := (float64(y) + 0.5 - hh) / hh
			d := distance(shape, nx, ny)
			switch {
			case d > 1:
				continue
			case d > 1-outlineWidth:
				img.SetNRGBA(x, y, rim)
			default:
				img.SetNRGBA(x, y, base)
			}
		}
	}
	return img
}

// distance is the shape's norm of a point in [-1,1] space: 1 on the edge.
func distance(shape Shape, nx, ny float64) float64 {
	switch shape {
	case ShapeCircle:
		return math.Hypot(nx, ny)
	case ShapeSquare:
		return math.Max(math.Abs(nx), math.Abs(ny))
	default:
		return math.Abs(nx) + math.Abs(ny)
	}
}

func darken(c color.NRGBA, f float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(common.Lerp(0, float64(c.R), f)),
		G: uint8(common.Lerp(0, float64(c.G), f)),
		B: uint8(common.Lerp(0, float64(c.B), f)),
		A: c.A,
	}
}
