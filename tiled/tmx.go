// Package tiled adapts maps decoded by go-tiled into the shapes the demo
// spawns from: finite tile layers with resolved global ids, object groups with
// classified shapes, typed property lookups with defaults and tileset image
// paths resolved inside the asset filesystem.
package tiled

import (
	"errors"
	"image/color"
)

var (
	ErrInfiniteMap    = errors.New("tiled: infinite maps are not supported")
	ErrMissingTileset = errors.New("tiled: gid has no tileset")
)

type Orientation string

const (
	Orthogonal Orientation = "orthogonal"
	Isometric  Orientation = "isometric"
	Staggered  Orientation = "staggered"
	Hexagonal  Orientation = "hexagonal"
)

// Map is a loaded .tmx document.
type Map struct {
	Orientation     Orientation
	Width           int
	Height          int
	TileWidth       int
	TileHeight      int
	StaggerAxis     string
	StaggerIndex    string
	Infinite        bool
	BackgroundColor color.Color
	Properties      Properties
	Tilesets        []*Tileset
	Layers          []*Layer
	ObjectGroups    []*ObjectGroup

	// Path is the fs path the map was loaded from.
	Path string
}

// Tileset is either embedded in the map or loaded from a .tsx file.
type Tileset struct {
	FirstGID   uint32
	Source     string
	Name       string
	TileWidth  int
	TileHeight int
	Spacing    int
	Margin     int
	TileCount  int
	Columns    int
	Image      *Image
	TileOffset *Offset
	Properties Properties
	Tiles      []*TileDef
}

type Image struct {
	// Source is the path as written in the tileset.
	Source string
	// Path is Source resolved against the tileset file's directory.
	Path   string
	Width  int
	Height int
}

type Offset struct {
	X float64
	Y float64
}

// TileDef carries per-tile metadata inside a tileset.
type TileDef struct {
	ID         uint32
	Type       string
	Properties Properties
}

// Layer is a finite tile layer with one cell per map tile in row-major order.
type Layer struct {
	ID         int
	Name       string
	Width      int
	Height     int
	OffsetX    float64
	OffsetY    float64
	Opacity    float64
	Visible    bool
	Properties Properties

	Tiles []LayerTile
}

func (l *Layer) IsVisible() bool {
	return l.Visible
}

func (l *Layer) Alpha() float64 {
	return l.Opacity
}

// LayerTile is one decoded cell. GID is zero for empty cells.
type LayerTile struct {
	GID   uint32
	FlipH bool
	FlipV bool
	FlipD bool
}

func (t LayerTile) Empty() bool {
	return t.GID == 0
}

// ObjectGroup is an object layer.
type ObjectGroup struct {
	ID         int
	Name       string
	OffsetX    float64
	OffsetY    float64
	Visible    bool
	Properties Properties
	Objects    []*Object
}

func (g *ObjectGroup) IsVisible() bool {
	return g.Visible
}

type Object struct {
	ID         int
	Name       string
	Type       string
	X          float64
	Y          float64
	Width      float64
	Height     float64
	Rotation   float64
	GID        uint32
	Visible    bool
	Properties Properties
	// Points holds polygon or polyline vertices relative to X, Y.
	Points [][2]float64

	shape ShapeKind
}

// Kind returns the object's type attribute.
func (o *Object) Kind() string {
	return o.Type
}

// ShapeKind classifies an object's geometry.
type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeEllipse
	ShapePoint
	ShapePolygon
	ShapePolyline
	ShapeTile
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeEllipse:
		return "ellipse"
	case ShapePoint:
		return "point"
	case ShapePolygon:
		return "polygon"
	case ShapePolyline:
		return "polyline"
	case ShapeTile:
		return "tile"
	default:
		return "rectangle"
	}
}

func (o *Object) Shape() ShapeKind {
	return o.shape
}
