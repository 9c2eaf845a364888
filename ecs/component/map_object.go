package component

// MapObject is a Tiled object kept for debug drawing. Points are in world space.
type MapObject struct {
	Name   string
	Kind   string
	Shape  string
	Points [][2]float64
	Closed bool
}

var MapObjectComponent = NewComponent[MapObject]()
