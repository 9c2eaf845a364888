package tilemap

// Positioning decides where a map's tile (0,0) lands relative to the map
// transform.
type Positioning int

const (
	// LayerOffset centers tile (0,0) on the map origin; only the layer's own
	// offset is applied.
	LayerOffset Positioning = iota
	// TiledOffset reproduces Tiled's pixel space: the map's bounding box
	// starts at the origin.
	TiledOffset
)

// ParsePositioning accepts the names used in config files.
func ParsePositioning(s string) Positioning {
	switch s {
	case "tiled_offset", "tiled":
		return TiledOffset
	default:
		return LayerOffset
	}
}

// Origin returns the translation that moves tile (0,0) from the map-local
// origin to where the positioning mode expects it.
func (p Positioning) Origin(size Size, grid GridSize, t Type) (float64, float64) {
	if p != TiledOffset {
		return 0, 0
	}
	switch t {
	case IsometricDiamond:
		return float64(size.Y) * grid.X / 2, grid.Y / 2
	default:
		return grid.X / 2, grid.Y / 2
	}
}

// PixelSize returns the map's bounding box in pixels.
func PixelSize(size Size, grid GridSize, t Type) (float64, float64) {
	switch t {
	case IsometricDiamond:
		return float64(size.X+size.Y) * grid.X / 2, float64(size.X+size.Y) * grid.Y / 2
	case IsometricStaggeredOdd, IsometricStaggeredEven:
		return float64(size.X)*grid.X + grid.X/2, float64(size.Y+1) * grid.Y / 2
	default:
		return float64(size.X) * grid.X, float64(size.Y) * grid.Y
	}
}
