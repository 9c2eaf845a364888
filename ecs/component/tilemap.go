package component

import "github.com/milk9111/isotiled/tilemap"

// Tilemap is one Tiled tile layer spawned as a grid of tile entities.
type Tilemap struct {
	Name       string
	LayerIndex int
	Size       tilemap.Size
	GridSize   tilemap.GridSize
	Type       tilemap.Type
	// Storage holds tile entity handles (ecs.Entity as uint64).
	Storage *tilemap.Storage
}

var TilemapComponent = NewComponent[Tilemap]()

// Tile is attached to every spawned cell.
type Tile struct {
	Pos     tilemap.TilePos
	Tilemap uint64
	GID     uint32
}

var TileComponent = NewComponent[Tile]()

// TileLabel links a tile to the text entity that shows its coordinates.
type TileLabel struct {
	Label uint64
}

var TileLabelComponent = NewComponent[TileLabel]()
