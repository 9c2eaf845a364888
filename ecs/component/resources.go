package component

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/isotiled/tilemap"
)

// Resources live as singletons on one entity; systems find them with
// w.First(kind).

// CursorPos is the cursor position in world space.
type CursorPos struct {
	X float64
	Y float64
	// ScreenX/ScreenY remember the last window position so movement can be detected.
	ScreenX int
	ScreenY int
	Seen    bool
}

var CursorPosComponent = NewComponent[CursorPos]()

// SpawnedLabels records that tile labels exist so they are spawned once.
type SpawnedLabels struct {
	Set bool
}

var SpawnedLabelsComponent = NewComponent[SpawnedLabels]()

// FontHandle is the face used for tile labels.
type FontHandle struct {
	Face text.Face
	Size float64
}

var FontHandleComponent = NewComponent[FontHandle]()

// Gravity is the physics gravity in pixels per second squared, y down.
type Gravity struct {
	X float64
	Y float64
}

var GravityComponent = NewComponent[Gravity]()

// ActiveMap names the map the world was built from.
type ActiveMap struct {
	Path  string
	Title string
	Index int
}

var ActiveMapComponent = NewComponent[ActiveMap]()

// HoveredTile is the tile under the cursor after the highlight pass.
type HoveredTile struct {
	Tilemap uint64
	Pos     tilemap.TilePos
	Valid   bool
}

var HoveredTileComponent = NewComponent[HoveredTile]()
