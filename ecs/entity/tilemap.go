package entity

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/isotiled/assets"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
	"github.com/milk9111/isotiled/tiled"
	"github.com/milk9111/isotiled/tilemap"
)

// MapSettings controls how a Tiled map is placed in the world.
type MapSettings struct {
	Positioning tilemap.Positioning
	// YSort adds a YSort component to every tile.
	YSort bool
}

// SpawnedMap summarizes what SpawnTiledMap created.
type SpawnedMap struct {
	Tilemaps  []ecs.Entity
	Tiles     int
	Objects   int
	Colliders int
}

var defaultTileColor = color.NRGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}

// MapType returns the grid projection for a Tiled orientation.
func MapType(m *tiled.Map) tilemap.Type {
	switch m.Orientation {
	case tiled.Isometric:
		return tilemap.IsometricDiamond
	case tiled.Staggered:
		if m.StaggerIndex == "even" {
			return tilemap.IsometricStaggeredEven
		}
		return tilemap.IsometricStaggeredOdd
	default:
		return tilemap.Square
	}
}

// SpawnTiledMap creates one tilemap entity per visible tile layer, one entity
// per non-empty cell and one entity per visible object.
func SpawnTiledMap(w *ecs.World, m *tiled.Map, settings MapSettings) (SpawnedMap, error) {
	var out SpawnedMap
	if w == nil || m == nil {
		return out, fmt.Errorf("spawn map: world or map is nil")
	}

	mapType := MapType(m)
	size := tilemap.Size{X: m.Width, Y: m.Height}
	grid := tilemap.GridSize{X: float64(m.TileWidth), Y: float64(m.TileHeight)}
	ox, oy := settings.Positioning.Origin(size, grid, mapType)
	art := NewTileSprites(m)

	for layerIndex, layer := range m.Layers {
		if !layer.IsVisible() {
			continue
		}

		mapTransform := component.Transform{
			X:      ox + layer.OffsetX,
			Y:      oy + layer.OffsetY,
			Z:      float64(layerIndex),
			ScaleX: 1,
			ScaleY: 1,
		}
		layerSize := tilemap.Size{X: layer.Width, Y: layer.Height}
		storage := tilemap.NewStorage(layerSize)

		mapEntity := ecs.CreateEntity(w)
		if err := ecs.Add(w, mapEntity, component.TransformComponent.Kind(), &mapTransform); err != nil {
			return out, fmt.Errorf("spawn map: layer %q: add transform: %w", layer.Name, err)
		}

		for i, cell := range layer.Tiles {
			if cell.Empty() {
				continue
			}
			pos := tilemap.TilePos{X: i % layerSize.X, Y: i / layerSize.X}
			sprite, err := art.Sprite(cell)
			if err != nil {
				log.Printf("spawn map: layer %q tile %v: %v", layer.Name, pos, err)
				continue
			}
			sprite.Alpha = layer.Alpha()

			tile, err := spawnTile(w, mapEntity, mapTransform, pos, cell.GID, grid, mapType, sprite, layerIndex, settings.YSort)
			if err != nil {
				return out, fmt.Errorf("spawn map: layer %q: %w", layer.Name, err)
			}
			if err := storage.Set(pos, uint64(tile)); err != nil {
				return out, fmt.Errorf("spawn map: layer %q: store %v: %w", layer.Name, pos, err)
			}
			out.Tiles++
		}

		if err := ecs.Add(w, mapEntity, component.TilemapComponent.Kind(), &component.Tilemap{
			Name:       layer.Name,
			LayerIndex: layerIndex,
			Size:       layerSize,
			GridSize:   grid,
			Type:       mapType,
			Storage:    storage,
		}); err != nil {
			return out, fmt.Errorf("spawn map: layer %q: add tilemap: %w", layer.Name, err)
		}
		out.Tilemaps = append(out.Tilemaps, mapEntity)
	}

	// Object coordinates are in Tiled's pixel space; shift them so tile (0,0)
	// lands where the tile layers put it.
	tox, toy := tilemap.TiledOffset.Origin(size, grid, mapType)
	for _, group := range m.ObjectGroups {
		if !group.IsVisible() {
			continue
		}
		groupColliders := group.Properties.GetBool("collision", false)
		for _, obj := range group.Objects {
			if !obj.Visible {
				continue
			}
			pts, err := m.Outline(obj)
			if err != nil {
				log.Printf("spawn map: object %d %q: %v", obj.ID, obj.Name, err)
				continue
			}
			for i, p := range pts {
				pts[i] = [2]float64{
					p[0] + group.OffsetX - tox + ox,
					p[1] + group.OffsetY - toy + oy,
				}
			}

			collider := groupColliders || strings.EqualFold(obj.Kind(), "collider") || obj.Properties.GetBool("collision", false)
			hasBody, err := spawnObject(w, obj, pts, collider)
			if err != nil {
				return out, fmt.Errorf("spawn map: object %d %q: %w", obj.ID, obj.Name, err)
			}
			out.Objects++
			if hasBody {
				out.Colliders++
			}
		}
	}

	return out, nil
}

func spawnTile(
	w *ecs.World,
	mapEntity ecs.Entity,
	mapTransform component.Transform,
	pos tilemap.TilePos,
	gid uint32,
	grid tilemap.GridSize,
	mapType tilemap.Type,
	sprite component.Sprite,
	layerIndex int,
	ySort bool,
) (ecs.Entity, error) {
	cx, cy := pos.CenterInWorld(grid, mapType)
	transform := mapTransform.Mul(component.Transform{X: cx, Y: cy})

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TileComponent.Kind(), &component.Tile{
		Pos:     pos,
		Tilemap: uint64(mapEntity),
		GID:     gid,
	}); err != nil {
		return 0, fmt.Errorf("tile %v: add tile: %w", pos, err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &transform); err != nil {
		return 0, fmt.Errorf("tile %v: add transform: %w", pos, err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite); err != nil {
		return 0, fmt.Errorf("tile %v: add sprite: %w", pos, err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layerIndex}); err != nil {
		return 0, fmt.Errorf("tile %v: add render layer: %w", pos, err)
	}
	if ySort {
		if err := ecs.Add(w, e, component.YSortComponent.Kind(), &component.YSort{}); err != nil {
			return 0, fmt.Errorf("tile %v: add y sort: %w", pos, err)
		}
	}
	return e, nil
}

// spawnObject creates the MapObject entity and, for colliders, a static body
// centered on the outline's centroid.
func spawnObject(w *ecs.World, obj *tiled.Object, pts [][2]float64, collider bool) (bool, error) {
	shape := obj.Shape()
	closed := shape != tiled.ShapePolyline && shape != tiled.ShapePoint

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.MapObjectComponent.Kind(), &component.MapObject{
		Name:   obj.Name,
		Kind:   obj.Kind(),
		Shape:  shape.String(),
		Points: pts,
		Closed: closed,
	}); err != nil {
		return false, fmt.Errorf("add map object: %w", err)
	}

	if !collider || len(pts) < 2 {
		return false, nil
	}

	cx, cy := centroid(pts)
	verts := make([]cp.Vector, len(pts))
	for i, p := range pts {
		verts[i] = cp.Vector{X: p[0] - cx, Y: p[1] - cy}
	}

	body := &component.PhysicsBody{
		Static:     true,
		Friction:   obj.Properties.GetFloat("friction", 0.8),
		Elasticity: obj.Properties.GetFloat("elasticity", 0),
	}
	switch {
	case !closed || len(verts) < 3:
		body.Chain = true
	case isConvex(verts):
		body.Polygon = counterClockwise(verts)
	default:
		body.Chain = true
		body.Closed = true
	}
	if body.Polygon == nil {
		body.Polygon = verts
	}

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: cx, Y: cy, ScaleX: 1, ScaleY: 1}); err != nil {
		return false, fmt.Errorf("add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
		return false, fmt.Errorf("add physics body: %w", err)
	}
	return true, nil
}

func centroid(pts [][2]float64) (float64, float64) {
	var sx, sy float64
	for _, p := range pts {
		sx += p[0]
		sy += p[1]
	}
	n := float64(len(pts))
	return sx / n, sy / n
}

func signedArea(verts []cp.Vector) float64 {
	var a float64
	for i := range verts {
		j := (i + 1) % len(verts)
		a += verts[i].X*verts[j].Y - verts[j].X*verts[i].Y
	}
	return a / 2
}

func counterClockwise(verts []cp.Vector) []cp.Vector {
	if signedArea(verts) >= 0 {
		return verts
	}
	out := make([]cp.Vector, len(verts))
	for i, v := range verts {
		out[len(verts)-1-i] = v
	}
	return out
}

func isConvex(verts []cp.Vector) bool {
	n := len(verts)
	if n < 3 {
		return false
	}
	sign := 0
	for i := 0; i < n; i++ {
		a, b, c := verts[i], verts[(i+1)%n], verts[(i+2)%n]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		switch {
		case cross > 1e-9:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < -1e-9:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return sign != 0
}

// TileSprites hands out tile sprites: slices of the tileset image when the
// tileset has one, generated art colored by the tile's "color" property
// otherwise.
type TileSprites struct {
	m         *tiled.Map
	mapType   tilemap.Type
	sheets    map[*tiled.Tileset]*ebiten.Image
	generated map[uint32]*ebiten.Image
}

func NewTileSprites(m *tiled.Map) *TileSprites {
	return &TileSprites{
		m:         m,
		mapType:   MapType(m),
		sheets:    make(map[*tiled.Tileset]*ebiten.Image),
		generated: make(map[uint32]*ebiten.Image),
	}
}

func (c *TileSprites) Sprite(cell tiled.LayerTile) (component.Sprite, error) {
	ts, local, err := c.m.TilesetFor(cell.GID)
	if err != nil {
		return component.Sprite{}, err
	}

	tw, th := ts.TileWidth, ts.TileHeight
	if tw <= 0 {
		tw = c.m.TileWidth
	}
	if th <= 0 {
		th = c.m.TileHeight
	}

	sprite := component.Sprite{
		FlipX: cell.FlipH,
		FlipY: cell.FlipV,
		Alpha: 1,
	}

	if ts.Image != nil {
		sheet, err := c.sheet(ts)
		if err != nil {
			return component.Sprite{}, err
		}
		cols := ts.Columns
		if cols <= 0 {
			cols = (sheet.Bounds().Dx() - 2*ts.Margin + ts.Spacing) / (tw + ts.Spacing)
		}
		if cols <= 0 {
			return component.Sprite{}, fmt.Errorf("tileset %q: no columns", ts.Name)
		}
		col, row := int(local)%cols, int(local)/cols
		x := ts.Margin + col*(tw+ts.Spacing)
		y := ts.Margin + row*(th+ts.Spacing)
		sprite.Image = sheet
		sprite.Source = image.Rect(x, y, x+tw, y+th)
		sprite.UseSource = true
	} else {
		sprite.Image = c.generate(ts, local, cell.GID, tw, th)
	}

	// Tile images hang from the bottom of their cell.
	sprite.OriginX = float64(tw) / 2
	sprite.OriginY = float64(th) - float64(c.m.TileHeight)/2
	if ts.TileOffset != nil {
		sprite.OriginX -= ts.TileOffset.X
		sprite.OriginY -= ts.TileOffset.Y
	}
	return sprite, nil
}

func (c *TileSprites) sheet(ts *tiled.Tileset) (*ebiten.Image, error) {
	if img, ok := c.sheets[ts]; ok {
		return img, nil
	}
	img, err := assets.LoadImage(ts.Image.Path)
	if err != nil {
		return nil, fmt.Errorf("tileset %q: %w", ts.Name, err)
	}
	c.sheets[ts] = img
	return img, nil
}

func (c *TileSprites) generate(ts *tiled.Tileset, local, gid uint32, tw, th int) *ebiten.Image {
	if img, ok := c.generated[gid]; ok {
		return img
	}
	fill := color.Color(defaultTileColor)
	if def, ok := ts.Tile(local); ok {
		fill = def.Properties.GetColor("color", fill)
	}
	shape := assets.ShapeSquare
	if c.mapType.IsIsometric() {
		shape = assets.ShapeDiamond
	}
	img := assets.TileArt(shape, tw, th, fill)
	c.generated[gid] = img
	return img
}
