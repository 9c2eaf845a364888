package tiled

import (
	"fmt"
	"image/color"
	"io/fs"
	"path"
	"sort"

	gotiled "github.com/lafriks/go-tiled"
)

// Load reads a .tmx file and the tilesets it references from fsys.
func Load(fsys fs.FS, name string) (*Map, error) {
	src, err := gotiled.LoadFile(name, gotiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("tiled: load %s: %w", name, err)
	}

	m, err := convertMap(src, path.Dir(name))
	if err != nil {
		return nil, fmt.Errorf("tiled: %s: %w", name, err)
	}
	m.Path = name

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("tiled: %s: %w", name, err)
	}
	return m, nil
}

func convertMap(src *gotiled.Map, dir string) (*Map, error) {
	m := &Map{
		Orientation:  Orientation(src.Orientation),
		Width:        src.Width,
		Height:       src.Height,
		TileWidth:    src.TileWidth,
		TileHeight:   src.TileHeight,
		StaggerAxis:  string(src.StaggerAxis),
		StaggerIndex: string(src.StaggerIndex),
		Infinite:     src.Infinite,
		Properties:   convertProperties(src.Properties),
	}
	if src.BackgroundColor != nil {
		m.BackgroundColor = color.NRGBAModel.Convert(src.BackgroundColor)
	}

	for _, ts := range src.Tilesets {
		m.Tilesets = append(m.Tilesets, convertTileset(ts, dir))
	}
	sort.SliceStable(m.Tilesets, func(i, j int) bool {
		return m.Tilesets[i].FirstGID < m.Tilesets[j].FirstGID
	})

	for _, l := range src.Layers {
		layer, err := convertLayer(l, m.Width, m.Height)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", l.Name, err)
		}
		m.Layers = append(m.Layers, layer)
	}

	for _, g := range src.ObjectGroups {
		group := &ObjectGroup{
			ID:         int(g.ID),
			Name:       g.Name,
			OffsetX:    float64(g.OffsetX),
			OffsetY:    float64(g.OffsetY),
			Visible:    g.Visible,
			Properties: convertProperties(g.Properties),
		}
		for _, o := range g.Objects {
			group.Objects = append(group.Objects, convertObject(o))
		}
		m.ObjectGroups = append(m.ObjectGroups, group)
	}
	return m, nil
}

// convertTileset resolves the image path against the .tsx file for external
// tilesets and against the map otherwise.
func convertTileset(ts *gotiled.Tileset, mapDir string) *Tileset {
	dir := mapDir
	if ts.Source != "" {
		dir = path.Dir(path.Join(mapDir, ts.Source))
	}

	out := &Tileset{
		FirstGID:   ts.FirstGID,
		Source:     ts.Source,
		Name:       ts.Name,
		TileWidth:  ts.TileWidth,
		TileHeight: ts.TileHeight,
		Spacing:    ts.Spacing,
		Margin:     ts.Margin,
		TileCount:  ts.TileCount,
		Columns:    ts.Columns,
		Properties: convertProperties(ts.Properties),
	}
	if ts.Image != nil && ts.Image.Source != "" {
		out.Image = &Image{
			Source: ts.Image.Source,
			Path:   path.Join(dir, ts.Image.Source),
			Width:  ts.Image.Width,
			Height: ts.Image.Height,
		}
	}
	if ts.TileOffset != nil {
		out.TileOffset = &Offset{X: float64(ts.TileOffset.X), Y: float64(ts.TileOffset.Y)}
	}
	for _, t := range ts.Tiles {
		out.Tiles = append(out.Tiles, &TileDef{
			ID:         t.ID,
			Type:       t.Type,
			Properties: convertProperties(t.Properties),
		})
	}
	return out
}

func convertLayer(l *gotiled.Layer, width, height int) (*Layer, error) {
	if len(l.Tiles) != width*height {
		return nil, fmt.Errorf("layer data has %d cells, want %d", len(l.Tiles), width*height)
	}

	out := &Layer{
		ID:         int(l.ID),
		Name:       l.Name,
		Width:      width,
		Height:     height,
		OffsetX:    float64(l.OffsetX),
		OffsetY:    float64(l.OffsetY),
		Opacity:    float64(l.Opacity),
		Visible:    l.Visible,
		Properties: convertProperties(l.Properties),
		Tiles:      make([]LayerTile, len(l.Tiles)),
	}
	for i, cell := range l.Tiles {
		if cell == nil || cell.Nil {
			continue
		}
		if cell.Tileset == nil {
			return nil, fmt.Errorf("%w: cell %d", ErrMissingTileset, i)
		}
		out.Tiles[i] = LayerTile{
			GID:   cell.Tileset.FirstGID + cell.ID,
			FlipH: cell.HorizontalFlip,
			FlipV: cell.VerticalFlip,
			FlipD: cell.DiagonalFlip,
		}
	}
	return out, nil
}

func convertObject(o *gotiled.Object) *Object {
	obj := &Object{
		ID:         int(o.ID),
		Name:       o.Name,
		Type:       o.Type,
		X:          float64(o.X),
		Y:          float64(o.Y),
		Width:      float64(o.Width),
		Height:     float64(o.Height),
		Rotation:   float64(o.Rotation),
		GID:        uint32(o.GID),
		Visible:    o.Visible,
		Properties: convertProperties(o.Properties),
	}

	switch {
	case obj.GID != 0:
		obj.shape = ShapeTile
	case len(o.Ellipses) > 0:
		obj.shape = ShapeEllipse
	case len(o.Polygons) > 0:
		obj.shape = ShapePolygon
		obj.Points = convertPoints(o.Polygons[0].Points)
	case len(o.PolyLines) > 0:
		obj.shape = ShapePolyline
		obj.Points = convertPoints(o.PolyLines[0].Points)
	case obj.Width == 0 && obj.Height == 0:
		// Point objects and empty rectangles both land here.
		obj.shape = ShapePoint
	}
	return obj
}

func convertPoints(src *gotiled.Points) [][2]float64 {
	if src == nil {
		return nil
	}
	out := make([][2]float64, 0, len(*src))
	for _, p := range *src {
		out = append(out, [2]float64{float64(p.X), float64(p.Y)})
	}
	return out
}

func (m *Map) validate() error {
	if m.Infinite {
		return ErrInfiniteMap
	}
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("invalid map dimensions: %dx%d", m.Width, m.Height)
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return fmt.Errorf("invalid tile size: %dx%d", m.TileWidth, m.TileHeight)
	}
	switch m.Orientation {
	case Orthogonal, Isometric:
	case Staggered:
		if m.StaggerAxis == "x" {
			return fmt.Errorf("staggered maps must stagger on the y axis")
		}
	default:
		return fmt.Errorf("unsupported orientation %q", m.Orientation)
	}
	return nil
}

// TilesetFor returns the tileset owning gid and the tile's local id.
func (m *Map) TilesetFor(gid uint32) (*Tileset, uint32, error) {
	if gid == 0 {
		return nil, 0, ErrMissingTileset
	}
	var owner *Tileset
	for _, ts := range m.Tilesets {
		if ts.FirstGID <= gid {
			owner = ts
		}
	}
	if owner == nil {
		return nil, 0, fmt.Errorf("%w: %d", ErrMissingTileset, gid)
	}
	local := gid - owner.FirstGID
	if owner.TileCount > 0 && int(local) >= owner.TileCount {
		return nil, 0, fmt.Errorf("%w: %d", ErrMissingTileset, gid)
	}
	return owner, local, nil
}

// Tile returns the metadata for a local tile id, if the tileset has any.
func (ts *Tileset) Tile(local uint32) (*TileDef, bool) {
	for _, t := range ts.Tiles {
		if t.ID == local {
			return t, true
		}
	}
	return nil, false
}
