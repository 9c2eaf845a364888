// Command tmxinfo prints a summary of a Tiled map and resolves map-local
// points to tiles.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/milk9111/isotiled/assets"
	"github.com/milk9111/isotiled/ecs/entity"
	"github.com/milk9111/isotiled/tiled"
	"github.com/milk9111/isotiled/tilemap"
)

func main() {
	mapPath := flag.String("map", "testmap/untitled.tmx", "map path under assets/")
	at := flag.String("at", "", "map-local point \"x,y\" to resolve to a tile")
	preview := flag.Bool("preview", false, "open a window cycling through the map's tiles")
	fps := flag.Int("fps", 2, "tiles per second in preview")
	flag.Parse()

	m, err := tiled.Load(assets.FS(), *mapPath)
	if err != nil {
		log.Fatal(err)
	}
	summarize(os.Stdout, m)

	if *at != "" {
		x, y, err := parsePoint(*at)
		if err != nil {
			log.Fatal(err)
		}
		if pos, ok := resolve(m, x, y); ok {
			fmt.Printf("(%g, %g) -> tile %s\n", x, y, pos)
		} else {
			fmt.Printf("(%g, %g) -> outside the map\n", x, y)
		}
	}

	if *preview {
		if err := runPreview(m, *fps); err != nil {
			log.Fatal(err)
		}
	}
}

func summarize(w io.Writer, m *tiled.Map) {
	typ := entity.MapType(m)
	fmt.Fprintf(w, "map %s\n", m.Path)
	fmt.Fprintf(w, "  orientation %s (%s), %dx%d tiles of %dx%d\n", m.Orientation, typ, m.Width, m.Height, m.TileWidth, m.TileHeight)
	pw, ph := tilemap.PixelSize(
		tilemap.Size{X: m.Width, Y: m.Height},
		tilemap.GridSize{X: float64(m.TileWidth), Y: float64(m.TileHeight)},
		typ,
	)
	fmt.Fprintf(w, "  bounds %gx%g px\n", pw, ph)

	for _, ts := range m.Tilesets {
		art := "generated art"
		if ts.Image != nil {
			art = "image " + ts.Image.Source
		}
		fmt.Fprintf(w, "  tileset %q: first gid %d, %d tiles, %s\n", ts.Name, ts.FirstGID, ts.TileCount, art)
	}

	for i, layer := range m.Layers {
		used := 0
		for _, cell := range layer.Tiles {
			if !cell.Empty() {
				used++
			}
		}
		hidden := ""
		if !layer.IsVisible() {
			hidden = ", hidden"
		}
		fmt.Fprintf(w, "  layer %d %q: %dx%d, %d tiles%s\n", i, layer.Name, layer.Width, layer.Height, used, hidden)
	}

	for _, group := range m.ObjectGroups {
		kinds := map[string]int{}
		for _, obj := range group.Objects {
			kinds[obj.Shape().String()]++
		}
		fmt.Fprintf(w, "  objects %q: %d objects %s\n", group.Name, len(group.Objects), formatCounts(kinds))
	}
}

func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(counts))
	for _, name := range []string{"rectangle", "ellipse", "point", "polygon", "polyline", "tile"} {
		if n := counts[name]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, name))
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// resolve maps a point relative to tile (0,0)'s center to a tile, the same
// way the hover highlight does.
func resolve(m *tiled.Map, x, y float64) (tilemap.TilePos, bool) {
	size := tilemap.Size{X: m.Width, Y: m.Height}
	grid := tilemap.GridSize{X: float64(m.TileWidth), Y: float64(m.TileHeight)}
	return tilemap.FromWorldPos(x, y, size, grid, entity.MapType(m))
}

func parsePoint(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	return x, y, nil
}
