package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/isotiled/assets"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/entity"
	"github.com/milk9111/isotiled/ecs/system"
	"github.com/milk9111/isotiled/prefabs"
	"github.com/milk9111/isotiled/tiled"
	"github.com/milk9111/isotiled/tilemap"
	"golang.org/x/image/colornames"
)

type Game struct {
	cfg      *prefabs.AppSpec
	mapIndex int
	keys     system.KeyState

	world        *ecs.World
	scheduler    *ecs.Scheduler
	physicsDebug *system.PhysicsDebugSystem
	mapDebug     *system.MapDebugSystem
	events       *system.EventLogSystem
	background   color.Color

	debug         bool
	showInspector bool
	inspector     *Inspector

	watcher *prefabs.Watcher
	reload  bool
	frames  int
}

// NewGame builds the first world. mapPath picks a configured map; an unknown
// path is appended to the map list so N still cycles through every map.
func NewGame(cfg *prefabs.AppSpec, mapPath string) (*Game, error) {
	g := &Game{
		cfg:           cfg,
		keys:          system.EbitenKeys{},
		debug:         cfg.Debug.Physics || cfg.Debug.MapObjects,
		showInspector: cfg.Debug.Inspector,
	}
	if mapPath != "" {
		g.mapIndex = cfg.MapIndex(mapPath)
		if g.mapIndex < 0 {
			cfg.Maps = append(cfg.Maps, prefabs.MapSpec{Path: mapPath, Title: filepath.Base(mapPath)})
			g.mapIndex = len(cfg.Maps) - 1
		}
	}
	g.inspector = NewInspector(g)

	if err := g.rebuild(); err != nil {
		return nil, err
	}
	return g, nil
}

// rebuild replaces the world with a fresh one for the current map. The old
// world is kept when anything fails.
func (g *Game) rebuild() error {
	mapSpec := g.cfg.Maps[g.mapIndex]
	m, err := tiled.Load(assets.FS(), mapSpec.Path)
	if err != nil {
		return fmt.Errorf("load map %s: %w", mapSpec.Path, err)
	}

	face, err := assets.LoadFontFace(g.cfg.Labels.FontSize)
	if err != nil {
		return fmt.Errorf("load label font: %w", err)
	}

	var format *system.LabelFormatter
	if g.cfg.Labels.Script != "" {
		format, err = system.LoadLabelFormatter(g.cfg.Labels.Script)
		if err != nil {
			log.Printf("labels: %v; using plain coordinates", err)
			format = nil
		}
	}

	w := ecs.NewWorld()
	settings := entity.MapSettings{
		Positioning: tilemap.ParsePositioning(g.cfg.Map.Positioning),
		YSort:       g.cfg.Map.YSort,
	}
	spawned, err := entity.SpawnTiledMap(w, m, settings)
	if err != nil {
		return fmt.Errorf("spawn map %s: %w", mapSpec.Path, err)
	}
	log.Printf("map %s (%s): %d layers, %d tiles, %d objects, %d colliders",
		mapSpec.Path, entity.MapType(m), len(spawned.Tilemaps), spawned.Tiles, spawned.Objects, spawned.Colliders)

	camX, camY := mapCenter(m, settings.Positioning)
	if _, err := entity.NewCameraAt(w, float64(g.cfg.Window.Width), float64(g.cfg.Window.Height), camX, camY); err != nil {
		return fmt.Errorf("spawn camera: %w", err)
	}
	if _, err := entity.SpawnPlayer(w, g.cfg.Player.Size, g.cfg.Player.X, g.cfg.Player.Y); err != nil {
		return fmt.Errorf("spawn player: %w", err)
	}
	if _, err := entity.NewResources(w, entity.ResourceConfig{
		CursorX:  g.cfg.Cursor.X,
		CursorY:  g.cfg.Cursor.Y,
		Font:     face,
		FontSize: g.cfg.Labels.FontSize,
		GravityX: g.cfg.Physics.GravityX,
		GravityY: g.cfg.Physics.GravityY,
		MapPath:  mapSpec.Path,
		MapTitle: mapSpec.Title,
		MapIndex: g.mapIndex,
	}); err != nil {
		return err
	}

	physics := system.NewPhysicsSystem(system.PhysicsSettings{
		Iterations: g.cfg.Physics.Iterations,
		FixedDT:    g.cfg.Physics.FixedDT,
	})
	physicsDebug := system.NewPhysicsDebugSystem(physics, false)
	mapDebug := system.NewMapDebugSystem(false)
	events := system.NewEventLogSystem()

	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(g.keys),
		system.NewCameraMovementSystem(g.keys, g.cfg.Physics.FixedDT),
		system.NewPlayerControllerSystem(g.cfg.Physics.LengthUnit),
		physics,
		system.NewTileLabelSystem(format, g.cfg.Labels.Color.Or(color.Black)),
		system.NewCursorSystem(nil),
		system.NewHighlightSystem(g.cfg.Labels.Color.Or(color.Black), g.cfg.Labels.HighlightColor.Or(nil)),
		system.NewClipboardSystem(g.keys, nil),
		events,
		system.NewRenderSystem(),
		system.NewLabelRenderSystem(),
		physicsDebug,
		mapDebug,
	)
	g.world = w
	g.physicsDebug = physicsDebug
	g.mapDebug = mapDebug
	g.events = events
	g.setDebug(g.debug)
	g.background = colornames.Whitesmoke
	if m.BackgroundColor != nil {
		g.background = m.BackgroundColor
	}
	return nil
}

// mapCenter returns the world position of the middle of the map's grid.
func mapCenter(m *tiled.Map, positioning tilemap.Positioning) (float64, float64) {
	size := tilemap.Size{X: m.Width, Y: m.Height}
	grid := tilemap.GridSize{X: float64(m.TileWidth), Y: float64(m.TileHeight)}
	typ := entity.MapType(m)
	ox, oy := positioning.Origin(size, grid, typ)

	first := tilemap.TilePos{}
	last := tilemap.TilePos{X: size.X - 1, Y: size.Y - 1}
	x0, y0 := first.CenterInWorld(grid, typ)
	x1, y1 := last.CenterInWorld(grid, typ)
	return ox + (x0+x1)/2, oy + (y0+y1)/2
}

// Watch rebuilds the world whenever a prefab, script or map changes on disk.
func (g *Game) Watch() error {
	var dirs []string
	for _, dir := range []string{
		prefabs.Dir,
		filepath.Join(prefabs.Dir, "scripts"),
		assets.Dir,
		filepath.Join(assets.Dir, "testmap"),
	} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no %s or %s directory to watch", prefabs.Dir, assets.Dir)
	}

	watcher, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	g.watcher = watcher
	log.Printf("watching %v", dirs)
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("watch: close: %v", err)
		}
		g.watcher = nil
	}
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("reload: %s changed", path)
			g.reloadConfig()
			g.reload = true
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

// reloadConfig re-reads app.yaml, keeping the current map when it is still listed.
func (g *Game) reloadConfig() {
	cfg, err := prefabs.LoadAppSpec()
	if err != nil {
		log.Printf("reload: %v", err)
		return
	}
	current := g.cfg.Maps[g.mapIndex].Path
	g.cfg = cfg
	g.mapIndex = cfg.MapIndex(current)
	if g.mapIndex < 0 {
		cfg.Maps = append(cfg.Maps, prefabs.MapSpec{Path: current, Title: filepath.Base(current)})
		g.mapIndex = len(cfg.Maps) - 1
	}
}

// setDebug toggles the overlays enabled in config, or both when config
// enables neither.
func (g *Game) setDebug(on bool) {
	g.debug = on
	physics, objects := g.cfg.Debug.Physics, g.cfg.Debug.MapObjects
	if !physics && !objects {
		physics, objects = true, true
	}
	g.physicsDebug.Enabled = on && physics
	g.mapDebug.Enabled = on && objects
	g.events.Verbose = on
}

func (g *Game) nextMap() {
	g.mapIndex = (g.mapIndex + 1) % len(g.cfg.Maps)
	g.reload = true
}

func (g *Game) Update() error {
	g.frames++

	if g.keys.JustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.keys.JustPressed(ebiten.KeyF1) {
		g.showInspector = !g.showInspector
	}
	if g.keys.JustPressed(ebiten.KeyF3) {
		g.setDebug(!g.debug)
	}
	if g.keys.JustPressed(ebiten.KeyN) {
		g.nextMap()
	}

	g.drainWatcher()
	if g.reload {
		g.reload = false
		if err := g.rebuild(); err != nil {
			log.Printf("rebuild: %v", err)
		}
	}

	if g.showInspector {
		g.inspector.Refresh(g.world, g.events)
		g.inspector.ui.Update()
	}

	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.scheduler.Draw(g.world, screen)

	if g.showInspector {
		g.inspector.ui.Draw(screen)
	}

	mapSpec := g.cfg.Maps[g.mapIndex]
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f    %s (%d/%d, N: next map)", ebiten.ActualFPS(), mapSpec.Title, g.mapIndex+1, len(g.cfg.Maps)))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
