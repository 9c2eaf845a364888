package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isotiled/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "draw physics shapes and map object outlines")
	inspector := flag.Bool("inspector", false, "show the world inspector")
	watch := flag.Bool("watch", false, "rebuild the world when prefabs, scripts or maps change on disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	mapPath := flag.String("map", "", "map path under assets/ (defaults to the first configured map)")
	flag.Parse()

	cfg, err := prefabs.LoadAppSpec()
	if err != nil {
		log.Fatal(err)
	}
	if *debug {
		cfg.Debug.Physics = true
		cfg.Debug.MapObjects = true
	}
	if *inspector {
		cfg.Debug.Inspector = true
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game, err := NewGame(cfg, *mapPath)
	if err != nil {
		log.Fatal(err)
	}
	if *watch {
		if err := game.Watch(); err != nil {
			log.Printf("watch: %v", err)
		}
	}

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
