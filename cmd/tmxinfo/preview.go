package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/isotiled/ecs/component"
	"github.com/milk9111/isotiled/ecs/entity"
	"github.com/milk9111/isotiled/tiled"
)

const previewSize = 256

type previewFrame struct {
	gid    uint32
	sprite component.Sprite
}

// previewGame cycles through every tile of the map's tilesets.
type previewGame struct {
	frames      []previewFrame
	current     int
	tick        int
	ticksPerFrm int
}

func (g *previewGame) Update() error {
	if len(g.frames) <= 1 {
		return nil
	}
	g.tick++
	if g.tick >= g.ticksPerFrm {
		g.tick = 0
		g.current = (g.current + 1) % len(g.frames)
	}
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x20, 0xff})
	if len(g.frames) == 0 {
		ebitenutil.DebugPrint(screen, "no tiles")
		return
	}
	frame := g.frames[g.current]
	img := frame.sprite.Image
	if frame.sprite.UseSource {
		if sub, ok := img.SubImage(frame.sprite.Source).(*ebiten.Image); ok {
			img = sub
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(img.Bounds().Dx())/2, -float64(img.Bounds().Dy())/2)
	op.GeoM.Scale(2, 2)
	op.GeoM.Translate(previewSize/2, previewSize/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("gid %d (%d/%d)", frame.gid, g.current+1, len(g.frames)))
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return previewSize, previewSize
}

func loadPreviewFrames(m *tiled.Map) ([]previewFrame, error) {
	sprites := entity.NewTileSprites(m)
	var frames []previewFrame
	for _, ts := range m.Tilesets {
		for local := 0; local < ts.TileCount; local++ {
			gid := ts.FirstGID + uint32(local)
			sprite, err := sprites.Sprite(tiled.LayerTile{GID: gid})
			if err != nil {
				return nil, fmt.Errorf("gid %d: %w", gid, err)
			}
			frames = append(frames, previewFrame{gid: gid, sprite: sprite})
		}
	}
	return frames, nil
}

func runPreview(m *tiled.Map, fps int) error {
	frames, err := loadPreviewFrames(m)
	if err != nil {
		return err
	}
	ticks := 1
	if fps > 0 {
		ticks = max(60/fps, 1)
	}

	ebiten.SetWindowSize(previewSize*2, previewSize*2)
	ebiten.SetWindowTitle("tmxinfo: " + m.Path)
	return ebiten.RunGame(&previewGame{frames: frames, ticksPerFrm: ticks})
}
