package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyState reports keyboard state. Systems read keys through it so tests can
// drive them without a window.
type KeyState interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
}

// EbitenKeys reads the live keyboard.
type EbitenKeys struct{}

func (EbitenKeys) Pressed(k ebiten.Key) bool {
	return ebiten.IsKeyPressed(k)
}

func (EbitenKeys) JustPressed(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}

func anyPressed(keys KeyState, ks ...ebiten.Key) bool {
	for _, k := range ks {
		if keys.Pressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys KeyState, ks ...ebiten.Key) bool {
	for _, k := range ks {
		if keys.JustPressed(k) {
			return true
		}
	}
	return false
}
