package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
)

type InputSystem struct {
	keys KeyState
}

func NewInputSystem(keys KeyState) *InputSystem {
	if keys == nil {
		keys = EbitenKeys{}
	}
	return &InputSystem{keys: keys}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	const stickDeadzone = 0.2

	moveX, moveY := 0.0, 0.0
	if i.keys.Pressed(ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if i.keys.Pressed(ebiten.KeyArrowRight) {
		moveX += 1
	}
	if i.keys.Pressed(ebiten.KeyArrowDown) {
		moveY += 1
	}
	jump := anyPressed(i.keys, ebiten.KeyArrowUp, ebiten.KeySpace)
	jumpPressed := anyJustPressed(i.keys, ebiten.KeyArrowUp, ebiten.KeySpace)

	if _, live := i.keys.(EbitenKeys); live {
		if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
			id := gamepads[0]
			leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
			if math.Abs(leftX) > stickDeadzone {
				moveX = leftX
			}
			jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
			jumpPressed = jumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		}
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.MoveY = moveY
		input.Jump = jump
		input.JumpPressed = jumpPressed
	})
}
