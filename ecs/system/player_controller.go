package system

import (
	"math"

	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
)

type PlayerControllerSystem struct {
	// lengthUnit scales Player.RestSpeed into pixels per second.
	lengthUnit float64
}

func NewPlayerControllerSystem(lengthUnit float64) *PlayerControllerSystem {
	if lengthUnit <= 0 {
		lengthUnit = 1
	}
	return &PlayerControllerSystem{lengthUnit: lengthUnit}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	)
	for _, e := range entities {
		player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok {
			continue
		}
		input, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || bodyComp.Body == nil {
			continue
		}

		vel := bodyComp.Body.Velocity()
		if input.MoveX != 0 {
			vel.X = input.MoveX * player.MoveSpeed
		} else if math.Abs(vel.X) < player.RestSpeed*p.lengthUnit {
			vel.X = 0
		}

		if input.JumpPressed && bodyComp.Grounded {
			vel.Y = -player.JumpSpeed
		}
		if input.MoveY > 0 && vel.Y < player.MoveSpeed {
			vel.Y = player.MoveSpeed
		}

		bodyComp.Body.SetVelocityVector(vel)
		if bodyComp.LockRotation {
			bodyComp.Body.SetAngle(0)
			bodyComp.Body.SetAngularVelocity(0)
		}
	}
}
