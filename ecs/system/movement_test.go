package system

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
)

func TestCameraMovementZoomClamp(t *testing.T) {
	cases := []struct {
		name    string
		key     ebiten.Key
		updates int
		want    float64
	}{
		{"zoom out once", ebiten.KeyZ, 1, 0.5},
		{"zoom out to min", ebiten.KeyZ, 5, 0.25},
		{"zoom in once", ebiten.KeyX, 1, 1.5},
		{"zoom in to max", ebiten.KeyX, 10, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			cam := newTestCamera(t, w, 0, 0, 1)
			keys := newFakeKeys()
			keys.tap(c.key)
			sys := NewCameraMovementSystem(keys, 1.0/60.0)
			for i := 0; i < c.updates; i++ {
				sys.Update(w)
			}
			got, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
			if math.Abs(got.Zoom-c.want) > 1e-9 {
				t.Fatalf("zoom = %v, want %v", got.Zoom, c.want)
			}
		})
	}
}

func TestCameraMovementPan(t *testing.T) {
	w := ecs.NewWorld()
	cam := newTestCamera(t, w, 0, 0, 2)
	keys := newFakeKeys()
	keys.tap(ebiten.KeyD, ebiten.KeyS)

	NewCameraMovementSystem(keys, 0.5).Update(w)

	tr, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	// 100 px/s for half a second at zoom 2, split across the diagonal.
	want := 25 / math.Sqrt2
	if math.Abs(tr.X-want) > 1e-9 || math.Abs(tr.Y-want) > 1e-9 {
		t.Fatalf("camera at (%v,%v), want (%v,%v)", tr.X, tr.Y, want, want)
	}
}

func TestInputSystem(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})

	keys := newFakeKeys()
	keys.tap(ebiten.KeyArrowLeft, ebiten.KeySpace)
	sys := NewInputSystem(keys)
	sys.Update(w)

	input, _ := ecs.Get(w, e, component.InputComponent.Kind())
	if input.MoveX != -1 || !input.Jump || !input.JumpPressed {
		t.Fatalf("unexpected input %+v", *input)
	}

	keys.release()
	keys.pressed[ebiten.KeyArrowDown] = true
	sys.Update(w)
	if input.MoveX != 0 || input.MoveY != 1 || input.Jump || input.JumpPressed {
		t.Fatalf("unexpected input after release %+v", *input)
	}
}

func newControlledPlayer(t *testing.T, w *ecs.World, grounded bool) (ecs.Entity, *cp.Body) {
	t.Helper()
	body := cp.NewBody(1, math.Inf(1))
	body.SetVelocity(3, 0)
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 200, JumpSpeed: 350, RestSpeed: 0.5})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body, Radius: 10, Grounded: grounded, LockRotation: true})
	return e, body
}

func TestPlayerController(t *testing.T) {
	cases := []struct {
		name     string
		input    component.Input
		grounded bool
		wantVX   float64
		wantVY   float64
	}{
		{"idle drift stops", component.Input{}, true, 0, 0},
		{"move right", component.Input{MoveX: 1}, true, 200, 0},
		{"jump when grounded", component.Input{JumpPressed: true, Jump: true}, true, 0, -350},
		{"no jump in the air", component.Input{JumpPressed: true, Jump: true}, false, 0, 0},
		{"drop", component.Input{MoveY: 1}, false, 0, 200},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e, body := newControlledPlayer(t, w, c.grounded)
			input, _ := ecs.Get(w, e, component.InputComponent.Kind())
			*input = c.input

			NewPlayerControllerSystem(10).Update(w)

			v := body.Velocity()
			if v.X != c.wantVX || v.Y != c.wantVY {
				t.Fatalf("velocity = (%v,%v), want (%v,%v)", v.X, v.Y, c.wantVX, c.wantVY)
			}
		})
	}
}

func TestPhysicsPlayerLandsOnGround(t *testing.T) {
	w := ecs.NewWorld()
	newResources(t, w)

	player := ecs.CreateEntity(w)
	mustAdd(t, w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, player, component.TransformComponent.Kind(), &component.Transform{X: 0, Y: 0})
	mustAdd(t, w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: 10, Mass: 1, Friction: 0.6, LockRotation: true})

	ground := ecs.CreateEntity(w)
	mustAdd(t, w, ground, component.TransformComponent.Kind(), &component.Transform{X: 0, Y: 100})
	mustAdd(t, w, ground, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 400, Height: 20, Static: true, Friction: 0.8})

	ps := NewPhysicsSystem(PhysicsSettings{Iterations: 10, FixedDT: 1.0 / 60.0})
	ps.Update(w)

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if body.Body == nil || body.Shape == nil {
		t.Fatal("expected the player to get a body")
	}
	if tr.Y <= 0 {
		t.Fatalf("player should fall with y-down gravity, y=%v", tr.Y)
	}
	if body.Grounded {
		t.Fatal("player should not be grounded mid-air")
	}

	for i := 0; i < 180; i++ {
		ps.Update(w)
	}
	// Ground top is at y=90, so the circle rests near y=80.
	if tr.Y < 75 || tr.Y > 85 {
		t.Fatalf("player resting at y=%v, want about 80", tr.Y)
	}
	if !body.Grounded {
		t.Fatal("player should be grounded after landing")
	}
	if tr.Rotation != 0 {
		t.Fatalf("locked player rotated to %v", tr.Rotation)
	}

	ground2, _ := ecs.Get(w, ground, component.TransformComponent.Kind())
	if ground2.Y != 100 {
		t.Fatal("static bodies must not be moved")
	}
}

func TestPhysicsRemovesDestroyedBodies(t *testing.T) {
	w := ecs.NewWorld()
	newResources(t, w)
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 10, Height: 10, Mass: 1})

	ps := NewPhysicsSystem(PhysicsSettings{})
	ps.Update(w)
	if len(ps.entities) != 1 {
		t.Fatalf("expected one tracked body, got %d", len(ps.entities))
	}

	ecs.DestroyEntity(w, e)
	ps.Update(w)
	if len(ps.entities) != 0 {
		t.Fatalf("expected body to be removed, %d left", len(ps.entities))
	}
}

func TestPhysicsStaticChain(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: 50, Y: 50})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Static: true,
		Chain:  true,
		Closed: true,
		Polygon: []cp.Vector{
			{X: -10, Y: -10}, {X: 10, Y: -10}, {X: 0, Y: 0}, {X: 10, Y: 10}, {X: -10, Y: 10},
		},
	})

	ps := NewPhysicsSystem(PhysicsSettings{})
	ps.Update(w)
	info := ps.entities[e]
	if info == nil || len(info.shapes) != 5 {
		t.Fatalf("expected 5 segments for a closed chain, got %+v", info)
	}
}
