package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeSolid
)

const chainRadius = 1.0

// PhysicsSettings configures the Chipmunk space.
type PhysicsSettings struct {
	Iterations uint
	// FixedDT is the step length in seconds.
	FixedDT float64
}

// PhysicsSystem mirrors PhysicsBody components into a cp.Space, steps it and
// writes dynamic body positions back to their transforms.
type PhysicsSystem struct {
	space         *cp.Space
	settings      PhysicsSettings
	handlersReady bool

	entities     map[ecs.Entity]*bodyInfo
	playerShapes map[*cp.Shape]ecs.Entity
	grounded     map[ecs.Entity]bool
}

type bodyInfo struct {
	body      *cp.Body
	mainShape *cp.Shape
	shapes    []*cp.Shape
	static    bool
}

func NewPhysicsSystem(settings PhysicsSettings) *PhysicsSystem {
	if settings.Iterations == 0 {
		settings.Iterations = 10
	}
	if settings.FixedDT <= 0 {
		settings.FixedDT = 1.0 / 60.0
	}
	space := cp.NewSpace()
	space.Iterations = settings.Iterations
	return &PhysicsSystem{
		space:        space,
		settings:     settings,
		entities:     make(map[ecs.Entity]*bodyInfo),
		playerShapes: make(map[*cp.Shape]ecs.Entity),
		grounded:     make(map[ecs.Entity]bool),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	if res, ok := w.First(component.GravityComponent.Kind()); ok {
		if g, ok := ecs.Get(w, res, component.GravityComponent.Kind()); ok {
			ps.space.SetGravity(cp.Vector{X: g.X, Y: g.Y})
		}
	}

	ps.ensureHandlers()
	ps.syncEntities(w)

	for e := range ps.grounded {
		ps.grounded[e] = false
	}
	ps.space.Step(ps.settings.FixedDT)

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	handler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeSolid)
	handler.UserData = ps
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		player, playerIsA := sys.playerShapes[shapeA]
		if !playerIsA {
			var okB bool
			player, okB = sys.playerShapes[shapeB]
			if !okB {
				return true
			}
		}

		n := arb.Normal()
		if !playerIsA {
			n = n.Neg()
		}
		// The normal points from the player into the surface; y is down.
		if n.Y > 0.5 {
			sys.grounded[player] = true
		}
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			bodyComp.Body = info.body
			bodyComp.Shape = info.mainShape
			return
		}

		isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())
		info := ps.createBodyInfo(*transform, *bodyComp, isPlayer)
		if info == nil || info.mainShape == nil {
			return
		}

		ps.entities[e] = info
		if isPlayer {
			ps.playerShapes[info.mainShape] = e
			ps.grounded[e] = false
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
	})
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody, isPlayer bool) *bodyInfo {
	if bodyComp.Static {
		return ps.createStatic(transform, bodyComp)
	}

	width, height, radius := bodyComp.Width, bodyComp.Height, bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		return nil
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	moment := math.Inf(1)
	if !bodyComp.LockRotation {
		if radius > 0 {
			moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
		} else {
			moment = cp.MomentForBox(mass, width, height)
		}
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)
	body.SetAngularVelocity(0)

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeSolid)
	if isPlayer {
		shape.SetCollisionType(collisionTypePlayer)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	return &bodyInfo{body: body, mainShape: shape, shapes: []*cp.Shape{shape}}
}

// createStatic attaches shapes in world coordinates to the space's static
// body.
func (ps *PhysicsSystem) createStatic(transform component.Transform, bodyComp component.PhysicsBody) *bodyInfo {
	static := ps.space.StaticBody
	info := &bodyInfo{body: static, static: true}

	world := func(v cp.Vector) cp.Vector {
		x, y := transform.Apply(v.X, v.Y)
		return cp.Vector{X: x, Y: y}
	}

	switch {
	case len(bodyComp.Polygon) >= 2 && bodyComp.Chain:
		n := len(bodyComp.Polygon)
		last := n - 1
		if bodyComp.Closed {
			last = n
		}
		for i := 0; i < last; i++ {
			a := world(bodyComp.Polygon[i])
			b := world(bodyComp.Polygon[(i+1)%n])
			info.shapes = append(info.shapes, cp.NewSegment(static, a, b, chainRadius))
		}
	case len(bodyComp.Polygon) >= 3:
		verts := make([]cp.Vector, len(bodyComp.Polygon))
		for i, v := range bodyComp.Polygon {
			verts[i] = world(v)
		}
		info.shapes = append(info.shapes, cp.NewPolyShapeRaw(static, len(verts), verts, 0))
	case bodyComp.Radius > 0:
		info.shapes = append(info.shapes, cp.NewCircle(static, bodyComp.Radius, cp.Vector{X: transform.X, Y: transform.Y}))
	case bodyComp.Width > 0 && bodyComp.Height > 0:
		bb := cp.BB{
			L: transform.X - bodyComp.Width/2,
			B: transform.Y - bodyComp.Height/2,
			R: transform.X + bodyComp.Width/2,
			T: transform.Y + bodyComp.Height/2,
		}
		info.shapes = append(info.shapes, cp.NewBox2(static, bb, 0))
	default:
		return nil
	}

	for _, shape := range info.shapes {
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
	}
	info.mainShape = info.shapes[0]
	return info
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = bodyComp.Body.Angle()
		if _, tracked := ps.grounded[e]; tracked {
			bodyComp.Grounded = ps.grounded[e]
		}
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}

		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.playerShapes, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}

		delete(ps.entities, e)
		delete(ps.grounded, e)
	}
}
