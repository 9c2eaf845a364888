package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Polygon vertices are relative to the transform.
type PhysicsBody struct {
	Body    *cp.Body
	Shape   *cp.Shape
	Width   float64
	Height  float64
	Radius  float64
	Polygon []cp.Vector
	// Chain builds Polygon as a run of segments instead of one convex
	// shape. Closed joins the last vertex back to the first.
	Chain        bool
	Closed       bool
	Mass         float64
	Friction     float64
	Elasticity   float64
	Static       bool
	LockRotation bool
	// Grounded is written by the physics system after each step.
	Grounded bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
