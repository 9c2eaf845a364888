package component

type Player struct {
	MoveSpeed float64
	JumpSpeed float64
	// RestSpeed is multiplied by the physics length unit; slower horizontal
	// drift with no input is zeroed.
	RestSpeed float64
}

var PlayerComponent = NewComponent[Player]()
