package component

// RenderLayer is used to sort draw order deterministically.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()

// YSort draws entities of the same layer from the top of the screen down, so
// sprites further down overlap the ones behind them.
type YSort struct {
	// Offset is added to the transform's Y before sorting.
	Offset float64
}

var YSortComponent = NewComponent[YSort]()
