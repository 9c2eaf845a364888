package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// HighlightedLabel marks a tile whose label is currently drawn in the hover color.
type HighlightedLabel struct{}

var HighlightedLabelComponent = NewComponent[HighlightedLabel]()
