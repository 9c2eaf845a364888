package component

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Text is a world-space string drawn at the entity's transform.
type Text struct {
	Value string
	Color color.Color
	Face  text.Face
	Align text.Align
}

var TextComponent = NewComponent[Text]()
