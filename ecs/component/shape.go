package component

import (
	"image/color"

	"github.com/milk9111/reacher/ecs"
)

// Shape is the debug draw colour of a collider box.
type Shape struct {
	Color color.RGBA
	Layer int
}

var ShapeComponent = ecs.NewComponent[Shape]()
