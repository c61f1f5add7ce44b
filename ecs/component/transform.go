package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/reacher/ecs"
)

// Transform is the world-space position of an entity. The movement plane is
// XY with +Y up; Z is depth toward the camera.
type Transform struct {
	Position mgl64.Vec3
}

var TransformComponent = ecs.NewComponent[Transform]()
