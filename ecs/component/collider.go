package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/reacher/ecs"
)

// Collider is an axis-aligned box centred on the entity transform.
type Collider struct {
	HalfExtents mgl64.Vec3
	Static      bool
	Friction    float64
}

func (c Collider) Size() mgl64.Vec3 {
	return c.HalfExtents.Mul(2)
}

var ColliderComponent = ecs.NewComponent[Collider]()
