package system

import (
	"fmt"

	"github.com/milk9111/reacher/common"
	"github.com/milk9111/reacher/ecs"
	"github.com/milk9111/reacher/ecs/component"
)

// FollowerSystem places every follower where the cursor ray meets the plane
// through its actor facing the camera, clamped to the follower's reach
// radius. Followers keep their last position while the pointer is invalid or
// the ray misses the plane.
type FollowerSystem struct{}

func NewFollowerSystem() *FollowerSystem {
	return &FollowerSystem{}
}

func (f *FollowerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	camEntity, ok := w.First(
		component.CameraComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PointerComponent.Kind(),
	)
	if !ok {
		return
	}
	pointer, _ := ecs.Get(w, camEntity, component.PointerComponent)
	if !pointer.Valid {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent)
	camTransform, _ := ecs.Get(w, camEntity, component.TransformComponent)

	eye := camTransform.Position
	ray, rayOK := cam.ViewportRay(eye, pointer.Position)
	forward := cam.Forward(eye)

	ecs.ForEach2(w, component.FollowerComponent, component.TransformComponent, func(e ecs.Entity, follower *component.Follower, transform *component.Transform) {
		actor, ok := ecs.Get(w, follower.Actor, component.TransformComponent)
		if !ok {
			panic(fmt.Errorf("follower system: follower %s: actor %s: %w", e, follower.Actor, ErrActorNotFound))
		}
		if !rayOK {
			return
		}

		dist, ok := ray.IntersectPlane(actor.Position, forward)
		if !ok {
			return
		}
		transform.Position = common.ClampToRadius(actor.Position, ray.At(dist), follower.ReachRadius)
	})
}
