package entity

import (
	"fmt"

	"github.com/milk9111/reacher/ecs"
	"github.com/milk9111/reacher/ecs/component"
	"github.com/milk9111/reacher/prefabs"
)

// NewHand creates a follower that reaches toward the cursor from actor.
func NewHand(w *ecs.World, actor ecs.Entity, spec *prefabs.HandSpec) (ecs.Entity, error) {
	if w == nil || spec == nil {
		return 0, fmt.Errorf("hand: world and spec are required")
	}
	if !w.IsAlive(actor) {
		return 0, fmt.Errorf("hand: actor %s: %w", actor, ecs.ErrEntityNotAlive)
	}

	hand := ecs.CreateEntity(w)
	adds := []struct {
		name string
		add  func() error
	}{
		{"follower", func() error {
			return ecs.Add(w, hand, component.FollowerComponent, component.Follower{
				Actor:       actor,
				ReachRadius: spec.ReachRadius,
			})
		}},
		{"transform", func() error {
			return ecs.Add(w, hand, component.TransformComponent, component.Transform{Position: spec.Transform.Position.Vec3()})
		}},
		// Drawn only; without a kinematic controller the collider never gets a body.
		{"collider", func() error {
			return ecs.Add(w, hand, component.ColliderComponent, component.Collider{HalfExtents: spec.Shape.HalfExtents.Vec3()})
		}},
		{"shape", func() error { return addShape(w, hand, spec.Shape) }},
	}
	for _, a := range adds {
		if err := a.add(); err != nil {
			ecs.DestroyEntity(w, hand)
			return 0, fmt.Errorf("hand: add %s: %w", a.name, err)
		}
	}

	return hand, nil
}
