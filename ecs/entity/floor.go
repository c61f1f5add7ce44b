package entity

import (
	"fmt"

	"github.com/milk9111/reacher/ecs"
	"github.com/milk9111/reacher/ecs/component"
	"github.com/milk9111/reacher/prefabs"
)

func NewFloor(w *ecs.World, spec *prefabs.FloorSpec) (ecs.Entity, error) {
	if w == nil || spec == nil {
		return 0, fmt.Errorf("floor: world and spec are required")
	}

	floor := ecs.CreateEntity(w)
	if err := ecs.Add(w, floor, component.FloorTagComponent, component.FloorTag{}); err != nil {
		return 0, fmt.Errorf("floor: add floor tag: %w", err)
	}
	if err := ecs.Add(w, floor, component.TransformComponent, component.Transform{Position: spec.Transform.Position.Vec3()}); err != nil {
		return 0, fmt.Errorf("floor: add transform: %w", err)
	}
	if err := ecs.Add(w, floor, component.ColliderComponent, component.Collider{
		HalfExtents: spec.Shape.HalfExtents.Vec3(),
		Static:      true,
		Friction:    spec.Friction,
	}); err != nil {
		return 0, fmt.Errorf("floor: add collider: %w", err)
	}
	if err := addShape(w, floor, spec.Shape); err != nil {
		return 0, fmt.Errorf("floor: add shape: %w", err)
	}

	return floor, nil
}
