package entity

import (
	"fmt"

	"github.com/milk9111/reacher/ecs"
	"github.com/milk9111/reacher/ecs/component"
	"github.com/milk9111/reacher/prefabs"
)

// NewPlayer creates the actor: a kinematic box driven by action input.
func NewPlayer(w *ecs.World, spec *prefabs.PlayerSpec) (ecs.Entity, error) {
	if w == nil || spec == nil {
		return 0, fmt.Errorf("player: world and spec are required")
	}

	mode, err := component.ParseJumpHeightMode(spec.JumpHeightMode)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	player := ecs.CreateEntity(w)
	adds := []struct {
		name string
		add  func() error
	}{
		{"player tag", func() error { return ecs.Add(w, player, component.PlayerTagComponent, component.PlayerTag{}) }},
		{"player", func() error {
			return ecs.Add(w, player, component.PlayerComponent, component.Player{
				RunSpeed:            spec.RunSpeed,
				JumpHeight:          spec.JumpHeight,
				JumpSpeed:           spec.JumpSpeed,
				GravityStep:         spec.GravityStep,
				ScaleGravityByDelta: spec.ScaleGravityByDelta,
				JumpHeightMode:      mode,
				JumpOnPressOnly:     spec.JumpOnPressOnly,
			})
		}},
		{"transform", func() error {
			return ecs.Add(w, player, component.TransformComponent, component.Transform{Position: spec.Transform.Position.Vec3()})
		}},
		{"action state", func() error { return ecs.Add(w, player, component.ActionStateComponent, component.ActionState{}) }},
		{"input", func() error { return ecs.Add(w, player, component.InputComponent, component.Input{}) }},
		{"vertical state", func() error { return ecs.Add(w, player, component.VerticalStateComponent, component.VerticalState{}) }},
		{"kinematic controller", func() error {
			return ecs.Add(w, player, component.KinematicControllerComponent, component.KinematicController{})
		}},
		{"kinematic output", func() error {
			return ecs.Add(w, player, component.KinematicOutputComponent, component.KinematicOutput{})
		}},
		{"collider", func() error {
			return ecs.Add(w, player, component.ColliderComponent, component.Collider{HalfExtents: spec.Shape.HalfExtents.Vec3()})
		}},
		{"shape", func() error { return addShape(w, player, spec.Shape) }},
	}
	for _, a := range adds {
		if err := a.add(); err != nil {
			ecs.DestroyEntity(w, player)
			return 0, fmt.Errorf("player: add %s: %w", a.name, err)
		}
	}

	return player, nil
}

func addShape(w *ecs.World, e ecs.Entity, spec prefabs.ShapeSpec) error {
	return ecs.Add(w, e, component.ShapeComponent, component.Shape{
		Color: spec.Color.RGBA8(),
		Layer: spec.Layer,
	})
}
