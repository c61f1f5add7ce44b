package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/reacher/ecs"
	"github.com/milk9111/reacher/ecs/component"
	"github.com/milk9111/reacher/prefabs"
)

func NewCamera(w *ecs.World, spec *prefabs.CameraSpec) (ecs.Entity, error) {
	if w == nil || spec == nil {
		return 0, fmt.Errorf("camera: world and spec are required")
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.TransformComponent, component.Transform{Position: spec.Transform.Position.Vec3()}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}
	if err := ecs.Add(w, camera, component.CameraComponent, component.Camera{
		Target: spec.Target.Vec3(),
		Up:     spec.Up.Vec3(),
		FovY:   mgl64.DegToRad(spec.FovY),
		Near:   spec.Near,
		Far:    spec.Far,
		Width:  spec.Width,
		Height: spec.Height,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera: %w", err)
	}
	if err := ecs.Add(w, camera, component.PointerComponent, component.Pointer{}); err != nil {
		return 0, fmt.Errorf("camera: add pointer: %w", err)
	}

	return camera, nil
}
