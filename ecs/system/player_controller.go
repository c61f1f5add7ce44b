package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/reacher/ecs"
	"github.com/milk9111/reacher/ecs/component"
)

// PlayerControllerSystem writes the horizontal run term of the actor's
// requested translation. The vertical term already requested this tick is
// left untouched.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	e, ok := w.First(
		component.PlayerTagComponent.Kind(),
		component.InputComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.KinematicControllerComponent.Kind(),
	)
	if !ok {
		return
	}

	input, _ := ecs.Get(w, e, component.InputComponent)
	player, _ := ecs.Get(w, e, component.PlayerComponent)
	kin, _ := ecs.Get(w, e, component.KinematicControllerComponent)

	dx := input.MoveX * player.RunSpeed * w.Delta()
	t, pending := kin.Translation()
	if !pending {
		t = mgl64.Vec3{}
	}
	t[0] = dx
	kin.SetTranslation(t)

	if err := ecs.Add(w, e, component.KinematicControllerComponent, kin); err != nil {
		panic("player controller system: update kinematic controller: " + err.Error())
	}
}
