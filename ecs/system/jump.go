package system

import (
	"github.com/milk9111/reacher/ecs"
	"github.com/milk9111/reacher/ecs/component"
)

// JumpSystem starts an ascent when jump is requested while the actor is
// grounded and not already rising. Grounded reports older than the end of
// the previous ascent are ignored.
type JumpSystem struct{}

func NewJumpSystem() *JumpSystem {
	return &JumpSystem{}
}

func (j *JumpSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	e, ok := w.First(
		component.PlayerTagComponent.Kind(),
		component.InputComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.VerticalStateComponent.Kind(),
		component.KinematicOutputComponent.Kind(),
		component.TransformComponent.Kind(),
	)
	if !ok {
		return
	}

	state, _ := ecs.Get(w, e, component.VerticalStateComponent)
	if state.Rising() {
		return
	}

	input, _ := ecs.Get(w, e, component.InputComponent)
	player, _ := ecs.Get(w, e, component.PlayerComponent)
	requested := input.Jump
	if player.JumpOnPressOnly {
		requested = input.JumpPressed
	}
	if !requested {
		return
	}

	output, _ := ecs.Get(w, e, component.KinematicOutputComponent)
	if !output.Grounded || output.Tick < state.EndedAt {
		return
	}

	transform, _ := ecs.Get(w, e, component.TransformComponent)
	target := player.AscentTarget(transform.Position.Y())
	state.BeginAscent(target)
	if err := ecs.Add(w, e, component.VerticalStateComponent, state); err != nil {
		panic("jump system: update vertical state: " + err.Error())
	}

	w.Events().Push(ecs.Event{
		Type: EventAscentStarted,
		Tick: w.Tick(),
		Data: AscentEvent{Entity: e, Y: transform.Position.Y(), TargetHeight: target},
	})
}
