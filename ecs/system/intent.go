package system

import (
	"github.com/milk9111/reacher/ecs"
	"github.com/milk9111/reacher/ecs/component"
)

// ResolveIntent turns action state into movement intent. Opposite directions
// held together cancel out.
func ResolveIntent(state component.ActionState) component.Input {
	var in component.Input
	for _, a := range component.DirectionActions {
		if !state.Pressed(a) {
			continue
		}
		if d, ok := a.Direction(); ok {
			in.MoveX += d
		}
	}
	in.Jump = state.Pressed(component.ActionJump)
	in.JumpPressed = state.JustPressed(component.ActionJump)
	return in
}

type IntentSystem struct{}

func NewIntentSystem() *IntentSystem {
	return &IntentSystem{}
}

func (s *IntentSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.ActionStateComponent, component.InputComponent, func(e ecs.Entity, state *component.ActionState, input *component.Input) {
		*input = ResolveIntent(*state)
	})
}
