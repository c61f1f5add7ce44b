package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/reacher/ecs"
	"github.com/milk9111/reacher/ecs/component"
)

// VerticalMotionSystem adds the vertical term to the actor's requested
// translation: a constant rise while an ascent is in progress, a gravity step
// otherwise. The ascent ends on the tick its step reaches the target height.
type VerticalMotionSystem struct{}

func NewVerticalMotionSystem() *VerticalMotionSystem {
	return &VerticalMotionSystem{}
}

func (v *VerticalMotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	e, ok := w.First(
		component.PlayerTagComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.VerticalStateComponent.Kind(),
		component.TransformComponent.Kind(),
		component.KinematicControllerComponent.Kind(),
	)
	if !ok {
		return
	}

	player, _ := ecs.Get(w, e, component.PlayerComponent)
	state, _ := ecs.Get(w, e, component.VerticalStateComponent)
	transform, _ := ecs.Get(w, e, component.TransformComponent)
	kin, _ := ecs.Get(w, e, component.KinematicControllerComponent)

	var dy float64
	if state.Rising() {
		dy = player.JumpSpeed * w.Delta()
		if transform.Position.Y()+dy >= state.TargetHeight {
			target := state.TargetHeight
			state.EndAscent(w.Tick())
			if err := ecs.Add(w, e, component.VerticalStateComponent, state); err != nil {
				panic("vertical motion system: update vertical state: " + err.Error())
			}
			w.Events().Push(ecs.Event{
				Type: EventAscentEnded,
				Tick: w.Tick(),
				Data: AscentEvent{Entity: e, Y: transform.Position.Y(), TargetHeight: target},
			})
		}
	} else {
		dy = -player.GravityDisplacement(w.Delta())
	}

	t, pending := kin.Translation()
	if !pending {
		t = mgl64.Vec3{}
	}
	t[1] += dy
	kin.SetTranslation(t)

	if err := ecs.Add(w, e, component.KinematicControllerComponent, kin); err != nil {
		panic("vertical motion system: update kinematic controller: " + err.Error())
	}
}
