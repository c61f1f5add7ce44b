package system

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/reacher/ecs"
	"github.com/milk9111/reacher/ecs/component"
	"github.com/stretchr/testify/require"
)

// floorSubstrate applies requested translations verbatim and clamps the
// actor onto a flat floor at floorY, reporting grounded while resting on it.
type floorSubstrate struct {
	floorY  float64
	noFloor bool
}

func (s floorSubstrate) Update(w *ecs.World) {
	ecs.ForEach2(w, component.KinematicControllerComponent, component.TransformComponent, func(e ecs.Entity, kin *component.KinematicController, transform *component.Transform) {
		t, _ := kin.Take()
		before := transform.Position
		transform.Position = transform.Position.Add(t)

		grounded := false
		if !s.noFloor && transform.Position.Y() <= s.floorY {
			transform.Position[1] = s.floorY
			grounded = true
		}

		out := component.KinematicOutput{
			Grounded:  grounded,
			Desired:   t,
			Effective: transform.Position.Sub(before),
			Tick:      w.Tick(),
		}
		if err := ecs.Add(w, e, component.KinematicOutputComponent, out); err != nil {
			panic(err)
		}
	})
}

func spawnActor(t *testing.T, w *ecs.World, pos mgl64.Vec3, player component.Player) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent, component.Transform{Position: pos}))
	require.NoError(t, ecs.Add(w, e, component.PlayerComponent, player))
	require.NoError(t, ecs.Add(w, e, component.VerticalStateComponent, component.VerticalState{}))
	require.NoError(t, ecs.Add(w, e, component.InputComponent, component.Input{}))
	require.NoError(t, ecs.Add(w, e, component.ActionStateComponent, component.ActionState{}))
	require.NoError(t, ecs.Add(w, e, component.KinematicControllerComponent, component.KinematicController{}))
	require.NoError(t, ecs.Add(w, e, component.KinematicOutputComponent, component.KinematicOutput{}))
	return e
}

func setInput(t *testing.T, w *ecs.World, e ecs.Entity, in component.Input) {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, component.InputComponent, in))
}

func setOutput(t *testing.T, w *ecs.World, e ecs.Entity, out component.KinematicOutput) {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, component.KinematicOutputComponent, out))
}

func mustGet[T any](t *testing.T, w *ecs.World, e ecs.Entity, h ecs.ComponentHandle[T]) T {
	t.Helper()
	v, ok := ecs.Get(w, e, h)
	require.True(t, ok)
	return v
}

func pendingTranslation(t *testing.T, w *ecs.World, e ecs.Entity) mgl64.Vec3 {
	t.Helper()
	kin := mustGet(t, w, e, component.KinematicControllerComponent)
	v, ok := kin.Translation()
	require.True(t, ok, "expected a pending translation")
	return v
}

// recoverError runs fn and returns the error it panicked with, if any.
func recoverError(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok {
			err = e
			return
		}
		err = errors.New("non-error panic")
	}()
	fn()
	return nil
}
