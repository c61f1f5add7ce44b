package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/reacher/ecs"
)

// KinematicController carries the translation requested for this tick. The
// physics system consumes and clears it.
type KinematicController struct {
	translation mgl64.Vec3
	pending     bool
}

// Translation returns the pending translation, if any.
func (k KinematicController) Translation() (mgl64.Vec3, bool) {
	return k.translation, k.pending
}

func (k *KinematicController) SetTranslation(v mgl64.Vec3) {
	k.translation = v
	k.pending = true
}

// Take returns the pending translation and clears it.
func (k *KinematicController) Take() (mgl64.Vec3, bool) {
	v, ok := k.translation, k.pending
	k.translation = mgl64.Vec3{}
	k.pending = false
	return v, ok
}

var KinematicControllerComponent = ecs.NewComponent[KinematicController]()

// KinematicOutput is the physics report for the last resolved translation.
type KinematicOutput struct {
	Grounded bool
	// Desired is the translation that was requested.
	Desired mgl64.Vec3
	// Effective is the translation actually applied after collisions.
	Effective mgl64.Vec3
	// Tick is the world tick the report was produced in.
	Tick uint64
}

var KinematicOutputComponent = ecs.NewComponent[KinematicOutput]()
