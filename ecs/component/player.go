package component

import (
	"fmt"

	"github.com/milk9111/reacher/ecs"
)

const (
	DefaultRunSpeed    = 7.0
	DefaultJumpHeight  = 1.5
	DefaultJumpSpeed   = 5.5
	DefaultGravityStep = 0.01
)

// gravityReferenceRate is the tick rate a per-tick gravity step is tuned for
// when it is scaled by elapsed time.
const gravityReferenceRate = 60.0

// JumpHeightMode selects how the ascent target is derived from JumpHeight.
type JumpHeightMode string

const (
	// JumpHeightAbsolute treats JumpHeight as a world Y the actor rises to.
	JumpHeightAbsolute JumpHeightMode = "absolute"
	// JumpHeightRelative adds JumpHeight to the Y the actor took off from.
	JumpHeightRelative JumpHeightMode = "relative"
)

func ParseJumpHeightMode(s string) (JumpHeightMode, error) {
	switch JumpHeightMode(s) {
	case "", JumpHeightAbsolute:
		return JumpHeightAbsolute, nil
	case JumpHeightRelative:
		return JumpHeightRelative, nil
	default:
		return "", fmt.Errorf("component: unknown jump height mode %q", s)
	}
}

// Player holds the movement tuning of the controllable actor.
type Player struct {
	RunSpeed            float64
	JumpHeight          float64
	JumpSpeed           float64
	GravityStep         float64
	ScaleGravityByDelta bool
	JumpHeightMode      JumpHeightMode
	JumpOnPressOnly     bool
}

func DefaultPlayer() Player {
	return Player{
		RunSpeed:       DefaultRunSpeed,
		JumpHeight:     DefaultJumpHeight,
		JumpSpeed:      DefaultJumpSpeed,
		GravityStep:    DefaultGravityStep,
		JumpHeightMode: JumpHeightAbsolute,
	}
}

// AscentTarget returns the world Y an ascent started at takeoffY ends at.
func (p Player) AscentTarget(takeoffY float64) float64 {
	if p.JumpHeightMode == JumpHeightRelative {
		return takeoffY + p.JumpHeight
	}
	return p.JumpHeight
}

// GravityDisplacement returns the downward step for one tick of dt seconds.
func (p Player) GravityDisplacement(dt float64) float64 {
	if p.ScaleGravityByDelta {
		return p.GravityStep * dt * gravityReferenceRate
	}
	return p.GravityStep
}

var PlayerComponent = ecs.NewComponent[Player]()
