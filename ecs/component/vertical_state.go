package component

import "github.com/milk9111/reacher/ecs"

type VerticalPhase uint8

const (
	VerticalGrounded VerticalPhase = iota
	VerticalRising
)

func (p VerticalPhase) String() string {
	if p == VerticalRising {
		return "rising"
	}
	return "grounded"
}

// VerticalState is the grounded/rising state of the actor. Rising carries the
// world Y at which the ascent ends; a single field keeps at most one ascent
// per actor.
type VerticalState struct {
	Phase        VerticalPhase
	TargetHeight float64
	// EndedAt is the tick in which the last ascent ended.
	EndedAt uint64
}

func (s VerticalState) Rising() bool {
	return s.Phase == VerticalRising
}

func (s *VerticalState) BeginAscent(target float64) {
	s.Phase = VerticalRising
	s.TargetHeight = target
}

func (s *VerticalState) EndAscent(tick uint64) {
	s.Phase = VerticalGrounded
	s.TargetHeight = 0
	s.EndedAt = tick
}

var VerticalStateComponent = ecs.NewComponent[VerticalState]()
