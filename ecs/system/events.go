package system

import "github.com/milk9111/reacher/ecs"

const (
	EventAscentStarted = "ascent_started"
	EventAscentEnded   = "ascent_ended"
)

// AscentEvent is the payload of ascent start/end events.
type AscentEvent struct {
	Entity       ecs.Entity
	Y            float64
	TargetHeight float64
}
