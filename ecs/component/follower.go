package component

import "github.com/milk9111/reacher/ecs"

const DefaultReachRadius = 1.2

// Follower tracks the pointer but stays within ReachRadius of Actor. Actor is
// a non-owning handle resolved every tick.
type Follower struct {
	Actor       ecs.Entity
	ReachRadius float64
}

var FollowerComponent = ecs.NewComponent[Follower]()
