package component

import "github.com/milk9111/reacher/ecs"

type PlayerTag struct{}

var PlayerTagComponent = ecs.NewComponent[PlayerTag]()

type FloorTag struct{}

var FloorTagComponent = ecs.NewComponent[FloorTag]()
