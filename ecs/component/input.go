package component

import "github.com/milk9111/reacher/ecs"

// Input stores the per-frame intent resolved from the action state.
type Input struct {
	// MoveX is the summed horizontal direction: -1 left, +1 right, 0 for
	// neither or both.
	MoveX       float64
	Jump        bool
	JumpPressed bool
}

var InputComponent = ecs.NewComponent[Input]()
