package component

import (
	"fmt"
	"strings"

	"github.com/milk9111/reacher/ecs"
)

// Action is a named input action bound to one or more device keys.
type Action uint8

const (
	ActionMoveLeft Action = iota
	ActionMoveRight
	ActionJump

	actionCount
)

// Actions lists every action in declaration order.
var Actions = [...]Action{ActionMoveLeft, ActionMoveRight, ActionJump}

// DirectionActions are the actions that contribute to horizontal intent.
var DirectionActions = [...]Action{ActionMoveLeft, ActionMoveRight}

func (a Action) String() string {
	switch a {
	case ActionMoveLeft:
		return "move_left"
	case ActionMoveRight:
		return "move_right"
	case ActionJump:
		return "jump"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// ParseAction maps a binding name such as "move_left" to its Action.
func ParseAction(name string) (Action, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, a := range Actions {
		if a.String() == normalized {
			return a, nil
		}
	}
	return 0, fmt.Errorf("component: unknown action %q", name)
}

// Direction returns the X axis contribution of a directional action.
func (a Action) Direction() (float64, bool) {
	switch a {
	case ActionMoveLeft:
		return -1, true
	case ActionMoveRight:
		return 1, true
	default:
		return 0, false
	}
}

// ActionState holds pressed flags for the current and previous tick so that
// just-pressed can be derived for any input source.
type ActionState struct {
	pressed [actionCount]bool
	prev    [actionCount]bool
}

// Update rolls the current flags into the previous slot and samples pressed
// for every action.
func (s *ActionState) Update(pressed func(Action) bool) {
	s.prev = s.pressed
	for _, a := range Actions {
		s.pressed[a] = pressed != nil && pressed(a)
	}
}

// Set overrides the current pressed flag of one action.
func (s *ActionState) Set(a Action, pressed bool) {
	if a >= actionCount {
		return
	}
	s.pressed[a] = pressed
}

func (s ActionState) Pressed(a Action) bool {
	return a < actionCount && s.pressed[a]
}

func (s ActionState) JustPressed(a Action) bool {
	return a < actionCount && s.pressed[a] && !s.prev[a]
}

var ActionStateComponent = ecs.NewComponent[ActionState]()
