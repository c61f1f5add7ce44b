package input

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/reacher/ecs/component"
)

// Bindings maps each action to the keys that press it.
type Bindings map[component.Action][]ebiten.Key

// DefaultBindings is the layout a keyboard source falls back to when given none.
func DefaultBindings() Bindings {
	return Bindings{
		component.ActionMoveLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
		component.ActionMoveRight: {ebiten.KeyD, ebiten.KeyArrowRight},
		component.ActionJump:      {ebiten.KeyW, ebiten.KeySpace},
	}
}

// ParseBindings resolves action and key names such as
// {"jump": ["W", "Space"]}. Key names follow ebiten.Key text encoding.
func ParseBindings(spec map[string][]string) (Bindings, error) {
	names := make([]string, 0, len(spec))
	for name := range spec {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(Bindings, len(spec))
	for _, name := range names {
		action, err := component.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("input: bindings: %w", err)
		}
		for _, keyName := range spec[name] {
			var key ebiten.Key
			if err := key.UnmarshalText([]byte(keyName)); err != nil {
				return nil, fmt.Errorf("input: bindings: action %s: key %q: %w", action, keyName, err)
			}
			out[action] = append(out[action], key)
		}
	}
	for _, a := range component.Actions {
		if len(out[a]) == 0 {
			return nil, fmt.Errorf("input: bindings: action %s is unbound", a)
		}
	}
	return out, nil
}
