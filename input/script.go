package input

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/reacher/ecs/component"
	"github.com/milk9111/reacher/prefabs"
)

// ErrScriptFinished is returned by Poll once the script has called done().
var ErrScriptFinished = errors.New("input: script finished")

// ScriptSource replays a tengo scenario. The script runs once per Poll with
// the global tick set to the number of previous polls and drives input
// through the input module:
//
//	input.press("move_right")
//	input.point(640, 360)
//	input.done()
//
// Nothing is pressed and the cursor is invalid unless the script says so
// during that tick.
type ScriptSource struct {
	name     string
	compiled *tengo.Compiled
	tick     int64

	pressed  [len(component.Actions)]bool
	cursor   mgl64.Vec2
	cursorOK bool
	finished bool
}

// LoadScriptSource compiles a scenario from prefabs/scripts.
func LoadScriptSource(name string) (*ScriptSource, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("input: load script %s: %w", name, err)
	}
	return NewScriptSource(name, src)
}

func NewScriptSource(name string, src []byte) (*ScriptSource, error) {
	s := &ScriptSource{name: name}

	script := tengo.NewScript(src)
	_ = script.Add("tick", 0)
	_ = script.Add("input", s.module())
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile script %s: %w", name, err)
	}
	s.compiled = compiled
	return s, nil
}

// Finished reports whether the script has called input.done().
func (s *ScriptSource) Finished() bool {
	return s.finished
}

func (s *ScriptSource) Poll() error {
	s.pressed = [len(component.Actions)]bool{}
	s.cursorOK = false
	if s.finished {
		return ErrScriptFinished
	}

	if err := s.compiled.Set("tick", s.tick); err != nil {
		return fmt.Errorf("input: script %s: %w", s.name, err)
	}
	s.tick++
	if err := s.compiled.Run(); err != nil {
		s.pressed = [len(component.Actions)]bool{}
		s.cursorOK = false
		return fmt.Errorf("input: script %s: tick %d: %w", s.name, s.tick-1, err)
	}
	return nil
}

func (s *ScriptSource) Pressed(a component.Action) bool {
	return int(a) < len(s.pressed) && s.pressed[a]
}

func (s *ScriptSource) CursorPosition() (mgl64.Vec2, bool) {
	return s.cursor, s.cursorOK
}

func (s *ScriptSource) module() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["press"] = &tengo.UserFunction{Name: "press", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		name, ok := tengo.ToString(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "action", Expected: "string", Found: args[0].TypeName()}
		}
		action, err := component.ParseAction(name)
		if err != nil {
			return nil, err
		}
		s.pressed[action] = true
		return tengo.TrueValue, nil
	}}

	values["point"] = &tengo.UserFunction{Name: "point", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "number", Found: args[0].TypeName()}
		}
		y, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "y", Expected: "number", Found: args[1].TypeName()}
		}
		s.cursor = mgl64.Vec2{x, y}
		s.cursorOK = true
		return tengo.TrueValue, nil
	}}

	values["done"] = &tengo.UserFunction{Name: "done", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s.finished = true
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}
