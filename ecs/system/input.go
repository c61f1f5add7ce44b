package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/reacher/ecs"
	"github.com/milk9111/reacher/ecs/component"
	"go.uber.org/zap"
)

// InputSource is a device or script that reports action and cursor state.
// Poll is called once per tick before any query.
type InputSource interface {
	Poll() error
	Pressed(a component.Action) bool
	CursorPosition() (mgl64.Vec2, bool)
}

type InputSystem struct {
	source InputSource
	logger *zap.Logger
}

func NewInputSystem(source InputSource, logger *zap.Logger) *InputSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InputSystem{source: source, logger: logger}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.source == nil {
		return
	}

	var (
		pressed  func(component.Action) bool
		cursor   mgl64.Vec2
		cursorOK bool
	)
	if err := i.source.Poll(); err != nil {
		// A failed poll releases everything for this tick.
		i.logger.Warn("input poll failed", zap.Uint64("tick", w.Tick()), zap.Error(err))
	} else {
		pressed = i.source.Pressed
		cursor, cursorOK = i.source.CursorPosition()
	}

	ecs.ForEach(w, component.ActionStateComponent, func(e ecs.Entity, state *component.ActionState) {
		state.Update(pressed)
	})

	ecs.ForEach(w, component.PointerComponent, func(e ecs.Entity, pointer *component.Pointer) {
		pointer.Position = cursor
		pointer.Valid = cursorOK
	})
}
