package ecs

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentHandle identifies one component storage and the Go type kept in it.
// Handles are created once at package init, e.g.
//
//	var TransformComponent = ecs.NewComponent[Transform]()
type ComponentHandle[T any] struct {
	id ComponentID
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{id: ComponentID(nextComponentID.Add(1))}
}

// Kind returns the untyped id used by World.Query and World.First.
func (h ComponentHandle[T]) Kind() ComponentID {
	return h.id
}

func (h ComponentHandle[T]) Valid() bool {
	return h.id != 0
}
