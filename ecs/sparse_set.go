package ecs

// componentStore is the type-erased view of a sparseSet used by World.
type componentStore interface {
	has(e Entity) bool
	remove(e Entity) bool
	owners() []Entity
}

// sparseSet is a cache-friendly storage for components keyed by entity slot.
// Values live densely; sparse maps a slot id to its dense index (or -1).
type sparseSet[T any] struct {
	values []T
	ents   []Entity
	sparse []int
}

func (s *sparseSet[T]) index(e Entity) int {
	id := int(e.id())
	if id <= 0 || id-1 >= len(s.sparse) {
		return -1
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.ents) || s.ents[idx] != e {
		return -1
	}
	return idx
}

func (s *sparseSet[T]) has(e Entity) bool {
	return s.index(e) >= 0
}

func (s *sparseSet[T]) get(e Entity) (*T, bool) {
	idx := s.index(e)
	if idx < 0 {
		return nil, false
	}
	return &s.values[idx], true
}

func (s *sparseSet[T]) set(e Entity, v T) {
	if idx := s.index(e); idx >= 0 {
		s.values[idx] = v
		return
	}
	id := int(e.id())
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	// A stale generation may still hold the slot.
	if old := s.sparse[id-1]; old >= 0 && old < len(s.ents) && s.ents[old].id() == e.id() {
		s.remove(s.ents[old])
	}
	s.ents = append(s.ents, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.ents) - 1
}

func (s *sparseSet[T]) remove(e Entity) bool {
	idx := s.index(e)
	if idx < 0 {
		return false
	}
	last := len(s.ents) - 1
	moved := s.ents[last]

	s.ents[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	var zero T
	s.values[last] = zero
	s.ents = s.ents[:last]
	s.values = s.values[:last]
	s.sparse[e.id()-1] = -1
	return true
}

func (s *sparseSet[T]) owners() []Entity {
	return s.ents
}
