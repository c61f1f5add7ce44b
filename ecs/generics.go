package ecs

// CreateEntity allocates a new entity in w.
func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

// DestroyEntity removes e and all of its components.
func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

// IsAlive reports whether e is a live handle in w.
func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

func typedStore[T any](w *World, handle ComponentHandle[T], create bool) *sparseSet[T] {
	if w == nil || !handle.Valid() {
		return nil
	}
	if s, ok := w.store(handle.id).(*sparseSet[T]); ok {
		return s
	}
	if !create {
		return nil
	}
	s := &sparseSet[T]{}
	w.stores[handle.id] = s
	return s
}

// Add inserts or replaces the component value on e.
func Add[T any](w *World, e Entity, handle ComponentHandle[T], value T) error {
	if !handle.Valid() {
		return ErrInvalidComponentKind
	}
	if !w.IsAlive(e) {
		return ErrEntityNotAlive
	}
	typedStore(w, handle, true).set(e, value)
	return nil
}

// Remove deletes the component from e, reporting whether it was present.
func Remove[T any](w *World, e Entity, handle ComponentHandle[T]) bool {
	s := typedStore(w, handle, false)
	if s == nil {
		return false
	}
	return s.remove(e)
}

func Has[T any](w *World, e Entity, handle ComponentHandle[T]) bool {
	s := typedStore(w, handle, false)
	return s != nil && w.IsAlive(e) && s.has(e)
}

// Get returns a copy of the component value. Write changes back with Add.
func Get[T any](w *World, e Entity, handle ComponentHandle[T]) (T, bool) {
	var zero T
	if !w.IsAlive(e) {
		return zero, false
	}
	s := typedStore(w, handle, false)
	if s == nil {
		return zero, false
	}
	v, ok := s.get(e)
	if !ok {
		return zero, false
	}
	return *v, true
}

// ForEach calls fn with a pointer into storage for every live entity holding
// the component. fn may mutate the value but must not add or remove
// components of the same kind.
func ForEach[T any](w *World, handle ComponentHandle[T], fn func(Entity, *T)) {
	s := typedStore(w, handle, false)
	if s == nil || fn == nil {
		return
	}
	for i := 0; i < len(s.ents); i++ {
		e := s.ents[i]
		if !w.entities.isAlive(e) {
			continue
		}
		fn(e, &s.values[i])
	}
}

// ForEach2 iterates entities holding both components.
func ForEach2[A, B any](w *World, ha ComponentHandle[A], hb ComponentHandle[B], fn func(Entity, *A, *B)) {
	sa := typedStore(w, ha, false)
	sb := typedStore(w, hb, false)
	if sa == nil || sb == nil || fn == nil {
		return
	}
	for i := 0; i < len(sa.ents); i++ {
		e := sa.ents[i]
		if !w.entities.isAlive(e) {
			continue
		}
		b, ok := sb.get(e)
		if !ok {
			continue
		}
		fn(e, &sa.values[i], b)
	}
}
