package ecs

// DefaultDelta is the frame delta used until SetDelta is called.
const DefaultDelta = 1.0 / 60.0

// World owns entities, component stores, the frame clock and the event queue.
type World struct {
	entities entityStore
	stores   map[ComponentID]componentStore
	events   EventQueue

	tick  uint64
	delta float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores: make(map[ComponentID]componentStore),
		delta:  DefaultDelta,
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// HasComponent reports whether e carries the component identified by kind.
func (w *World) HasComponent(e Entity, kind ComponentID) bool {
	if w == nil {
		return false
	}
	s, ok := w.stores[kind]
	return ok && s.has(e)
}

// Query returns live entities that carry every listed component, in the
// insertion order of the first store.
func (w *World) Query(kinds ...ComponentID) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	first, ok := w.stores[kinds[0]]
	if !ok {
		return nil
	}
	rest := make([]componentStore, 0, len(kinds)-1)
	for _, k := range kinds[1:] {
		s, ok := w.stores[k]
		if !ok {
			return nil
		}
		rest = append(rest, s)
	}

	var out []Entity
outer:
	for _, e := range first.owners() {
		if !w.entities.isAlive(e) {
			continue
		}
		for _, s := range rest {
			if !s.has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}

// First returns the first entity matching the query, in the storage order of
// the first kind. Removals swap entries, so that order is not insertion order.
func (w *World) First(kinds ...ComponentID) (Entity, bool) {
	matches := w.Query(kinds...)
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0], true
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Tick returns the number of scheduler updates run so far.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Delta returns the elapsed seconds for the current tick.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.delta
}

// SetDelta sets the elapsed seconds reported by Delta. Negative values are
// clamped to zero.
func (w *World) SetDelta(dt float64) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.delta = dt
}

func (w *World) store(kind ComponentID) componentStore {
	if w.stores == nil {
		w.stores = make(map[ComponentID]componentStore)
	}
	return w.stores[kind]
}
