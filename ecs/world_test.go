package ecs

import (
	"errors"
	"testing"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(w.Entities()) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(w.Entities()))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false for a dead entity")
				}
			}
		})
	}
}

func TestWorldSlotReuseBumpsGeneration(t *testing.T) {
	w := NewWorld()
	h := NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h, 1); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot %d to be reused, got %d", old.id(), fresh.id())
	}
	if fresh == old {
		t.Fatalf("reused slot must carry a new generation")
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle must not be alive")
	}
	if _, ok := Get(w, fresh, h); ok {
		t.Fatalf("components of the destroyed entity leaked into the reused slot")
	}
	if err := Add(w, old, h, 2); !errors.Is(err, ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()

	h1 := NewComponent[int]()
	h2 := NewComponent[string]()
	h3 := NewComponent[float64]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1, 10) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1)
				if !ok || v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, h1) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2, "a"); err != nil {
					return err
				}
				return Add(w, e2, h2, "b")
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2) || !Has(w, e2, h2) {
					t.Fatalf("expected both entities to have string component")
				}
				if v, _ := Get(w, e2, h2); v != "b" {
					t.Fatalf("expected b, got %q", v)
				}
			},
			teardown: func() bool { return Remove(w, e1, h2) },
		},
		{
			name:  "replace_float",
			setup: func() error { _ = Add(w, e1, h3, 1.23); return Add(w, e1, h3, 4.56) },
			check: func(t *testing.T) {
				if v, ok := Get(w, e1, h3); !ok || v != 4.56 {
					t.Fatalf("expected replaced value 4.56, got %v", v)
				}
			},
			teardown: func() bool { return Remove(w, e1, h3) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}

	if err := Add(w, e1, ComponentHandle[int]{}, 1); !errors.Is(err, ErrInvalidComponentKind) {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := NewComponent[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	if err := Add(w, e1, h, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := Add(w, e3, h, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	var ents []Entity
	ForEach(w, h, func(e Entity, v *int) {
		ents = append(ents, e)
		*v *= 10
	})

	if len(ents) != 2 || ents[0] != e1 || ents[1] != e3 {
		t.Fatalf("expected [e1 e3], got %v (e2=%v)", ents, e2)
	}
	if v, _ := Get(w, e3, h); v != 30 {
		t.Fatalf("ForEach mutation not stored, got %d", v)
	}
}

func TestForEach2(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)

				ka := NewComponent[int]()
				kb := NewComponent[string]()

				_ = Add(w, e1, ka, 1)
				_ = Add(w, e2, ka, 2)
				_ = Add(w, e2, kb, "two")
				_ = Add(w, e3, kb, "three")

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, _ *int, _ *string) { res = append(res, e) })
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				ka := NewComponent[int]()
				kb := NewComponent[int]()
				_ = Add(w, e, ka, 1)
				_ = Add(w, e, kb, 2)

				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				ka := NewComponent[int]()
				kb := NewComponent[int]()
				_ = Add(w, e, ka, 1)

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestQueryAndFirst(t *testing.T) {
	w := NewWorld()
	tag := NewComponent[struct{}]()
	val := NewComponent[int]()

	if _, ok := w.First(tag.Kind()); ok {
		t.Fatalf("First on an empty world should report no match")
	}

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	_ = Add(w, e2, tag, struct{}{})
	_ = Add(w, e1, tag, struct{}{})
	_ = Add(w, e1, val, 1)
	_ = Add(w, e3, val, 3)

	first, ok := w.First(tag.Kind())
	if !ok || first != e2 {
		t.Fatalf("expected oldest insertion e2, got %v ok=%v", first, ok)
	}

	both := w.Query(tag.Kind(), val.Kind())
	if len(both) != 1 || both[0] != e1 {
		t.Fatalf("expected [e1], got %v", both)
	}

	if got := w.Query(tag.Kind(), NewComponent[bool]().Kind()); got != nil {
		t.Fatalf("expected nil for a store that does not exist, got %v", got)
	}
}

type recordSystem struct {
	name  string
	trace *[]string
	ticks *[]uint64
}

func (r recordSystem) Update(w *World) {
	*r.trace = append(*r.trace, r.name)
	*r.ticks = append(*r.ticks, w.Tick())
}

func TestSchedulerRunsInOrderAndAdvancesTick(t *testing.T) {
	w := NewWorld()
	var trace []string
	var ticks []uint64
	s := NewScheduler(
		recordSystem{name: "a", trace: &trace, ticks: &ticks},
		nil,
		recordSystem{name: "b", trace: &trace, ticks: &ticks},
	)
	s.Add(recordSystem{name: "c", trace: &trace, ticks: &ticks})

	s.Update(w)
	s.Update(w)

	want := []string{"a", "b", "c", "a", "b", "c"}
	if len(trace) != len(want) {
		t.Fatalf("expected %v, got %v", want, trace)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, trace)
		}
	}
	if ticks[0] != 1 || ticks[3] != 2 || w.Tick() != 2 {
		t.Fatalf("unexpected ticks %v (world tick %d)", ticks, w.Tick())
	}
	if len(s.Systems()) != 3 {
		t.Fatalf("nil system should be skipped, got %d systems", len(s.Systems()))
	}
}

func TestEventQueueDrain(t *testing.T) {
	w := NewWorld()
	q := w.Events()
	q.Push(Event{Type: "a"})
	q.Push(Event{Type: "b"})
	if q.Len() != 2 {
		t.Fatalf("expected 2 pending events, got %d", q.Len())
	}
	got := q.Drain()
	if len(got) != 2 || got[0].Type != "a" || got[1].Type != "b" {
		t.Fatalf("unexpected drain order %v", got)
	}
	if q.Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}
}

func TestSetDeltaClampsNegative(t *testing.T) {
	w := NewWorld()
	if w.Delta() != DefaultDelta {
		t.Fatalf("expected default delta, got %v", w.Delta())
	}
	w.SetDelta(-1)
	if w.Delta() != 0 {
		t.Fatalf("negative delta should clamp to 0, got %v", w.Delta())
	}
}

func TestFirstFollowsStoreOrderAfterRemove(t *testing.T) {
	w := NewWorld()
	tag := NewComponent[struct{}]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	for _, e := range []Entity{e1, e2, e3} {
		if err := Add(w, e, tag, struct{}{}); err != nil {
			t.Fatal(err)
		}
	}
	if !Remove(w, e1, tag) {
		t.Fatal("remove failed")
	}

	// The last entry fills the removed slot.
	first, ok := w.First(tag.Kind())
	if !ok || first != e3 {
		t.Fatalf("expected e3 in the vacated slot, got %v ok=%v (e2=%v)", first, ok, e2)
	}
}
