package ecs

import (
	"testing"

	"github.com/milk9111/pixelsampler/ecs/component"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
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
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
			}
		})
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	t.Run("component_table", func(t *testing.T) {
		w := NewWorld()

		h1 := component.NewComponent[int]()
		h2 := component.NewComponent[string]()
		h3 := component.NewComponent[float64]()

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
				setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
				check: func(t *testing.T) {
					v, ok := Get[int](w, e1, h1.Kind())
					if !ok || *v != 10 {
						t.Fatalf("expected 10, got %v ok=%v", v, ok)
					}
				},
				teardown: func() bool { return Remove[int](w, e1, h1.Kind()) },
			},
			{
				name: "add_str_to_e1_and_e2",
				setup: func() error {
					if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
						return err
					}
					return Add(w, e2, h2.Kind(), stringPtr("b"))
				},
				check: func(t *testing.T) {
					if !Has[string](w, e1, h2.Kind()) || !Has[string](w, e2, h2.Kind()) {
						t.Fatalf("expected both entities to have string component")
					}
				},
				teardown: func() bool { return Remove[string](w, e1, h2.Kind()) },
			},
			{
				name:  "add_float_and_remove",
				setup: func() error { return Add(w, e1, h3.Kind(), float64Ptr(1.23)) },
				check: func(t *testing.T) {
					if _, ok := Get[float64](w, e1, h3.Kind()); !ok {
						t.Fatalf("expected float present")
					}
				},
				teardown: func() bool { return Remove[float64](w, e1, h3.Kind()) },
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
	})
}

func TestForEach(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)
		e3 := CreateEntity(w)

		if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		var ents []Entity
		ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
		set := toSet(ents)

		if _, ok := set[e1]; !ok {
			t.Fatalf("expected e1 in ForEach result")
		}
		if _, ok := set[e3]; !ok {
			t.Fatalf("expected e3 in ForEach result")
		}
		if _, ok := set[e2]; ok {
			t.Fatalf("did not expect e2 in ForEach result")
		}
	})
}

func TestForEach3(t *testing.T) {
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
				e4 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				if err := Add(w, e1, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, ka, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kb, intPtr(3)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kc, intPtr(5)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e3, kb, intPtr(4)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e4, kc, intPtr(6)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0].id() != e2.id() {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e, kb, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e, kc, intPtr(3)); err != nil {
					t.Fatal(err)
				}

				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "no_common",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				if err := Add(w, e1, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kb, intPtr(2)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected no common entities, got %v", res)
				}
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if res != nil && len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestEntityHandleReuse(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	first := CreateEntity(w)
	if err := Add(w, first, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !DestroyEntity(w, first) {
		t.Fatal("destroy failed")
	}
	if DestroyEntity(w, first) {
		t.Fatal("second destroy of the same handle should fail")
	}

	second := CreateEntity(w)
	if second.id() != first.id() {
		t.Fatalf("expected id %d to be reused, got %d", first.id(), second.id())
	}
	if second == first {
		t.Fatal("reused id must carry a new generation")
	}
	if second.String() == first.String() {
		t.Fatalf("reused slot should format differently, both %s", first)
	}
	if IsAlive(w, first) {
		t.Fatal("stale handle reported alive")
	}
	if Has(w, second, h.Kind()) {
		t.Fatal("components of a destroyed entity leaked into its successor")
	}
	if err := Add(w, first, h.Kind(), intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	tests := []struct {
		name string
		err  error
		add  func() error
	}{
		{
			name: "nil_value",
			err:  component.ErrNilComponent,
			add:  func() error { return Add[int](w, e, component.NewComponentKind[int](), nil) },
		},
		{
			name: "zero_kind",
			err:  component.ErrInvalidComponentKind,
			add:  func() error { return Add(w, e, component.ComponentKind[int]{}, intPtr(1)) },
		},
		{
			name: "dead_entity",
			err:  component.ErrEntityNotAlive,
			add:  func() error { return Add(w, Entity(0), component.NewComponentKind[int](), intPtr(1)) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.add(); err != tc.err {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestForEach2MutatesInPlace(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[float64]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	for _, e := range []Entity{e1, e2} {
		if err := Add(w, e, ka, intPtr(1)); err != nil {
			t.Fatal(err)
		}
	}
	if err := Add(w, e2, kb, float64Ptr(0.5)); err != nil {
		t.Fatal(err)
	}

	calls := 0
	ForEach2(w, ka, kb, func(_ Entity, a *int, b *float64) {
		calls++
		*a += 10
		*b *= 2
	})
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}

	a1, _ := Get(w, e1, ka)
	a2, _ := Get(w, e2, ka)
	b2, _ := Get(w, e2, kb)
	if *a1 != 1 || *a2 != 11 || *b2 != 1 {
		t.Fatalf("unexpected values a1=%d a2=%d b2=%v", *a1, *a2, *b2)
	}
}

func TestFirstAndQuery(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[string]()

	if _, ok := w.First(k); ok {
		t.Fatal("First on empty store should fail")
	}

	e := CreateEntity(w)
	if err := Add(w, e, k, stringPtr("camera")); err != nil {
		t.Fatal(err)
	}
	got, ok := w.First(k)
	if !ok || got != e {
		t.Fatalf("expected %v, got %v ok=%v", e, got, ok)
	}
	if q := w.Query(); q != nil {
		t.Fatalf("query without kinds should be nil, got %v", q)
	}
}

func TestEventQueueDrainType(t *testing.T) {
	w := NewWorld()
	w.Events().Push(Event{Type: "a", Data: 1})
	w.Events().Push(Event{Type: EventMaterialSwapped, Data: 2})
	w.Events().Push(Event{Type: "a", Data: 3})

	swapped := w.Events().DrainType(EventMaterialSwapped)
	if len(swapped) != 1 || swapped[0].Data != 2 {
		t.Fatalf("unexpected swapped events %v", swapped)
	}
	rest := w.Events().Drain()
	if len(rest) != 2 || rest[0].Data != 1 || rest[1].Data != 3 {
		t.Fatalf("unexpected remaining events %v", rest)
	}

	w.Events().Push(Event{Type: "a"})
	NewScheduler().Update(w)
	if got := w.Events().Drain(); got != nil {
		t.Fatalf("scheduler should flush events at end of frame, got %v", got)
	}
}

func TestTimeTick(t *testing.T) {
	w := NewWorld()
	w.Tick(0.5)
	w.Tick(-1)
	w.Tick(0.25)

	if got := w.Time().Delta(); got != 0.25 {
		t.Fatalf("delta: expected 0.25, got %v", got)
	}
	if got := w.Time().Elapsed(); got != 0.75 {
		t.Fatalf("elapsed: expected 0.75, got %v", got)
	}
	if got := w.Time().Frames(); got != 3 {
		t.Fatalf("frames: expected 3, got %d", got)
	}
}
