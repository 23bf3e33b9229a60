package ecs

import (
	"testing"

	"github.com/warhoundgame/warhound/ecs/component"
)

var (
	testIntComponent    = component.New[int]()
	testStringComponent = component.New[string]()
)

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			for _, e := range ents {
				if !w.IsAlive(e) {
					t.Fatalf("entity %v should be alive", e)
				}
			}
			if c.destroyIndex >= 0 {
				victim := ents[c.destroyIndex]
				if !w.DestroyEntity(victim) {
					t.Fatal("DestroyEntity should return true for a live entity")
				}
				if w.IsAlive(victim) {
					t.Fatal("entity alive after destruction")
				}
				if w.DestroyEntity(victim) {
					t.Fatal("double destroy should fail")
				}
			}
		})
	}
}

func TestGenerationPreventsAliasing(t *testing.T) {
	w := NewWorld()
	old := w.CreateEntity()
	Add(w, old, testIntComponent, 7)
	w.DestroyEntity(old)

	reused := w.CreateEntity()
	if reused.ID != old.ID {
		t.Fatalf("expected id reuse, got %d vs %d", reused.ID, old.ID)
	}
	if w.IsAlive(old) {
		t.Fatal("stale handle must not be alive")
	}
	if _, ok := Get(w, old, testIntComponent); ok {
		t.Fatal("stale handle read a component")
	}
	if Has(w, reused, testIntComponent) {
		t.Fatal("component leaked across generations")
	}
}

func TestComponentsAndQueries(t *testing.T) {
	w := NewWorld()
	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()

	Add(w, e1, testIntComponent, 1)
	Add(w, e2, testIntComponent, 2)
	Add(w, e2, testStringComponent, "both")
	Add(w, e3, testStringComponent, "str-only")

	if v, ok := Get(w, e2, testIntComponent); !ok || *v != 2 {
		t.Fatalf("Get(e2) = %v, %v", v, ok)
	}
	// Pointers mutate in place.
	if v, ok := Get(w, e1, testIntComponent); ok {
		*v = 10
	}
	if v, _ := Get(w, e1, testIntComponent); *v != 10 {
		t.Fatal("in-place mutation lost")
	}

	both := w.Query(testIntComponent.ID(), testStringComponent.ID())
	if len(both) != 1 || both[0].ID != e2.ID {
		t.Fatalf("Query(int+string) = %v, want just e2", both)
	}

	seen := 0
	Each(w, testIntComponent, func(e Entity, v *int) { seen++ })
	if seen != 2 {
		t.Fatalf("Each visited %d entities, want 2", seen)
	}

	if !Remove(w, e2, testIntComponent) {
		t.Fatal("Remove should succeed")
	}
	if Has(w, e2, testIntComponent) {
		t.Fatal("component present after Remove")
	}
}

func TestDestroyStripsComponents(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	Add(w, e, testIntComponent, 5)
	Add(w, e, testStringComponent, "bye")
	w.DestroyEntity(e)

	Each(w, testIntComponent, func(got Entity, v *int) {
		if got.ID == e.ID {
			t.Fatal("destroyed entity still iterated")
		}
	})
}

type countingSystem struct {
	calls int
	dt    float64
}

func (c *countingSystem) Update(w *World, dt float64) {
	c.calls++
	c.dt = dt
}

func TestSystemOrderAndDt(t *testing.T) {
	w := NewWorld()
	s1 := &countingSystem{}
	s2 := &countingSystem{}
	w.AddSystem(s1)
	w.AddSystem(s2)
	w.Update(0.016)
	w.Update(0.016)
	if s1.calls != 2 || s2.calls != 2 {
		t.Fatalf("systems ran %d/%d times, want 2/2", s1.calls, s2.calls)
	}
	if s1.dt != 0.016 {
		t.Fatalf("dt = %v, want 0.016", s1.dt)
	}
}
