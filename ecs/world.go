package ecs

import "github.com/warhoundgame/warhound/ecs/component"

// System updates the world once per simulation tick.
type System interface {
	Update(w *World, dt float64)
}

// store erases the component type so the world can hold every kind.
type store interface {
	remove(id int) bool
	has(id int) bool
	count() int
	ids() []int
}

type typedStore[T any] struct {
	set SparseSet[T]
}

func (t *typedStore[T]) remove(id int) bool { return t.set.Remove(id) }
func (t *typedStore[T]) has(id int) bool    { return t.set.Has(id) }
func (t *typedStore[T]) count() int         { return t.set.Len() }
func (t *typedStore[T]) ids() []int         { return t.set.IDs() }

// World owns entities, component storage, and system order.
type World struct {
	entities entityStore
	stores   map[component.ID]store
	systems  []System
}

// NewWorld creates an empty arena.
func NewWorld() *World {
	return &World{stores: map[component.ID]store{}}
}

// CreateEntity allocates a fresh unit handle.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity retires a handle and strips all of its components.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.ID)
	}
	return true
}

// IsAlive reports whether the handle is still the current generation.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Handle rebuilds the live handle for a dense id.
func (w *World) Handle(id int) Entity {
	return w.entities.handle(id)
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s != nil {
		w.systems = append(w.systems, s)
	}
}

// Update runs all systems once with the tick's elapsed time.
func (w *World) Update(dt float64) {
	for _, s := range w.systems {
		s.Update(w, dt)
	}
}

func storeFor[T any](w *World, h component.Handle[T]) *typedStore[T] {
	if s, ok := w.stores[h.ID()]; ok {
		return s.(*typedStore[T])
	}
	s := &typedStore[T]{}
	w.stores[h.ID()] = s
	return s
}

// Add attaches a component to a live entity, overwriting any existing
// value of the same kind.
func Add[T any](w *World, e Entity, h component.Handle[T], v T) bool {
	if !w.IsAlive(e) || !h.Valid() {
		return false
	}
	storeFor(w, h).set.Set(e.ID, v)
	return true
}

// Get returns a mutable pointer to e's component. The pointer is valid
// until the next Add or Remove of the same kind.
func Get[T any](w *World, e Entity, h component.Handle[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	return storeFor(w, h).set.Get(e.ID)
}

// Has reports whether e carries the component.
func Has[T any](w *World, e Entity, h component.Handle[T]) bool {
	return w.IsAlive(e) && storeFor(w, h).set.Has(e.ID)
}

// Remove detaches the component from e.
func Remove[T any](w *World, e Entity, h component.Handle[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	return storeFor(w, h).set.Remove(e.ID)
}

// Each visits every entity carrying the component. Adding or removing
// components of the same kind during iteration is not allowed.
func Each[T any](w *World, h component.Handle[T], fn func(e Entity, v *T)) {
	set := &storeFor(w, h).set
	for _, id := range set.IDs() {
		if v, ok := set.Get(id); ok {
			fn(w.entities.handle(id), v)
		}
	}
}

// First returns an arbitrary entity carrying the component, useful for
// singletons like the player unit.
func First[T any](w *World, h component.Handle[T]) (Entity, *T, bool) {
	set := &storeFor(w, h).set
	ids := set.IDs()
	if len(ids) == 0 {
		return Entity{}, nil, false
	}
	v, _ := set.Get(ids[0])
	return w.entities.handle(ids[0]), v, true
}

// Query returns entities carrying every listed component kind,
// iterating the smallest set.
func (w *World) Query(ids ...component.ID) []Entity {
	if len(ids) == 0 {
		return nil
	}
	var smallest store
	for _, id := range ids {
		s, ok := w.stores[id]
		if !ok {
			return nil
		}
		if smallest == nil || s.count() < smallest.count() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.count())
	for _, id := range smallest.ids() {
		all := true
		for _, kid := range ids {
			if !w.stores[kid].has(id) {
				all = false
				break
			}
		}
		if all {
			out = append(out, w.entities.handle(id))
		}
	}
	return out
}
