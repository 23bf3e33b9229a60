// Package component defines component identity for the arena plus the
// data-only component types attached to units.
package component

import "sync/atomic"

// ID identifies a component kind globally.
type ID uint32

var nextID atomic.Uint32

// Handle is a typed key for one component kind. Declare handles as
// package vars so every world shares the same kind ids.
type Handle[T any] struct {
	id ID
}

// New registers a new component kind.
func New[T any]() Handle[T] {
	return Handle[T]{id: ID(nextID.Add(1))}
}

// ID returns the kind id.
func (h Handle[T]) ID() ID { return h.id }

// Valid reports whether the handle was created through New.
func (h Handle[T]) Valid() bool { return h.id != 0 }
