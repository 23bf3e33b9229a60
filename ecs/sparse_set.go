package ecs

// SparseSet stores one component kind densely, keyed by entity id.
// Iteration touches only entities that actually carry the component.
type SparseSet[T any] struct {
	denseIDs []int
	dense    []T
	sparse   []int
}

// Has reports whether id carries a component.
func (s *SparseSet[T]) Has(id int) bool {
	if s == nil || id <= 0 || id-1 >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.denseIDs) && s.denseIDs[idx] == id
}

// Get returns a pointer into dense storage, valid until the next Set
// or Remove of this kind.
func (s *SparseSet[T]) Get(id int) (*T, bool) {
	if !s.Has(id) {
		return nil, false
	}
	return &s.dense[s.sparse[id-1]], true
}

// Set inserts or overwrites the component for id.
func (s *SparseSet[T]) Set(id int, v T) {
	if s == nil || id <= 0 {
		return
	}
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.Has(id) {
		s.dense[s.sparse[id-1]] = v
		return
	}
	s.denseIDs = append(s.denseIDs, id)
	s.dense = append(s.dense, v)
	s.sparse[id-1] = len(s.denseIDs) - 1
}

// Remove deletes the component for id via swap-with-last.
func (s *SparseSet[T]) Remove(id int) bool {
	if !s.Has(id) {
		return false
	}
	idx := s.sparse[id-1]
	last := len(s.denseIDs) - 1
	lastID := s.denseIDs[last]

	s.denseIDs[idx] = lastID
	s.dense[idx] = s.dense[last]
	s.sparse[lastID-1] = idx

	s.denseIDs = s.denseIDs[:last]
	s.dense = s.dense[:last]
	s.sparse[id-1] = -1
	return true
}

// IDs returns the dense entity id list. Do not mutate.
func (s *SparseSet[T]) IDs() []int {
	if s == nil {
		return nil
	}
	return s.denseIDs
}

// Len is the number of stored components.
func (s *SparseSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseIDs)
}
