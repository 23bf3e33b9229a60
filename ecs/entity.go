// Package ecs is the agent arena: units are entities with stable
// integer ids, components live in sparse sets keyed by those ids, and
// systems run once per simulation tick in registration order.
package ecs

// Entity is a generational handle. A reused id gets a new generation,
// so stale handles never alias a new unit.
type Entity struct {
	ID  int
	Gen int
}

// Valid reports whether the handle was ever issued.
func (e Entity) Valid() bool { return e.ID > 0 }

// entityStore tracks generations and recycles freed ids.
type entityStore struct {
	nextID int
	gen    []int
	free   []int
}

func (s *entityStore) create() Entity {
	var id int
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.nextID++
		id = s.nextID
		s.gen = append(s.gen, 0)
	}
	return Entity{ID: id, Gen: s.gen[id-1]}
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	s.gen[e.ID-1]++
	s.free = append(s.free, e.ID)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	if e.ID <= 0 || e.ID > len(s.gen) {
		return false
	}
	return s.gen[e.ID-1] == e.Gen
}

func (s *entityStore) handle(id int) Entity {
	if id <= 0 || id > len(s.gen) {
		return Entity{}
	}
	return Entity{ID: id, Gen: s.gen[id-1]}
}
