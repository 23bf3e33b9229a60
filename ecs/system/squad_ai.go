package system

import (
	"math/rand"

	"github.com/warhoundgame/warhound/ai"
	"github.com/warhoundgame/warhound/ecs"
	"github.com/warhoundgame/warhound/ecs/component"
	"github.com/warhoundgame/warhound/nav"
)

// SquadAI drives squad controllers: one per leader, with members
// registered into the leader's formation by slot order. Members keep
// their slot when they die, so the formation never reshuffles.
type SquadAI struct {
	nav nav.Query
	tun *ai.Tuning
	rng *rand.Rand

	// registered tracks which member entity ids already hold a slot,
	// keyed by leader id.
	registered map[int]map[int]bool
}

func NewSquadAI(q nav.Query, tun *ai.Tuning, rng *rand.Rand) *SquadAI {
	return &SquadAI{nav: q, tun: tun, rng: rng, registered: map[int]map[int]bool{}}
}

func (s *SquadAI) Update(w *ecs.World, dt float64) {
	// Build controllers before registering members so a member spawned
	// in the same batch as its leader lands in the right formation.
	ecs.Each(w, component.SquadLeaderComponent, func(e ecs.Entity, l *component.SquadLeader) {
		if l.Ctrl == nil {
			l.Ctrl = ai.NewSquadController(agentFor(w, e), hostilesFor(w, teamOf(w, e)), s.nav, s.tun, s.rng)
		}
	})

	ecs.Each(w, component.SquadMemberComponent, func(e ecs.Entity, m *component.SquadMember) {
		leader := w.Handle(m.LeaderID)
		l, ok := ecs.Get(w, leader, component.SquadLeaderComponent)
		if !ok || l.Ctrl == nil {
			return
		}
		slots := s.registered[m.LeaderID]
		if slots == nil {
			slots = map[int]bool{}
			s.registered[m.LeaderID] = slots
		}
		if !slots[e.ID] {
			l.Ctrl.AddFollower(agentFor(w, e))
			slots[e.ID] = true
		}
	})

	ecs.Each(w, component.SquadLeaderComponent, func(e ecs.Entity, l *component.SquadLeader) {
		if l.Ctrl != nil {
			l.Ctrl.Update(dt)
		}
	})
}
