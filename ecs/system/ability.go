package system

import (
	"log"

	"github.com/warhoundgame/warhound/common"
	"github.com/warhoundgame/warhound/ecs"
	"github.com/warhoundgame/warhound/ecs/component"
)

// Nuke parameters. Abilities are data-light on purpose; the advisor
// decides when, this system decides what.
const (
	nukeRadius = 12.0
	nukeDamage = 45.0
)

// Abilities drains each hero's cast queue and applies the effects.
type Abilities struct{}

func NewAbilities() *Abilities { return &Abilities{} }

func (s *Abilities) Update(w *ecs.World, dt float64) {
	ecs.Each(w, component.AbilityQueueComponent, func(e ecs.Entity, q *component.AbilityQueue) {
		if len(q.Pending) == 0 {
			return
		}
		for _, name := range q.Pending {
			s.cast(w, e, name)
		}
		q.Pending = q.Pending[:0]
	})
}

func (s *Abilities) cast(w *ecs.World, caster ecs.Entity, name string) {
	switch name {
	case "nuke":
		s.nuke(w, caster)
	default:
		log.Printf("ability: unknown cast %q ignored", name)
	}
}

// nuke damages every enemy unit inside the blast radius around the
// caster.
func (s *Abilities) nuke(w *ecs.World, caster ecs.Entity) {
	t, ok := ecs.Get(w, caster, component.TransformComponent)
	if !ok {
		return
	}
	team := teamOf(w, caster)
	hits := 0
	ecs.Each(w, component.HealthComponent, func(e ecs.Entity, h *component.Health) {
		if e == caster || h.Current <= 0 || teamOf(w, e) == team {
			return
		}
		vt, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		if common.FlatDist(t.Pos, vt.Pos) <= nukeRadius {
			h.Current -= nukeDamage
			hits++
		}
	})
	log.Printf("ability: nuke hit %d units", hits)
}
