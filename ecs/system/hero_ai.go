package system

import (
	"math/rand"

	"github.com/warhoundgame/warhound/ai"
	"github.com/warhoundgame/warhound/ecs"
	"github.com/warhoundgame/warhound/ecs/component"
	"github.com/warhoundgame/warhound/nav"
)

// HeroAI drives the lane/contest/fight/retreat controllers. Each hero
// gets the nearest enemy hero as its marked enemy and a cast queue the
// ability system drains.
type HeroAI struct {
	nav     nav.Query
	tun     *ai.Tuning
	rng     *rand.Rand
	advisor ai.AbilityAdvisor
}

// NewHeroAI wires the shared nav query and the ability advisor.
// advisor may be nil for heroes that never cast.
func NewHeroAI(q nav.Query, advisor ai.AbilityAdvisor, tun *ai.Tuning, rng *rand.Rand) *HeroAI {
	return &HeroAI{nav: q, tun: tun, rng: rng, advisor: advisor}
}

func (s *HeroAI) Update(w *ecs.World, dt float64) {
	ecs.Each(w, component.HeroAIComponent, func(e ecs.Entity, h *component.HeroAI) {
		if h.Ctrl == nil {
			h.Ctrl = s.build(w, e, h)
			if h.Ctrl == nil {
				return
			}
		}
		h.Ctrl.Update(dt)
	})
}

func (s *HeroAI) build(w *ecs.World, e ecs.Entity, h *component.HeroAI) *ai.HeroController {
	enemy := s.enemyHero(w, e)
	caster := func(ability string) {
		if q, ok := ecs.Get(w, e, component.AbilityQueueComponent); ok {
			q.Pending = append(q.Pending, ability)
		}
	}
	return ai.NewHeroController(agentFor(w, e), enemy, hostilesFor(w, teamOf(w, e)),
		s.nav, h.Config, s.advisor, caster, s.tun, s.rng)
}

// enemyHero finds the closest opposing hero, falling back to the
// player unit. A nil enemy keeps the hero laning forever.
func (s *HeroAI) enemyHero(w *ecs.World, self ecs.Entity) ai.Target {
	team := teamOf(w, self)
	selfPos := agentFor(w, self).Position()
	var best ai.Target
	bestDist := 0.0
	ecs.Each(w, component.HeroAIComponent, func(e ecs.Entity, _ *component.HeroAI) {
		if e == self || teamOf(w, e) == team {
			return
		}
		a := agentFor(w, e)
		d := selfPos.Sub(a.Position()).FlatLen()
		if best == nil || d < bestDist {
			best, bestDist = a, d
		}
	})
	if best != nil {
		return best
	}
	if player, _, ok := ecs.First(w, component.PlayerTagComponent); ok && teamOf(w, player) != team {
		return agentFor(w, player)
	}
	return nil
}
