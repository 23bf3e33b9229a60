package system

import (
	"math/rand"

	"github.com/jakecoffman/cp"

	"github.com/warhoundgame/warhound/ai"
	"github.com/warhoundgame/warhound/ecs"
	"github.com/warhoundgame/warhound/ecs/component"
	"github.com/warhoundgame/warhound/nav"
)

// VehicleAI drives every solo vehicle controller. Controllers are
// built lazily on first update so spawn order never matters: by the
// time systems run, the player unit exists.
type VehicleAI struct {
	nav    nav.Query
	space  *cp.Space
	bounds nav.Rect
	tun    *ai.Tuning
	rng    *rand.Rand
}

// NewVehicleAI wires the shared nav query and physics space. bounds
// limits where vehicles pick patrol points.
func NewVehicleAI(q nav.Query, space *cp.Space, bounds nav.Rect, tun *ai.Tuning, rng *rand.Rand) *VehicleAI {
	return &VehicleAI{nav: q, space: space, bounds: bounds, tun: tun, rng: rng}
}

func (s *VehicleAI) Update(w *ecs.World, dt float64) {
	ecs.Each(w, component.VehicleAIComponent, func(e ecs.Entity, v *component.VehicleAI) {
		if v.Ctrl == nil {
			player, _, ok := ecs.First(w, component.PlayerTagComponent)
			if !ok {
				return
			}
			avoid := ai.NewObstacleAvoider(spaceRays{space: s.space}, s.tun)
			v.Ctrl = ai.NewVehicleController(agentFor(w, e), agentFor(w, player), s.nav, avoid, s.bounds, s.tun, s.rng)
		}
		v.Ctrl.Update(dt)
	})
}

// hostilesFor builds a target source listing every live unit on a
// different team. The slice is rebuilt per call; controllers only read
// it within the tick.
func hostilesFor(w *ecs.World, team int) ai.TargetSource {
	return func() []ai.Target {
		var out []ai.Target
		ecs.Each(w, component.TeamComponent, func(e ecs.Entity, t *component.Team) {
			if t.ID == team {
				return
			}
			if h, ok := ecs.Get(w, e, component.HealthComponent); ok && h.Current <= 0 {
				return
			}
			out = append(out, ai.Target(agentFor(w, e)))
		})
		return out
	}
}

func teamOf(w *ecs.World, e ecs.Entity) int {
	if t, ok := ecs.Get(w, e, component.TeamComponent); ok {
		return t.ID
	}
	return 0
}
