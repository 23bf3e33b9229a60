package system

import (
	"log"

	"github.com/jakecoffman/cp"

	"github.com/warhoundgame/warhound/ecs"
	"github.com/warhoundgame/warhound/ecs/component"
)

// Respawns returns dead units carrying a Respawn component to their
// spawn point after the delay, with full health and a rebuilt body.
type Respawns struct {
	space *cp.Space
}

func NewRespawns(space *cp.Space) *Respawns {
	return &Respawns{space: space}
}

func (s *Respawns) Update(w *ecs.World, dt float64) {
	ecs.Each(w, component.RespawnComponent, func(e ecs.Entity, r *component.Respawn) {
		h, ok := ecs.Get(w, e, component.HealthComponent)
		if !ok {
			return
		}
		if h.Current > 0 {
			r.Timer = 0
			return
		}
		r.Timer += dt
		if r.Timer < r.Delay {
			return
		}
		r.Timer = 0

		h.Current = h.Max
		if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
			t.Pos = r.At
			t.Heading = r.Heading
			t.TurretHeading = r.Heading
		}
		if !ecs.Has(w, e, component.RigidBodyComponent) {
			attachBody(w, s.space, e, r.Radius, r.At)
		}
		if info, ok := ecs.Get(w, e, component.UnitInfoComponent); ok {
			log.Printf("combat: %s respawned", info.Name)
		}
	})
}
