package system

import (
	"github.com/warhoundgame/warhound/common"
	"github.com/warhoundgame/warhound/ecs"
	"github.com/warhoundgame/warhound/ecs/component"
)

// Regen heals units standing inside their home area. Retreating
// heroes path home, top up, and resume their lane.
type Regen struct{}

func NewRegen() *Regen { return &Regen{} }

func (s *Regen) Update(w *ecs.World, dt float64) {
	ecs.Each(w, component.RegenComponent, func(e ecs.Entity, r *component.Regen) {
		h, ok := ecs.Get(w, e, component.HealthComponent)
		if !ok || h.Current <= 0 || h.Current >= h.Max {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		if common.FlatDist(t.Pos, r.At) <= r.Radius {
			h.Current = min(h.Current+r.PerSec*dt, h.Max)
		}
	})
}
