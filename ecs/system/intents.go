package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/warhoundgame/warhound/common"
	"github.com/warhoundgame/warhound/ecs"
	"github.com/warhoundgame/warhound/ecs/component"
)

// Intents converts this tick's move and aim commands into headings and
// body velocities. It runs after the AI systems and before Physics, so
// controllers never touch the space directly.
type Intents struct{}

func NewIntents() *Intents { return &Intents{} }

func (s *Intents) Update(w *ecs.World, dt float64) {
	ecs.Each(w, component.MoveIntentComponent, func(e ecs.Entity, m *component.MoveIntent) {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		stats, ok := ecs.Get(w, e, component.UnitStatsComponent)
		if !ok {
			return
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent); ok && h.Current <= 0 {
			m.Turn, m.Throttle = 0, 0
			if rb, ok := ecs.Get(w, e, component.RigidBodyComponent); ok && rb.Body != nil {
				rb.Body.SetVelocityVector(cp.Vector{})
			}
			return
		}

		t.Heading = wrapAngle(t.Heading + m.Turn*stats.TurnRate*dt)
		if rb, ok := ecs.Get(w, e, component.RigidBodyComponent); ok && rb.Body != nil {
			fwd := common.HeadingVec(t.Heading)
			speed := m.Throttle * stats.MoveSpeed
			rb.Body.SetVelocityVector(cp.Vector{X: fwd.X * speed, Y: fwd.Z * speed})
		}

		if aim, ok := ecs.Get(w, e, component.AimIntentComponent); ok {
			t.TurretHeading = wrapAngle(t.TurretHeading + aim.Turn*stats.TurretRate*dt)
		}
	})
}

func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
