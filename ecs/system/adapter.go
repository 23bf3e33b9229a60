// Package system holds the per-tick simulation passes: AI control,
// intent consumption, physics, combat, and regeneration. Systems run
// in registration order and communicate only through components.
package system

import (
	"github.com/jakecoffman/cp"

	"github.com/warhoundgame/warhound/common"
	"github.com/warhoundgame/warhound/ecs"
	"github.com/warhoundgame/warhound/ecs/component"
)

// unitAgent adapts one arena unit to the controller capability
// interfaces. It is a thin view over components; controllers hold it
// for the unit's lifetime and every read goes back to the world.
type unitAgent struct {
	w *ecs.World
	e ecs.Entity
}

func agentFor(w *ecs.World, e ecs.Entity) *unitAgent {
	return &unitAgent{w: w, e: e}
}

func (a *unitAgent) transform() *component.Transform {
	t, _ := ecs.Get(a.w, a.e, component.TransformComponent)
	return t
}

func (a *unitAgent) Position() common.Vec3 {
	if t := a.transform(); t != nil {
		return t.Pos
	}
	return common.Vec3{}
}

func (a *unitAgent) Forward() common.Vec3 {
	if t := a.transform(); t != nil {
		return common.HeadingVec(t.Heading)
	}
	return common.HeadingVec(0)
}

func (a *unitAgent) AimForward() common.Vec3 {
	if t := a.transform(); t != nil {
		return common.HeadingVec(t.TurretHeading)
	}
	return common.HeadingVec(0)
}

func (a *unitAgent) Alive() bool {
	if !a.w.IsAlive(a.e) {
		return false
	}
	if h, ok := ecs.Get(a.w, a.e, component.HealthComponent); ok {
		return h.Current > 0
	}
	return true
}

func (a *unitAgent) SetMoveIntent(turn, throttle float64) {
	if m, ok := ecs.Get(a.w, a.e, component.MoveIntentComponent); ok {
		m.Turn = turn
		m.Throttle = throttle
	}
}

func (a *unitAgent) SetAimIntent(turn float64) {
	if m, ok := ecs.Get(a.w, a.e, component.AimIntentComponent); ok {
		m.Turn = turn
	}
}

func (a *unitAgent) Fire() {
	if wp, ok := ecs.Get(a.w, a.e, component.WeaponComponent); ok {
		wp.FirePending = true
	}
}

// Nudge teleports the unit sideways by delta. The separation pass uses
// it for small positional corrections, so the rigid body moves too.
func (a *unitAgent) Nudge(delta common.Vec3) {
	t := a.transform()
	if t == nil {
		return
	}
	t.Pos = t.Pos.Add(delta)
	if rb, ok := ecs.Get(a.w, a.e, component.RigidBodyComponent); ok && rb.Body != nil {
		rb.Body.SetPosition(cp.Vector{X: t.Pos.X, Y: t.Pos.Z})
	}
}

func (a *unitAgent) AttackRange() float64 {
	if wp, ok := ecs.Get(a.w, a.e, component.WeaponComponent); ok {
		return wp.Range
	}
	if s, ok := ecs.Get(a.w, a.e, component.UnitStatsComponent); ok {
		return s.AttackRange
	}
	return 0
}

func (a *unitAgent) HealthFraction() float64 {
	if h, ok := ecs.Get(a.w, a.e, component.HealthComponent); ok {
		return h.Fraction()
	}
	return 1
}
