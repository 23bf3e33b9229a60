package ai

import "github.com/warhoundgame/warhound/common"

// Agent is the capability contract every AI-driven unit satisfies.
// The combat and physics layers own agent lifetime; controllers only
// read poses and write intents.
type Agent interface {
	// Position is the agent's world position.
	Position() common.Vec3
	// Forward is the hull facing as a unit vector on the XZ plane.
	Forward() common.Vec3
	// Alive reports whether the unit can still act.
	Alive() bool
	// SetMoveIntent writes this tick's hull command. Both values are
	// in [-1, 1]; positive turn is clockwise from above.
	SetMoveIntent(turn, throttle float64)
	// SetAimIntent writes this tick's turret command.
	SetAimIntent(turn float64)
	// Fire requests a shot. The combat layer decides what happens.
	Fire()
}

// Target is anything a controller can steer at or shoot: another
// agent, a structure, or a formation anchor.
type Target interface {
	Position() common.Vec3
	Alive() bool
}

// Turreted exposes the current turret facing for aim-error gating.
// Agents without it aim with the hull.
type Turreted interface {
	AimForward() common.Vec3
}

// Body lets the separation pass nudge an agent's rigid body directly.
type Body interface {
	Nudge(delta common.Vec3)
}

// Ranged exposes a per-agent attack range override.
type Ranged interface {
	AttackRange() float64
}

// Vitals exposes health as a 0..1 fraction for tactical decisions.
type Vitals interface {
	HealthFraction() float64
}

// aimForward returns the turret facing when available, else the hull.
func aimForward(a Agent) common.Vec3 {
	if t, ok := a.(Turreted); ok {
		return t.AimForward()
	}
	return a.Forward()
}

// attackRange returns the agent's own range or the fallback.
func attackRange(a Agent, fallback float64) float64 {
	if r, ok := a.(Ranged); ok && r.AttackRange() > 0 {
		return r.AttackRange()
	}
	return fallback
}

// anchor is a fixed-point Target used for formation slots and map
// positions.
type anchor common.Vec3

func (a anchor) Position() common.Vec3 { return common.Vec3(a) }
func (a anchor) Alive() bool           { return true }

// PointTarget wraps a static position as a Target.
func PointTarget(p common.Vec3) Target { return anchor(p) }
