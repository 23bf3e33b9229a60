package component

import (
	"github.com/jakecoffman/cp"
	"github.com/warhoundgame/warhound/common"
)

// Transform is a unit's pose: position plus hull and turret headings.
// Heading 0 faces +Z, increasing clockwise from above.
type Transform struct {
	Pos           common.Vec3
	Heading       float64
	TurretHeading float64
}

// RigidBody ties a unit to its chipmunk body on the XZ plane
// (cp X = world X, cp Y = world Z).
type RigidBody struct {
	Body  *cp.Body
	Shape *cp.Shape
}

// Health is owned by the combat layer; the AI core only reads it.
type Health struct {
	Current float64
	Max     float64
}

// Fraction is health as 0..1.
func (h Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return common.Clamp(h.Current/h.Max, 0, 1)
}

// Team groups units into sides. Units only shoot other teams.
type Team struct {
	ID int
}

// UnitStats are the per-unit movement and combat parameters.
type UnitStats struct {
	MoveSpeed   float64 // m/s at full throttle
	TurnRate    float64 // rad/s at full turn input
	TurretRate  float64 // rad/s at full aim input
	AttackRange float64
}

// UnitInfo labels a unit for telemetry and rendering.
type UnitInfo struct {
	Name string
	Kind string
}

// MoveIntent is the hull command written by a controller each tick and
// consumed by the intent system before the physics step.
type MoveIntent struct {
	Turn     float64
	Throttle float64
}

// AimIntent is the turret command written each tick.
type AimIntent struct {
	Turn float64
}

// Weapon accumulates fire requests; the combat system resolves them.
type Weapon struct {
	Range        float64
	Damage       float64
	Cooldown     float64
	CooldownLeft float64
	FirePending  bool
}

// Regen heals a unit while it stands inside a home area.
type Regen struct {
	At     common.Vec3
	Radius float64
	PerSec float64
}

// Respawn returns a dead unit to its spawn point after a delay, with
// full health and a fresh body. Units without it stay dead.
type Respawn struct {
	At      common.Vec3
	Heading float64
	Delay   float64
	Radius  float64
	Timer   float64
}

// PlayerTag marks the player-driven unit that solo vehicles hunt.
type PlayerTag struct{}

var (
	TransformComponent  = New[Transform]()
	RigidBodyComponent  = New[RigidBody]()
	HealthComponent     = New[Health]()
	TeamComponent       = New[Team]()
	UnitStatsComponent  = New[UnitStats]()
	UnitInfoComponent   = New[UnitInfo]()
	MoveIntentComponent = New[MoveIntent]()
	AimIntentComponent  = New[AimIntent]()
	WeaponComponent     = New[Weapon]()
	RegenComponent      = New[Regen]()
	RespawnComponent    = New[Respawn]()
	PlayerTagComponent  = New[PlayerTag]()
)
