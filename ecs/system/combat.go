package system

import (
	"log"

	"github.com/jakecoffman/cp"

	"github.com/warhoundgame/warhound/common"
	"github.com/warhoundgame/warhound/ecs"
	"github.com/warhoundgame/warhound/ecs/component"
)

// Shot is one resolved weapon trace, kept for a frame so the renderer
// and telemetry can draw it.
type Shot struct {
	From, To common.Vec3
	Hit      bool
}

// Combat resolves pending weapon fire, applies damage, and retires the
// bodies of units that died this tick. Shots traces are rebuilt every
// update.
type Combat struct {
	space *cp.Space
	shots []Shot
}

func NewCombat(space *cp.Space) *Combat {
	return &Combat{space: space}
}

// Shots returns the traces resolved by the last update.
func (c *Combat) Shots() []Shot { return c.shots }

func (c *Combat) Update(w *ecs.World, dt float64) {
	c.shots = c.shots[:0]

	ecs.Each(w, component.WeaponComponent, func(e ecs.Entity, wp *component.Weapon) {
		if wp.CooldownLeft > 0 {
			wp.CooldownLeft -= dt
		}
		if !wp.FirePending {
			return
		}
		wp.FirePending = false
		if wp.CooldownLeft > 0 {
			return
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent); ok && h.Current <= 0 {
			return
		}
		c.fire(w, e, wp)
		wp.CooldownLeft = wp.Cooldown
	})

	// Retire the bodies of units that died this tick so corpses stop
	// blocking shots and movement.
	ecs.Each(w, component.HealthComponent, func(e ecs.Entity, h *component.Health) {
		if h.Current > 0 {
			return
		}
		rb, ok := ecs.Get(w, e, component.RigidBodyComponent)
		if !ok || rb.Body == nil {
			return
		}
		rb.Body.SetVelocityVector(cp.Vector{})
		if rb.Shape != nil {
			c.space.RemoveShape(rb.Shape)
		}
		c.space.RemoveBody(rb.Body)
		ecs.Remove(w, e, component.RigidBodyComponent)
		if info, ok := ecs.Get(w, e, component.UnitInfoComponent); ok {
			log.Printf("combat: %s destroyed", info.Name)
		}
	})
}

// fire traces a shot along the turret facing. The shooter's own shape
// group is excluded by the ray filter.
func (c *Combat) fire(w *ecs.World, e ecs.Entity, wp *component.Weapon) {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return
	}
	fwd := common.HeadingVec(t.TurretHeading)
	start := cp.Vector{X: t.Pos.X, Y: t.Pos.Z}
	end := cp.Vector{X: t.Pos.X + fwd.X*wp.Range, Y: t.Pos.Z + fwd.Z*wp.Range}

	group := cp.NO_GROUP
	if rb, ok := ecs.Get(w, e, component.RigidBodyComponent); ok && rb.Shape != nil {
		group = rb.Shape.Filter.Group
	}
	filter := cp.NewShapeFilter(group, CatUnit, CatStatic|CatUnit)
	info := c.space.SegmentQueryFirst(start, end, 0, filter)

	shot := Shot{From: t.Pos, To: common.Vec3{X: end.X, Y: t.Pos.Y, Z: end.Y}}
	if info.Shape != nil {
		shot.To = common.Vec3{X: info.Point.X, Y: t.Pos.Y, Z: info.Point.Y}
		if id, ok := info.Shape.Body().UserData.(int); ok {
			victim := w.Handle(id)
			if h, hok := ecs.Get(w, victim, component.HealthComponent); hok && h.Current > 0 {
				h.Current -= wp.Damage
				shot.Hit = true
			}
		}
	}
	c.shots = append(c.shots, shot)
}
