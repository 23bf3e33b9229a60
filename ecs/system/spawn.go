package system

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/warhoundgame/warhound/ai"
	"github.com/warhoundgame/warhound/common"
	"github.com/warhoundgame/warhound/content"
	"github.com/warhoundgame/warhound/ecs"
	"github.com/warhoundgame/warhound/ecs/component"
	"github.com/warhoundgame/warhound/nav"
)

const (
	homeRegenRadius = 10.0
	homeRegenPerSec = 12.0
	respawnDelay    = 6.0
)

// NewSpace builds the flat XZ-plane physics space: no gravity, heavy
// damping so units stop when their throttle does.
func NewSpace() *cp.Space {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	space.SetDamping(0.1)
	return space
}

// NavGeometry converts the arena sheet into mesh build input.
func NavGeometry(arena content.ArenaSpec) nav.Geometry {
	geo := nav.Geometry{}
	for _, r := range arena.Walkables {
		geo.Walkables = append(geo.Walkables, nav.Rect{
			MinX: r.MinX, MinZ: r.MinZ, MaxX: r.MaxX, MaxZ: r.MaxZ, Y: r.Y,
		})
	}
	for _, b := range arena.Obstacles {
		geo.Obstacles = append(geo.Obstacles, nav.Box{
			MinX: b.MinX, MinZ: b.MinZ, MaxX: b.MaxX, MaxZ: b.MaxZ,
		})
	}
	return geo
}

// Bounds is the outer walkable rectangle, used to box in patrols.
func Bounds(arena content.ArenaSpec) nav.Rect {
	var out nav.Rect
	for i, r := range arena.Walkables {
		if i == 0 {
			out = nav.Rect{MinX: r.MinX, MinZ: r.MinZ, MaxX: r.MaxX, MaxZ: r.MaxZ, Y: r.Y}
			continue
		}
		out.MinX = math.Min(out.MinX, r.MinX)
		out.MinZ = math.Min(out.MinZ, r.MinZ)
		out.MaxX = math.Max(out.MaxX, r.MaxX)
		out.MaxZ = math.Max(out.MaxZ, r.MaxZ)
	}
	return out
}

// AddStaticGeometry adds obstacle boxes and boundary walls to the
// space as static shapes on the CatStatic category.
func AddStaticGeometry(space *cp.Space, arena content.ArenaSpec) {
	static := space.StaticBody
	filter := cp.NewShapeFilter(cp.NO_GROUP, CatStatic, cp.ALL_CATEGORIES)

	for _, b := range arena.Obstacles {
		bb := cp.BB{L: b.MinX, B: b.MinZ, R: b.MaxX, T: b.MaxZ}
		shape := cp.NewBox2(static, bb, 0)
		shape.SetFilter(filter)
		shape.SetElasticity(0)
		shape.SetFriction(1)
		space.AddShape(shape)
	}

	bounds := Bounds(arena)
	walls := [][2]cp.Vector{
		{{X: bounds.MinX, Y: bounds.MinZ}, {X: bounds.MaxX, Y: bounds.MinZ}},
		{{X: bounds.MinX, Y: bounds.MaxZ}, {X: bounds.MaxX, Y: bounds.MaxZ}},
		{{X: bounds.MinX, Y: bounds.MinZ}, {X: bounds.MinX, Y: bounds.MaxZ}},
		{{X: bounds.MaxX, Y: bounds.MinZ}, {X: bounds.MaxX, Y: bounds.MaxZ}},
	}
	for _, wall := range walls {
		shape := cp.NewSegment(static, wall[0], wall[1], 1)
		shape.SetFilter(filter)
		shape.SetElasticity(0)
		shape.SetFriction(1)
		space.AddShape(shape)
	}
}

// SpawnUnit creates one unit entity with its body, shape, and the
// component set every unit carries. AI components are layered on by
// PopulateArena.
func SpawnUnit(w *ecs.World, space *cp.Space, sheet content.UnitSpec, team int, pos common.Vec3, heading float64) ecs.Entity {
	e := w.CreateEntity()

	attachBody(w, space, e, sheet.Radius, pos)
	ecs.Add(w, e, component.TransformComponent, component.Transform{Pos: pos, Heading: heading, TurretHeading: heading})
	ecs.Add(w, e, component.HealthComponent, component.Health{Current: sheet.Health, Max: sheet.Health})
	ecs.Add(w, e, component.TeamComponent, component.Team{ID: team})
	ecs.Add(w, e, component.UnitStatsComponent, component.UnitStats{
		MoveSpeed:   sheet.MoveSpeed,
		TurnRate:    sheet.TurnRate,
		TurretRate:  sheet.TurretRate,
		AttackRange: sheet.Weapon.Range,
	})
	ecs.Add(w, e, component.UnitInfoComponent, component.UnitInfo{Name: sheet.Name, Kind: sheet.Kind})
	ecs.Add(w, e, component.MoveIntentComponent, component.MoveIntent{})
	ecs.Add(w, e, component.AimIntentComponent, component.AimIntent{})
	ecs.Add(w, e, component.WeaponComponent, component.Weapon{
		Range:    sheet.Weapon.Range,
		Damage:   sheet.Weapon.Damage,
		Cooldown: sheet.Weapon.Cooldown,
	})
	return e
}

// attachBody gives e a body and circle shape in the space. Also used
// by the respawn system to rebuild bodies the combat system retired.
func attachBody(w *ecs.World, space *cp.Space, e ecs.Entity, radius float64, pos common.Vec3) {
	mass := 1.0
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Z})
	body.UserData = e.ID
	space.AddBody(body)

	shape := cp.NewCircle(body, radius, cp.Vector{})
	// Each unit gets its own group so its weapon and avoidance rays
	// never hit its own hull.
	shape.SetFilter(cp.NewShapeFilter(uint(e.ID), CatUnit, cp.ALL_CATEGORIES))
	shape.SetElasticity(0)
	shape.SetFriction(0.7)
	space.AddShape(shape)

	ecs.Add(w, e, component.RigidBodyComponent, component.RigidBody{Body: body, Shape: shape})
}

// PopulateArena spawns every unit the arena sheet lists and attaches
// the AI components that match each unit kind.
func PopulateArena(w *ecs.World, space *cp.Space, arena content.ArenaSpec, units content.UnitsSpec, lanes content.LanesSpec) error {
	laneByName := map[string]content.LaneSpec{}
	for _, l := range lanes.Lanes {
		laneByName[l.Name] = l
	}

	for _, s := range arena.Spawns {
		sheet, err := units.ByName(s.Unit)
		if err != nil {
			return err
		}
		count := s.Count
		if count < 1 {
			count = 1
		}

		var leader ecs.Entity
		for i := 0; i < count; i++ {
			pos := s.At.Vec3()
			if i > 0 {
				// Stagger extra units so they never spawn stacked.
				pos.X += float64(i) * (sheet.Radius*2 + 1)
			}
			e := SpawnUnit(w, space, sheet, s.Team, pos, s.Heading)

			switch {
			case s.Squad && i == 0:
				leader = e
				ecs.Add(w, e, component.SquadLeaderComponent, component.SquadLeader{})
			case s.Squad:
				ecs.Add(w, e, component.SquadMemberComponent, component.SquadMember{LeaderID: leader.ID})
			case sheet.Kind == "vehicle":
				ecs.Add(w, e, component.VehicleAIComponent, component.VehicleAI{})
			case sheet.Kind == "hero":
				lane, ok := laneByName[s.Lane]
				if !ok {
					return fmt.Errorf("system: spawn %q references unknown lane %q", s.Unit, s.Lane)
				}
				cfg := heroConfig(lane, s.Team)
				ecs.Add(w, e, component.HeroAIComponent, component.HeroAI{Config: cfg})
				ecs.Add(w, e, component.AbilityQueueComponent, component.AbilityQueue{})
				ecs.Add(w, e, component.RegenComponent, component.Regen{
					At:     cfg.Home,
					Radius: homeRegenRadius,
					PerSec: homeRegenPerSec,
				})
				ecs.Add(w, e, component.RespawnComponent, component.Respawn{
					At:      cfg.Home,
					Heading: s.Heading,
					Delay:   respawnDelay,
					Radius:  sheet.Radius,
				})
			case sheet.Kind == "player":
				ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{})
				ecs.Add(w, e, component.RespawnComponent, component.Respawn{
					At:      pos,
					Heading: s.Heading,
					Delay:   respawnDelay,
					Radius:  sheet.Radius,
				})
			}
		}
	}
	return nil
}

// heroConfig orients a lane for one side: team 1 walks it forward from
// the sheet's home, team 2 walks it reversed from the far end.
func heroConfig(lane content.LaneSpec, team int) ai.HeroConfig {
	pts := lane.Points()
	home := lane.Home.Vec3()
	if team != 1 {
		pts = lane.Reversed()
		home = pts[0]
	}
	return ai.HeroConfig{
		Lane:    pts,
		Home:    home,
		Contest: lane.Contest.Vec3(),
	}
}
