package main

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/warhoundgame/warhound/ai"
	"github.com/warhoundgame/warhound/common"
	"github.com/warhoundgame/warhound/content"
	"github.com/warhoundgame/warhound/ecs"
	"github.com/warhoundgame/warhound/ecs/component"
	"github.com/warhoundgame/warhound/ecs/system"
	"github.com/warhoundgame/warhound/nav"
	"github.com/warhoundgame/warhound/script"
	"github.com/warhoundgame/warhound/telemetry"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	tickRate = 1.0 / 60.0

	worldScale = 3.0
)

var (
	colorGround   = color.RGBA{R: 24, G: 28, B: 24, A: 255}
	colorObstacle = color.RGBA{R: 70, G: 70, B: 80, A: 255}
	colorTeam1    = color.RGBA{R: 80, G: 170, B: 255, A: 255}
	colorTeam2    = color.RGBA{R: 230, G: 90, B: 70, A: 255}
	colorShot     = color.RGBA{R: 255, G: 220, B: 120, A: 255}
	colorHealth   = color.RGBA{R: 90, G: 220, B: 90, A: 255}
)

type Game struct {
	world  *ecs.World
	combat *system.Combat
	mesh   *nav.Mesh
	arena  content.ArenaSpec
	tun    *ai.Tuning
	hub    *telemetry.Hub
	player ecs.Entity
	face   *text.GoXFace
	debug  bool

	watcher *content.Watcher
	tick    uint64
}

// NewGame builds the whole simulation: mesh, space, units, systems.
func NewGame(seed int64, debug bool, hub *telemetry.Hub) (*Game, error) {
	arena, err := content.LoadArena()
	if err != nil {
		return nil, err
	}
	units, err := content.LoadUnits()
	if err != nil {
		return nil, err
	}
	lanes, err := content.LoadLanes()
	if err != nil {
		return nil, err
	}
	tun, err := content.LoadTuning()
	if err != nil {
		return nil, err
	}

	mesh := nav.NewMesh(arena.CellSize)
	if !mesh.Build(system.NavGeometry(arena)) {
		log.Printf("game: navmesh build failed, agents fall back to direct steering")
	}

	space := system.NewSpace()
	system.AddStaticGeometry(space, arena)

	w := ecs.NewWorld()
	if err := system.PopulateArena(w, space, arena, units, lanes); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	advisor := heroAdvisor()

	combat := system.NewCombat(space)
	w.AddSystem(system.NewVehicleAI(mesh, space, system.Bounds(arena), tun, rng))
	w.AddSystem(system.NewSquadAI(mesh, tun, rng))
	w.AddSystem(system.NewHeroAI(mesh, advisor, tun, rng))
	w.AddSystem(system.NewIntents())
	w.AddSystem(system.NewPhysics(space))
	w.AddSystem(combat)
	w.AddSystem(system.NewAbilities())
	w.AddSystem(system.NewRegen())
	w.AddSystem(system.NewRespawns(space))

	player, _, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		log.Printf("game: no player unit in arena spec")
	}

	g := &Game{
		world:  w,
		combat: combat,
		mesh:   mesh,
		arena:  arena,
		tun:    tun,
		hub:    hub,
		player: player,
		face:   text.NewGoXFace(basicfont.Face7x13),
		debug:  debug,
	}
	g.startWatcher()
	return g, nil
}

// heroAdvisor prefers the scripted advisor, falling back to the
// built-in heuristic when the script fails to compile.
func heroAdvisor() ai.AbilityAdvisor {
	adv, err := script.NewAdvisor("hero_abilities.tengo")
	if err != nil {
		log.Printf("game: ability script unavailable, using heuristic: %v", err)
		return ai.DefaultAdvisor()
	}
	return adv
}

// startWatcher hot-reloads tuning when content/ files change on disk.
// No content directory means no watcher, which is fine for shipped
// builds running purely from the embedded specs.
func (g *Game) startWatcher() {
	watcher, err := content.NewWatcher("content")
	if err != nil {
		return
	}
	g.watcher = watcher
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			tun, err := content.LoadTuning()
			if err != nil {
				log.Printf("game: reload after %s: %v", name, err)
				continue
			}
			// Controllers share the pointer, so copying in place
			// retunes every agent at once.
			*g.tun = *tun
			log.Printf("game: tuning reloaded (%s)", name)
		case err := <-g.watcher.Errors:
			log.Printf("game: watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	g.tick++
	g.pollWatcher()
	g.readPlayerInput()
	g.world.Update(tickRate)
	if g.hub != nil && g.tick%6 == 0 {
		g.hub.Broadcast(g.snapshot())
	}
	return nil
}

func (g *Game) readPlayerInput() {
	m, ok := ecs.Get(g.world, g.player, component.MoveIntentComponent)
	if !ok {
		return
	}
	m.Turn, m.Throttle = 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		m.Throttle = 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		m.Throttle = -1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		m.Turn = -1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		m.Turn = 1
	}

	if a, ok := ecs.Get(g.world, g.player, component.AimIntentComponent); ok {
		a.Turn = 0
		if ebiten.IsKeyPressed(ebiten.KeyLeft) {
			a.Turn = -1
		}
		if ebiten.IsKeyPressed(ebiten.KeyRight) {
			a.Turn = 1
		}
	}

	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		if wp, ok := ecs.Get(g.world, g.player, component.WeaponComponent); ok {
			wp.FirePending = true
		}
	}
}

func (g *Game) snapshot() telemetry.Snapshot {
	snap := telemetry.Snapshot{Tick: g.tick}
	ecs.Each(g.world, component.TransformComponent, func(e ecs.Entity, t *component.Transform) {
		u := telemetry.UnitSnapshot{
			ID:      e.ID,
			X:       t.Pos.X,
			Z:       t.Pos.Z,
			Heading: t.Heading,
		}
		if info, ok := ecs.Get(g.world, e, component.UnitInfoComponent); ok {
			u.Name, u.Kind = info.Name, info.Kind
		}
		if team, ok := ecs.Get(g.world, e, component.TeamComponent); ok {
			u.Team = team.ID
		}
		if h, ok := ecs.Get(g.world, e, component.HealthComponent); ok {
			u.Health = h.Fraction()
		}
		u.State = unitState(g.world, e)
		snap.Units = append(snap.Units, u)
	})
	return snap
}

// unitState reports the unit's tactical state when it has one.
func unitState(w *ecs.World, e ecs.Entity) string {
	if v, ok := ecs.Get(w, e, component.VehicleAIComponent); ok && v.Ctrl != nil {
		return string(v.Ctrl.State())
	}
	if h, ok := ecs.Get(w, e, component.HeroAIComponent); ok && h.Ctrl != nil {
		return string(h.Ctrl.State())
	}
	return ""
}

func worldToScreen(p common.Vec3) (float32, float32) {
	return float32(baseWidth/2 + p.X*worldScale), float32(baseHeight/2 + p.Z*worldScale)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorGround)

	for _, b := range g.arena.Obstacles {
		x0, z0 := worldToScreen(common.Vec3{X: b.MinX, Z: b.MinZ})
		x1, z1 := worldToScreen(common.Vec3{X: b.MaxX, Z: b.MaxZ})
		vector.DrawFilledRect(screen, x0, z0, x1-x0, z1-z0, colorObstacle, false)
	}

	if g.debug {
		g.drawDebug(screen)
	}

	for _, shot := range g.combat.Shots() {
		x0, y0 := worldToScreen(shot.From)
		x1, y1 := worldToScreen(shot.To)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, colorShot, true)
	}

	ecs.Each(g.world, component.TransformComponent, func(e ecs.Entity, t *component.Transform) {
		g.drawUnit(screen, e, t)
	})

	ebitenutil.DebugPrint(screen, fmt.Sprintf("tick %d  fps %.1f  WASD move, arrows aim, space fire", g.tick, ebiten.ActualFPS()))
}

// drawDebug overlays the walkable grid and every active path.
func (g *Game) drawDebug(screen *ebiten.Image) {
	gridColor := color.RGBA{R: 40, G: 60, B: 40, A: 255}
	for _, c := range g.mesh.OpenCells() {
		x, y := worldToScreen(c)
		vector.DrawFilledRect(screen, x, y, 1, 1, gridColor, false)
	}

	pathColor := color.RGBA{R: 120, G: 120, B: 200, A: 255}
	drawPath := func(from common.Vec3, pts []common.Vec3) {
		prev := from
		for _, p := range pts {
			x0, y0 := worldToScreen(prev)
			x1, y1 := worldToScreen(p)
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, pathColor, false)
			prev = p
		}
	}
	ecs.Each(g.world, component.VehicleAIComponent, func(e ecs.Entity, v *component.VehicleAI) {
		if v.Ctrl == nil {
			return
		}
		if t, ok := ecs.Get(g.world, e, component.TransformComponent); ok {
			drawPath(t.Pos, v.Ctrl.Path())
		}
	})
	ecs.Each(g.world, component.HeroAIComponent, func(e ecs.Entity, h *component.HeroAI) {
		if h.Ctrl == nil {
			return
		}
		if t, ok := ecs.Get(g.world, e, component.TransformComponent); ok {
			drawPath(t.Pos, h.Ctrl.Path())
		}
	})
}

func (g *Game) drawUnit(screen *ebiten.Image, e ecs.Entity, t *component.Transform) {
	x, y := worldToScreen(t.Pos)
	radius := float32(1.5 * worldScale)

	teamColor := colorTeam1
	if team, ok := ecs.Get(g.world, e, component.TeamComponent); ok && team.ID != 1 {
		teamColor = colorTeam2
	}
	h, hasHealth := ecs.Get(g.world, e, component.HealthComponent)
	dead := hasHealth && h.Current <= 0
	if dead {
		teamColor = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	}

	vector.DrawFilledCircle(screen, x, y, radius, teamColor, true)

	if !dead {
		hull := common.HeadingVec(t.Heading).Scale(2.2 * worldScale)
		vector.StrokeLine(screen, x, y, x+float32(hull.X), y+float32(hull.Z), 2, color.White, true)
		turret := common.HeadingVec(t.TurretHeading).Scale(3.0 * worldScale)
		vector.StrokeLine(screen, x, y, x+float32(turret.X), y+float32(turret.Z), 1, colorShot, true)
	}

	if hasHealth && !dead {
		frac := float32(h.Fraction())
		vector.DrawFilledRect(screen, x-radius, y-radius-5, 2*radius*frac, 2, colorHealth, false)
	}

	if state := unitState(g.world, e); state != "" {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(x)-float64(radius), float64(y)+float64(radius)+2)
		text.Draw(screen, state, g.face, op)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
