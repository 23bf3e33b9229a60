// Command simulate runs the arena headless for a fixed number of
// ticks and prints per-unit outcomes. Useful for tuning the AI without
// opening a window, and for comparing runs across seeds.
package main

import (
	"flag"
	"log"
	"math/rand"

	"github.com/warhoundgame/warhound/ai"
	"github.com/warhoundgame/warhound/content"
	"github.com/warhoundgame/warhound/ecs"
	"github.com/warhoundgame/warhound/ecs/component"
	"github.com/warhoundgame/warhound/ecs/system"
	"github.com/warhoundgame/warhound/nav"
	"github.com/warhoundgame/warhound/script"
)

func main() {
	seed := flag.Int64("seed", 1, "simulation RNG seed")
	ticks := flag.Int("ticks", 3600, "ticks to simulate")
	dt := flag.Float64("dt", 1.0/60.0, "seconds per tick")
	every := flag.Int("report", 600, "tick interval between progress reports")
	flag.Parse()

	arena, err := content.LoadArena()
	if err != nil {
		log.Fatal(err)
	}
	units, err := content.LoadUnits()
	if err != nil {
		log.Fatal(err)
	}
	lanes, err := content.LoadLanes()
	if err != nil {
		log.Fatal(err)
	}
	tun, err := content.LoadTuning()
	if err != nil {
		log.Fatal(err)
	}

	mesh := nav.NewMesh(arena.CellSize)
	if !mesh.Build(system.NavGeometry(arena)) {
		log.Print("navmesh build failed, agents fall back to direct steering")
	}

	space := system.NewSpace()
	system.AddStaticGeometry(space, arena)

	w := ecs.NewWorld()
	if err := system.PopulateArena(w, space, arena, units, lanes); err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewSource(*seed))
	var advisor ai.AbilityAdvisor = ai.DefaultAdvisor()
	if adv, err := script.NewAdvisor("hero_abilities.tengo"); err == nil {
		advisor = adv
	}

	w.AddSystem(system.NewVehicleAI(mesh, space, system.Bounds(arena), tun, rng))
	w.AddSystem(system.NewSquadAI(mesh, tun, rng))
	w.AddSystem(system.NewHeroAI(mesh, advisor, tun, rng))
	w.AddSystem(system.NewIntents())
	w.AddSystem(system.NewPhysics(space))
	w.AddSystem(system.NewCombat(space))
	w.AddSystem(system.NewAbilities())
	w.AddSystem(system.NewRegen())
	w.AddSystem(system.NewRespawns(space))

	for i := 1; i <= *ticks; i++ {
		w.Update(*dt)
		if *every > 0 && i%*every == 0 {
			log.Printf("tick %d/%d", i, *ticks)
		}
	}

	report(w)
}

func report(w *ecs.World) {
	ecs.Each(w, component.UnitInfoComponent, func(e ecs.Entity, info *component.UnitInfo) {
		t, _ := ecs.Get(w, e, component.TransformComponent)
		h, _ := ecs.Get(w, e, component.HealthComponent)
		team := 0
		if tc, ok := ecs.Get(w, e, component.TeamComponent); ok {
			team = tc.ID
		}
		state := ""
		if v, ok := ecs.Get(w, e, component.VehicleAIComponent); ok && v.Ctrl != nil {
			state = string(v.Ctrl.State())
		} else if hc, ok := ecs.Get(w, e, component.HeroAIComponent); ok && hc.Ctrl != nil {
			state = string(hc.Ctrl.State())
		}
		log.Printf("unit %d %s (team %d) pos=(%.1f, %.1f) health=%.0f/%.0f %s",
			e.ID, info.Name, team, t.Pos.X, t.Pos.Z, h.Current, h.Max, state)
	})
}
