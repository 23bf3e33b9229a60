package ai

import (
	"testing"

	"github.com/warhoundgame/warhound/common"
)

type heroRig struct {
	c     *HeroController
	hero  *testAgent
	enemy *testAgent
	casts []string
}

func newHeroRig(advisor AbilityAdvisor) *heroRig {
	r := &heroRig{
		hero:  newTestAgent(common.Vec3{}),
		enemy: newTestAgent(common.Vec3{X: 200}),
	}
	cfg := HeroConfig{
		Lane:    []common.Vec3{{Z: 20}, {Z: 60}, {Z: 100}},
		Home:    common.Vec3{Z: -30},
		Contest: common.Vec3{X: 300}, // far away unless a test moves the hero
	}
	r.c = NewHeroController(r.hero, r.enemy, nil, nil, cfg, advisor,
		func(ab string) { r.casts = append(r.casts, ab) },
		DefaultTuning(), testRNG())
	return r
}

func (r *heroRig) run(ticks int, dt float64) {
	for i := 0; i < ticks; i++ {
		r.c.Update(dt)
	}
}

func TestHeroDefaultsToLane(t *testing.T) {
	r := newHeroRig(nil)
	r.run(3, 0.5)
	if r.c.State() != StateLane {
		t.Fatalf("state = %s, want lane", r.c.State())
	}
	if r.hero.turn == 0 && r.hero.throttle == 0 {
		t.Fatal("lane marching produced no movement intent")
	}
}

func TestHeroRetreatsAndRecovers(t *testing.T) {
	r := newHeroRig(nil)
	r.hero.hp = 20 // below the retreat fraction
	r.run(3, 0.5)
	if r.c.State() != StateRetreat {
		t.Fatalf("state = %s, want retreat at low health", r.c.State())
	}
	// Health between retreat and resume: stays home.
	r.hero.hp = 50
	r.run(3, 0.5)
	if r.c.State() != StateRetreat {
		t.Fatalf("state = %s, want retreat until health recovers", r.c.State())
	}
	r.hero.hp = 80
	r.run(3, 0.5)
	if r.c.State() != StateLane {
		t.Fatalf("state = %s, want lane after recovery", r.c.State())
	}
}

func TestHeroFightsNearbyEnemy(t *testing.T) {
	r := newHeroRig(nil)
	r.enemy.pos = common.Vec3{X: 20}
	r.run(3, 0.5)
	if r.c.State() != StateFight {
		t.Fatalf("state = %s, want fight", r.c.State())
	}
	// Dead enemy: immediately back to lane on the next decision.
	r.enemy.dead = true
	r.run(3, 0.5)
	if r.c.State() != StateLane {
		t.Fatalf("state = %s, want lane after enemy death", r.c.State())
	}
}

func TestHeroRetreatPreemptsFight(t *testing.T) {
	r := newHeroRig(nil)
	r.enemy.pos = common.Vec3{X: 20}
	r.hero.hp = 20
	r.run(3, 0.5)
	if r.c.State() != StateRetreat {
		t.Fatalf("state = %s, retreat must preempt fight", r.c.State())
	}
}

func TestHeroBacksOffWhenTooClose(t *testing.T) {
	r := newHeroRig(nil)
	tun := r.c.tun
	r.enemy.pos = common.Vec3{Z: tun.AttackRange * tun.TooCloseFactor * 0.5}
	r.run(3, 0.5)
	if r.c.State() != StateFight {
		t.Fatalf("state = %s, want fight", r.c.State())
	}
	r.c.Update(1.0) // converge the output filter
	if r.hero.throttle >= 0 {
		t.Fatalf("too-close fight should back up, throttle %v", r.hero.throttle)
	}
	if r.hero.fired == 0 {
		t.Fatal("hero should keep firing while backing up")
	}
}

func TestHeroContestsWhenHealthyAndClose(t *testing.T) {
	r := newHeroRig(nil)
	r.hero.pos = common.Vec3{X: 270} // inside contest range of (300, 0)
	r.run(3, 0.5)
	if r.c.State() != StateContest {
		t.Fatalf("state = %s, want contest", r.c.State())
	}
	// Drop below the contest health floor: lane instead.
	r.hero.hp = 40
	r.run(3, 0.5)
	if r.c.State() != StateLane {
		t.Fatalf("state = %s, want lane when too hurt to contest", r.c.State())
	}
}

func TestHeroLaneAdvancesWaypoints(t *testing.T) {
	r := newHeroRig(nil)
	r.run(3, 0.5)
	if r.c.laneIdx != 0 {
		t.Fatalf("laneIdx = %d, want 0", r.c.laneIdx)
	}
	r.hero.pos = common.Vec3{Z: 20} // standing on waypoint 0
	r.run(1, 0.1)
	if r.c.laneIdx != 1 {
		t.Fatalf("laneIdx = %d, want 1 after reaching the first waypoint", r.c.laneIdx)
	}
}

func TestHeroAbilityDecisions(t *testing.T) {
	r := newHeroRig(DefaultAdvisor())
	r.enemy.pos = common.Vec3{X: 20}
	r.hero.hp = 50 // mid-band
	r.run(10, 0.5) // past the ability interval while fighting
	if len(r.casts) == 0 {
		t.Fatal("advisor never requested the nuke in a mid-band fight")
	}
	for _, ab := range r.casts {
		if ab != "nuke" {
			t.Fatalf("unexpected ability %q", ab)
		}
	}

	// Healthy heroes save it.
	r2 := newHeroRig(DefaultAdvisor())
	r2.enemy.pos = common.Vec3{X: 20}
	r2.run(10, 0.5)
	if len(r2.casts) != 0 {
		t.Fatalf("advisor cast %v at full health", r2.casts)
	}
}
