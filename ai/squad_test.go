package ai

import (
	"math"
	"testing"

	"github.com/warhoundgame/warhound/common"
)

func newTestSquad(hostiles ...Target) (*SquadController, *testAgent) {
	leader := newTestAgent(common.Vec3{})
	tun := DefaultTuning()
	var src TargetSource
	if len(hostiles) > 0 {
		src = func() []Target { return hostiles }
	}
	return NewSquadController(leader, src, nil, tun, testRNG()), leader
}

func TestFormationSlotLayout(t *testing.T) {
	s, leader := newTestSquad()
	tun := s.tun
	cases := []struct {
		name    string
		heading float64
		slot    int
		want    common.Vec3
	}{
		{"slot0_facing_north", 0, 0, common.Vec3{X: -tun.FormationSpacing, Z: -tun.FormationSpacing}},
		{"slot1_center_column", 0, 1, common.Vec3{Z: -tun.FormationSpacing}},
		{"slot2_right_column", 0, 2, common.Vec3{X: tun.FormationSpacing, Z: -tun.FormationSpacing}},
		{"slot3_second_row", 0, 3, common.Vec3{X: -tun.FormationSpacing, Z: -2 * tun.FormationSpacing}},
		{"slot1_facing_east", math.Pi / 2, 1, common.Vec3{X: -tun.FormationSpacing}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			leader.heading = c.heading
			got := s.FormationSlot(c.slot)
			if common.FlatDist(got, c.want) > 1e-9 {
				t.Fatalf("slot %d = %+v, want %+v", c.slot, got, c.want)
			}
		})
	}
}

func TestSeparationIncreasesDistance(t *testing.T) {
	s, _ := newTestSquad()
	a := newTestAgent(common.Vec3{X: 0})
	b := newTestAgent(common.Vec3{X: 1})
	s.AddFollower(a)
	s.AddFollower(b)

	before := common.FlatDist(a.pos, b.pos)
	s.Update(0.1)
	after := common.FlatDist(a.pos, b.pos)
	if after <= before {
		t.Fatalf("separation pass did not push agents apart: %v -> %v", before, after)
	}
}

func TestSeparationHandlesCoincidentAgents(t *testing.T) {
	s, _ := newTestSquad()
	a := newTestAgent(common.Vec3{X: 3, Z: 3})
	b := newTestAgent(common.Vec3{X: 3, Z: 3})
	s.AddFollower(a)
	s.AddFollower(b)
	s.Update(0.1)
	if common.FlatDist(a.pos, b.pos) == 0 {
		t.Fatal("coincident agents were not separated")
	}
}

func TestSeparationSkipsDead(t *testing.T) {
	s, _ := newTestSquad()
	a := newTestAgent(common.Vec3{X: 0})
	b := newTestAgent(common.Vec3{X: 1})
	b.dead = true
	s.AddFollower(a)
	s.AddFollower(b)
	s.Update(0.1)
	if b.pos.X != 1 {
		t.Fatalf("dead follower was nudged to %+v", b.pos)
	}
}

func TestFollowerEngagesNearestHostile(t *testing.T) {
	far := newTestAgent(common.Vec3{X: 30})
	near := newTestAgent(common.Vec3{X: 10})
	s, _ := newTestSquad(far, near)
	f := newTestAgent(common.Vec3{})
	f.heading = math.Pi / 2 // facing +X, straight at both hostiles
	f.turret = math.Pi / 2
	s.AddFollower(f)

	for i := 0; i < 10; i++ {
		s.Update(0.1)
	}
	if got := s.FollowerState(0); got != StateEngage {
		t.Fatalf("state = %s, want engage", got)
	}
	// Near hostile is inside default attack range and dead ahead: fires.
	if f.fired == 0 {
		t.Fatal("aligned follower in range never fired")
	}
}

func TestFollowerReturnsToFormationWhenHostilesDie(t *testing.T) {
	hostile := newTestAgent(common.Vec3{X: 10})
	s, _ := newTestSquad(hostile)
	f := newTestAgent(common.Vec3{X: 2})
	s.AddFollower(f)
	for i := 0; i < 10; i++ {
		s.Update(0.1)
	}
	if got := s.FollowerState(0); got != StateEngage {
		t.Fatalf("setup failed, state %s", got)
	}
	hostile.dead = true
	for i := 0; i < 10; i++ {
		s.Update(0.1)
	}
	if got := s.FollowerState(0); got != StateFollow {
		t.Fatalf("state = %s, want follow after hostiles die", got)
	}
}

func TestFollowerIdlesInsideArrivalRadius(t *testing.T) {
	s, leader := newTestSquad()
	slot := s.FormationSlot(0)
	_ = leader
	f := newTestAgent(slot) // spawn exactly on the slot
	s.AddFollower(f)
	s.Update(1.0)
	if f.throttle != 0 {
		t.Fatalf("follower on its slot should idle, throttle %v", f.throttle)
	}
}

func TestEngageThrottleNeverZero(t *testing.T) {
	hostile := newTestAgent(common.Vec3{X: 10})
	s, _ := newTestSquad(hostile)
	f := newTestAgent(common.Vec3{})
	// Facing away: pure rotation would normally zero the throttle.
	f.heading = -math.Pi / 2
	s.AddFollower(f)
	for i := 0; i < 10; i++ {
		s.Update(0.1)
	}
	s.Update(1.0) // converge the filter
	if got := s.FollowerState(0); got != StateEngage {
		t.Fatalf("setup failed, state %s", got)
	}
	if f.throttle < s.tun.MinEngageThrottle-1e-9 {
		t.Fatalf("engaging throttle %v below floor %v", f.throttle, s.tun.MinEngageThrottle)
	}
}
