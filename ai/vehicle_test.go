package ai

import (
	"math"
	"testing"

	"github.com/warhoundgame/warhound/common"
	"github.com/warhoundgame/warhound/nav"
)

var testBounds = nav.Rect{MinX: -100, MinZ: -100, MaxX: 100, MaxZ: 100}

func newTestVehicle(agentPos, targetPos common.Vec3, q *stubNav) (*VehicleController, *testAgent, *testAgent) {
	agent := newTestAgent(agentPos)
	target := newTestAgent(targetPos)
	tun := DefaultTuning()
	var query nav.Query
	if q != nil {
		query = q
	}
	c := NewVehicleController(agent, target, query, nil, testBounds, tun, testRNG())
	return c, agent, target
}

func settle(c *VehicleController, ticks int, dt float64) {
	for i := 0; i < ticks; i++ {
		c.Update(dt)
	}
}

func TestVehicleDetectsAndChases(t *testing.T) {
	c, _, _ := newTestVehicle(common.Vec3{}, common.Vec3{X: 40}, nil)
	settle(c, 8, 0.1) // past the decision interval
	if c.State() != StateChase {
		t.Fatalf("state = %s, want chase (target inside detect range)", c.State())
	}
}

func TestVehicleHysteresisAtDetectBoundary(t *testing.T) {
	tun := DefaultTuning()
	c, _, target := newTestVehicle(common.Vec3{}, common.Vec3{X: tun.DetectRange - 1}, nil)
	settle(c, 8, 0.1)
	if c.State() != StateChase {
		t.Fatalf("setup failed, state %s", c.State())
	}
	// Oscillate the target across the naive detect boundary. The exit
	// threshold is wider, so chase must hold.
	for i := 0; i < 40; i++ {
		off := tun.DetectRange + 1
		if i%2 == 0 {
			off = tun.DetectRange - 1
		}
		target.pos = common.Vec3{X: off}
		c.Update(0.1)
		if c.State() != StateChase {
			t.Fatalf("flapped to %s at step %d", c.State(), i)
		}
	}
	// Beyond the widened exit range the vehicle does give up.
	target.pos = common.Vec3{X: tun.DetectRange*tun.DetectExitFactor + 5}
	settle(c, 8, 0.1)
	if c.State() != StatePatrol {
		t.Fatalf("state = %s, want patrol after losing the target", c.State())
	}
}

func TestVehicleFallbackWithoutNavmesh(t *testing.T) {
	q := &stubNav{ready: false}
	c, agent, _ := newTestVehicle(common.Vec3{}, common.Vec3{X: 40}, q)
	for i := 0; i < 50; i++ {
		c.Update(0.1)
		if math.IsNaN(agent.turn) || math.IsNaN(agent.throttle) {
			t.Fatal("intent went NaN")
		}
	}
	if q.calls != 0 {
		t.Fatalf("controller queried a not-ready navmesh %d times", q.calls)
	}
	// Chasing straight at the raw goal: moving intent must be live.
	if c.State() != StateChase {
		t.Fatalf("state = %s, want chase", c.State())
	}
	if agent.turn == 0 && agent.throttle == 0 {
		t.Fatal("no movement intent produced under nav fallback")
	}
}

func TestVehicleAttackFireGating(t *testing.T) {
	tun := DefaultTuning()
	// In the optimal band, turret already on target.
	c, agent, _ := newTestVehicle(common.Vec3{}, common.Vec3{Z: tun.OptimalRange}, nil)
	agent.heading = 0 // facing +Z, straight at the target
	agent.turret = 0
	settle(c, 12, 0.1)
	if c.State() != StateAttack {
		t.Fatalf("state = %s, want attack", c.State())
	}
	if agent.fired == 0 {
		t.Fatal("aligned turret in range never fired")
	}
	// Cooldown gates immediate re-fire.
	fired := agent.fired
	c.Update(0.016)
	c.Update(0.016)
	if agent.fired != fired {
		t.Fatalf("fired %d extra shots inside cooldown", agent.fired-fired)
	}
}

func TestVehicleBacksOutWhenTooClose(t *testing.T) {
	tun := DefaultTuning()
	c, agent, _ := newTestVehicle(common.Vec3{}, common.Vec3{Z: tun.OptimalRange * 0.5}, nil)
	agent.heading = 0
	settle(c, 12, 0.1)
	if c.State() != StateAttack {
		t.Fatalf("state = %s, want attack", c.State())
	}
	c.Update(1.0) // full filter convergence in one step
	if agent.throttle >= 0 {
		t.Fatalf("too-close attack should reverse, throttle %v", agent.throttle)
	}
}

func TestVehicleStuckClearsIntent(t *testing.T) {
	c, agent, _ := newTestVehicle(common.Vec3{}, common.Vec3{X: 40}, nil)
	agent.heading = math.Pi / 2 // already facing the target: drives, never turns
	settle(c, 8, 0.1)           // reach chase, start driving
	if c.State() != StateChase {
		t.Fatalf("setup failed, state %s", c.State())
	}
	// The agent never actually moves; one full stuck window later the
	// goal is abandoned and the intent zeroed.
	c.Update(DefaultTuning().StuckWindow)
	if agent.turn != 0 || agent.throttle != 0 {
		t.Fatalf("intent not zeroed on stuck trip: turn=%v throttle=%v", agent.turn, agent.throttle)
	}
	if len(c.path.Waypoints) != 0 {
		t.Fatal("path not cleared on stuck trip")
	}
}

func TestVehicleDeadAgentIdles(t *testing.T) {
	c, agent, _ := newTestVehicle(common.Vec3{}, common.Vec3{X: 10}, nil)
	agent.dead = true
	c.Update(0.1)
	if agent.turn != 0 || agent.throttle != 0 || agent.aimTurn != 0 {
		t.Fatal("dead agent received non-zero intents")
	}
}
