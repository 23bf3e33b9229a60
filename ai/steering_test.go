package ai

import (
	"math"
	"testing"

	"github.com/warhoundgame/warhound/common"
)

func TestTurnAngleSignAndRange(t *testing.T) {
	fwd := common.Vec3{Z: 1}
	cases := []struct {
		name string
		dir  common.Vec3
		want float64
	}{
		{"dead_ahead", common.Vec3{Z: 1}, 0},
		{"hard_right", common.Vec3{X: 1}, math.Pi / 2},
		{"hard_left", common.Vec3{X: -1}, -math.Pi / 2},
		{"behind", common.Vec3{Z: -1}, math.Pi},
		{"right_45", common.Vec3{X: 1, Z: 1}, math.Pi / 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := TurnAngle(fwd, c.dir)
			if math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("TurnAngle = %v, want %v", got, c.want)
			}
			if got <= -math.Pi || got > math.Pi {
				t.Fatalf("TurnAngle %v outside (-π, π]", got)
			}
		})
	}
}

func TestSteeringInputClamps(t *testing.T) {
	if got := SteeringInput(2, 2.5); got != 1 {
		t.Fatalf("large positive angle should saturate at 1, got %v", got)
	}
	if got := SteeringInput(-2, 2.5); got != -1 {
		t.Fatalf("large negative angle should saturate at -1, got %v", got)
	}
	if got := SteeringInput(0.1, 2.0); math.Abs(got-0.2) > 1e-12 {
		t.Fatalf("small angle should scale by gain, got %v", got)
	}
}

func TestForwardThrottleTiers(t *testing.T) {
	tun := DefaultTuning()
	cases := []struct {
		name  string
		angle float64
		want  float64
	}{
		{"aligned", 0.2, 1},
		{"slightly_off", 0.7, tun.MisalignedThrottle},
		{"way_off", 1.5, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ForwardThrottle(c.angle, true, tun); got != c.want {
				t.Fatalf("ForwardThrottle(%v) = %v, want %v", c.angle, got, c.want)
			}
		})
	}
	if ForwardThrottle(0, false, tun) != 0 {
		t.Fatal("wantForward=false must return zero throttle")
	}
}

func TestApproachThrottleHoldsNear(t *testing.T) {
	tun := DefaultTuning()
	if got := ApproachThrottle(5, 0, 10, tun); got != tun.NearThrottle {
		t.Fatalf("inside hold range should crawl, got %v", got)
	}
	if got := ApproachThrottle(50, 0, 10, tun); got != 1 {
		t.Fatalf("far and aligned should be full speed, got %v", got)
	}
	if got := ApproachThrottle(50, 0.8, 10, tun); got != tun.MisalignedThrottle {
		t.Fatalf("far but misaligned should be reduced, got %v", got)
	}
}

// Scenario from the tactical layer's contract: agent at origin facing
// +Z with a target at (10, 0, 0) must saturate right steering and
// rotate in place before driving.
func TestTurnInPlaceScenario(t *testing.T) {
	tun := DefaultTuning()
	forward := common.Vec3{Z: 1}
	toTarget := common.Vec3{X: 10}.Normalized()

	angle := TurnAngle(forward, toTarget)
	if math.Abs(angle-math.Pi/2) > 1e-9 {
		t.Fatalf("angle = %v, want π/2", angle)
	}
	if got := SteeringInput(angle, tun.HullGain); got != 1 {
		t.Fatalf("steering should saturate at +1, got %v", got)
	}
	if got := ForwardThrottle(angle, true, tun); got != 0 {
		t.Fatalf("throttle should be zero while rotating in place, got %v", got)
	}
}
