// Package ai turns unit goals into per-tick movement and aim intents.
// Controllers never surface errors: unreachable goals, missing navmesh
// data, and dead targets all degrade to direct steering or idle.
package ai

import (
	"math"

	"github.com/warhoundgame/warhound/common"
)

// TurnAngle is the signed angle in (-π, π] from forward to the
// direction of dir, both projected on the XZ plane. Positive means dir
// lies to the agent's right.
func TurnAngle(forward, dir common.Vec3) float64 {
	f := forward.Flat()
	d := dir.Flat()
	return math.Atan2(f.CrossY(d), f.Dot(d))
}

// SteeringInput maps an angular error to a control input in [-1, 1].
func SteeringInput(angle, gain float64) float64 {
	return common.Clamp(angle*gain, -1, 1)
}

// ForwardThrottle decides how hard to drive while turning toward a
// goal. Above the turn-in-place threshold the unit rotates without
// advancing, which avoids wide arcs when it still faces the wrong way.
func ForwardThrottle(angle float64, wantForward bool, tun *Tuning) float64 {
	if !wantForward {
		return 0
	}
	a := math.Abs(angle)
	switch {
	case a < tun.TurnInPlaceAngle:
		return 1
	case a < 2*tun.TurnInPlaceAngle:
		return tun.MisalignedThrottle
	default:
		return 0
	}
}

// ApproachThrottle tiers throttle by distance and alignment for
// approach-and-fire behaviors so the unit does not overshoot firing
// range.
func ApproachThrottle(dist, angle, holdRange float64, tun *Tuning) float64 {
	a := math.Abs(angle)
	switch {
	case dist <= holdRange:
		return tun.NearThrottle
	case a < tun.TurnInPlaceAngle:
		return 1
	case a < 2*tun.TurnInPlaceAngle:
		return tun.MisalignedThrottle
	default:
		return 0
	}
}

// lowpass moves out toward raw with rate proportional to elapsed time,
// removing single-frame snaps from controller outputs.
func lowpass(out, raw, rate, dt float64) float64 {
	return common.Lerp(out, raw, math.Min(1, rate*dt))
}
