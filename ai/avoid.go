package ai

import "github.com/warhoundgame/warhound/common"

// Raycaster casts a ray against static scene geometry and reports the
// hit distance. Implementations must exclude the querying agent and
// its current target from the results.
type Raycaster interface {
	Raycast(origin, dir common.Vec3, maxDist float64) (dist float64, hit bool)
}

// ObstacleAvoider produces an additive steering bias that pushes a
// forward-moving agent away from nearby static geometry. Rays are
// re-cast on a fixed interval to bound raycast cost; between casts the
// last bias is reused.
type ObstacleAvoider struct {
	rays  Raycaster
	tun   *Tuning
	timer float64
	bias  float64
}

// NewObstacleAvoider wraps a raycaster. A nil raycaster yields a
// no-op avoider.
func NewObstacleAvoider(rays Raycaster, tun *Tuning) *ObstacleAvoider {
	return &ObstacleAvoider{rays: rays, tun: tun, timer: tun.AvoidInterval}
}

// Bias returns the current steering bias for an agent at pos facing
// forward. It contributes only while the agent intends to move
// forward; rotation-only behavior is never overridden.
func (o *ObstacleAvoider) Bias(pos, forward common.Vec3, throttle, dt float64) float64 {
	if o == nil || o.rays == nil {
		return 0
	}
	if throttle <= 0 {
		return 0
	}
	o.timer += dt
	if o.timer < o.tun.AvoidInterval {
		return o.bias
	}
	o.timer = 0
	o.bias = o.evaluate(pos, forward)
	return o.bias
}

func (o *ObstacleAvoider) evaluate(pos, forward common.Vec3) float64 {
	reach := o.tun.AvoidRange
	center, centerHit := o.rays.Raycast(pos, forward, reach)
	leftDir := forward.RotateY(-o.tun.AvoidSpread)
	rightDir := forward.RotateY(o.tun.AvoidSpread)
	left, leftHit := o.rays.Raycast(pos, leftDir, reach)
	right, rightHit := o.rays.Raycast(pos, rightDir, reach)
	if !leftHit {
		left = reach
	}
	if !rightHit {
		right = reach
	}

	if centerHit && center < reach {
		// Steer toward whichever flank is clearer.
		strength := o.tun.AvoidBias * (1 - center/reach)
		if left > right {
			return -strength
		}
		return strength
	}
	// Only a flank is close: nudge away from it.
	if leftHit && left < reach/2 {
		return o.tun.AvoidBias * 0.5 * (1 - left/(reach/2))
	}
	if rightHit && right < reach/2 {
		return -o.tun.AvoidBias * 0.5 * (1 - right/(reach/2))
	}
	return 0
}
