package ai

import (
	"github.com/warhoundgame/warhound/common"
	"github.com/warhoundgame/warhound/nav"
)

// PathState tracks one agent's current path. It is owned by exactly
// one controller and lives in the agent arena next to the unit it
// drives. Invariant: Index < max(1, len(Waypoints)).
type PathState struct {
	Waypoints []common.Vec3
	Index     int
	Age       float64
	LastGoal  common.Vec3
	hasGoal   bool
}

// Clear abandons the current path and goal.
func (p *PathState) Clear() {
	p.Waypoints = nil
	p.Index = 0
	p.Age = 0
	p.hasGoal = false
}

// NeedsReplan reports whether a fresh query is due: the path aged out,
// the goal drifted, or there is no path at all.
func (p *PathState) NeedsReplan(goal common.Vec3, interval, drift float64) bool {
	if !p.hasGoal || len(p.Waypoints) == 0 {
		return true
	}
	if p.Age >= interval {
		return true
	}
	return common.FlatDist(goal, p.LastGoal) > drift
}

// SetPath installs a fresh query result and skips any leading
// waypoints already within arrive of pos, so a path that starts where
// the agent stands does not send it backwards.
func (p *PathState) SetPath(waypoints []common.Vec3, pos, goal common.Vec3, arrive float64) {
	p.Waypoints = waypoints
	p.Index = 0
	p.Age = 0
	p.LastGoal = goal
	p.hasGoal = true
	for p.Index < len(p.Waypoints)-1 && common.FlatDist(pos, p.Waypoints[p.Index]) <= arrive {
		p.Index++
	}
}

// Current returns the active waypoint, advancing past any the agent
// has already reached. ok is false with no usable path.
func (p *PathState) Current(pos common.Vec3, arrive float64) (common.Vec3, bool) {
	if len(p.Waypoints) == 0 {
		return common.Vec3{}, false
	}
	for p.Index < len(p.Waypoints)-1 && common.FlatDist(pos, p.Waypoints[p.Index]) <= arrive {
		p.Index++
	}
	return p.Waypoints[p.Index], true
}

// AtEnd reports whether the agent stands on the final waypoint.
func (p *PathState) AtEnd(pos common.Vec3, arrive float64) bool {
	if len(p.Waypoints) == 0 {
		return false
	}
	return p.Index == len(p.Waypoints)-1 && common.FlatDist(pos, p.Waypoints[p.Index]) <= arrive
}

// SteerPoint resolves the point to steer at for goal, replanning
// through q when due. A nil or not-ready query, or an unreachable
// goal, falls back to the raw goal; pathfinding is advisory.
func (p *PathState) SteerPoint(q nav.Query, pos, goal common.Vec3, replan float64, tun *Tuning, dt float64) common.Vec3 {
	p.Age += dt
	if q == nil || !q.Ready() {
		return goal
	}
	if p.NeedsReplan(goal, replan, tun.GoalDrift) {
		wps := q.FindPath(pos, goal)
		if wps == nil {
			// Keep the stale goal stamp so we do not hammer the
			// backend with a doomed query every tick.
			p.Waypoints = nil
			p.Index = 0
			p.Age = 0
			p.LastGoal = goal
			p.hasGoal = true
			return goal
		}
		p.SetPath(wps, pos, goal, tun.WaypointArrive)
	}
	if wp, ok := p.Current(pos, tun.WaypointArrive); ok {
		return wp
	}
	return goal
}
