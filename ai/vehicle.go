package ai

import (
	"math"
	"math/rand"

	"github.com/warhoundgame/warhound/common"
	"github.com/warhoundgame/warhound/nav"
)

// Solo vehicle states.
const (
	StatePatrol StateID = "patrol"
	StateChase  StateID = "chase"
	StateAttack StateID = "attack"
)

// VehicleController runs the patrol/chase/attack machine for one
// AI vehicle hunting one target. State transitions use hysteresis:
// the chase exit range is wider than the detect range so a target
// dancing on the boundary cannot make the machine flap.
type VehicleController struct {
	agent  Agent
	target Target
	nav    nav.Query
	avoid  *ObstacleAvoider
	tun    *Tuning
	rng    *rand.Rand
	bounds nav.Rect

	fsm   *Machine[*VehicleController]
	path  PathState
	stuck StuckDetector

	patrolPoint common.Vec3
	dwell       float64
	sweepDir    float64
	strafeDir   float64
	strafeTimer float64
	cooldown    float64

	rawTurn     float64
	rawThrottle float64
	rawAim      float64
	outTurn     float64
	outThrottle float64
	outAim      float64
}

// NewVehicleController wires a vehicle agent against a target. bounds
// limits patrol destinations; avoid may be nil.
func NewVehicleController(agent Agent, target Target, q nav.Query, avoid *ObstacleAvoider, bounds nav.Rect, tun *Tuning, rng *rand.Rand) *VehicleController {
	c := &VehicleController{
		agent:    agent,
		target:   target,
		nav:      q,
		avoid:    avoid,
		tun:      tun,
		rng:      rng,
		bounds:   bounds,
		sweepDir: 1,
	}
	c.fsm = NewMachine(StatePatrol, tun.VehicleDecide,
		map[StateID]State[*VehicleController]{
			StatePatrol: {Enter: (*VehicleController).enterPatrol, Tick: (*VehicleController).tickPatrol},
			StateChase:  {Enter: (*VehicleController).enterChase, Tick: (*VehicleController).tickChase},
			StateAttack: {Enter: (*VehicleController).enterAttack, Tick: (*VehicleController).tickAttack},
		},
		[]Rule[*VehicleController]{
			{From: StatePatrol, To: StateChase, When: func(c *VehicleController) bool {
				return c.targetAlive() && c.targetDist() < c.tun.DetectRange
			}},
			{From: StateChase, To: StateAttack, When: func(c *VehicleController) bool {
				return c.targetAlive() && c.targetDist() < attackRange(c.agent, c.tun.AttackRange)
			}},
			{From: StateChase, To: StatePatrol, When: func(c *VehicleController) bool {
				return !c.targetAlive() || c.targetDist() > c.tun.DetectRange*c.tun.DetectExitFactor
			}},
			{From: StateAttack, To: StatePatrol, When: func(c *VehicleController) bool {
				return !c.targetAlive()
			}},
			{From: StateAttack, To: StateChase, When: func(c *VehicleController) bool {
				return c.targetDist() > attackRange(c.agent, c.tun.AttackRange)*c.tun.AttackExitFactor
			}},
		})
	return c
}

// State exposes the current FSM state for telemetry.
func (c *VehicleController) State() StateID { return c.fsm.Current() }

// Path exposes the remaining waypoints for debug overlays. Read-only.
func (c *VehicleController) Path() []common.Vec3 {
	if c.path.Waypoints == nil || c.path.Index >= len(c.path.Waypoints) {
		return nil
	}
	return c.path.Waypoints[c.path.Index:]
}

// Update runs one tick. Raw per-state outputs are low-pass filtered
// before being written so inputs never snap frame to frame.
func (c *VehicleController) Update(dt float64) {
	if !c.agent.Alive() {
		c.agent.SetMoveIntent(0, 0)
		c.agent.SetAimIntent(0)
		return
	}
	c.rawTurn, c.rawThrottle, c.rawAim = 0, 0, 0
	if c.cooldown > 0 {
		c.cooldown -= dt
	}

	c.fsm.Update(c, dt)

	pos := c.agent.Position()
	moving := c.rawThrottle > 0
	if moving && c.stuck.Update(pos, dt, c.tun.StuckWindow, c.tun.StuckMinProgress) {
		c.path.Clear()
		c.rawTurn, c.rawThrottle = 0, 0
		if c.fsm.Current() == StatePatrol {
			c.pickPatrolPoint()
		}
	} else if !moving {
		c.stuck.Disarm()
	}

	c.rawTurn = common.Clamp(c.rawTurn+c.avoid.Bias(pos, c.agent.Forward(), c.rawThrottle, dt), -1, 1)

	rate := c.tun.FilterRate
	c.outTurn = lowpass(c.outTurn, c.rawTurn, rate, dt)
	c.outThrottle = lowpass(c.outThrottle, c.rawThrottle, rate, dt)
	c.outAim = lowpass(c.outAim, c.rawAim, rate, dt)
	c.agent.SetMoveIntent(c.outTurn, c.outThrottle)
	c.agent.SetAimIntent(c.outAim)
}

func (c *VehicleController) targetAlive() bool {
	return c.target != nil && c.target.Alive()
}

func (c *VehicleController) targetDist() float64 {
	if c.target == nil {
		return math.Inf(1)
	}
	return common.FlatDist(c.agent.Position(), c.target.Position())
}

// steerToward writes hull intents that rotate toward point and drive
// when sufficiently aligned.
func (c *VehicleController) steerToward(point common.Vec3, wantForward bool) float64 {
	angle := TurnAngle(c.agent.Forward(), point.Sub(c.agent.Position()))
	c.rawTurn = SteeringInput(angle, c.tun.HullGain)
	c.rawThrottle = ForwardThrottle(angle, wantForward, c.tun)
	return angle
}

// aimAt writes the turret intent and returns the remaining aim error.
func (c *VehicleController) aimAt(point common.Vec3) float64 {
	angle := TurnAngle(aimForward(c.agent), point.Sub(c.agent.Position()))
	c.rawAim = SteeringInput(angle, c.tun.TurretGain)
	return angle
}

func (c *VehicleController) pickPatrolPoint() {
	p := common.Vec3{
		X: c.bounds.MinX + c.rng.Float64()*(c.bounds.MaxX-c.bounds.MinX),
		Z: c.bounds.MinZ + c.rng.Float64()*(c.bounds.MaxZ-c.bounds.MinZ),
	}
	if c.nav != nil && c.nav.Ready() {
		if snapped, ok := c.nav.FindClosestPoint(p); ok {
			p = snapped
		}
	}
	c.patrolPoint = p
	c.path.Clear()
	c.stuck.Reset(c.agent.Position())
}

func (c *VehicleController) enterPatrol() {
	c.dwell = 0
	c.pickPatrolPoint()
}

func (c *VehicleController) tickPatrol(dt float64) {
	if c.dwell > 0 {
		c.dwell -= dt
		c.rawAim = c.sweepDir * 0.5
		if c.dwell <= 0 {
			c.pickPatrolPoint()
		}
		return
	}
	pos := c.agent.Position()
	if common.FlatDist(pos, c.patrolPoint) <= c.tun.WaypointArrive {
		c.dwell = c.tun.DwellMin + c.rng.Float64()*(c.tun.DwellMax-c.tun.DwellMin)
		if c.rng.Intn(2) == 0 {
			c.sweepDir = -c.sweepDir
		}
		c.path.Clear()
		return
	}
	wp := c.path.SteerPoint(c.nav, pos, c.patrolPoint, c.tun.VehicleReplan, c.tun, dt)
	c.steerToward(wp, true)
}

func (c *VehicleController) enterChase() {
	c.path.Clear()
	c.stuck.Reset(c.agent.Position())
}

func (c *VehicleController) tickChase(dt float64) {
	if !c.targetAlive() {
		return
	}
	pos := c.agent.Position()
	goal := c.target.Position()
	wp := c.path.SteerPoint(c.nav, pos, goal, c.tun.VehicleReplan, c.tun, dt)
	c.steerToward(wp, true)
	c.aimAt(goal) // pre-aim during the approach
}

func (c *VehicleController) enterAttack() {
	c.strafeDir = 1
	if c.rng.Intn(2) == 0 {
		c.strafeDir = -1
	}
	c.strafeTimer = c.tun.StrafeFlipMin + c.rng.Float64()*(c.tun.StrafeFlipMax-c.tun.StrafeFlipMin)
	c.path.Clear()
}

func (c *VehicleController) tickAttack(dt float64) {
	if !c.targetAlive() {
		return
	}
	pos := c.agent.Position()
	goal := c.target.Position()
	dist := c.targetDist()
	aimErr := c.aimAt(goal)

	hi := c.tun.OptimalRange * (1 + c.tun.RangeBand)
	lo := c.tun.OptimalRange * (1 - c.tun.RangeBand)
	switch {
	case dist > hi:
		angle := TurnAngle(c.agent.Forward(), goal.Sub(pos))
		c.rawTurn = SteeringInput(angle, c.tun.HullGain)
		c.rawThrottle = ApproachThrottle(dist, angle, hi, c.tun)
	case dist < lo:
		// Back out of the band while staying on target.
		angle := TurnAngle(c.agent.Forward(), goal.Sub(pos))
		c.rawTurn = SteeringInput(angle, c.tun.HullGain)
		c.rawThrottle = -c.tun.StrafeThrottle
	default:
		c.strafeTimer -= dt
		if c.strafeTimer <= 0 {
			c.strafeDir = -c.strafeDir
			c.strafeTimer = c.tun.StrafeFlipMin + c.rng.Float64()*(c.tun.StrafeFlipMax-c.tun.StrafeFlipMin)
		}
		lateral := goal.Sub(pos).Normalized().RightOf().Scale(c.strafeDir)
		angle := TurnAngle(c.agent.Forward(), lateral)
		c.rawTurn = SteeringInput(angle, c.tun.HullGain)
		c.rawThrottle = c.tun.StrafeThrottle
	}

	if math.Abs(aimErr) < c.tun.FireAngle && dist <= attackRange(c.agent, c.tun.AttackRange) && c.cooldown <= 0 {
		c.agent.Fire()
		c.cooldown = c.tun.FireCooldown + (c.rng.Float64()*2-1)*c.tun.FireJitter
	}
}
