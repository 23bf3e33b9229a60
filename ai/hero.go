package ai

import (
	"math"
	"math/rand"

	"github.com/warhoundgame/warhound/common"
	"github.com/warhoundgame/warhound/nav"
)

// Hero states.
const (
	StateIdle    StateID = "idle"
	StateLane    StateID = "lane"
	StateContest StateID = "contest"
	StateFight   StateID = "fight"
	StateRetreat StateID = "retreat"
)

// AbilityAdvisor decides which abilities to request right now. The
// controller only decides when to ask; casting is owned elsewhere.
type AbilityAdvisor interface {
	Decide(state string, healthFraction float64) []string
}

// AbilityCaster receives the controller's cast requests.
type AbilityCaster func(ability string)

// HeroConfig is the static setup for one autonomous hero.
type HeroConfig struct {
	// Lane is the ordered macro-waypoint list, already reversed for
	// the opposing side.
	Lane []common.Vec3
	// Home is the base position retreats path to.
	Home common.Vec3
	// Contest is the neutral area worth holding.
	Contest common.Vec3
}

// HeroController runs the idle/lane/contest/fight/retreat machine for
// a MOBA-style hero. Tactical choice happens on a ~1 s decision
// interval; path queries in fight re-run faster because the enemy
// moves.
type HeroController struct {
	agent    Agent
	enemy    Target
	hostiles TargetSource
	nav      nav.Query
	tun      *Tuning
	rng      *rand.Rand
	cfg      HeroConfig
	advisor  AbilityAdvisor
	caster   AbilityCaster

	fsm          *Machine[*HeroController]
	path         PathState
	stuck        StuckDetector
	laneIdx      int
	abilityTimer float64

	rawTurn     float64
	rawThrottle float64
	rawAim      float64
	outTurn     float64
	outThrottle float64
	outAim      float64
	firePending bool
	cooldown    float64
}

// NewHeroController wires a hero against its opposing hero. advisor
// and caster may be nil; hostiles supplies auto-attack candidates.
func NewHeroController(agent Agent, enemy Target, hostiles TargetSource, q nav.Query, cfg HeroConfig, advisor AbilityAdvisor, caster AbilityCaster, tun *Tuning, rng *rand.Rand) *HeroController {
	c := &HeroController{
		agent:    agent,
		enemy:    enemy,
		hostiles: hostiles,
		nav:      q,
		tun:      tun,
		rng:      rng,
		cfg:      cfg,
		advisor:  advisor,
		caster:   caster,
	}
	c.fsm = NewMachine(StateIdle, tun.HeroDecide,
		map[StateID]State[*HeroController]{
			StateIdle:    {},
			StateLane:    {Enter: (*HeroController).enterLane, Tick: (*HeroController).tickLane},
			StateContest: {Enter: (*HeroController).clearPath, Tick: (*HeroController).tickContest},
			StateFight:   {Enter: (*HeroController).clearPath, Tick: (*HeroController).tickFight},
			StateRetreat: {Enter: (*HeroController).clearPath, Tick: (*HeroController).tickRetreat},
		},
		c.rules())
	return c
}

// rules builds the shared transition table. Order encodes priority:
// retreat preempts everything, fight beats contest, lane is default.
func (c *HeroController) rules() []Rule[*HeroController] {
	lowHealth := func(c *HeroController) bool { return c.healthFraction() < c.tun.RetreatHealth }
	enemyClose := func(c *HeroController) bool {
		return c.enemyAlive() && c.enemyDist() < c.tun.FightRange
	}
	wantContest := func(c *HeroController) bool {
		return !enemyClose(c) &&
			c.healthFraction() >= c.tun.ContestMinHealth &&
			common.FlatDist(c.agent.Position(), c.cfg.Contest) < c.tun.ContestRange
	}

	var rules []Rule[*HeroController]
	for _, from := range []StateID{StateIdle, StateLane, StateContest, StateFight} {
		from := from
		rules = append(rules,
			Rule[*HeroController]{From: from, To: StateRetreat, When: lowHealth},
			Rule[*HeroController]{From: from, To: StateFight, When: enemyClose},
		)
	}
	rules = append(rules,
		Rule[*HeroController]{From: StateRetreat, To: StateLane, When: func(c *HeroController) bool {
			return c.healthFraction() > c.tun.ResumeHealth
		}},
		Rule[*HeroController]{From: StateIdle, To: StateContest, When: wantContest},
		Rule[*HeroController]{From: StateLane, To: StateContest, When: wantContest},
		Rule[*HeroController]{From: StateIdle, To: StateLane, When: func(*HeroController) bool { return true }},
		Rule[*HeroController]{From: StateFight, To: StateLane, When: func(c *HeroController) bool {
			return !c.enemyAlive() || c.enemyDist() > c.tun.FightRange*c.tun.DetectExitFactor
		}},
		Rule[*HeroController]{From: StateContest, To: StateLane, When: func(c *HeroController) bool {
			return !wantContest(c)
		}},
	)
	return rules
}

// State exposes the current FSM state.
func (c *HeroController) State() StateID { return c.fsm.Current() }

// Path exposes the remaining waypoints for debug overlays. Read-only.
func (c *HeroController) Path() []common.Vec3 {
	if c.path.Waypoints == nil || c.path.Index >= len(c.path.Waypoints) {
		return nil
	}
	return c.path.Waypoints[c.path.Index:]
}

// Update runs one tick and, on a slower timer, asks the ability
// advisor whether anything is worth casting.
func (c *HeroController) Update(dt float64) {
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
	if c.rawThrottle > 0 && c.stuck.Update(pos, dt, c.tun.StuckWindow, c.tun.StuckMinProgress) {
		c.path.Clear()
		c.rawTurn, c.rawThrottle = 0, 0
	}

	c.abilityTimer += dt
	if c.abilityTimer >= c.tun.AbilityInterval {
		c.abilityTimer = 0
		c.requestAbilities()
	}

	rate := c.tun.FilterRate
	c.outTurn = lowpass(c.outTurn, c.rawTurn, rate, dt)
	c.outThrottle = lowpass(c.outThrottle, c.rawThrottle, rate, dt)
	c.outAim = lowpass(c.outAim, c.rawAim, rate, dt)
	c.agent.SetMoveIntent(c.outTurn, c.outThrottle)
	c.agent.SetAimIntent(c.outAim)
}

func (c *HeroController) requestAbilities() {
	if c.advisor == nil || c.caster == nil {
		return
	}
	for _, ab := range c.advisor.Decide(string(c.fsm.Current()), c.healthFraction()) {
		if ab != "" {
			c.caster(ab)
		}
	}
}

func (c *HeroController) healthFraction() float64 {
	if v, ok := c.agent.(Vitals); ok {
		return v.HealthFraction()
	}
	return 1
}

func (c *HeroController) enemyAlive() bool {
	return c.enemy != nil && c.enemy.Alive()
}

func (c *HeroController) enemyDist() float64 {
	if c.enemy == nil {
		return math.Inf(1)
	}
	return common.FlatDist(c.agent.Position(), c.enemy.Position())
}

func (c *HeroController) clearPath() {
	c.path.Clear()
	c.stuck.Reset(c.agent.Position())
}

func (c *HeroController) steerToward(point common.Vec3) {
	angle := TurnAngle(c.agent.Forward(), point.Sub(c.agent.Position()))
	c.rawTurn = SteeringInput(angle, c.tun.HullGain)
	c.rawThrottle = ForwardThrottle(angle, true, c.tun)
}

// autoAttack aims at point and fires when lined up and in range.
func (c *HeroController) autoAttack(point common.Vec3, dist float64) {
	aimErr := TurnAngle(aimForward(c.agent), point.Sub(c.agent.Position()))
	c.rawAim = SteeringInput(aimErr, c.tun.TurretGain)
	if math.Abs(aimErr) < c.tun.FireAngle && dist <= attackRange(c.agent, c.tun.AttackRange) && c.cooldown <= 0 {
		c.agent.Fire()
		c.cooldown = c.tun.FireCooldown + (c.rng.Float64()*2-1)*c.tun.FireJitter
	}
}

// nearestHostile is the closest living auto-attack candidate in range.
func (c *HeroController) nearestHostile() (Target, float64) {
	if c.hostiles == nil {
		return nil, 0
	}
	pos := c.agent.Position()
	var best Target
	bestDist := attackRange(c.agent, c.tun.AttackRange)
	for _, t := range c.hostiles() {
		if t == nil || !t.Alive() {
			continue
		}
		d := common.FlatDist(pos, t.Position())
		if d <= bestDist {
			best = t
			bestDist = d
		}
	}
	return best, bestDist
}

func (c *HeroController) enterLane() {
	c.clearPath()
	// Resume from the nearest macro waypoint ahead of the current
	// index; a hero returning from a fight should not backtrack.
	pos := c.agent.Position()
	for c.laneIdx < len(c.cfg.Lane)-1 &&
		common.FlatDist(pos, c.cfg.Lane[c.laneIdx]) <= c.tun.LaneArrive {
		c.laneIdx++
	}
}

func (c *HeroController) tickLane(dt float64) {
	if len(c.cfg.Lane) == 0 {
		return
	}
	pos := c.agent.Position()
	goal := c.cfg.Lane[c.laneIdx]
	if common.FlatDist(pos, goal) <= c.tun.LaneArrive && c.laneIdx < len(c.cfg.Lane)-1 {
		c.laneIdx++
		c.path.Clear()
		goal = c.cfg.Lane[c.laneIdx]
	}
	wp := c.path.SteerPoint(c.nav, pos, goal, c.tun.HeroReplan, c.tun, dt)
	c.steerToward(wp)

	if hostile, d := c.nearestHostile(); hostile != nil {
		c.autoAttack(hostile.Position(), d)
	}
}

func (c *HeroController) tickContest(dt float64) {
	pos := c.agent.Position()
	if common.FlatDist(pos, c.cfg.Contest) > c.tun.LaneArrive {
		wp := c.path.SteerPoint(c.nav, pos, c.cfg.Contest, c.tun.HeroReplan, c.tun, dt)
		c.steerToward(wp)
	}
	if hostile, d := c.nearestHostile(); hostile != nil {
		c.autoAttack(hostile.Position(), d)
	}
}

func (c *HeroController) tickFight(dt float64) {
	if !c.enemyAlive() {
		return
	}
	pos := c.agent.Position()
	goal := c.enemy.Position()
	dist := c.enemyDist()
	rangeTo := attackRange(c.agent, c.tun.AttackRange)

	switch {
	case dist > rangeTo:
		// The enemy moves, so fight replans more often than any
		// other state.
		wp := c.path.SteerPoint(c.nav, pos, goal, c.tun.HeroFightReplan, c.tun, dt)
		c.steerToward(wp)
	case dist < rangeTo*c.tun.TooCloseFactor:
		// Too close: keep facing and shooting while backing up.
		angle := TurnAngle(c.agent.Forward(), goal.Sub(pos))
		c.rawTurn = SteeringInput(angle, c.tun.HullGain)
		c.rawThrottle = -c.tun.BackoffThrottle
	default:
		angle := TurnAngle(c.agent.Forward(), goal.Sub(pos))
		c.rawTurn = SteeringInput(angle, c.tun.HullGain)
	}
	c.autoAttack(goal, dist)
}

func (c *HeroController) tickRetreat(dt float64) {
	pos := c.agent.Position()
	if common.FlatDist(pos, c.cfg.Home) > c.tun.LaneArrive {
		wp := c.path.SteerPoint(c.nav, pos, c.cfg.Home, c.tun.HeroReplan, c.tun, dt)
		c.steerToward(wp)
	}
	// Regeneration while inside the healing radius is owned by the
	// combat layer; this controller only waits for health to recover.
}
