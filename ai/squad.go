package ai

import (
	"math"
	"math/rand"

	"github.com/warhoundgame/warhound/common"
	"github.com/warhoundgame/warhound/nav"
)

// Squad follower states.
const (
	StateFollow StateID = "follow"
	StateEngage StateID = "engage"
)

// TargetSource supplies the current hostile list each tick. The slice
// is read-only shared state; the squad never mutates it.
type TargetSource func() []Target

// follower is the per-agent slot in the squad arena. Slots keep their
// index for formation layout even when members die.
type follower struct {
	agent Agent
	fsm   *Machine[*followerTick]
	path  PathState
	stuck StuckDetector

	outTurn     float64
	outThrottle float64
	outAim      float64
}

// followerTick bundles one follower with the per-tick view it needs.
type followerTick struct {
	s       *SquadController
	f       *follower
	slot    int
	hostile Target
	dist    float64

	turn     float64
	throttle float64
	aim      float64
}

// SquadController drives N followers relative to a leader: formation
// marching, per-follower engagement, and a pairwise separation pass.
type SquadController struct {
	leader  Agent
	targets TargetSource
	nav     nav.Query
	tun     *Tuning
	rng     *rand.Rand

	followers []*follower
}

// NewSquadController creates a squad around leader. targets may be nil
// for a squad that only holds formation.
func NewSquadController(leader Agent, targets TargetSource, q nav.Query, tun *Tuning, rng *rand.Rand) *SquadController {
	return &SquadController{
		leader:  leader,
		targets: targets,
		nav:     q,
		tun:     tun,
		rng:     rng,
	}
}

// AddFollower appends an agent to the formation. Slot order is
// assignment order.
func (s *SquadController) AddFollower(a Agent) {
	f := &follower{agent: a}
	f.fsm = NewMachine(StateFollow, s.tun.SquadDecide,
		map[StateID]State[*followerTick]{
			StateFollow: {Tick: (*followerTick).tickFollow},
			StateEngage: {Enter: (*followerTick).enterEngage, Tick: (*followerTick).tickEngage},
		},
		[]Rule[*followerTick]{
			{From: StateFollow, To: StateEngage, When: func(t *followerTick) bool {
				return t.hostile != nil
			}},
			{From: StateEngage, To: StateFollow, When: func(t *followerTick) bool {
				return t.hostile == nil
			}},
		})
	s.followers = append(s.followers, f)
}

// Followers returns the live member count.
func (s *SquadController) Followers() int {
	n := 0
	for _, f := range s.followers {
		if f.agent.Alive() {
			n++
		}
	}
	return n
}

// FollowerState exposes a member's FSM state for telemetry.
func (s *SquadController) FollowerState(i int) StateID {
	if i < 0 || i >= len(s.followers) {
		return ""
	}
	return s.followers[i].fsm.Current()
}

// Update runs every follower then the separation pass.
func (s *SquadController) Update(dt float64) {
	for i, f := range s.followers {
		s.updateFollower(i, f, dt)
	}
	s.separate(dt)
}

func (s *SquadController) updateFollower(slot int, f *follower, dt float64) {
	if !f.agent.Alive() {
		f.agent.SetMoveIntent(0, 0)
		f.agent.SetAimIntent(0)
		return
	}

	t := &followerTick{s: s, f: f, slot: slot}
	t.hostile, t.dist = s.nearestHostile(f.agent.Position())

	f.fsm.Update(t, dt)

	// Raw intents were written by the state tick; smooth before apply.
	rate := s.tun.FilterRate
	f.outTurn = lowpass(f.outTurn, t.turn, rate, dt)
	f.outThrottle = lowpass(f.outThrottle, t.throttle, rate, dt)
	f.outAim = lowpass(f.outAim, t.aim, rate, dt)
	f.agent.SetMoveIntent(f.outTurn, f.outThrottle)
	f.agent.SetAimIntent(f.outAim)
}

// nearestHostile returns the closest living target inside engage
// range, or nil.
func (s *SquadController) nearestHostile(pos common.Vec3) (Target, float64) {
	if s.targets == nil {
		return nil, 0
	}
	var best Target
	bestDist := s.tun.EngageRange
	for _, t := range s.targets() {
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

// FormationSlot is the world-space goal for a follower slot: a
// row/column grid behind the leader, rotated by the leader's facing.
func (s *SquadController) FormationSlot(slot int) common.Vec3 {
	cols := s.tun.FormationCols
	if cols < 1 {
		cols = 1
	}
	row := slot/cols + 1
	col := slot % cols
	lateral := (float64(col) - float64(cols-1)/2) * s.tun.FormationSpacing
	back := float64(row) * s.tun.FormationSpacing

	fwd := s.leader.Forward().Normalized()
	right := fwd.RightOf()
	return s.leader.Position().
		Add(right.Scale(lateral)).
		Add(fwd.Scale(-back))
}

// separate applies equal-and-opposite positional nudges to every pair
// of live followers closer than the separation distance. Penalty-based
// repulsion, not a constraint solve.
func (s *SquadController) separate(dt float64) {
	for i := 0; i < len(s.followers); i++ {
		for j := i + 1; j < len(s.followers); j++ {
			a, b := s.followers[i].agent, s.followers[j].agent
			if !a.Alive() || !b.Alive() {
				continue
			}
			ab, ok1 := a.(Body)
			bb, ok2 := b.(Body)
			if !ok1 || !ok2 {
				continue
			}
			delta := a.Position().Sub(b.Position()).Flat()
			dist := delta.FlatLen()
			if dist >= s.tun.SeparationDist {
				continue
			}
			if dist == 0 {
				delta = common.Vec3{X: (s.rng.Float64() - 0.5) * 1e-3, Z: (s.rng.Float64() - 0.5) * 1e-3}
				dist = delta.FlatLen()
			}
			overlap := s.tun.SeparationDist - dist
			push := delta.Scale(1 / dist).Scale(overlap * s.tun.SeparationPush * dt * 0.5)
			ab.Nudge(push)
			bb.Nudge(push.Scale(-1))
		}
	}
}

// --- follower behaviors ---

func (t *followerTick) steerToward(point common.Vec3, throttle float64) {
	angle := TurnAngle(t.f.agent.Forward(), point.Sub(t.f.agent.Position()))
	t.turn = SteeringInput(angle, t.s.tun.HullGain)
	if throttle < 0 {
		t.throttle = ForwardThrottle(angle, true, t.s.tun)
	} else {
		t.throttle = throttle
	}
}

func (t *followerTick) enterEngage() {
	t.f.path.Clear()
	t.f.stuck.Reset(t.f.agent.Position())
}

func (t *followerTick) tickEngage(dt float64) {
	if t.hostile == nil {
		return
	}
	pos := t.f.agent.Position()
	goal := t.hostile.Position()
	wp := t.f.path.SteerPoint(t.s.nav, pos, goal, t.s.tun.SquadReplan, t.s.tun, dt)
	t.steerToward(wp, -1)

	// Engaging units always keep a little forward motion so they do
	// not drop into idle animation mid-fight.
	rangeTo := attackRange(t.f.agent, t.s.tun.EngageRange/2)
	if t.dist <= rangeTo {
		t.throttle = math.Max(t.throttle*0.5, t.s.tun.MinEngageThrottle)
	} else if t.throttle < t.s.tun.MinEngageThrottle {
		t.throttle = t.s.tun.MinEngageThrottle
	}

	aimErr := TurnAngle(aimForward(t.f.agent), goal.Sub(pos))
	t.aim = SteeringInput(aimErr, t.s.tun.TurretGain)
	if math.Abs(aimErr) < t.s.tun.FireAngle && t.dist <= rangeTo {
		t.f.agent.Fire()
	}

	if t.f.stuck.Update(pos, dt, t.s.tun.StuckWindow, t.s.tun.StuckMinProgress) {
		t.f.path.Clear()
		t.turn, t.throttle = 0, 0
	}
}

func (t *followerTick) tickFollow(dt float64) {
	pos := t.f.agent.Position()
	slot := t.s.FormationSlot(t.slot)
	if common.FlatDist(pos, slot) <= t.s.tun.SquadArriveRadius {
		t.f.path.Clear()
		t.f.stuck.Disarm()
		return
	}
	wp := t.f.path.SteerPoint(t.s.nav, pos, slot, t.s.tun.SquadReplan, t.s.tun, dt)
	t.steerToward(wp, -1)

	if t.f.stuck.Update(pos, dt, t.s.tun.StuckWindow, t.s.tun.StuckMinProgress) {
		t.f.path.Clear()
		t.turn, t.throttle = 0, 0
	}
}
