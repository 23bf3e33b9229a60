package ai

import (
	"math/rand"

	"github.com/warhoundgame/warhound/common"
)

// testAgent is a minimal in-memory Agent for controller tests.
type testAgent struct {
	pos     common.Vec3
	heading float64
	turret  float64
	dead    bool

	turn     float64
	throttle float64
	aimTurn  float64
	fired    int

	hp    float64
	maxHP float64
	rng   float64 // attack range override, 0 = none
}

func newTestAgent(pos common.Vec3) *testAgent {
	return &testAgent{pos: pos, hp: 100, maxHP: 100}
}

func (a *testAgent) Position() common.Vec3 { return a.pos }
func (a *testAgent) Forward() common.Vec3  { return common.HeadingVec(a.heading) }
func (a *testAgent) Alive() bool           { return !a.dead }
func (a *testAgent) SetMoveIntent(turn, throttle float64) {
	a.turn, a.throttle = turn, throttle
}
func (a *testAgent) SetAimIntent(turn float64) { a.aimTurn = turn }
func (a *testAgent) Fire()                     { a.fired++ }
func (a *testAgent) AimForward() common.Vec3   { return common.HeadingVec(a.turret) }
func (a *testAgent) Nudge(d common.Vec3)       { a.pos = a.pos.Add(d) }
func (a *testAgent) HealthFraction() float64   { return a.hp / a.maxHP }
func (a *testAgent) AttackRange() float64      { return a.rng }

// stubNav is a canned nav.Query.
type stubNav struct {
	ready bool
	path  []common.Vec3
	calls int
}

func (s *stubNav) Ready() bool { return s.ready }
func (s *stubNav) FindPath(start, goal common.Vec3) []common.Vec3 {
	s.calls++
	if !s.ready {
		return nil
	}
	return s.path
}
func (s *stubNav) FindClosestPoint(p common.Vec3) (common.Vec3, bool) {
	return p, s.ready
}

// stubRays returns fixed distances per ray order: center, left, right.
type stubRays struct {
	dists []float64 // negative = miss
	i     int
}

func (s *stubRays) Raycast(origin, dir common.Vec3, maxDist float64) (float64, bool) {
	d := s.dists[s.i%len(s.dists)]
	s.i++
	if d < 0 || d > maxDist {
		return 0, false
	}
	return d, true
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}
