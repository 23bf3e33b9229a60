package ai

import "testing"

type fsmProbe struct {
	enters map[StateID]int
	ticks  map[StateID]int
	hot    bool
}

func newFSMProbe() *fsmProbe {
	return &fsmProbe{enters: map[StateID]int{}, ticks: map[StateID]int{}}
}

func probeMachine(interval float64) (*Machine[*fsmProbe], *fsmProbe) {
	p := newFSMProbe()
	m := NewMachine("cold", interval,
		map[StateID]State[*fsmProbe]{
			"cold": {
				Enter: func(p *fsmProbe) { p.enters["cold"]++ },
				Tick:  func(p *fsmProbe, dt float64) { p.ticks["cold"]++ },
			},
			"hot": {
				Enter: func(p *fsmProbe) { p.enters["hot"]++ },
				Tick:  func(p *fsmProbe, dt float64) { p.ticks["hot"]++ },
			},
		},
		[]Rule[*fsmProbe]{
			{From: "cold", To: "hot", When: func(p *fsmProbe) bool { return p.hot }},
			{From: "hot", To: "cold", When: func(p *fsmProbe) bool { return !p.hot }},
		})
	return m, p
}

func TestMachineInitialEnterRunsOnce(t *testing.T) {
	m, p := probeMachine(1.0)
	m.Update(p, 0.1)
	m.Update(p, 0.1)
	if p.enters["cold"] != 1 {
		t.Fatalf("initial Enter ran %d times, want 1", p.enters["cold"])
	}
	if p.ticks["cold"] != 2 {
		t.Fatalf("Tick ran %d times, want every update", p.ticks["cold"])
	}
}

func TestMachineDecidesOnInterval(t *testing.T) {
	m, p := probeMachine(1.0)
	p.hot = true
	// Condition already true, but the decision timer has not elapsed.
	for i := 0; i < 9; i++ {
		m.Update(p, 0.1)
	}
	if m.Current() != "cold" {
		t.Fatalf("transitioned before the decision interval: %s", m.Current())
	}
	m.Update(p, 0.1)
	if m.Current() != "hot" {
		t.Fatalf("expected transition on the decision boundary, got %s", m.Current())
	}
	if p.enters["hot"] != 1 {
		t.Fatalf("hot Enter ran %d times, want 1", p.enters["hot"])
	}
}

func TestMachineTimeInStateResets(t *testing.T) {
	m, p := probeMachine(0.5)
	m.Update(p, 0.3)
	if m.TimeInState() != 0.3 {
		t.Fatalf("TimeInState = %v, want 0.3", m.TimeInState())
	}
	p.hot = true
	m.Update(p, 0.3) // decision boundary crossed, transition fires
	if m.Current() != "hot" {
		t.Fatalf("expected hot, got %s", m.Current())
	}
	if m.TimeInState() != 0 {
		t.Fatalf("TimeInState should reset on transition, got %v", m.TimeInState())
	}
}

func TestMachineFirstMatchingRuleWins(t *testing.T) {
	p := newFSMProbe()
	m := NewMachine("a", 0.1,
		map[StateID]State[*fsmProbe]{"a": {}, "b": {}, "c": {}},
		[]Rule[*fsmProbe]{
			{From: "a", To: "b", When: func(*fsmProbe) bool { return true }},
			{From: "a", To: "c", When: func(*fsmProbe) bool { return true }},
		})
	m.Update(p, 0.2)
	if m.Current() != "b" {
		t.Fatalf("rule priority broken, got %s", m.Current())
	}
}
