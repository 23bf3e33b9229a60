package ai

// StateID names one state of a controller's finite state machine.
type StateID string

// State is one entry of a machine's state table.
type State[C any] struct {
	Enter func(c C)
	Tick  func(c C, dt float64)
}

// Rule is an exit condition: while in From, transition to To when
// When holds. Rules are checked in declaration order; first match
// wins.
type Rule[C any] struct {
	From StateID
	To   StateID
	When func(c C) bool
}

// Machine drives a state table. Transitions are only evaluated on a
// fixed decision interval so state choice is decoupled from frame rate
// and does not flap; Tick still runs every update.
type Machine[C any] struct {
	states   map[StateID]State[C]
	rules    []Rule[C]
	current  StateID
	inState  float64
	interval float64
	decide   float64
	started  bool
}

// NewMachine builds a machine starting in initial. The initial state's
// Enter hook runs on the first Update.
func NewMachine[C any](initial StateID, interval float64, states map[StateID]State[C], rules []Rule[C]) *Machine[C] {
	return &Machine[C]{
		states:   states,
		rules:    rules,
		current:  initial,
		interval: interval,
	}
}

// Current returns the active state.
func (m *Machine[C]) Current() StateID { return m.current }

// TimeInState is the seconds since the last transition.
func (m *Machine[C]) TimeInState() float64 { return m.inState }

// Force transitions unconditionally, running the Enter hook.
func (m *Machine[C]) Force(id StateID, c C) {
	m.current = id
	m.inState = 0
	m.decide = 0
	if st, ok := m.states[id]; ok && st.Enter != nil {
		st.Enter(c)
	}
}

// Update advances timers, re-decides on the interval, and ticks the
// active state.
func (m *Machine[C]) Update(c C, dt float64) {
	if !m.started {
		m.started = true
		if st, ok := m.states[m.current]; ok && st.Enter != nil {
			st.Enter(c)
		}
	}
	m.inState += dt
	m.decide += dt
	if m.decide >= m.interval {
		m.decide = 0
		for _, r := range m.rules {
			if r.From != m.current {
				continue
			}
			if r.When != nil && r.When(c) {
				m.Force(r.To, c)
				break
			}
		}
	}
	if st, ok := m.states[m.current]; ok && st.Tick != nil {
		st.Tick(c, dt)
	}
}
