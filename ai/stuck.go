package ai

import "github.com/warhoundgame/warhound/common"

// StuckDetector watches an agent with an active goal and trips when it
// fails to cover a minimum distance over a time window, so units never
// wedge forever against unmodeled geometry.
type StuckDetector struct {
	anchor common.Vec3
	timer  float64
	armed  bool
}

// Reset re-arms the detector at pos. Call on goal changes.
func (s *StuckDetector) Reset(pos common.Vec3) {
	s.anchor = pos
	s.timer = 0
	s.armed = true
}

// Disarm stops tracking, e.g. while the agent is intentionally idle.
func (s *StuckDetector) Disarm() {
	s.armed = false
	s.timer = 0
}

// Update advances the watchdog and reports whether the agent is stuck.
// A trip re-arms at the current position.
func (s *StuckDetector) Update(pos common.Vec3, dt, window, minProgress float64) bool {
	if !s.armed {
		s.Reset(pos)
		return false
	}
	if common.FlatDist(pos, s.anchor) >= minProgress {
		s.anchor = pos
		s.timer = 0
		return false
	}
	s.timer += dt
	if s.timer < window {
		return false
	}
	s.anchor = pos
	s.timer = 0
	return true
}
