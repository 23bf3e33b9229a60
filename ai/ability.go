package ai

// HeuristicAdvisor is the built-in ability policy: burst damage only
// mid-fight with health in a band where the trade is worth it. Used
// when no scripted advisor is configured.
type HeuristicAdvisor struct {
	// Ability is the id requested from the caster.
	Ability string
	// MinHealth/MaxHealth bound the health band for casting.
	MinHealth float64
	MaxHealth float64
}

// DefaultAdvisor returns the stock nuke policy.
func DefaultAdvisor() *HeuristicAdvisor {
	return &HeuristicAdvisor{Ability: "nuke", MinHealth: 0.25, MaxHealth: 0.75}
}

// Decide implements AbilityAdvisor.
func (h *HeuristicAdvisor) Decide(state string, healthFraction float64) []string {
	if state != string(StateFight) {
		return nil
	}
	if healthFraction < h.MinHealth || healthFraction > h.MaxHealth {
		return nil
	}
	return []string{h.Ability}
}
