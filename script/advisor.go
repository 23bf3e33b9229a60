// Package script runs tengo-authored ability advisors, so hero cast
// heuristics can be edited without recompiling.
package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/warhoundgame/warhound/content"
)

// Advisor evaluates a compiled tengo script each decision. The script
// sees the hero's tactical state and health fraction and assigns the
// abilities to cast to a `cast` array.
type Advisor struct {
	compiled *tengo.Compiled
}

// NewAdvisor compiles the named script from the content store.
func NewAdvisor(name string) (*Advisor, error) {
	src, err := content.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return NewAdvisorSource(src)
}

// NewAdvisorSource compiles raw script text.
func NewAdvisorSource(src []byte) (*Advisor, error) {
	s := tengo.NewScript(src)
	_ = s.Add("__state", "")
	_ = s.Add("__health", 0.0)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile advisor: %w", err)
	}
	return &Advisor{compiled: compiled}, nil
}

// Decide runs the script. A script error means no casts; the advisor
// is advisory all the way down.
func (a *Advisor) Decide(state string, healthFraction float64) []string {
	run := a.compiled.Clone()
	if err := run.Set("__state", state); err != nil {
		return nil
	}
	if err := run.Set("__health", healthFraction); err != nil {
		return nil
	}
	if err := run.Run(); err != nil {
		return nil
	}

	var out []string
	for _, v := range run.Get("cast").Array() {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
