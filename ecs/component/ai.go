package component

import "github.com/warhoundgame/warhound/ai"

// VehicleAI attaches a solo tactical controller to a unit. Ctrl is
// built lazily by the vehicle AI system on first update.
type VehicleAI struct {
	Ctrl *ai.VehicleController
}

// SquadLeader holds the controller driving this unit's followers.
type SquadLeader struct {
	Ctrl *ai.SquadController
}

// SquadMember binds a unit to its leader's formation by dense id.
// The squad AI system registers members with the leader's controller
// on its first update.
type SquadMember struct {
	LeaderID int
}

// HeroAI attaches the lane/contest/fight/retreat controller. Config
// must be filled before the hero AI system first runs.
type HeroAI struct {
	Ctrl   *ai.HeroController
	Config ai.HeroConfig
}

// AbilityQueue receives the hero controller's cast requests for the
// ability system to drain each tick.
type AbilityQueue struct {
	Pending []string
}

var (
	VehicleAIComponent    = New[VehicleAI]()
	SquadLeaderComponent  = New[SquadLeader]()
	SquadMemberComponent  = New[SquadMember]()
	HeroAIComponent       = New[HeroAI]()
	AbilityQueueComponent = New[AbilityQueue]()
)
