package ai

// Tuning holds every behavioral constant the controllers use. All
// fields are YAML-overridable; the replan and arrival values differ
// per controller on purpose (per-unit feel, not shared physics).
type Tuning struct {
	// Steering
	HullGain           float64 `yaml:"hull_gain"`
	TurretGain         float64 `yaml:"turret_gain"`
	TurnInPlaceAngle   float64 `yaml:"turn_in_place_angle"`
	MisalignedThrottle float64 `yaml:"misaligned_throttle"`
	NearThrottle       float64 `yaml:"near_throttle"`
	FilterRate         float64 `yaml:"filter_rate"`

	// Path following
	WaypointArrive    float64 `yaml:"waypoint_arrive"`
	GoalDrift         float64 `yaml:"goal_drift"`
	VehicleReplan     float64 `yaml:"vehicle_replan"`
	SquadReplan       float64 `yaml:"squad_replan"`
	HeroReplan        float64 `yaml:"hero_replan"`
	HeroFightReplan   float64 `yaml:"hero_fight_replan"`
	SquadArriveRadius float64 `yaml:"squad_arrive_radius"`

	// Solo vehicle
	DetectRange      float64 `yaml:"detect_range"`
	DetectExitFactor float64 `yaml:"detect_exit_factor"`
	AttackRange      float64 `yaml:"attack_range"`
	AttackExitFactor float64 `yaml:"attack_exit_factor"`
	OptimalRange     float64 `yaml:"optimal_range"`
	RangeBand        float64 `yaml:"range_band"`
	DwellMin         float64 `yaml:"dwell_min"`
	DwellMax         float64 `yaml:"dwell_max"`
	StrafeFlipMin    float64 `yaml:"strafe_flip_min"`
	StrafeFlipMax    float64 `yaml:"strafe_flip_max"`
	StrafeThrottle   float64 `yaml:"strafe_throttle"`
	FireAngle        float64 `yaml:"fire_angle"`
	FireCooldown     float64 `yaml:"fire_cooldown"`
	FireJitter       float64 `yaml:"fire_jitter"`
	VehicleDecide    float64 `yaml:"vehicle_decide"`

	// Squad
	EngageRange       float64 `yaml:"engage_range"`
	FormationCols     int     `yaml:"formation_cols"`
	FormationSpacing  float64 `yaml:"formation_spacing"`
	SeparationDist    float64 `yaml:"separation_dist"`
	SeparationPush    float64 `yaml:"separation_push"`
	MinEngageThrottle float64 `yaml:"min_engage_throttle"`
	SquadDecide       float64 `yaml:"squad_decide"`

	// Hero
	HeroDecide       float64 `yaml:"hero_decide"`
	AbilityInterval  float64 `yaml:"ability_interval"`
	RetreatHealth    float64 `yaml:"retreat_health"`
	ResumeHealth     float64 `yaml:"resume_health"`
	FightRange       float64 `yaml:"fight_range"`
	ContestRange     float64 `yaml:"contest_range"`
	ContestMinHealth float64 `yaml:"contest_min_health"`
	TooCloseFactor   float64 `yaml:"too_close_factor"`
	BackoffThrottle  float64 `yaml:"backoff_throttle"`
	LaneArrive       float64 `yaml:"lane_arrive"`

	// Obstacle avoidance
	AvoidRange    float64 `yaml:"avoid_range"`
	AvoidSpread   float64 `yaml:"avoid_spread"`
	AvoidInterval float64 `yaml:"avoid_interval"`
	AvoidBias     float64 `yaml:"avoid_bias"`

	// Stuck detection
	StuckWindow      float64 `yaml:"stuck_window"`
	StuckMinProgress float64 `yaml:"stuck_min_progress"`
}

// DefaultTuning returns the baseline constants. content/tuning.yaml
// overrides individual fields at load time.
func DefaultTuning() *Tuning {
	return &Tuning{
		HullGain:           2.5,
		TurretGain:         3.0,
		TurnInPlaceAngle:   0.5,
		MisalignedThrottle: 0.3,
		NearThrottle:       0.15,
		FilterRate:         8.0,

		WaypointArrive:    2.0,
		GoalDrift:         2.0,
		VehicleReplan:     1.0,
		SquadReplan:       0.75,
		HeroReplan:        1.0,
		HeroFightReplan:   0.4,
		SquadArriveRadius: 3.0,

		DetectRange:      60,
		DetectExitFactor: 1.3,
		AttackRange:      30,
		AttackExitFactor: 1.15,
		OptimalRange:     22,
		RangeBand:        0.25,
		DwellMin:         1.0,
		DwellMax:         3.0,
		StrafeFlipMin:    1.5,
		StrafeFlipMax:    3.5,
		StrafeThrottle:   0.5,
		FireAngle:        0.1,
		FireCooldown:     1.2,
		FireJitter:       0.3,
		VehicleDecide:    0.25,

		EngageRange:       40,
		FormationCols:     3,
		FormationSpacing:  6,
		SeparationDist:    4,
		SeparationPush:    6,
		MinEngageThrottle: 0.2,
		SquadDecide:       0.25,

		HeroDecide:       1.0,
		AbilityInterval:  2.5,
		RetreatHealth:    0.3,
		ResumeHealth:     0.65,
		FightRange:       35,
		ContestRange:     50,
		ContestMinHealth: 0.5,
		TooCloseFactor:   0.5,
		BackoffThrottle:  0.4,
		LaneArrive:       4.0,

		AvoidRange:    12,
		AvoidSpread:   0.35,
		AvoidInterval: 0.2,
		AvoidBias:     0.6,

		StuckWindow:      3.0,
		StuckMinProgress: 1.5,
	}
}
