package content

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/warhoundgame/warhound/ai"
	"github.com/warhoundgame/warhound/common"
)

// LoadSpec reads and unmarshals one spec file.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("content: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("content: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PointSpec is an XZ map position; ground height comes from the mesh.
type PointSpec struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

// Vec3 converts to a world position at ground level.
func (p PointSpec) Vec3() common.Vec3 {
	return common.Vec3{X: p.X, Z: p.Z}
}

// WeaponSpec is a unit's gun.
type WeaponSpec struct {
	Range    float64 `yaml:"range"`
	Damage   float64 `yaml:"damage"`
	Cooldown float64 `yaml:"cooldown"`
}

// UnitSpec is one unit stat sheet.
type UnitSpec struct {
	Name       string     `yaml:"name"`
	Kind       string     `yaml:"kind"` // vehicle | hero | soldier | player
	MoveSpeed  float64    `yaml:"move_speed"`
	TurnRate   float64    `yaml:"turn_rate"`
	TurretRate float64    `yaml:"turret_rate"`
	Radius     float64    `yaml:"radius"`
	Health     float64    `yaml:"health"`
	Weapon     WeaponSpec `yaml:"weapon"`
}

// UnitsSpec is the full units.yaml sheet.
type UnitsSpec struct {
	Units []UnitSpec `yaml:"units"`
}

// ByName finds a unit sheet, or an error naming the missing sheet.
func (s UnitsSpec) ByName(name string) (UnitSpec, error) {
	for _, u := range s.Units {
		if u.Name == name {
			return u, nil
		}
	}
	return UnitSpec{}, fmt.Errorf("content: no unit spec named %q", name)
}

// LoadUnits reads units.yaml.
func LoadUnits() (UnitsSpec, error) {
	return LoadSpec[UnitsSpec]("units.yaml")
}

// LaneSpec is one macro route plus its home and contest anchors.
type LaneSpec struct {
	Name      string      `yaml:"name"`
	Waypoints []PointSpec `yaml:"waypoints"`
	Home      PointSpec   `yaml:"home"`
	Contest   PointSpec   `yaml:"contest"`
}

// Points converts the waypoints to world positions.
func (l LaneSpec) Points() []common.Vec3 {
	out := make([]common.Vec3, len(l.Waypoints))
	for i, p := range l.Waypoints {
		out[i] = p.Vec3()
	}
	return out
}

// Reversed returns the lane walked from the far end, for the opposing
// side.
func (l LaneSpec) Reversed() []common.Vec3 {
	pts := l.Points()
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
	return pts
}

// LanesSpec is the full lanes.yaml sheet.
type LanesSpec struct {
	Lanes []LaneSpec `yaml:"lanes"`
}

// LoadLanes reads lanes.yaml.
func LoadLanes() (LanesSpec, error) {
	return LoadSpec[LanesSpec]("lanes.yaml")
}

// RectSpec is a walkable ground rectangle.
type RectSpec struct {
	MinX float64 `yaml:"min_x"`
	MinZ float64 `yaml:"min_z"`
	MaxX float64 `yaml:"max_x"`
	MaxZ float64 `yaml:"max_z"`
	Y    float64 `yaml:"y"`
}

// BoxSpec is an obstacle footprint.
type BoxSpec struct {
	MinX float64 `yaml:"min_x"`
	MinZ float64 `yaml:"min_z"`
	MaxX float64 `yaml:"max_x"`
	MaxZ float64 `yaml:"max_z"`
}

// SpawnSpec places count units of one sheet at a map position.
type SpawnSpec struct {
	Unit    string    `yaml:"unit"`
	Team    int       `yaml:"team"`
	At      PointSpec `yaml:"at"`
	Heading float64   `yaml:"heading"`
	Count   int       `yaml:"count"`
	Lane    string    `yaml:"lane"`  // heroes only
	Squad   bool      `yaml:"squad"` // first unit leads, rest follow
}

// ArenaSpec is the full arena.yaml: static geometry plus spawns.
type ArenaSpec struct {
	CellSize  float64     `yaml:"cell_size"`
	Walkables []RectSpec  `yaml:"walkables"`
	Obstacles []BoxSpec   `yaml:"obstacles"`
	Spawns    []SpawnSpec `yaml:"spawns"`
}

// LoadArena reads arena.yaml.
func LoadArena() (ArenaSpec, error) {
	return LoadSpec[ArenaSpec]("arena.yaml")
}

// LoadTuning reads tuning.yaml over the built-in defaults, so the file
// only has to name the fields it changes.
func LoadTuning() (*ai.Tuning, error) {
	tun := ai.DefaultTuning()
	data, err := Load("tuning.yaml")
	if err != nil {
		return nil, fmt.Errorf("content: load tuning.yaml: %w", err)
	}
	if err := yaml.Unmarshal(data, tun); err != nil {
		return nil, fmt.Errorf("content: unmarshal tuning.yaml: %w", err)
	}
	return tun, nil
}
