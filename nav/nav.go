// Package nav answers pathfinding queries over a grid mesh voxelized
// from static level geometry. Pathfinding is advisory: a nil path is a
// normal answer and callers steer straight at their goal instead.
package nav

import "github.com/warhoundgame/warhound/common"

// Query is the navigation contract consumed by the AI controllers.
// Implementations must be read-only after build so controllers can
// share one instance.
type Query interface {
	// Ready reports whether a mesh has been built successfully.
	Ready() bool
	// FindPath returns an ordered waypoint sequence from start to
	// goal, or nil when no path exists or the mesh is not ready.
	FindPath(start, goal common.Vec3) []common.Vec3
	// FindClosestPoint snaps p to the nearest navigable location.
	FindClosestPoint(p common.Vec3) (common.Vec3, bool)
}

// Rect is a walkable ground rectangle on the XZ plane at height Y.
type Rect struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
	Y          float64
}

// Box is an obstacle footprint blocking the cells it covers.
type Box struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

// Geometry is the one-time static level description consumed by Build.
type Geometry struct {
	Walkables []Rect
	Obstacles []Box
}
