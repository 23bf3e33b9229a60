package system

import (
	"github.com/jakecoffman/cp"

	"github.com/warhoundgame/warhound/common"
	"github.com/warhoundgame/warhound/ecs"
	"github.com/warhoundgame/warhound/ecs/component"
)

// Collision categories. Obstacle-avoidance rays only test CatStatic so
// units never swerve around each other; shots test both.
const (
	CatStatic uint = 1 << 0
	CatUnit   uint = 1 << 1
)

// Physics steps the chipmunk space and copies body positions back into
// unit transforms. The simulation lives on the XZ plane, so cp Y maps
// to world Z and the transform keeps its own ground height.
type Physics struct {
	space *cp.Space
}

// NewPhysics wraps a prepared space.
func NewPhysics(space *cp.Space) *Physics {
	return &Physics{space: space}
}

func (p *Physics) Update(w *ecs.World, dt float64) {
	p.space.Step(dt)
	ecs.Each(w, component.RigidBodyComponent, func(e ecs.Entity, rb *component.RigidBody) {
		if rb.Body == nil {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		pos := rb.Body.Position()
		t.Pos.X = pos.X
		t.Pos.Z = pos.Y
	})
}

// spaceRays casts avoidance rays against static scene geometry only.
type spaceRays struct {
	space *cp.Space
}

func (r spaceRays) Raycast(origin, dir common.Vec3, maxDist float64) (float64, bool) {
	start := cp.Vector{X: origin.X, Y: origin.Z}
	end := cp.Vector{X: origin.X + dir.X*maxDist, Y: origin.Z + dir.Z*maxDist}
	filter := cp.NewShapeFilter(cp.NO_GROUP, CatUnit, CatStatic)
	info := r.space.SegmentQueryFirst(start, end, 0, filter)
	if info.Shape == nil {
		return 0, false
	}
	return info.Alpha * maxDist, true
}
