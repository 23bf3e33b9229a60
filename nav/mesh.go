package nav

import (
	"math"

	"github.com/warhoundgame/warhound/common"
)

// Mesh is a grid navmesh over the XZ plane. Build it once after level
// geometry is finalized; queries are read-only afterwards.
type Mesh struct {
	cellSize float64
	originX  float64
	originZ  float64
	width    int
	height   int
	walkable []bool
	groundY  []float32
	ready    bool
}

// NewMesh creates an unbuilt mesh with the given cell size.
func NewMesh(cellSize float64) *Mesh {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Mesh{cellSize: cellSize}
}

// Build voxelizes geometry into the grid. It returns false and leaves
// the mesh permanently not-ready when the geometry yields no walkable
// cells. Build is not re-entrant; call it once.
func (m *Mesh) Build(geo Geometry) bool {
	if m == nil || len(geo.Walkables) == 0 {
		return false
	}

	minX, minZ := math.Inf(1), math.Inf(1)
	maxX, maxZ := math.Inf(-1), math.Inf(-1)
	for _, r := range geo.Walkables {
		minX = math.Min(minX, r.MinX)
		minZ = math.Min(minZ, r.MinZ)
		maxX = math.Max(maxX, r.MaxX)
		maxZ = math.Max(maxZ, r.MaxZ)
	}
	w := int(math.Ceil((maxX - minX) / m.cellSize))
	h := int(math.Ceil((maxZ - minZ) / m.cellSize))
	if w <= 0 || h <= 0 {
		return false
	}

	m.originX = minX
	m.originZ = minZ
	m.width = w
	m.height = h
	m.walkable = make([]bool, w*h)
	m.groundY = make([]float32, w*h)

	open := 0
	for cz := 0; cz < h; cz++ {
		for cx := 0; cx < w; cx++ {
			x := m.originX + (float64(cx)+0.5)*m.cellSize
			z := m.originZ + (float64(cz)+0.5)*m.cellSize
			idx := cz*w + cx
			for _, r := range geo.Walkables {
				if x >= r.MinX && x <= r.MaxX && z >= r.MinZ && z <= r.MaxZ {
					m.walkable[idx] = true
					m.groundY[idx] = float32(r.Y)
					break
				}
			}
			if !m.walkable[idx] {
				continue
			}
			for _, b := range geo.Obstacles {
				if x >= b.MinX && x <= b.MaxX && z >= b.MinZ && z <= b.MaxZ {
					m.walkable[idx] = false
					break
				}
			}
			if m.walkable[idx] {
				open++
			}
		}
	}
	if open == 0 {
		m.walkable = nil
		m.groundY = nil
		return false
	}
	m.ready = true
	return true
}

// Ready reports whether Build succeeded.
func (m *Mesh) Ready() bool {
	return m != nil && m.ready
}

// Dispose releases the grid. Safe to call once at teardown; the mesh
// is not-ready afterwards.
func (m *Mesh) Dispose() {
	if m == nil {
		return
	}
	m.ready = false
	m.walkable = nil
	m.groundY = nil
	m.width = 0
	m.height = 0
}

// OpenCells returns every walkable cell center, for debug overlays.
// Nil when the mesh is not ready.
func (m *Mesh) OpenCells() []common.Vec3 {
	if !m.Ready() {
		return nil
	}
	out := make([]common.Vec3, 0, len(m.walkable))
	for cz := 0; cz < m.height; cz++ {
		for cx := 0; cx < m.width; cx++ {
			if m.walkable[cz*m.width+cx] {
				out = append(out, m.cellCenter(cx, cz))
			}
		}
	}
	return out
}

func (m *Mesh) cellAt(p common.Vec3) (int, int) {
	cx := int(math.Floor((p.X - m.originX) / m.cellSize))
	cz := int(math.Floor((p.Z - m.originZ) / m.cellSize))
	return cx, cz
}

func (m *Mesh) cellCenter(cx, cz int) common.Vec3 {
	return common.Vec3{
		X: m.originX + (float64(cx)+0.5)*m.cellSize,
		Y: float64(m.groundY[cz*m.width+cx]),
		Z: m.originZ + (float64(cz)+0.5)*m.cellSize,
	}
}

func (m *Mesh) inBounds(cx, cz int) bool {
	return cx >= 0 && cz >= 0 && cx < m.width && cz < m.height
}

func (m *Mesh) open(cx, cz int) bool {
	return m.inBounds(cx, cz) && m.walkable[cz*m.width+cx]
}

// FindClosestPoint snaps p to the center of the nearest walkable cell
// by searching outward in rings from p's cell.
func (m *Mesh) FindClosestPoint(p common.Vec3) (common.Vec3, bool) {
	if !m.Ready() {
		return common.Vec3{}, false
	}
	cx, cz := m.cellAt(p)
	cx = int(common.Clamp(float64(cx), 0, float64(m.width-1)))
	cz = int(common.Clamp(float64(cz), 0, float64(m.height-1)))
	if m.open(cx, cz) {
		return m.cellCenter(cx, cz), true
	}
	maxRing := m.width
	if m.height > maxRing {
		maxRing = m.height
	}
	for ring := 1; ring <= maxRing; ring++ {
		best := -1
		bestDist := math.Inf(1)
		for dz := -ring; dz <= ring; dz++ {
			for dx := -ring; dx <= ring; dx++ {
				if dx > -ring && dx < ring && dz > -ring && dz < ring {
					continue // interior already visited
				}
				nx, nz := cx+dx, cz+dz
				if !m.open(nx, nz) {
					continue
				}
				d := common.FlatDist(p, m.cellCenter(nx, nz))
				if d < bestDist {
					bestDist = d
					best = nz*m.width + nx
				}
			}
		}
		if best >= 0 {
			return m.cellCenter(best%m.width, best/m.width), true
		}
	}
	return common.Vec3{}, false
}
