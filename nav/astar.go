package nav

import (
	"container/heap"
	"math"

	"github.com/warhoundgame/warhound/common"
)

const (
	costStraight = 1.0
	costDiagonal = math.Sqrt2
)

type searchNode struct {
	idx      int
	priority float64
}

type nodeHeap []searchNode

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].priority < h[j].priority }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(searchNode)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// FindPath runs 8-way A* between the cells containing start and goal,
// snapping both endpoints to walkable cells first. It returns nil when
// the mesh is not ready or no route exists; nil is not an error.
func (m *Mesh) FindPath(start, goal common.Vec3) []common.Vec3 {
	if !m.Ready() {
		return nil
	}
	sp, ok := m.FindClosestPoint(start)
	if !ok {
		return nil
	}
	gp, ok := m.FindClosestPoint(goal)
	if !ok {
		return nil
	}
	sx, sz := m.cellAt(sp)
	gx, gz := m.cellAt(gp)
	startIdx := sz*m.width + sx
	goalIdx := gz*m.width + gx
	if startIdx == goalIdx {
		return []common.Vec3{gp}
	}

	gScore := make(map[int]float64, 256)
	cameFrom := make(map[int]int, 256)
	gScore[startIdx] = 0

	open := &nodeHeap{{idx: startIdx, priority: octile(sx, sz, gx, gz)}}
	heap.Init(open)
	closed := make(map[int]bool, 256)

	for open.Len() > 0 {
		cur := heap.Pop(open).(searchNode)
		if cur.idx == goalIdx {
			return m.reconstruct(cameFrom, startIdx, goalIdx)
		}
		if closed[cur.idx] {
			continue
		}
		closed[cur.idx] = true
		cx := cur.idx % m.width
		cz := cur.idx / m.width

		for dz := -1; dz <= 1; dz++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dz == 0 {
					continue
				}
				nx, nz := cx+dx, cz+dz
				if !m.open(nx, nz) {
					continue
				}
				step := costStraight
				if dx != 0 && dz != 0 {
					// no corner cutting past blocked cells
					if !m.open(cx+dx, cz) || !m.open(cx, cz+dz) {
						continue
					}
					step = costDiagonal
				}
				nIdx := nz*m.width + nx
				tentative := gScore[cur.idx] + step
				if prev, seen := gScore[nIdx]; seen && tentative >= prev {
					continue
				}
				gScore[nIdx] = tentative
				cameFrom[nIdx] = cur.idx
				heap.Push(open, searchNode{idx: nIdx, priority: tentative + octile(nx, nz, gx, gz)})
			}
		}
	}
	return nil
}

func octile(x1, z1, x2, z2 int) float64 {
	dx := math.Abs(float64(x1 - x2))
	dz := math.Abs(float64(z1 - z2))
	if dx < dz {
		dx, dz = dz, dx
	}
	return dx + (costDiagonal-1)*dz
}

func (m *Mesh) reconstruct(cameFrom map[int]int, startIdx, goalIdx int) []common.Vec3 {
	cells := make([]int, 0, 32)
	for idx := goalIdx; ; {
		cells = append(cells, idx)
		if idx == startIdx {
			break
		}
		prev, ok := cameFrom[idx]
		if !ok {
			return nil
		}
		idx = prev
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}

	// Collapse runs of collinear cells so controllers get sparse
	// waypoints instead of one per grid cell.
	out := make([]common.Vec3, 0, len(cells))
	for i, idx := range cells {
		if i > 0 && i < len(cells)-1 {
			px, pz := cells[i-1]%m.width, cells[i-1]/m.width
			cx, cz := idx%m.width, idx/m.width
			nx, nz := cells[i+1]%m.width, cells[i+1]/m.width
			if nx-cx == cx-px && nz-cz == cz-pz {
				continue
			}
		}
		out = append(out, m.cellCenter(idx%m.width, idx/m.width))
	}
	return out
}
