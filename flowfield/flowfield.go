// Package flowfield implements the Dijkstra-built integration field and
// per-cell gradient vector used for global navigation of large crowds
// converging on a single target.
package flowfield

import (
	"container/heap"
	"math"

	assert "github.com/arl/assertgo"
	"github.com/arl/crowdcore"
)

const (
	// CostWalkable is the traversal cost of an ordinary walkable cell.
	CostWalkable uint8 = 1
	// CostWall marks a cell as impassable; it is never relaxed during the
	// Dijkstra build and always receives a zero gradient.
	CostWall uint8 = 255
)

// FlowField is a grid annotated with, per cell, a traversal cost, a
// Dijkstra integration distance to the current target, and a unit
// gradient vector pointing toward that target.
type FlowField struct {
	Width, Height int
	cost          []uint8
	integration   []float64
	vectors       []crowdcore.Vec2
}

// New returns a width x height flow field with every cell walkable, +Inf
// integration and zero gradient (ungenerated).
func New(width, height int) *FlowField {
	size := width * height
	f := &FlowField{
		Width:       width,
		Height:      height,
		cost:        make([]uint8, size),
		integration: make([]float64, size),
		vectors:     make([]crowdcore.Vec2, size),
	}
	for i := range f.cost {
		f.cost[i] = CostWalkable
	}
	for i := range f.integration {
		f.integration[i] = math.Inf(1)
	}
	return f
}

func (f *FlowField) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height
}

func (f *FlowField) index(x, y int) int { return y*f.Width + x }

// SetObstacle updates one cell's cost (CostWall if wall, else
// CostWalkable). Out-of-bounds coordinates are ignored silently.
func (f *FlowField) SetObstacle(x, y int, wall bool) {
	if !f.inBounds(x, y) {
		return
	}
	if wall {
		f.cost[f.index(x, y)] = CostWall
	} else {
		f.cost[f.index(x, y)] = CostWalkable
	}
}

// Integration returns the current integration (distance-to-target) value
// of the cell at (x, y). It is +Inf for unreached cells and for any cell
// before the first GenerateTarget call.
func (f *FlowField) Integration(x, y int) float64 {
	if !f.inBounds(x, y) {
		return math.Inf(1)
	}
	return f.integration[f.index(x, y)]
}

// neighborOffsets is the fixed up, right, down, left scan order used both
// by the Dijkstra relax loop (4-connectivity) and by the gradient pass,
// where it is part of the determinism contract: it is what breaks ties
// between equally-downhill neighbors.
var neighborOffsets = [4]struct{ dx, dy int }{
	{0, -1}, // up
	{1, 0},  // right
	{0, 1},  // down
	{-1, 0}, // left
}

var neighborDirs = [4]crowdcore.Vec2{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

// GenerateTarget rounds (tx, ty) to the nearest cell and rebuilds the
// integration field and gradients from that cell with Dijkstra's
// algorithm over 4-connectivity, edge weight equal to the destination
// cell's cost. Out-of-bounds targets are a no-op. Cells with cost
// CostWall are never relaxed.
func (f *FlowField) GenerateTarget(tx, ty float64) {
	cx, cy := int(math.Round(tx)), int(math.Round(ty))
	if !f.inBounds(cx, cy) {
		return
	}

	for i := range f.integration {
		f.integration[i] = math.Inf(1)
	}

	targetIdx := f.index(cx, cy)
	f.integration[targetIdx] = 0

	open := &dijkstraQueue{{index: targetIdx, dist: 0}}
	heap.Init(open)

	for open.Len() > 0 {
		cur := heap.Pop(open).(dijkstraItem)
		if cur.dist > f.integration[cur.index] {
			continue
		}

		cx, cy := cur.index%f.Width, cur.index/f.Width
		for _, off := range neighborOffsets {
			nx, ny := cx+off.dx, cy+off.dy
			if !f.inBounds(nx, ny) {
				continue
			}
			nIdx := f.index(nx, ny)
			if f.cost[nIdx] >= CostWall {
				continue
			}
			next := cur.dist + float64(f.cost[nIdx])
			if next < f.integration[nIdx] {
				f.integration[nIdx] = next
				heap.Push(open, dijkstraItem{index: nIdx, dist: next})
			}
		}
	}

	f.generateVectors()
}

// generateVectors derives, for each non-wall cell, a unit vector toward
// whichever 4-neighbor (scanned up, right, down, left) has the first
// strictly lower integration value seen so far. Wall cells and cells with
// no strictly-downhill neighbor get the zero vector.
func (f *FlowField) generateVectors() {
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			idx := f.index(x, y)
			if f.cost[idx] >= CostWall {
				f.vectors[idx] = crowdcore.Vec2{}
				continue
			}

			best := f.integration[idx]
			grad := crowdcore.Vec2{}
			for i, off := range neighborOffsets {
				nx, ny := x+off.dx, y+off.dy
				if !f.inBounds(nx, ny) {
					continue
				}
				nCost := f.integration[f.index(nx, ny)]
				if nCost < best {
					best = nCost
					grad = neighborDirs[i]
				}
			}
			f.vectors[idx] = grad
		}
	}
	assert.True(len(f.vectors) == f.Width*f.Height, "flowfield: vector array size mismatch")
}

// GetDirection returns the gradient stored for the cell nearest (x, y),
// or the zero vector if out of bounds.
func (f *FlowField) GetDirection(x, y float64) crowdcore.Vec2 {
	cx, cy := int(math.Round(x)), int(math.Round(y))
	if !f.inBounds(cx, cy) {
		return crowdcore.Vec2{}
	}
	return f.vectors[f.index(cx, cy)]
}

// Snapshot returns deep-copied cost, integration and gradient arrays
// together with the field's dimensions, sufficient to reconstruct an
// identical FlowField.
func (f *FlowField) Snapshot() (width, height int, cost []uint8, integration []float64, vectors []crowdcore.Vec2) {
	cost = append([]uint8(nil), f.cost...)
	integration = append([]float64(nil), f.integration...)
	vectors = append([]crowdcore.Vec2(nil), f.vectors...)
	return f.Width, f.Height, cost, integration, vectors
}

// Restore installs a previously captured snapshot in place of f's state.
func (f *FlowField) Restore(width, height int, cost []uint8, integration []float64, vectors []crowdcore.Vec2) {
	assert.True(len(cost) == width*height, "flowfield: corrupt snapshot, cost array size mismatch")
	assert.True(len(integration) == width*height, "flowfield: corrupt snapshot, integration array size mismatch")
	assert.True(len(vectors) == width*height, "flowfield: corrupt snapshot, vector array size mismatch")
	f.Width, f.Height = width, height
	f.cost = append([]uint8(nil), cost...)
	f.integration = append([]float64(nil), integration...)
	f.vectors = append([]crowdcore.Vec2(nil), vectors...)
}

type dijkstraItem struct {
	index int
	dist  float64
}

// dijkstraQueue is a container/heap min-heap of dijkstraItem ordered by
// distance, the same wrapper idiom as the generic search queue.
type dijkstraQueue []dijkstraItem

func (q dijkstraQueue) Len() int            { return len(q) }
func (q dijkstraQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q dijkstraQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *dijkstraQueue) Push(x any)         { *q = append(*q, x.(dijkstraItem)) }
func (q *dijkstraQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}
