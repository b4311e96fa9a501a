package hpa

import "github.com/arl/crowdcore"

// PortalNode is a grid cell at a cluster boundary designated as a
// handoff point between clusters.
type PortalNode struct {
	ID      int
	Pos     GridPos
	Cluster ClusterCoord
}

// AbstractEdge connects a portal to another portal in the abstract graph:
// an inter-cluster edge (cost 1, no cached path) or an
// intra-cluster edge (cached local path, cost = path length - 1).
type AbstractEdge struct {
	To           int
	Cost         int
	InterCluster bool
	Path         []GridPos
}

// runLengthThreshold is the boundary-run length above which two portals
// (one at each end of the run) are placed instead of one at the midpoint.
const runLengthThreshold = 5

// detectPortals scans all horizontally- and vertically-adjacent cluster
// pairs for walkable boundary runs and returns the placed portals, each
// with a freshly assigned, sequential ID.
func detectPortals(grid *crowdcore.GridMap, clusterSize int) []PortalNode {
	var portals []PortalNode
	nextID := 0
	place := func(pos GridPos, cluster ClusterCoord) int {
		id := nextID
		portals = append(portals, PortalNode{ID: id, Pos: pos, Cluster: cluster})
		nextID++
		return id
	}

	cols := numClusters(grid.Width, clusterSize)
	rows := numClusters(grid.Height, clusterSize)

	// Horizontal adjacency: scan the shared boundary top to bottom.
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols-1; cx++ {
			left := ClusterCoord{X: cx, Y: cy}
			right := ClusterCoord{X: cx + 1, Y: cy}
			lb := clusterBounds(left, clusterSize, grid)
			rb := clusterBounds(right, clusterSize, grid)
			lx, rx := lb.maxX, rb.minX

			scanBoundary(lb.minY, lb.maxY, func(y int) bool {
				return grid.Walkable(lx, y) && grid.Walkable(rx, y)
			}, func(y int) {
				place(GridPos{X: lx, Y: y}, left)
				place(GridPos{X: rx, Y: y}, right)
			})
		}
	}

	// Vertical adjacency: scan the shared boundary left to right.
	for cx := 0; cx < cols; cx++ {
		for cy := 0; cy < rows-1; cy++ {
			top := ClusterCoord{X: cx, Y: cy}
			bottom := ClusterCoord{X: cx, Y: cy + 1}
			tb := clusterBounds(top, clusterSize, grid)
			bb := clusterBounds(bottom, clusterSize, grid)
			ty, by := tb.maxY, bb.minY

			scanBoundary(tb.minX, tb.maxX, func(x int) bool {
				return grid.Walkable(x, ty) && grid.Walkable(x, by)
			}, func(x int) {
				place(GridPos{X: x, Y: ty}, top)
				place(GridPos{X: x, Y: by}, bottom)
			})
		}
	}

	return portals
}

// scanBoundary walks i from lo to hi inclusive, tracking the longest
// contiguous run where walkable(i) holds. On each run break (or at the
// end of the range) it emits placements for the just-closed run: two, at
// the run's endpoints, if the run is longer than runLengthThreshold,
// otherwise one at the run's midpoint.
func scanBoundary(lo, hi int, walkable func(i int) bool, emit func(i int)) {
	runStart := -1
	flush := func(end int) { // run is [runStart, end] inclusive
		if runStart < 0 {
			return
		}
		length := end - runStart + 1
		if length > runLengthThreshold {
			emit(runStart)
			emit(end)
		} else {
			emit(runStart + length/2)
		}
		runStart = -1
	}

	for i := lo; i <= hi; i++ {
		if walkable(i) {
			if runStart < 0 {
				runStart = i
			}
		} else {
			flush(i - 1)
		}
	}
	flush(hi)
}
