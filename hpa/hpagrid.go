package hpa

import (
	assert "github.com/arl/assertgo"
	"github.com/arl/crowdcore"
	"github.com/arl/crowdcore/search"
)

// HPAGrid owns a walkability grid clustered for hierarchical pathfinding:
// a cluster size, the placed portals, the abstract adjacency list keyed
// by portal id, and a lookup from cluster coordinate to the portals it
// owns.
type HPAGrid struct {
	Grid        *crowdcore.GridMap
	ClusterSize int

	portals   []PortalNode
	adjacency [][]AbstractEdge // indexed by portal id
	byCluster map[ClusterCoord][]int
}

// Build constructs an HPAGrid wholesale from a grid and cluster size:
// detect portals, then derive inter- and intra-cluster edges. Portal and
// edge construction are pure functions over the grid, only assembled into
// the returned HPAGrid at the end.
func Build(grid *crowdcore.GridMap, clusterSize int) *HPAGrid {
	portals := detectPortals(grid, clusterSize)
	adjacency := buildEdges(grid, clusterSize, portals)

	byCluster := make(map[ClusterCoord][]int)
	for _, p := range portals {
		byCluster[p.Cluster] = append(byCluster[p.Cluster], p.ID)
	}

	g := &HPAGrid{
		Grid:        grid,
		ClusterSize: clusterSize,
		portals:     portals,
		adjacency:   adjacency,
		byCluster:   byCluster,
	}
	assert.True(len(g.adjacency) == len(g.portals), "hpa: adjacency list length must equal portal count")
	return g
}

// Portals returns the portals owned by cluster c.
func (g *HPAGrid) Portals(c ClusterCoord) []PortalNode {
	ids := g.byCluster[c]
	out := make([]PortalNode, len(ids))
	for i, id := range ids {
		out[i] = g.portals[id]
	}
	return out
}

// buildEdges derives the abstract adjacency list from a grid and its
// placed portals: inter-cluster edges between 4-adjacent portals in
// different clusters, and intra-cluster edges (via a bounded local A*)
// between every pair of portals sharing a cluster.
func buildEdges(grid *crowdcore.GridMap, clusterSize int, portals []PortalNode) [][]AbstractEdge {
	adjacency := make([][]AbstractEdge, len(portals))

	for i := range portals {
		for j := i + 1; j < len(portals); j++ {
			p, q := portals[i], portals[j]

			if p.Cluster != q.Cluster && p.Pos.manhattan(q.Pos) == 1 {
				adjacency[p.ID] = append(adjacency[p.ID], AbstractEdge{To: q.ID, Cost: 1, InterCluster: true})
				adjacency[q.ID] = append(adjacency[q.ID], AbstractEdge{To: p.ID, Cost: 1, InterCluster: true})
				continue
			}

			if p.Cluster == q.Cluster {
				bb := clusterBounds(p.Cluster, clusterSize, grid)
				path, cost, ok := localAStar(grid, bb, p.Pos, q.Pos)
				if !ok {
					continue
				}
				rev := make([]GridPos, len(path))
				for k, v := range path {
					rev[len(path)-1-k] = v
				}
				adjacency[p.ID] = append(adjacency[p.ID], AbstractEdge{To: q.ID, Cost: cost, Path: path})
				adjacency[q.ID] = append(adjacency[q.ID], AbstractEdge{To: p.ID, Cost: cost, Path: rev})
			}
		}
	}
	return adjacency
}

// localAStar runs A* over grid's 4-connectivity confined to bb, with
// uniform edge cost 1 and a Manhattan heuristic.
func localAStar(grid *crowdcore.GridMap, bb bounds, start, end GridPos) ([]GridPos, int, bool) {
	neighbors := func(p GridPos) []search.Step[GridPos, int] {
		var out []search.Step[GridPos, int]
		for _, d := range [4]GridPos{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			n := GridPos{X: p.X + d.X, Y: p.Y + d.Y}
			if !bb.contains(n) || !grid.Walkable(n.X, n.Y) {
				continue
			}
			out = append(out, search.Step[GridPos, int]{Node: n, Cost: 1})
		}
		return out
	}
	heuristic := func(p GridPos) int { return p.manhattan(end) }
	return search.AStar[GridPos, int](start, neighbors, heuristic, func(p GridPos) bool { return p == end })
}

// edgeTo returns the path for the abstract edge from portal `from` to
// portal `to`, or (trivial 2-point path, true) for an inter-cluster edge,
// or (nil, false) if no such edge exists.
func (g *HPAGrid) edgeTo(from, to int) ([]GridPos, bool) {
	for _, e := range g.adjacency[from] {
		if e.To != to {
			continue
		}
		if e.InterCluster {
			return []GridPos{g.portals[from].Pos, g.portals[to].Pos}, true
		}
		return e.Path, true
	}
	return nil, false
}

// virtualStart is the sentinel node id used to seed the abstract search
// with every start-cluster portal at once (see FindPath).
const virtualStart = -1

type seedInfo struct {
	cost int
	path []GridPos
}

type tailInfo struct {
	cost int
	path []GridPos
}

// FindPath returns a walkable 4-connected path from start to end, or
// (nil, false) if either endpoint is non-walkable or no path exists.
func (g *HPAGrid) FindPath(start, end GridPos) ([]GridPos, bool) {
	if !g.Grid.Walkable(start.X, start.Y) || !g.Grid.Walkable(end.X, end.Y) {
		return nil, false
	}

	startCluster := clusterCoordOf(start, g.ClusterSize)
	endCluster := clusterCoordOf(end, g.ClusterSize)

	if startCluster == endCluster {
		bb := clusterBounds(startCluster, g.ClusterSize, g.Grid)
		path, _, ok := localAStar(g.Grid, bb, start, end)
		return path, ok
	}

	// (a) start -> every portal in the start cluster.
	startBB := clusterBounds(startCluster, g.ClusterSize, g.Grid)
	seeds := make(map[int]seedInfo)
	for _, p := range g.Portals(startCluster) {
		path, cost, ok := localAStar(g.Grid, startBB, start, p.Pos)
		if ok {
			seeds[p.ID] = seedInfo{cost: cost, path: path}
		}
	}
	if len(seeds) == 0 {
		return nil, false
	}

	// (b) every portal in the end cluster -> end.
	endBB := clusterBounds(endCluster, g.ClusterSize, g.Grid)
	tails := make(map[int]tailInfo)
	for _, p := range g.Portals(endCluster) {
		path, cost, ok := localAStar(g.Grid, endBB, p.Pos, end)
		if ok {
			tails[p.ID] = tailInfo{cost: cost, path: path}
		}
	}
	if len(tails) == 0 {
		return nil, false
	}

	// (c) abstract search over the portal graph, open set seeded with
	// every start-cluster portal's seed cost, via a virtual start node.
	neighbors := func(n int) []search.Step[int, int] {
		if n == virtualStart {
			out := make([]search.Step[int, int], 0, len(seeds))
			for id, s := range seeds {
				out = append(out, search.Step[int, int]{Node: id, Cost: s.cost})
			}
			return out
		}
		out := make([]search.Step[int, int], len(g.adjacency[n]))
		for i, e := range g.adjacency[n] {
			out[i] = search.Step[int, int]{Node: e.To, Cost: e.Cost}
		}
		return out
	}
	heuristic := func(n int) int {
		if n == virtualStart {
			return 0
		}
		return g.portals[n].Pos.manhattan(end)
	}
	goal := func(n int) bool {
		if n == virtualStart {
			return false
		}
		_, ok := tails[n]
		return ok
	}

	corridor, _, ok := search.AStar[int, int](virtualStart, neighbors, heuristic, goal)
	if !ok {
		return nil, false
	}

	// corridor[0] is the virtual start; corridor[1] is the first real
	// portal, chosen from seeds.
	full := append([]GridPos(nil), seeds[corridor[1]].path...)
	for i := 1; i < len(corridor)-1; i++ {
		seg, ok := g.edgeTo(corridor[i], corridor[i+1])
		assert.True(ok, "hpa: abstract path edge %d->%d missing from adjacency", corridor[i], corridor[i+1])
		full = append(full, seg[1:]...)
	}
	tail := tails[corridor[len(corridor)-1]].path
	full = append(full, tail[1:]...)

	return full, true
}
