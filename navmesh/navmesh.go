// Package navmesh implements point-to-point pathfinding over a triangle
// mesh: linear point-location, A* over the triangle adjacency graph, and
// funnel string-pulling into a minimal polyline.
package navmesh

import (
	assert "github.com/arl/assertgo"
	"github.com/arl/crowdcore"
	"github.com/arl/crowdcore/search"
)

// NavMesh is an ordered, immutable-after-construction sequence of
// triangles. triangles[i].ID == i.
type NavMesh struct {
	Triangles []Triangle
}

// New returns a NavMesh over the given triangles, which must already
// satisfy triangles[i].ID == i (triangles arrive pre-built from an
// external authoring pipeline; this package never mutates them).
func New(triangles []Triangle) *NavMesh {
	for i, t := range triangles {
		assert.True(t.ID == i, "navmesh: triangle %d has ID %d, ids must match their index", i, t.ID)
	}
	return &NavMesh{Triangles: triangles}
}

// locate returns the index of the first triangle containing p via a
// linear point-in-triangle scan, or false if none does.
func (m *NavMesh) locate(p crowdcore.Vec2) (int, bool) {
	for i, t := range m.Triangles {
		if t.Contains(p) {
			return i, true
		}
	}
	return 0, false
}

// FindPath locates the triangles containing start and end, searches the
// triangle adjacency graph with A*, and string-pulls the resulting
// corridor into a minimal polyline beginning with start and ending with
// end. It returns (nil, false) if either point lies outside the mesh.
func (m *NavMesh) FindPath(start, end crowdcore.Vec2) ([]crowdcore.Vec2, bool) {
	startTri, ok := m.locate(start)
	if !ok {
		return nil, false
	}
	endTri, ok := m.locate(end)
	if !ok {
		return nil, false
	}

	if startTri == endTri {
		return []crowdcore.Vec2{start, end}, true
	}

	neighbors := func(i int) []search.Step[int, float64] {
		t := m.Triangles[i]
		var out []search.Step[int, float64]
		center := t.Center()
		for _, n := range t.Neighbors {
			if n == NoNeighbor {
				continue
			}
			out = append(out, search.Step[int, float64]{
				Node: n,
				Cost: center.Dist(m.Triangles[n].Center()),
			})
		}
		return out
	}
	endCenter := m.Triangles[endTri].Center()
	heuristic := func(i int) float64 { return m.Triangles[i].Center().Dist(endCenter) }

	corridor, _, ok := search.AStar[int, float64](startTri, neighbors, heuristic, func(i int) bool { return i == endTri })
	if !ok {
		return nil, false
	}

	return m.funnel(start, end, corridor), true
}

// portal is a (left, right) vertex pair bounding the passage between two
// consecutive triangles in a corridor, oriented relative to the CCW
// traversal direction.
type portal struct{ left, right crowdcore.Vec2 }

// sharedPortal finds the edge shared by cur and next and orients its
// vertices as (left, right): if the shared edge appears as
// vertex index i -> (i+1)%3 in cur, the second vertex (i+1) is on the
// left. Scanning cur's own three edges for the one whose vertex pair also
// belongs to next always finds exactly one match in that forward
// direction (a triangle's own edges are enumerated start-to-end in its
// winding order), so this is the only case that can occur for a
// structurally valid mesh.
func sharedPortal(cur, next Triangle) portal {
	for i := 0; i < 3; i++ {
		a, b := cur.Vertices[i], cur.Vertices[(i+1)%3]
		if next.hasVertex(a) && next.hasVertex(b) {
			return portal{left: b, right: a}
		}
	}
	assert.True(false, "navmesh: triangles %d and %d do not share an edge", cur.ID, next.ID)
	return portal{}
}

// funnel applies the Demyen/Mika string-pulling algorithm to the triangle
// corridor, producing the minimal polyline from start to end.
func (m *NavMesh) funnel(start, end crowdcore.Vec2, corridor []int) []crowdcore.Vec2 {
	portals := make([]portal, len(corridor))
	for i := 0; i < len(corridor)-1; i++ {
		portals[i] = sharedPortal(m.Triangles[corridor[i]], m.Triangles[corridor[i+1]])
	}
	portals[len(portals)-1] = portal{left: end, right: end}

	path := []crowdcore.Vec2{start}
	apex := start
	left, right := portals[0].left, portals[0].right
	apexIdx, leftIdx, rightIdx := 0, 0, 0

	i := 1
	for i < len(portals) {
		pl, pr := portals[i].left, portals[i].right

		if signedArea(apex, right, pr) >= 0 {
			if apex == right || signedArea(apex, left, pr) < 0 {
				right = pr
				rightIdx = i
			} else {
				path = append(path, left)
				apex = left
				apexIdx = leftIdx
				left, right = apex, apex
				leftIdx, rightIdx = apexIdx, apexIdx
				i = apexIdx + 1
				continue
			}
		}

		if signedArea(apex, left, pl) <= 0 {
			if apex == left || signedArea(apex, right, pl) > 0 {
				left = pl
				leftIdx = i
			} else {
				path = append(path, right)
				apex = right
				apexIdx = rightIdx
				left, right = apex, apex
				leftIdx, rightIdx = apexIdx, apexIdx
				i = apexIdx + 1
				continue
			}
		}
		i++
	}
	// The final (end, end) portal can already have been emitted as an apex.
	if path[len(path)-1] != end {
		path = append(path, end)
	}
	return path
}
