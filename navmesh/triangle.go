package navmesh

import "github.com/arl/crowdcore"

// Triangle is a single navmesh triangle: an id equal to its index, three
// CCW-wound vertices, and up to three neighbor triangle indices.
// Neighbors[i] is the triangle across the edge Vertices[i] ->
// Vertices[(i+1)%3], or -1 if that edge is a mesh boundary.
type Triangle struct {
	ID        int
	Vertices  [3]crowdcore.Vec2
	Neighbors [3]int
}

// NoNeighbor marks a triangle edge with no neighbor across it.
const NoNeighbor = -1

// Center returns the triangle's centroid.
func (t Triangle) Center() crowdcore.Vec2 {
	return crowdcore.Vec2{
		X: (t.Vertices[0].X + t.Vertices[1].X + t.Vertices[2].X) / 3,
		Y: (t.Vertices[0].Y + t.Vertices[1].Y + t.Vertices[2].Y) / 3,
	}
}

// Contains reports whether p lies inside t, edges included. Triangles are
// assumed non-degenerate and CCW-wound, so p is inside iff it is not
// strictly to the right of any of the three directed edges.
func (t Triangle) Contains(p crowdcore.Vec2) bool {
	for i := 0; i < 3; i++ {
		a, b := t.Vertices[i], t.Vertices[(i+1)%3]
		if signedArea(a, b, p) < 0 {
			return false
		}
	}
	return true
}

// hasVertex reports whether v is (exactly) one of t's three vertices.
func (t Triangle) hasVertex(v crowdcore.Vec2) bool {
	return t.Vertices[0] == v || t.Vertices[1] == v || t.Vertices[2] == v
}

func signedArea(a, b, c crowdcore.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}
