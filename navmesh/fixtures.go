package navmesh

import (
	"fmt"
	"io"

	"github.com/arl/crowdcore"
	"github.com/arl/gobj"
)

// FromOBJ decodes a triangulated OBJ mesh into a NavMesh, deriving
// triangle adjacency by matching shared edges. Triangles are expected to
// arrive pre-built from an external authoring pipeline; FromOBJ plays that role
// for test fixtures and for the cmd/crowdsim "build" subcommand, the way
// the teacher's meshloaderobj.go loads recast input geometry from OBJ.
//
// Every face in r must already be a triangle; authoring pipelines are
// expected to triangulate before emitting the mesh.
func FromOBJ(r io.Reader) (*NavMesh, error) {
	obj, err := gobj.Decode(r)
	if err != nil {
		return nil, err
	}

	polys := obj.Polys()
	tris := make([]Triangle, len(polys))
	for i, poly := range polys {
		if len(poly) != 3 {
			return nil, fmt.Errorf("navmesh: face %d has %d vertices, want a triangulated 3-vertex face", i, len(poly))
		}
		tris[i] = Triangle{
			ID: i,
			Vertices: [3]crowdcore.Vec2{
				{X: poly[0].X(), Y: poly[0].Y()},
				{X: poly[1].X(), Y: poly[1].Y()},
				{X: poly[2].X(), Y: poly[2].Y()},
			},
			Neighbors: [3]int{NoNeighbor, NoNeighbor, NoNeighbor},
		}
	}
	linkSharedEdges(tris)
	return New(tris), nil
}

// edgeRef identifies one directed edge of one triangle.
type edgeRef struct {
	tri, edge int
}

// vertexPair is a canonical (order-independent) key for an undirected
// edge between two vertices.
type vertexPair struct{ a, b crowdcore.Vec2 }

func canonicalPair(a, b crowdcore.Vec2) vertexPair {
	if a.X < b.X || (a.X == b.X && a.Y < b.Y) {
		return vertexPair{a, b}
	}
	return vertexPair{b, a}
}

// linkSharedEdges sets Neighbors[i] on every triangle whose edge i is
// shared with exactly one other triangle in tris.
func linkSharedEdges(tris []Triangle) {
	byEdge := make(map[vertexPair][]edgeRef)
	for ti, t := range tris {
		for e := 0; e < 3; e++ {
			key := canonicalPair(t.Vertices[e], t.Vertices[(e+1)%3])
			byEdge[key] = append(byEdge[key], edgeRef{tri: ti, edge: e})
		}
	}
	for _, refs := range byEdge {
		if len(refs) != 2 {
			continue
		}
		tris[refs[0].tri].Neighbors[refs[0].edge] = refs[1].tri
		tris[refs[1].tri].Neighbors[refs[1].edge] = refs[0].tri
	}
}
