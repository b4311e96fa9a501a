package hpa

import (
	"testing"

	"github.com/arl/crowdcore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openGrid(w, h int) *crowdcore.GridMap {
	return crowdcore.NewGridMap(w, h)
}

func TestFindPathSameCluster(t *testing.T) {
	g := Build(openGrid(20, 20), 10)
	path, ok := g.FindPath(GridPos{1, 1}, GridPos{8, 8})
	require.True(t, ok)
	assert.Len(t, path, 15)
	assert.Equal(t, GridPos{1, 1}, path[0])
	assert.Equal(t, GridPos{8, 8}, path[len(path)-1])
	for _, p := range path {
		assert.True(t, p.X <= 9 && p.Y <= 9, "path must stay within cluster (0,0): %v", p)
	}
	assertWalkableSteps(t, g.Grid, path)
}

func TestFindPathCrossCluster(t *testing.T) {
	g := Build(openGrid(20, 20), 10)
	path, ok := g.FindPath(GridPos{1, 1}, GridPos{18, 18})
	require.True(t, ok)
	assert.Len(t, path, 35)
	assert.Equal(t, GridPos{1, 1}, path[0])
	assert.Equal(t, GridPos{18, 18}, path[len(path)-1])
	assertWalkableSteps(t, g.Grid, path)
}

func TestFindPathNonWalkableEndpoint(t *testing.T) {
	grid := openGrid(20, 20)
	grid.SetWall(5, 5, true)
	g := Build(grid, 10)
	_, ok := g.FindPath(GridPos{5, 5}, GridPos{8, 8})
	assert.False(t, ok)
}

func TestFindPathUnreachable(t *testing.T) {
	grid := openGrid(20, 20)
	// seal the entire right and bottom edge of cluster (0,0), leaving no
	// walkable boundary cell for a portal to form on.
	for y := 0; y <= 9; y++ {
		grid.SetWall(9, y, true)
	}
	for x := 0; x <= 9; x++ {
		grid.SetWall(x, 9, true)
	}
	g := Build(grid, 10)
	_, ok := g.FindPath(GridPos{1, 1}, GridPos{15, 15})
	assert.False(t, ok)
}

func TestPortalCountInvariants(t *testing.T) {
	g := Build(openGrid(20, 20), 10)
	assert.Equal(t, len(g.portals), len(g.adjacency))
	for _, edges := range g.adjacency {
		for _, e := range edges {
			if e.InterCluster {
				assert.Empty(t, e.Path)
				continue
			}
			require.NotEmpty(t, e.Path)
			assert.Equal(t, len(e.Path)-1, e.Cost)
		}
	}
}

func assertWalkableSteps(t *testing.T, grid *crowdcore.GridMap, path []GridPos) {
	t.Helper()
	for i, p := range path {
		assert.True(t, grid.Walkable(p.X, p.Y), "step %d not walkable: %v", i, p)
		if i > 0 {
			assert.Equal(t, 1, path[i-1].manhattan(p), "step %d is not 4-connected", i)
		}
	}
}
