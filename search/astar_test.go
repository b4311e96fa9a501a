package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct{ x, y int }

func gridNeighbors(walls map[point]bool, w, h int) Neighbors[point, int] {
	return func(p point) []Step[point, int] {
		var out []Step[point, int]
		for _, d := range []point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := point{p.x + d.x, p.y + d.y}
			if n.x < 0 || n.y < 0 || n.x >= w || n.y >= h || walls[n] {
				continue
			}
			out = append(out, Step[point, int]{Node: n, Cost: 1})
		}
		return out
	}
}

func manhattan(goal point) Heuristic[point, int] {
	return func(p point) int {
		d := p.x - goal.x
		if d < 0 {
			d = -d
		}
		d2 := p.y - goal.y
		if d2 < 0 {
			d2 = -d2
		}
		return d + d2
	}
}

func TestAStarOpenGrid(t *testing.T) {
	start, end := point{0, 0}, point{4, 4}
	path, cost, ok := AStar[point, int](start, gridNeighbors(nil, 10, 10), manhattan(end), func(p point) bool { return p == end })
	require.True(t, ok)
	assert.Equal(t, 8, cost)
	assert.Equal(t, start, path[0])
	assert.Equal(t, end, path[len(path)-1])
	for i := 1; i < len(path); i++ {
		dx := path[i].x - path[i-1].x
		dy := path[i].y - path[i-1].y
		assert.Equal(t, 1, abs(dx)+abs(dy), "step %d is not 4-connected", i)
	}
}

func TestAStarUnreachable(t *testing.T) {
	walls := map[point]bool{}
	for y := 0; y < 10; y++ {
		walls[point{5, y}] = true
	}
	start, end := point{0, 0}, point{9, 0}
	_, _, ok := AStar[point, int](start, gridNeighbors(walls, 10, 10), manhattan(end), func(p point) bool { return p == end })
	assert.False(t, ok)
}

func TestAStarTrivialGoalAtStart(t *testing.T) {
	start := point{3, 3}
	path, cost, ok := AStar[point, int](start, gridNeighbors(nil, 10, 10), manhattan(start), func(p point) bool { return p == start })
	require.True(t, ok)
	assert.Equal(t, 0, cost)
	assert.Equal(t, []point{start}, path)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
