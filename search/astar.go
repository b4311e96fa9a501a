// Package search implements a generic best-first search shared by the
// point-to-point pathfinders in crowdcore: the navmesh triangle-graph A*
// and the hierarchical pathfinder's local and abstract searches all expand
// through the same AStar call. The flow field's Dijkstra build does not
// use it; it runs its own container/heap queue.
//
// The queue is a container/heap min-heap keyed on f = g + h, with lazy
// deletion: a popped entry is discarded if a cheaper g for the same node
// was recorded after it was pushed. This mirrors the node-pool/priority-queue
// split of a hand-rolled array heap, but leans on the standard library
// instead of reimplementing bubble/trickle.
package search

import "container/heap"

// Cost is the set of types usable as accumulated path cost. It need not be
// integral; NaN is tolerated by treating incomparable pairs as equal (see
// queue.Less).
type Cost interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Step is a neighbor reachable from a node, with the cost of the edge
// leading to it.
type Step[N comparable, C Cost] struct {
	Node N
	Cost C
}

// Neighbors returns the outgoing edges of n.
type Neighbors[N comparable, C Cost] func(n N) []Step[N, C]

// Heuristic estimates the remaining cost from n to the goal. It must be
// admissible (never overestimate) for the returned path to be optimal.
type Heuristic[N comparable, C Cost] func(n N) C

// Goal reports whether n satisfies the search's termination condition.
type Goal[N comparable] func(n N) bool

// AStar searches from start until a node satisfying goal is popped from the
// open set. It returns the optimal cumulative cost and the node sequence
// from start to the goal node, or ok=false if the goal is unreachable.
//
// Tie-breaks between equal-cost paths are unspecified: callers must not
// depend on which of several optimal paths is returned, only that its cost
// is optimal.
func AStar[N comparable, C Cost](start N, neighbors Neighbors[N, C], h Heuristic[N, C], goal Goal[N]) (path []N, cost C, ok bool) {
	best := map[N]C{start: 0}
	pred := make(map[N]N)

	open := &queue[N, C]{}
	heap.Init(open)
	heap.Push(open, &item[N, C]{node: start, g: 0, f: h(start)})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*item[N, C])

		// Lazy deletion: a better g for this node was found after this
		// entry was pushed; the stale entry is discarded.
		if g, ok := best[cur.node]; ok && cur.g > g {
			continue
		}

		if goal(cur.node) {
			return reconstruct(pred, start, cur.node), cur.g, true
		}

		for _, step := range neighbors(cur.node) {
			ng := cur.g + step.Cost
			if g, seen := best[step.Node]; seen && ng >= g {
				continue
			}
			best[step.Node] = ng
			pred[step.Node] = cur.node
			heap.Push(open, &item[N, C]{node: step.Node, g: ng, f: ng + h(step.Node)})
		}
	}
	var zero C
	return nil, zero, false
}

func reconstruct[N comparable](pred map[N]N, start, end N) []N {
	path := []N{end}
	for cur := end; cur != start; {
		p, ok := pred[cur]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type item[N comparable, C Cost] struct {
	node N
	g, f C
}

// queue is a container/heap min-heap of *item, ordered by f. NaN costs
// compare as equal to anything (neither less), matching the documented
// tolerance for incomparable pairs.
type queue[N comparable, C Cost] []*item[N, C]

func (q queue[N, C]) Len() int { return len(q) }

func (q queue[N, C]) Less(i, j int) bool {
	return q[i].f < q[j].f
}

func (q queue[N, C]) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue[N, C]) Push(x any) {
	*q = append(*q, x.(*item[N, C]))
}

func (q *queue[N, C]) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}
