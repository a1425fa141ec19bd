package tsp

import (
	"math"

	"github.com/pkg/errors"

	"github.com/katalvlaran/christofides/graph"
)

// SpanningTree computes a minimum spanning tree of the n×n cost matrix with
// dense Prim grown from root. It returns the n-1 edges in growth order
// (From = parent, To = child, Weight = cost[parent][child]) and their total.
//
// Policy:
//   - The not-yet-included vertex with the smallest connecting cost is chosen
//     next; the ascending scan with strict '<' makes the lowest index win ties.
//   - Only strictly positive finite costs relax a vertex. Zero between distinct
//     vertices and graph.Unreachable are treated as "no edge".
//   - A vertex that never receives a finite connecting cost yields
//     ErrDisconnectedGraph and no partial tree.
//
// The matrix is not mutated. Caller guarantees it is square and root is in range.
//
// Time:  O(n²).
// Space: O(n).
func SpanningTree(cost [][]float64, root int) ([]graph.Edge, float64, error) {
	n := len(cost)
	var (
		inTree   = make([]bool, n)
		bestCost = make([]float64, n)
		parent   = make([]int, n)
		tree     = make([]graph.Edge, 0, max(n-1, 0))
		total    float64
	)

	// 1) Initialization: nothing reachable, no parents.
	for v := range bestCost {
		bestCost[v] = math.Inf(1)
		parent[v] = -1
	}
	bestCost[root] = 0

	// 2) Grow one vertex at a time.
	var u, v, it int
	var minW, w float64
	for it = 0; it < n; it++ {
		// (a) Cheapest vertex outside the tree; lowest index on ties.
		u, minW = -1, math.Inf(1)
		for v = 0; v < n; v++ {
			if !inTree[v] && bestCost[v] < minW {
				minW, u = bestCost[v], v
			}
		}
		if u < 0 {
			return nil, 0, errors.Wrapf(ErrDisconnectedGraph, "%d of %d vertices reachable from %d", it, n, root)
		}

		// (b) Attach u to its parent (the root has none).
		inTree[u] = true
		if p := parent[u]; p >= 0 {
			tree = append(tree, graph.Edge{From: p, To: u, Weight: minW})
			total += minW
		}

		// (c) Relax outgoing costs of u against vertices still outside.
		for v = 0; v < n; v++ {
			if inTree[v] {
				continue
			}
			w = cost[u][v]
			if w > 0 && !math.IsInf(w, 1) && w < bestCost[v] {
				bestCost[v] = w
				parent[v] = u
			}
		}
	}

	return tree, round1e9(total), nil
}

// OddDegreeVertices returns, ascending, the vertices whose degree among the
// tree edges is odd. Their count is always even.
//
// Complexity: O(n + |tree|).
func OddDegreeVertices(tree []graph.Edge, n int) []int {
	deg := make([]int, n)
	for _, e := range tree {
		deg[e.From]++
		deg[e.To]++
	}

	odd := make([]int, 0, n/2+1)
	for v := 0; v < n; v++ {
		if deg[v]&1 == 1 {
			odd = append(odd, v)
		}
	}

	return odd
}
