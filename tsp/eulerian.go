package tsp

import (
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/katalvlaran/christofides/graph"
)

// EulerianCircuit returns a closed walk from start that uses every edge of
// the undirected multigraph on n vertices exactly once (Hierholzer).
//
// Adjacency lists are built in edge order, each edge contributing one entry
// at both endpoints. The walk keeps an explicit stack: while the top vertex
// has a remaining neighbor, the first one is taken, that entry and one reverse
// entry are consumed and the neighbor is pushed; otherwise the top is popped
// onto the output. The output is reversed into traversal order.
//
// Precondition (trusted, not re-verified): every vertex has even degree and
// all edges are reachable from start. Then len(result) == len(edges)+1 and
// result[0] == result[len-1] == start. With no edges the result is [start].
//
// The edges slice is not mutated.
//
// Complexity: O(E · d) where d is the largest vertex degree.
func EulerianCircuit(edges []graph.Edge, n, start int) []int {
	adj := make([][]int, n)
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}

	walk := make([]int, 0, len(edges)+1)
	stack := arraystack.New()
	stack.Push(start)

	var u, v int
	for !stack.Empty() {
		top, _ := stack.Peek()
		u = top.(int)
		if len(adj[u]) == 0 {
			// Dead end: u is final in this sub-tour.
			stack.Pop()
			walk = append(walk, u)
			continue
		}

		// Consume edge u–v from both endpoints.
		v = adj[u][0]
		adj[u] = adj[u][1:]
		for i, x := range adj[v] {
			if x == u {
				adj[v] = append(adj[v][:i], adj[v][i+1:]...)
				break
			}
		}
		stack.Push(v)
	}

	// Popped order is the reverse traversal.
	for i, j := 0, len(walk)-1; i < j; i, j = i+1, j-1 {
		walk[i], walk[j] = walk[j], walk[i]
	}

	return walk
}

// Multigraph returns tree followed by matching as one fresh edge slice.
func Multigraph(tree, matching []graph.Edge) []graph.Edge {
	out := make([]graph.Edge, 0, len(tree)+len(matching))
	out = append(out, tree...)

	return append(out, matching...)
}
