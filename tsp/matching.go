package tsp

import (
	"math"
	"math/bits"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/pkg/errors"

	"github.com/katalvlaran/christofides/graph"
)

// MaxExactOdd bounds the odd-vertex count accepted by ExactMatching.
const MaxExactOdd = 20

// GreedyMatching pairs the odd vertices by nearest-unmatched search.
//
// The remaining set iterates in ascending vertex order. Each round removes its
// first vertex u, scans every other remaining v in order and keeps the first
// strictly smallest cost[u][v]; both leave the set. graph.Unreachable is never
// selected. A vertex left without a partner yields ErrUnmatchableVertices.
//
// Edges are returned in pairing order as {From: u, To: v, Weight: cost[u][v]}.
//
// Complexity: O(k² log k), where k = len(odd).
func GreedyMatching(odd []int, cost [][]float64) ([]graph.Edge, error) {
	remaining := treeset.NewWithIntComparator()
	for _, v := range odd {
		remaining.Add(v)
	}
	matching := make([]graph.Edge, 0, remaining.Size()/2)

	var (
		u, v, best int
		w, bestW   float64
	)
	for !remaining.Empty() {
		first := remaining.Iterator()
		first.First()
		u = first.Value().(int)
		remaining.Remove(u)

		best, bestW = -1, math.Inf(1)
		for it := remaining.Iterator(); it.Next(); {
			v = it.Value().(int)
			if w = cost[u][v]; w < bestW {
				best, bestW = v, w
			}
		}
		if best < 0 {
			return nil, errors.Wrapf(ErrUnmatchableVertices, "no partner for vertex %d", u)
		}

		remaining.Remove(best)
		matching = append(matching, graph.Edge{From: u, To: best, Weight: bestW})
	}

	return matching, nil
}

// ExactMatching returns a minimum-weight perfect matching of the odd vertices
// by dynamic programming over subsets. Pair costs are read as cost[a][b] with
// a < b in the odd list order, so asymmetric matrices use their upper triangle.
//
// Ties resolve towards the partner found first when pairing the lowest
// unmatched vertex with candidates in ascending list position.
//
// Errors:
//   - ErrTooManyOddVertices when len(odd) > MaxExactOdd.
//   - ErrUnmatchableVertices for an odd-sized set or when no perfect matching
//     avoids graph.Unreachable.
//
// Complexity: O(2^k · k) time, O(2^k) space.
func ExactMatching(odd []int, cost [][]float64) ([]graph.Edge, error) {
	k := len(odd)
	if k > MaxExactOdd {
		return nil, errors.Wrapf(ErrTooManyOddVertices, "%d > %d", k, MaxExactOdd)
	}
	if k&1 == 1 {
		return nil, errors.Wrapf(ErrUnmatchableVertices, "odd-sized set of %d vertices", k)
	}
	if k == 0 {
		return []graph.Edge{}, nil
	}

	var (
		full = 1<<k - 1
		dp   = make([]float64, full+1)
		pick = make([]uint32, full+1) // packed (i, j) of the pair closing the mask
	)
	for m := range dp {
		dp[m] = math.Inf(1)
	}
	dp[0] = 0

	var (
		mask, next, i, j int
		w, c             float64
	)
	for mask = 0; mask < full; mask++ {
		if math.IsInf(dp[mask], 1) {
			continue
		}
		// Lowest unmatched position pairs with every later unmatched one.
		i = bits.TrailingZeros(uint(^mask))
		for j = i + 1; j < k; j++ {
			if mask&(1<<j) != 0 {
				continue
			}
			w = cost[odd[i]][odd[j]]
			if math.IsInf(w, 1) || math.IsNaN(w) {
				continue
			}
			next = mask | 1<<i | 1<<j
			if c = dp[mask] + w; c < dp[next] {
				dp[next] = c
				pick[next] = uint32(i)<<16 | uint32(j)
			}
		}
	}
	if math.IsInf(dp[full], 1) {
		return nil, errors.WithMessage(ErrUnmatchableVertices, "every perfect matching uses an unreachable pair")
	}

	// Walk back from the full mask; pairs come out highest-first.
	matching := make([]graph.Edge, k/2)
	for mask, p := full, k/2-1; mask != 0; p-- {
		i, j = int(pick[mask]>>16), int(pick[mask]&0xffff)
		matching[p] = graph.Edge{From: odd[i], To: odd[j], Weight: cost[odd[i]][odd[j]]}
		mask &^= 1<<i | 1<<j
	}

	return matching, nil
}
