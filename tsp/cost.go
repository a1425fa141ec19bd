// Package tsp - cost accumulation along a closed cycle.
//
// Every edge is read as cost[u][v] in traversal order, so asymmetric matrices
// are charged directionally. Sums are rounded to 1e-9 to keep results stable
// across platforms.
package tsp

import (
	"math"

	"github.com/pkg/errors"
)

// roundScale controls final cost stabilization precision (1e-9).
const roundScale = 1e9

// CycleCost sums cost[cycle[i]][cycle[i+1]] over consecutive pairs.
//
// A pair u == v contributes 0 (the closure of a single-vertex cycle).
// An index outside the matrix, NaN, negative or graph.Unreachable entry yields
// ErrInvalidCycleEdge.
//
// Complexity: O(len(cycle)).
func CycleCost(cost [][]float64, cycle []int) (float64, error) {
	if len(cycle) < 2 {
		return 0, errors.Wrapf(ErrInvalidCycleEdge, "cycle of length %d", len(cycle))
	}

	var sum float64
	for i := 0; i+1 < len(cycle); i++ {
		w, err := edgeCost(cost, cycle[i], cycle[i+1])
		if err != nil {
			return 0, err
		}
		sum += w
	}

	return round1e9(sum), nil
}

// edgeCost fetches cost[u][v] with strict validation.
func edgeCost(cost [][]float64, u, v int) (float64, error) {
	n := len(cost)
	if u < 0 || u >= n || v < 0 || v >= n {
		return 0, errors.Wrapf(ErrInvalidCycleEdge, "edge %d→%d outside [0..%d]", u, v, n-1)
	}
	if u == v {
		return 0, nil
	}
	w := cost[u][v]
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0, errors.Wrapf(ErrInvalidCycleEdge, "edge %d→%d has cost %g", u, v, w)
	}

	return w, nil
}

// round1e9 returns x rounded to 1e-9 absolute precision.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
