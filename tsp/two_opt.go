// Package tsp - 2-opt local search over a closed Hamiltonian cycle.
//
// TwoOpt performs deterministic first-improvement 2-opt: for cut positions
// 1 ≤ i < k ≤ n−1 it reverses T[i..k]. The delta is computed directionally,
//
//	Δ = w(a,c) + w(b,d) − w(a,b) − w(c,d) + Σ w(T[p+1],T[p]) − Σ w(T[p],T[p+1]),  p ∈ [i, k)
//
// with a=T[i−1], b=T[i], c=T[k], d=T[k+1], so asymmetric matrices are charged
// correctly (on symmetric ones the sums cancel). Moves that would introduce
// graph.Unreachable are rejected. The start vertex never moves.
//
// Complexity: O(n³) per pass; the scan restarts after each accepted move.
package tsp

import (
	"math"

	"github.com/pkg/errors"
)

// improveEps is the minimal gain for a move to be accepted.
const improveEps = 1e-12

// TwoOpt improves tour until no move gains more than improveEps or maxIters
// moves were accepted (0 = unbounded). It returns a new tour and its cost;
// the input is not mutated.
//
// tour must be a valid closed cycle over cost (see ValidateTour).
func TwoOpt(cost [][]float64, tour []int, maxIters int) ([]int, float64, error) {
	if len(tour) < 2 {
		return nil, 0, errors.Wrapf(ErrInvalidCycleEdge, "tour of length %d", len(tour))
	}
	n := len(tour) - 1
	if err := ValidateTour(tour, n, tour[0]); err != nil {
		return nil, 0, err
	}

	cur := append([]int(nil), tour...)
	total, err := CycleCost(cost, cur)
	if err != nil {
		return nil, 0, err
	}
	if n < 4 {
		// Every reversal of a triangle yields the same undirected cycle.
		return cur, total, nil
	}

	at := func(u, v int) float64 {
		if u == v {
			return 0
		}
		return cost[u][v]
	}

	var (
		accepted      int
		i, k, p       int
		a, b, c, d    int
		delta, fw, bw float64
		improved      bool
	)
	for {
		improved = false
		for i = 1; i <= n-2 && !improved; i++ {
			for k = i + 1; k <= n-1; k++ {
				a, b, c, d = cur[i-1], cur[i], cur[k], cur[k+1]
				if math.IsInf(at(a, c), 1) || math.IsInf(at(b, d), 1) {
					continue
				}

				fw, bw = 0, 0
				for p = i; p < k; p++ {
					fw += at(cur[p], cur[p+1])
					bw += at(cur[p+1], cur[p])
				}
				if math.IsInf(bw, 1) {
					continue
				}

				delta = at(a, c) + at(b, d) - at(a, b) - at(c, d) + bw - fw
				if delta >= -improveEps {
					continue
				}

				reverseSegment(cur, i, k)
				accepted++
				improved = true
				if maxIters > 0 && accepted >= maxIters {
					return finishTwoOpt(cost, cur, n)
				}
				break
			}
		}
		if !improved {
			break
		}
	}

	return finishTwoOpt(cost, cur, n)
}

// finishTwoOpt re-validates the tour and recomputes its cost from scratch so
// accumulated deltas never drift into the result.
func finishTwoOpt(cost [][]float64, tour []int, n int) ([]int, float64, error) {
	if err := ValidateTour(tour, n, tour[0]); err != nil {
		return nil, 0, err
	}
	total, err := CycleCost(cost, tour)
	if err != nil {
		return nil, 0, err
	}

	return tour, total, nil
}
