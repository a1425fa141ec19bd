// Package tsp - tour utilities operating purely on index sequences.
//
//   - Shortcut: first-visit order of an Eulerian walk, closed back to its start.
//   - ValidateTour: Hamiltonian cycle invariants.
//   - reverseSegment: in-place reversal used by 2-opt.
package tsp

import (
	"github.com/pkg/errors"
)

// Shortcut walks circuit in order, keeps each vertex the first time it is
// seen and appends circuit[0] to close the cycle. On a metric graph this never
// increases the cost (triangle inequality).
//
// Vertices must lie in [0..n-1]; otherwise ErrInvalidCycleEdge.
// For circuit [s] the result is [s, s].
//
// Complexity: O(len(circuit)) time, O(n) space.
func Shortcut(circuit []int, n int) ([]int, error) {
	if len(circuit) == 0 {
		return nil, errors.WithMessage(ErrInvalidCycleEdge, "empty circuit")
	}

	seen := make([]bool, n)
	path := make([]int, 0, n+1)
	for _, v := range circuit {
		if v < 0 || v >= n {
			return nil, errors.Wrapf(ErrInvalidCycleEdge, "vertex %d outside [0..%d]", v, n-1)
		}
		if seen[v] {
			continue
		}
		seen[v] = true
		path = append(path, v)
	}

	return append(path, path[0]), nil
}

// ValidateTour checks that tour is a closed Hamiltonian cycle on n vertices
// anchored at start: len == n+1, tour[0] == tour[n] == start, and every vertex
// appears exactly once among tour[0..n-1].
//
// Complexity: O(n).
func ValidateTour(tour []int, n, start int) error {
	if n <= 0 || len(tour) != n+1 {
		return errors.Wrapf(ErrInvalidCycleEdge, "tour length %d, want %d", len(tour), n+1)
	}
	if tour[0] != start || tour[n] != start {
		return errors.Wrapf(ErrInvalidCycleEdge, "tour must start and end at %d, got %d..%d", start, tour[0], tour[n])
	}

	seen := make([]bool, n)
	var i, v int
	for i = 0; i < n; i++ {
		v = tour[i]
		if v < 0 || v >= n {
			return errors.Wrapf(ErrInvalidCycleEdge, "vertex %d outside [0..%d]", v, n-1)
		}
		if seen[v] {
			return errors.Wrapf(ErrInvalidCycleEdge, "vertex %d visited twice", v)
		}
		seen[v] = true
	}

	return nil
}

// reverseSegment reverses tour[i..k] in place.
func reverseSegment(tour []int, i, k int) {
	for i < k {
		tour[i], tour[k] = tour[k], tour[i]
		i++
		k--
	}
}
