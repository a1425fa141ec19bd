// Package tsp_test provides lightweight testing helpers shared across *_test.go
// files in this package.
package tsp_test

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/katalvlaran/christofides/graph"
)

// -----------------------------------------------------------------------------
// Constants - single source of truth for test knobs
// -----------------------------------------------------------------------------

const (
	// startV is the canonical start vertex used across tests.
	startV = 0

	// seedDet seeds every random instance so runs are reproducible.
	seedDet = int64(42)
)

// -----------------------------------------------------------------------------
// Generic helpers (repeaters, assertions, numeric closeness)
// -----------------------------------------------------------------------------

// Repeat runs fn n times. Useful for determinism/stability checks.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	var i int
	for i = 0; i < n; i++ {
		fn(t)
	}
}

// mustEqualInts asserts exact equality of two integer slices.
func mustEqualInts(t *testing.T, got, want []int) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Fatalf("mismatch:\n got:  %v\n want: %v", got, want)
	}
}

// mustErrIs asserts that err matches target using errors.Is.
func mustErrIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("want %v, got %v", target, err)
	}
}

// mustFloatClose asserts |got-want| <= abs.
func mustFloatClose(t *testing.T, got, want, abs float64) {
	t.Helper()
	if math.Abs(got-want) > abs {
		t.Fatalf("float mismatch: got=%.17g want=%.17g (abs=%.1e)", got, want, abs)
	}
}

// mustGraph builds a graph from rows or fails the test.
func mustGraph(t testing.TB, rows [][]float64) *graph.Graph {
	t.Helper()
	g, err := graph.FromRows(rows)
	if err != nil {
		t.Fatalf("graph.FromRows: %v", err)
	}

	return g
}

// -----------------------------------------------------------------------------
// Instances
// -----------------------------------------------------------------------------

// star4 is the reference 4-vertex instance whose MST is the star 0-1, 0-2, 0-3.
func star4() [][]float64 {
	return [][]float64{
		{0, 1, 2, 3},
		{1, 0, 4, 5},
		{2, 4, 0, 6},
		{3, 5, 6, 0},
	}
}

// euclid builds a symmetric metric from 2D points with zero diagonal.
func euclid(pts [][2]float64) [][]float64 {
	n := len(pts)
	a := make([][]float64, n)
	var i, j int
	for i = 0; i < n; i++ {
		a[i] = make([]float64, n)
	}

	var d float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = math.Hypot(pts[i][0]-pts[j][0], pts[i][1]-pts[j][1])
			a[i][j] = d
			a[j][i] = d
		}
	}

	return a
}

// rippledCircle places n points on a slightly perturbed circle so that
// distances are pairwise distinct.
func rippledCircle(n int) [][]float64 {
	pts := make([][2]float64, n)
	var (
		i     int
		th, r float64
	)
	for i = 0; i < n; i++ {
		th = 2 * math.Pi * float64(i) / float64(n)
		r = 1.0 + 0.03*math.Cos(3*th)
		pts[i] = [2]float64{r * math.Cos(th), r * math.Sin(th)}
	}

	return euclid(pts)
}

// randomPoints returns a Euclidean instance over n uniform points in [0,100)².
func randomPoints(rng *rand.Rand, n int) [][]float64 {
	pts := make([][2]float64, n)
	for i := range pts {
		pts[i] = [2]float64{rng.Float64() * 100, rng.Float64() * 100}
	}

	return euclid(pts)
}

// uniform builds a complete matrix with w off the diagonal.
func uniform(n int, w float64) [][]float64 {
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		for j := range a[i] {
			if i != j {
				a[i][j] = w
			}
		}
	}

	return a
}

// -----------------------------------------------------------------------------
// Structural helpers
// -----------------------------------------------------------------------------

// pairKey is an unordered vertex pair.
type pairKey struct{ a, b int }

func keyOf(u, v int) pairKey {
	if u > v {
		u, v = v, u
	}

	return pairKey{u, v}
}

// edgeMultiset counts unordered edges.
func edgeMultiset(edges []graph.Edge) map[pairKey]int {
	m := make(map[pairKey]int, len(edges))
	for _, e := range edges {
		m[keyOf(e.From, e.To)]++
	}

	return m
}

// walkMultiset counts the unordered edges traversed by consecutive pairs of walk.
func walkMultiset(walk []int) map[pairKey]int {
	m := make(map[pairKey]int, len(walk))
	for i := 0; i+1 < len(walk); i++ {
		m[keyOf(walk[i], walk[i+1])]++
	}

	return m
}

// connected reports whether edges span all n vertices (union-find).
func connected(edges []graph.Edge, n int) bool {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	comps := n
	for _, e := range edges {
		ra, rb := find(e.From), find(e.To)
		if ra != rb {
			parent[ra] = rb
			comps--
		}
	}

	return comps == 1
}

// bruteForceOptimum enumerates every cycle from vertex 0 (n ≤ 9).
func bruteForceOptimum(cost [][]float64) float64 {
	n := len(cost)
	rest := make([]int, 0, n-1)
	for v := 1; v < n; v++ {
		rest = append(rest, v)
	}
	best := math.Inf(1)
	var permute func(k int)
	permute = func(k int) {
		if k == len(rest) {
			c, prev := 0.0, 0
			for _, v := range rest {
				c += cost[prev][v]
				prev = v
			}
			c += cost[prev][0]
			if c < best {
				best = c
			}
			return
		}
		for i := k; i < len(rest); i++ {
			rest[k], rest[i] = rest[i], rest[k]
			permute(k + 1)
			rest[k], rest[i] = rest[i], rest[k]
		}
	}
	permute(0)

	return best
}
