// Package tsp_test verifies dense Prim (O(n^2)).
// Focus:
//  1. Correct total weight and tree structure on small instances.
//  2. Deterministic result under uniform weights (lowest index wins ties).
//  3. Zero and Unreachable costs are "no edge"; disconnection is fatal.
package tsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/christofides/graph"
	"github.com/katalvlaran/christofides/tsp"
)

// -----------------------------------------------------------------------------
// 1) Weight and structure.
// -----------------------------------------------------------------------------

func TestSpanningTree_Star4(t *testing.T) {
	tree, w, err := tsp.SpanningTree(star4(), startV)
	require.NoError(t, err)

	assert.Equal(t, 6.0, w)
	assert.Equal(t, []graph.Edge{
		{From: 0, To: 1, Weight: 1},
		{From: 0, To: 2, Weight: 2},
		{From: 0, To: 3, Weight: 3},
	}, tree)
}

func TestSpanningTree_Path(t *testing.T) {
	// Unique MST is the path 0-1-2-3 of total weight 3.
	a := [][]float64{
		{0, 1, 2, 2},
		{1, 0, 1, 2},
		{2, 1, 0, 1},
		{2, 2, 1, 0},
	}
	tree, w, err := tsp.SpanningTree(a, startV)
	require.NoError(t, err)
	mustFloatClose(t, w, 3, 1e-12)
	require.Len(t, tree, 3)
	assert.True(t, connected(tree, 4))
}

func TestSpanningTree_SingleVertex(t *testing.T) {
	tree, w, err := tsp.SpanningTree([][]float64{{0}}, startV)
	require.NoError(t, err)
	assert.Empty(t, tree)
	assert.Zero(t, w)
}

// -----------------------------------------------------------------------------
// 2) Tie-break determinism: uniform weights give a star centered at the root.
// -----------------------------------------------------------------------------

func TestSpanningTree_TieBreak_UniformWeights(t *testing.T) {
	const n = 6
	tree, w, err := tsp.SpanningTree(uniform(n, 1), startV)
	require.NoError(t, err)
	mustFloatClose(t, w, n-1, 1e-12)

	// Vertices join in ascending index order, all attached to 0.
	for i, e := range tree {
		assert.Equal(t, 0, e.From, "edge %d", i)
		assert.Equal(t, i+1, e.To, "edge %d", i)
	}
}

func TestSpanningTree_OtherRoot(t *testing.T) {
	tree, _, err := tsp.SpanningTree(uniform(4, 2), 2)
	require.NoError(t, err)
	mustEqualInts(t, []int{tree[0].To, tree[1].To, tree[2].To}, []int{0, 1, 3})
}

// -----------------------------------------------------------------------------
// 3) "No edge" policy and disconnection.
// -----------------------------------------------------------------------------

func TestSpanningTree_ZeroIsNoEdge(t *testing.T) {
	// 0-2 costs 0, which must not be used; 2 joins via 1.
	a := [][]float64{
		{0, 1, 0},
		{1, 0, 5},
		{0, 5, 0},
	}
	tree, w, err := tsp.SpanningTree(a, startV)
	require.NoError(t, err)
	assert.Equal(t, 6.0, w)
	assert.Equal(t, graph.Edge{From: 1, To: 2, Weight: 5}, tree[1])
}

func TestSpanningTree_Disconnected(t *testing.T) {
	inf := graph.Unreachable
	cases := map[string][][]float64{
		"zero row": {
			{0, 1, 0},
			{1, 0, 0},
			{0, 0, 0},
		},
		"unreachable block": {
			{0, 1, 1, inf},
			{1, 0, 1, inf},
			{1, 1, 0, inf},
			{inf, inf, inf, 0},
		},
		"two components": {
			{0, 1, 0, 0},
			{1, 0, 0, 0},
			{0, 0, 0, 1},
			{0, 0, 1, 0},
		},
	}
	for name, a := range cases {
		t.Run(name, func(t *testing.T) {
			tree, _, err := tsp.SpanningTree(a, startV)
			mustErrIs(t, err, tsp.ErrDisconnectedGraph)
			assert.Nil(t, tree)
		})
	}
}

func TestSpanningTree_DoesNotMutateInput(t *testing.T) {
	a := star4()
	_, _, err := tsp.SpanningTree(a, startV)
	require.NoError(t, err)
	assert.Equal(t, star4(), a)
}

// -----------------------------------------------------------------------------
// Odd-degree detection.
// -----------------------------------------------------------------------------

func TestOddDegreeVertices(t *testing.T) {
	cases := []struct {
		name string
		tree []graph.Edge
		n    int
		want []int
	}{
		{"empty", nil, 1, []int{}},
		{"star4", []graph.Edge{{From: 0, To: 1}, {From: 0, To: 2}, {From: 0, To: 3}}, 4, []int{0, 1, 2, 3}},
		{"path4", []graph.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}}, 4, []int{0, 3}},
		{"unordered", []graph.Edge{{From: 3, To: 1}, {From: 1, To: 2}}, 4, []int{2, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tsp.OddDegreeVertices(tc.tree, tc.n)
			mustEqualInts(t, got, tc.want)
			assert.Zero(t, len(got)%2, "odd count must be even")
		})
	}
}
