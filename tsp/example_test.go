package tsp_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/christofides/graph"
	"github.com/katalvlaran/christofides/tsp"
)

// ExampleSolve runs the full pipeline on a four-vertex star whose centre
// reaches every leaf cheaply.
func ExampleSolve() {
	g, err := graph.ParseString(`4
0 1 2 3
1 0 4 5
2 4 0 6
3 5 6 0
`)
	if err != nil {
		fmt.Println("parse:", err)
		return
	}

	res, err := tsp.Solve(g)
	if err != nil {
		fmt.Println("solve:", err)
		return
	}

	fmt.Println("tree weight:", res.TreeWeight)
	fmt.Println("odd:", res.Odd)
	fmt.Println("circuit:", res.Circuit)
	fmt.Println("cycle:", res.Cycle)
	fmt.Println("cost:", res.Cost)

	// Output:
	// tree weight: 6
	// odd: [0 1 2 3]
	// circuit: [0 1 0 2 3 0]
	// cycle: [0 1 2 3 0]
	// cost: 14
}

// ExampleSolve_ring shows a five-vertex ring metric where the
// approximation finds the optimum.
func ExampleSolve_ring() {
	const n = 5
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			d := i - j
			if d < 0 {
				d = -d
			}
			if n-d < d {
				d = n - d
			}
			rows[i][j] = float64(d)
		}
	}
	g, err := graph.FromRows(rows)
	if err != nil {
		fmt.Println("build:", err)
		return
	}

	res, err := tsp.Solve(g)
	if err != nil {
		fmt.Println("solve:", err)
		return
	}

	parts := make([]string, len(res.Cycle))
	for i, v := range res.Cycle {
		parts[i] = fmt.Sprint(v)
	}
	fmt.Println(strings.Join(parts, "->"))
	fmt.Printf("cost %.3f\n", res.Cost)

	// Output:
	// 0->1->2->3->4->0
	// cost 5.000
}

// ExampleTwoOpt uncrosses a tour on the unit square.
func ExampleTwoOpt() {
	square := [][]float64{
		{0, 1, 1.4142135623730951, 1},
		{1, 0, 1, 1.4142135623730951},
		{1.4142135623730951, 1, 0, 1},
		{1, 1.4142135623730951, 1, 0},
	}

	tour, cost, err := tsp.TwoOpt(square, []int{0, 2, 1, 3, 0}, 0)
	if err != nil {
		fmt.Println("2-opt:", err)
		return
	}
	fmt.Println(tour, cost)

	// Output:
	// [0 1 2 3 0] 4
}
