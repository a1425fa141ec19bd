// Package tsp - the single entry point running the Christofides pipeline.
//
// Solve snapshots the graph's matrix once, then runs
// SpanningTree → OddDegreeVertices → matching → EulerianCircuit → Shortcut →
// CycleCost (→ optional TwoOpt), each stage consuming the previous stage's
// fresh output. Any error aborts the run; there is no partial result.
package tsp

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/christofides/graph"
)

// Solve computes an approximate TSP cycle over g.
//
// Errors (match with errors.Is):
//   - ErrMalformedInput      - g is nil.
//   - ErrStartOutOfRange     - WithStart outside [0..n-1].
//   - ErrDisconnectedGraph   - some vertex is unreachable by positive finite costs.
//   - ErrUnmatchableVertices - matching invariant broken (internal).
//   - ErrTooManyOddVertices  - MatchExact above MaxExactOdd odd vertices.
//   - ErrInvalidCycleEdge    - cycle uses an invalid entry (internal or unreachable pair).
//
// Solve never mutates g, so concurrent Solve calls on one graph are safe.
func Solve(g *graph.Graph, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if g == nil {
		return nil, errors.WithMessage(ErrMalformedInput, "nil graph")
	}

	n := g.N()
	if o.Start < 0 || o.Start >= n {
		return nil, errors.Wrapf(ErrStartOutOfRange, "start %d with n=%d", o.Start, n)
	}
	cost := g.Matrix()
	log := o.Logger.WithFields(logrus.Fields{"vertices": n, "start": o.Start})

	// 1) Minimum spanning tree.
	tree, treeW, err := SpanningTree(cost, o.Start)
	if err != nil {
		log.WithError(err).Debug("spanning tree failed")
		return nil, err
	}
	log.WithFields(logrus.Fields{"edges": len(tree), "weight": treeW}).Debug("spanning tree built")

	// 2) Odd-degree vertices.
	odd := OddDegreeVertices(tree, n)
	log.WithField("odd", len(odd)).Debug("odd-degree vertices found")

	// 3) Matching over the odd vertices.
	var matching []graph.Edge
	switch o.Matching {
	case MatchExact:
		matching, err = ExactMatching(odd, cost)
	default:
		matching, err = GreedyMatching(odd, cost)
	}
	if err != nil {
		log.WithError(err).Debug("matching failed")
		return nil, err
	}
	log.WithFields(logrus.Fields{"mode": o.Matching, "pairs": len(matching)}).Debug("odd vertices matched")

	// 4) Eulerian circuit on tree ∪ matching.
	circuit := EulerianCircuit(Multigraph(tree, matching), n, o.Start)
	log.WithField("length", len(circuit)).Debug("eulerian circuit built")

	// 5) Shortcut and cost.
	shortcut, err := Shortcut(circuit, n)
	if err != nil {
		return nil, err
	}
	if err = ValidateTour(shortcut, n, o.Start); err != nil {
		return nil, err
	}
	shortcutCost, err := CycleCost(cost, shortcut)
	if err != nil {
		log.WithError(err).Debug("cycle cost failed")
		return nil, err
	}
	log.WithField("cost", shortcutCost).Debug("hamiltonian cycle built")

	res := &Result{
		Tree:         tree,
		TreeWeight:   treeW,
		Odd:          odd,
		Matching:     matching,
		Circuit:      circuit,
		Shortcut:     shortcut,
		ShortcutCost: shortcutCost,
		Cycle:        append([]int(nil), shortcut...),
		Cost:         shortcutCost,
	}

	// 6) Optional local search.
	if o.TwoOpt {
		res.Cycle, res.Cost, err = TwoOpt(cost, shortcut, o.TwoOptMaxIters)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{"before": shortcutCost, "after": res.Cost}).Debug("2-opt applied")
	}

	return res, nil
}
