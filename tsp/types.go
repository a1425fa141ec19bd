package tsp

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/christofides/graph"
)

// Sentinel errors. All are terminal for a Solve call.
var (
	// ErrMalformedInput is graph.ErrMalformedInput, re-exported so callers can
	// match the whole taxonomy against this package.
	ErrMalformedInput = graph.ErrMalformedInput

	// ErrDisconnectedGraph is returned when the spanning tree cannot reach every vertex.
	ErrDisconnectedGraph = errors.New("tsp: graph is disconnected")

	// ErrUnmatchableVertices is returned when an odd vertex has no partner.
	// It signals a broken invariant upstream.
	ErrUnmatchableVertices = errors.New("tsp: odd-degree vertices cannot be matched")

	// ErrInvalidCycleEdge is returned when the finished cycle uses an entry with
	// no valid cost, or the cycle breaks the Hamiltonian invariants.
	ErrInvalidCycleEdge = errors.New("tsp: invalid cycle edge")

	// ErrStartOutOfRange is returned when WithStart names a vertex outside [0..n-1].
	ErrStartOutOfRange = errors.New("tsp: start vertex out of range")

	// ErrTooManyOddVertices is returned by ExactMatching above MaxExactOdd vertices.
	ErrTooManyOddVertices = errors.New("tsp: too many odd-degree vertices for exact matching")
)

// MatchingMode selects the odd-vertex pairing strategy.
type MatchingMode int

const (
	// MatchGreedy pairs each next unmatched vertex with its cheapest remaining partner.
	MatchGreedy MatchingMode = iota

	// MatchExact computes a minimum-weight perfect matching. Results differ from
	// MatchGreedy on instances where the greedy choice is not optimal.
	MatchExact
)

// String implements fmt.Stringer.
func (m MatchingMode) String() string {
	switch m {
	case MatchGreedy:
		return "greedy"
	case MatchExact:
		return "exact"
	default:
		return "unknown"
	}
}

// ParseMatchingMode maps "greedy" / "exact" (case-insensitive) to a mode.
func ParseMatchingMode(s string) (MatchingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "greedy":
		return MatchGreedy, nil
	case "exact":
		return MatchExact, nil
	default:
		return MatchGreedy, errors.Errorf("tsp: unknown matching mode %q", s)
	}
}

// Options configures Solve. Use DefaultOptions and the With* helpers.
type Options struct {
	// Start is both the spanning-tree root and the first/last vertex of the cycle.
	Start int

	// Matching selects the odd-vertex pairing strategy.
	Matching MatchingMode

	// TwoOpt enables a 2-opt pass over the shortcut cycle.
	TwoOpt bool

	// TwoOptMaxIters bounds accepted 2-opt moves; 0 means run to a local optimum.
	TwoOptMaxIters int

	// Logger receives per-stage debug entries.
	Logger logrus.FieldLogger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the canonical pipeline: start 0, greedy matching,
// no local search, logging discarded.
func DefaultOptions() Options {
	return Options{
		Start:    0,
		Matching: MatchGreedy,
		Logger:   discardLogger(),
	}
}

// WithStart sets the start vertex.
func WithStart(v int) Option {
	return func(o *Options) { o.Start = v }
}

// WithMatching selects the matching strategy.
func WithMatching(m MatchingMode) Option {
	return func(o *Options) { o.Matching = m }
}

// WithTwoOpt enables 2-opt with the given accepted-move bound (0 = unbounded).
func WithTwoOpt(maxIters int) Option {
	return func(o *Options) {
		o.TwoOpt = true
		o.TwoOptMaxIters = maxIters
	}
}

// WithLogger routes stage debug entries to l. A nil l keeps the discard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

// Result is the outcome of one Solve call. Every slice is owned by the caller.
type Result struct {
	// Tree holds the N-1 spanning-tree edges in Prim growth order.
	Tree []graph.Edge `json:"tree" yaml:"tree" msgpack:"tree"`

	// TreeWeight is the total spanning-tree weight.
	TreeWeight float64 `json:"treeWeight" yaml:"treeWeight" msgpack:"treeWeight"`

	// Odd lists the odd-degree tree vertices, ascending.
	Odd []int `json:"odd" yaml:"odd" msgpack:"odd"`

	// Matching pairs every odd vertex exactly once.
	Matching []graph.Edge `json:"matching" yaml:"matching" msgpack:"matching"`

	// Circuit is the closed Eulerian walk over Tree ∪ Matching.
	Circuit []int `json:"circuit" yaml:"circuit" msgpack:"circuit"`

	// Shortcut is the Christofides cycle before any local search, and
	// ShortcutCost its cost.
	Shortcut     []int   `json:"shortcut" yaml:"shortcut" msgpack:"shortcut"`
	ShortcutCost float64 `json:"shortcutCost" yaml:"shortcutCost" msgpack:"shortcutCost"`

	// Cycle is the final Hamiltonian cycle, Cycle[0] == Cycle[len-1] == start.
	Cycle []int `json:"cycle" yaml:"cycle" msgpack:"cycle"`

	// Cost is the total cost of Cycle.
	Cost float64 `json:"cost" yaml:"cost" msgpack:"cost"`
}
