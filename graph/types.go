// Package graph defines the immutable weighted graph consumed by the tour
// solver: a dense vertex set 0..N-1 plus an N×N cost matrix stored row-major.
//
// Errors:
//
//	ErrMalformedInput - N is not positive, the matrix is not N×N, or a cell is
//	                    not a well-formed non-negative number.
//	ErrOutOfRange     - a vertex index is outside [0..N-1].
package graph

import (
	"math"

	"github.com/pkg/errors"
)

// Sentinel errors for graph construction and access.
var (
	// ErrMalformedInput indicates bad shape or values at ingestion.
	ErrMalformedInput = errors.New("graph: malformed input")

	// ErrOutOfRange indicates a vertex index outside [0..N-1].
	ErrOutOfRange = errors.New("graph: vertex index out of range")
)

// Unreachable marks a pair of vertices with no usable connection.
// Only programmatic builders may supply it; it is never selected as a
// spanning-tree or matching edge.
var Unreachable = math.Inf(1)

// Vertex is a graph node. ID is its dense index; X/Y and Label are carried
// for presentation only and never influence the solver.
type Vertex struct {
	ID    int     `json:"id" yaml:"id" msgpack:"id"`
	X     float64 `json:"x" yaml:"x" msgpack:"x"`
	Y     float64 `json:"y" yaml:"y" msgpack:"y"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty" msgpack:"label,omitempty"`
}

// Edge is an ordered pair of vertex IDs with the weight read from the matrix.
type Edge struct {
	From   int     `json:"from" yaml:"from" msgpack:"from"`
	To     int     `json:"to" yaml:"to" msgpack:"to"`
	Weight float64 `json:"weight" yaml:"weight" msgpack:"weight"`
}

// Graph is an immutable weighted graph. All accessors return copies.
type Graph struct {
	n        int
	cost     []float64 // row-major, len == n*n
	vertices []Vertex
}

// Option configures vertex metadata at construction time.
type Option func(b *builder)

type builder struct {
	vertices []Vertex
	labels   []string
}

// WithVertices attaches presentation metadata. len(vs) must equal N and
// vs[i].ID must equal i.
func WithVertices(vs []Vertex) Option {
	return func(b *builder) { b.vertices = vs }
}

// WithLabels attaches display labels by index. len(labels) must equal N.
func WithLabels(labels []string) Option {
	return func(b *builder) { b.labels = labels }
}

// New validates n and rows and returns an immutable Graph.
//
// Accepted cells are finite non-negative numbers and Unreachable.
// Symmetry and the triangle inequality are not checked.
//
// Complexity: O(n²).
func New(n int, rows [][]float64, opts ...Option) (*Graph, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrMalformedInput, "vertex count %d is not positive", n)
	}
	if len(rows) != n {
		return nil, errors.Wrapf(ErrMalformedInput, "got %d rows, want %d", len(rows), n)
	}

	var (
		cost = make([]float64, n*n)
		i, j int
		w    float64
	)
	for i = 0; i < n; i++ {
		if len(rows[i]) != n {
			return nil, errors.Wrapf(ErrMalformedInput, "row %d has %d cells, want %d", i, len(rows[i]), n)
		}
		for j = 0; j < n; j++ {
			w = rows[i][j]
			if err := checkCell(w); err != nil {
				return nil, errors.Wrapf(err, "cell (%d,%d)", i, j)
			}
			cost[i*n+j] = w
		}
	}

	var b builder
	for _, opt := range opts {
		opt(&b)
	}
	vertices, err := b.build(n)
	if err != nil {
		return nil, err
	}

	return &Graph{n: n, cost: cost, vertices: vertices}, nil
}

// FromRows is New with n taken from len(rows).
func FromRows(rows [][]float64, opts ...Option) (*Graph, error) {
	return New(len(rows), rows, opts...)
}

// checkCell accepts finite non-negative values and +Inf (Unreachable).
func checkCell(w float64) error {
	if math.IsNaN(w) {
		return errors.WithMessage(ErrMalformedInput, "NaN cost")
	}
	if math.IsInf(w, -1) || w < 0 {
		return errors.WithMessagef(ErrMalformedInput, "negative cost %g", w)
	}

	return nil
}

func (b *builder) build(n int) ([]Vertex, error) {
	vs := make([]Vertex, n)
	if b.vertices != nil {
		if len(b.vertices) != n {
			return nil, errors.Wrapf(ErrMalformedInput, "got %d vertices, want %d", len(b.vertices), n)
		}
		for i, v := range b.vertices {
			if v.ID != i {
				return nil, errors.Wrapf(ErrMalformedInput, "vertex at index %d has id %d", i, v.ID)
			}
		}
		copy(vs, b.vertices)
	} else {
		for i := range vs {
			vs[i].ID = i
		}
	}
	if b.labels != nil {
		if len(b.labels) != n {
			return nil, errors.Wrapf(ErrMalformedInput, "got %d labels, want %d", len(b.labels), n)
		}
		for i, l := range b.labels {
			vs[i].Label = l
		}
	}

	return vs, nil
}

// N returns the vertex count.
func (g *Graph) N() int { return g.n }

// Cost returns the matrix entry (i, j).
func (g *Graph) Cost(i, j int) (float64, error) {
	if i < 0 || i >= g.n || j < 0 || j >= g.n {
		return 0, errors.Wrapf(ErrOutOfRange, "(%d,%d) with n=%d", i, j, g.n)
	}

	return g.cost[i*g.n+j], nil
}

// Matrix returns a fresh [][]float64 copy of the cost matrix.
//
// Complexity: O(n²).
func (g *Graph) Matrix() [][]float64 {
	out := make([][]float64, g.n)
	for i := 0; i < g.n; i++ {
		out[i] = append([]float64(nil), g.cost[i*g.n:(i+1)*g.n]...)
	}

	return out
}

// Vertices returns a copy of the vertex metadata.
func (g *Graph) Vertices() []Vertex {
	return append([]Vertex(nil), g.vertices...)
}

// Vertex returns the metadata of vertex i.
func (g *Graph) Vertex(i int) (Vertex, error) {
	if i < 0 || i >= g.n {
		return Vertex{}, errors.Wrapf(ErrOutOfRange, "vertex %d with n=%d", i, g.n)
	}

	return g.vertices[i], nil
}

// Symmetric reports whether cost(i,j) == cost(j,i) for every pair.
// The solver does not require it; callers use it for diagnostics.
func (g *Graph) Symmetric() bool {
	var i, j int
	for i = 0; i < g.n; i++ {
		for j = i + 1; j < g.n; j++ {
			if g.cost[i*g.n+j] != g.cost[j*g.n+i] {
				return false
			}
		}
	}

	return true
}
