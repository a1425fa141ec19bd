// Package tsp approximates the metric Travelling Salesman Problem with the
// Christofides pipeline over an immutable *graph.Graph:
//
//  1. SpanningTree       - dense Prim from the start vertex, lowest index wins ties.
//  2. OddDegreeVertices  - vertices with odd tree degree, ascending.
//  3. GreedyMatching     - nearest-unmatched pairing of the odd vertices
//     (ExactMatching is available as an explicit opt-in via WithMatching).
//  4. EulerianCircuit    - Hierholzer stack walk over tree ∪ matching.
//  5. Shortcut/CycleCost - first-visit order closed back to the start, summed.
//
// Solve runs the whole pipeline once and returns every intermediate stage on
// the Result, so presentation layers never recompute a stage.
//
// Determinism: every "pick one" step uses ascending index order or edge
// insertion order, so the same graph always yields the same Result.
//
// Numeric policy:
//   - graph.Unreachable (+Inf) is never selected as a tree or matching edge.
//   - A zero cost between distinct vertices is "no edge" for the spanning tree
//     only; matching and the cycle cost accept it.
//   - Costs are rounded to 1e-9.
//
// Greedy matching does not carry the 1.5·OPT guarantee of Christofides; the
// tour is still a valid Hamiltonian cycle and, on metric inputs, costs no more
// than the Eulerian walk it was cut from. MatchExact restores the guarantee.
//
// Complexity: O(n²) Prim + O(k²) greedy matching (O(2^k·k) exact) + O(E) walk.
// Intended for tens of vertices.
package tsp
