package roads

import (
	"context"
	"math"
	"sync"

	"github.com/emirpasic/gods/queues/arrayqueue"
	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/pkg/errors"

	"github.com/katalvlaran/christofides/planner"
)

type arc struct {
	to int
	km float64
}

// tree is a single-source shortest-path tree.
type tree struct {
	dist []float64 // +Inf when unreachable
	prev []int     // -1 at the root and for unreachable junctions
}

// Network is an immutable road graph with a cache of shortest-path trees.
// It is safe for concurrent use.
type Network struct {
	ids   []string
	index map[string]int
	pos   []planner.Coordinates
	adj   [][]arc

	mu    sync.Mutex
	trees map[int]*tree
}

// New validates junctions and roads and builds the adjacency lists.
// Roads keep their input order within each adjacency list.
//
// Complexity: O(V + E).
func New(junctions []Junction, roads []Road) (*Network, error) {
	if len(junctions) == 0 {
		return nil, ErrNoJunctions
	}

	n := &Network{
		ids:   make([]string, len(junctions)),
		index: make(map[string]int, len(junctions)),
		pos:   make([]planner.Coordinates, len(junctions)),
		adj:   make([][]arc, len(junctions)),
		trees: make(map[int]*tree),
	}
	for i, j := range junctions {
		if _, dup := n.index[j.ID]; dup {
			return nil, errors.Wrapf(ErrDuplicateJunction, "%q", j.ID)
		}
		n.index[j.ID] = i
		n.ids[i] = j.ID
		n.pos[i] = j.Coordinates
	}

	var (
		u, v int
		ok   bool
		km   float64
	)
	for i, r := range roads {
		if u, ok = n.index[r.From]; !ok {
			return nil, errors.Wrapf(ErrUnknownJunction, "road %d: from %q", i, r.From)
		}
		if v, ok = n.index[r.To]; !ok {
			return nil, errors.Wrapf(ErrUnknownJunction, "road %d: to %q", i, r.To)
		}
		km = r.LengthKm
		if km < 0 || math.IsNaN(km) {
			return nil, errors.Wrapf(ErrNegativeLength, "road %d: %g", i, km)
		}
		if km == 0 {
			km = planner.HaversineKm(n.pos[u], n.pos[v])
		}
		n.adj[u] = append(n.adj[u], arc{to: v, km: km})
		if !r.OneWay {
			n.adj[v] = append(n.adj[v], arc{to: u, km: km})
		}
	}

	return n, nil
}

// Len returns the junction count.
func (n *Network) Len() int { return len(n.ids) }

// Nearest returns the index of the junction closest to c; ties go to the
// lower index.
func (n *Network) Nearest(c planner.Coordinates) int {
	best, bestKm := 0, math.Inf(1)
	for i, p := range n.pos {
		if d := planner.HaversineKm(c, p); d < bestKm {
			best, bestKm = i, d
		}
	}

	return best
}

// ShortestPath returns the junction IDs from→to and the path length.
func (n *Network) ShortestPath(from, to string) ([]string, float64, error) {
	s, ok := n.index[from]
	if !ok {
		return nil, 0, errors.Wrapf(ErrUnknownJunction, "%q", from)
	}
	t, ok := n.index[to]
	if !ok {
		return nil, 0, errors.Wrapf(ErrUnknownJunction, "%q", to)
	}

	idx, km, err := n.path(s, t)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]string, len(idx))
	for i, v := range idx {
		ids[i] = n.ids[v]
	}

	return ids, km, nil
}

// Distance prices from→to in kilometres: straight snap legs to the nearest
// junctions plus the road path between them. Unreachable pairs cost +Inf.
func (n *Network) Distance(ctx context.Context, from, to planner.Coordinates) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s, t := n.Nearest(from), n.Nearest(to)
	d := n.shortest(s).dist[t]
	if math.IsInf(d, 1) {
		return d, nil
	}

	return planner.HaversineKm(from, n.pos[s]) + d + planner.HaversineKm(n.pos[t], to), nil
}

// Route returns the polyline from, junctions along the road path, to.
// Snap points equal to a junction are not repeated.
func (n *Network) Route(ctx context.Context, from, to planner.Coordinates) ([]planner.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	idx, _, err := n.path(n.Nearest(from), n.Nearest(to))
	if err != nil {
		return nil, err
	}

	line := make([]planner.Coordinates, 0, len(idx)+2)
	line = append(line, from)
	for _, v := range idx {
		if line[len(line)-1] != n.pos[v] {
			line = append(line, n.pos[v])
		}
	}
	if line[len(line)-1] != to {
		line = append(line, to)
	}

	return line, nil
}

// Reachable lists the junctions reachable from id in breadth-first order.
func (n *Network) Reachable(id string) ([]string, error) {
	s, ok := n.index[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownJunction, "%q", id)
	}

	seen := make([]bool, len(n.ids))
	seen[s] = true
	order := []string{n.ids[s]}
	q := arrayqueue.New()
	q.Enqueue(s)
	for !q.Empty() {
		head, _ := q.Dequeue()
		for _, a := range n.adj[head.(int)] {
			if !seen[a.to] {
				seen[a.to] = true
				order = append(order, n.ids[a.to])
				q.Enqueue(a.to)
			}
		}
	}

	return order, nil
}

func (n *Network) path(s, t int) ([]int, float64, error) {
	tr := n.shortest(s)
	if math.IsInf(tr.dist[t], 1) {
		return nil, 0, errors.Wrapf(ErrUnreachable, "%q -> %q", n.ids[s], n.ids[t])
	}

	var rev []int
	for v := t; v != -1; v = tr.prev[v] {
		rev = append(rev, v)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}

	return rev, tr.dist[t], nil
}

// shortest returns the cached tree rooted at s, computing it on first use.
func (n *Network) shortest(s int) *tree {
	n.mu.Lock()
	defer n.mu.Unlock()
	if tr, ok := n.trees[s]; ok {
		return tr
	}
	tr := n.dijkstra(s)
	n.trees[s] = tr

	return tr
}

type heapItem struct {
	v int
	d float64
}

// dijkstra runs the lazy decrease-key variant: improved distances push a new
// heap entry and stale entries are skipped when popped. Equal distances pop
// in junction order.
//
// Complexity: O((V + E) log V).
func (n *Network) dijkstra(s int) *tree {
	size := len(n.ids)
	tr := &tree{dist: make([]float64, size), prev: make([]int, size)}
	for i := range tr.dist {
		tr.dist[i] = math.Inf(1)
		tr.prev[i] = -1
	}
	tr.dist[s] = 0

	done := make([]bool, size)
	pq := binaryheap.NewWith(func(a, b interface{}) int {
		x, y := a.(heapItem), b.(heapItem)
		switch {
		case x.d < y.d:
			return -1
		case x.d > y.d:
			return 1
		}
		return x.v - y.v
	})
	pq.Push(heapItem{v: s})

	var nd float64
	for !pq.Empty() {
		top, _ := pq.Pop()
		it := top.(heapItem)
		if done[it.v] {
			continue
		}
		done[it.v] = true

		for _, a := range n.adj[it.v] {
			nd = it.d + a.km
			if nd < tr.dist[a.to] {
				tr.dist[a.to] = nd
				tr.prev[a.to] = it.v
				pq.Push(heapItem{v: a.to, d: nd})
			}
		}
	}

	return tr
}
