package dijkstra

import (
	"container/heap"
	"math"

	"github.com/appliedgrg/bera-tools/costgrid"
)

// Shortest computes least-cost paths over g from src to the cells in dsts
// using 8-connected movement (see costgrid.Grid.EdgeCost).
//
// Returns:
//
//   - paths: one Path per destination reached, in the order they were
//     settled. With FindNearest (the default) at most one path is returned.
//     A destination equal to src yields the two-cell path [src, src] at
//     zero cost.
//   - err: ErrNilGrid, ErrNoDestinations, or the context error when the
//     search was cancelled. Cancellation never yields a partial result.
//
// An impassable or out-of-bounds source returns an empty result and a nil
// error; callers treat that as "no path". Destinations that are impassable
// or out of bounds can never be reached and are simply not reported.
//
// Complexity:
//
//   - Time:  O(N log N), N = rows×cols (each cell settled once, ≤ 8 pushes)
//   - Space: O(N)
func Shortest(g *costgrid.Grid, src costgrid.Cell, dsts []costgrid.Cell, opts ...Option) ([]Path, error) {
	// 1) Validate inputs.
	if g == nil {
		return nil, ErrNilGrid
	}
	if len(dsts) == 0 {
		return nil, ErrNoDestinations
	}
	cfg := buildOptions(opts)

	// 2) Impassable source: empty result, not an error.
	if !g.Passable(src) {
		return nil, nil
	}

	// 3) Index the outstanding destinations.
	targets := make(map[int]struct{}, len(dsts))
	for _, d := range dsts {
		if g.Passable(d) {
			targets[g.Index(d)] = struct{}{}
		}
	}
	if len(targets) == 0 {
		return nil, nil
	}

	r := newRunner(g, cfg)
	r.seed(g.Index(src))

	var out []Path
	err := r.process(func(u int) bool {
		if _, ok := targets[u]; !ok {
			return false
		}
		delete(targets, u)
		out = append(out, r.path(u))

		return len(targets) == 0 || cfg.FindNearest
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// runner holds the mutable state for a single search.
type runner struct {
	g       *costgrid.Grid
	options Options
	dist    []float64 // best known cost per cell, +Inf if unseen
	prev    []int     // predecessor index, -1 for seeds and unseen cells
	visited []bool    // settled cells
	pq      nodePQ
}

func newRunner(g *costgrid.Grid, cfg Options) *runner {
	n := g.Len()
	r := &runner{
		g:       g,
		options: cfg,
		dist:    make([]float64, n),
		prev:    make([]int, n),
		visited: make([]bool, n),
		pq:      make(nodePQ, 0, 64),
	}
	for i := range r.dist {
		r.dist[i] = math.Inf(1)
		r.prev[i] = -1
	}
	heap.Init(&r.pq)

	return r
}

// seed registers idx as a zero-cost start. Multiple seeds give a
// multi-source search.
func (r *runner) seed(idx int) {
	if r.dist[idx] == 0 {
		return
	}
	r.dist[idx] = 0
	heap.Push(&r.pq, &nodeItem{id: idx, dist: 0})
}

// process is the main loop. settled is called once per settled cell and
// returns true to stop the search. The context is checked once per settled
// cell.
func (r *runner) process(settled func(int) bool) error {
	ctx := r.options.Ctx
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id

		// Stale entry from a lazy decrease-key.
		if r.visited[u] {
			continue
		}
		if item.dist > r.options.MaxCost {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		r.visited[u] = true

		if settled != nil && settled(u) {
			return nil
		}
		r.relax(u)
	}

	return nil
}

// relax pushes improved tentative costs for the passable neighbours of u.
func (r *runner) relax(u int) {
	uc := r.g.Cell(u)
	for _, s := range costgrid.Neighbors8 {
		vc := costgrid.Cell{Row: uc.Row + s.DRow, Col: uc.Col + s.DCol}
		if !r.g.Passable(vc) {
			continue
		}
		v := r.g.Index(vc)
		if r.visited[v] {
			continue
		}
		nd := r.dist[u] + r.g.EdgeCost(uc, vc, s)
		if nd > r.options.MaxCost || nd >= r.dist[v] {
			continue
		}
		r.dist[v] = nd
		r.prev[v] = u
		heap.Push(&r.pq, &nodeItem{id: v, dist: nd})
	}
}

// path walks predecessors back from u. A seed reached directly yields the
// degenerate two-cell path.
func (r *runner) path(u int) Path {
	var p Path
	for v := u; v != -1; v = r.prev[v] {
		p.Cells = append(p.Cells, r.g.Cell(v))
		p.Costs = append(p.Costs, r.dist[v])
	}
	if len(p.Cells) == 1 {
		p.Cells = append(p.Cells, p.Cells[0])
		p.Costs = append(p.Costs, 0)
	}
	for i, j := 0, len(p.Cells)-1; i < j; i, j = i+1, j-1 {
		p.Cells[i], p.Cells[j] = p.Cells[j], p.Cells[i]
		p.Costs[i], p.Costs[j] = p.Costs[j], p.Costs[i]
	}

	return p
}

// nodeItem is a heap entry: a cell index and its tentative cost.
type nodeItem struct {
	id   int
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist. Outdated entries stay
// in the heap and are skipped when popped (lazy decrease-key).
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
