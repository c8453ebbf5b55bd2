package dijkstra

import (
	"github.com/appliedgrg/bera-tools/costgrid"
)

// Accumulate returns, for every cell of g, the minimum accumulated cost to
// reach it from any of seeds under the same edge model as Shortest.
// The field is row-major; unreachable and impassable cells hold +Inf.
// Impassable or out-of-bounds seeds are ignored, so an all-invalid seed set
// yields an all-+Inf field.
//
// Complexity: O(N log N) time, O(N) space, N = rows×cols.
func Accumulate(g *costgrid.Grid, seeds []costgrid.Cell, opts ...Option) ([]float64, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	r := newRunner(g, buildOptions(opts))
	for _, s := range seeds {
		if g.Passable(s) {
			r.seed(g.Index(s))
		}
	}
	if err := r.process(nil); err != nil {
		return nil, err
	}

	return r.dist, nil
}

// Descend follows the steepest descent of field from c until it reaches a
// zero-cost seed cell, returning the chain from the seed to c. On a field
// produced by Accumulate this is a least-cost path back to the nearest seed.
func Descend(g *costgrid.Grid, field []float64, c costgrid.Cell) []costgrid.Cell {
	if g == nil || !g.InBounds(c) || len(field) != g.Len() {
		return nil
	}
	chain := []costgrid.Cell{c}
	cur := g.Index(c)
	for field[cur] > 0 {
		best, bestV := -1, field[cur]
		uc := g.Cell(cur)
		for _, s := range costgrid.Neighbors8 {
			vc := costgrid.Cell{Row: uc.Row + s.DRow, Col: uc.Col + s.DCol}
			if !g.InBounds(vc) {
				continue
			}
			if v := g.Index(vc); field[v] < bestV {
				best, bestV = v, field[v]
			}
		}
		if best == -1 {
			break
		}
		cur = best
		chain = append(chain, g.Cell(cur))
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain
}
