package dijkstra

import (
	"math"

	"github.com/appliedgrg/bera-tools/costgrid"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// forward lists the four neighbour steps that, applied to every cell, visit
// each undirected 8-connected edge exactly once.
var forward = [4]costgrid.Step{
	{DRow: 0, DCol: 1, Length: 1},
	{DRow: 1, DCol: 0, Length: 1},
	{DRow: 1, DCol: 1, Length: math.Sqrt2},
	{DRow: 1, DCol: -1, Length: math.Sqrt2},
}

// Route solves the two-point problem by handing the grid to gonum's
// graph/path Dijkstra, the route-through-array strategy. The edge model is
// the same as Shortest's, so both return paths of equal cost; which of
// several equal-cost paths comes back may differ.
//
// Contract matches Shortest: impassable source → empty result, src == dst →
// [src, src] at zero cost, unreachable dst → empty result.
//
// Complexity: O(N log N) time and O(N) space to build and search the graph.
func Route(g *costgrid.Grid, src, dst costgrid.Cell) ([]Path, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if !g.Passable(src) || !g.Passable(dst) {
		return nil, nil
	}
	if src == dst {
		return []Path{{Cells: []costgrid.Cell{src, src}, Costs: []float64{0, 0}}}, nil
	}

	wg := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := 0; i < g.Len(); i++ {
		if g.Passable(g.Cell(i)) {
			wg.AddNode(simple.Node(i))
		}
	}
	for i := 0; i < g.Len(); i++ {
		u := g.Cell(i)
		if !g.Passable(u) {
			continue
		}
		for _, s := range forward {
			v := costgrid.Cell{Row: u.Row + s.DRow, Col: u.Col + s.DCol}
			if !g.Passable(v) {
				continue
			}
			wg.SetWeightedEdge(wg.NewWeightedEdge(simple.Node(i), simple.Node(g.Index(v)), g.EdgeCost(u, v, s)))
		}
	}

	nodes, _ := path.DijkstraFromTo(simple.Node(g.Index(src)), simple.Node(g.Index(dst)), wg)
	if len(nodes) == 0 {
		return nil, nil
	}

	p := Path{
		Cells: make([]costgrid.Cell, len(nodes)),
		Costs: make([]float64, len(nodes)),
	}
	for i, n := range nodes {
		p.Cells[i] = g.Cell(int(n.ID()))
		if i > 0 {
			prev, cur := p.Cells[i-1], p.Cells[i]
			step := costgrid.Step{DRow: cur.Row - prev.Row, DCol: cur.Col - prev.Col, Length: 1}
			if step.DRow != 0 && step.DCol != 0 {
				step.Length = math.Sqrt2
			}
			p.Costs[i] = p.Costs[i-1] + g.EdgeCost(prev, cur, step)
		}
	}

	return []Path{p}, nil
}
