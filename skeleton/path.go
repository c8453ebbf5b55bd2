package skeleton

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/appliedgrg/bera-tools/costgrid"
	"github.com/appliedgrg/bera-tools/dijkstra"
)

// longestPaths returns, per 8-connected skeleton component, the cells of
// its longest path. Each path is found with two sweeps: the farthest cell
// from any start is one end, the farthest cell from that end the other.
func longestPaths(g *grid) ([][]costgrid.Cell, error) {
	data := make([]float64, len(g.cells))
	for i, v := range g.cells {
		if v == 1 {
			data[i] = 1
		} else {
			data[i] = costgrid.Floor
		}
	}
	cg, err := costgrid.New(mat.NewDense(g.rows, g.cols, data), costgrid.Floor)
	if err != nil {
		return nil, fmt.Errorf("skeleton: %w", err)
	}

	seen := make([]bool, len(g.cells))
	var paths [][]costgrid.Cell
	for i, v := range g.cells {
		if v == 0 || seen[i] {
			continue
		}
		field, err := dijkstra.Accumulate(cg, []costgrid.Cell{cg.Cell(i)})
		if err != nil {
			return nil, err
		}
		a := farthest(field)
		for j, d := range field {
			if !math.IsInf(d, 1) {
				seen[j] = true
			}
		}

		field, err = dijkstra.Accumulate(cg, []costgrid.Cell{cg.Cell(a)})
		if err != nil {
			return nil, err
		}
		chain := dijkstra.Descend(cg, field, cg.Cell(farthest(field)))
		if len(chain) >= 2 {
			paths = append(paths, chain)
		}
	}
	return paths, nil
}

// farthest returns the index of the largest finite value in field.
func farthest(field []float64) int {
	best, bestV := 0, -1.0
	for i, d := range field {
		if !math.IsInf(d, 1) && d > bestV {
			best, bestV = i, d
		}
	}
	return best
}

// smooth applies a Gaussian kernel of width sigma (in vertices) to the
// interior vertices of ls. Endpoints are kept.
func smooth(ls orb.LineString, sigma float64) orb.LineString {
	if sigma <= 0 || len(ls) < 3 {
		return ls
	}
	radius := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*radius+1)
	for k := range kernel {
		d := float64(k - radius)
		kernel[k] = math.Exp(-d * d / (2 * sigma * sigma))
	}

	last := len(ls) - 1
	out := make(orb.LineString, len(ls))
	out[0], out[last] = ls[0], ls[last]
	xs := make([]float64, 0, len(kernel))
	ys := make([]float64, 0, len(kernel))
	for i := 1; i < last; i++ {
		lo, hi := max(0, i-radius), min(last, i+radius)
		w := kernel[lo-i+radius : hi-i+radius+1]
		xs, ys = xs[:0], ys[:0]
		for j := lo; j <= hi; j++ {
			xs = append(xs, ls[j][0])
			ys = append(ys, ls[j][1])
		}
		sum := floats.Sum(w)
		out[i] = orb.Point{floats.Dot(w, xs) / sum, floats.Dot(w, ys) / sum}
	}
	return out
}
