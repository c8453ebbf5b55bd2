package costgrid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// New classifies block into a Grid. Cells equal to nodata, NaN, or at or
// below Floor become impassable with cost Sentinel. Any other negative cell
// makes the whole block invalid and New returns ErrNegativeCost wrapped with
// the first offending position.
//
// The block is copied; later changes to it do not affect the Grid.
// Complexity: O(rows×cols).
func New(block mat.Matrix, nodata float64) (*Grid, error) {
	if block == nil {
		return nil, ErrEmptyGrid
	}
	rows, cols := block.Dims()
	if rows == 0 || cols == 0 {
		return nil, ErrEmptyGrid
	}

	g := &Grid{
		rows:     rows,
		cols:     cols,
		cost:     make([]float64, rows*cols),
		passable: make([]bool, rows*cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := block.At(r, c)
			i := r*cols + c
			switch {
			case math.IsNaN(v) || v == nodata || v <= Floor:
				g.cost[i] = Sentinel
				g.blocked++
			case v < 0:
				return nil, fmt.Errorf("%w: %v at row %d col %d", ErrNegativeCost, v, r, c)
			default:
				g.cost[i] = v
				g.passable[i] = true
			}
		}
	}

	return g, nil
}

// Dims returns the grid size.
func (g *Grid) Dims() (rows, cols int) { return g.rows, g.cols }

// Len returns rows×cols.
func (g *Grid) Len() int { return len(g.cost) }

// Blocked returns the number of impassable cells.
func (g *Grid) Blocked() int { return g.blocked }

// InBounds reports whether c lies within the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Passable reports whether c is in bounds and traversable.
func (g *Grid) Passable(c Cell) bool {
	return g.InBounds(c) && g.passable[g.Index(c)]
}

// Cost returns the cell cost; Sentinel for impassable cells.
// c must be in bounds.
func (g *Grid) Cost(c Cell) float64 {
	return g.cost[g.Index(c)]
}

// Index maps c to its row-major index.
func (g *Grid) Index(c Cell) int {
	return c.Row*g.cols + c.Col
}

// Cell converts a row-major index back to a Cell.
func (g *Grid) Cell(idx int) Cell {
	return Cell{Row: idx / g.cols, Col: idx % g.cols}
}

// Clamp moves c onto the nearest in-bounds cell.
func (g *Grid) Clamp(c Cell) Cell {
	c.Row = min(max(c.Row, 0), g.rows-1)
	c.Col = min(max(c.Col, 0), g.cols-1)

	return c
}

// EdgeCost returns the cost of stepping from a to its neighbour via s:
// the mean of both cell costs scaled by the step length.
func (g *Grid) EdgeCost(a, b Cell, s Step) float64 {
	return s.Length * (g.Cost(a) + g.Cost(b)) / 2
}
