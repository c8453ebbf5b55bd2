// Package costgrid defines the traversal-cost grid shared by the shortest-path
// and corridor solvers.
package costgrid

import "math"

const (
	// Sentinel is the cost assigned to impassable cells. A large finite value
	// keeps arithmetic over the grid stable.
	Sentinel = 9999.0
	// Floor is the designated nodata sentinel; values at or below it are
	// impassable regardless of the raster's own nodata value.
	Floor = -9999.0
)

// Cell is a (row, col) grid coordinate.
type Cell struct {
	Row, Col int
}

// Step is a neighbour offset together with its length in cell units.
type Step struct {
	DRow, DCol int
	Length     float64 // 1 for axis moves, √2 for diagonals
}

// Neighbors8 lists the eight moves in the order axis-first, then diagonals.
var Neighbors8 = [8]Step{
	{1, 0, 1}, {0, -1, 1}, {-1, 0, 1}, {0, 1, 1},
	{1, -1, math.Sqrt2}, {1, 1, math.Sqrt2}, {-1, -1, math.Sqrt2}, {-1, 1, math.Sqrt2},
}

// Grid is an immutable cost surface with a passability mask.
// cost[i] holds Sentinel wherever passable[i] is false.
type Grid struct {
	rows, cols int
	cost       []float64
	passable   []bool
	blocked    int
}
