package costgrid

import "errors"

var (
	// ErrEmptyGrid indicates a block with no rows or no columns.
	ErrEmptyGrid = errors.New("costgrid: block must have at least one row and one column")
	// ErrNegativeCost indicates a negative finite cost that is not a nodata
	// value; the grid is unusable for path finding.
	ErrNegativeCost = errors.New("costgrid: negative cost in cost surface")
)
