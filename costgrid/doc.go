// Package costgrid turns a raster block into a traversal-cost grid.
//
// A Grid is built once from a block and a nodata value and never changes.
// Classification rules:
//
//   - nodata, NaN, or values ≤ Floor (-9999) → impassable, cost Sentinel (9999)
//   - any other negative value              → ErrNegativeCost, no Grid
//   - everything else                       → passable, cost = value
//
// Movement is 8-connected (Neighbors8). EdgeCost is the arithmetic mean of
// the two cell costs, scaled by √2 for diagonal steps.
//
// Complexity: construction is O(rows×cols); every accessor is O(1).
package costgrid
