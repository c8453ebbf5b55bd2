// Package dijkstra implements least-cost search over a costgrid.Grid.
//
// Three entry points share one edge model (8-connected, mean of the two cell
// costs, diagonals scaled by √2):
//
//   - Shortest:   single source, one or more destinations, lazy-deletion heap
//   - Route:      the same two-point problem solved by gonum's graph/path
//   - Accumulate: multi-source cost field, used by corridors and skeletons
//
// LeastCostPath wraps them for a georeferenced seed line and returns the
// path in world coordinates with its endpoints pinned to the line's own.
//
// Complexity:
//
//   - Time:  O(N log N), N = rows×cols
//   - Space: O(N)
//
// Notes on implementation choices:
//
//   - Lazy decrease-key: improved costs are pushed again and stale heap
//     entries are skipped on pop via the settled set.
//   - Impassable cells (see costgrid) are never entered.
//   - The context in Options is checked once per settled cell; a cancelled
//     search returns no result and the context's error.
//
// Errors (sentinel):
//
//   - ErrNilGrid        if the grid pointer is nil.
//   - ErrNoDestinations if Shortest receives no destinations.
//   - ErrBadMaxCost     (panic) if WithMaxCost gets a negative value.
//   - ErrNoPath         if LeastCostPath finds no path.
//   - ErrShortLine      if LeastCostPath receives a line with < 2 points.
package dijkstra
