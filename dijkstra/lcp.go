package dijkstra

import (
	"context"
	"fmt"

	beratools "github.com/appliedgrg/bera-tools"
	"github.com/appliedgrg/bera-tools/costgrid"
	"github.com/appliedgrg/bera-tools/raster"
	"github.com/paulmach/orb"
)

// ToLineString converts p to world coordinates through t (cell centres) and
// forces the first and last points to exactly start and end, removing the
// half-cell drift of snapping endpoints to cell centres.
func ToLineString(p Path, t raster.Affine, start, end orb.Point) orb.LineString {
	if len(p.Cells) < 2 {
		return nil
	}
	ls := make(orb.LineString, len(p.Cells))
	for i, c := range p.Cells {
		ls[i] = t.XY(c.Row, c.Col)
	}
	ls[0] = start
	ls[len(ls)-1] = end

	return ls
}

// LeastCostPath finds the least-cost path between the endpoints of line over
// g, whose cells are georeferenced by t. Endpoints falling outside the grid
// are clamped onto its edge. It returns ErrNoPath when the solver finds
// nothing (impassable source, disconnected destination) and the context
// error on cancellation.
func LeastCostPath(ctx context.Context, g *costgrid.Grid, t raster.Affine, line orb.LineString, strategy Strategy) (orb.LineString, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if len(line) < 2 {
		return nil, ErrShortLine
	}
	start, end := line[0], line[len(line)-1]

	sr, sc, err := t.RowCol(start)
	if err != nil {
		return nil, err
	}
	er, ec, err := t.RowCol(end)
	if err != nil {
		return nil, err
	}
	src := g.Clamp(costgrid.Cell{Row: sr, Col: sc})
	dst := g.Clamp(costgrid.Cell{Row: er, Col: ec})

	var paths []Path
	switch strategy {
	case StrategyRoute:
		paths, err = Route(g, src, dst)
	default:
		paths, err = Shortest(g, src, []costgrid.Cell{dst}, WithContext(ctx))
	}
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %v → %v", ErrNoPath, src, dst)
	}

	beratools.Logger().Debug("least-cost path",
		"strategy", strategy.String(),
		"cells", len(paths[0].Cells),
		"cost", paths[0].Cost())

	return ToLineString(paths[0], t, start, end), nil
}
