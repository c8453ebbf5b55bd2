package skeleton

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	beratools "github.com/appliedgrg/bera-tools"
	"github.com/appliedgrg/bera-tools/geometry"
)

// Centerline returns the skeleton lines of p, longest first. Lines shorter
// than opts.MinFraction of the longest are dropped, so a single elongated
// polygon yields one line.
func Centerline(p orb.Polygon, opts Options) ([]orb.LineString, error) {
	if len(p) == 0 || len(p[0]) < 4 || !(planar.Area(p) > 0) {
		return nil, ErrEmptyPolygon
	}
	if b := p.Bound(); !finite(b.Min) || !finite(b.Max) {
		return nil, ErrEmptyPolygon
	}
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultOptions().CellSize
	}

	g := rasterize(p, opts.CellSize, opts.MaxCells)
	passes := thin(g)
	chains, err := longestPaths(g)
	if err != nil {
		return nil, err
	}
	if len(chains) == 0 {
		return nil, ErrNoSkeleton
	}

	lines := make([]orb.LineString, 0, len(chains))
	for _, chain := range chains {
		ls := make(orb.LineString, len(chain))
		for i, c := range chain {
			ls[i] = g.transform.XY(c.Row, c.Col)
		}
		ls = smooth(ls, opts.SmoothSigma)
		lines = append(lines, geometry.SimplifyLine(ls, opts.Simplify))
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return planar.Length(lines[i]) > planar.Length(lines[j])
	})

	longest := planar.Length(lines[0])
	keep := lines[:1]
	for _, ls := range lines[1:] {
		if planar.Length(ls) >= opts.MinFraction*longest {
			keep = append(keep, ls)
		}
	}
	beratools.Logger().Debug("skeleton: extracted",
		"grid", [2]int{g.rows, g.cols}, "passes", passes, "components", len(chains), "kept", len(keep))

	return keep, nil
}

func finite(p orb.Point) bool {
	return !math.IsNaN(p[0]) && !math.IsNaN(p[1]) && !math.IsInf(p[0], 0) && !math.IsInf(p[1], 0)
}
