package polygonize

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	beratools "github.com/appliedgrg/bera-tools"
	"github.com/appliedgrg/bera-tools/geometry"
	"github.com/appliedgrg/bera-tools/raster"
)

const (
	// DefaultMinArea is the area at or below which a region is discarded.
	DefaultMinArea = 1.0
	// MergeEpsilon is added to the gap when bridging disjoint regions.
	MergeEpsilon = 0.1
)

// Extract converts mask (row-major, rows×cols, non-zero = corridor) into a
// single polygon in the world coordinates of t.
//
// Regions with area ≤ minArea are dropped; if none remain ErrNoCorridor is
// returned. Several surviving regions are merged nearest-first, so the
// result is always geometry.KindSingle on success.
func Extract(mask []uint8, rows, cols int, t raster.Affine, minArea float64) (geometry.Shape, error) {
	if rows <= 0 || cols <= 0 || len(mask) != rows*cols {
		return geometry.Empty(), fmt.Errorf("%w: %d cells for %dx%d", ErrDimension, len(mask), rows, cols)
	}

	all := Regions(mask, rows, cols, t)
	kept := make([]orb.Polygon, 0, len(all))
	for _, p := range all {
		if planar.Area(p) > minArea {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return geometry.Empty(), fmt.Errorf("%w: %d regions below %.2f", ErrNoCorridor, len(all), minArea)
	}
	if len(kept) > 1 {
		beratools.Logger().Debug("polygonize: merging regions", "regions", len(kept), "dropped", len(all)-len(kept))
	}

	return geometry.Single(Merge(kept)), nil
}

// Merge folds parts into one polygon, starting from the largest and always
// absorbing the nearest remaining part. A part that does not touch the
// accumulated polygon is buffered by the gap plus MergeEpsilon first, or
// bridged when buffering fails. Only if both fail is the larger of the two
// operands kept.
func Merge(parts []orb.Polygon) orb.Polygon {
	if len(parts) == 0 {
		return nil
	}
	rest := make([]orb.Polygon, len(parts))
	copy(rest, parts)
	sort.SliceStable(rest, func(i, j int) bool {
		return planar.Area(rest[i]) > planar.Area(rest[j])
	})

	cur, rest := rest[0], rest[1:]
	for len(rest) > 0 {
		best, bestD := 0, geometry.Distance(cur, rest[0])
		for i := 1; i < len(rest); i++ {
			if d := geometry.Distance(cur, rest[i]); d < bestD {
				best, bestD = i, d
			}
		}
		next := rest[best]
		rest = append(rest[:best], rest[best+1:]...)

		joined, err := join(cur, next, bestD)
		if err != nil {
			beratools.Logger().Warn("polygonize: merge failed, keeping larger region", "gap", bestD, "err", err)
			if planar.Area(next) > planar.Area(cur) {
				cur = next
			}
			continue
		}
		cur = joined
	}
	return cur
}

// join unions a and b into one polygon. A gap is closed by buffering b by
// gap+MergeEpsilon; if the backend cannot do that, a capsule of radius
// MergeEpsilon between the nearest boundary points bridges the two.
func join(a, b orb.Polygon, gap float64) (orb.Polygon, error) {
	if p, ok := unionSingle(a, b); ok {
		return p, nil
	}

	grown, err := geometry.Buffer(b, gap+MergeEpsilon)
	if err == nil {
		if gb, ok := grown.Largest(); ok {
			if p, ok := unionSingle(a, gb); ok {
				return p, nil
			}
		}
	}
	beratools.Logger().Debug("polygonize: bridging regions", "gap", gap, "err", err)

	pa, pb := geometry.Nearest(a, b)
	if p, ok := unionSingle(a, b, geometry.Capsule(pa, pb, MergeEpsilon)); ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: gap %.3f", geometry.ErrMultiPolygon, gap)
}

func unionSingle(polys ...orb.Polygon) (orb.Polygon, bool) {
	s, err := geometry.Union(polys...)
	if err != nil {
		return nil, false
	}
	return s.Polygon()
}
