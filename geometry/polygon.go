package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// areaEpsilon is the area below which backend rings are treated as slivers.
const areaEpsilon = 1e-9

// RemoveHoles returns the outer ring of p as a new polygon.
func RemoveHoles(p orb.Polygon) orb.Polygon {
	if len(p) == 0 {
		return nil
	}
	return orb.Polygon{p[0].Clone()}
}

// Simplify runs Douglas-Peucker with the given tolerance on every ring of p.
// Rings that would collapse below a triangle are kept as they were, and a
// collapsed outer ring returns p unchanged.
func Simplify(p orb.Polygon, tolerance float64) orb.Polygon {
	if len(p) == 0 || tolerance <= 0 {
		return p.Clone()
	}
	dp := simplify.DouglasPeucker(tolerance)
	out := make(orb.Polygon, 0, len(p))
	for i, r := range p {
		s := dp.Ring(r.Clone())
		if len(s) < 4 || planar.Area(s) == 0 {
			if i == 0 {
				return p.Clone()
			}
			s = r.Clone()
		}
		out = append(out, s)
	}
	return out
}

// SimplifyLine runs Douglas-Peucker on ls without modifying it.
func SimplifyLine(ls orb.LineString, tolerance float64) orb.LineString {
	if len(ls) < 3 || tolerance <= 0 {
		return ls.Clone()
	}
	return simplify.DouglasPeucker(tolerance).LineString(ls.Clone())
}

// DropSmall removes parts of s whose area is below minArea.
func DropSmall(s Shape, minArea float64) Shape {
	if s.IsEmpty() {
		return s
	}
	keep := make(orb.MultiPolygon, 0, len(s.parts))
	for _, p := range s.parts {
		if planar.Area(p) >= minArea {
			keep = append(keep, p)
		}
	}
	return FromMulti(keep)
}
