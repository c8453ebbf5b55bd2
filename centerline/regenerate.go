package centerline

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/appliedgrg/bera-tools/geometry"
)

// regenerate cuts poly across the midpoint of ref, pairs each piece with the
// half of ref it mostly contains, solves both at depth+1 and joins the two
// results. The inner statuses are not propagated: a half that fails
// contributes its reference half.
func regenerate(poly orb.Polygon, ref orb.LineString, p Params, depth int) (orb.Geometry, error) {
	total := geometry.Length(ref)
	if total == 0 {
		return nil, geometry.ErrDegenerateLine
	}
	half1 := geometry.Substring(ref, 0, total/2)
	half2 := geometry.Substring(ref, total/2, total)
	mid := half1[len(half1)-1]

	b := poly.Bound().Union(ref.Bound())
	reach := math.Hypot(b.Max[0]-b.Min[0], b.Max[1]-b.Min[1])
	perp, err := geometry.Perpendicular(ref[0], mid, ref[len(ref)-1], reach)
	if err != nil {
		return nil, err
	}

	cleaned, ok := geometry.DropSmall(geometry.Single(poly), p.CleanupArea).Largest()
	if !ok {
		return nil, geometry.ErrEmptyGeometry
	}
	left, right, err := geometry.Split(geometry.RemoveHoles(cleaned), perp)
	if err != nil {
		return nil, err
	}

	l1, l2 := half1, half2
	if geometry.LengthInside(half1, left) < geometry.Length(half1)/3 {
		l1, l2 = half2, half1
	}
	g1, _ := find(geometry.Single(left), l1, p, depth+1)
	g2, _ := find(geometry.Single(right), l2, p, depth+1)
	if geometry.IsEmptyLine(g1) || geometry.IsEmptyLine(g2) {
		return nil, geometry.ErrEmptyGeometry
	}

	lines := append(geometry.Flatten(g1), geometry.Flatten(g2)...)
	return geometry.Merge(lines, p.Epsilon), nil
}
