package centerline

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/appliedgrg/bera-tools/geometry"
)

// IsValid reports whether cl is an acceptable centerline for ref: not
// empty, at least half as long as ref, and passing within eps of both of
// ref's endpoints.
func IsValid(cl orb.Geometry, ref orb.LineString, eps float64) bool {
	if geometry.IsEmptyLine(cl) || len(ref) < 2 {
		return false
	}
	if geometry.Length(cl) < planar.Length(ref)/2 {
		return false
	}
	return planar.DistanceFrom(cl, ref[0]) <= eps &&
		planar.DistanceFrom(cl, ref[len(ref)-1]) <= eps
}

// SnapEndToEnd merges cl into one line and moves each of its endpoints to
// the nearer endpoint of ref. ok is false when cl does not merge into a
// single line. Snapping an already snapped line changes nothing.
func SnapEndToEnd(cl orb.Geometry, ref orb.LineString, tol float64) (orb.LineString, bool) {
	var ls orb.LineString
	switch g := cl.(type) {
	case orb.LineString:
		ls = g
	case orb.MultiLineString:
		merged, ok := geometry.Merge(g, tol).(orb.LineString)
		if !ok {
			return nil, false
		}
		ls = merged
	default:
		return nil, false
	}
	if len(ls) < 2 {
		return ls, true
	}
	return geometry.SnapEnds(ls, ref), true
}
