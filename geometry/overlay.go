package geometry

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// LengthInside returns the length of the part of ls lying inside p
// (boundary included).
func LengthInside(ls orb.LineString, p orb.Polygon) float64 {
	if len(ls) < 2 || len(p) == 0 {
		return 0
	}
	var total float64
	for i := 0; i+1 < len(ls); i++ {
		a, b := ls[i], ls[i+1]
		ts := []float64{0, 1}
		for _, r := range p {
			for j := 0; j+1 < len(r); j++ {
				if t, ok := segmentCross(a, b, r[j], r[j+1]); ok {
					ts = append(ts, t)
				}
			}
		}
		sort.Float64s(ts)
		seg := planar.Distance(a, b)
		for k := 0; k+1 < len(ts); k++ {
			if ts[k+1]-ts[k] <= 0 {
				continue
			}
			if planar.PolygonContains(p, lerp(a, b, (ts[k]+ts[k+1])/2)) {
				total += (ts[k+1] - ts[k]) * seg
			}
		}
	}
	return total
}

// segmentCross returns the parameter t along a→b where it crosses c→d.
// Parallel segments report no crossing.
func segmentCross(a, b, c, d orb.Point) (float64, bool) {
	rx, ry := b[0]-a[0], b[1]-a[1]
	sx, sy := d[0]-c[0], d[1]-c[1]
	den := rx*sy - ry*sx
	if den == 0 {
		return 0, false
	}
	qx, qy := c[0]-a[0], c[1]-a[1]
	t := (qx*sy - qy*sx) / den
	u := (qx*ry - qy*rx) / den
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// Intersects reports whether a and b share at least one point.
func Intersects(a, b orb.Polygon) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	if !a.Bound().Intersects(b.Bound()) {
		return false
	}
	for _, ra := range a {
		for i := 0; i+1 < len(ra); i++ {
			for _, rb := range b {
				for j := 0; j+1 < len(rb); j++ {
					if _, ok := segmentCross(ra[i], ra[i+1], rb[j], rb[j+1]); ok {
						return true
					}
				}
			}
		}
	}
	return planar.PolygonContains(b, a[0][0]) || planar.PolygonContains(a, b[0][0])
}

// Distance returns the minimum distance between polygons a and b; 0 when
// they intersect.
func Distance(a, b orb.Polygon) float64 {
	if len(a) == 0 || len(b) == 0 {
		return math.Inf(1)
	}
	if Intersects(a, b) {
		return 0
	}
	pa, pb := Nearest(a, b)
	return planar.Distance(pa, pb)
}

// Nearest returns a closest pair of boundary points, pa on a and pb on b.
// Both are zero when either polygon is empty.
func Nearest(a, b orb.Polygon) (pa, pb orb.Point) {
	best := math.Inf(1)
	for k, pair := range [2][2]orb.Polygon{{a, b}, {b, a}} {
		for _, rp := range pair[0] {
			for _, pt := range rp {
				for _, rs := range pair[1] {
					for j := 0; j+1 < len(rs); j++ {
						q := project(rs[j], rs[j+1], pt)
						d := planar.Distance(pt, q)
						if d >= best {
							continue
						}
						best = d
						if k == 0 {
							pa, pb = pt, q
						} else {
							pa, pb = q, pt
						}
					}
				}
			}
		}
	}
	return pa, pb
}

// project returns the point of segment a→b closest to p.
func project(a, b, p orb.Point) orb.Point {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return a
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return orb.Point{a[0] + t*dx, a[1] + t*dy}
}

// Split cuts p along the infinite line through cut's two endpoints. left
// and right are the largest pieces on either side of the directed cut.
// ErrSplitFailed is returned when either side is empty.
func Split(p orb.Polygon, cut orb.LineString) (left, right orb.Polygon, err error) {
	if len(p) == 0 || len(p[0]) < 4 {
		return nil, nil, ErrEmptyGeometry
	}
	if len(cut) < 2 {
		return nil, nil, ErrDegenerateLine
	}
	c0, c1 := cut[0], cut[len(cut)-1]
	dx, dy := c1[0]-c0[0], c1[1]-c0[1]
	l := math.Hypot(dx, dy)
	if l == 0 {
		return nil, nil, ErrDegenerateLine
	}
	ux, uy := dx/l, dy/l

	b := p.Bound().Union(orb.MultiPoint{c0, c1}.Bound())
	L := 2 * (math.Hypot(b.Max[0]-b.Min[0], b.Max[1]-b.Min[1]) + 1)
	halfPlane := func(side float64) orb.Polygon {
		nx, ny := -uy*side*L, ux*side*L
		a := orb.Point{c0[0] - ux*L, c0[1] - uy*L}
		z := orb.Point{c1[0] + ux*L, c1[1] + uy*L}
		ring := orb.Ring{a, z, {z[0] + nx, z[1] + ny}, {a[0] + nx, a[1] + ny}, a}
		if ring.Orientation() != orb.CCW {
			ring.Reverse()
		}
		return orb.Polygon{ring}
	}

	ls, err := Intersection(p, halfPlane(1))
	if err != nil {
		return nil, nil, err
	}
	rs, err := Intersection(p, halfPlane(-1))
	if err != nil {
		return nil, nil, err
	}
	left, lok := ls.Largest()
	right, rok := rs.Largest()
	if !lok || !rok {
		return nil, nil, ErrSplitFailed
	}
	return left, right, nil
}
