package geometry

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/resample"
)

// Length returns the planar length of a line geometry; 0 for anything else.
func Length(g orb.Geometry) float64 {
	var l float64
	for _, ls := range Flatten(g) {
		l += planar.Length(ls)
	}
	return l
}

// Flatten returns the line parts of g. Non-line geometries give nil.
func Flatten(g orb.Geometry) []orb.LineString {
	switch v := g.(type) {
	case orb.LineString:
		if len(v) == 0 {
			return nil
		}
		return []orb.LineString{v}
	case orb.MultiLineString:
		out := make([]orb.LineString, 0, len(v))
		for _, ls := range v {
			if len(ls) > 0 {
				out = append(out, ls)
			}
		}
		return out
	default:
		return nil
	}
}

// IsEmptyLine reports whether g carries no line with at least two points.
func IsEmptyLine(g orb.Geometry) bool {
	for _, ls := range Flatten(g) {
		if len(ls) >= 2 {
			return false
		}
	}
	return true
}

// Interpolate returns the point at distance d along ls, clamped to its ends.
func Interpolate(ls orb.LineString, d float64) orb.Point {
	if len(ls) == 0 {
		return orb.Point{}
	}
	if d <= 0 {
		return ls[0]
	}
	for i := 0; i+1 < len(ls); i++ {
		seg := planar.Distance(ls[i], ls[i+1])
		if d <= seg && seg > 0 {
			return lerp(ls[i], ls[i+1], d/seg)
		}
		d -= seg
	}
	return ls[len(ls)-1]
}

// Substring returns the part of ls between distances from and to, measured
// from its start. Bounds are clamped; from ≥ to yields a zero-length line
// at from.
func Substring(ls orb.LineString, from, to float64) orb.LineString {
	if len(ls) < 2 {
		return nil
	}
	total := planar.Length(ls)
	from = math.Max(0, math.Min(from, total))
	to = math.Max(0, math.Min(to, total))
	if from >= to {
		p := Interpolate(ls, from)
		return orb.LineString{p, p}
	}

	out := orb.LineString{Interpolate(ls, from)}
	var acc float64
	for i := 0; i+1 < len(ls); i++ {
		acc += planar.Distance(ls[i], ls[i+1])
		if acc > from && acc < to {
			out = append(out, ls[i+1])
		}
	}
	return append(out, Interpolate(ls, to))
}

// Segmentize densifies every ring of p so that no edge is longer than
// maxLen. Original vertices are kept.
func Segmentize(p orb.Polygon, maxLen float64) orb.Polygon {
	if maxLen <= 0 {
		return p.Clone()
	}
	out := make(orb.Polygon, len(p))
	for i, r := range p {
		out[i] = orb.Ring(segmentizeLine(orb.LineString(r), maxLen))
	}
	return out
}

func segmentizeLine(ls orb.LineString, maxLen float64) orb.LineString {
	if len(ls) < 2 {
		return ls.Clone()
	}
	out := orb.LineString{ls[0]}
	for i := 0; i+1 < len(ls); i++ {
		a, b := ls[i], ls[i+1]
		d := planar.Distance(a, b)
		if !(d > maxLen) || math.IsInf(d, 0) {
			out = append(out, b)
			continue
		}
		n := int(math.Ceil(d/maxLen)) + 1
		seg := resample.Resample(orb.LineString{a, b}, planar.Distance, n)
		if len(seg) < 2 {
			out = append(out, b)
			continue
		}
		out = append(out, seg[1:len(seg)-1]...)
		out = append(out, b)
	}
	return out
}

// Perpendicular returns the segment of length 2·halfLen through mid,
// perpendicular to the direction start→end. When start and end coincide
// the direction start→mid is used instead.
func Perpendicular(start, mid, end orb.Point, halfLen float64) (orb.LineString, error) {
	dx, dy := end[0]-start[0], end[1]-start[1]
	l := math.Hypot(dx, dy)
	if l == 0 {
		dx, dy = mid[0]-start[0], mid[1]-start[1]
		l = math.Hypot(dx, dy)
	}
	if l == 0 || halfLen <= 0 {
		return nil, ErrDegenerateLine
	}
	nx, ny := -dy/l*halfLen, dx/l*halfLen

	return orb.LineString{
		{mid[0] - nx, mid[1] - ny},
		{mid[0] + nx, mid[1] + ny},
	}, nil
}

// TrimEnds removes the parts of ls lying within r of its first point and
// within r of its last point. The remainder may fall apart into several
// pieces; nothing left returns nil.
func TrimEnds(ls orb.LineString, r float64) []orb.LineString {
	if len(ls) < 2 {
		return nil
	}
	if r <= 0 {
		return []orb.LineString{ls.Clone()}
	}
	c0, c1 := ls[0], ls[len(ls)-1]
	outside := func(p orb.Point) bool {
		return planar.Distance(p, c0) > r && planar.Distance(p, c1) > r
	}

	var parts []orb.LineString
	var cur orb.LineString
	flush := func() {
		if len(cur) >= 2 {
			parts = append(parts, cur)
		}
		cur = nil
	}
	for i := 0; i+1 < len(ls); i++ {
		a, b := ls[i], ls[i+1]
		ts := append(circleHits(a, b, c0, r), circleHits(a, b, c1, r)...)
		ts = append(ts, 0, 1)
		sort.Float64s(ts)
		for k := 0; k+1 < len(ts); k++ {
			t0, t1 := ts[k], ts[k+1]
			if t1-t0 < 1e-12 {
				continue
			}
			if !outside(lerp(a, b, (t0+t1)/2)) {
				flush()
				continue
			}
			p0, p1 := lerp(a, b, t0), lerp(a, b, t1)
			if len(cur) == 0 {
				cur = orb.LineString{p0}
			}
			cur = append(cur, p1)
		}
	}
	flush()

	return parts
}

// circleHits returns the parameters t ∈ (0,1) where segment a→b crosses the
// circle of radius r around c.
func circleHits(a, b, c orb.Point, r float64) []float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	fx, fy := a[0]-c[0], a[1]-c[1]
	qa := dx*dx + dy*dy
	if qa == 0 {
		return nil
	}
	qb := 2 * (fx*dx + fy*dy)
	qc := fx*fx + fy*fy - r*r
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	var out []float64
	for _, t := range []float64{(-qb - sq) / (2 * qa), (-qb + sq) / (2 * qa)} {
		if t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	return out
}

// SnapEnds moves each endpoint of ls onto whichever endpoint of ref is
// nearer (ties go to ref's start). Applying it twice changes nothing.
func SnapEnds(ls, ref orb.LineString) orb.LineString {
	if len(ls) < 2 || len(ref) == 0 {
		return ls.Clone()
	}
	r0, r1 := ref[0], ref[len(ref)-1]
	nearest := func(p orb.Point) orb.Point {
		if planar.DistanceSquared(p, r1) < planar.DistanceSquared(p, r0) {
			return r1
		}
		return r0
	}
	out := ls.Clone()
	out[0] = nearest(out[0])
	out[len(out)-1] = nearest(out[len(out)-1])

	return out
}

// Merge joins lines whose endpoints coincide within tol into longer
// chains, reversing parts as needed. A single chain comes back as an
// orb.LineString, several as an orb.MultiLineString, none as nil.
func Merge(lines []orb.LineString, tol float64) orb.Geometry {
	rest := make([]orb.LineString, 0, len(lines))
	for _, l := range lines {
		if len(l) >= 2 {
			rest = append(rest, l.Clone())
		}
	}
	near := func(a, b orb.Point) bool { return planar.Distance(a, b) <= tol }

	var chains orb.MultiLineString
	for len(rest) > 0 {
		cur := rest[0]
		rest = rest[1:]
		for grown := true; grown; {
			grown = false
			for i, l := range rest {
				head, tail := cur[0], cur[len(cur)-1]
				switch {
				case near(tail, l[0]):
					cur = append(cur, l[1:]...)
				case near(tail, l[len(l)-1]):
					l.Reverse()
					cur = append(cur, l[1:]...)
				case near(head, l[len(l)-1]):
					cur = append(l[:len(l)-1:len(l)-1], cur...)
				case near(head, l[0]):
					l.Reverse()
					cur = append(l[:len(l)-1:len(l)-1], cur...)
				default:
					continue
				}
				rest = append(rest[:i], rest[i+1:]...)
				grown = true
				break
			}
		}
		chains = append(chains, cur)
	}

	switch len(chains) {
	case 0:
		return nil
	case 1:
		return chains[0]
	default:
		return chains
	}
}

func lerp(a, b orb.Point, t float64) orb.Point {
	return orb.Point{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t}
}
