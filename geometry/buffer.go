package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// QuadSegs is the number of segments used per quarter circle when
// approximating round joins.
const QuadSegs = 8

// bufferAttempts bounds the retries with perturbed capsules when the
// backend returns a result that cannot be a buffer of the input.
const bufferAttempts = 3

// Buffer grows p outward by d with round joins: the union of p and one
// capsule per ring edge. Arcs are circumscribed so the result covers the
// exact buffer. A non-positive d returns p unchanged.
//
// The union is checked against two lower bounds (every outer vertex of p is
// covered and the area is at least (√A + √π·d)²). A result failing them is
// recomputed with slightly different capsules; ErrBackend is returned when
// every attempt fails.
//
// Complexity: O(n log n) unions for n vertices; simplify large rings first.
func Buffer(p orb.Polygon, d float64) (Shape, error) {
	if len(p) == 0 || len(p[0]) < 4 {
		return Empty(), ErrEmptyGeometry
	}
	if d <= 0 || math.IsNaN(d) {
		return Single(p), nil
	}

	src := make(orb.Polygon, 0, len(p))
	for _, r := range p {
		if r = dropCollinear(r); len(r) >= 4 {
			src = append(src, r)
		}
	}
	if len(src) == 0 {
		return Empty(), ErrEmptyGeometry
	}
	a := math.Abs(planar.Area(src))
	minArea := math.Pow(math.Sqrt(a)+math.Sqrt(math.Pi)*d, 2) * (1 - 1e-9)

	var last Shape
	for attempt := 0; attempt < bufferAttempts; attempt++ {
		pieces := make([]orb.Polygon, 0, 1+len(src[0]))
		pieces = append(pieces, src)
		k := 0
		for _, r := range src {
			for i := 0; i+1 < len(r); i++ {
				// Neighbouring capsules get distinct radii and arc counts so
				// their vertices never coincide.
				rd := d * (1 + 1e-7*float64(k%2+attempt))
				if c, ok := capsule(r[i], r[i+1], rd, QuadSegs+attempt); ok {
					pieces = append(pieces, c)
				}
				k++
			}
		}

		s, err := Union(pieces...)
		if err != nil {
			return Empty(), err
		}
		if covers(s, src[0], minArea) {
			return s, nil
		}
		last = s
	}
	return Empty(), fmt.Errorf("%w: buffer by %g lost area (%.3f < %.3f)", ErrBackend, d, last.Area(), minArea)
}

// covers reports whether the largest part of s holds every vertex of outer
// and has at least minArea.
func covers(s Shape, outer orb.Ring, minArea float64) bool {
	big, ok := s.Largest()
	if !ok || planar.Area(big) < minArea {
		return false
	}
	for _, v := range outer {
		if !planar.PolygonContains(big, v) {
			return false
		}
	}
	return true
}

// Capsule returns the convex polygon covering every point within r of the
// segment a→b: two circumscribed half discs joined by the offset sides,
// counter-clockwise. A zero-length segment gives a full disc.
func Capsule(a, b orb.Point, r float64) orb.Polygon {
	if c, ok := capsule(a, b, r, QuadSegs); ok {
		return c
	}
	return Disc(a, r)
}

func capsule(a, b orb.Point, r float64, quad int) (orb.Polygon, bool) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l := math.Hypot(dx, dy)
	if l == 0 || !(r > 0) {
		return nil, false
	}
	ux, uy := dx/l, dy/l
	theta := math.Atan2(uy, ux)
	step := math.Pi / float64(2*quad)
	R := r / math.Cos(step/2)

	ring := make(orb.Ring, 0, 4*quad+5)
	arc := func(c orb.Point, from float64) {
		// Tangent point, intermediate vertices half a step off, tangent point.
		ring = append(ring, orb.Point{c[0] + r*math.Cos(from), c[1] + r*math.Sin(from)})
		for i := 0; i < 2*quad; i++ {
			t := from + (float64(i)+0.5)*step
			ring = append(ring, orb.Point{c[0] + R*math.Cos(t), c[1] + R*math.Sin(t)})
		}
		to := from + math.Pi
		ring = append(ring, orb.Point{c[0] + r*math.Cos(to), c[1] + r*math.Sin(to)})
	}
	arc(b, theta-math.Pi/2)
	arc(a, theta+math.Pi/2)
	ring = append(ring, ring[0])

	return orb.Polygon{ring}, true
}

// Disc approximates the circle of radius r around c by a circumscribed
// regular polygon with 4·QuadSegs sides, counter-clockwise.
func Disc(c orb.Point, r float64) orb.Polygon {
	n := 4 * QuadSegs
	step := 2 * math.Pi / float64(n)
	R := r / math.Cos(step/2)
	ring := make(orb.Ring, 0, n+1)
	for i := 0; i < n; i++ {
		a := step/2 + float64(i)*step
		ring = append(ring, orb.Point{c[0] + R*math.Cos(a), c[1] + R*math.Sin(a)})
	}
	ring = append(ring, ring[0])

	return orb.Polygon{ring}
}

// dropCollinear removes repeated vertices and vertices lying on the line
// through their neighbours. The result is closed.
func dropCollinear(r orb.Ring) orb.Ring {
	n := len(r)
	if n > 1 && r[0] == r[n-1] {
		n--
	}
	pts := make([]orb.Point, 0, n)
	for i := 0; i < n; i++ {
		if len(pts) == 0 || pts[len(pts)-1] != r[i] {
			pts = append(pts, r[i])
		}
	}
	for changed := true; changed && len(pts) >= 3; {
		changed = false
		for i := 0; i < len(pts) && len(pts) >= 3; i++ {
			prev, cur, next := pts[(i+len(pts)-1)%len(pts)], pts[i], pts[(i+1)%len(pts)]
			cross := (cur[0]-prev[0])*(next[1]-prev[1]) - (cur[1]-prev[1])*(next[0]-prev[0])
			if math.Abs(cross) <= areaEpsilon || cur == prev {
				pts = append(pts[:i], pts[i+1:]...)
				changed = true
				i--
			}
		}
	}
	if len(pts) < 3 {
		return nil
	}
	out := make(orb.Ring, 0, len(pts)+1)
	out = append(out, pts...)
	return append(out, pts[0])
}
