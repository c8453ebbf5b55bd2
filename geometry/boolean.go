package geometry

import (
	"fmt"
	"math"

	cgeom "github.com/ctessum/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// toBackend converts an orb polygon to the boolean-operation backend's
// representation (implicitly closed paths).
func toBackend(p orb.Polygon) cgeom.Polygon {
	out := make(cgeom.Polygon, 0, len(p))
	for _, r := range p {
		n := len(r)
		if n > 1 && r[0] == r[n-1] {
			n--
		}
		if n < 3 {
			continue
		}
		path := make(cgeom.Path, n)
		for i := 0; i < n; i++ {
			path[i] = cgeom.Point{X: r[i][0], Y: r[i][1]}
		}
		out = append(out, path)
	}
	return out
}

// fromBackend rebuilds orb polygons from a flat list of backend rings. Ring
// roles come from nesting depth: even depth is an outer ring, odd depth a
// hole of the smallest outer ring containing it. Outer rings are returned
// counter-clockwise, holes clockwise.
func fromBackend(cp cgeom.Polygon) Shape {
	rings := make([]orb.Ring, 0, len(cp))
	for _, path := range cp {
		if len(path) < 3 {
			continue
		}
		r := make(orb.Ring, 0, len(path)+1)
		for _, pt := range path {
			r = append(r, orb.Point{pt.X, pt.Y})
		}
		r = append(r, r[0])
		if math.Abs(planar.Area(r)) < areaEpsilon {
			continue
		}
		rings = append(rings, r)
	}

	n := len(rings)
	areas := make([]float64, n)
	for i, r := range rings {
		areas[i] = math.Abs(planar.Area(r))
	}
	// parent[i] is the smallest ring strictly containing ring i.
	depth := make([]int, n)
	parent := make([]int, n)
	for i := range rings {
		parent[i] = -1
		for j := range rings {
			if i == j || areas[j] <= areas[i] || !ringInside(rings[i], rings[j]) {
				continue
			}
			depth[i]++
			if parent[i] == -1 || areas[j] < areas[parent[i]] {
				parent[i] = j
			}
		}
	}

	polyOf := make(map[int]int, n)
	var mp orb.MultiPolygon
	for i, r := range rings {
		if depth[i]%2 != 0 {
			continue
		}
		if r.Orientation() != orb.CCW {
			r.Reverse()
		}
		polyOf[i] = len(mp)
		mp = append(mp, orb.Polygon{r})
	}
	for i, r := range rings {
		if depth[i]%2 == 0 {
			continue
		}
		k, ok := polyOf[parent[i]]
		if !ok {
			continue
		}
		if r.Orientation() != orb.CW {
			r.Reverse()
		}
		mp[k] = append(mp[k], r)
	}

	return FromMulti(mp)
}

// ringInside reports whether every vertex of inner lies inside or on outer.
func ringInside(inner, outer orb.Ring) bool {
	for _, p := range inner {
		if !planar.RingContains(outer, p) {
			return false
		}
	}
	return true
}

// guard runs op and converts a backend panic into ErrBackend.
func guard(op string, fn func() cgeom.Polygon) (res cgeom.Polygon, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: %s: %v", ErrBackend, op, r)
		}
	}()
	return fn(), nil
}

// Union returns the union of polys. Disjoint inputs give a Multi shape.
func Union(polys ...orb.Polygon) (Shape, error) {
	parts := make([]cgeom.Polygon, 0, len(polys))
	for _, p := range polys {
		if bp := toBackend(p); len(bp) > 0 {
			parts = append(parts, bp)
		}
	}
	if len(parts) == 0 {
		return Empty(), nil
	}
	res, err := guard("union", func() cgeom.Polygon { return unionAll(parts) })
	if err != nil {
		return Empty(), err
	}
	return fromBackend(res), nil
}

// unionAll merges parts pairwise in a balanced tree to keep intermediate
// results small.
func unionAll(parts []cgeom.Polygon) cgeom.Polygon {
	switch len(parts) {
	case 0:
		return nil
	case 1:
		return parts[0]
	}
	mid := len(parts) / 2
	return flatten(unionAll(parts[:mid]).Union(unionAll(parts[mid:])))
}

// flatten collects the rings of every polygon in g into one backend polygon.
// fromBackend recovers the ring roles from nesting.
func flatten(g cgeom.Polygonal) cgeom.Polygon {
	if g == nil {
		return nil
	}
	var out cgeom.Polygon
	for _, p := range g.Polygons() {
		out = append(out, p...)
	}
	return out
}

// Intersection returns a ∩ b.
func Intersection(a, b orb.Polygon) (Shape, error) {
	ba, bb := toBackend(a), toBackend(b)
	if len(ba) == 0 || len(bb) == 0 {
		return Empty(), nil
	}
	res, err := guard("intersection", func() cgeom.Polygon { return flatten(ba.Intersection(bb)) })
	if err != nil {
		return Empty(), err
	}
	return fromBackend(res), nil
}
