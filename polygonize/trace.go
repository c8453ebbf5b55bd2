package polygonize

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/appliedgrg/bera-tools/raster"
)

// edge is one unit side of a cell on a region boundary, in corner
// coordinates (x = col, y = row). Edges run clockwise on screen, so the
// region is always on the right.
type edge struct {
	x0, y0 int
	dx, dy int
	used   bool
}

func (e edge) end() (int, int) { return e.x0 + e.dx, e.y0 + e.dy }

// boundary collects the boundary edges of every region, keyed by region id.
func boundary(labels []int, rows, cols, n int) [][]edge {
	out := make([][]edge, n+1)
	other := func(r, c int) int {
		if r < 0 || r >= rows || c < 0 || c >= cols {
			return 0
		}
		return labels[r*cols+c]
	}
	for i, l := range labels {
		if l == 0 {
			continue
		}
		r, c := i/cols, i%cols
		if other(r-1, c) != l {
			out[l] = append(out[l], edge{x0: c, y0: r, dx: 1})
		}
		if other(r, c+1) != l {
			out[l] = append(out[l], edge{x0: c + 1, y0: r, dy: 1})
		}
		if other(r+1, c) != l {
			out[l] = append(out[l], edge{x0: c + 1, y0: r + 1, dx: -1})
		}
		if other(r, c-1) != l {
			out[l] = append(out[l], edge{x0: c, y0: r + 1, dy: -1})
		}
	}
	return out
}

// rings links a region's edges into closed rings of corner positions with
// collinear vertices removed. Where two edges leave the same corner (the
// region touches itself diagonally) the left-hand turn is taken, so an outer
// boundary and a hole meeting at that corner stay separate rings.
func rings(edges []edge, cols int) [][][2]int {
	key := func(x, y int) int { return y*(cols+1) + x }
	out := make(map[int][]int, len(edges))
	for i, e := range edges {
		k := key(e.x0, e.y0)
		out[k] = append(out[k], i)
	}

	// next picks the outgoing edge at (x,y) when arriving with direction
	// (dx,dy): left turn, then straight, then right.
	next := func(x, y, dx, dy int) int {
		cands := out[key(x, y)]
		if len(cands) == 1 {
			return cands[0]
		}
		for _, want := range [3][2]int{{dy, -dx}, {dx, dy}, {-dy, dx}} {
			for _, c := range cands {
				if edges[c].dx == want[0] && edges[c].dy == want[1] {
					return c
				}
			}
		}
		return -1
	}

	var res [][][2]int
	for s := range edges {
		if edges[s].used {
			continue
		}
		var chain []int
		cur := s
		for {
			edges[cur].used = true
			chain = append(chain, cur)
			x, y := edges[cur].end()
			nx := next(x, y, edges[cur].dx, edges[cur].dy)
			if nx == s || nx < 0 || edges[nx].used {
				break
			}
			cur = nx
		}
		if len(chain) < 4 {
			continue
		}

		var ring [][2]int
		for i, ei := range chain {
			prev := edges[chain[(i+len(chain)-1)%len(chain)]]
			e := edges[ei]
			if e.dx != prev.dx || e.dy != prev.dy {
				ring = append(ring, [2]int{e.x0, e.y0})
			}
		}
		if len(ring) >= 4 {
			res = append(res, append(ring, ring[0]))
		}
	}
	return res
}

// signedArea is the shoelace area in corner coordinates. Outer boundaries
// are positive, holes negative.
func signedArea(ring [][2]int) int {
	var s int
	for i := 0; i+1 < len(ring); i++ {
		s += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	return s
}

func toWorld(ring [][2]int, t raster.Affine, orient orb.Orientation) orb.Ring {
	r := make(orb.Ring, len(ring))
	for i, v := range ring {
		r[i] = t.Apply(float64(v[0]), float64(v[1]))
	}
	if r.Orientation() != orient {
		r.Reverse()
	}
	return r
}

// Regions traces every 4-connected foreground region of mask into world
// polygons. Outer rings are counter-clockwise and holes clockwise. No area
// filter is applied.
func Regions(mask []uint8, rows, cols int, t raster.Affine) []orb.Polygon {
	if rows <= 0 || cols <= 0 || len(mask) != rows*cols {
		return nil
	}
	labels, n := label(mask, rows, cols)
	var polys []orb.Polygon
	for l, edges := range boundary(labels, rows, cols, n) {
		if l == 0 || len(edges) == 0 {
			continue
		}
		var outers, holes []orb.Ring
		for _, pr := range rings(edges, cols) {
			if signedArea(pr) > 0 {
				outers = append(outers, toWorld(pr, t, orb.CCW))
			} else {
				holes = append(holes, toWorld(pr, t, orb.CW))
			}
		}
		polys = append(polys, assemble(outers, holes)...)
	}
	return polys
}

// assemble attaches each hole to the smallest outer ring whose bound
// contains it.
func assemble(outers, holes []orb.Ring) []orb.Polygon {
	polys := make([]orb.Polygon, len(outers))
	areas := make([]float64, len(outers))
	for i, o := range outers {
		polys[i] = orb.Polygon{o}
		areas[i] = planar.Area(o)
	}
	for _, h := range holes {
		hb := h.Bound()
		best := -1
		for i, o := range outers {
			ob := o.Bound()
			if !ob.Contains(hb.Min) || !ob.Contains(hb.Max) {
				continue
			}
			if best < 0 || areas[i] < areas[best] {
				best = i
			}
		}
		if best >= 0 {
			polys[best] = append(polys[best], h)
		}
	}
	return polys
}
