package skeleton

import (
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/appliedgrg/bera-tools/raster"
)

// grid is a binary raster in row-major order.
type grid struct {
	rows, cols int
	cells      []uint8
	transform  raster.Affine
}

func (g *grid) at(r, c int) uint8 {
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		return 0
	}
	return g.cells[r*g.cols+c]
}

// rasterize burns p into a north-up grid with one empty cell of padding on
// every side. A cell is set when its centre lies inside p (even-odd rule,
// so holes stay empty). cellSize is enlarged when the grid would exceed
// maxCells.
func rasterize(p orb.Polygon, cellSize float64, maxCells int) *grid {
	b := p.Bound()
	w, h := b.Max[0]-b.Min[0], b.Max[1]-b.Min[1]
	if maxCells > 0 && (w/cellSize+2)*(h/cellSize+2) > float64(maxCells) {
		cellSize = math.Sqrt(w*h/float64(maxCells)) * 1.05
	}
	cols := int(math.Ceil(w/cellSize)) + 2
	rows := int(math.Ceil(h/cellSize)) + 2
	g := &grid{
		rows:      rows,
		cols:      cols,
		cells:     make([]uint8, rows*cols),
		transform: raster.NorthUp(b.Min[0]-cellSize, b.Max[1]+cellSize, cellSize),
	}

	xs := make([]float64, 0, 16)
	for r := 0; r < rows; r++ {
		y := g.transform.XY(r, 0)[1]
		xs = xs[:0]
		for _, ring := range p {
			for i := 0; i+1 < len(ring); i++ {
				a, e := ring[i], ring[i+1]
				if (a[1] > y) == (e[1] > y) {
					continue
				}
				xs = append(xs, a[0]+(y-a[1])*(e[0]-a[0])/(e[1]-a[1]))
			}
		}
		sort.Float64s(xs)
		for k := 0; k+1 < len(xs); k += 2 {
			// centre x = originX + (c+0.5)·cellSize
			c0 := int(math.Ceil((xs[k]-g.transform.C)/cellSize - 0.5))
			c1 := int(math.Ceil((xs[k+1]-g.transform.C)/cellSize - 0.5))
			for c := max(c0, 0); c < min(c1, cols); c++ {
				g.cells[r*cols+c] = 1
			}
		}
	}
	return g
}
