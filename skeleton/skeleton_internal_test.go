// File: skeleton/skeleton_internal_test.go
package skeleton

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, x1, y1 float64) orb.Ring {
	return orb.Ring{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
}

func count(g *grid) int {
	n := 0
	for _, v := range g.cells {
		n += int(v)
	}
	return n
}

// 1. Rasterisation

func TestRasterize_Square(t *testing.T) {
	g := rasterize(orb.Polygon{square(0, 0, 4, 4)}, 1, 0)
	assert.Equal(t, 6, g.rows)
	assert.Equal(t, 6, g.cols)
	assert.Equal(t, 16, count(g))
	assert.Equal(t, uint8(0), g.at(0, 0), "padding")
	assert.Equal(t, uint8(1), g.at(1, 1))
	assert.Equal(t, orb.Point{0.5, 3.5}, g.transform.XY(1, 1))
}

func TestRasterize_HoleStaysEmpty(t *testing.T) {
	hole := square(2, 2, 4, 4)
	hole.Reverse()
	g := rasterize(orb.Polygon{square(0, 0, 6, 6), hole}, 1, 0)
	assert.Equal(t, 32, count(g))
	assert.Equal(t, uint8(0), g.at(3, 3))
}

func TestRasterize_MaxCellsCoarsens(t *testing.T) {
	g := rasterize(orb.Polygon{square(0, 0, 100, 100)}, 0.1, 10_000)
	assert.LessOrEqual(t, g.rows*g.cols, 10_000)
	dx, _ := g.transform.CellSize()
	assert.Greater(t, dx, 0.1)
}

// 2. Thinning

func TestThin_Bar(t *testing.T) {
	g := &grid{rows: 5, cols: 12, cells: make([]uint8, 60)}
	for r := 1; r <= 3; r++ {
		for c := 1; c <= 10; c++ {
			g.cells[r*12+c] = 1
		}
	}
	assert.GreaterOrEqual(t, thin(g), 2)
	for c := 3; c <= 8; c++ {
		assert.Equal(t, uint8(1), g.at(2, c), "middle row col %d", c)
		assert.Equal(t, uint8(0), g.at(1, c))
		assert.Equal(t, uint8(0), g.at(3, c))
	}
}

func TestThin_NoSquareBlocksRemain(t *testing.T) {
	g := rasterize(orb.Polygon{square(0, 0, 20, 8)}, 0.5, 0)
	thin(g)
	require.Positive(t, count(g))
	for r := 0; r+1 < g.rows; r++ {
		for c := 0; c+1 < g.cols; c++ {
			block := g.at(r, c) + g.at(r+1, c) + g.at(r, c+1) + g.at(r+1, c+1)
			assert.Less(t, block, uint8(4), "2x2 block at (%d,%d)", r, c)
		}
	}
}

// 3. Longest path and smoothing

func TestLongestPaths_TwoComponents(t *testing.T) {
	g := &grid{rows: 6, cols: 10, cells: make([]uint8, 60)}
	for c := 1; c <= 8; c++ {
		g.cells[1*10+c] = 1
	}
	for c := 2; c <= 4; c++ {
		g.cells[4*10+c] = 1
	}
	g.cells[2*10+4] = 1 // spur off the long row

	paths, err := longestPaths(g)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Len(t, paths[0], 8)
	assert.Len(t, paths[1], 3)
}

func TestSmooth_KeepsEndsAndStraightLines(t *testing.T) {
	ls := orb.LineString{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}
	out := smooth(ls, 0.8)
	assert.Equal(t, ls[0], out[0])
	assert.Equal(t, ls[4], out[4])
	for _, p := range out {
		assert.InDelta(t, 0.0, p[1], 1e-12)
	}

	zig := orb.LineString{{0, 0}, {1, 1}, {2, 0}, {3, 1}, {4, 0}}
	sm := smooth(zig, 0.8)
	assert.Less(t, sm[1][1], 1.0)
	assert.Greater(t, sm[2][1], 0.0)
	assert.Equal(t, zig, smooth(zig, 0), "zero sigma disables smoothing")
}
