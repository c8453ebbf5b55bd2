// File: raster/raster_test.go
package raster_test

import (
	"math"
	"strings"
	"testing"

	"github.com/appliedgrg/bera-tools/raster"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestAffine_RoundTrip checks that the centre of every cell maps back to the
// same (row, col).
func TestAffine_RoundTrip(t *testing.T) {
	tr := raster.NorthUp(100, 200, 2)
	for row := 0; row < 5; row++ {
		for col := 0; col < 7; col++ {
			p := tr.XY(row, col)
			r, c, err := tr.RowCol(p)
			require.NoError(t, err)
			assert.Equal(t, row, r)
			assert.Equal(t, col, c)
		}
	}
	assert.Equal(t, orb.Point{101, 199}, tr.XY(0, 0))
}

func TestAffine_Singular(t *testing.T) {
	_, err := raster.Affine{}.Invert()
	assert.ErrorIs(t, err, raster.ErrSingularTransform)
}

func TestAffine_CellSize(t *testing.T) {
	dx, dy := raster.NorthUp(0, 0, 0.5).CellSize()
	assert.InDelta(t, 0.5, dx, 1e-12)
	assert.InDelta(t, 0.5, dy, 1e-12)
}

// TestClip_MasksCellsOutsideRadius clips a 20×20 unit raster around a
// horizontal line and verifies cells far from the line become nodata.
func TestClip_MasksCellsOutsideRadius(t *testing.T) {
	band := mat.NewDense(20, 20, nil)
	for i := 0; i < 20; i++ {
		for j := 0; j < 20; j++ {
			band.Set(i, j, 1)
		}
	}
	r, err := raster.New(band, raster.Metadata{Transform: raster.NorthUp(0, 20, 1), Nodata: -9999})
	require.NoError(t, err)

	line := orb.LineString{{5, 10}, {15, 10}}
	clip, err := r.Clip(line, 3)
	require.NoError(t, err)

	rows, cols := clip.Dims()
	assert.LessOrEqual(t, rows, 8)
	assert.LessOrEqual(t, cols, 18)

	inside, outside := 0, 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if clip.IsNodata(clip.Band.At(i, j)) {
				outside++
			} else {
				inside++
			}
		}
	}
	assert.Positive(t, inside)
	assert.Positive(t, outside, "corners of the window lie beyond the radius")

	// Source band untouched.
	assert.Equal(t, 1.0, band.At(0, 0))
}

func TestClip_Errors(t *testing.T) {
	r, err := raster.New(mat.NewDense(2, 2, []float64{1, 1, 1, 1}), raster.Metadata{Transform: raster.NorthUp(0, 2, 1)})
	require.NoError(t, err)

	_, err = r.Clip(orb.LineString{{0, 0}, {1, 1}}, 0)
	assert.ErrorIs(t, err, raster.ErrBadRadius)
	_, err = r.Clip(orb.LineString{{0, 0}}, 1)
	assert.ErrorIs(t, err, raster.ErrEmptyLine)
	_, err = r.Clip(orb.LineString{{100, 100}, {101, 101}}, 1)
	assert.ErrorIs(t, err, raster.ErrOutside)
}

func TestReadASCIIGrid(t *testing.T) {
	src := `ncols 3
nrows 2
xllcorner 10
yllcorner 20
cellsize 5
NODATA_value -1
1 2 3
4 -1 nan
`
	r, err := raster.ReadASCIIGrid(strings.NewReader(src))
	require.NoError(t, err)

	rows, cols := r.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, -1.0, r.Meta.Nodata)
	assert.Equal(t, 2.0, r.Band.At(0, 1))
	assert.True(t, r.IsNodata(r.Band.At(1, 1)))
	assert.True(t, math.IsNaN(r.Band.At(1, 2)))

	// Top-left corner is (xll, yll + rows*size).
	assert.Equal(t, orb.Point{12.5, 27.5}, r.Meta.Transform.XY(0, 0))
	assert.Equal(t, orb.Bound{Min: orb.Point{10, 20}, Max: orb.Point{25, 30}}, r.Bound())
}

func TestReadASCIIGrid_BadHeader(t *testing.T) {
	_, err := raster.ReadASCIIGrid(strings.NewReader("ncols 3\nnrows 2\ncellsize 1\n1 2 3 4 5 6"))
	assert.ErrorIs(t, err, raster.ErrBadHeader)

	_, err = raster.ReadASCIIGrid(strings.NewReader("ncols 3\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2 3"))
	assert.Error(t, err)
}
