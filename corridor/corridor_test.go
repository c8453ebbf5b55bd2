// File: corridor/corridor_test.go
package corridor_test

import (
	"context"
	"math"
	"testing"

	"github.com/appliedgrg/bera-tools/corridor"
	"github.com/appliedgrg/bera-tools/costgrid"
	"github.com/appliedgrg/bera-tools/dijkstra"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// uniform returns a rows×cols grid of unit costs.
func uniform(t *testing.T, rows, cols int) *costgrid.Grid {
	t.Helper()
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = 1
	}
	g, err := costgrid.New(mat.NewDense(rows, cols, data), -9999)
	require.NoError(t, err)
	return g
}

var (
	west = []costgrid.Cell{{Row: 2, Col: 0}}
	east = []costgrid.Cell{{Row: 2, Col: 6}}
)

// 1. Validation

func TestBuild_Validation(t *testing.T) {
	ctx := context.Background()
	g := uniform(t, 5, 7)

	_, err := corridor.Build(ctx, nil, west, east, 1, 1)
	assert.ErrorIs(t, err, dijkstra.ErrNilGrid)
	_, err = corridor.Build(ctx, g, nil, east, 1, 1)
	assert.ErrorIs(t, err, corridor.ErrNoSeeds)
	_, err = corridor.Build(ctx, g, west, nil, 1, 1)
	assert.ErrorIs(t, err, corridor.ErrNoSeeds)
	for _, cs := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err = corridor.Build(ctx, g, west, east, cs, 1)
		assert.ErrorIs(t, err, corridor.ErrBadCellSize, "cell size %v", cs)
	}
}

// 2. Field and mask

func TestBuild_StraightCorridor(t *testing.T) {
	res, err := corridor.Build(context.Background(), uniform(t, 5, 7), west, east, 1, 0.5)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Rows)
	assert.Equal(t, 7, res.Cols)
	assert.InDelta(t, 6.0, res.Minimum, 1e-9, "least-cost path crosses six unit edges")
	assert.Equal(t, 7, res.Cells(), "only the middle row is within half a cell of optimal")
	want := make([]uint8, 5*7)
	for c := 0; c < 7; c++ {
		want[2*7+c] = 1
		assert.InDelta(t, 0.0, res.Field[2*7+c], 1e-9)
	}
	if diff := cmp.Diff(want, res.Mask); diff != "" {
		t.Errorf("mask mismatch (-want +got):\n%s", diff)
	}
	// Off-path cells pay the detour: two axis moves swapped for a diagonal pair.
	assert.InDelta(t, 2*math.Sqrt2-2, res.Field[1*7+3], 1e-9)
}

func TestBuild_MonotonicInThreshold(t *testing.T) {
	g := uniform(t, 9, 9)
	src := []costgrid.Cell{{Row: 0, Col: 0}}
	dst := []costgrid.Cell{{Row: 8, Col: 8}}

	var prev *corridor.Result
	for _, th := range []float64{0, 0.5, 1, 2.5, 5, 20} {
		res, err := corridor.Build(context.Background(), g, src, dst, 1, th)
		require.NoError(t, err)
		if prev != nil {
			assert.GreaterOrEqual(t, res.Cells(), prev.Cells(), "threshold %v", th)
			for i, v := range prev.Mask {
				if v == 1 {
					assert.Equal(t, uint8(1), res.Mask[i], "cell %d left the corridor at %v", i, th)
				}
			}
		}
		prev = res
	}
	assert.Equal(t, 0, mustBuild(t, g, src, dst, 0).Cells(), "strict comparison leaves a zero threshold empty")
}

func TestBuild_ThresholdUnits(t *testing.T) {
	g := uniform(t, 5, 7)
	res := mustBuildCS(t, g, 2, 1)
	assert.InDelta(t, 0.5, res.Threshold, 1e-12)

	res = mustBuildCS(t, g, 2, -1)
	assert.InDelta(t, corridor.DefaultThreshold/2, res.Threshold, 1e-12)
}

func TestBuild_ImpassableExcluded(t *testing.T) {
	data := make([]float64, 5*7)
	for i := range data {
		data[i] = 1
	}
	data[2*7+3] = -9999 // on the straight path
	g, err := costgrid.New(mat.NewDense(5, 7, data), -9999)
	require.NoError(t, err)

	res, err := corridor.Build(context.Background(), g, west, east, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), res.Mask[2*7+3])
	assert.True(t, math.IsInf(res.Field[2*7+3], 1))
	assert.Positive(t, res.Cells())
}

func TestBuild_UnreachableFallsBack(t *testing.T) {
	data := make([]float64, 5*7)
	for i := range data {
		data[i] = 1
		if i%7 == 3 {
			data[i] = -9999 // wall across the grid
		}
	}
	g, err := costgrid.New(mat.NewDense(5, 7, data), -9999)
	require.NoError(t, err)

	res, err := corridor.Build(context.Background(), g, west, east, 1, 2.5)
	require.NoError(t, err)
	assert.Equal(t, corridor.FallbackMinimum, res.Minimum)
	assert.Zero(t, res.Cells())
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := corridor.Build(ctx, uniform(t, 5, 7), west, east, 1, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func mustBuild(t *testing.T, g *costgrid.Grid, src, dst []costgrid.Cell, th float64) *corridor.Result {
	t.Helper()
	res, err := corridor.Build(context.Background(), g, src, dst, 1, th)
	require.NoError(t, err)
	return res
}

func mustBuildCS(t *testing.T, g *costgrid.Grid, cs, th float64) *corridor.Result {
	t.Helper()
	res, err := corridor.Build(context.Background(), g, west, east, cs, th)
	require.NoError(t, err)
	return res
}
