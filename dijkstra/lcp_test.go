// File: dijkstra/lcp_test.go
package dijkstra_test

import (
	"context"
	"testing"

	"github.com/appliedgrg/bera-tools/dijkstra"
	"github.com/appliedgrg/bera-tools/raster"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLeastCostPath_EndpointsPinned: interior points sit on cell centres,
// the endpoints equal the seed line's own coordinates exactly.
func TestLeastCostPath_EndpointsPinned(t *testing.T) {
	g := mustGrid(t, 5, 5, uniform(5, 5))
	tr := raster.NorthUp(0, 5, 1)
	line := orb.LineString{{0.2, 4.9}, {2, 2}, {4.7, 0.1}}

	for _, s := range []dijkstra.Strategy{dijkstra.StrategyHeap, dijkstra.StrategyRoute} {
		t.Run(s.String(), func(t *testing.T) {
			ls, err := dijkstra.LeastCostPath(context.Background(), g, tr, line, s)
			require.NoError(t, err)
			require.Len(t, ls, 5)
			assert.Equal(t, line[0], ls[0])
			assert.Equal(t, line[2], ls[4])
			assert.Equal(t, orb.Point{2.5, 2.5}, ls[2])
		})
	}
}

// TestLeastCostPath_ClampsOutsideEndpoints: endpoints beyond the grid are
// clamped onto its edge rather than rejected.
func TestLeastCostPath_ClampsOutsideEndpoints(t *testing.T) {
	g := mustGrid(t, 3, 3, uniform(3, 3))
	tr := raster.NorthUp(0, 3, 1)
	line := orb.LineString{{-10, 1.5}, {20, 1.5}}

	ls, err := dijkstra.LeastCostPath(context.Background(), g, tr, line, dijkstra.StrategyHeap)
	require.NoError(t, err)
	assert.Equal(t, line[0], ls[0])
	assert.Equal(t, line[1], ls[len(ls)-1])
}

func TestLeastCostPath_Errors(t *testing.T) {
	g := mustGrid(t, 2, 2, []float64{-1, 1, 1, 1})
	tr := raster.NorthUp(0, 2, 1)

	_, err := dijkstra.LeastCostPath(context.Background(), g, tr, orb.LineString{{0, 0}}, dijkstra.StrategyHeap)
	assert.ErrorIs(t, err, dijkstra.ErrShortLine)

	_, err = dijkstra.LeastCostPath(context.Background(), g, tr, orb.LineString{{0.5, 1.5}, {1.5, 0.5}}, dijkstra.StrategyHeap)
	assert.ErrorIs(t, err, dijkstra.ErrNoPath)

	_, err = dijkstra.LeastCostPath(context.Background(), nil, tr, orb.LineString{{0, 0}, {1, 1}}, dijkstra.StrategyHeap)
	assert.ErrorIs(t, err, dijkstra.ErrNilGrid)
}
