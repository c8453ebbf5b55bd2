// File: seedline/seedline_test.go
package seedline_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/appliedgrg/bera-tools/batch"
	"github.com/appliedgrg/bera-tools/centerline"
	"github.com/appliedgrg/bera-tools/costgrid"
	"github.com/appliedgrg/bera-tools/dijkstra"
	"github.com/appliedgrg/bera-tools/geometry"
	"github.com/appliedgrg/bera-tools/raster"
	"github.com/appliedgrg/bera-tools/seedline"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// flat returns a 30×120 raster of unit cost whose top-left corner is (0, 30).
func flat(t *testing.T, value float64) *raster.Raster {
	t.Helper()
	data := make([]float64, 30*120)
	for i := range data {
		data[i] = value
	}
	r, err := raster.New(mat.NewDense(30, 120, data), raster.Metadata{
		Transform: raster.NorthUp(0, 30, 1),
		Nodata:    -9999,
	})
	require.NoError(t, err)
	return r
}

func straight() *seedline.SeedLine {
	return &seedline.SeedLine{Line: orb.LineString{{10, 15}, {110, 15}}, Keys: seedline.Keys{OLnFID: 7}}
}

// 1. Compute

func TestCompute_StraightCorridor(t *testing.T) {
	for _, strategy := range []dijkstra.Strategy{dijkstra.StrategyHeap, dijkstra.StrategyRoute} {
		t.Run(strategy.String(), func(t *testing.T) {
			opts := seedline.DefaultOptions()
			opts.Strategy = strategy
			s := straight()
			require.NoError(t, s.Compute(context.Background(), flat(t, 1), opts))

			assert.Equal(t, centerline.Success, s.Status)
			assert.NoError(t, s.Err)
			assert.Equal(t, s.Line[0], s.LCPath[0])
			assert.Equal(t, s.Line[1], s.LCPath[len(s.LCPath)-1])
			assert.Equal(t, geometry.KindSingle, s.Corridor.Kind())

			cl, ok := s.Centerline.(orb.LineString)
			require.True(t, ok, "got %T", s.Centerline)
			assert.ElementsMatch(t, []orb.Point{s.Line[0], s.Line[1]}, []orb.Point{cl[0], cl[len(cl)-1]})
			assert.InDelta(t, 100.0, geometry.Length(cl), 5.0)
		})
	}
}

func TestCompute_Fallbacks(t *testing.T) {
	cases := []struct {
		name string
		line orb.LineString
		ras  *raster.Raster
		want error
	}{
		{"single point", orb.LineString{{10, 15}}, flat(t, 1), seedline.ErrInvalidGeometry},
		{"zero length", orb.LineString{{10, 15}, {10, 15}}, flat(t, 1), seedline.ErrInvalidGeometry},
		{"outside raster", orb.LineString{{500, 500}, {600, 500}}, flat(t, 1), seedline.ErrOutsideRaster},
		{"negative cost", orb.LineString{{10, 15}, {110, 15}}, flat(t, -2), costgrid.ErrNegativeCost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &seedline.SeedLine{Line: tc.line}
			require.NoError(t, s.Compute(context.Background(), tc.ras, seedline.DefaultOptions()))
			assert.Equal(t, centerline.Failed, s.Status)
			assert.ErrorIs(t, s.Err, tc.want)
			assert.Equal(t, tc.line, s.Centerline)
		})
	}
}

func TestCompute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := straight()
	assert.ErrorIs(t, s.Compute(ctx, flat(t, 1), seedline.DefaultOptions()), context.Canceled)
}

// 2. ProcessAll

func TestProcessAll(t *testing.T) {
	lines := []*seedline.SeedLine{
		straight(),
		{Line: orb.LineString{{10, 10}, {100, 20}}, Keys: seedline.Keys{OLnFID: 8}},
		{Line: orb.LineString{{1, 1}}, Keys: seedline.Keys{OLnFID: 9}},
	}
	opts := seedline.DefaultOptions()
	opts.Workers = 2
	opts.Mode = batch.ModeConcurrent

	out, err := seedline.ProcessAll(context.Background(), lines, flat(t, 1), opts)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i, s := range out {
		assert.Equal(t, lines[i], s, "input order is kept")
		assert.NotZero(t, s.Status)
		assert.NotNil(t, s.Centerline)
	}
	assert.Equal(t, centerline.Failed, out[2].Status)
}

// 3. GeoJSON

const input = `{"type":"FeatureCollection","features":[
 {"type":"Feature","properties":{"OLnFID":12},"geometry":{"type":"LineString","coordinates":[[0,0],[10,0]]}},
 {"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[0,5],[10,5]]}},
 {"type":"Feature","properties":{"OLnFID":"4"},"geometry":{"type":"MultiLineString","coordinates":[[[0,0],[1,1]],[[2,2],[3,3]]]}}
]}`

func TestReadGeoJSON(t *testing.T) {
	lines, err := seedline.ReadGeoJSON(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lines, 4)

	assert.Equal(t, seedline.Keys{OLnFID: 12}, lines[0].Keys)
	assert.Equal(t, seedline.Keys{OLnFID: 1}, lines[1].Keys, "missing OLnFID falls back to the index")
	assert.Equal(t, seedline.Keys{OLnFID: 4, OLnSEG: 0, HasSEG: true}, lines[2].Keys)
	assert.Equal(t, seedline.Keys{OLnFID: 4, OLnSEG: 1, HasSEG: true}, lines[3].Keys)
	assert.Equal(t, orb.LineString{{2, 2}, {3, 3}}, lines[3].Line)

	_, err = seedline.ReadGeoJSON(strings.NewReader(`{"type":"FeatureCollection","features":[
	 {"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[0,0]}}]}`))
	assert.ErrorIs(t, err, seedline.ErrInvalidGeometry)
}

func TestWriteGeoJSON(t *testing.T) {
	s := straight()
	s.Centerline = s.Line
	s.Status = centerline.RegenerateSuccess
	s.Keys = seedline.Keys{OLnFID: 3, OLnSEG: 2, HasSEG: true}
	skipped := &seedline.SeedLine{Line: orb.LineString{{0, 0}, {1, 1}}}

	var buf bytes.Buffer
	require.NoError(t, seedline.WriteGeoJSON(&buf, []*seedline.SeedLine{s, skipped}, seedline.LayerCenterline))
	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	f := fc.Features[0]
	assert.Equal(t, 3.0, f.Properties[seedline.PropFID])
	assert.Equal(t, 2.0, f.Properties[seedline.PropSEG])
	assert.Equal(t, 3.0, f.Properties[seedline.PropStatus])

	assert.Empty(t, seedline.Features([]*seedline.SeedLine{s}, seedline.LayerCorridor).Features)
}
