// File: config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appliedgrg/bera-tools/batch"
	"github.com/appliedgrg/bera-tools/centerline"
	"github.com/appliedgrg/bera-tools/costsurface"
	"github.com/appliedgrg/bera-tools/dijkstra"
	"github.com/appliedgrg/bera-tools/seedline"
)

func TestLoad_File(t *testing.T) {
	cfg, err := Load("testdata/centerline.json")
	require.NoError(t, err)

	opts := cfg.SeedlineOptions()
	assert.Equal(t, 20.0, opts.Radius)
	assert.Equal(t, 3.0, opts.CorridorThreshold)
	assert.Equal(t, seedline.DefaultOptions().MinArea, opts.MinArea)
	assert.Equal(t, dijkstra.StrategyRoute, opts.Strategy)
	assert.Equal(t, 4, opts.Workers)
	assert.Equal(t, batch.ModeSequential, opts.Mode)

	canopy, ok := opts.Surface.(costsurface.Canopy)
	require.True(t, ok)
	assert.Equal(t, 2.0, canopy.HeightThreshold)

	p := opts.Params
	assert.Equal(t, 4.0, p.BufferClip)
	assert.Equal(t, 2, p.MaxDepth)
	assert.Equal(t, 0.25, p.Skeleton.CellSize)
	assert.Equal(t, centerline.DefaultParams().SmoothSigma, p.SmoothSigma)
	assert.False(t, p.DeleteHoles)
	assert.False(t, p.SimplifyPolygon)
}

func TestCenterlineParams_PolygonFlags(t *testing.T) {
	assert.True(t, Empty().CenterlineParams().DeleteHoles)
	assert.True(t, Empty().CenterlineParams().SimplifyPolygon)

	cfg := &Config{DeleteHoles: ptrBool(false)}
	p := cfg.CenterlineParams()
	assert.False(t, p.DeleteHoles)
	assert.True(t, p.SimplifyPolygon)

	cfg = &Config{SimplifyPolygon: ptrBool(false)}
	p = cfg.CenterlineParams()
	assert.True(t, p.DeleteHoles)
	assert.False(t, p.SimplifyPolygon)
}

func TestEmpty_Defaults(t *testing.T) {
	cfg := Empty()
	require.NoError(t, cfg.Validate())
	opts := cfg.SeedlineOptions()
	def := seedline.DefaultOptions()

	assert.Equal(t, def.Radius, opts.Radius)
	assert.Equal(t, def.CorridorThreshold, opts.CorridorThreshold)
	assert.Equal(t, dijkstra.StrategyHeap, opts.Strategy)
	assert.Equal(t, costsurface.Identity{}, opts.Surface)
	assert.Equal(t, batch.ModeConcurrent, opts.Mode)
	assert.Equal(t, 0, opts.Workers)
	assert.Equal(t, centerline.DefaultParams(), opts.Params)
}

func TestValidate(t *testing.T) {
	canopy := "canopy"
	bogus := "bogus"
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"radius", Config{LineRadius: ptrFloat64(0)}, false},
		{"segmentize", Config{SegmentizeLength: ptrFloat64(-1)}, false},
		{"clip", Config{BufferClip: ptrFloat64(-0.5)}, false},
		{"depth", Config{MaxDepth: ptrInt(11)}, false},
		{"workers", Config{Workers: ptrInt(-1)}, false},
		{"surface", Config{CostSurface: &bogus}, false},
		{"negative threshold passes through", Config{CorridorThreshold: ptrFloat64(-1)}, true},
		{"all good", Config{CostSurface: &canopy, BufferClip: ptrFloat64(0), Sequential: ptrBool(false)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoad_Rejects(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "config.yaml"))
	assert.ErrorContains(t, err, ".json extension")

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "stat")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"line_radius":`), 0o600))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "parse")

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"max_depth": -1}`), 0o600))
	_, err = Load(invalid)
	assert.ErrorContains(t, err, "invalid configuration")

	big := filepath.Join(dir, "big.json")
	require.NoError(t, os.WriteFile(big, make([]byte, maxFileSize+1), 0o600))
	_, err = Load(big)
	assert.ErrorContains(t, err, "too large")
}
