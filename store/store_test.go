// File: store/store_test.go
package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appliedgrg/bera-tools/centerline"
	"github.com/appliedgrg/bera-tools/geometry"
	"github.com/appliedgrg/bera-tools/seedline"
	"github.com/appliedgrg/bera-tools/store"
)

func open(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "run.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func lines() []*seedline.SeedLine {
	corridor := geometry.Single(orb.Polygon{{{0, -3}, {10, -3}, {10, 3}, {0, 3}, {0, -3}}})
	return []*seedline.SeedLine{
		{
			Line:       orb.LineString{{0, 0}, {10, 0}},
			Keys:       seedline.Keys{OLnFID: 2, OLnSEG: 1, HasSEG: true},
			LCPath:     orb.LineString{{0, 0}, {5, 1}, {10, 0}},
			Centerline: orb.LineString{{0, 0}, {5, 0.5}, {10, 0}},
			Status:     centerline.Success,
			Corridor:   corridor,
		},
		{
			Line:       orb.LineString{{0, 5}, {10, 5}},
			Keys:       seedline.Keys{OLnFID: 1},
			Centerline: orb.LineString{{0, 5}, {10, 5}},
			Status:     centerline.Failed,
		},
	}
}

func TestMigrations(t *testing.T) {
	s := open(t)
	v, dirty, err := s.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(2), v)
	assert.False(t, dirty)

	require.NoError(t, s.MigrateUp(), "re-running is a no-op")

	require.NoError(t, s.MigrateDown())
	v, _, err = s.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)
	require.NoError(t, s.MigrateUp())
}

func TestSaveRun_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := open(t)

	id, err := s.SaveRun(ctx, "test", lines())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	rows, err := s.Centerlines(ctx, id)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, seedline.Keys{OLnFID: 1}, rows[0].Keys, "ordered by OLnFID; missing OLnSEG stays unset")
	assert.Equal(t, centerline.Failed, rows[0].Status)
	assert.Equal(t, orb.LineString{{0, 5}, {10, 5}}, rows[0].Geometry)

	assert.Equal(t, seedline.Keys{OLnFID: 2, OLnSEG: 1, HasSEG: true}, rows[1].Keys)
	assert.Equal(t, centerline.Success, rows[1].Status)
	assert.Equal(t, orb.LineString{{0, 0}, {5, 0.5}, {10, 0}}, rows[1].Geometry)

	cors, err := s.Corridors(ctx, id)
	require.NoError(t, err)
	require.Len(t, cors, 1)
	assert.IsType(t, orb.Polygon{}, cors[0].Geometry)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, runs)
}

func TestCenterlines_UnknownRun(t *testing.T) {
	_, err := open(t).Centerlines(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUnknownRun)
}

func TestSaveRun_SeparateRuns(t *testing.T) {
	ctx := context.Background()
	s := open(t)
	a, err := s.SaveRun(ctx, "a", lines())
	require.NoError(t, err)
	b, err := s.SaveRun(ctx, "b", lines()[:1])
	require.NoError(t, err)

	ra, err := s.Centerlines(ctx, a)
	require.NoError(t, err)
	rb, err := s.Centerlines(ctx, b)
	require.NoError(t, err)
	assert.Len(t, ra, 2)
	assert.Len(t, rb, 1)
}
