// Package seedline runs the per-feature centerline pipeline.
//
// For each seed line: clip the input raster around it, derive a cost grid,
// find the least-cost path between its endpoints, clip again around that
// path, build the corridor, polygonize it and extract the centerline. Any
// failure along the way falls back to the seed line with a status; only
// cancellation is reported as an error.
package seedline

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"

	beratools "github.com/appliedgrg/bera-tools"
	"github.com/appliedgrg/bera-tools/batch"
	"github.com/appliedgrg/bera-tools/centerline"
	"github.com/appliedgrg/bera-tools/corridor"
	"github.com/appliedgrg/bera-tools/costgrid"
	"github.com/appliedgrg/bera-tools/costsurface"
	"github.com/appliedgrg/bera-tools/dijkstra"
	"github.com/appliedgrg/bera-tools/geometry"
	"github.com/appliedgrg/bera-tools/polygonize"
	"github.com/appliedgrg/bera-tools/raster"
)

var (
	// ErrInvalidGeometry indicates a seed line that is too short or not finite.
	ErrInvalidGeometry = errors.New("seedline: invalid seed line geometry")
	// ErrOutsideRaster indicates a seed line with no part over the raster.
	ErrOutsideRaster = errors.New("seedline: seed line lies outside the raster")
)

// CorridorClipFactor shrinks the clip radius used for the corridor raster.
const CorridorClipFactor = 0.9

// Keys join a result back to its input feature.
type Keys struct {
	OLnFID int64
	OLnSEG int64
	// HasSEG is false when the input carried no OLnSEG property.
	HasSEG bool
}

// SeedLine is one input feature and everything computed for it.
type SeedLine struct {
	Line orb.LineString
	Keys Keys

	LCPath     orb.LineString
	Centerline orb.Geometry
	Status     centerline.Status
	Corridor   geometry.Shape
	// Err is the failure that produced a fallback, if any.
	Err error
}

// Options configure Compute and ProcessAll.
type Options struct {
	// Radius is the clip radius around the seed line.
	Radius float64
	// CorridorThreshold is the corridor width parameter (world units).
	CorridorThreshold float64
	// MinArea drops corridor regions no larger than this.
	MinArea  float64
	Strategy dijkstra.Strategy
	Surface  costsurface.Surface
	Params   centerline.Params

	Workers int
	Mode    batch.Mode
}

// DefaultOptions returns options with a 15-unit search radius.
func DefaultOptions() Options {
	return Options{
		Radius:            15,
		CorridorThreshold: corridor.DefaultThreshold,
		MinArea:           polygonize.DefaultMinArea,
		Strategy:          dijkstra.StrategyHeap,
		Surface:           costsurface.Identity{},
		Params:            centerline.DefaultParams(),
		Mode:              batch.ModeConcurrent,
	}
}

// bounder is implemented by clippers that know their extent.
type bounder interface {
	Bound() orb.Bound
}

// Compute runs the pipeline for s against the raster behind clipper. It
// always leaves s with a Status and a Centerline; the returned error is
// non-nil only when ctx is cancelled.
func (s *SeedLine) Compute(ctx context.Context, clipper raster.Clipper, opts Options) error {
	log := beratools.Logger().With("oln_fid", s.Keys.OLnFID, "oln_seg", s.Keys.OLnSEG)
	fallback := func(err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("seedline: using seed line", "err", err)
		s.Centerline, s.Status, s.Err = s.Line, centerline.Failed, err
		if s.LCPath == nil {
			s.LCPath = s.Line
		}
		return nil
	}

	if !valid(s.Line) {
		return fallback(ErrInvalidGeometry)
	}
	if b, ok := clipper.(bounder); ok {
		if inside := clip.Geometry(b.Bound(), s.Line.Clone()); geometry.IsEmptyLine(inside) {
			return fallback(ErrOutsideRaster)
		}
	}
	if opts.Surface == nil {
		opts.Surface = costsurface.Identity{}
	}

	g, t, err := costGrid(clipper, s.Line, opts.Radius, opts.Surface)
	if err != nil {
		return fallback(err)
	}
	lcp, err := dijkstra.LeastCostPath(ctx, g, t, s.Line, opts.Strategy)
	if err != nil {
		return fallback(err)
	}
	s.LCPath = lcp

	g, t, err = costGrid(clipper, lcp, opts.Radius*CorridorClipFactor, opts.Surface)
	if err != nil {
		return fallback(err)
	}
	src, err := cellOf(g, t, lcp[0])
	if err != nil {
		return fallback(err)
	}
	dst, err := cellOf(g, t, lcp[len(lcp)-1])
	if err != nil {
		return fallback(err)
	}
	cellSize, _ := t.CellSize()
	res, err := corridor.Build(ctx, g, []costgrid.Cell{src}, []costgrid.Cell{dst}, cellSize, opts.CorridorThreshold)
	if err != nil {
		return fallback(err)
	}

	poly, err := polygonize.Extract(res.Mask, res.Rows, res.Cols, t, opts.MinArea)
	if err != nil {
		log.Debug("seedline: no corridor polygon", "err", err)
		s.Err = err
	}
	s.Corridor = poly
	s.Centerline, s.Status = centerline.Find(poly, lcp, opts.Params)
	log.Debug("seedline: done", "status", s.Status.String(), "length", geometry.Length(s.Centerline))

	return nil
}

// costGrid clips around line and turns the clip into a cost grid.
func costGrid(clipper raster.Clipper, line orb.LineString, radius float64, surf costsurface.Surface) (*costgrid.Grid, raster.Affine, error) {
	r, err := clipper.Clip(line, radius)
	if err != nil {
		return nil, raster.Affine{}, fmt.Errorf("clip: %w", err)
	}
	cost, _, err := surf.Cost(r)
	if err != nil {
		return nil, raster.Affine{}, fmt.Errorf("cost surface: %w", err)
	}
	g, err := costgrid.New(cost, r.Meta.Nodata)
	if err != nil {
		return nil, raster.Affine{}, err
	}
	return g, r.Meta.Transform, nil
}

func cellOf(g *costgrid.Grid, t raster.Affine, p orb.Point) (costgrid.Cell, error) {
	r, c, err := t.RowCol(p)
	if err != nil {
		return costgrid.Cell{}, err
	}
	return g.Clamp(costgrid.Cell{Row: r, Col: c}), nil
}

func valid(ls orb.LineString) bool {
	if len(ls) < 2 {
		return false
	}
	for _, p := range ls {
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
			return false
		}
	}
	return geometry.Length(ls) > 0
}

// ProcessAll computes every line in lines using opts.Mode and opts.Workers.
// Lines are updated in place and returned in input order. The error is
// non-nil only on cancellation.
func ProcessAll(ctx context.Context, lines []*SeedLine, clipper raster.Clipper, opts Options) ([]*SeedLine, error) {
	fn := func(ctx context.Context, s *SeedLine) (*SeedLine, error) {
		return s, s.Compute(ctx, clipper, opts)
	}
	results, err := batch.Execute(ctx, fn, lines, "centerlines", opts.Workers, opts.Mode)
	for _, r := range results {
		if r.Err != nil && lines[r.Index].Status == 0 {
			// A panic escaped Compute.
			lines[r.Index].Centerline, lines[r.Index].Status, lines[r.Index].Err = lines[r.Index].Line, centerline.Failed, r.Err
		}
	}
	return lines, err
}
