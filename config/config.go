// Package config loads the JSON run configuration of the centerline tool.
//
// Every field is optional: a nil pointer means "use the default", which the
// Get* accessors supply. Load validates what is present.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/appliedgrg/bera-tools/batch"
	"github.com/appliedgrg/bera-tools/centerline"
	"github.com/appliedgrg/bera-tools/costsurface"
	"github.com/appliedgrg/bera-tools/dijkstra"
	"github.com/appliedgrg/bera-tools/seedline"
)

// maxFileSize caps the configuration file size.
const maxFileSize = 1 << 20

// Surface names accepted by the cost_surface field.
const (
	SurfaceIdentity = "identity"
	SurfaceCanopy   = "canopy"
)

// Config is the root configuration.
type Config struct {
	// Pipeline
	LineRadius        *float64 `json:"line_radius,omitempty"`
	CorridorThreshold *float64 `json:"corridor_threshold,omitempty"`
	MinCorridorArea   *float64 `json:"min_corridor_area,omitempty"`
	UseRouteStrategy  *bool    `json:"use_route_strategy,omitempty"`
	CostSurface       *string  `json:"cost_surface,omitempty"`
	CanopyThreshold   *float64 `json:"canopy_threshold,omitempty"`

	// Centerline
	BufferClip       *float64 `json:"buffer_clip,omitempty"`
	SegmentizeLength *float64 `json:"segmentize_length,omitempty"`
	SimplifyLength   *float64 `json:"simplify_length,omitempty"`
	SmoothSigma      *float64 `json:"smooth_sigma,omitempty"`
	CleanupArea      *float64 `json:"cleanup_area,omitempty"`
	MaxDepth         *int     `json:"max_depth,omitempty"`
	SkeletonCellSize *float64 `json:"skeleton_cell_size,omitempty"`
	DeleteHoles      *bool    `json:"delete_holes,omitempty"`
	SimplifyPolygon  *bool    `json:"simplify_polygon,omitempty"`

	// Execution
	Workers    *int  `json:"workers,omitempty"`
	Sequential *bool `json:"sequential,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrInt(v int) *int             { return &v }

// Empty returns a Config with every field unset.
func Empty() *Config { return &Config{} }

// Load reads and validates a JSON configuration file. Omitted fields keep
// their defaults.
func Load(path string) (*Config, error) {
	clean := filepath.Clean(path)
	if ext := filepath.Ext(clean); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}
	info, err := os.Stat(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}
	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields that are set.
func (c *Config) Validate() error {
	positive := map[string]*float64{
		"line_radius":        c.LineRadius,
		"min_corridor_area":  c.MinCorridorArea,
		"segmentize_length":  c.SegmentizeLength,
		"skeleton_cell_size": c.SkeletonCellSize,
	}
	for name, v := range positive {
		if v != nil && !(*v > 0) {
			return fmt.Errorf("%s must be positive, got %v", name, *v)
		}
	}
	nonNegative := map[string]*float64{
		"buffer_clip":     c.BufferClip,
		"simplify_length": c.SimplifyLength,
		"smooth_sigma":    c.SmoothSigma,
		"cleanup_area":    c.CleanupArea,
	}
	for name, v := range nonNegative {
		if v != nil && !(*v >= 0) {
			return fmt.Errorf("%s must be non-negative, got %v", name, *v)
		}
	}
	if c.MaxDepth != nil && (*c.MaxDepth < 0 || *c.MaxDepth > 10) {
		return fmt.Errorf("max_depth must be between 0 and 10, got %d", *c.MaxDepth)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.CostSurface != nil && *c.CostSurface != SurfaceIdentity && *c.CostSurface != SurfaceCanopy {
		return fmt.Errorf("cost_surface must be %q or %q, got %q", SurfaceIdentity, SurfaceCanopy, *c.CostSurface)
	}
	return nil
}

// GetLineRadius returns line_radius or the default.
func (c *Config) GetLineRadius() float64 {
	if c.LineRadius == nil {
		return seedline.DefaultOptions().Radius
	}
	return *c.LineRadius
}

// GetCorridorThreshold returns corridor_threshold or the default. A
// negative value is passed through; the corridor builder maps it to its
// own default.
func (c *Config) GetCorridorThreshold() float64 {
	if c.CorridorThreshold == nil {
		return seedline.DefaultOptions().CorridorThreshold
	}
	return *c.CorridorThreshold
}

// GetMinCorridorArea returns min_corridor_area or the default.
func (c *Config) GetMinCorridorArea() float64 {
	if c.MinCorridorArea == nil {
		return seedline.DefaultOptions().MinArea
	}
	return *c.MinCorridorArea
}

// GetStrategy returns the shortest-path strategy.
func (c *Config) GetStrategy() dijkstra.Strategy {
	if c.UseRouteStrategy != nil && *c.UseRouteStrategy {
		return dijkstra.StrategyRoute
	}
	return dijkstra.StrategyHeap
}

// GetSurface returns the configured cost surface.
func (c *Config) GetSurface() costsurface.Surface {
	if c.CostSurface == nil || *c.CostSurface != SurfaceCanopy {
		return costsurface.Identity{}
	}
	cs := costsurface.DefaultCanopy()
	if c.CanopyThreshold != nil {
		cs.HeightThreshold = *c.CanopyThreshold
	}
	return cs
}

// GetWorkers returns workers or 0 (one per CPU).
func (c *Config) GetWorkers() int {
	if c.Workers == nil {
		return 0
	}
	return *c.Workers
}

// GetMode returns the batch scheduling mode.
func (c *Config) GetMode() batch.Mode {
	if c.Sequential != nil && *c.Sequential {
		return batch.ModeSequential
	}
	return batch.ModeConcurrent
}

// CenterlineParams returns centerline.DefaultParams with the configured
// overrides applied.
func (c *Config) CenterlineParams() centerline.Params {
	p := centerline.DefaultParams()
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.BufferClip, c.BufferClip)
	set(&p.SegmentizeLength, c.SegmentizeLength)
	set(&p.SimplifyLength, c.SimplifyLength)
	set(&p.SmoothSigma, c.SmoothSigma)
	set(&p.CleanupArea, c.CleanupArea)
	set(&p.Skeleton.CellSize, c.SkeletonCellSize)
	if c.MaxDepth != nil {
		p.MaxDepth = *c.MaxDepth
	}
	if c.DeleteHoles != nil {
		p.DeleteHoles = *c.DeleteHoles
	}
	if c.SimplifyPolygon != nil {
		p.SimplifyPolygon = *c.SimplifyPolygon
	}
	return p
}

// SeedlineOptions assembles the pipeline options.
func (c *Config) SeedlineOptions() seedline.Options {
	return seedline.Options{
		Radius:            c.GetLineRadius(),
		CorridorThreshold: c.GetCorridorThreshold(),
		MinArea:           c.GetMinCorridorArea(),
		Strategy:          c.GetStrategy(),
		Surface:           c.GetSurface(),
		Params:            c.CenterlineParams(),
		Workers:           c.GetWorkers(),
		Mode:              c.GetMode(),
	}
}
