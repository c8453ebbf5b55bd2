// Package dijkstra defines core types and configuration options for the
// grid shortest-path and cost-accumulation solvers.
package dijkstra

import (
	"context"
	"errors"
	"math"

	"github.com/appliedgrg/bera-tools/costgrid"
)

// Sentinel errors returned by the solvers.
var (
	// ErrNilGrid indicates that a nil *costgrid.Grid was passed.
	ErrNilGrid = errors.New("dijkstra: grid is nil")

	// ErrNoDestinations indicates that Shortest was called without destinations.
	ErrNoDestinations = errors.New("dijkstra: at least one destination is required")

	// ErrBadMaxCost indicates that MaxCost was set to a negative value.
	ErrBadMaxCost = errors.New("dijkstra: MaxCost must be non-negative")

	// ErrNoPath indicates that no least-cost path connects the endpoints.
	ErrNoPath = errors.New("dijkstra: no least-cost path found")

	// ErrShortLine indicates a seed line with fewer than two points.
	ErrShortLine = errors.New("dijkstra: line needs at least two points")
)

// Path is an ordered chain of cells from source to destination with the
// cumulative cost at each cell. Cells and Costs always have equal length.
type Path struct {
	Cells []costgrid.Cell
	Costs []float64
}

// Cost returns the total cost of the path, or 0 for an empty path.
func (p Path) Cost() float64 {
	if len(p.Costs) == 0 {
		return 0
	}
	return p.Costs[len(p.Costs)-1]
}

// Strategy selects the shortest-path implementation used by LeastCostPath.
type Strategy int

const (
	// StrategyHeap runs the package's own lazy-deletion heap search.
	StrategyHeap Strategy = iota
	// StrategyRoute hands the grid to gonum's graph/path Dijkstra
	// (route-through-array). Equal cost, possibly different tie-breaking.
	StrategyRoute
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case StrategyHeap:
		return "heap"
	case StrategyRoute:
		return "route"
	default:
		return "unknown"
	}
}

// Options configures the solvers.
//
// Ctx         – cancellation signal, checked once per settled cell.
// FindNearest – stop at the first destination reached (default true);
//
//	when false the search continues until every destination is reached.
//
// MaxCost     – cells whose accumulated cost would exceed MaxCost are not
//
//	explored. Default +Inf.
type Options struct {
	Ctx         context.Context
	FindNearest bool
	MaxCost     float64
}

// Option represents a functional option for configuring the solvers.
type Option func(*Options)

// WithContext sets the cancellation context.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		o.Ctx = ctx
	}
}

// WithFindNearest toggles first-destination termination.
func WithFindNearest(nearest bool) Option {
	return func(o *Options) {
		o.FindNearest = nearest
	}
}

// WithMaxCost caps the explored cost. Negative or NaN values panic with
// ErrBadMaxCost, signalling invalid configuration early.
func WithMaxCost(max float64) Option {
	return func(o *Options) {
		if max < 0 || math.IsNaN(max) {
			panic(ErrBadMaxCost.Error())
		}
		o.MaxCost = max
	}
}

// DefaultOptions returns the defaults: background context, FindNearest on,
// no cost cap.
func DefaultOptions() Options {
	return Options{
		Ctx:         context.Background(),
		FindNearest: true,
		MaxCost:     math.Inf(1),
	}
}

func buildOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Ctx == nil {
		cfg.Ctx = context.Background()
	}

	return cfg
}
