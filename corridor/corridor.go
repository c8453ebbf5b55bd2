package corridor

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	beratools "github.com/appliedgrg/bera-tools"
	"github.com/appliedgrg/bera-tools/costgrid"
	"github.com/appliedgrg/bera-tools/dijkstra"
)

const (
	// DefaultThreshold is the corridor width parameter in world units used
	// when a negative threshold is requested.
	DefaultThreshold = 2.5
	// FallbackMinimum replaces the field minimum when no cell is reachable
	// from both ends.
	FallbackMinimum = 0.5
)

var (
	// ErrNoSeeds indicates an empty source or destination set.
	ErrNoSeeds = errors.New("corridor: sources and destinations are required")
	// ErrBadCellSize indicates a non-positive or non-finite cell size.
	ErrBadCellSize = errors.New("corridor: cell size must be positive")
)

// Field is a row-major normalised cost field; +Inf marks unreachable cells.
type Field []float64

// Result is a corridor over a grid of Rows×Cols cells.
type Result struct {
	Rows, Cols int
	// Field is the normalised cost field.
	Field Field
	// Mask holds 1 for corridor cells and 0 elsewhere.
	Mask []uint8
	// Minimum is the value subtracted from the summed field.
	Minimum float64
	// Threshold is the cut-off in cell units actually applied.
	Threshold float64
}

// Cells returns the number of corridor cells.
func (r *Result) Cells() int {
	n := 0
	for _, v := range r.Mask {
		n += int(v)
	}
	return n
}

// Build computes the corridor between sources and destinations on g.
// threshold is a world distance (negative selects DefaultThreshold) and
// cellSize the raster resolution used to convert it to cell units.
func Build(ctx context.Context, g *costgrid.Grid, sources, destinations []costgrid.Cell, cellSize, threshold float64) (*Result, error) {
	if g == nil {
		return nil, dijkstra.ErrNilGrid
	}
	if len(sources) == 0 || len(destinations) == 0 {
		return nil, ErrNoSeeds
	}
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadCellSize, cellSize)
	}
	if threshold < 0 {
		threshold = DefaultThreshold
	}

	from, err := dijkstra.Accumulate(g, sources, dijkstra.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("corridor: source field: %w", err)
	}
	to, err := dijkstra.Accumulate(g, destinations, dijkstra.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("corridor: destination field: %w", err)
	}
	floats.Add(from, to)

	minimum := math.Inf(1)
	for _, v := range from {
		if v < minimum {
			minimum = v
		}
	}
	if math.IsInf(minimum, 1) {
		beratools.Logger().Warn("corridor: no cell reachable from both ends", "fallback", FallbackMinimum)
		minimum = FallbackMinimum
	}
	floats.AddConst(-minimum, from)

	rows, cols := g.Dims()
	res := &Result{
		Rows:      rows,
		Cols:      cols,
		Field:     from,
		Mask:      make([]uint8, len(from)),
		Minimum:   minimum,
		Threshold: threshold / cellSize,
	}
	for i, v := range from {
		if v < res.Threshold {
			res.Mask[i] = 1
		}
	}
	beratools.Logger().Debug("corridor: built", "cells", res.Cells(), "threshold", res.Threshold, "minimum", minimum)

	return res, nil
}
