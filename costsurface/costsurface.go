// Package costsurface derives traversal-cost bands from input rasters.
//
// A Surface returns the cost band and an optional ancillary band (for
// Canopy, the canopy mask). Nodata cells stay nodata so that costgrid marks
// them impassable.
package costsurface

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/appliedgrg/bera-tools/raster"
)

// ErrNilRaster indicates a nil input raster.
var ErrNilRaster = errors.New("costsurface: raster is nil")

// Surface computes a cost band from r.
type Surface interface {
	Cost(r *raster.Raster) (cost, ancillary *mat.Dense, err error)
}

// Identity uses the input band as the cost band.
type Identity struct{}

// Cost returns a copy of r's band and no ancillary band.
func (Identity) Cost(r *raster.Raster) (*mat.Dense, *mat.Dense, error) {
	if r == nil || r.Band == nil {
		return nil, nil, ErrNilRaster
	}
	return mat.DenseCopyOf(r.Band), nil, nil
}

// Canopy turns a canopy height model into a cost band. Heights are
// standardised against the valid cells of the raster and passed through a
// logistic curve, so open ground costs about MinCost and tall canopy
// approaches MaxCost.
type Canopy struct {
	// HeightThreshold is the height from which a cell counts as canopy.
	HeightThreshold float64
	// MinCost and MaxCost bound the cost range.
	MinCost, MaxCost float64
	// Steepness scales the standardised height before the logistic curve.
	Steepness float64
}

// DefaultCanopy returns the canopy cost parameters used by the tools.
func DefaultCanopy() Canopy {
	return Canopy{HeightThreshold: 1, MinCost: 1, MaxCost: 10, Steepness: 1.5}
}

// Cost returns the cost band and the canopy mask (1 canopy, 0 open,
// nodata where the input is nodata).
func (c Canopy) Cost(r *raster.Raster) (*mat.Dense, *mat.Dense, error) {
	if r == nil || r.Band == nil {
		return nil, nil, ErrNilRaster
	}
	rows, cols := r.Dims()
	valid := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := r.Band.At(i, j); !r.IsNodata(v) {
				valid = append(valid, v)
			}
		}
	}
	mean, std := 0.0, 0.0
	if len(valid) > 1 {
		mean, std = stat.MeanStdDev(valid, nil)
	} else if len(valid) == 1 {
		mean = valid[0]
	}

	cost := mat.NewDense(rows, cols, nil)
	mask := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := r.Band.At(i, j)
			if r.IsNodata(v) {
				cost.Set(i, j, r.Meta.Nodata)
				mask.Set(i, j, r.Meta.Nodata)
				continue
			}
			z := 0.0
			if std > 0 {
				z = (v - mean) / std
			}
			cost.Set(i, j, c.MinCost+(c.MaxCost-c.MinCost)/(1+math.Exp(-c.Steepness*z)))
			if v >= c.HeightThreshold {
				mask.Set(i, j, 1)
			}
		}
	}
	return cost, mask, nil
}
