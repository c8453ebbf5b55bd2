package raster

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/mat"
)

// DefaultNodata is used when a source does not declare a nodata value.
const DefaultNodata = -9999.0

// Sentinel errors for raster operations.
var (
	// ErrSingularTransform indicates an affine transform with zero determinant.
	ErrSingularTransform = errors.New("raster: affine transform is not invertible")
	// ErrEmptyRaster indicates a raster with no rows or no columns.
	ErrEmptyRaster = errors.New("raster: raster must have at least one row and one column")
	// ErrOutside indicates a clip window that does not overlap the raster.
	ErrOutside = errors.New("raster: clip window lies outside the raster")
	// ErrBadRadius indicates a non-positive clip radius.
	ErrBadRadius = errors.New("raster: clip radius must be positive")
	// ErrEmptyLine indicates a clip line with fewer than two points.
	ErrEmptyLine = errors.New("raster: clip line needs at least two points")
	// ErrBadHeader indicates a malformed ASCII grid header.
	ErrBadHeader = errors.New("raster: malformed ASCII grid header")
)

// Metadata describes how a band sits in the world.
type Metadata struct {
	Transform Affine
	CRS       string
	Nodata    float64
}

// Raster is a single band plus its metadata. Band is never shared between
// two Rasters returned by this package.
type Raster struct {
	Band *mat.Dense
	Meta Metadata
}

// Clipper is the clipping service consumed by the per-feature pipeline.
type Clipper interface {
	Clip(line orb.LineString, radius float64) (*Raster, error)
}

// New wraps band and meta. It returns ErrEmptyRaster for a nil or empty band.
func New(band *mat.Dense, meta Metadata) (*Raster, error) {
	if band == nil || band.IsEmpty() {
		return nil, ErrEmptyRaster
	}

	return &Raster{Band: band, Meta: meta}, nil
}

// Dims returns the number of rows and columns.
func (r *Raster) Dims() (rows, cols int) {
	return r.Band.Dims()
}

// Bound returns the world extent of the raster.
func (r *Raster) Bound() orb.Bound {
	rows, cols := r.Dims()
	t := r.Meta.Transform
	b := orb.Bound{Min: t.Apply(0, 0), Max: t.Apply(0, 0)}
	b = b.Extend(t.Apply(float64(cols), 0))
	b = b.Extend(t.Apply(0, float64(rows)))

	return b.Extend(t.Apply(float64(cols), float64(rows)))
}

// IsNodata reports whether v is the raster's nodata value or NaN.
func (r *Raster) IsNodata(v float64) bool {
	return math.IsNaN(v) || v == r.Meta.Nodata
}

// Clip cuts the window covering line buffered by radius and sets every cell
// whose centre lies farther than radius from the line to nodata. The returned
// raster owns a fresh band.
func (r *Raster) Clip(line orb.LineString, radius float64) (*Raster, error) {
	if radius <= 0 || math.IsNaN(radius) {
		return nil, ErrBadRadius
	}
	if len(line) < 2 {
		return nil, ErrEmptyLine
	}

	rows, cols := r.Dims()
	t := r.Meta.Transform
	inv, err := t.Invert()
	if err != nil {
		return nil, err
	}

	// Window in raster space from the buffered line bound.
	b := line.Bound().Pad(radius)
	r0, c0, r1, c1 := rows, cols, -1, -1
	for _, p := range []orb.Point{b.Min, b.Max, {b.Min[0], b.Max[1]}, {b.Max[0], b.Min[1]}} {
		c := inv.A*p[0] + inv.B*p[1] + inv.C
		rr := inv.D*p[0] + inv.E*p[1] + inv.F
		r0 = min(r0, int(math.Floor(rr)))
		c0 = min(c0, int(math.Floor(c)))
		r1 = max(r1, int(math.Ceil(rr)))
		c1 = max(c1, int(math.Ceil(c)))
	}
	r0, c0 = max(r0, 0), max(c0, 0)
	r1, c1 = min(r1, rows), min(c1, cols)
	if r0 >= r1 || c0 >= c1 {
		return nil, fmt.Errorf("%w: bound %v", ErrOutside, b)
	}

	band := mat.NewDense(r1-r0, c1-c0, nil)
	wt := t.Window(r0, c0)
	for i := 0; i < r1-r0; i++ {
		for j := 0; j < c1-c0; j++ {
			if planar.DistanceFrom(line, wt.XY(i, j)) > radius {
				band.Set(i, j, r.Meta.Nodata)
				continue
			}
			band.Set(i, j, r.Band.At(r0+i, c0+j))
		}
	}

	return &Raster{
		Band: band,
		Meta: Metadata{Transform: wt, CRS: r.Meta.CRS, Nodata: r.Meta.Nodata},
	}, nil
}
