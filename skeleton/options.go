package skeleton

import "errors"

var (
	// ErrEmptyPolygon indicates a polygon without a usable outer ring.
	ErrEmptyPolygon = errors.New("skeleton: empty polygon")
	// ErrNoSkeleton indicates that thinning left no path of two or more cells.
	ErrNoSkeleton = errors.New("skeleton: no skeleton path")
)

// Options controls rasterisation and post-processing.
type Options struct {
	// CellSize is the rasterisation resolution in world units.
	CellSize float64
	// MaxCells caps the raster size; CellSize grows to respect it.
	MaxCells int
	// SmoothSigma is the Gaussian kernel width in vertices; 0 disables smoothing.
	SmoothSigma float64
	// Simplify is the Douglas-Peucker tolerance applied after smoothing.
	Simplify float64
	// MinFraction drops component paths shorter than this share of the
	// longest one.
	MinFraction float64
}

// DefaultOptions returns the options used for corridor centerlines.
func DefaultOptions() Options {
	return Options{
		CellSize:    0.5,
		MaxCells:    4_000_000,
		SmoothSigma: 0.8,
		Simplify:    0.05,
		MinFraction: 0.25,
	}
}
