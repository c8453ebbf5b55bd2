// Package geometry provides the planar polygon and line operations the
// corridor and centerline stages are built from.
//
// Polygonal results are returned as a Shape, a tagged union over
// {Empty, Single, Multi} decided where the result is produced, so callers
// switch on Kind once instead of inspecting geometry types repeatedly.
//
// Geometry is modelled with github.com/paulmach/orb (distances, simplification,
// resampling). Boolean operations (Union, Intersection, and the Buffer and
// Split built on them) go through github.com/ctessum/geom; a panic inside
// that backend surfaces as ErrBackend.
//
// Failures are typed: ErrEmptyGeometry, ErrMultiPolygon, ErrSplitFailed,
// ErrDegenerateLine, ErrBackend. The centerline extractor maps each of them
// to a terminal status.
package geometry
