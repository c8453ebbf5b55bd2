// Package raster holds a single-band raster with its georeferencing and the
// clipping service the centerline pipeline consumes.
//
// A Raster pairs a gonum *mat.Dense band (row-major, row 0 at the top) with
// Metadata carrying the affine geotransform, the CRS string and the nodata
// value. Clip cuts a window around a line and masks every cell whose centre
// lies farther than the clip radius from the line.
//
// The only on-disk format understood here is the ESRI ASCII grid; see
// ReadASCIIGrid.
package raster
