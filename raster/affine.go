package raster

import (
	"math"

	"github.com/paulmach/orb"
)

// Affine maps fractional (col, row) raster positions to world coordinates:
//
//	x = A*col + B*row + C
//	y = D*col + E*row + F
//
// North-up rasters have B = D = 0 and a negative E.
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// NorthUp returns the transform of a north-up raster whose top-left corner
// is (originX, originY) and whose square cells measure cellSize.
func NorthUp(originX, originY, cellSize float64) Affine {
	return Affine{
		A: cellSize, B: 0, C: originX,
		D: 0, E: -cellSize, F: originY,
	}
}

// Apply transforms a fractional (col, row) position.
func (t Affine) Apply(col, row float64) orb.Point {
	return orb.Point{
		t.A*col + t.B*row + t.C,
		t.D*col + t.E*row + t.F,
	}
}

// XY returns the world coordinate of the centre of cell (row, col).
func (t Affine) XY(row, col int) orb.Point {
	return t.Apply(float64(col)+0.5, float64(row)+0.5)
}

// Invert returns the inverse transform, or ErrSingularTransform.
func (t Affine) Invert() (Affine, error) {
	det := t.A*t.E - t.B*t.D
	if math.Abs(det) < 1e-12 {
		return Affine{}, ErrSingularTransform
	}
	inv := 1.0 / det

	return Affine{
		A: t.E * inv,
		B: -t.B * inv,
		C: (t.B*t.F - t.C*t.E) * inv,
		D: -t.D * inv,
		E: t.A * inv,
		F: (t.C*t.D - t.A*t.F) * inv,
	}, nil
}

// RowCol returns the cell containing world point p. The result may lie
// outside the raster; callers clamp or reject as they see fit.
func (t Affine) RowCol(p orb.Point) (row, col int, err error) {
	inv, err := t.Invert()
	if err != nil {
		return 0, 0, err
	}
	c := inv.A*p[0] + inv.B*p[1] + inv.C
	r := inv.D*p[0] + inv.E*p[1] + inv.F

	return int(math.Floor(r)), int(math.Floor(c)), nil
}

// CellSize returns the cell width and height in world units (both positive).
func (t Affine) CellSize() (dx, dy float64) {
	return math.Hypot(t.A, t.D), math.Hypot(t.B, t.E)
}

// Window returns the transform of a sub-raster starting at (row0, col0).
func (t Affine) Window(row0, col0 int) Affine {
	origin := t.Apply(float64(col0), float64(row0))
	w := t
	w.C, w.F = origin[0], origin[1]

	return w
}
