package polygonize

import "errors"

var (
	// ErrNoCorridor indicates that no region survived the area filter.
	ErrNoCorridor = errors.New("polygonize: no corridor region")
	// ErrDimension indicates a mask whose length differs from rows×cols.
	ErrDimension = errors.New("polygonize: mask size does not match dimensions")
)
