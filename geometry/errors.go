package geometry

import "errors"

// Sentinel errors for geometric degeneracy. Callers map them to a terminal
// status; none of them is fatal to a batch.
var (
	// ErrEmptyGeometry indicates an operation produced or received nothing.
	ErrEmptyGeometry = errors.New("geometry: empty geometry")
	// ErrMultiPolygon indicates several disjoint regions where one was required.
	ErrMultiPolygon = errors.New("geometry: multi-polygon where a single polygon is required")
	// ErrSplitFailed indicates a polygon did not split into two pieces.
	ErrSplitFailed = errors.New("geometry: polygon split failed")
	// ErrDegenerateLine indicates a line without direction (zero length).
	ErrDegenerateLine = errors.New("geometry: degenerate line")
	// ErrBackend indicates the boolean-operation backend failed on its input.
	ErrBackend = errors.New("geometry: boolean operation failed")
)
