// Package centerline extracts the centerline of a corridor polygon.
//
// Find runs a fixed pipeline: validate and clean the polygon, skeletonise
// it, trim the skeleton at both ends, snap its ends to the reference line
// (the least-cost path or seed line) and check the result. A centerline
// that fails the check is regenerated by cutting the polygon in two across
// the reference line's midpoint and solving each half recursively, up to
// Params.MaxDepth levels.
//
// Find is total: it never panics and never returns an error. Every failure
// maps to a Status and the reference line is returned in place of a
// centerline.
package centerline
