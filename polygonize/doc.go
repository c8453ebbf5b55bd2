// Package polygonize turns a binary corridor mask into a single polygon.
//
// Extract labels 4-connected foreground regions, traces each region's
// pixel boundary into rings (outer plus holes) in world coordinates, drops
// regions no larger than a minimum area, and merges what remains into one
// polygon nearest-first. Pieces that do not touch are bridged by buffering
// the nearer piece by the gap plus MergeEpsilon before the union.
//
// Mask values other than 0 are foreground. Ring vertices lie on cell
// corners, so the area of a region equals its cell count times the cell
// area.
package polygonize
