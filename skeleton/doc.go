// Package skeleton approximates the medial axis of a polygon as lines.
//
// The polygon is rasterised on a fine grid, thinned to a one-cell wide
// skeleton with the Zhang-Suen algorithm, and the longest path through each
// skeleton component is found with two cost-accumulation sweeps. Paths are
// converted back to world coordinates, smoothed with a Gaussian kernel
// (endpoints fixed) and simplified.
//
// The returned lines stop short of the polygon's ends by roughly half its
// width; callers trim and snap them to reference endpoints.
package skeleton
