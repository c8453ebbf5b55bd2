// Package beratools computes forest-road centerlines and corridor footprints
// from a raster cost surface and vector seed lines.
//
// 🚀 What does it do?
//
//	For every seed line the pipeline runs, in order:
//		• CostGrid: classify a clipped cost raster into passable / impassable cells
//		• Least-cost path: 8-connected Dijkstra between the seed line endpoints
//		• Corridor: bidirectional cost accumulation thresholded into a mask
//		• Polygon: raster-to-vector tracing, merged into one region
//		• Centerline: skeleton of the corridor polygon snapped to the endpoints,
//		  with a recursive split-and-retry when the naive skeleton is degenerate
//
// Packages:
//
//	raster/      — raster band + geotransform, clipping, ESRI ASCII grid reader
//	costgrid/    — traversal-cost grid with passability mask
//	costsurface/ — cost surfaces derived from raw rasters (canopy height)
//	dijkstra/    — grid shortest paths and multi-source cost accumulation
//	corridor/    — least-cost corridor mask
//	polygonize/  — mask → single corridor polygon
//	geometry/    — polygon/line helpers (buffer, union, split, snap, merge)
//	skeleton/    — raster skeletonization of polygons
//	centerline/  — centerline state machine
//	seedline/    — per-feature pipeline, GeoJSON input and output
//	batch/       — sequential / concurrent execution of per-feature work
//	config/      — JSON run configuration
//	store/       — SQLite run store with embedded migrations
//
// Logging is silent by default; see SetLogger.
package beratools
