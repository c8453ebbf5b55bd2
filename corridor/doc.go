// Package corridor builds the least-cost corridor between two cell sets.
//
// Build accumulates a cost field from the sources and one from the
// destinations, sums them and subtracts the smallest finite total. A cell
// then holds the extra cost of the cheapest source→destination route forced
// through it; 0 along the least-cost path itself. Cells below the threshold
// (expressed in world distance and converted to cell units) form the
// corridor mask.
//
// The mask grows monotonically with the threshold and unreachable or
// impassable cells never belong to it.
package corridor
