// Package results serves stored meet results: per-meet listing,
// comp-place edit batches, relay splits with leadoff propagation, and
// manual prelim/final entry.
package results
