// Package sampler drives compiled fields across a sampling grid.
//
// Each tile is sampled in two phases. Phase 1 evaluates the raw field output
// of every cell; phase 2 turns raw samples into final heights or layer
// weights. Both phases fan out one task per row, so every task writes a
// disjoint slice and no locking is needed. Phase 1 completes before phase 2
// starts.
//
// Region caches must be populated before sampling; PopulateReachableCaches
// does that for every cache reachable from a set of fields.
package sampler
