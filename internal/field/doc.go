// Package field is the evaluation library: a closed set of scalar field
// variants, each a pure function of a 3D coordinate and its bound children.
//
// # Arena
//
// Fields live in an Arena and are addressed by a stable integer ID. Children
// are stored as ID slices, so one field may feed many parents (portals,
// multi-output nodes) without copying. Arena.Bind refuses any binding that
// would close a cycle, which keeps evaluation total.
//
// # Variants
//
// Every variant implements the sealed Op interface. Evaluation is a single
// type switch in Arena.eval; there is no open-ended dispatch.
//
// # Thread-Safety
//
// An Arena is built by a single goroutine. Once built, Evaluate may be called
// from any number of goroutines. The only mutable state is a RegionCache
// grid, which must be populated before any concurrent evaluation reads
// through it.
package field
