// Package registry provides the central "glue" between discovered metric
// manifests and compiled metric implementations.
//
// Metric packages register their implementations into a Table under the
// identifiers used by manifests (e.g. "m1"). At startup the table is joined
// with the catalog's descriptors: each pairing is structurally validated
// (the implementation must offer the Execute capability) and memoized, and
// the survivors form an immutable Registry snapshot.
//
// The snapshot is never mutated. A catalog change produces a brand-new
// snapshot that is atomically swapped into a Handle, so an in-flight run
// observes either the fully-old or fully-new registry, never a partially
// constructed one.
package registry
