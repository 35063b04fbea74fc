// Package sandbox computes deterministic sandbox paths and run IDs for
// retained combinations and materializes each sandbox as a directory of
// relative symlinks to the experiment's static and precomputed assets.
//
// Creation is at-most-once per resolved path: callers serialize through
// PathLocks, and an already-existing directory is skipped without
// re-checking its contents. A sandbox left half-built by an interrupted run
// is not detected or repaired.
package sandbox
