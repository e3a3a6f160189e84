// Package testutil provides utilities for testing dotman components.
//
// Key components:
//   - MemoryFS: in-memory types.FS with real symlink semantics, per-operation
//     error injection and snapshots for before/after comparisons
//   - File helpers (CreateFile, CreateSymlink, AssertSymlink, ...) for tests
//     that run against real temporary directories
//
// Usage guidelines:
//   - Reconciler unit tests use MemoryFS for speed and isolation
//   - Integration tests use t.TempDir() and the OS filesystem
package testutil
