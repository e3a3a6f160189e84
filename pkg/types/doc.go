// Package types defines the core types and interfaces shared across dotman.
// This includes the Mapping data model, the per-mapping Result reported by
// the link reconciler, and the narrow capabilities (FS, Expander, Confirmer)
// the reconciler is built from.
package types
