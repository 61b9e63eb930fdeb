// Package types defines the shared vocabulary of the listkit engine: store
// kinds, typed errors, lookup outcomes and memory accounting records.
//
// Design goals:
//   - One status model for every operation: nil on success, otherwise an
//     error carrying a stable ErrKind (see KindOf and StatusString).
//   - Store kinds are single bits so invalid combinations are detectable.
//   - Memory records are plain values, safe to copy and to serialise.
//
// This package has no dependencies beyond the standard library.
package types
