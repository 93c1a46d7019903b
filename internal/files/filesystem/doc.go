// Package filesystem abstracts the read-only filesystem access needed to
// locate and decode source files.
//
// Implementations:
//   - OSFileSystem: production implementation backed by package os
//   - MemoryFileSystem: in-memory implementation for tests
package filesystem
