package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider is the read-only view of the filesystem used to locate and
// decode source files.
type FileSystemProvider interface {
	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)

	// ReadDir returns the entries directly inside path, sorted by name.
	ReadDir(path string) ([]FileInfo, error)

	// OpenFile opens a regular file for streaming reads.
	// The caller must close the returned reader.
	OpenFile(path string) (io.ReadCloser, error)

	// Join builds a child path using the provider's separator.
	Join(elem ...string) string
}
