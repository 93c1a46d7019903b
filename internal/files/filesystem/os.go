package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// OSFileSystem implements FileSystemProvider for the OS filesystem.
type OSFileSystem struct{}

var _ FileSystemProvider = (*OSFileSystem)(nil)

// NewOSFileSystem creates a new OS filesystem provider.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (p *OSFileSystem) Stat(path string) (FileInfo, error) {
	return os.Stat(path)
}

func (p *OSFileSystem) ReadDir(path string) ([]FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	result := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to get file info for %s: %w", entry.Name(), err)
		}
		result = append(result, info)
	}
	return result, nil
}

func (p *OSFileSystem) OpenFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (p *OSFileSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}
