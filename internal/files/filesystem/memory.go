package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory entries.
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryEntry struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements FileSystemProvider in memory for tests.
// Paths use forward slashes; relative paths resolve against root.
type MemoryFileSystem struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	root    string
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)

// NewMemoryFileSystem creates an in-memory filesystem with an empty root directory.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    path.Clean(filepath.ToSlash(root)),
	}
	mfs.addDir(mfs.root)
	return mfs
}

// AddFile adds a file, creating parent directories as needed.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	abs := mfs.resolve(filePath)
	mfs.entries[abs] = &memoryEntry{
		content: []byte(content),
		info: &memoryFileInfo{
			name:    path.Base(abs),
			size:    int64(len(content)),
			mode:    0644,
			modTime: time.Now(),
		},
	}
	for dir := path.Dir(abs); dir != "/" && dir != "."; dir = path.Dir(dir) {
		if _, ok := mfs.entries[dir]; ok {
			break
		}
		mfs.addDir(dir)
	}
}

// AddDir adds an empty directory.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.addDir(mfs.resolve(dirPath))
}

func (mfs *MemoryFileSystem) addDir(abs string) {
	mfs.entries[abs] = &memoryEntry{
		info: &memoryFileInfo{
			name:    path.Base(abs),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
		},
	}
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	entry, ok := mfs.entries[mfs.resolve(statPath)]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
	}
	return entry.info, nil
}

func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	abs := mfs.resolve(dirPath)
	dir, ok := mfs.entries[abs]
	if !ok {
		return nil, fmt.Errorf("failed to read directory: %w", &fs.PathError{Op: "readdir", Path: dirPath, Err: fs.ErrNotExist})
	}
	if !dir.info.IsDir() {
		return nil, fmt.Errorf("failed to read directory: %s is not a directory", dirPath)
	}

	prefix := strings.TrimSuffix(abs, "/") + "/"
	var result []FileInfo
	for p, entry := range mfs.entries {
		if !strings.HasPrefix(p, prefix) || strings.Contains(p[len(prefix):], "/") {
			continue
		}
		result = append(result, entry.info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result, nil
}

func (mfs *MemoryFileSystem) OpenFile(filePath string) (io.ReadCloser, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	entry, ok := mfs.entries[mfs.resolve(filePath)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	if entry.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return io.NopCloser(bytes.NewReader(entry.content)), nil
}

func (mfs *MemoryFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}
