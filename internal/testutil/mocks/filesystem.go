package mocks

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// FileSystem is a thread-safe in-memory test double for ports.FileSystem.
// Writing a file creates its parent directories.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
}

// NewFileSystem creates a new FileSystem mock.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// AddFile adds a file to the mock filesystem.
func (fs *FileSystem) AddFile(path string, content string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.put(path, []byte(content))
}

// AddDir adds a directory and its parents to the mock filesystem.
func (fs *FileSystem) AddDir(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.mkdirAll(path)
}

// ReadFile reads a file from the mock filesystem.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if content, ok := fs.files[filepath.Clean(path)]; ok {
		return append([]byte(nil), content...), nil
	}
	return nil, fmt.Errorf("file not found: %s: %w", path, os.ErrNotExist)
}

// WriteFile writes a file to the mock filesystem.
func (fs *FileSystem) WriteFile(path string, data []byte, _ os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.dirs[filepath.Clean(path)] {
		return fmt.Errorf("is a directory: %s", path)
	}
	fs.put(path, append([]byte(nil), data...))
	return nil
}

// Exists checks if a file or directory exists in the mock filesystem.
func (fs *FileSystem) Exists(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	path = filepath.Clean(path)
	_, fileExists := fs.files[path]
	return fileExists || fs.dirs[path]
}

// IsDir checks if a path is a directory in the mock filesystem.
func (fs *FileSystem) IsDir(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.dirs[filepath.Clean(path)]
}

// Remove removes a file or directory from the mock filesystem.
func (fs *FileSystem) Remove(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	path = filepath.Clean(path)
	if _, ok := fs.files[path]; !ok && !fs.dirs[path] {
		return fmt.Errorf("file not found: %s: %w", path, os.ErrNotExist)
	}
	delete(fs.files, path)
	delete(fs.dirs, path)
	return nil
}

// MkdirAll creates a directory in the mock filesystem.
func (fs *FileSystem) MkdirAll(path string, _ os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.mkdirAll(path)
	return nil
}

// GetFileInfo returns metadata about a file in the mock filesystem.
func (fs *FileSystem) GetFileInfo(path string) (ports.FileInfo, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	path = filepath.Clean(path)

	if content, ok := fs.files[path]; ok {
		return ports.FileInfo{
			Size:    int64(len(content)),
			Mode:    0o644,
			ModTime: time.Now(),
		}, nil
	}

	if fs.dirs[path] {
		return ports.FileInfo{
			Mode:    os.ModeDir | 0o755,
			ModTime: time.Now(),
			IsDir:   true,
		}, nil
	}

	return ports.FileInfo{}, fmt.Errorf("file not found: %s: %w", path, os.ErrNotExist)
}

// Files returns the paths of every file.
func (fs *FileSystem) Files() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	paths := make([]string, 0, len(fs.files))
	for path := range fs.files {
		paths = append(paths, path)
	}
	return paths
}

func (fs *FileSystem) put(path string, data []byte) {
	path = filepath.Clean(path)
	fs.files[path] = data
	fs.mkdirAll(filepath.Dir(path))
}

func (fs *FileSystem) mkdirAll(path string) {
	for path = filepath.Clean(path); ; path = filepath.Dir(path) {
		fs.dirs[path] = true
		if parent := filepath.Dir(path); parent == path {
			return
		}
	}
}

// Ensure FileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*FileSystem)(nil)
