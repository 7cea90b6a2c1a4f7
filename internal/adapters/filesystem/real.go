// Package filesystem provides the filesystem adapter used by capabilities.
package filesystem

import (
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// RealFileSystem implements ports.FileSystem on the host filesystem.
// Relative paths resolve against the root directory when one is set.
type RealFileSystem struct {
	root string
}

// NewRealFileSystem creates a RealFileSystem resolving relative paths
// against the process working directory.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{}
}

// NewRootedFileSystem creates a RealFileSystem resolving relative paths
// against root.
func NewRootedFileSystem(root string) *RealFileSystem {
	return &RealFileSystem{root: root}
}

// Root returns the directory relative paths resolve against.
func (fs *RealFileSystem) Root() string {
	return fs.root
}

func (fs *RealFileSystem) path(p string) string {
	return ports.ResolvePath(fs.root, p)
}

// ReadFile reads a file and returns its contents.
func (fs *RealFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(fs.path(path))
}

// WriteFile writes data to a file, creating missing parent directories.
func (fs *RealFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	full := fs.path(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, perm)
}

// Exists checks if a file or directory exists.
func (fs *RealFileSystem) Exists(path string) bool {
	_, err := os.Lstat(fs.path(path))
	return err == nil
}

// IsDir checks if a path is a directory.
func (fs *RealFileSystem) IsDir(path string) bool {
	info, err := os.Stat(fs.path(path))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Remove removes a file or empty directory.
func (fs *RealFileSystem) Remove(path string) error {
	return os.Remove(fs.path(path))
}

// MkdirAll creates a directory and all necessary parents.
func (fs *RealFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(fs.path(path), perm)
}

// GetFileInfo returns metadata about a file.
func (fs *RealFileSystem) GetFileInfo(path string) (ports.FileInfo, error) {
	info, err := os.Stat(fs.path(path))
	if err != nil {
		return ports.FileInfo{}, err
	}

	return ports.FileInfo{
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}, nil
}

// Ensure RealFileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*RealFileSystem)(nil)
