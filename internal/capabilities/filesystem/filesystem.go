// Package filesystem provides the Filesystem capability: file checks and
// edits relative to a current directory.
package filesystem

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/felixgeelhaar/stepwise/internal/capabilities/args"
	"github.com/felixgeelhaar/stepwise/internal/domain/capability"
	"github.com/felixgeelhaar/stepwise/internal/domain/step"
	"github.com/felixgeelhaar/stepwise/internal/ports"
)

// Name is the capability name.
const Name = "Filesystem"

// Filesystem holds the current directory and the last opened file.
type Filesystem struct {
	fs ports.FileSystem

	mu       sync.Mutex
	dir      string
	file     string
	contents string
	opened   bool
}

// New creates the capability rooted at dir.
func New(fs ports.FileSystem, dir string) *Filesystem {
	return &Filesystem{fs: fs, dir: dir}
}

// Dir returns the current directory.
func (f *Filesystem) Dir() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dir
}

// Provider exposes the actions for registration.
func (f *Filesystem) Provider() *capability.Provider {
	return &capability.Provider{
		Name: Name,
		Actions: map[string]ports.Action{
			"amInPath":          f.amInPath,
			"writeToFile":       f.writeToFile,
			"seeFileFound":      f.seeFileFound,
			"dontSeeFileFound":  f.dontSeeFileFound,
			"openFile":          f.openFile,
			"seeInThisFile":     f.seeInThisFile,
			"dontSeeInThisFile": f.dontSeeInThisFile,
			"deleteFile":        f.deleteFile,
		},
	}
}

func (f *Filesystem) resolve(name string) string {
	return ports.ResolvePath(f.dir, name)
}

func (f *Filesystem) amInPath(_ context.Context, a ...any) (any, error) {
	path, err := args.String(a, 0, "path")
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	target := f.resolve(path)
	if !f.fs.IsDir(target) {
		return nil, fmt.Errorf("directory %s does not exist", target)
	}
	f.dir = filepath.Clean(target)
	return f.dir, nil
}

func (f *Filesystem) writeToFile(_ context.Context, a ...any) (any, error) {
	name, err := args.String(a, 0, "name")
	if err != nil {
		return nil, err
	}
	contents, err := args.String(a, 1, "contents")
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fs.WriteFile(f.resolve(name), []byte(contents), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil, nil
}

func (f *Filesystem) seeFileFound(_ context.Context, a ...any) (any, error) {
	name, err := args.String(a, 0, "name")
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.fs.Exists(f.resolve(name)) {
		return nil, step.Failf("file %s not found in %s", name, f.dir)
	}
	return nil, nil
}

func (f *Filesystem) dontSeeFileFound(_ context.Context, a ...any) (any, error) {
	name, err := args.String(a, 0, "name")
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fs.Exists(f.resolve(name)) {
		return nil, step.Failf("file %s found in %s", name, f.dir)
	}
	return nil, nil
}

func (f *Filesystem) openFile(_ context.Context, a ...any) (any, error) {
	name, err := args.String(a, 0, "name")
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.fs.ReadFile(f.resolve(name))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	f.file = name
	f.contents = string(data)
	f.opened = true
	return f.contents, nil
}

func (f *Filesystem) seeInThisFile(_ context.Context, a ...any) (any, error) {
	text, err := args.String(a, 0, "text")
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.opened {
		return nil, step.Failf("no file opened")
	}
	if !strings.Contains(f.contents, text) {
		return nil, step.Failf("%q not found in %s", text, f.file)
	}
	return nil, nil
}

func (f *Filesystem) dontSeeInThisFile(_ context.Context, a ...any) (any, error) {
	text, err := args.String(a, 0, "text")
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.opened {
		return nil, step.Failf("no file opened")
	}
	if strings.Contains(f.contents, text) {
		return nil, step.Failf("%q found in %s", text, f.file)
	}
	return nil, nil
}

func (f *Filesystem) deleteFile(_ context.Context, a ...any) (any, error) {
	name, err := args.String(a, 0, "name")
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fs.Remove(f.resolve(name)); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil, nil
}
