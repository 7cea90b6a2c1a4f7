//go:build e2e

// Package framework provides the E2E test infrastructure for stepwise.
package framework

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

// Environment represents an isolated test environment for E2E tests.
type Environment struct {
	t          *testing.T
	rootDir    string
	workDir    string
	binaryPath string
}

var (
	buildOnce   sync.Once
	binaryPath  string
	buildErr    error
	projectRoot string
)

// findProjectRoot locates the project root directory.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// buildBinary builds the stepwise binary once per test run.
func buildBinary(t *testing.T) (string, error) {
	buildOnce.Do(func() {
		projectRoot, buildErr = findProjectRoot()
		if buildErr != nil {
			return
		}

		binaryPath = filepath.Join(os.TempDir(), "stepwise-e2e-test")

		cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/stepwise")
		cmd.Dir = projectRoot

		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			buildErr = err
			t.Logf("Build stderr: %s", stderr.String())
			return
		}
	})

	return binaryPath, buildErr
}

// NewEnvironment creates a new isolated test environment.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	binary, err := buildBinary(t)
	if err != nil {
		t.Fatalf("Failed to build binary: %v", err)
	}

	rootDir := t.TempDir()
	workDir := filepath.Join(rootDir, "work")
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		t.Fatalf("Failed to create work directory: %v", err)
	}

	return &Environment{
		t:          t,
		rootDir:    rootDir,
		workDir:    workDir,
		binaryPath: binary,
	}
}

// WorkDir returns the directory commands run in.
func (e *Environment) WorkDir() string {
	return e.workDir
}

// RootDir returns the path to the test root directory.
func (e *Environment) RootDir() string {
	return e.rootDir
}

// BinaryPath returns the path to the built binary.
func (e *Environment) BinaryPath() string {
	return e.binaryPath
}

// Path returns the absolute path of a file relative to the work directory.
func (e *Environment) Path(path string) string {
	return filepath.Join(e.workDir, path)
}

// WriteFile writes content to a file in the work directory.
func (e *Environment) WriteFile(path, content string) string {
	e.t.Helper()

	fullPath := e.Path(path)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		e.t.Fatalf("Failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		e.t.Fatalf("Failed to write file %s: %v", fullPath, err)
	}
	return fullPath
}

// WriteConfig writes a stepwise.yaml config file.
func (e *Environment) WriteConfig(content string) string {
	e.t.Helper()
	return e.WriteFile("stepwise.yaml", content)
}

// FileExists checks if a file exists in the work directory.
func (e *Environment) FileExists(path string) bool {
	_, err := os.Stat(e.Path(path))
	return err == nil
}

// ReadFile reads a file from the work directory.
func (e *Environment) ReadFile(path string) string {
	e.t.Helper()

	content, err := os.ReadFile(e.Path(path))
	if err != nil {
		e.t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
