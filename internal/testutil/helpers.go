// Package testutil provides test helpers and utilities for stepwise tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTempFile writes content to a file in dir, creating parent
// directories as needed, and returns its path.
func WriteTempFile(t testing.TB, dir, filename, content string) string {
	t.Helper()

	path := filepath.Join(dir, filename)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "failed to create parent of %s", filename)
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err, "failed to write temp file: %s", filename)

	return path
}

// WriteTempDir creates a subdirectory in dir.
func WriteTempDir(t testing.TB, dir, dirname string) string {
	t.Helper()

	path := filepath.Join(dir, dirname)
	err := os.MkdirAll(path, 0o755)
	require.NoError(t, err, "failed to create temp subdirectory: %s", dirname)

	return path
}

// ChangeDir changes to a directory for the duration of the test.
func ChangeDir(t testing.TB, dir string) {
	t.Helper()

	original, err := os.Getwd()
	require.NoError(t, err)

	err = os.Chdir(dir)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = os.Chdir(original)
	})
}
