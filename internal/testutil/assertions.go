package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertFileNotExists asserts that nothing exists at path.
func AssertFileNotExists(t testing.TB, path string) {
	t.Helper()

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "expected file to not exist: %s", path)
}

// AssertFileContains asserts that a file contains the expected substring.
func AssertFileContains(t testing.TB, path, expected string, msgAndArgs ...interface{}) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read file: %s", path)

	assert.Contains(t, string(content), expected, msgAndArgs...)
}

// AssertErrorContains asserts that err contains the expected message.
func AssertErrorContains(t testing.TB, err error, expected string, msgAndArgs ...interface{}) {
	t.Helper()

	require.Error(t, err)
	assert.Contains(t, err.Error(), expected, msgAndArgs...)
}
