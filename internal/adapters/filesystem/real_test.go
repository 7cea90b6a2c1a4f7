package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealFileSystem_Rooted(t *testing.T) {
	root := t.TempDir()
	fs := NewRootedFileSystem(root)
	assert.Equal(t, root, fs.Root())

	require.NoError(t, fs.WriteFile("nested/dir/a.txt", []byte("hello"), 0o644))
	assert.FileExists(t, filepath.Join(root, "nested", "dir", "a.txt"))

	assert.True(t, fs.Exists("nested/dir/a.txt"))
	assert.True(t, fs.IsDir("nested/dir"))
	assert.False(t, fs.IsDir("nested/dir/a.txt"))

	data, err := fs.ReadFile("nested/dir/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	info, err := fs.GetFileInfo("nested/dir/a.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size)
	assert.False(t, info.IsDir)

	require.NoError(t, fs.Remove("nested/dir/a.txt"))
	assert.False(t, fs.Exists("nested/dir/a.txt"))
}

func TestRealFileSystem_AbsolutePathsIgnoreRoot(t *testing.T) {
	other := t.TempDir()
	fs := NewRootedFileSystem(t.TempDir())

	abs := filepath.Join(other, "b.txt")
	require.NoError(t, fs.WriteFile(abs, []byte("x"), 0o600))
	assert.True(t, fs.Exists(abs))
}

func TestRealFileSystem_NotFound(t *testing.T) {
	fs := NewRealFileSystem()
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := fs.ReadFile(missing)
	assert.True(t, os.IsNotExist(err))

	_, err = fs.GetFileInfo(missing)
	assert.Error(t, err)
	assert.False(t, fs.Exists(missing))
	assert.False(t, fs.IsDir(missing))
}

func TestRealFileSystem_MkdirAll(t *testing.T) {
	root := t.TempDir()
	fs := NewRootedFileSystem(root)

	require.NoError(t, fs.MkdirAll("a/b/c", 0o755))
	assert.DirExists(t, filepath.Join(root, "a", "b", "c"))
}
