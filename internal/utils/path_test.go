package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	_, err := ResolvePath("")
	assert.Error(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ResolvePath("~/stuff")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "stuff"), got)

	abs, err := ResolvePath("a/../b")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))
	assert.Equal(t, "b", filepath.Base(abs))
}

func TestEnsureParent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "x", "y", "file.txt")
	require.NoError(t, EnsureParent(target))
	assert.DirExists(t, filepath.Join(dir, "x", "y"))

	// Idempotent on an existing directory.
	require.NoError(t, EnsureParent(target))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, FileExists(filepath.Join(dir, "missing")))
	assert.False(t, FileExists(dir), "directories are not files")

	path := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	assert.True(t, FileExists(path))
}
