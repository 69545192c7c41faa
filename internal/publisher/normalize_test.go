package publisher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeArtifact(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "foo.tar.gz")
	require.NoError(t, os.WriteFile(src, []byte("gzdata"), 0o644))

	got, err := NormalizeArtifact(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "foo.tgz"), got)

	// Source is gone, target carries the bytes.
	_, statErr := os.Stat(src)
	assert.True(t, os.IsNotExist(statErr))
	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, []byte("gzdata"), data)
}

func TestNormalizeArtifactOverwritesTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "foo.tar.gz")
	target := filepath.Join(dir, "foo.tgz")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("stale"), 0o644))

	got, err := NormalizeArtifact(src)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data, "last normalize wins")
}

func TestNormalizeArtifactIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foo.tgz")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	got, err := NormalizeArtifact(path)
	require.NoError(t, err)
	assert.Equal(t, path, got, "already-normalized path passes through")
}

func TestNormalizeArtifactVanishedSource(t *testing.T) {
	_, err := NormalizeArtifact(filepath.Join(t.TempDir(), "gone.tar.gz"))
	require.ErrorIs(t, err, ErrArtifactVanished)
}

func TestNormalizeArtifactWrongSuffix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foo.zip")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := NormalizeArtifact(path)
	require.Error(t, err)
}
