package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveDirRecursive(t *testing.T) {
	t.Parallel()

	t.Run("removes nested tree", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "hls")
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.m3u8"), []byte("m3u8"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "seg_00000.ts"), []byte("ts"), 0644))

		require.NoError(t, RemoveDirRecursive(dir))

		_, err := os.Stat(dir)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing dir is fine", func(t *testing.T) {
		assert.NoError(t, RemoveDirRecursive(filepath.Join(t.TempDir(), "nope")))
	})
}

func TestRemoveFileIfExists(t *testing.T) {
	t.Parallel()

	t.Run("removes existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "video.mp4")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		require.NoError(t, RemoveFileIfExists(path))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing file is fine", func(t *testing.T) {
		assert.NoError(t, RemoveFileIfExists(filepath.Join(t.TempDir(), "nope.mp4")))
	})

	t.Run("non empty directory fails", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "stuck"), []byte("x"), 0644))

		assert.Error(t, RemoveFileIfExists(dir))
	})
}
