package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileStore(t *testing.T) {
	t.Run("creates directory with correct permissions", func(t *testing.T) {
		tmpDir := t.TempDir()
		storeDir := filepath.Join(tmpDir, "state")

		s, err := NewFileStore(storeDir)
		require.NoError(t, err)
		assert.NotNil(t, s)

		info, err := os.Stat(storeDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	})

	t.Run("missing state file reads as empty store", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		_, err = s.Get("cart")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestFileStore_SetGet(t *testing.T) {
	t.Run("round trips a value", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, s.Set("token", "abc.def.ghi"))

		got, err := s.Get("token")
		require.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", got)
	})

	t.Run("set replaces previous value", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, s.Set("token", "old"))
		require.NoError(t, s.Set("token", "new"))

		got, err := s.Get("token")
		require.NoError(t, err)
		assert.Equal(t, "new", got)
	})

	t.Run("survives a fresh store against the same directory", func(t *testing.T) {
		dir := t.TempDir()

		s1, err := NewFileStore(dir)
		require.NoError(t, err)
		require.NoError(t, s1.Set("userId", "u-1"))

		s2, err := NewFileStore(dir)
		require.NoError(t, err)

		got, err := s2.Get("userId")
		require.NoError(t, err)
		assert.Equal(t, "u-1", got)
	})

	t.Run("state file has restricted permissions", func(t *testing.T) {
		dir := t.TempDir()
		s, err := NewFileStore(dir)
		require.NoError(t, err)

		require.NoError(t, s.Set("token", "secret"))

		info, err := os.Stat(filepath.Join(dir, stateFile))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})
}

func TestFileStore_Delete(t *testing.T) {
	t.Run("removes the key", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, s.Set("cart", "[]"))
		require.NoError(t, s.Delete("cart"))

		_, err = s.Get("cart")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("deleting an absent key is a no-op", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		assert.NoError(t, s.Delete("missing"))
		assert.NoError(t, s.Delete("missing"))
	})

	t.Run("leaves other keys intact", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, s.Set("token", "t"))
		require.NoError(t, s.Set("userId", "u"))
		require.NoError(t, s.Delete("token"))

		got, err := s.Get("userId")
		require.NoError(t, err)
		assert.Equal(t, "u", got)
	})
}

func TestFileStore_CorruptState(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, stateFile), []byte("{not json"), 0600))

	_, err = s.Get("cart")
	assert.ErrorContains(t, err, "failed to parse state")
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get("cart")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set("cart", "[]"))

	got, err := s.Get("cart")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)

	require.NoError(t, s.Delete("cart"))

	_, err = s.Get("cart")
	assert.ErrorIs(t, err, ErrNotFound)
}
