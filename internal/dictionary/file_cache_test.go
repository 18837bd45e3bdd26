package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache_Fetch(t *testing.T) {
	rootDir := filepath.Join(t.TempDir(), "cache")
	cache := NewFileCache(rootDir)

	var calls int
	fetch := func() ([]byte, error) {
		calls++
		return []byte(`{"results":[]}`), nil
	}

	body, err := cache.Fetch("lucid_en", fetch)
	require.NoError(t, err)
	assert.Equal(t, `{"results":[]}`, string(body))
	assert.Equal(t, 1, calls)

	// second fetch is served from disk
	body, err = cache.Fetch("lucid_en", fetch)
	require.NoError(t, err)
	assert.Equal(t, `{"results":[]}`, string(body))
	assert.Equal(t, 1, calls)
}

func TestFileCache_Fetch_FailureIsNotCached(t *testing.T) {
	cache := NewFileCache(t.TempDir())

	var calls int
	_, err := cache.Fetch("lucid_en", func() ([]byte, error) {
		calls++
		return nil, assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	body, err := cache.Fetch("lucid_en", func() ([]byte, error) {
		calls++
		return []byte("ok"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, 2, calls)
}

func TestFileCache_Fetch_SanitizesKeys(t *testing.T) {
	rootDir := t.TempDir()
	cache := NewFileCache(rootDir)

	_, err := cache.Fetch("../etc/passwd:x", func() ([]byte, error) {
		return []byte("safe"), nil
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(rootDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "/")
	assert.NotContains(t, entries[0].Name(), ":")
	assert.NotContains(t, entries[0].Name(), "..")
}
