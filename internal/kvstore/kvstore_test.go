package kvstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "store.json"))

	require.NoError(t, s.Set("theme", "light"))
	require.NoError(t, s.Set("numbers", []int{1, 2, 3}))

	var theme string
	require.True(t, s.Get("theme", &theme))
	assert.Equal(t, "light", theme)

	var nums []int
	require.True(t, s.Get("numbers", &nums))
	assert.Equal(t, []int{1, 2, 3}, nums)
}

func TestGetMissingKey(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "store.json"))

	var v string
	assert.False(t, s.Get("absent", &v))
}

func TestCorruptFileFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := New(path)
	var v string
	assert.False(t, s.Get("theme", &v))

	// Writes still succeed, replacing the corrupt document.
	require.NoError(t, s.Set("theme", "dark"))
	require.True(t, s.Get("theme", &v))
	assert.Equal(t, "dark", v)
}

func TestCorruptValueFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"history": "not-a-list"}`), 0o600))

	s := New(path)
	var entries []map[string]any
	assert.False(t, s.Get("history", &entries))
}

func TestSetCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "store.json")
	s := New(path)

	require.NoError(t, s.Set("theme", "dark"))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestDelete(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, s.Set("theme", "dark"))
	require.NoError(t, s.Delete("theme"))

	var v string
	assert.False(t, s.Get("theme", &v))
}
