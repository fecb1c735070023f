package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdb-io/askdb/internal/kvstore"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(kvstore.New(filepath.Join(t.TempDir(), "store.json")))
}

func TestAppendAndList(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Append("show customers", "SELECT * FROM customers", 12))
	require.NoError(t, s.Append("count orders", "SELECT COUNT(*) AS total FROM orders", 1))

	entries := s.List()
	require.Len(t, entries, 2)

	// Most recent first.
	assert.Equal(t, "count orders", entries[0].Query)
	assert.Equal(t, "show customers", entries[1].Query)
	assert.Equal(t, 12, entries[1].NumResults)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestAppendEvictsOldest(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 51; i++ {
		require.NoError(t, s.Append(fmt.Sprintf("q%d", i), "SELECT 1", 1))
	}

	entries := s.List()
	require.Len(t, entries, 50)

	// q0 was evicted; q50 is the newest, q1 the oldest survivor.
	assert.Equal(t, "q50", entries[0].Query)
	assert.Equal(t, "q1", entries[len(entries)-1].Query)
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)

	for _, q := range []string{"first", "second", "third"} {
		require.NoError(t, s.Append(q, "SELECT 1", 0))
	}

	// Index is chronological storage order: 1 removes "second".
	require.NoError(t, s.Remove(1))

	entries := s.List()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.NotEqual(t, "second", e.Query)
	}

	require.NoError(t, s.Remove(0))
	require.NoError(t, s.Remove(0))
	assert.Empty(t, s.List())
}

func TestRemoveOutOfRange(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append("q", "SELECT 1", 0))

	assert.Error(t, s.Remove(-1))
	assert.Error(t, s.Remove(1))
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append("q", "SELECT 1", 0))
	require.NoError(t, s.Clear())
	assert.Empty(t, s.List())
}

func TestCorruptStoreTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"history": 42}`), 0o600))

	s := NewStore(kvstore.New(path))
	assert.Empty(t, s.List())

	// And the store recovers on the next append.
	require.NoError(t, s.Append("q", "SELECT 1", 0))
	assert.Len(t, s.List(), 1)
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now.Add(-30 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-2 * 24 * time.Hour), "2d ago"},
		{"older than a week", now.Add(-10 * 24 * time.Hour), "Mar 5, 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(tt.t, now))
		})
	}
}
