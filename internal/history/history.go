// Package history keeps a bounded, persisted record of past queries.
package history

import (
	"fmt"
	"time"

	"github.com/askdb-io/askdb/internal/kvstore"
)

const (
	storeKey = "history"
	// maxEntries caps the store; the oldest entry is evicted beyond it.
	maxEntries = 50
)

// Entry records one past query or SQL execution and its result count.
// Timestamps serialize as RFC 3339 strings.
type Entry struct {
	Query      string    `json:"query"`
	SQL        string    `json:"sql"`
	NumResults int       `json:"num_results"`
	Timestamp  time.Time `json:"timestamp"`
}

// Store is an append-only history cache persisted through a kvstore. All
// mutations rewrite the persisted list synchronously. A missing or
// unparsable persisted value is treated as an empty list.
type Store struct {
	kv  *kvstore.Store
	now func() time.Time
}

// NewStore creates a history store backed by kv.
func NewStore(kv *kvstore.Store) *Store {
	return &Store{kv: kv, now: time.Now}
}

// Append adds an entry stamped with the current time, evicting the oldest
// entry when the store would exceed its cap.
func (s *Store) Append(query, sql string, numResults int) error {
	entries := s.load()
	entries = append(entries, Entry{
		Query:      query,
		SQL:        sql,
		NumResults: numResults,
		Timestamp:  s.now(),
	})
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	return s.kv.Set(storeKey, entries)
}

// List returns entries most recent first.
func (s *Store) List() []Entry {
	entries := s.load()
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}

// Remove deletes the entry at index in chronological storage order (the
// order entries were appended, not the reversed display order).
func (s *Store) Remove(index int) error {
	entries := s.load()
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("history index %d out of range", index)
	}
	entries = append(entries[:index], entries[index+1:]...)
	return s.kv.Set(storeKey, entries)
}

// Clear empties the store.
func (s *Store) Clear() error {
	return s.kv.Set(storeKey, []Entry{})
}

func (s *Store) load() []Entry {
	var entries []Entry
	if !s.kv.Get(storeKey, &entries) {
		return nil
	}
	return entries
}

// RelativeTime renders a timestamp relative to now: "Just now" under a
// minute, then minutes, hours, and days, falling back to a date beyond a
// week.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
