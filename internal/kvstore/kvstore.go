// Package kvstore is a small file-backed key-value store holding the
// client-local persisted state (query history, theme preference). The whole
// document is read and rewritten on every mutation; a missing or corrupt
// file fails open to an empty document.
package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists a single JSON document keyed by string.
type Store struct {
	path string
}

// New creates a store backed by the file at path. The file is created on
// first write.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the default store location under the user config
// directory, falling back to a dotfile in the working directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".askdb_store.json"
	}
	return filepath.Join(dir, "askdb", "store.json")
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Get unmarshals the value stored under key into v. It reports false when
// the key is absent or the stored value cannot be decoded.
func (s *Store) Get(key string, v any) bool {
	doc := s.load()
	raw, ok := doc[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// Set stores v under key and rewrites the document synchronously.
func (s *Store) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	doc := s.load()
	doc[key] = raw

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	return nil
}

// Delete removes key from the document.
func (s *Store) Delete(key string) error {
	doc := s.load()
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	return os.WriteFile(s.path, data, 0o600)
}

// load reads the document, treating any read or parse failure as empty.
func (s *Store) load() map[string]json.RawMessage {
	doc := make(map[string]json.RawMessage)
	data, err := os.ReadFile(s.path)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return make(map[string]json.RawMessage)
	}
	return doc
}
