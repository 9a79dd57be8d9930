// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package connection

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// StoreFileName is the main connection store file inside the config
// directory.
const StoreFileName = "connections.json"

// Storage reads and writes a connection store file.
type Storage struct {
	path string
}

// NewStorage returns a Storage for the store file inside configDir.
func NewStorage(configDir string) *Storage {
	return &Storage{path: filepath.Join(configDir, StoreFileName)}
}

// NewStorageFile returns a Storage for an explicit file path, used for
// external connection files.
func NewStorageFile(path string) *Storage {
	return &Storage{path: path}
}

// Path returns the store file path.
func (s *Storage) Path() string { return s.path }

// Load reads the store from disk. A missing file yields an empty store.
// The file is parsed as JSONC, so comments and trailing commas are
// tolerated.
func (s *Storage) Load() (*Store, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return NewStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading connection store: %w", err)
	}

	var store Store
	if err := json.Unmarshal(jsonc.ToJSON(data), &store); err != nil {
		return nil, fmt.Errorf("parsing connection store %s: %w", s.path, err)
	}
	if store.Version != storeVersion {
		return nil, fmt.Errorf("connection store %s: unsupported version %q", s.path, store.Version)
	}
	return &store, nil
}

// Save writes the store to disk as pretty-printed JSON. The write goes
// through a temporary file and rename so a crash cannot leave a
// truncated store behind.
func (s *Storage) Save(store *Store) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding connection store: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".connections-*.json")
	if err != nil {
		return fmt.Errorf("creating temporary store file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing connection store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing connection store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing connection store: %w", err)
	}
	return nil
}

// LoadFlat loads the store and flattens it, deduplicating sibling
// names so generated IDs are unique.
func (s *Storage) LoadFlat() ([]SavedConnection, []Folder, error) {
	store, err := s.Load()
	if err != nil {
		return nil, nil, err
	}
	connections, folders := FlattenTree(store.Children, "")
	DeduplicateSiblingNames(connections, folders)
	return connections, folders, nil
}

// SaveFlat rebuilds the nested tree from flat slices and saves it.
func (s *Storage) SaveFlat(connections []SavedConnection, folders []Folder) error {
	store := NewStore()
	store.Children = BuildTree(connections, folders)
	return s.Save(store)
}
