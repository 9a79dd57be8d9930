// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tunnel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// StoreFileName is the tunnel store file inside the config directory.
const StoreFileName = "tunnels.json"

// Store is the top-level shape of tunnels.json.
type Store struct {
	Version string   `json:"version"`
	Tunnels []Config `json:"tunnels"`
}

// NewStore returns an empty store at the current format version.
func NewStore() *Store {
	return &Store{Version: storeVersion}
}

// Storage reads and writes the tunnel store file.
type Storage struct {
	path string
}

// NewStorage returns a Storage for the store file inside configDir.
func NewStorage(configDir string) *Storage {
	return &Storage{path: filepath.Join(configDir, StoreFileName)}
}

// Path returns the store file path.
func (s *Storage) Path() string { return s.path }

// Load reads the store from disk, tolerating JSONC. A missing file
// yields an empty store.
func (s *Storage) Load() (*Store, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return NewStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading tunnel store: %w", err)
	}

	var store Store
	if err := json.Unmarshal(jsonc.ToJSON(data), &store); err != nil {
		return nil, fmt.Errorf("parsing tunnel store %s: %w", s.path, err)
	}
	if store.Version != storeVersion {
		return nil, fmt.Errorf("tunnel store %s: unsupported version %q", s.path, store.Version)
	}
	return &store, nil
}

// Save writes the store as pretty-printed JSON via a temporary file
// and rename.
func (s *Storage) Save(store *Store) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding tunnel store: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".tunnels-*.json")
	if err != nil {
		return fmt.Errorf("creating temporary store file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing tunnel store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing tunnel store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing tunnel store: %w", err)
	}
	return nil
}
