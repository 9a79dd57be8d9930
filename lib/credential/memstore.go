// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package credential

import "sync"

// MemStore keeps credentials in memory for the lifetime of the
// process. It backs ModeMemory and the tests of credential consumers.
type MemStore struct {
	mu      sync.Mutex
	secrets map[Key]string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{secrets: make(map[Key]string)}
}

// Get implements Store.
func (s *MemStore) Get(key Key) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.secrets[key]
	return value, ok, nil
}

// Set implements Store.
func (s *MemStore) Set(key Key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets[key] = value
	return nil
}

// Remove implements Store.
func (s *MemStore) Remove(key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.secrets, key)
	return nil
}

// RemoveConnection implements Store.
func (s *MemStore) RemoveConnection(connectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.secrets {
		if key.ConnectionID == connectionID {
			delete(s.secrets, key)
		}
	}
	return nil
}

// Keys implements Store.
func (s *MemStore) Keys() ([]Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]Key, 0, len(s.secrets))
	for key := range s.secrets {
		keys = append(keys, key)
	}
	return keys, nil
}

// Status implements Store.
func (s *MemStore) Status() StoreStatus { return StatusUnlocked }

// NullStore stores nothing: every lookup misses and writes are
// dropped. It backs ModeNone.
type NullStore struct{}

// Get implements Store.
func (NullStore) Get(Key) (string, bool, error) { return "", false, nil }

// Set implements Store.
func (NullStore) Set(Key, string) error { return nil }

// Remove implements Store.
func (NullStore) Remove(Key) error { return nil }

// RemoveConnection implements Store.
func (NullStore) RemoveConnection(string) error { return nil }

// Keys implements Store.
func (NullStore) Keys() ([]Key, error) { return nil, nil }

// Status implements Store.
func (NullStore) Status() StoreStatus { return StatusUnavailable }
