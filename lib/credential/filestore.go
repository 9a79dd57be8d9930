// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package credential

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"filippo.io/age"
)

// StoreFileName is the encrypted credential file inside the config
// directory.
const StoreFileName = "credentials.age"

// ErrLocked is returned by FileStore operations before Unlock.
var ErrLocked = errors.New("credential store is locked")

// FileStore keeps credentials in an age-encrypted file protected by a
// master password (age scrypt recipient). The store starts locked;
// Unlock derives the key, decrypts the file, and keeps the plaintext
// map in memory until Lock. Every mutation rewrites the file.
type FileStore struct {
	mu       sync.Mutex
	path     string
	password string
	secrets  map[string]string
	unlocked bool

	// workFactor tunes age's scrypt recipient; tests lower it to keep
	// key derivation fast.
	workFactor int
}

// NewFileStore returns a locked store for the credential file inside
// configDir.
func NewFileStore(configDir string) *FileStore {
	return &FileStore{path: filepath.Join(configDir, StoreFileName)}
}

// Path returns the credential file path.
func (s *FileStore) Path() string { return s.path }

// Exists reports whether a credential file is present on disk.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Unlock decrypts the credential file with the master password. When
// no file exists yet, Unlock initializes an empty store protected by
// the given password. A wrong password fails without modifying the
// file.
func (s *FileStore) Unlock(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.password = password
		s.secrets = make(map[string]string)
		s.unlocked = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading credential store: %w", err)
	}

	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return fmt.Errorf("deriving identity: %w", err)
	}
	reader, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		return fmt.Errorf("unlocking credential store: %w", err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("decrypting credential store: %w", err)
	}

	secrets := make(map[string]string)
	if err := json.Unmarshal(plaintext, &secrets); err != nil {
		return fmt.Errorf("parsing credential store: %w", err)
	}

	s.password = password
	s.secrets = secrets
	s.unlocked = true
	return nil
}

// Lock forgets the decrypted credentials and the master password.
func (s *FileStore) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.password = ""
	s.secrets = nil
	s.unlocked = false
}

// ChangePassword re-encrypts the store under a new master password.
// The store must be unlocked.
func (s *FileStore) ChangePassword(newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.unlocked {
		return ErrLocked
	}
	old := s.password
	s.password = newPassword
	if err := s.saveLocked(); err != nil {
		s.password = old
		return err
	}
	return nil
}

// Get implements Store.
func (s *FileStore) Get(key Key) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.unlocked {
		return "", false, ErrLocked
	}
	value, ok := s.secrets[key.String()]
	return value, ok, nil
}

// Set implements Store.
func (s *FileStore) Set(key Key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.unlocked {
		return ErrLocked
	}
	s.secrets[key.String()] = value
	return s.saveLocked()
}

// Remove implements Store.
func (s *FileStore) Remove(key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.unlocked {
		return ErrLocked
	}
	if _, ok := s.secrets[key.String()]; !ok {
		return nil
	}
	delete(s.secrets, key.String())
	return s.saveLocked()
}

// RemoveConnection implements Store.
func (s *FileStore) RemoveConnection(connectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.unlocked {
		return ErrLocked
	}
	changed := false
	for stored := range s.secrets {
		// Compare on the parsed connection ID, not a prefix:
		// "host:2222" must not match RemoveConnection("host").
		sep := strings.LastIndex(stored, ":")
		if sep >= 0 && stored[:sep] == connectionID {
			delete(s.secrets, stored)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.saveLocked()
}

// Keys implements Store.
func (s *FileStore) Keys() ([]Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.unlocked {
		return nil, ErrLocked
	}
	keys := make([]Key, 0, len(s.secrets))
	for stored := range s.secrets {
		// The type is the suffix after the last colon; connection IDs
		// may themselves contain colons.
		sep := strings.LastIndex(stored, ":")
		if sep < 0 {
			continue
		}
		keys = append(keys, Key{
			ConnectionID: stored[:sep],
			Type:         Type(stored[sep+1:]),
		})
	}
	return keys, nil
}

// Status implements Store.
func (s *FileStore) Status() StoreStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unlocked {
		return StatusUnlocked
	}
	return StatusLocked
}

// saveLocked encrypts and writes the credential map. Callers hold the
// mutex.
func (s *FileStore) saveLocked() error {
	plaintext, err := json.Marshal(s.secrets)
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	recipient, err := age.NewScryptRecipient(s.password)
	if err != nil {
		return fmt.Errorf("deriving recipient: %w", err)
	}
	if s.workFactor > 0 {
		recipient.SetWorkFactor(s.workFactor)
	}

	var ciphertext bytes.Buffer
	writer, err := age.Encrypt(&ciphertext, recipient)
	if err != nil {
		return fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return fmt.Errorf("encrypting credentials: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".credentials-*.age")
	if err != nil {
		return fmt.Errorf("creating temporary credential file: %w", err)
	}
	tmpName := tmp.Name()
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("restricting credential file mode: %w", err)
	}
	if _, err := tmp.Write(ciphertext.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing credential store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing credential store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing credential store: %w", err)
	}
	return nil
}
