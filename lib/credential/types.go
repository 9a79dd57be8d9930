// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package credential stores connection secrets: passwords and key
// passphrases. A Store implementation decides where secrets live; the
// package ships a master-password encrypted file store backed by age
// and an in-memory store for sessions that should not persist secrets.
package credential

import "fmt"

// Type is the kind of credential stored.
type Type string

const (
	TypePassword      Type = "password"
	TypeKeyPassphrase Type = "key-passphrase"
)

// Key identifies one credential of one connection.
type Key struct {
	ConnectionID string
	Type         Type
}

// String renders the key as "connectionID:type", the form used in
// encrypted payloads and export files.
func (k Key) String() string {
	return fmt.Sprintf("%s:%s", k.ConnectionID, k.Type)
}

// StoreStatus reports whether a store can serve requests.
type StoreStatus string

const (
	// StatusUnlocked means the store is ready for reads and writes.
	StatusUnlocked StoreStatus = "unlocked"
	// StatusLocked means the store exists but needs unlocking first.
	StatusLocked StoreStatus = "locked"
	// StatusUnavailable means no credential store is configured.
	StatusUnavailable StoreStatus = "unavailable"
)

// StorageMode selects how credentials are persisted.
type StorageMode string

const (
	// ModeMasterPassword encrypts credentials on disk with a
	// user-provided master password.
	ModeMasterPassword StorageMode = "master-password"
	// ModeMemory keeps credentials for the session only.
	ModeMemory StorageMode = "memory"
	// ModeNone stores nothing.
	ModeNone StorageMode = "none"
)

// Store persists connection credentials. Implementations are safe for
// concurrent use.
type Store interface {
	// Get retrieves a credential. The bool is false when the key is
	// not stored.
	Get(key Key) (string, bool, error)
	// Set stores a credential, overwriting any existing value.
	Set(key Key, value string) error
	// Remove deletes one credential. Removing an absent key is not an
	// error.
	Remove(key Key) error
	// RemoveConnection deletes every credential of one connection.
	RemoveConnection(connectionID string) error
	// Keys lists all stored credential keys.
	Keys() ([]Key, error)
	// Status reports whether the store can serve requests.
	Status() StoreStatus
}
