// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Termdeck's standard CBOR encoding
// configuration.
//
// Termdeck uses two serialization formats with a clear boundary:
//
//   - JSON for user-facing files and interfaces: connection stores
//     (JSONC), settings-schema payloads consumed by the dynamic form
//     renderer, and CLI --json output.
//   - CBOR for the frontend↔backend wire protocol: terminal, tunnel,
//     and credential commands over the backend's Unix socket
//     (lib/backend).
//
// This package holds the shared CBOR modes so every package encodes
// identically without duplicating configuration. The encoder uses
// Core Deterministic Encoding (RFC 8949 §4.2); the decoder ignores
// unknown fields for forward compatibility with newer backends.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations (the backend socket):
//
//	encoder := codec.NewEncoder(conn)
//	decoder := codec.NewDecoder(conn)
package codec
