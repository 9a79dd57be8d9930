// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package workspace owns the current panel tree and the operations the
// UI performs on it. The Store holds one root, funnels every change
// through the pure functions in lib/panel, and replaces the root
// atomically — subscribers always observe complete trees, never
// partial mutation states.
//
// The Store is confined to the UI goroutine (the bubbletea event
// loop). It carries no lock: only one gesture can be in flight at a
// time, and every mutation completes synchronously within a single
// event callback.
//
// Snapshots persist the layout between runs as YAML. Restoring goes
// through normalization and validation, so a hand-edited snapshot with
// stale back-references or degenerate splits loads as a well-formed
// tree or not at all.
package workspace
