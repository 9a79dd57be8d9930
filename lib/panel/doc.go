// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package panel implements the workspace panel tree: a recursive
// binary-ish tree of horizontal/vertical splits whose leaves hold
// ordered tab lists, plus the drag-and-drop controller that mutates it.
//
// The tree is immutable by convention. Every operation takes the
// current root and returns a new root, rebuilding the nodes on the
// path from the root to the changed leaf and sharing untouched
// subtrees by reference. Callers (normally a workspace.Store) replace
// the whole root atomically; nothing in this package retains state
// between calls except the in-flight Drag gesture.
//
// Structural invariants, restored by every mutation:
//
//   - a Split has at least two children; one child collapses into the
//     parent slot, zero children removes the Split entirely
//   - no Split has a direct child Split with the same direction;
//     same-direction nesting is flattened into one sibling list
//   - a Tab's PanelID always names the leaf that actually holds it
//   - panel and tab IDs are unique across the tree
//
// Lookups that miss return ok=false; mutations aimed at a missing ID
// return the tree unchanged. A dropped gesture with a stale target is
// silently inert — the UI must never crash on a malformed drop.
package panel
