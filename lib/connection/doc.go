// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package connection manages saved connections and the folder tree they
// are organized in.
//
// Two representations exist. On disk, connections.json holds a nested
// tree of folder and connection nodes without IDs; identity is the
// node's name within its parent. In memory, the tree is flattened into
// SavedConnection and Folder slices with deterministic path-based IDs
// ("Work/Dev/My SSH"), percent-encoding "/" and "%" in names so path
// joining stays unambiguous. FlattenTree and BuildTree convert between
// the two; the conversions are inverses for deduplicated input.
//
// The store file is read tolerantly as JSONC (comments and trailing
// commas allowed) and written as pretty-printed strict JSON.
package connection
