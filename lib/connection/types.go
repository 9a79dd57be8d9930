// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package connection

import (
	"fmt"

	"github.com/termdeck-foundation/termdeck/lib/schema"
)

// storeVersion is the on-disk format version of connections.json.
const storeVersion = "2"

// Config is a connection's backend type plus its settings payload. The
// settings shape is declared by the backend's schema; this package
// treats it as opaque JSON apart from validation.
type Config struct {
	Type     string         `json:"type"`
	Settings map[string]any `json:"config"`
}

// TerminalOptions are per-connection terminal display overrides. Nil
// pointer fields inherit the global defaults.
type TerminalOptions struct {
	HorizontalScrolling *bool   `json:"horizontalScrolling,omitempty"`
	Color               *string `json:"color,omitempty"`
	FontFamily          *string `json:"fontFamily,omitempty"`
	FontSize            *int    `json:"fontSize,omitempty"`
	ScrollbackBuffer    *int    `json:"scrollbackBuffer,omitempty"`
	CursorStyle         *string `json:"cursorStyle,omitempty"`
	CursorBlink         *bool   `json:"cursorBlink,omitempty"`
}

// Node kind names for TreeNode.Kind.
const (
	NodeFolder     = "folder"
	NodeConnection = "connection"
)

// TreeNode is one node of the on-disk nested tree. Folder nodes carry
// Children; connection nodes carry Config. Nodes have no ID on disk.
type TreeNode struct {
	Kind string `json:"type"`
	Name string `json:"name"`

	// Folder fields.
	IsExpanded bool       `json:"isExpanded,omitempty"`
	Children   []TreeNode `json:"children,omitempty"`

	// Connection fields.
	Config          *Config          `json:"config,omitempty"`
	TerminalOptions *TerminalOptions `json:"terminalOptions,omitempty"`
}

// Store is the top-level shape of connections.json.
type Store struct {
	Version  string     `json:"version"`
	Children []TreeNode `json:"children"`
}

// NewStore returns an empty store at the current format version.
func NewStore() *Store {
	return &Store{Version: storeVersion}
}

// SavedConnection is the in-memory form of a connection, carrying a
// path-based ID derived from its position in the tree. The ID is never
// written to disk.
type SavedConnection struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Config          Config           `json:"config"`
	FolderID        string           `json:"folderId,omitempty"`
	TerminalOptions *TerminalOptions `json:"terminalOptions,omitempty"`
	// SourceFile is the external store file this connection was loaded
	// from. Empty means the main connections.json.
	SourceFile string `json:"sourceFile,omitempty"`
}

// Folder is the in-memory form of a folder, with a path-based ID.
// FolderID relationships use IDs, so a rename cascades through
// descendants (see DeduplicateSiblingNames).
type Folder struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ParentID   string `json:"parentId,omitempty"`
	IsExpanded bool   `json:"isExpanded"`
}

// ValidateSettings checks the connection's settings against its
// backend's schema. It returns nil for valid settings and a non-nil
// error naming every violation otherwise. Unknown backend types are an
// error.
func (c *SavedConnection) ValidateSettings() error {
	s, ok := schema.Builtin(c.Config.Type)
	if !ok {
		return fmt.Errorf("connection %q: unknown backend type %q", c.Name, c.Config.Type)
	}
	errs := schema.Validate(s, c.Config.Settings)
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("connection %q: %d invalid settings (first: %s)",
		c.Name, len(errs), errs[0].Error())
}
