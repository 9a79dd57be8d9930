// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/termdeck-foundation/termdeck/lib/panel"
)

// snapshotVersion is bumped when the on-disk layout format changes
// incompatibly. Loading rejects versions it does not understand.
const snapshotVersion = 1

// Snapshot is the persisted form of a workspace layout.
type Snapshot struct {
	Version int          `yaml:"version"`
	Root    snapshotNode `yaml:"root"`
}

// snapshotNode flattens the Leaf/Split union into one YAML shape,
// discriminated by Kind. yaml.v3 cannot decode into the panel.Node
// interface directly.
type snapshotNode struct {
	Kind        string          `yaml:"kind"` // "leaf" or "split"
	ID          string          `yaml:"id"`
	Tabs        []panel.Tab     `yaml:"tabs,omitempty"`
	ActiveTabID string          `yaml:"active_tab_id,omitempty"`
	Direction   panel.Direction `yaml:"direction,omitempty"`
	Children    []snapshotNode  `yaml:"children,omitempty"`
}

// TakeSnapshot captures the store's current tree for persistence.
func (s *Store) TakeSnapshot() Snapshot {
	return Snapshot{Version: snapshotVersion, Root: encodeNode(s.root)}
}

// Restore replaces the store's tree with the snapshot's. The loaded
// tree is normalized (back-references re-derived), simplified, and
// validated; a snapshot that cannot produce a well-formed tree is
// rejected and the store keeps its current root.
func (s *Store) Restore(snap Snapshot) error {
	if snap.Version != snapshotVersion {
		return fmt.Errorf("unsupported layout version %d (want %d)", snap.Version, snapshotVersion)
	}
	root, err := decodeNode(snap.Root)
	if err != nil {
		return err
	}
	root = panel.Simplify(panel.Normalize(root))
	if err := panel.Validate(root); err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}
	s.Apply(func(panel.Node) panel.Node { return root })
	return nil
}

// SaveLayout writes the current layout to path atomically
// (write-to-temp then rename), creating parent directories as needed.
func (s *Store) SaveLayout(path string) error {
	data, err := yaml.Marshal(s.TakeSnapshot())
	if err != nil {
		return fmt.Errorf("encoding layout: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating layout directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing layout: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing layout: %w", err)
	}
	return nil
}

// LoadLayout restores the layout from path. A missing file is not an
// error: the store keeps its fresh empty leaf and reports ok=false.
func (s *Store) LoadLayout(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading layout: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return false, fmt.Errorf("parsing layout %s: %w", path, err)
	}
	if err := s.Restore(snap); err != nil {
		return false, fmt.Errorf("restoring layout %s: %w", path, err)
	}
	return true, nil
}

func encodeNode(node panel.Node) snapshotNode {
	switch n := node.(type) {
	case *panel.Leaf:
		return snapshotNode{Kind: "leaf", ID: n.ID, Tabs: n.Tabs, ActiveTabID: n.ActiveTabID}
	case *panel.Split:
		children := make([]snapshotNode, len(n.Children))
		for i, child := range n.Children {
			children[i] = encodeNode(child)
		}
		return snapshotNode{Kind: "split", ID: n.ID, Direction: n.Direction, Children: children}
	}
	return snapshotNode{}
}

func decodeNode(sn snapshotNode) (panel.Node, error) {
	switch sn.Kind {
	case "leaf":
		leaf := &panel.Leaf{ID: sn.ID, Tabs: sn.Tabs, ActiveTabID: sn.ActiveTabID}
		if leaf.ID == "" {
			leaf.ID = panel.NewLeaf().ID
		}
		return leaf, nil
	case "split":
		children := make([]panel.Node, len(sn.Children))
		for i, child := range sn.Children {
			decoded, err := decodeNode(child)
			if err != nil {
				return nil, err
			}
			children[i] = decoded
		}
		return &panel.Split{ID: sn.ID, Direction: sn.Direction, Children: children}, nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", sn.Kind)
	}
}
