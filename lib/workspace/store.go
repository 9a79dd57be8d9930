// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"github.com/termdeck-foundation/termdeck/lib/panel"
)

// Registry resolves a tab's backing resource — a live terminal widget,
// an editor buffer — by tab ID. The registry is keyed by tab ID and
// independent of panel IDs, so relocating a tab between panels never
// destroys the underlying resource; the UI re-adopts the same handle
// into the tab's new container. Implemented outside this package (the
// terminal layer); consumed by the rendering adapter.
type Registry interface {
	// Element returns the resource handle for a tab, or ok=false if
	// the resource is not (yet) registered. Callers retry adoption on
	// the next frame rather than failing.
	Element(tabID string) (any, bool)
}

// Store holds the current panel tree root with replace-whole-value
// semantics. The zero value is not usable; call NewStore.
type Store struct {
	root        panel.Node
	subscribers []func(panel.Node)
}

// NewStore returns a store rooted at a single empty leaf.
func NewStore() *Store {
	return &Store{root: panel.NewLeaf()}
}

// Root returns the current tree root. Callers must treat it as
// immutable.
func (s *Store) Root() panel.Node {
	return s.root
}

// Subscribe registers a callback invoked synchronously, in
// registration order, after every root replacement.
func (s *Store) Subscribe(fn func(panel.Node)) {
	s.subscribers = append(s.subscribers, fn)
}

// Apply runs mutate on the current root and installs the result. A
// nil result (the "root removed" sentinel from panel.RemoveLeaf) is
// replaced by a fresh empty leaf, so the store never holds an empty
// tree. Subscribers are notified only when the root actually changed.
func (s *Store) Apply(mutate func(panel.Node) panel.Node) {
	next := mutate(s.root)
	if next == nil {
		next = panel.NewLeaf()
	}
	if next == s.root {
		return
	}
	s.root = next
	for _, fn := range s.subscribers {
		fn(next)
	}
}

// OpenTab appends the tab to the given leaf and makes it active. An
// unknown leaf ID leaves the tree unchanged.
func (s *Store) OpenTab(leafID string, tab panel.Tab) {
	s.Apply(func(root panel.Node) panel.Node {
		return panel.UpdateLeaf(root, leafID, func(leaf *panel.Leaf) *panel.Leaf {
			tab.PanelID = leaf.ID
			tabs := append(append([]panel.Tab(nil), leaf.Tabs...), tab)
			return &panel.Leaf{ID: leaf.ID, Tabs: tabs, ActiveTabID: tab.ID}
		})
	})
}

// CloseTab removes the tab from the leaf containing it. A leaf left
// without tabs is removed (unless it is the only leaf), collapsing
// its parent per the tree rules. An unknown tab ID is a no-op.
func (s *Store) CloseTab(tabID string) {
	s.Apply(func(root panel.Node) panel.Node {
		leaf, ok := panel.FindLeafByTab(root, tabID)
		if !ok {
			return root
		}
		next := panel.UpdateLeaf(root, leaf.ID, panel.RemoveTab(tabID))
		if emptied, ok := panel.FindLeaf(next, leaf.ID); ok && len(emptied.Tabs) == 0 {
			if _, isLeaf := next.(*panel.Leaf); !isLeaf {
				next = panel.RemoveLeaf(next, leaf.ID)
			}
		}
		if next == nil {
			return next
		}
		return panel.Simplify(next)
	})
}

// ActivateTab makes the tab active within its leaf. Unknown IDs are
// no-ops.
func (s *Store) ActivateTab(tabID string) {
	s.Apply(func(root panel.Node) panel.Node {
		leaf, ok := panel.FindLeafByTab(root, tabID)
		if !ok || leaf.ActiveTabID == tabID {
			return root
		}
		return panel.UpdateLeaf(root, leaf.ID, func(l *panel.Leaf) *panel.Leaf {
			return &panel.Leaf{ID: l.ID, Tabs: l.Tabs, ActiveTabID: tabID}
		})
	})
}

// CompleteDrop applies a finished drag gesture. Exactly one root
// replacement happens per completed drop; unresolved targets change
// nothing.
func (s *Store) CompleteDrop(drag *panel.Drag, zoneID string) {
	s.Apply(func(root panel.Node) panel.Node {
		return panel.Drop(root, drag, zoneID)
	})
}
