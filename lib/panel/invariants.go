// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package panel

import "fmt"

// Validate checks the structural invariants over the whole tree:
// unique panel and tab IDs, splits with at least two children, no
// same-direction split nesting, active tab membership, and tab
// back-references matching their containing leaf. Used when restoring
// persisted layouts and by tests; the mutation functions maintain
// these invariants themselves.
func Validate(root Node) error {
	if root == nil {
		return fmt.Errorf("nil root")
	}
	panelIDs := make(map[string]bool)
	tabIDs := make(map[string]bool)
	return validateNode(root, nil, panelIDs, tabIDs)
}

func validateNode(node Node, parent *Split, panelIDs, tabIDs map[string]bool) error {
	if node.PanelID() == "" {
		return fmt.Errorf("node with empty ID")
	}
	if panelIDs[node.PanelID()] {
		return fmt.Errorf("duplicate panel ID %q", node.PanelID())
	}
	panelIDs[node.PanelID()] = true

	switch n := node.(type) {
	case *Leaf:
		activeFound := n.ActiveTabID == ""
		for _, tab := range n.Tabs {
			if tab.ID == "" {
				return fmt.Errorf("leaf %q: tab with empty ID", n.ID)
			}
			if tabIDs[tab.ID] {
				return fmt.Errorf("duplicate tab ID %q", tab.ID)
			}
			tabIDs[tab.ID] = true
			if tab.PanelID != n.ID {
				return fmt.Errorf("tab %q: back-reference %q, contained in %q", tab.ID, tab.PanelID, n.ID)
			}
			if tab.ID == n.ActiveTabID {
				activeFound = true
			}
		}
		if !activeFound {
			return fmt.Errorf("leaf %q: active tab %q not in tab list", n.ID, n.ActiveTabID)
		}
	case *Split:
		if n.Direction != Horizontal && n.Direction != Vertical {
			return fmt.Errorf("split %q: invalid direction %q", n.ID, n.Direction)
		}
		if len(n.Children) < 2 {
			return fmt.Errorf("split %q: %d children, need at least 2", n.ID, len(n.Children))
		}
		if parent != nil && parent.Direction == n.Direction {
			return fmt.Errorf("split %q: same direction %q as parent %q", n.ID, n.Direction, parent.ID)
		}
		for _, child := range n.Children {
			if err := validateNode(child, n, panelIDs, tabIDs); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown node type %T", node)
	}
	return nil
}

// Normalize rewrites every tab's PanelID back-reference to the leaf
// that actually contains it, sharing leaves that are already in sync.
// Layouts loaded from disk pass through here before validation, since
// hand-edited files may carry stale back-references.
func Normalize(root Node) Node {
	switch node := root.(type) {
	case *Leaf:
		return retag(node)
	case *Split:
		changed := false
		children := make([]Node, len(node.Children))
		for i, child := range node.Children {
			children[i] = Normalize(child)
			if children[i] != child {
				changed = true
			}
		}
		if !changed {
			return node
		}
		return &Split{ID: node.ID, Direction: node.Direction, Children: children}
	}
	return root
}
