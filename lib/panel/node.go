// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package panel

import "github.com/google/uuid"

// Direction is the orientation of a Split.
type Direction string

const (
	// Horizontal lays children out side by side.
	Horizontal Direction = "horizontal"
	// Vertical stacks children top to bottom.
	Vertical Direction = "vertical"
)

// Position selects which side of a target a new sibling lands on.
type Position string

const (
	// Before inserts at the target's index (left/top).
	Before Position = "before"
	// After inserts at the target's index + 1 (right/bottom).
	After Position = "after"
)

// ContentKind identifies what a tab displays. The tree treats all
// kinds identically; the rendering layer dispatches on it.
type ContentKind string

const (
	KindTerminal         ContentKind = "terminal"
	KindSettings         ContentKind = "settings"
	KindLogViewer        ContentKind = "log-viewer"
	KindFileEditor       ContentKind = "file-editor"
	KindConnectionEditor ContentKind = "connection-editor"
	KindTunnelEditor     ContentKind = "tunnel-editor"
)

// Tab is a unit of content placed inside exactly one leaf at a time.
type Tab struct {
	ID    string      `json:"id" yaml:"id"`
	Title string      `json:"title" yaml:"title"`
	Kind  ContentKind `json:"kind" yaml:"kind"`

	// PanelID is a non-owning back-reference to the leaf holding this
	// tab. Mutations keep it in sync with the tab's actual location.
	PanelID string `json:"panelId" yaml:"panel_id"`

	// Meta carries kind-specific payload (file path, connection ID,
	// tunnel ID). Opaque to the tree: moved with the tab, never read.
	Meta map[string]string `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Node is a panel tree node: either *Leaf or *Split.
type Node interface {
	// PanelID returns the node's unique ID.
	PanelID() string

	isNode()
}

// Leaf holds an ordered tab list and is a rendering destination.
type Leaf struct {
	ID          string `json:"id" yaml:"id"`
	Tabs        []Tab  `json:"tabs" yaml:"tabs"`
	ActiveTabID string `json:"activeTabId,omitempty" yaml:"active_tab_id,omitempty"`
}

// Split holds two or more ordered children with one orientation.
type Split struct {
	ID        string    `json:"id" yaml:"id"`
	Direction Direction `json:"direction" yaml:"direction"`
	Children  []Node    `json:"children" yaml:"children"`
}

func (l *Leaf) PanelID() string  { return l.ID }
func (s *Split) PanelID() string { return s.ID }

func (*Leaf) isNode()  {}
func (*Split) isNode() {}

// NewLeaf returns an empty leaf with a fresh unique ID and no active
// tab.
func NewLeaf() *Leaf {
	return &Leaf{ID: uuid.NewString()}
}

// NewTab returns a tab with a fresh unique ID. PanelID is empty until
// the tab is placed in a leaf.
func NewTab(title string, kind ContentKind, meta map[string]string) Tab {
	return Tab{ID: uuid.NewString(), Title: title, Kind: kind, Meta: meta}
}

// FindLeaf returns the leaf with the given ID, depth-first.
func FindLeaf(root Node, id string) (*Leaf, bool) {
	switch node := root.(type) {
	case *Leaf:
		if node.ID == id {
			return node, true
		}
	case *Split:
		for _, child := range node.Children {
			if leaf, ok := FindLeaf(child, id); ok {
				return leaf, true
			}
		}
	}
	return nil, false
}

// FindLeafByTab returns the leaf whose tab list contains the given tab
// ID, depth-first. Containment in Tabs is authoritative; the tab's
// PanelID back-reference is not consulted.
func FindLeafByTab(root Node, tabID string) (*Leaf, bool) {
	switch node := root.(type) {
	case *Leaf:
		for _, tab := range node.Tabs {
			if tab.ID == tabID {
				return node, true
			}
		}
	case *Split:
		for _, child := range node.Children {
			if leaf, ok := FindLeafByTab(child, tabID); ok {
				return leaf, true
			}
		}
	}
	return nil, false
}

// Leaves returns every leaf in pre-order, left to right within each
// split. The order is deterministic: callers derive before/after
// placement semantics from it.
func Leaves(root Node) []*Leaf {
	switch node := root.(type) {
	case *Leaf:
		return []*Leaf{node}
	case *Split:
		var leaves []*Leaf
		for _, child := range node.Children {
			leaves = append(leaves, Leaves(child)...)
		}
		return leaves
	}
	return nil
}

// UpdateLeaf replaces the leaf with the given ID by transform(leaf)
// and rebuilds all ancestors on the path. Untouched subtrees are
// shared by reference. If the ID is not found the root is returned
// unchanged. transform receives the existing leaf and must return the
// replacement; it must not mutate the input.
func UpdateLeaf(root Node, leafID string, transform func(*Leaf) *Leaf) Node {
	switch node := root.(type) {
	case *Leaf:
		if node.ID == leafID {
			return transform(node)
		}
		return node
	case *Split:
		changed := false
		children := make([]Node, len(node.Children))
		for i, child := range node.Children {
			children[i] = UpdateLeaf(child, leafID, transform)
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

// RemoveLeaf removes the leaf with the given ID. A split reduced to
// one child collapses into that child; a split reduced to zero
// children is removed and the removal propagates upward. Removing the
// root itself returns nil — the caller substitutes a fresh empty leaf.
// An unknown ID returns the root unchanged.
//
// Collapsing can hoist a split into a same-direction parent, so the
// result may need Simplify to restore the no-nested-same-direction
// shape. Callers that maintain that invariant run Simplify after
// removal.
func RemoveLeaf(root Node, leafID string) Node {
	switch node := root.(type) {
	case *Leaf:
		if node.ID == leafID {
			return nil
		}
		return node
	case *Split:
		changed := false
		var children []Node
		for _, child := range node.Children {
			replaced := RemoveLeaf(child, leafID)
			if replaced != child {
				changed = true
			}
			if replaced != nil {
				children = append(children, replaced)
			}
		}
		switch {
		case !changed:
			return node
		case len(children) == 0:
			return nil
		case len(children) == 1:
			return children[0]
		default:
			return &Split{ID: node.ID, Direction: node.Direction, Children: children}
		}
	}
	return root
}

// SplitLeaf places newLeaf next to the leaf with targetID. When the
// target's direct parent is already a Split in the same direction, the
// new leaf is inserted as a sibling (Before = target's index, After =
// index + 1) rather than nesting a redundant wrapper. Otherwise the
// target is replaced in place by a two-child Split in the requested
// direction. An unknown target ID returns the root unchanged.
func SplitLeaf(root Node, targetID string, newLeaf *Leaf, direction Direction, position Position) Node {
	switch node := root.(type) {
	case *Leaf:
		if node.ID != targetID {
			return node
		}
		children := []Node{newLeaf, node}
		if position == After {
			children = []Node{node, newLeaf}
		}
		return &Split{ID: uuid.NewString(), Direction: direction, Children: children}
	case *Split:
		if node.Direction == direction {
			// Same-direction parent: the target becomes a flat
			// sibling insertion, not a nested split.
			for i, child := range node.Children {
				leaf, ok := child.(*Leaf)
				if !ok || leaf.ID != targetID {
					continue
				}
				at := i
				if position == After {
					at = i + 1
				}
				children := make([]Node, 0, len(node.Children)+1)
				children = append(children, node.Children[:at]...)
				children = append(children, newLeaf)
				children = append(children, node.Children[at:]...)
				return &Split{ID: node.ID, Direction: node.Direction, Children: children}
			}
		}
		changed := false
		children := make([]Node, len(node.Children))
		for i, child := range node.Children {
			children[i] = SplitLeaf(child, targetID, newLeaf, direction, position)
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

// Simplify restores the flattening invariant over the whole tree:
// children are simplified first, child splits sharing the parent's
// direction are spliced into the parent's child list in place, a
// single-child split yields that child, and a childless split yields a
// fresh empty leaf (degenerate recovery). Simplify is idempotent.
func Simplify(root Node) Node {
	split, ok := root.(*Split)
	if !ok {
		return root
	}
	var children []Node
	for _, child := range split.Children {
		simplified := Simplify(child)
		if nested, ok := simplified.(*Split); ok && nested.Direction == split.Direction {
			children = append(children, nested.Children...)
			continue
		}
		children = append(children, simplified)
	}
	switch len(children) {
	case 0:
		return NewLeaf()
	case 1:
		return children[0]
	default:
		return &Split{ID: split.ID, Direction: split.Direction, Children: children}
	}
}

// Edge is a drop-zone side of a panel.
type Edge string

const (
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
	EdgeCenter Edge = "center"
)

// EdgeSplit maps a drop edge to the split it produces. The center
// edge produces no split (ok=false): the drop merges into the target
// leaf instead. Unrecognized edges also report ok=false.
func EdgeSplit(edge Edge) (Direction, Position, bool) {
	switch edge {
	case EdgeLeft:
		return Horizontal, Before, true
	case EdgeRight:
		return Horizontal, After, true
	case EdgeTop:
		return Vertical, Before, true
	case EdgeBottom:
		return Vertical, After, true
	}
	return "", "", false
}

// retag returns the leaf's tabs with PanelID pointing at the leaf,
// copying only when a tab is out of sync.
func retag(leaf *Leaf) *Leaf {
	dirty := false
	for _, tab := range leaf.Tabs {
		if tab.PanelID != leaf.ID {
			dirty = true
			break
		}
	}
	if !dirty {
		return leaf
	}
	tabs := make([]Tab, len(leaf.Tabs))
	copy(tabs, leaf.Tabs)
	for i := range tabs {
		tabs[i].PanelID = leaf.ID
	}
	return &Leaf{ID: leaf.ID, Tabs: tabs, ActiveTabID: leaf.ActiveTabID}
}
