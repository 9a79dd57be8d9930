// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package panel

import "strings"

// Drop-zone ID prefixes. These strings are the protocol between the
// rendering layer (which emits zone IDs) and the drag controller
// (which parses them), and are stable for compatibility.
const (
	edgeZonePrefix   = "edge-"
	centerZonePrefix = "center-"
)

// Drag is a single in-flight drag gesture. The UI layer holds at most
// one (nil means idle); the payload is IDs plus display data for the
// floating preview, never live references, so cancelling a drag is
// just discarding the value.
type Drag struct {
	tabID         string
	sourcePanelID string
	title         string
	kind          ContentKind
}

// StartDrag begins a gesture for the given tab. Returns ok=false when
// no leaf contains the tab, in which case the gesture is ignored and
// no state transition happens.
func StartDrag(root Node, tabID string) (*Drag, bool) {
	leaf, ok := FindLeafByTab(root, tabID)
	if !ok {
		return nil, false
	}
	drag := &Drag{tabID: tabID, sourcePanelID: leaf.ID}
	for _, tab := range leaf.Tabs {
		if tab.ID == tabID {
			drag.title = tab.Title
			drag.kind = tab.Kind
			break
		}
	}
	return drag, true
}

// TabID returns the dragged tab's ID.
func (d *Drag) TabID() string { return d.tabID }

// SourcePanelID returns the leaf the tab was picked up from.
func (d *Drag) SourcePanelID() string { return d.sourcePanelID }

// Title returns the dragged tab's title, for the drag preview.
func (d *Drag) Title() string { return d.title }

// Kind returns the dragged tab's content kind, for the drag preview.
func (d *Drag) Kind() ContentKind { return d.kind }

// SuppressEdgeZones reports whether the panel's edge drop zones should
// be hidden while this gesture is in flight: true when the panel is
// the gesture's source and the dragged tab is its only tab. Accepting
// such a drop would leave an empty leaf that immediately collapses, so
// the UI does not offer it. This is a UX guard only — Drop itself
// tolerates the operation via the removal/collapse path.
func (d *Drag) SuppressEdgeZones(root Node, panelID string) bool {
	if d == nil || panelID != d.sourcePanelID {
		return false
	}
	leaf, ok := FindLeaf(root, panelID)
	return ok && len(leaf.Tabs) == 1 && leaf.Tabs[0].ID == d.tabID
}

// ZoneKind classifies a parsed drop-zone ID.
type ZoneKind int

const (
	// ZoneEdge is one of a panel's four side zones; the drop splits.
	ZoneEdge ZoneKind = iota
	// ZoneCenter is a panel's interior; the drop merges the tab into
	// the panel's tab list.
	ZoneCenter
	// ZoneTab is another tab; the drop inserts at (or reorders to)
	// that tab's position.
	ZoneTab
)

// DropZone is a parsed drop-zone ID.
type DropZone struct {
	Kind    ZoneKind
	PanelID string // ZoneEdge, ZoneCenter
	Edge    Edge   // ZoneEdge only
	TabID   string // ZoneTab only
}

// ParseDropZone parses a drop-zone ID. The three shapes, in precedence
// order: "edge-<panelId>-<edge>", "center-<panelId>", or a bare tab
// ID. Panel IDs may themselves contain '-', so the edge token is the
// part after the last '-', never a fixed-position split. An edge of
// "center" resolves to a center zone for that panel; an unrecognized
// edge token resolves to nothing (ok=false) and the drop is inert.
func ParseDropZone(id string) (DropZone, bool) {
	if rest, found := strings.CutPrefix(id, edgeZonePrefix); found {
		cut := strings.LastIndex(rest, "-")
		if cut <= 0 || cut == len(rest)-1 {
			return DropZone{}, false
		}
		panelID := rest[:cut]
		switch edge := Edge(rest[cut+1:]); edge {
		case EdgeLeft, EdgeRight, EdgeTop, EdgeBottom:
			return DropZone{Kind: ZoneEdge, PanelID: panelID, Edge: edge}, true
		case EdgeCenter:
			return DropZone{Kind: ZoneCenter, PanelID: panelID}, true
		default:
			return DropZone{}, false
		}
	}
	if rest, found := strings.CutPrefix(id, centerZonePrefix); found {
		if rest == "" {
			return DropZone{}, false
		}
		return DropZone{Kind: ZoneCenter, PanelID: rest}, true
	}
	if id == "" {
		return DropZone{}, false
	}
	return DropZone{Kind: ZoneTab, TabID: id}, true
}

// EdgeZoneID returns the drop-zone ID for a panel edge.
func EdgeZoneID(panelID string, edge Edge) string {
	return edgeZonePrefix + panelID + "-" + string(edge)
}

// CenterZoneID returns the drop-zone ID for a panel's interior.
func CenterZoneID(panelID string) string {
	return centerZonePrefix + panelID
}

// Drop completes the gesture against the given drop-zone ID and
// returns the next root. Exactly one tree mutation is applied per
// completed drop; any unresolved target (malformed zone ID, stale tab
// or panel ID) leaves the tree unchanged. Drop never returns nil: if
// the mutation removes the last panel, a fresh empty leaf is
// substituted.
func Drop(root Node, drag *Drag, zoneID string) Node {
	if root == nil || drag == nil {
		return root
	}
	zone, ok := ParseDropZone(zoneID)
	if !ok {
		return root
	}
	switch zone.Kind {
	case ZoneEdge:
		return dropEdge(root, drag, zone.PanelID, zone.Edge)
	case ZoneCenter:
		return dropCenter(root, drag, zone.PanelID)
	case ZoneTab:
		return dropOnTab(root, drag, zone.TabID)
	}
	return root
}

// dropEdge moves the dragged tab into a new leaf split off the target
// panel's edge.
func dropEdge(root Node, drag *Drag, panelID string, edge Edge) Node {
	direction, position, ok := EdgeSplit(edge)
	if !ok {
		return root
	}
	source, ok := FindLeafByTab(root, drag.tabID)
	if !ok {
		return root
	}
	if _, ok := FindLeaf(root, panelID); !ok {
		return root
	}
	tab, _ := leafTab(source, drag.tabID)

	dest := NewLeaf()
	tab.PanelID = dest.ID
	dest.Tabs = []Tab{tab}
	dest.ActiveTabID = tab.ID

	next := UpdateLeaf(root, source.ID, RemoveTab(drag.tabID))
	next = SplitLeaf(next, panelID, dest, direction, position)
	return finishMove(next, source.ID)
}

// dropCenter merges the dragged tab into the target panel's tab list.
// Dropping a tab onto its own panel's center is not a move.
func dropCenter(root Node, drag *Drag, panelID string) Node {
	source, ok := FindLeafByTab(root, drag.tabID)
	if !ok || source.ID == panelID {
		return root
	}
	if _, ok := FindLeaf(root, panelID); !ok {
		return root
	}
	tab, _ := leafTab(source, drag.tabID)

	next := UpdateLeaf(root, source.ID, RemoveTab(drag.tabID))
	next = UpdateLeaf(next, panelID, func(leaf *Leaf) *Leaf {
		tab.PanelID = leaf.ID
		tabs := append(append([]Tab(nil), leaf.Tabs...), tab)
		return &Leaf{ID: leaf.ID, Tabs: tabs, ActiveTabID: tab.ID}
	})
	return finishMove(next, source.ID)
}

// dropOnTab inserts the dragged tab at the target tab's position:
// a reorder when both share a leaf, a cross-panel move otherwise.
func dropOnTab(root Node, drag *Drag, targetTabID string) Node {
	if targetTabID == drag.tabID {
		return root
	}
	source, ok := FindLeafByTab(root, drag.tabID)
	if !ok {
		return root
	}
	dest, ok := FindLeafByTab(root, targetTabID)
	if !ok {
		return root
	}

	if dest.ID == source.ID {
		// Pure reorder: single-item move, all other tabs keep their
		// relative order.
		return UpdateLeaf(root, source.ID, func(leaf *Leaf) *Leaf {
			from := tabIndex(leaf.Tabs, drag.tabID)
			to := tabIndex(leaf.Tabs, targetTabID)
			if from < 0 || to < 0 || from == to {
				return leaf
			}
			tabs := make([]Tab, 0, len(leaf.Tabs))
			tabs = append(tabs, leaf.Tabs...)
			moved := tabs[from]
			tabs = append(tabs[:from], tabs[from+1:]...)
			tabs = append(tabs[:to], append([]Tab{moved}, tabs[to:]...)...)
			return &Leaf{ID: leaf.ID, Tabs: tabs, ActiveTabID: leaf.ActiveTabID}
		})
	}

	tab, _ := leafTab(source, drag.tabID)
	next := UpdateLeaf(root, source.ID, RemoveTab(drag.tabID))
	next = UpdateLeaf(next, dest.ID, func(leaf *Leaf) *Leaf {
		tab.PanelID = leaf.ID
		at := tabIndex(leaf.Tabs, targetTabID)
		if at < 0 {
			// Target tab vanished between lookup and insert; append.
			at = len(leaf.Tabs)
		}
		tabs := make([]Tab, 0, len(leaf.Tabs)+1)
		tabs = append(tabs, leaf.Tabs[:at]...)
		tabs = append(tabs, tab)
		tabs = append(tabs, leaf.Tabs[at:]...)
		return &Leaf{ID: leaf.ID, Tabs: tabs, ActiveTabID: tab.ID}
	})
	return finishMove(next, source.ID)
}

// finishMove removes the source leaf if the move emptied it, then
// simplifies. The root-removed sentinel from RemoveLeaf is translated
// into a fresh empty leaf so Drop never returns nil.
func finishMove(root Node, sourceID string) Node {
	if leaf, ok := FindLeaf(root, sourceID); ok && len(leaf.Tabs) == 0 {
		root = RemoveLeaf(root, sourceID)
	}
	if root == nil {
		return NewLeaf()
	}
	return Simplify(root)
}

// leafTab returns a copy of the leaf's tab with the given ID.
func leafTab(leaf *Leaf, tabID string) (Tab, bool) {
	for _, tab := range leaf.Tabs {
		if tab.ID == tabID {
			return tab, true
		}
	}
	return Tab{}, false
}

// tabIndex returns the index of the tab in the list, or -1.
func tabIndex(tabs []Tab, tabID string) int {
	for i, tab := range tabs {
		if tab.ID == tabID {
			return i
		}
	}
	return -1
}

// RemoveTab returns a leaf transform dropping the given tab, for use
// with UpdateLeaf. If the removed tab was active, activation falls to
// the tab now occupying its slot (or the new last tab); an emptied
// leaf has no active tab. A leaf not holding the tab is returned
// unchanged.
func RemoveTab(tabID string) func(*Leaf) *Leaf {
	return func(leaf *Leaf) *Leaf {
		at := tabIndex(leaf.Tabs, tabID)
		if at < 0 {
			return leaf
		}
		tabs := make([]Tab, 0, len(leaf.Tabs)-1)
		tabs = append(tabs, leaf.Tabs[:at]...)
		tabs = append(tabs, leaf.Tabs[at+1:]...)
		active := leaf.ActiveTabID
		if active == tabID {
			switch {
			case len(tabs) == 0:
				active = ""
			case at < len(tabs):
				active = tabs[at].ID
			default:
				active = tabs[len(tabs)-1].ID
			}
		}
		return &Leaf{ID: leaf.ID, Tabs: tabs, ActiveTabID: active}
	}
}
