// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package panel

import (
	"reflect"
	"testing"
)

func TestStartDrag(t *testing.T) {
	root := split("s1", Horizontal, leaf("L1", "a", "b"), leaf("L2", "c"))

	drag, ok := StartDrag(root, "c")
	if !ok {
		t.Fatal("StartDrag(c) rejected a present tab")
	}
	if drag.TabID() != "c" || drag.SourcePanelID() != "L2" {
		t.Errorf("drag = (%q, %q), want (c, L2)", drag.TabID(), drag.SourcePanelID())
	}
	if drag.Title() != "c" || drag.Kind() != KindTerminal {
		t.Errorf("preview data = (%q, %q), want (c, terminal)", drag.Title(), drag.Kind())
	}

	if _, ok := StartDrag(root, "ghost"); ok {
		t.Error("StartDrag accepted an unknown tab")
	}
}

func TestParseDropZone(t *testing.T) {
	tests := []struct {
		id   string
		want DropZone
		ok   bool
	}{
		{"edge-L1-left", DropZone{Kind: ZoneEdge, PanelID: "L1", Edge: EdgeLeft}, true},
		{"edge-L1-bottom", DropZone{Kind: ZoneEdge, PanelID: "L1", Edge: EdgeBottom}, true},
		// Panel IDs contain separators; the edge is the last token.
		{"edge-a-b-c-right", DropZone{Kind: ZoneEdge, PanelID: "a-b-c", Edge: EdgeRight}, true},
		{"edge-38d1-4f-top", DropZone{Kind: ZoneEdge, PanelID: "38d1-4f", Edge: EdgeTop}, true},
		// A center edge is a center-zone drop on that panel.
		{"edge-L1-center", DropZone{Kind: ZoneCenter, PanelID: "L1"}, true},
		{"center-L2", DropZone{Kind: ZoneCenter, PanelID: "L2"}, true},
		{"center-a-b", DropZone{Kind: ZoneCenter, PanelID: "a-b"}, true},
		{"some-tab-id", DropZone{Kind: ZoneTab, TabID: "some-tab-id"}, true},
		// Malformed inputs resolve to nothing.
		{"edge-L1-diagonal", DropZone{}, false},
		{"edge-L1-", DropZone{}, false},
		{"edge--left", DropZone{}, false},
		{"center-", DropZone{}, false},
		{"", DropZone{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseDropZone(tt.id)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseDropZone(%q) = (%+v, %v), want (%+v, %v)", tt.id, got, ok, tt.want, tt.ok)
		}
	}
}

func TestZoneIDsRoundTrip(t *testing.T) {
	edge, ok := ParseDropZone(EdgeZoneID("panel-7", EdgeTop))
	if !ok || edge.PanelID != "panel-7" || edge.Edge != EdgeTop {
		t.Errorf("edge zone round trip = %+v, %v", edge, ok)
	}
	center, ok := ParseDropZone(CenterZoneID("panel-7"))
	if !ok || center.Kind != ZoneCenter || center.PanelID != "panel-7" {
		t.Errorf("center zone round trip = %+v, %v", center, ok)
	}
}

func TestDropEdgeSplitsRight(t *testing.T) {
	// Leaf(L1, [A,B]) root, drop A on edge-L1-right.
	root := leaf("L1", "A", "B")
	drag, _ := StartDrag(root, "A")

	next := Drop(root, drag, "edge-L1-right")
	mustValid(t, next)
	top, ok := next.(*Split)
	if !ok || top.Direction != Horizontal || len(top.Children) != 2 {
		t.Fatalf("unexpected root: %#v", next)
	}
	left := top.Children[0].(*Leaf)
	right := top.Children[1].(*Leaf)
	if len(left.Tabs) != 1 || left.Tabs[0].ID != "B" {
		t.Errorf("left tabs = %v, want [B]", tabOrder(t, next, left.ID))
	}
	if len(right.Tabs) != 1 || right.Tabs[0].ID != "A" {
		t.Errorf("right tabs = %v, want [A]", tabOrder(t, next, right.ID))
	}
	if right.ActiveTabID != "A" {
		t.Errorf("new leaf active = %q, want A", right.ActiveTabID)
	}
}

func TestDropEdgeOnOtherPanelRemovesEmptiedSource(t *testing.T) {
	root := split("s1", Horizontal, leaf("L1", "A"), leaf("L2", "B"))
	drag, _ := StartDrag(root, "A")

	next := Drop(root, drag, "edge-L2-bottom")
	mustValid(t, next)
	leaves := Leaves(next)
	if len(leaves) != 2 {
		t.Fatalf("leaf count = %d, want 2 (emptied source removed)", len(leaves))
	}
	if _, ok := FindLeaf(next, "L1"); ok {
		t.Error("emptied source leaf survived")
	}
	// B on top, A below it.
	top, ok := next.(*Split)
	if !ok || top.Direction != Vertical {
		t.Fatalf("unexpected root: %#v", next)
	}
	if leaves[0].ID != "L2" || len(leaves[1].Tabs) != 1 || leaves[1].Tabs[0].ID != "A" {
		t.Errorf("layout = %v, want [L2 above, new leaf holding A]", leafIDs(leaves))
	}
}

func TestDropEdgeSameDirectionStaysFlat(t *testing.T) {
	root := split("s1", Horizontal, leaf("L1", "A", "B"), leaf("L2", "C"))
	drag, _ := StartDrag(root, "A")

	next := Drop(root, drag, "edge-L2-right")
	mustValid(t, next)
	top, ok := next.(*Split)
	if !ok || top.Direction != Horizontal || len(top.Children) != 3 {
		t.Fatalf("unexpected root: %#v (want three flat columns)", next)
	}
}

func TestDropCenterMovesAndCollapses(t *testing.T) {
	// Split(horizontal, [Leaf(L1,[A]), Leaf(L2,[B])]),
	// drag A onto center-L2.
	root := split("s1", Horizontal, leaf("L1", "A"), leaf("L2", "B"))
	drag, _ := StartDrag(root, "A")

	next := Drop(root, drag, "center-L2")
	mustValid(t, next)
	result, ok := next.(*Leaf)
	if !ok || result.ID != "L2" {
		t.Fatalf("result = %#v, want sole leaf L2", next)
	}
	if got := tabOrder(t, next, "L2"); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Errorf("tabs = %v, want [B A]", got)
	}
	if result.ActiveTabID != "A" {
		t.Errorf("active = %q, want A", result.ActiveTabID)
	}
}

func TestDropCenterOnOwnPanelIsNoop(t *testing.T) {
	root := split("s1", Horizontal, leaf("L1", "A", "B"), leaf("L2", "C"))
	drag, _ := StartDrag(root, "A")

	if next := Drop(root, drag, "center-L1"); next != Node(root) {
		t.Error("center drop on own panel mutated the tree")
	}
}

func TestDropReorderWithinLeaf(t *testing.T) {
	// Leaf(L1, [A,B,C]), move A onto C.
	root := leaf("L1", "A", "B", "C")
	drag, _ := StartDrag(root, "A")

	next := Drop(root, drag, "C")
	mustValid(t, next)
	if got := tabOrder(t, next, "L1"); !reflect.DeepEqual(got, []string{"B", "C", "A"}) {
		t.Fatalf("tabs = %v, want [B C A]", got)
	}

	// Round trip: moving A back onto the tab at its old position
	// restores the original order.
	drag, _ = StartDrag(next, "A")
	back := Drop(next, drag, "B")
	if got := tabOrder(t, back, "L1"); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Fatalf("round trip tabs = %v, want [A B C]", got)
	}
}

func TestDropReorderKeepsActiveTab(t *testing.T) {
	root := leaf("L1", "A", "B", "C")
	drag, _ := StartDrag(root, "C")
	next := Drop(root, drag, "A")
	if got := tabOrder(t, next, "L1"); !reflect.DeepEqual(got, []string{"C", "A", "B"}) {
		t.Fatalf("tabs = %v, want [C A B]", got)
	}
	l, _ := FindLeaf(next, "L1")
	if l.ActiveTabID != "A" {
		t.Errorf("active = %q, want A (reorder leaves activation alone)", l.ActiveTabID)
	}
}

func TestDropOnTabAcrossPanels(t *testing.T) {
	root := split("s1", Horizontal, leaf("L1", "A", "B"), leaf("L2", "C", "D"))
	drag, _ := StartDrag(root, "A")

	next := Drop(root, drag, "D")
	mustValid(t, next)
	if got := tabOrder(t, next, "L1"); !reflect.DeepEqual(got, []string{"B"}) {
		t.Errorf("source tabs = %v, want [B]", got)
	}
	if got := tabOrder(t, next, "L2"); !reflect.DeepEqual(got, []string{"C", "A", "D"}) {
		t.Errorf("dest tabs = %v, want [C A D]", got)
	}
	dest, _ := FindLeaf(next, "L2")
	if dest.ActiveTabID != "A" {
		t.Errorf("dest active = %q, want A", dest.ActiveTabID)
	}
}

func TestDropOnOwnTabIsNoop(t *testing.T) {
	root := leaf("L1", "A", "B")
	drag, _ := StartDrag(root, "A")
	if next := Drop(root, drag, "A"); next != Node(root) {
		t.Error("dropping a tab on itself mutated the tree")
	}
}

func TestDropUnresolvedTargetsAreInert(t *testing.T) {
	root := split("s1", Horizontal, leaf("L1", "A"), leaf("L2", "B"))
	drag, _ := StartDrag(root, "A")

	for _, zone := range []string{
		"",
		"edge-L1-diagonal",
		"edge-ghost-left",
		"center-ghost",
		"ghost-tab",
	} {
		if next := Drop(root, drag, zone); next != Node(root) {
			t.Errorf("Drop(%q) mutated the tree", zone)
		}
	}
}

func TestDropStaleDragIsInert(t *testing.T) {
	root := split("s1", Horizontal, leaf("L1", "A"), leaf("L2", "B"))
	drag, _ := StartDrag(root, "A")

	// The tab disappears mid-gesture (e.g. closed by the backend).
	without := UpdateLeaf(root, "L1", RemoveTab("A"))
	if next := Drop(without, drag, "center-L2"); next != Node(without) {
		t.Error("stale drag mutated the tree")
	}
}

func TestSuppressEdgeZones(t *testing.T) {
	root := split("s1", Horizontal, leaf("L1", "A"), leaf("L2", "B", "C"))

	single, _ := StartDrag(root, "A")
	if !single.SuppressEdgeZones(root, "L1") {
		t.Error("edge zones offered on source panel holding only the dragged tab")
	}
	if single.SuppressEdgeZones(root, "L2") {
		t.Error("edge zones suppressed on an unrelated panel")
	}

	multi, _ := StartDrag(root, "B")
	if multi.SuppressEdgeZones(root, "L2") {
		t.Error("edge zones suppressed though the source panel keeps a tab")
	}

	var idle *Drag
	if idle.SuppressEdgeZones(root, "L1") {
		t.Error("idle gesture suppressed edge zones")
	}
}

// TestDropSequencesPreserveInvariants drives a workspace through a
// fixed sequence of splits, moves, reorders, and removals, validating
// the invariants after every step.
func TestDropSequencesPreserveInvariants(t *testing.T) {
	root := Node(leaf("L1", "t1", "t2", "t3", "t4"))

	steps := []struct {
		tab  string
		zone string
	}{
		{"t1", "edge-L1-right"},
		{"t2", "edge-L1-bottom"},
		{"t3", "t4"}, // reorder within L1
		{"t4", "center-L1"},
		{"t2", "t1"}, // cross-panel move onto t1's leaf
		{"t3", "edge-L1-left"},
		{"t4", "t1"},
		{"t1", "center-L1"},
	}
	for i, step := range steps {
		drag, ok := StartDrag(root, step.tab)
		if !ok {
			t.Fatalf("step %d: tab %q missing", i, step.tab)
		}
		source, _ := FindLeafByTab(root, step.tab)
		if zone, parsed := ParseDropZone(step.zone); parsed && zone.Kind == ZoneEdge &&
			drag.SuppressEdgeZones(root, zone.PanelID) {
			// The UI would not offer this zone; skip as a cancel.
			continue
		}
		root = Drop(root, drag, step.zone)
		if root == nil {
			t.Fatalf("step %d: Drop returned nil", i)
		}
		if err := Validate(root); err != nil {
			t.Fatalf("step %d (%s → %s, from %s): %v", i, step.tab, step.zone, source.ID, err)
		}
	}
	// All four tabs survived the shuffle.
	for _, tab := range []string{"t1", "t2", "t3", "t4"} {
		if _, ok := FindLeafByTab(root, tab); !ok {
			t.Errorf("tab %q lost during the sequence", tab)
		}
	}
}
