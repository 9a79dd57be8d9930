// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"testing"

	"github.com/termdeck-foundation/termdeck/lib/panel"
)

// dragFor starts a gesture for the named tab or fails the test.
func dragFor(t *testing.T, root panel.Node, tabID string) *panel.Drag {
	t.Helper()
	drag, ok := panel.StartDrag(root, tabID)
	if !ok {
		t.Fatalf("StartDrag(%q) failed", tabID)
	}
	return drag
}

func TestDropZonesSingleLeaf(t *testing.T) {
	root := &panel.Split{
		ID:        "s1",
		Direction: panel.Horizontal,
		Children:  []panel.Node{testLeaf("left", "a", "b"), testLeaf("right", "c")},
	}
	regions := ComputeLayout(root, Rect{X: 0, Y: 0, Width: 80, Height: 24})
	drag := dragFor(t, root, "left-tab-a")

	zones := DropZones(root, regions, drag)

	var edges, centers, tabs int
	for _, zone := range zones {
		parsed, ok := panel.ParseDropZone(zone.ID)
		if !ok {
			t.Fatalf("zone %q does not parse", zone.ID)
		}
		switch parsed.Kind {
		case panel.ZoneEdge:
			edges++
		case panel.ZoneCenter:
			centers++
		case panel.ZoneTab:
			tabs++
		}
	}
	if edges != 8 {
		t.Errorf("edges = %d, want 8", edges)
	}
	if centers != 2 {
		t.Errorf("centers = %d, want 2", centers)
	}
	if tabs != 3 {
		t.Errorf("tab zones = %d, want 3", tabs)
	}
}

func TestDropZonesEdgeSuppression(t *testing.T) {
	// Dragging the only tab of "solo": its own edge zones are
	// suppressed, the neighbor's are not.
	root := &panel.Split{
		ID:        "s1",
		Direction: panel.Horizontal,
		Children:  []panel.Node{testLeaf("solo", "a"), testLeaf("other", "b", "c")},
	}
	regions := ComputeLayout(root, Rect{X: 0, Y: 0, Width: 80, Height: 24})
	drag := dragFor(t, root, "solo-tab-a")

	zones := DropZones(root, regions, drag)

	for _, zone := range zones {
		parsed, _ := panel.ParseDropZone(zone.ID)
		if parsed.Kind == panel.ZoneEdge && parsed.PanelID == "solo" {
			t.Errorf("suppressed edge zone %q still present", zone.ID)
		}
	}
	// The source panel's center zone remains (a drop there is inert).
	if _, ok := HitTest(zones, 20, 12); !ok {
		t.Error("source panel center should still be a zone")
	}
}

func TestHitTestPrecedence(t *testing.T) {
	leaf := testLeaf("p1", "aa", "bb")
	regions := ComputeLayout(leaf, Rect{X: 0, Y: 0, Width: 40, Height: 12})
	drag := dragFor(t, leaf, "p1-tab-aa")
	zones := DropZones(leaf, regions, drag)

	// A cell on a tab span resolves to the tab, not a panel zone.
	zoneID, ok := HitTest(zones, 8, 1)
	if !ok || zoneID != "p1-tab-bb" {
		t.Errorf("HitTest on tab span = %q, %v, want p1-tab-bb", zoneID, ok)
	}

	// A cell in the left quarter of the content resolves to the left
	// edge before the center.
	zoneID, ok = HitTest(zones, 2, 6)
	if !ok {
		t.Fatal("HitTest in content missed")
	}
	parsed, _ := panel.ParseDropZone(zoneID)
	if parsed.Kind != panel.ZoneEdge || parsed.Edge != panel.EdgeLeft {
		t.Errorf("left-quarter hit = %q, want left edge", zoneID)
	}

	// Dead center resolves to the center zone.
	zoneID, ok = HitTest(zones, 20, 6)
	if !ok {
		t.Fatal("HitTest at center missed")
	}
	parsed, _ = panel.ParseDropZone(zoneID)
	if parsed.Kind != panel.ZoneCenter || parsed.PanelID != "p1" {
		t.Errorf("center hit = %q, want center-p1", zoneID)
	}

	// Outside every panel: no zone.
	if _, ok := HitTest(zones, 100, 6); ok {
		t.Error("HitTest outside bounds should miss")
	}
}

func TestZoneDropRoundTrip(t *testing.T) {
	// A zone resolved by hit testing feeds straight into Drop and
	// produces the move it advertises.
	root := &panel.Split{
		ID:        "s1",
		Direction: panel.Horizontal,
		Children:  []panel.Node{testLeaf("left", "a", "b"), testLeaf("right", "c")},
	}
	regions := ComputeLayout(root, Rect{X: 0, Y: 0, Width: 80, Height: 24})
	drag := dragFor(t, root, "left-tab-a")
	zones := DropZones(root, regions, drag)

	// Center of the right panel.
	zoneID, ok := HitTest(zones, 60, 12)
	if !ok {
		t.Fatal("HitTest missed the right panel")
	}

	next := panel.Drop(root, drag, zoneID)
	dest, ok := panel.FindLeafByTab(next, "left-tab-a")
	if !ok {
		t.Fatal("dragged tab vanished")
	}
	if dest.ID != "right" {
		t.Errorf("tab landed in %q, want right", dest.ID)
	}
}

func TestQuarter(t *testing.T) {
	tests := []struct {
		span int
		want int
	}{
		{span: 40, want: 10},
		{span: 4, want: 1},
		{span: 3, want: 1},
		{span: 1, want: 1},
		{span: 2, want: 1},
	}
	for _, tt := range tests {
		if got := quarter(tt.span); got != tt.want {
			t.Errorf("quarter(%d) = %d, want %d", tt.span, got, tt.want)
		}
	}
}
