// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/termdeck-foundation/termdeck/lib/panel"
)

func TestRendererViewDimensions(t *testing.T) {
	root := &panel.Split{
		ID:        "s1",
		Direction: panel.Horizontal,
		Children:  []panel.Node{testLeaf("left", "a"), testLeaf("right", "b")},
	}
	bounds := Rect{X: 0, Y: 0, Width: 80, Height: 24}
	regions := ComputeLayout(root, bounds)

	view := Renderer{Theme: DefaultTheme}.View(bounds, regions, "left")
	lines := strings.Split(view, "\n")
	if len(lines) != 24 {
		t.Fatalf("view has %d lines, want 24", len(lines))
	}
	for i, line := range lines {
		if width := ansi.StringWidth(line); width != 80 {
			t.Errorf("line %d width = %d, want 80", i, width)
		}
	}
}

func TestRendererContentClipped(t *testing.T) {
	leaf := testLeaf("p1", "shell")
	bounds := Rect{X: 0, Y: 0, Width: 20, Height: 6}
	regions := ComputeLayout(leaf, bounds)

	content := func(tab panel.Tab, width, height int) []string {
		lines := make([]string, 10)
		for i := range lines {
			lines[i] = strings.Repeat("x", 30)
		}
		return lines
	}
	view := Renderer{Theme: DefaultTheme, Content: content}.View(bounds, regions, "p1")

	for i, line := range strings.Split(view, "\n") {
		if width := ansi.StringWidth(line); width != 20 {
			t.Errorf("line %d width = %d, want 20", i, width)
		}
	}
}

func TestSpliceOverlayPreservesWidth(t *testing.T) {
	view := blankCanvas(20, 5)
	overlay := []string{"XXXX", "XXXX"}

	spliced := SpliceOverlay(view, overlay, 5, 1)
	lines := strings.Split(spliced, "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	for i, line := range lines {
		if width := ansi.StringWidth(line); width != 20 {
			t.Errorf("line %d width = %d, want 20", i, width)
		}
	}
	if !strings.Contains(lines[1], "XXXX") || !strings.Contains(lines[2], "XXXX") {
		t.Error("overlay content missing")
	}
	if strings.Contains(lines[0], "X") || strings.Contains(lines[3], "X") {
		t.Error("overlay leaked outside its rows")
	}
}

func TestSpliceOverlayOutOfBoundsRowsSkipped(t *testing.T) {
	view := blankCanvas(10, 2)
	spliced := SpliceOverlay(view, []string{"AA", "BB", "CC", "DD"}, 0, 1)
	lines := strings.Split(spliced, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[1], "AA") {
		t.Error("in-bounds overlay row missing")
	}
}

func TestHighlightZoneCoversRect(t *testing.T) {
	origin := Rect{X: 0, Y: 0, Width: 20, Height: 6}
	view := blankCanvas(20, 6)

	highlighted := HighlightZone(view, Rect{X: 2, Y: 1, Width: 5, Height: 3}, origin, DefaultTheme.DropZoneEdge)
	lines := strings.Split(highlighted, "\n")
	for _, row := range []int{1, 2, 3} {
		if !strings.Contains(lines[row], "░") {
			t.Errorf("row %d missing highlight shading", row)
		}
	}
	if strings.Contains(lines[0], "░") || strings.Contains(lines[4], "░") {
		t.Error("highlight leaked outside its rows")
	}
}

func TestDragPreviewTruncatesTitle(t *testing.T) {
	root := testLeaf("p1", "a-very-long-connection-name-indeed")
	drag, ok := panel.StartDrag(root, "p1-tab-a-very-long-connection-name-indeed")
	if !ok {
		t.Fatal("StartDrag failed")
	}
	preview := DragPreview(drag, DefaultTheme)
	if len(preview) != 1 {
		t.Fatalf("got %d preview lines, want 1", len(preview))
	}
	if width := ansi.StringWidth(preview[0]); width > maxTabTitleWidth+4 {
		t.Errorf("preview width = %d, want <= %d", width, maxTabTitleWidth+4)
	}
	if DragPreview(nil, DefaultTheme) != nil {
		t.Error("nil drag should render no preview")
	}
}
