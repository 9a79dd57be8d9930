// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/termdeck-foundation/termdeck/lib/panel"
)

// Rect is a cell rectangle in screen coordinates. X grows rightward,
// Y downward; Width and Height are in cells.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the cell (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// TabHit is the horizontal span a tab occupies in its panel's tab bar,
// in screen coordinates. EndX is exclusive.
type TabHit struct {
	TabID  string
	StartX int
	EndX   int
}

// Region is one leaf's share of the screen. Bounds includes the
// border; TabBar is the first interior row; Content is the interior
// below it. Tabs lists the clickable spans within TabBar, in tab
// order, truncated to the spans that fit.
type Region struct {
	Leaf    *panel.Leaf
	Bounds  Rect
	TabBar  Rect
	Content Rect
	Tabs    []TabHit
}

// maxTabTitleWidth bounds how many cells of a tab title are shown in
// the tab bar before truncation.
const maxTabTitleWidth = 16

// ComputeLayout sizes the panel tree into bounds. Splits divide their
// span evenly among children along the split direction; remainder
// cells go one each to the leading children, so sibling sizes differ
// by at most one cell and the layout is deterministic. Regions are
// returned in the tree's pre-order leaf order.
func ComputeLayout(root panel.Node, bounds Rect) []Region {
	if root == nil || bounds.Empty() {
		return nil
	}
	var regions []Region
	layoutNode(root, bounds, &regions)
	return regions
}

func layoutNode(node panel.Node, bounds Rect, regions *[]Region) {
	switch n := node.(type) {
	case *panel.Leaf:
		*regions = append(*regions, leafRegion(n, bounds))
	case *panel.Split:
		if len(n.Children) == 0 {
			return
		}
		if n.Direction == panel.Horizontal {
			spans := splitSpans(bounds.Width, len(n.Children))
			x := bounds.X
			for i, child := range n.Children {
				layoutNode(child, Rect{X: x, Y: bounds.Y, Width: spans[i], Height: bounds.Height}, regions)
				x += spans[i]
			}
		} else {
			spans := splitSpans(bounds.Height, len(n.Children))
			y := bounds.Y
			for i, child := range n.Children {
				layoutNode(child, Rect{X: bounds.X, Y: y, Width: bounds.Width, Height: spans[i]}, regions)
				y += spans[i]
			}
		}
	}
}

// splitSpans divides total cells among n children: each gets total/n,
// and the first total%n children get one extra cell.
func splitSpans(total, n int) []int {
	spans := make([]int, n)
	base := total / n
	extra := total % n
	for i := range spans {
		spans[i] = base
		if i < extra {
			spans[i]++
		}
	}
	return spans
}

// leafRegion carves a leaf's bounds into tab bar and content. The
// border consumes one cell on each side; the tab bar is the first
// interior row. Panels too small for an interior get empty inner
// rects but keep their bounds so hit testing still resolves them.
func leafRegion(leaf *panel.Leaf, bounds Rect) Region {
	inner := Rect{
		X:      bounds.X + 1,
		Y:      bounds.Y + 1,
		Width:  bounds.Width - 2,
		Height: bounds.Height - 2,
	}
	region := Region{Leaf: leaf, Bounds: bounds}
	if inner.Empty() {
		return region
	}
	region.TabBar = Rect{X: inner.X, Y: inner.Y, Width: inner.Width, Height: 1}
	region.Content = Rect{X: inner.X, Y: inner.Y + 1, Width: inner.Width, Height: inner.Height - 1}

	x := region.TabBar.X
	limit := region.TabBar.X + region.TabBar.Width
	for _, tab := range leaf.Tabs {
		width := ansi.StringWidth(tabLabel(tab))
		if x+width > limit {
			break
		}
		region.Tabs = append(region.Tabs, TabHit{TabID: tab.ID, StartX: x, EndX: x + width})
		x += width
	}
	return region
}

// tabLabel is the unstyled text a tab occupies in the tab bar. The
// rendered form applies colors to exactly this text, so hit spans and
// drawn cells stay in lockstep.
func tabLabel(tab panel.Tab) string {
	title := tab.Title
	if ansi.StringWidth(title) > maxTabTitleWidth {
		title = ansi.Truncate(title, maxTabTitleWidth-1, "…")
	}
	return " " + KindGlyph(tab.Kind) + " " + title + " "
}

// RegionFor returns the region rendering the given panel.
func RegionFor(regions []Region, panelID string) (Region, bool) {
	for _, region := range regions {
		if region.Leaf.ID == panelID {
			return region, true
		}
	}
	return Region{}, false
}

// RegionAt returns the region whose bounds contain the cell (x, y).
func RegionAt(regions []Region, x, y int) (Region, bool) {
	for _, region := range regions {
		if region.Bounds.Contains(x, y) {
			return region, true
		}
	}
	return Region{}, false
}

// TabAt returns the tab ID under the cell (x, y), if the cell is on a
// tab span in some panel's tab bar.
func TabAt(regions []Region, x, y int) (string, bool) {
	for _, region := range regions {
		if y != region.TabBar.Y || !region.TabBar.Contains(x, y) {
			continue
		}
		for _, hit := range region.Tabs {
			if x >= hit.StartX && x < hit.EndX {
				return hit.TabID, true
			}
		}
	}
	return "", false
}
