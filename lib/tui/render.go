// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/termdeck-foundation/termdeck/lib/panel"
)

// ContentFunc renders a tab's content area. It receives the tab and
// the interior size in cells and returns at most height lines, each
// at most width cells wide; short output is padded, long output
// clipped.
type ContentFunc func(tab panel.Tab, width, height int) []string

// Renderer draws a laid-out panel tree. Content is consulted for the
// active tab of each panel; a nil Content renders a placeholder.
type Renderer struct {
	Theme   Theme
	Content ContentFunc
}

// View renders the regions onto a blank canvas of the given bounds.
// The focused panel gets the focused border color.
func (r Renderer) View(bounds Rect, regions []Region, activePanelID string) string {
	canvas := blankCanvas(bounds.Width, bounds.Height)
	for _, region := range regions {
		lines := r.renderRegion(region, region.Leaf.ID == activePanelID)
		canvas = SpliceOverlay(canvas, lines, region.Bounds.X-bounds.X, region.Bounds.Y-bounds.Y)
	}
	return canvas
}

// renderRegion draws one panel: border, tab bar on the first interior
// row, active tab content below.
func (r Renderer) renderRegion(region Region, focused bool) []string {
	width := region.Bounds.Width
	height := region.Bounds.Height
	if width < 2 || height < 2 {
		return nil
	}

	borderColor := r.Theme.PanelBorder
	if focused {
		borderColor = r.Theme.FocusedPanelBorder
	}
	border := lipgloss.NewStyle().Foreground(borderColor)
	side := border.Render("│")
	inner := width - 2

	lines := make([]string, 0, height)
	lines = append(lines, border.Render("╭"+strings.Repeat("─", inner)+"╮"))

	if height > 2 {
		lines = append(lines, side+r.renderTabBar(region, inner)+side)
	}

	content := r.contentLines(region)
	for row := 0; row < height-3; row++ {
		line := ""
		if row < len(content) {
			line = content[row]
		}
		lines = append(lines, side+padTo(line, inner)+side)
	}

	lines = append(lines, border.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return lines
}

// renderTabBar styles each visible tab label. The styled labels cover
// exactly the spans layout computed, so clicks land where they look.
func (r Renderer) renderTabBar(region Region, width int) string {
	activeStyle := lipgloss.NewStyle().
		Foreground(r.Theme.ActiveTabForeground).
		Background(r.Theme.ActiveTabBackground)
	inactiveStyle := lipgloss.NewStyle().Foreground(r.Theme.InactiveTabForeground)

	var bar strings.Builder
	used := 0
	for _, hit := range region.Tabs {
		tab, ok := leafTab(region.Leaf, hit.TabID)
		if !ok {
			continue
		}
		label := tabLabel(tab)
		if tab.ID == region.Leaf.ActiveTabID {
			bar.WriteString(activeStyle.Render(label))
		} else {
			bar.WriteString(inactiveStyle.Render(label))
		}
		used += hit.EndX - hit.StartX
	}
	if used < width {
		bar.WriteString(strings.Repeat(" ", width-used))
	}
	return bar.String()
}

// contentLines renders the active tab's content area.
func (r Renderer) contentLines(region Region) []string {
	if region.Content.Empty() {
		return nil
	}
	tab, ok := leafTab(region.Leaf, region.Leaf.ActiveTabID)
	if !ok {
		return nil
	}
	if r.Content == nil {
		faint := lipgloss.NewStyle().Foreground(r.Theme.FaintText)
		return []string{faint.Render(string(tab.Kind) + ": " + tab.Title)}
	}
	lines := r.Content(tab, region.Content.Width, region.Content.Height)
	if len(lines) > region.Content.Height {
		lines = lines[len(lines)-region.Content.Height:]
	}
	return lines
}

// HighlightZone shades a drop zone's rectangle so the user sees where
// a release would land. The shading replaces the cells under it.
func HighlightZone(view string, bounds Rect, origin Rect, color lipgloss.Color) string {
	if bounds.Empty() {
		return view
	}
	style := lipgloss.NewStyle().Foreground(color)
	row := style.Render(strings.Repeat("░", bounds.Width))
	lines := make([]string, bounds.Height)
	for i := range lines {
		lines[i] = row
	}
	return SpliceOverlay(view, lines, bounds.X-origin.X, bounds.Y-origin.Y)
}

// DragPreview renders the one-line floating label that follows the
// pointer during a drag.
func DragPreview(drag *panel.Drag, theme Theme) []string {
	if drag == nil {
		return nil
	}
	style := lipgloss.NewStyle().
		Foreground(theme.DragPreviewForeground).
		Background(theme.DragPreviewBackground)
	title := drag.Title()
	if ansi.StringWidth(title) > maxTabTitleWidth {
		title = ansi.Truncate(title, maxTabTitleWidth-1, "…")
	}
	return []string{style.Render(" " + KindGlyph(drag.Kind()) + " " + title + " ")}
}

// blankCanvas returns height lines of width spaces.
func blankCanvas(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	row := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = row
	}
	return strings.Join(lines, "\n")
}

// padTo pads or clips a styled line to exactly width cells.
func padTo(line string, width int) string {
	cells := ansi.StringWidth(line)
	if cells > width {
		return ansi.Truncate(line, width, "")
	}
	if cells < width {
		return line + strings.Repeat(" ", width-cells)
	}
	return line
}

// leafTab returns the leaf's tab with the given ID.
func leafTab(leaf *panel.Leaf, tabID string) (panel.Tab, bool) {
	for _, tab := range leaf.Tabs {
		if tab.ID == tabID {
			return tab, true
		}
	}
	return panel.Tab{}, false
}
