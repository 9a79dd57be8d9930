// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/termdeck-foundation/termdeck/lib/panel"
	"github.com/termdeck-foundation/termdeck/lib/tunnel"
)

// Theme defines the color palette for the workspace UI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Tab bar.
	ActiveTabForeground   lipgloss.Color
	ActiveTabBackground   lipgloss.Color
	InactiveTabForeground lipgloss.Color

	// Panel chrome.
	PanelBorder        lipgloss.Color
	FocusedPanelBorder lipgloss.Color

	// Drag and drop. Edge highlights tint the strip that would become
	// a new split; the center highlight tints the merge target.
	DropZoneEdge   lipgloss.Color
	DropZoneCenter lipgloss.Color

	// Floating preview shown under the pointer while dragging a tab.
	DragPreviewForeground lipgloss.Color
	DragPreviewBackground lipgloss.Color

	// Tunnel and session status.
	StatusConnected    lipgloss.Color
	StatusConnecting   lipgloss.Color
	StatusReconnecting lipgloss.Color
	StatusDisconnected lipgloss.Color
	StatusError        lipgloss.Color

	// Bottom status bar.
	StatusBarForeground lipgloss.Color
	StatusBarBackground lipgloss.Color

	// Connection picker overlay.
	PickerBorder lipgloss.Color
}

// TunnelStatusColor returns the color for a tunnel status. Unknown
// values return FaintText.
func (theme Theme) TunnelStatusColor(status tunnel.Status) lipgloss.Color {
	switch status {
	case tunnel.StatusConnected:
		return theme.StatusConnected
	case tunnel.StatusConnecting:
		return theme.StatusConnecting
	case tunnel.StatusReconnecting:
		return theme.StatusReconnecting
	case tunnel.StatusDisconnected:
		return theme.StatusDisconnected
	case tunnel.StatusError:
		return theme.StatusError
	default:
		return theme.FaintText
	}
}

// KindGlyph returns a one-cell marker for a tab's content kind, shown
// before the title in the tab bar.
func KindGlyph(kind panel.ContentKind) string {
	switch kind {
	case panel.KindTerminal:
		return ">"
	case panel.KindSettings:
		return "*"
	case panel.KindLogViewer:
		return "="
	case panel.KindFileEditor:
		return "+"
	case panel.KindConnectionEditor:
		return "@"
	case panel.KindTunnelEditor:
		return "~"
	default:
		return "?"
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed for
// 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	ActiveTabForeground:   lipgloss.Color("255"),
	ActiveTabBackground:   lipgloss.Color("236"),
	InactiveTabForeground: lipgloss.Color("245"),

	PanelBorder:        lipgloss.Color("240"),
	FocusedPanelBorder: lipgloss.Color("75"), // blue

	DropZoneEdge:   lipgloss.Color("24"), // deep blue tint
	DropZoneCenter: lipgloss.Color("58"), // dark amber tint

	DragPreviewForeground: lipgloss.Color("255"),
	DragPreviewBackground: lipgloss.Color("237"),

	StatusConnected:    lipgloss.Color("114"), // green
	StatusConnecting:   lipgloss.Color("220"), // yellow/amber
	StatusReconnecting: lipgloss.Color("208"), // orange
	StatusDisconnected: lipgloss.Color("245"), // gray
	StatusError:        lipgloss.Color("196"), // red

	StatusBarForeground: lipgloss.Color("252"),
	StatusBarBackground: lipgloss.Color("235"),

	PickerBorder: lipgloss.Color("75"),
}
