// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/termdeck-foundation/termdeck/lib/connection"
)

// pickerItem adapts a saved connection to the bubbles list item
// interface.
type pickerItem struct {
	conn connection.SavedConnection
}

func (item pickerItem) Title() string { return item.conn.Name }

func (item pickerItem) Description() string {
	parts := []string{item.conn.Config.Type}
	if host, ok := item.conn.Config.Settings["host"].(string); ok && host != "" {
		parts = append(parts, host)
	}
	if item.conn.FolderID != "" {
		parts = append(parts, item.conn.FolderID)
	}
	return strings.Join(parts, " · ")
}

func (item pickerItem) FilterValue() string {
	return item.conn.Name + " " + item.conn.Config.Type
}

// ConnectionPicker is the overlay for opening a saved connection in
// the focused panel. Arrow keys navigate, typing filters, enter
// selects, escape dismisses.
type ConnectionPicker struct {
	list  list.Model
	theme Theme
}

// NewConnectionPicker builds a picker over the saved connections.
func NewConnectionPicker(conns []connection.SavedConnection, theme Theme, width, height int) *ConnectionPicker {
	items := make([]list.Item, len(conns))
	for i, conn := range conns {
		items[i] = pickerItem{conn: conn}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.ActiveTabForeground).
		BorderLeftForeground(theme.FocusedPanelBorder)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.FaintText).
		BorderLeftForeground(theme.FocusedPanelBorder)

	l := list.New(items, delegate, width, height)
	l.Title = "Open connection"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	return &ConnectionPicker{list: l, theme: theme}
}

// SetSize resizes the picker's inner list.
func (p *ConnectionPicker) SetSize(width, height int) {
	p.list.SetSize(width, height)
}

// Update routes a message to the inner list.
func (p *ConnectionPicker) Update(message tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(message)
	return cmd
}

// Selected returns the connection under the cursor.
func (p *ConnectionPicker) Selected() (connection.SavedConnection, bool) {
	item, ok := p.list.SelectedItem().(pickerItem)
	if !ok {
		return connection.SavedConnection{}, false
	}
	return item.conn, true
}

// View renders the picker inside a border, ready to splice over the
// workspace.
func (p *ConnectionPicker) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.theme.PickerBorder).
		Padding(0, 1).
		Render(p.list.View())
}
