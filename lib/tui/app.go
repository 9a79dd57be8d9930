// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/termdeck-foundation/termdeck/lib/backend"
	"github.com/termdeck-foundation/termdeck/lib/codec"
	"github.com/termdeck-foundation/termdeck/lib/connection"
	"github.com/termdeck-foundation/termdeck/lib/panel"
	"github.com/termdeck-foundation/termdeck/lib/workspace"
)

// callTimeout bounds each backend request issued from the UI.
const callTimeout = 5 * time.Second

// outputScrollback is how many lines of session output each terminal
// tab retains for rendering.
const outputScrollback = 500

// Options configures an App. Zero-value fields get defaults: the
// built-in theme, the default slog logger, no backend (terminal tabs
// render a placeholder), no layout persistence.
type Options struct {
	Theme       Theme
	Logger      *slog.Logger
	Client      *backend.Client
	Connections []connection.SavedConnection
	LayoutPath  string
}

// backendEventMsg wraps a backend push event for delivery through the
// bubbletea message loop.
type backendEventMsg struct {
	event backend.Event
}

// sessionStartedMsg reports the outcome of an asynchronous session
// create for a freshly opened terminal tab.
type sessionStartedMsg struct {
	tabID     string
	sessionID string
	err       error
}

// App is the top-level bubbletea model for the workspace.
type App struct {
	store       *workspace.Store
	client      *backend.Client
	logger      *slog.Logger
	theme       Theme
	connections []connection.SavedConnection
	layoutPath  string

	// Terminal dimensions (set by WindowSizeMsg). The bottom row is
	// the status bar; panels lay out above it.
	width  int
	height int
	ready  bool

	regions       []Region
	activePanelID string

	// Drag gesture state. pressed tracks a button-down on a tab that
	// has not yet moved; the gesture promotes to a drag on the first
	// motion away from the press cell.
	drag      *panel.Drag
	zones     []Zone
	dragX     int
	dragY     int
	hoverZone string
	pressed   bool
	pressX    int
	pressY    int
	pressTab  string

	picker *ConnectionPicker

	// Per-tab session state. sessions maps tab ID to backend session
	// ID once the create round-trip completes; output holds recent
	// lines; exited holds exit codes for dead sessions.
	sessions map[string]string
	output   map[string][]string
	exited   map[string]int

	events chan backend.Event
	status string
}

// NewApp builds the workspace UI over the given store.
func NewApp(store *workspace.Store, options Options) App {
	theme := options.Theme
	if theme == (Theme{}) {
		theme = DefaultTheme
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := App{
		store:       store,
		client:      options.Client,
		logger:      logger,
		theme:       theme,
		connections: options.Connections,
		layoutPath:  options.LayoutPath,
		sessions:    make(map[string]string),
		output:      make(map[string][]string),
		exited:      make(map[string]int),
	}

	if leaves := panel.Leaves(store.Root()); len(leaves) > 0 {
		app.activePanelID = leaves[0].ID
	}

	if app.client != nil {
		// The handler runs on the client's read goroutine and must
		// not block; a full channel drops the event.
		app.events = make(chan backend.Event, 256)
		app.client.OnEvent(func(event backend.Event) {
			select {
			case app.events <- event:
			default:
				logger.Warn("event queue full, dropping", "event", event.Name)
			}
		})
	}

	return app
}

// Init implements tea.Model.
func (app App) Init() tea.Cmd {
	if app.events == nil {
		return nil
	}
	return listenForBackendEvent(app.events)
}

// listenForBackendEvent blocks until a backend event arrives, then
// delivers it as a backendEventMsg.
func listenForBackendEvent(events <-chan backend.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return backendEventMsg{event: event}
	}
}

// Update implements tea.Model.
func (app App) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		app.width = message.Width
		app.height = message.Height
		app.ready = app.width > 0 && app.height > 1
		app.recompute()
		if app.picker != nil {
			app.picker.SetSize(app.pickerWidth(), app.pickerHeight())
		}
		return app, app.resizeVisibleSessions()

	case tea.KeyMsg:
		return app.handleKey(message)

	case tea.MouseMsg:
		cmd := app.handleMouse(message)
		return app, cmd

	case backendEventMsg:
		app.handleBackendEvent(message.event)
		return app, listenForBackendEvent(app.events)

	case sessionStartedMsg:
		if message.err != nil {
			app.status = "session failed: " + message.err.Error()
			app.appendOutput(message.tabID, "could not start session: "+message.err.Error())
			return app, nil
		}
		app.sessions[message.tabID] = message.sessionID
		return app, app.resizeVisibleSessions()
	}

	return app, nil
}

// handleKey routes keyboard input: picker first when open, then the
// workspace chords, then the focused terminal session.
func (app App) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if app.picker != nil {
		switch message.String() {
		case "esc":
			app.picker = nil
			return app, nil
		case "enter":
			conn, ok := app.picker.Selected()
			app.picker = nil
			if !ok {
				return app, nil
			}
			return app, app.openConnection(conn)
		default:
			return app, app.picker.Update(message)
		}
	}

	switch message.String() {
	case "ctrl+q":
		return app, app.quit()
	case "ctrl+n":
		app.picker = NewConnectionPicker(app.connections, app.theme, app.pickerWidth(), app.pickerHeight())
		return app, nil
	case "ctrl+w":
		return app, app.closeActiveTab()
	case "ctrl+o":
		app.cycleActivePanel()
		return app, nil
	}

	return app, app.forwardKey(message)
}

// handleMouse drives the drag state machine: press on a tab arms a
// gesture, the first motion away from the press cell starts the drag,
// release over a zone completes it. Presses elsewhere move panel
// focus.
func (app *App) handleMouse(message tea.MouseMsg) tea.Cmd {
	if app.picker != nil {
		return nil
	}

	switch message.Action {
	case tea.MouseActionPress:
		if message.Button != tea.MouseButtonLeft {
			return nil
		}
		if region, ok := RegionAt(app.regions, message.X, message.Y); ok {
			app.activePanelID = region.Leaf.ID
		}
		if tabID, ok := TabAt(app.regions, message.X, message.Y); ok {
			app.pressed = true
			app.pressX = message.X
			app.pressY = message.Y
			app.pressTab = tabID
			app.store.ActivateTab(tabID)
			app.recompute()
		}
		return nil

	case tea.MouseActionMotion:
		if app.drag == nil && app.pressed &&
			(message.X != app.pressX || message.Y != app.pressY) {
			drag, ok := panel.StartDrag(app.store.Root(), app.pressTab)
			if !ok {
				app.pressed = false
				return nil
			}
			app.drag = drag
			app.zones = DropZones(app.store.Root(), app.regions, drag)
		}
		if app.drag != nil {
			app.dragX = message.X
			app.dragY = message.Y
			app.hoverZone = ""
			if zoneID, ok := HitTest(app.zones, message.X, message.Y); ok {
				app.hoverZone = zoneID
			}
		}
		return nil

	case tea.MouseActionRelease:
		defer app.clearGesture()
		if app.drag == nil {
			return nil
		}
		zoneID, ok := HitTest(app.zones, message.X, message.Y)
		if !ok {
			return nil
		}
		app.store.CompleteDrop(app.drag, zoneID)
		app.recompute()
		return app.resizeVisibleSessions()
	}

	return nil
}

// handleBackendEvent applies a pushed backend event to the UI state.
func (app *App) handleBackendEvent(event backend.Event) {
	switch event.Name {
	case backend.EventSessionOutput:
		var output backend.SessionOutput
		if err := codec.Unmarshal(event.Body, &output); err != nil {
			app.logger.Warn("bad session output event", "error", err)
			return
		}
		if tabID, ok := app.tabForSession(output.SessionID); ok {
			app.appendOutput(tabID, string(output.Data))
		}

	case backend.EventSessionExit:
		var exit backend.SessionExit
		if err := codec.Unmarshal(event.Body, &exit); err != nil {
			return
		}
		if tabID, ok := app.tabForSession(exit.SessionID); ok {
			app.exited[tabID] = exit.ExitCode
			delete(app.sessions, tabID)
			app.appendOutput(tabID, fmt.Sprintf("[process exited with code %d]", exit.ExitCode))
		}

	case backend.EventSessionError:
		var sessionError backend.SessionError
		if err := codec.Unmarshal(event.Body, &sessionError); err != nil {
			return
		}
		app.status = "session error: " + sessionError.Message
		if tabID, ok := app.tabForSession(sessionError.SessionID); ok {
			app.appendOutput(tabID, "error: "+sessionError.Message)
		}

	case backend.EventTunnelState:
		var state backend.TunnelStateChange
		if err := codec.Unmarshal(event.Body, &state); err != nil {
			return
		}
		app.status = "tunnel " + state.TunnelID + ": " + state.Status

	default:
		app.logger.Debug("unhandled backend event", "event", event.Name)
	}
}

// openConnection opens a terminal tab for the connection in the
// focused panel and asks the backend for a session.
func (app *App) openConnection(conn connection.SavedConnection) tea.Cmd {
	tab := panel.NewTab(conn.Name, panel.KindTerminal, map[string]string{
		"connectionId": conn.ID,
	})
	app.store.OpenTab(app.activePanelID, tab)
	app.recompute()

	if app.client == nil {
		app.appendOutput(tab.ID, "no backend connected")
		return nil
	}

	rows, cols := app.contentSize(tab.ID)
	client := app.client
	connectionID := conn.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		sessionID, err := client.CreateSession(ctx, connectionID, rows, cols)
		return sessionStartedMsg{tabID: tab.ID, sessionID: sessionID, err: err}
	}
}

// closeActiveTab closes the focused panel's active tab, ending its
// backend session if one is live.
func (app *App) closeActiveTab() tea.Cmd {
	leaf, ok := panel.FindLeaf(app.store.Root(), app.activePanelID)
	if !ok || leaf.ActiveTabID == "" {
		return nil
	}
	tabID := leaf.ActiveTabID
	sessionID, live := app.sessions[tabID]

	app.store.CloseTab(tabID)
	delete(app.sessions, tabID)
	delete(app.output, tabID)
	delete(app.exited, tabID)
	app.ensureActivePanel()
	app.recompute()

	if !live || app.client == nil {
		return nil
	}
	client := app.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		if err := client.CloseSession(ctx, sessionID); err != nil {
			return sessionStartedMsg{err: fmt.Errorf("closing session: %w", err)}
		}
		return nil
	}
}

// forwardKey sends a keystroke to the focused terminal session.
func (app *App) forwardKey(message tea.KeyMsg) tea.Cmd {
	if app.client == nil {
		return nil
	}
	leaf, ok := panel.FindLeaf(app.store.Root(), app.activePanelID)
	if !ok {
		return nil
	}
	sessionID, ok := app.sessions[leaf.ActiveTabID]
	if !ok {
		return nil
	}
	data := keyBytes(message)
	if len(data) == 0 {
		return nil
	}
	client := app.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		if err := client.SendInput(ctx, sessionID, data); err != nil {
			return sessionStartedMsg{err: fmt.Errorf("sending input: %w", err)}
		}
		return nil
	}
}

// keyBytes translates a key message into the byte sequence a terminal
// session expects. Keys with no terminal meaning return nil.
func keyBytes(message tea.KeyMsg) []byte {
	switch message.Type {
	case tea.KeyRunes:
		return []byte(string(message.Runes))
	case tea.KeySpace:
		return []byte(" ")
	case tea.KeyEnter:
		return []byte("\r")
	case tea.KeyBackspace:
		return []byte("\x7f")
	case tea.KeyTab:
		return []byte("\t")
	case tea.KeyEsc:
		return []byte("\x1b")
	case tea.KeyUp:
		return []byte("\x1b[A")
	case tea.KeyDown:
		return []byte("\x1b[B")
	case tea.KeyRight:
		return []byte("\x1b[C")
	case tea.KeyLeft:
		return []byte("\x1b[D")
	case tea.KeyCtrlC:
		return []byte("\x03")
	case tea.KeyCtrlD:
		return []byte("\x04")
	case tea.KeyCtrlZ:
		return []byte("\x1a")
	}
	return nil
}

// resizeVisibleSessions tells the backend the new content size of
// every live session after a layout change.
func (app *App) resizeVisibleSessions() tea.Cmd {
	if app.client == nil || len(app.sessions) == 0 {
		return nil
	}
	type resize struct {
		sessionID  string
		rows, cols int
	}
	var resizes []resize
	for tabID, sessionID := range app.sessions {
		rows, cols := app.contentSize(tabID)
		if rows > 0 && cols > 0 {
			resizes = append(resizes, resize{sessionID: sessionID, rows: rows, cols: cols})
		}
	}
	if len(resizes) == 0 {
		return nil
	}
	client := app.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		for _, r := range resizes {
			if err := client.ResizeSession(ctx, r.sessionID, r.rows, r.cols); err != nil {
				return sessionStartedMsg{err: fmt.Errorf("resizing session: %w", err)}
			}
		}
		return nil
	}
}

// quit persists the layout (when configured) and stops the program.
func (app *App) quit() tea.Cmd {
	if app.layoutPath != "" {
		if err := app.store.SaveLayout(app.layoutPath); err != nil {
			app.logger.Error("saving layout", "path", app.layoutPath, "error", err)
		}
	}
	return tea.Quit
}

// recompute re-derives regions from the current tree and screen size.
func (app *App) recompute() {
	app.regions = ComputeLayout(app.store.Root(), app.workArea())
	app.ensureActivePanel()
	if app.drag != nil {
		app.zones = DropZones(app.store.Root(), app.regions, app.drag)
	}
}

// ensureActivePanel keeps focus on a panel that still exists.
func (app *App) ensureActivePanel() {
	if _, ok := panel.FindLeaf(app.store.Root(), app.activePanelID); ok {
		return
	}
	if leaves := panel.Leaves(app.store.Root()); len(leaves) > 0 {
		app.activePanelID = leaves[0].ID
	}
}

// cycleActivePanel moves focus to the next leaf in pre-order.
func (app *App) cycleActivePanel() {
	leaves := panel.Leaves(app.store.Root())
	for i, leaf := range leaves {
		if leaf.ID == app.activePanelID {
			app.activePanelID = leaves[(i+1)%len(leaves)].ID
			return
		}
	}
	if len(leaves) > 0 {
		app.activePanelID = leaves[0].ID
	}
}

// clearGesture resets all drag state.
func (app *App) clearGesture() {
	app.drag = nil
	app.zones = nil
	app.hoverZone = ""
	app.pressed = false
	app.pressTab = ""
}

// tabForSession finds the terminal tab bound to a backend session.
func (app *App) tabForSession(sessionID string) (string, bool) {
	for tabID, id := range app.sessions {
		if id == sessionID {
			return tabID, true
		}
	}
	return "", false
}

// appendOutput adds session output to a tab's line buffer, keeping at
// most outputScrollback lines.
func (app *App) appendOutput(tabID, text string) {
	lines := app.output[tabID]
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		lines = append(lines, strings.TrimRight(line, "\r"))
	}
	if len(lines) > outputScrollback {
		lines = lines[len(lines)-outputScrollback:]
	}
	app.output[tabID] = lines
}

// contentSize returns the rows and cols of the panel content area
// currently showing the tab, or zeros when the tab is not visible.
func (app *App) contentSize(tabID string) (rows, cols int) {
	leaf, ok := panel.FindLeafByTab(app.store.Root(), tabID)
	if !ok {
		return 0, 0
	}
	region, ok := RegionFor(app.regions, leaf.ID)
	if !ok || region.Content.Empty() {
		return 0, 0
	}
	return region.Content.Height, region.Content.Width
}

// workArea is the screen minus the status bar row.
func (app *App) workArea() Rect {
	return Rect{X: 0, Y: 0, Width: app.width, Height: app.height - 1}
}

func (app *App) pickerWidth() int {
	width := app.width - 10
	if width > 60 {
		width = 60
	}
	if width < 20 {
		width = 20
	}
	return width
}

func (app *App) pickerHeight() int {
	height := app.height - 6
	if height > 20 {
		height = 20
	}
	if height < 5 {
		height = 5
	}
	return height
}

// View implements tea.Model.
func (app App) View() string {
	if !app.ready {
		return "initializing..."
	}

	area := app.workArea()
	renderer := Renderer{Theme: app.theme, Content: app.renderContent}
	view := renderer.View(area, app.regions, app.activePanelID)

	if app.drag != nil && app.hoverZone != "" {
		for _, zone := range app.zones {
			if zone.ID != app.hoverZone {
				continue
			}
			color := app.theme.DropZoneEdge
			if dropZone, ok := panel.ParseDropZone(zone.ID); ok && dropZone.Kind != panel.ZoneEdge {
				color = app.theme.DropZoneCenter
			}
			view = HighlightZone(view, zone.Bounds, area, color)
			break
		}
	}

	if app.drag != nil {
		preview := DragPreview(app.drag, app.theme)
		previewWidth := 0
		if len(preview) > 0 {
			previewWidth = ansi.StringWidth(preview[0])
		}
		x := app.dragX + 1
		if x+previewWidth > area.Width {
			x = area.Width - previewWidth
		}
		if x < 0 {
			x = 0
		}
		y := app.dragY + 1
		if y >= area.Height {
			y = area.Height - 1
		}
		view = SpliceOverlay(view, preview, x, y)
	}

	if app.picker != nil {
		overlay := strings.Split(app.picker.View(), "\n")
		overlayWidth := 0
		if len(overlay) > 0 {
			overlayWidth = ansi.StringWidth(overlay[0])
		}
		x := (area.Width - overlayWidth) / 2
		y := (area.Height - len(overlay)) / 2
		if x < 0 {
			x = 0
		}
		if y < 0 {
			y = 0
		}
		view = SpliceOverlay(view, overlay, x, y)
	}

	return view + "\n" + app.statusBar()
}

// renderContent renders a tab's content area: buffered session output
// for terminals, a kind placeholder for everything else.
func (app App) renderContent(tab panel.Tab, width, height int) []string {
	if tab.Kind != panel.KindTerminal {
		faint := lipgloss.NewStyle().Foreground(app.theme.FaintText)
		return []string{faint.Render(string(tab.Kind) + ": " + tab.Title)}
	}
	lines := app.output[tab.ID]
	if len(lines) == 0 {
		faint := lipgloss.NewStyle().Foreground(app.theme.FaintText)
		if _, live := app.sessions[tab.ID]; live {
			return nil
		}
		if _, dead := app.exited[tab.ID]; dead {
			return []string{faint.Render("[session ended]")}
		}
		return []string{faint.Render("connecting...")}
	}
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		if ansi.StringWidth(line) > width {
			line = ansi.Truncate(line, width, "")
		}
		rendered = append(rendered, line)
	}
	return rendered
}

// statusBar renders the bottom row: transient status on the left, key
// hints on the right.
func (app App) statusBar() string {
	style := lipgloss.NewStyle().
		Foreground(app.theme.StatusBarForeground).
		Background(app.theme.StatusBarBackground)

	hints := "^N open  ^W close  ^O panel  ^Q quit"
	left := app.status
	if left == "" {
		left = fmt.Sprintf("%d panel(s)", len(app.regions))
	}

	gap := app.width - ansi.StringWidth(left) - ansi.StringWidth(hints) - 2
	if gap < 1 {
		avail := app.width - ansi.StringWidth(hints) - 3
		if avail < 0 {
			avail = 0
		}
		left = ansi.Truncate(left, avail, "…")
		gap = 1
	}
	return style.Render(" " + left + strings.Repeat(" ", gap) + hints + " ")
}

// Run starts the workspace UI and blocks until it exits.
func Run(app App) error {
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running workspace UI: %w", err)
	}
	return nil
}
