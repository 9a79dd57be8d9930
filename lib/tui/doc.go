// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui renders the panel workspace in a terminal. Built on
// bubbletea (Elm architecture), it binds the panel tree to the screen:
// a pure layout pass sizes nested splits into cell rectangles, a zone
// pass turns those rectangles into drop targets for mouse drags, and
// the app model wires the workspace store, the drag controller, and
// the backend session client together.
//
// The layout and zone passes are pure functions over the tree and the
// terminal size; all mutation goes through the workspace store.
package tui
