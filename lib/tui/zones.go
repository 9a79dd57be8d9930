// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/termdeck-foundation/termdeck/lib/panel"
)

// Zone is a drop target: a rectangle that resolves a pointer release
// to a drop-zone ID the drag controller understands.
type Zone struct {
	ID     string
	Bounds Rect
}

// DropZones computes the drop targets for an in-flight drag. Per
// panel: one zone per visible tab span (insert at that tab's
// position), four edge strips over the content area (split off that
// side), and the remaining interior as the center zone (merge into
// the panel's tab list). Edge strips take a quarter of the content
// dimension, at least one cell. Panels where the gesture's edge zones
// are suppressed (dragging a panel's only tab within itself) get tab
// and center zones only.
//
// Zones are returned in precedence order: tabs, then edges, then
// centers. HitTest takes the first containing zone, so a cell on a
// tab span always resolves to the tab, and edge strips win over the
// center they border.
func DropZones(root panel.Node, regions []Region, drag *panel.Drag) []Zone {
	var tabs, edges, centers []Zone

	for _, region := range regions {
		for _, hit := range region.Tabs {
			tabs = append(tabs, Zone{
				ID:     hit.TabID,
				Bounds: Rect{X: hit.StartX, Y: region.TabBar.Y, Width: hit.EndX - hit.StartX, Height: 1},
			})
		}

		content := region.Content
		if content.Empty() {
			continue
		}
		panelID := region.Leaf.ID

		if !drag.SuppressEdgeZones(root, panelID) {
			horizontal := quarter(content.Width)
			vertical := quarter(content.Height)
			edges = append(edges,
				Zone{ID: panel.EdgeZoneID(panelID, panel.EdgeLeft), Bounds: Rect{
					X: content.X, Y: content.Y, Width: horizontal, Height: content.Height}},
				Zone{ID: panel.EdgeZoneID(panelID, panel.EdgeRight), Bounds: Rect{
					X: content.X + content.Width - horizontal, Y: content.Y, Width: horizontal, Height: content.Height}},
				Zone{ID: panel.EdgeZoneID(panelID, panel.EdgeTop), Bounds: Rect{
					X: content.X, Y: content.Y, Width: content.Width, Height: vertical}},
				Zone{ID: panel.EdgeZoneID(panelID, panel.EdgeBottom), Bounds: Rect{
					X: content.X, Y: content.Y + content.Height - vertical, Width: content.Width, Height: vertical}},
			)
		}

		centers = append(centers, Zone{ID: panel.CenterZoneID(panelID), Bounds: content})
	}

	zones := make([]Zone, 0, len(tabs)+len(edges)+len(centers))
	zones = append(zones, tabs...)
	zones = append(zones, edges...)
	return append(zones, centers...)
}

// quarter returns a quarter of span, at least one cell, and never
// more than half so opposing edge strips cannot overlap entirely.
func quarter(span int) int {
	q := span / 4
	if q < 1 {
		q = 1
	}
	if half := span / 2; q > half && half >= 1 {
		q = half
	}
	return q
}

// HitTest resolves a pointer position to the first containing zone's
// ID. ok=false when the position is over no drop target; releasing
// there cancels the gesture.
func HitTest(zones []Zone, x, y int) (string, bool) {
	for _, zone := range zones {
		if zone.Bounds.Contains(x, y) {
			return zone.ID, true
		}
	}
	return "", false
}
