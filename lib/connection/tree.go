// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package connection

import (
	"fmt"
	"strings"
)

// encodeComponent percent-encodes a name so that "/" in names cannot
// collide with the path separator of generated IDs.
func encodeComponent(name string) string {
	name = strings.ReplaceAll(name, "%", "%25")
	return strings.ReplaceAll(name, "/", "%2F")
}

// joinPath builds a path-based ID from an optional parent path and a
// name. An empty parent means root.
func joinPath(parent, name string) string {
	encoded := encodeComponent(name)
	if parent == "" {
		return encoded
	}
	return parent + "/" + encoded
}

// FolderID computes a folder's deterministic ID from its position in
// the tree.
func FolderID(parentPath, name string) string {
	return joinPath(parentPath, name)
}

// ConnectionID computes a connection's deterministic ID from its
// position in the tree.
func ConnectionID(folderPath, name string) string {
	return joinPath(folderPath, name)
}

// FlattenTree converts a nested tree into flat connection and folder
// slices with generated path-based IDs. parentPath is "" for the root.
func FlattenTree(children []TreeNode, parentPath string) ([]SavedConnection, []Folder) {
	var connections []SavedConnection
	var folders []Folder

	for _, node := range children {
		switch node.Kind {
		case NodeFolder:
			folderID := FolderID(parentPath, node.Name)
			folders = append(folders, Folder{
				ID:         folderID,
				Name:       node.Name,
				ParentID:   parentPath,
				IsExpanded: node.IsExpanded,
			})
			childConns, childFolders := FlattenTree(node.Children, folderID)
			connections = append(connections, childConns...)
			folders = append(folders, childFolders...)

		case NodeConnection:
			var config Config
			if node.Config != nil {
				config = *node.Config
			}
			connections = append(connections, SavedConnection{
				ID:              ConnectionID(parentPath, node.Name),
				Name:            node.Name,
				Config:          config,
				FolderID:        parentPath,
				TerminalOptions: node.TerminalOptions,
			})
		}
	}

	return connections, folders
}

// BuildTree converts flat connection and folder slices back into a
// nested tree for serialization. Within each parent, subfolders come
// first, then connections, both in input order; this matches the UI
// render order.
func BuildTree(connections []SavedConnection, folders []Folder) []TreeNode {
	return buildSubtree(connections, folders, "")
}

func buildSubtree(connections []SavedConnection, folders []Folder, parentID string) []TreeNode {
	var nodes []TreeNode

	for _, folder := range folders {
		if folder.ParentID != parentID {
			continue
		}
		nodes = append(nodes, TreeNode{
			Kind:       NodeFolder,
			Name:       folder.Name,
			IsExpanded: folder.IsExpanded,
			Children:   buildSubtree(connections, folders, folder.ID),
		})
	}

	for _, conn := range connections {
		if conn.FolderID != parentID {
			continue
		}
		config := conn.Config
		nodes = append(nodes, TreeNode{
			Kind:            NodeConnection,
			Name:            conn.Name,
			Config:          &config,
			TerminalOptions: conn.TerminalOptions,
		})
	}

	return nodes
}

// CountTree returns the number of connections and folders in a nested
// tree, recursively.
func CountTree(children []TreeNode) (connections, folders int) {
	for _, node := range children {
		switch node.Kind {
		case NodeFolder:
			folders++
			childConns, childFolders := CountTree(node.Children)
			connections += childConns
			folders += childFolders
		case NodeConnection:
			connections++
		}
	}
	return connections, folders
}

// DeduplicateSiblingNames renames siblings that share a name within the
// same parent to "<name> (1)", "<name> (2)" and so on; the first
// occurrence keeps its name. Folders are processed before connections,
// matching tree order. Renaming a folder changes its ID, so references
// from child folders and connections are updated in place.
func DeduplicateSiblingNames(connections []SavedConnection, folders []Folder) {
	parentIDs := []string{""}
	for _, folder := range folders {
		parentIDs = append(parentIDs, folder.ID)
	}

	for _, parentID := range parentIDs {
		var seen []string

		for i := range folders {
			if folders[i].ParentID != parentID {
				continue
			}
			unique := uniqueName(folders[i].Name, seen)
			if unique != folders[i].Name {
				oldID := folders[i].ID
				folders[i].Name = unique
				newID := FolderID(parentID, unique)
				renameFolderReferences(connections, folders, i, oldID, newID)
			}
			seen = append(seen, folders[i].Name)
		}

		for i := range connections {
			if connections[i].FolderID != parentID {
				continue
			}
			unique := uniqueName(connections[i].Name, seen)
			if unique != connections[i].Name {
				connections[i].Name = unique
				connections[i].ID = ConnectionID(parentID, unique)
			}
			seen = append(seen, connections[i].Name)
		}
	}
}

// uniqueName returns name unchanged when it is not among existing,
// otherwise the first "<name> (N)" that is not.
func uniqueName(name string, existing []string) string {
	taken := func(candidate string) bool {
		for _, n := range existing {
			if n == candidate {
				return true
			}
		}
		return false
	}
	if !taken(name) {
		return name
	}
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s (%d)", name, counter)
		if !taken(candidate) {
			return candidate
		}
	}
}

// renameFolderReferences applies a folder's new ID and rewrites the
// parent references of its immediate children. Connection IDs under the
// renamed folder are recomputed.
func renameFolderReferences(connections []SavedConnection, folders []Folder, folderIndex int, oldID, newID string) {
	folders[folderIndex].ID = newID

	for i := range folders {
		if folders[i].ParentID == oldID {
			folders[i].ParentID = newID
		}
	}
	for i := range connections {
		if connections[i].FolderID == oldID {
			connections[i].FolderID = newID
			connections[i].ID = ConnectionID(newID, connections[i].Name)
		}
	}
}
