// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete termdeck CLI command tree.
package commands

import (
	"fmt"

	"github.com/termdeck-foundation/termdeck/cmd/termdeck/cli"
	"github.com/termdeck-foundation/termdeck/lib/version"
)

// Root builds and returns the complete termdeck CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "termdeck",
		Description: `Termdeck: a terminal workspace for remote sessions.

Arrange terminal sessions in split panels with draggable tabs, manage
saved connections and SSH tunnels, and talk to the session backend.`,
		Subcommands: []*cli.Command{
			WorkspaceCommand(),
			ConnectionsCommand(),
			TunnelsCommand(),
			SchemaCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("termdeck %s\n", version.Full())
					return nil
				},
			},
		},
	}
}
