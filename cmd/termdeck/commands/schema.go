// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/termdeck-foundation/termdeck/cmd/termdeck/cli"
	"github.com/termdeck-foundation/termdeck/lib/schema"
)

// SchemaCommand exposes the built-in connection settings schemas, mostly
// useful for debugging settings forms and writing connection files by hand.
func SchemaCommand() *cli.Command {
	return &cli.Command{
		Name:    "schema",
		Summary: "Inspect connection settings schemas",
		Subcommands: []*cli.Command{
			schemaListCommand(),
			schemaShowCommand(),
		},
	}
}

func schemaListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Summary: "List the built-in backend types",
		Run: func(args []string) error {
			for _, backendType := range schema.BuiltinTypes() {
				fmt.Println(backendType)
			}
			return nil
		},
	}
}

func schemaShowCommand() *cli.Command {
	return &cli.Command{
		Name:    "show",
		Summary: "Print the settings schema for a backend type as JSON",
		Usage:   "termdeck schema show <type>",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: termdeck schema show <type>")
			}
			s, ok := schema.Builtin(args[0])
			if !ok {
				return fmt.Errorf("unknown backend type %q (try: termdeck schema list)", args[0])
			}
			return cli.WriteJSON(s)
		},
	}
}
