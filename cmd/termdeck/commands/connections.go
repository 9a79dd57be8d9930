// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/termdeck-foundation/termdeck/cmd/termdeck/cli"
	"github.com/termdeck-foundation/termdeck/lib/connection"
)

// ConnectionsCommand manages the saved connection tree.
func ConnectionsCommand() *cli.Command {
	return &cli.Command{
		Name:    "connections",
		Summary: "Inspect saved connections",
		Subcommands: []*cli.Command{
			connectionsListCommand(),
			connectionsExportCommand(),
			connectionsValidateCommand(),
		},
	}
}

func connectionsListCommand() *cli.Command {
	var configPath string
	var asJSON bool

	return &cli.Command{
		Name:    "list",
		Summary: "List saved connections",
		Examples: []cli.Example{
			{Description: "List connections from the default store", Command: "termdeck connections list"},
			{Description: "Machine-readable output", Command: "termdeck connections list --json"},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to the configuration file")
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(args []string) error {
			connections, folders, err := loadConnections(configPath)
			if err != nil {
				return err
			}
			if asJSON {
				return cli.WriteJSON(connections)
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tFOLDER\tID")
			for _, conn := range connections {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", conn.Name, conn.Config.Type, conn.FolderID, conn.ID)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Printf("\n%d connection(s), %d folder(s)\n", len(connections), len(folders))
			return nil
		},
	}
}

func connectionsExportCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "export",
		Summary: "Export the connection tree as JSON",
		Description: `Export the full connection tree (folders, connections, per-connection
settings) as strict JSON on stdout. The output is the same format the
store file uses and can be re-imported by placing it there.`,
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("export", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to the configuration file")
			return flags
		},
		Run: func(args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			store, err := connection.NewStorage(cfg.Paths.Config).Load()
			if err != nil {
				return fmt.Errorf("loading connections: %w", err)
			}
			return cli.WriteJSON(store)
		},
	}
}

func connectionsValidateCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "validate",
		Summary: "Validate every connection against its backend schema",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("validate", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to the configuration file")
			return flags
		},
		Run: func(args []string) error {
			connections, _, err := loadConnections(configPath)
			if err != nil {
				return err
			}

			failures := 0
			for _, conn := range connections {
				if err := conn.ValidateSettings(); err != nil {
					failures++
					fmt.Printf("FAIL  %s: %v\n", conn.Name, err)
					continue
				}
				fmt.Printf("ok    %s\n", conn.Name)
			}
			if failures > 0 {
				fmt.Printf("\n%d of %d connection(s) failed validation\n", failures, len(connections))
				return &cli.ExitError{Code: 1}
			}
			fmt.Printf("\n%d connection(s) valid\n", len(connections))
			return nil
		},
	}
}

// loadConnections loads the flattened connection store using the
// given (or default) configuration.
func loadConnections(configPath string) ([]connection.SavedConnection, []connection.Folder, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	connections, folders, err := connection.NewStorage(cfg.Paths.Config).LoadFlat()
	if err != nil {
		return nil, nil, fmt.Errorf("loading connections: %w", err)
	}
	return connections, folders, nil
}
