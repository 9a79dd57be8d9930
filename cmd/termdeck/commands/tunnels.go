// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/termdeck-foundation/termdeck/cmd/termdeck/cli"
	"github.com/termdeck-foundation/termdeck/lib/tunnel"
)

// TunnelsCommand manages saved SSH tunnels.
func TunnelsCommand() *cli.Command {
	return &cli.Command{
		Name:    "tunnels",
		Summary: "Inspect saved SSH tunnels",
		Subcommands: []*cli.Command{
			tunnelsListCommand(),
			tunnelsValidateCommand(),
		},
	}
}

func tunnelsListCommand() *cli.Command {
	var configPath string
	var asJSON bool

	return &cli.Command{
		Name:    "list",
		Summary: "List saved tunnels",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to the configuration file")
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(args []string) error {
			store, err := loadTunnels(configPath)
			if err != nil {
				return err
			}
			if asJSON {
				return cli.WriteJSON(store.Tunnels)
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tFORWARD\tCONNECTION\tAUTOSTART")
			for _, cfg := range store.Tunnels {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%v\n",
					cfg.Name, cfg.Forward.Type, describeForward(cfg.Forward),
					cfg.SSHConnectionID, cfg.AutoStart)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Printf("\n%d tunnel(s)\n", len(store.Tunnels))
			return nil
		},
	}
}

func tunnelsValidateCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "validate",
		Summary: "Validate every saved tunnel configuration",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("validate", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to the configuration file")
			return flags
		},
		Run: func(args []string) error {
			store, err := loadTunnels(configPath)
			if err != nil {
				return err
			}

			failures := 0
			for _, cfg := range store.Tunnels {
				if err := cfg.Validate(); err != nil {
					failures++
					fmt.Printf("FAIL  %s: %v\n", cfg.Name, err)
					continue
				}
				fmt.Printf("ok    %s\n", cfg.Name)
			}
			if failures > 0 {
				fmt.Printf("\n%d of %d tunnel(s) failed validation\n", failures, len(store.Tunnels))
				return &cli.ExitError{Code: 1}
			}
			fmt.Printf("\n%d tunnel(s) valid\n", len(store.Tunnels))
			return nil
		},
	}
}

// describeForward renders a forward's endpoints in ssh-flag style.
func describeForward(forward tunnel.Forward) string {
	switch forward.Type {
	case tunnel.ForwardLocal:
		if f := forward.Local; f != nil {
			return fmt.Sprintf("%s:%d -> %s:%d", f.LocalHost, f.LocalPort, f.RemoteHost, f.RemotePort)
		}
	case tunnel.ForwardRemote:
		if f := forward.Remote; f != nil {
			return fmt.Sprintf("%s:%d <- %s:%d", f.LocalHost, f.LocalPort, f.RemoteHost, f.RemotePort)
		}
	case tunnel.ForwardDynamic:
		if f := forward.Dynamic; f != nil {
			return fmt.Sprintf("socks5 %s:%d", f.LocalHost, f.LocalPort)
		}
	}
	return "?"
}

// loadTunnels loads the tunnel store using the given (or default)
// configuration.
func loadTunnels(configPath string) (*tunnel.Store, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	store, err := tunnel.NewStorage(cfg.Paths.Config).Load()
	if err != nil {
		return nil, fmt.Errorf("loading tunnels: %w", err)
	}
	return store, nil
}
