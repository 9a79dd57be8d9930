// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/termdeck-foundation/termdeck/cmd/termdeck/cli"
	"github.com/termdeck-foundation/termdeck/lib/backend"
	"github.com/termdeck-foundation/termdeck/lib/config"
	"github.com/termdeck-foundation/termdeck/lib/connection"
	"github.com/termdeck-foundation/termdeck/lib/tui"
	"github.com/termdeck-foundation/termdeck/lib/workspace"
)

// backendStartTimeout is how long the workspace command waits for an
// auto-started backend to accept its first connection.
const backendStartTimeout = 3 * time.Second

// WorkspaceCommand launches the interactive panel workspace.
func WorkspaceCommand() *cli.Command {
	var configPath string
	var layoutPath string

	return &cli.Command{
		Name:    "workspace",
		Summary: "Launch the workspace UI",
		Description: `Launch the interactive panel workspace.

Loads saved connections, restores the last panel layout, connects to
the session backend (starting it when configured to), and runs the
terminal UI. The layout is saved again on quit.`,
		Examples: []cli.Example{
			{Description: "Launch with the default configuration", Command: "termdeck workspace"},
			{Description: "Launch with an explicit config file", Command: "termdeck workspace --config ./termdeck.yaml"},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("workspace", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to the configuration file")
			flags.StringVar(&layoutPath, "layout", "", "path to the layout file (default: <state>/layout.yaml)")
			return flags
		},
		Run: func(args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if err := cfg.EnsurePaths(); err != nil {
				return err
			}

			// bubbletea owns the terminal; logs go to a file.
			logger, closeLog, err := cli.NewFileLogger(filepath.Join(cfg.Paths.Logs, "termdeck.log"))
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer closeLog()

			connections, _, err := connection.NewStorage(cfg.Paths.Config).LoadFlat()
			if err != nil {
				return fmt.Errorf("loading connections: %w", err)
			}

			client := connectBackend(cfg, logger)
			if client != nil {
				defer client.Close()
			}

			if layoutPath == "" {
				layoutPath = filepath.Join(cfg.Paths.State, "layout.yaml")
			}
			store := workspace.NewStore()
			if restored, err := store.LoadLayout(layoutPath); err != nil {
				logger.Warn("could not restore layout", "path", layoutPath, "error", err)
			} else if restored {
				logger.Info("layout restored", "path", layoutPath)
			}

			app := tui.NewApp(store, tui.Options{
				Logger:      logger,
				Client:      client,
				Connections: connections,
				LayoutPath:  layoutPath,
			})
			return tui.Run(app)
		},
	}
}

// loadConfig loads the configuration from an explicit path, or via the
// environment when none is given.
func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// connectBackend dials the session backend, auto-starting it when
// configured. A missing backend is not fatal: the workspace runs with
// placeholder terminals and reports the condition in its log.
func connectBackend(cfg *config.Config, logger *slog.Logger) *backend.Client {
	ctx, cancel := context.WithTimeout(context.Background(), backendStartTimeout)
	defer cancel()

	client, err := backend.Dial(ctx, cfg.Backend.SocketPath, logger)
	if err == nil {
		return client
	}
	if !cfg.Backend.AutoStart {
		logger.Warn("backend unavailable", "socket", cfg.Backend.SocketPath, "error", err)
		return nil
	}

	binary, lookErr := cfg.BinaryPath()
	if lookErr != nil {
		logger.Warn("backend binary not found", "error", lookErr)
		return nil
	}
	command := exec.Command(binary, "--socket", cfg.Backend.SocketPath)
	command.Stdout = nil
	command.Stderr = nil
	if startErr := command.Start(); startErr != nil {
		logger.Warn("could not start backend", "binary", binary, "error", startErr)
		return nil
	}
	// Detach: the backend outlives the UI process.
	go command.Wait()
	logger.Info("backend started", "binary", binary, "pid", command.Process.Pid)

	deadline := time.Now().Add(backendStartTimeout)
	for time.Now().Before(deadline) {
		time.Sleep(100 * time.Millisecond)
		dialCtx, dialCancel := context.WithTimeout(context.Background(), time.Second)
		client, err = backend.Dial(dialCtx, cfg.Backend.SocketPath, logger)
		dialCancel()
		if err == nil {
			return client
		}
	}
	logger.Warn("backend did not come up", "socket", cfg.Backend.SocketPath, "error", err)
	return nil
}
