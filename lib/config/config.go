// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for termdeck.
//
// Configuration is loaded from a single YAML file specified by:
//   - TERMDECK_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures
// deterministic, auditable configuration with no hidden overrides. All
// commands also run without a config file, using Default.
//
// The only expansion performed on values is ${VAR} and ${VAR:-default}
// in paths, so one file can be shared across machines.
package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/termdeck-foundation/termdeck/lib/credential"
)

// Config is the master configuration for termdeck.
type Config struct {
	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`

	// Backend configures the connection to the termdeck backend
	// process.
	Backend BackendConfig `yaml:"backend"`

	// Terminal configures default terminal display settings. Saved
	// connections may override them per connection.
	Terminal TerminalConfig `yaml:"terminal"`

	// Credentials configures how connection secrets are stored.
	Credentials CredentialsConfig `yaml:"credentials"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Config is where connection, tunnel and credential stores live.
	Config string `yaml:"config"`

	// State is where runtime state (workspace layout snapshots) is
	// stored.
	State string `yaml:"state"`

	// Logs is where session logs are written.
	Logs string `yaml:"logs"`
}

// BackendConfig configures the backend process connection.
type BackendConfig struct {
	// SocketPath is the Unix socket the backend listens on.
	SocketPath string `yaml:"socket_path"`

	// Binary is the backend executable name or path, resolved via
	// BinaryPath when AutoStart is set.
	Binary string `yaml:"binary"`

	// AutoStart launches the backend when the socket is not
	// reachable.
	AutoStart bool `yaml:"auto_start"`
}

// TerminalConfig holds the default terminal display settings.
type TerminalConfig struct {
	// Shell is the default local shell. Empty means $SHELL.
	Shell string `yaml:"shell"`

	// Scrollback is the scrollback buffer size in lines.
	Scrollback int `yaml:"scrollback"`

	// CursorStyle is "block", "underline" or "bar".
	CursorStyle string `yaml:"cursor_style"`

	// CursorBlink toggles cursor blinking.
	CursorBlink bool `yaml:"cursor_blink"`
}

// CredentialsConfig configures credential storage.
type CredentialsConfig struct {
	// Mode selects the credential store: "master-password", "memory"
	// or "none".
	Mode credential.StorageMode `yaml:"mode"`
}

// Default returns the default configuration. The config file is
// optional; these defaults make every command usable without one.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	configDir := filepath.Join(homeDir, ".config", "termdeck")
	stateDir := filepath.Join(homeDir, ".local", "state", "termdeck")

	return &Config{
		Paths: PathsConfig{
			Config: configDir,
			State:  stateDir,
			Logs:   filepath.Join(stateDir, "logs"),
		},
		Backend: BackendConfig{
			SocketPath: filepath.Join(stateDir, "backend.sock"),
			Binary:     "termdeck-backend",
			AutoStart:  true,
		},
		Terminal: TerminalConfig{
			Scrollback:  10000,
			CursorStyle: "block",
			CursorBlink: true,
		},
		Credentials: CredentialsConfig{
			Mode: credential.ModeMasterPassword,
		},
	}
}

// Load loads configuration from the TERMDECK_CONFIG environment
// variable, or returns Default when it is not set.
func Load() (*Config, error) {
	configPath := os.Getenv("TERMDECK_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merged over
// Default. Environment variables do not override config values; the
// only expansion performed is ${VAR} patterns in paths.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Paths.Config = expandVars(c.Paths.Config, vars)
	c.Paths.State = expandVars(c.Paths.State, vars)
	c.Paths.Logs = expandVars(c.Paths.Logs, vars)
	c.Backend.SocketPath = expandVars(c.Backend.SocketPath, vars)
	c.Backend.Binary = expandVars(c.Backend.Binary, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.Config == "" {
		errs = append(errs, fmt.Errorf("paths.config is required"))
	}
	if c.Paths.State == "" {
		errs = append(errs, fmt.Errorf("paths.state is required"))
	}
	if c.Backend.SocketPath == "" {
		errs = append(errs, fmt.Errorf("backend.socket_path is required"))
	}

	cursorStyles := []string{"block", "underline", "bar"}
	if !contains(cursorStyles, c.Terminal.CursorStyle) {
		errs = append(errs, fmt.Errorf("terminal.cursor_style must be one of: %v", cursorStyles))
	}
	if c.Terminal.Scrollback < 0 {
		errs = append(errs, fmt.Errorf("terminal.scrollback must not be negative"))
	}

	switch c.Credentials.Mode {
	case credential.ModeMasterPassword, credential.ModeMemory, credential.ModeNone:
	default:
		errs = append(errs, fmt.Errorf("credentials.mode must be one of: master-password, memory, none"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsurePaths creates all configured directories if they don't exist.
func (c *Config) EnsurePaths() error {
	paths := []string{
		c.Paths.Config,
		c.Paths.State,
		c.Paths.Logs,
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}

	return nil
}

// NewCredentialStore builds the credential store selected by
// Credentials.Mode. The master-password store starts locked.
func (c *Config) NewCredentialStore() credential.Store {
	switch c.Credentials.Mode {
	case credential.ModeMemory:
		return credential.NewMemStore()
	case credential.ModeNone:
		return credential.NullStore{}
	default:
		return credential.NewFileStore(c.Paths.Config)
	}
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

// BinaryPath resolves the backend binary. Absolute and relative paths
// are used as-is when they exist; bare names are resolved via PATH.
func (c *Config) BinaryPath() (string, error) {
	name := c.Backend.Binary
	if name == "" {
		return "", fmt.Errorf("backend.binary is not configured")
	}
	if filepath.IsAbs(name) || filepath.Dir(name) != "." {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("backend binary %s: %w", name, err)
		}
		return name, nil
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH", name)
	}
	return path, nil
}
