// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/termdeck-foundation/termdeck/lib/credential"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Paths.Config == "" || cfg.Paths.State == "" {
		t.Errorf("default paths incomplete: %+v", cfg.Paths)
	}

	if cfg.Backend.Binary != "termdeck-backend" {
		t.Errorf("expected binary=termdeck-backend, got %s", cfg.Backend.Binary)
	}

	if !cfg.Backend.AutoStart {
		t.Error("expected auto_start=true by default")
	}

	if cfg.Credentials.Mode != credential.ModeMasterPassword {
		t.Errorf("expected credentials mode=master-password, got %s", cfg.Credentials.Mode)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_WithoutTermdeckConfig(t *testing.T) {
	origConfig := os.Getenv("TERMDECK_CONFIG")
	defer os.Setenv("TERMDECK_CONFIG", origConfig)

	// Without TERMDECK_CONFIG, Load() falls back to defaults.
	os.Unsetenv("TERMDECK_CONFIG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Backend.Binary != Default().Backend.Binary {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestLoad_WithTermdeckConfig(t *testing.T) {
	origConfig := os.Getenv("TERMDECK_CONFIG")
	defer os.Setenv("TERMDECK_CONFIG", origConfig)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "termdeck.yaml")

	configContent := `
paths:
  config: /test/config
backend:
  socket_path: /test/backend.sock
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	os.Setenv("TERMDECK_CONFIG", configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Paths.Config != "/test/config" {
		t.Errorf("expected config=/test/config, got %s", cfg.Paths.Config)
	}

	if cfg.Backend.SocketPath != "/test/backend.sock" {
		t.Errorf("expected socket_path=/test/backend.sock, got %s", cfg.Backend.SocketPath)
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "termdeck.yaml")

	configContent := `
paths:
  config: /custom/config
  state: /custom/state

backend:
  socket_path: /custom/backend.sock
  auto_start: false

terminal:
  shell: /bin/zsh
  scrollback: 50000
  cursor_style: bar

credentials:
  mode: memory
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Paths.Config != "/custom/config" {
		t.Errorf("expected config=/custom/config, got %s", cfg.Paths.Config)
	}

	if cfg.Backend.AutoStart {
		t.Error("expected auto_start=false")
	}

	if cfg.Terminal.Shell != "/bin/zsh" {
		t.Errorf("expected shell=/bin/zsh, got %s", cfg.Terminal.Shell)
	}

	if cfg.Terminal.Scrollback != 50000 {
		t.Errorf("expected scrollback=50000, got %d", cfg.Terminal.Scrollback)
	}

	if cfg.Credentials.Mode != credential.ModeMemory {
		t.Errorf("expected credentials mode=memory, got %s", cfg.Credentials.Mode)
	}

	// Unset fields keep their defaults.
	if cfg.Paths.Logs != Default().Paths.Logs {
		t.Errorf("expected default logs path, got %s", cfg.Paths.Logs)
	}
}

func TestEnvVarsDoNotOverride(t *testing.T) {
	// Environment variables must NOT override config file values. The
	// config file is the single source of truth.
	origSocket := os.Getenv("TERMDECK_BACKEND_SOCKET")
	defer os.Setenv("TERMDECK_BACKEND_SOCKET", origSocket)

	os.Setenv("TERMDECK_BACKEND_SOCKET", "/env/backend.sock")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "termdeck.yaml")

	configContent := `
backend:
  socket_path: /file/backend.sock
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Backend.SocketPath != "/file/backend.sock" {
		t.Errorf("expected socket_path=/file/backend.sock from file, got %s", cfg.Backend.SocketPath)
	}
}

func TestExpandVariablesInPaths(t *testing.T) {
	origHome := os.Getenv("HOME")
	defer os.Setenv("HOME", origHome)
	os.Setenv("HOME", "/home/tester")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "termdeck.yaml")

	configContent := `
paths:
  config: ${HOME}/.config/termdeck
  state: ${TERMDECK_STATE:-/var/lib/termdeck}
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Paths.Config != "/home/tester/.config/termdeck" {
		t.Errorf("config = %s, want /home/tester/.config/termdeck", cfg.Paths.Config)
	}
	if cfg.Paths.State != "/var/lib/termdeck" {
		t.Errorf("state = %s, want /var/lib/termdeck", cfg.Paths.State)
	}
}

func TestExpandVars(t *testing.T) {
	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/termdeck",
			vars:     map[string]string{"HOME": "/home/user"},
			expected: "/home/user/termdeck",
		},
		{
			input:    "${MISSING:-default}",
			vars:     map[string]string{},
			expected: "default",
		},
		{
			input:    "${PRESENT:-default}",
			vars:     map[string]string{"PRESENT": "value"},
			expected: "value",
		},
		{
			input:    "${A}/${B}",
			vars:     map[string]string{"A": "first", "B": "second"},
			expected: "first/second",
		},
		{
			input:    "no variables here",
			vars:     map[string]string{},
			expected: "no variables here",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "empty config path",
			modify: func(c *Config) {
				c.Paths.Config = ""
			},
			wantErr: true,
		},
		{
			name: "empty socket path",
			modify: func(c *Config) {
				c.Backend.SocketPath = ""
			},
			wantErr: true,
		},
		{
			name: "invalid cursor style",
			modify: func(c *Config) {
				c.Terminal.CursorStyle = "wedge"
			},
			wantErr: true,
		},
		{
			name: "negative scrollback",
			modify: func(c *Config) {
				c.Terminal.Scrollback = -1
			},
			wantErr: true,
		},
		{
			name: "invalid credentials mode",
			modify: func(c *Config) {
				c.Credentials.Mode = "keyring"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnsurePaths(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := Default()
	cfg.Paths.Config = filepath.Join(tmpDir, "config")
	cfg.Paths.State = filepath.Join(tmpDir, "state")
	cfg.Paths.Logs = filepath.Join(cfg.Paths.State, "logs")

	if err := cfg.EnsurePaths(); err != nil {
		t.Fatalf("EnsurePaths failed: %v", err)
	}

	for _, path := range []string{cfg.Paths.Config, cfg.Paths.State, cfg.Paths.Logs} {
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("path %s not created: %v", path, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("path %s is not a directory", path)
		}
	}
}

func TestNewCredentialStore(t *testing.T) {
	cfg := Default()
	cfg.Paths.Config = t.TempDir()

	cfg.Credentials.Mode = credential.ModeMemory
	if status := cfg.NewCredentialStore().Status(); status != credential.StatusUnlocked {
		t.Errorf("memory store status = %v, want unlocked", status)
	}

	cfg.Credentials.Mode = credential.ModeNone
	if status := cfg.NewCredentialStore().Status(); status != credential.StatusUnavailable {
		t.Errorf("null store status = %v, want unavailable", status)
	}

	cfg.Credentials.Mode = credential.ModeMasterPassword
	if status := cfg.NewCredentialStore().Status(); status != credential.StatusLocked {
		t.Errorf("file store status = %v, want locked", status)
	}
}
