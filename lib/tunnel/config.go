// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package tunnel defines SSH tunnel configurations and their persisted
// store. The three tunnel kinds mirror ssh -L, -R and -D: local port
// forwarding, remote port forwarding, and a dynamic SOCKS5 proxy. Each
// tunnel references a saved SSH connection by ID; the backend owns the
// live SSH sessions and reports status and traffic statistics back.
package tunnel

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// storeVersion is the on-disk format version of tunnels.json.
const storeVersion = "1"

// Forward kind names for Forward.Type.
const (
	ForwardLocal   = "local"
	ForwardRemote  = "remote"
	ForwardDynamic = "dynamic"
)

// Forward is a tunnel's kind plus the kind-specific endpoint config.
// Exactly one of Local, Remote and Dynamic is set, matching Type. It
// serializes as a tagged object: {"type": "local", "config": {...}}.
type Forward struct {
	Type    string
	Local   *LocalForward
	Remote  *RemoteForward
	Dynamic *DynamicForward
}

// LocalForward forwards a locally bound port to a remote target
// reached through the SSH server (ssh -L).
type LocalForward struct {
	// LocalHost is the local address to bind, for example "127.0.0.1".
	LocalHost string `json:"localHost"`
	LocalPort int    `json:"localPort"`
	// RemoteHost is resolved from the SSH server's perspective.
	RemoteHost string `json:"remoteHost"`
	RemotePort int    `json:"remotePort"`
}

// RemoteForward binds a port on the SSH server and forwards incoming
// connections to a local target (ssh -R).
type RemoteForward struct {
	RemoteHost string `json:"remoteHost"`
	RemotePort int    `json:"remotePort"`
	LocalHost  string `json:"localHost"`
	LocalPort  int    `json:"localPort"`
}

// DynamicForward binds a local SOCKS5 proxy routed through the SSH
// server (ssh -D).
type DynamicForward struct {
	LocalHost string `json:"localHost"`
	LocalPort int    `json:"localPort"`
}

// Config is a saved tunnel.
type Config struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// SSHConnectionID names the saved SSH connection carrying the
	// tunnel.
	SSHConnectionID string `json:"sshConnectionId"`
	Forward         Forward `json:"tunnelType"`
	// AutoStart tunnels are brought up when the app launches.
	AutoStart bool `json:"autoStart"`
	// ReconnectOnDisconnect re-establishes the tunnel after the SSH
	// session drops.
	ReconnectOnDisconnect bool `json:"reconnectOnDisconnect"`
}

// NewConfig returns a Config with a fresh ID.
func NewConfig(name, sshConnectionID string, forward Forward) Config {
	return Config{
		ID:              uuid.NewString(),
		Name:            name,
		SSHConnectionID: sshConnectionID,
		Forward:         forward,
	}
}

// Status of a running tunnel.
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusReconnecting Status = "reconnecting"
	StatusError        Status = "error"
)

// Stats are live traffic counters for an active tunnel.
type Stats struct {
	BytesSent         uint64 `json:"bytesSent"`
	BytesReceived     uint64 `json:"bytesReceived"`
	ActiveConnections uint32 `json:"activeConnections"`
	TotalConnections  uint64 `json:"totalConnections"`
}

// State is the combined runtime state the backend reports for one
// tunnel.
type State struct {
	TunnelID string `json:"tunnelId"`
	Status   Status `json:"status"`
	Error    string `json:"error,omitempty"`
	Stats    Stats  `json:"stats"`
}

// Validate checks a tunnel config for structural problems before it is
// saved or started.
func (c *Config) Validate() error {
	if c.Name == "" {
		return errors.New("tunnel name must not be empty")
	}
	if c.SSHConnectionID == "" {
		return fmt.Errorf("tunnel %q: ssh connection is required", c.Name)
	}

	checkPort := func(what string, port int) error {
		if port < 1 || port > 65535 {
			return fmt.Errorf("tunnel %q: %s port %d out of range", c.Name, what, port)
		}
		return nil
	}
	checkHost := func(what, host string) error {
		if host == "" {
			return fmt.Errorf("tunnel %q: %s host must not be empty", c.Name, what)
		}
		return nil
	}

	switch c.Forward.Type {
	case ForwardLocal:
		f := c.Forward.Local
		if f == nil {
			return fmt.Errorf("tunnel %q: missing local forward config", c.Name)
		}
		for _, err := range []error{
			checkHost("local", f.LocalHost), checkPort("local", f.LocalPort),
			checkHost("remote", f.RemoteHost), checkPort("remote", f.RemotePort),
		} {
			if err != nil {
				return err
			}
		}
	case ForwardRemote:
		f := c.Forward.Remote
		if f == nil {
			return fmt.Errorf("tunnel %q: missing remote forward config", c.Name)
		}
		for _, err := range []error{
			checkHost("remote", f.RemoteHost), checkPort("remote", f.RemotePort),
			checkHost("local", f.LocalHost), checkPort("local", f.LocalPort),
		} {
			if err != nil {
				return err
			}
		}
	case ForwardDynamic:
		f := c.Forward.Dynamic
		if f == nil {
			return fmt.Errorf("tunnel %q: missing dynamic forward config", c.Name)
		}
		if err := checkHost("local", f.LocalHost); err != nil {
			return err
		}
		if err := checkPort("local", f.LocalPort); err != nil {
			return err
		}
	default:
		return fmt.Errorf("tunnel %q: unknown forward type %q", c.Name, c.Forward.Type)
	}
	return nil
}
