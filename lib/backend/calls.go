// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import "context"

// HealthCheck verifies the backend is alive.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.Call(ctx, MethodHealthCheck, nil, nil)
}

// CreateSession opens a terminal session for a saved connection and
// returns its session ID.
func (c *Client) CreateSession(ctx context.Context, connectionID string, rows, cols int) (string, error) {
	params := SessionCreateParams{ConnectionID: connectionID, Rows: rows, Cols: cols}
	var result SessionCreateResult
	if err := c.Call(ctx, MethodSessionCreate, params, &result); err != nil {
		return "", err
	}
	return result.SessionID, nil
}

// SendInput writes raw bytes to a session's terminal.
func (c *Client) SendInput(ctx context.Context, sessionID string, data []byte) error {
	return c.Call(ctx, MethodSessionInput, SessionInputParams{SessionID: sessionID, Data: data}, nil)
}

// ResizeSession resizes a session's PTY.
func (c *Client) ResizeSession(ctx context.Context, sessionID string, rows, cols int) error {
	return c.Call(ctx, MethodSessionResize, SessionResizeParams{SessionID: sessionID, Rows: rows, Cols: cols}, nil)
}

// CloseSession ends a session.
func (c *Client) CloseSession(ctx context.Context, sessionID string) error {
	return c.Call(ctx, MethodSessionClose, SessionCloseParams{SessionID: sessionID}, nil)
}

// ListSessions returns the backend's live sessions.
func (c *Client) ListSessions(ctx context.Context) ([]SessionInfo, error) {
	var result SessionListResult
	if err := c.Call(ctx, MethodSessionList, nil, &result); err != nil {
		return nil, err
	}
	return result.Sessions, nil
}

// StartTunnel brings up a saved tunnel.
func (c *Client) StartTunnel(ctx context.Context, tunnelID string) error {
	return c.Call(ctx, MethodTunnelStart, TunnelParams{TunnelID: tunnelID}, nil)
}

// StopTunnel tears down a running tunnel.
func (c *Client) StopTunnel(ctx context.Context, tunnelID string) error {
	return c.Call(ctx, MethodTunnelStop, TunnelParams{TunnelID: tunnelID}, nil)
}

// UnlockCredentials unlocks the backend's credential store with the
// master password.
func (c *Client) UnlockCredentials(ctx context.Context, password string) error {
	return c.Call(ctx, MethodCredentialUnlock, CredentialUnlockParams{Password: password}, nil)
}

// TunnelState fetches the current state of a tunnel.
func (c *Client) TunnelState(ctx context.Context, tunnelID string) (TunnelStateChange, error) {
	var state TunnelStateChange
	err := c.Call(ctx, MethodTunnelState, TunnelParams{TunnelID: tunnelID}, &state)
	return state, err
}
