// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package backend implements the client side of the frontend-backend
// protocol: CBOR frames over a Unix domain socket.
//
// The frontend sends requests carrying a method name, a params payload
// and a correlation ID; the backend answers each request with exactly
// one response carrying the same ID, and may interleave unsolicited
// event frames (terminal output, session exit, tunnel state changes)
// at any time. Frames are self-delimiting CBOR, so the stream needs no
// extra framing layer.
package backend

import "github.com/termdeck-foundation/termdeck/lib/codec"

// Methods the backend serves.
const (
	MethodHealthCheck   = "health.check"
	MethodSessionCreate = "session.create"
	MethodSessionInput  = "session.input"
	MethodSessionResize = "session.resize"
	MethodSessionClose  = "session.close"
	MethodSessionList   = "session.list"
	MethodTunnelStart   = "tunnel.start"
	MethodTunnelStop    = "tunnel.stop"
	MethodTunnelState   = "tunnel.state"

	MethodCredentialUnlock = "credential.unlock"
)

// Events the backend pushes.
const (
	EventSessionOutput = "session.output"
	EventSessionExit   = "session.exit"
	EventSessionError  = "session.error"
	EventTunnelState   = "tunnel.state"
)

// Request is one request frame.
type Request struct {
	ID     uint64           `cbor:"id"`
	Method string           `cbor:"method"`
	Params codec.RawMessage `cbor:"params,omitempty"`
}

// frame is the decoded shape of everything the backend sends. A frame
// with a non-empty Event field is an event; everything else is the
// response to the request with the same ID.
type frame struct {
	ID    uint64           `cbor:"id,omitempty"`
	OK    bool             `cbor:"ok,omitempty"`
	Error string           `cbor:"error,omitempty"`
	Data  codec.RawMessage `cbor:"data,omitempty"`

	Event string           `cbor:"event,omitempty"`
	Body  codec.RawMessage `cbor:"body,omitempty"`
}

// Event is a decoded event frame handed to event handlers.
type Event struct {
	// Name is one of the Event* constants.
	Name string
	// Body is the event payload, decodable into the matching typed
	// struct (SessionOutput, SessionExit, TunnelStateChange).
	Body codec.RawMessage
}

// SessionCreateParams asks the backend to open a terminal session for
// a saved connection.
type SessionCreateParams struct {
	// ConnectionID is the path-based ID of the saved connection.
	ConnectionID string `cbor:"connection_id"`
	Rows         int    `cbor:"rows"`
	Cols         int    `cbor:"cols"`
}

// SessionCreateResult is the response payload of session.create.
type SessionCreateResult struct {
	SessionID string `cbor:"session_id"`
}

// SessionInputParams carries terminal input bytes.
type SessionInputParams struct {
	SessionID string `cbor:"session_id"`
	Data      []byte `cbor:"data"`
}

// SessionResizeParams resizes a session's PTY.
type SessionResizeParams struct {
	SessionID string `cbor:"session_id"`
	Rows      int    `cbor:"rows"`
	Cols      int    `cbor:"cols"`
}

// SessionCloseParams closes a session.
type SessionCloseParams struct {
	SessionID string `cbor:"session_id"`
}

// SessionInfo describes one live session in a session.list response.
type SessionInfo struct {
	SessionID    string `cbor:"session_id"`
	ConnectionID string `cbor:"connection_id"`
	Title        string `cbor:"title"`
}

// SessionListResult is the response payload of session.list.
type SessionListResult struct {
	Sessions []SessionInfo `cbor:"sessions"`
}

// SessionOutput is the body of a session.output event.
type SessionOutput struct {
	SessionID string `cbor:"session_id"`
	Data      []byte `cbor:"data"`
}

// SessionExit is the body of a session.exit event.
type SessionExit struct {
	SessionID string `cbor:"session_id"`
	ExitCode  int    `cbor:"exit_code"`
}

// SessionError is the body of a session.error event.
type SessionError struct {
	SessionID string `cbor:"session_id"`
	Message   string `cbor:"message"`
}

// TunnelParams starts or stops a saved tunnel by ID.
type TunnelParams struct {
	TunnelID string `cbor:"tunnel_id"`
}

// CredentialUnlockParams carries the master password that unlocks the
// backend's credential store. The password travels only over the local
// Unix socket.
type CredentialUnlockParams struct {
	Password string `cbor:"password"`
}

// TunnelStateChange is both the response payload of tunnel.state and
// the body of a tunnel.state event.
type TunnelStateChange struct {
	TunnelID string `cbor:"tunnel_id"`
	Status   string `cbor:"status"`
	Error    string `cbor:"error,omitempty"`

	BytesSent         uint64 `cbor:"bytes_sent"`
	BytesReceived     uint64 `cbor:"bytes_received"`
	ActiveConnections uint32 `cbor:"active_connections"`
}
