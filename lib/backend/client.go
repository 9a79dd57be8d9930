// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/termdeck-foundation/termdeck/lib/codec"
)

// dialTimeout bounds the connect phase; request timeouts are the
// caller's business via context.
const dialTimeout = 5 * time.Second

// ErrClosed is returned by calls made after the connection is closed.
var ErrClosed = errors.New("backend connection closed")

// CallError is returned when the backend answers a request with
// ok=false.
type CallError struct {
	Method  string
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("backend error on %q: %s", e.Method, e.Message)
}

// EventHandler receives pushed events. Handlers run on the client's
// read goroutine and must not block; hand work off to the UI loop.
type EventHandler func(Event)

// Client is a connection to the backend socket. It multiplexes
// concurrent calls over one connection, correlating responses by ID,
// and dispatches event frames to the registered handler. Methods are
// safe for concurrent use.
type Client struct {
	conn    net.Conn
	encoder *codec.Encoder
	logger  *slog.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[uint64]chan frame
	nextID  uint64
	handler EventHandler
	closed  bool
	readErr error
}

// Dial connects to the backend's Unix socket.
func Dial(ctx context.Context, socketPath string, logger *slog.Logger) (*Client, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connecting to backend at %s: %w", socketPath, err)
	}
	return NewClient(conn, logger), nil
}

// NewClient wraps an established connection. Tests use this with
// net.Pipe.
func NewClient(conn net.Conn, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		conn:    conn,
		encoder: codec.NewEncoder(conn),
		logger:  logger,
		pending: make(map[uint64]chan frame),
	}
	go c.readLoop()
	return c
}

// OnEvent registers the event handler. Only one handler is active at
// a time; registering replaces the previous one.
func (c *Client) OnEvent(handler EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = handler
}

// Close tears down the connection. In-flight calls fail with ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	return c.conn.Close()
}

// Call sends a request and decodes the response data into result
// (which may be nil when the method returns nothing). Calls fail with
// *CallError when the backend reports an error, or with ErrClosed
// after the connection drops.
func (c *Client) Call(ctx context.Context, method string, params, result any) error {
	var rawParams codec.RawMessage
	if params != nil {
		encoded, err := codec.Marshal(params)
		if err != nil {
			return fmt.Errorf("encoding %q params: %w", method, err)
		}
		rawParams = encoded
	}

	c.mu.Lock()
	if c.closed {
		err := c.readErr
		c.mu.Unlock()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrClosed, err)
		}
		return ErrClosed
	}
	c.nextID++
	id := c.nextID
	reply := make(chan frame, 1)
	c.pending[id] = reply
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	request := Request{ID: id, Method: method, Params: rawParams}
	c.writeMu.Lock()
	err := c.encoder.Encode(request)
	c.writeMu.Unlock()
	if err != nil {
		return fmt.Errorf("sending %q: %w", method, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case response, ok := <-reply:
		if !ok {
			return ErrClosed
		}
		if !response.OK {
			return &CallError{Method: method, Message: response.Error}
		}
		if result != nil && len(response.Data) > 0 {
			if err := codec.Unmarshal(response.Data, result); err != nil {
				return fmt.Errorf("decoding %q response: %w", method, err)
			}
		}
		return nil
	}
}

// readLoop decodes frames until the connection fails, routing
// responses to pending calls and events to the handler.
func (c *Client) readLoop() {
	decoder := codec.NewDecoder(c.conn)
	for {
		var f frame
		if err := decoder.Decode(&f); err != nil {
			c.fail(err)
			return
		}

		if f.Event != "" {
			c.mu.Lock()
			handler := c.handler
			c.mu.Unlock()
			if handler != nil {
				handler(Event{Name: f.Event, Body: f.Body})
			} else {
				c.logger.Debug("dropping backend event", "event", f.Event)
			}
			continue
		}

		c.mu.Lock()
		reply, ok := c.pending[f.ID]
		if ok {
			delete(c.pending, f.ID)
		}
		c.mu.Unlock()
		if !ok {
			c.logger.Warn("response for unknown request", "id", f.ID)
			continue
		}
		reply <- f
	}
}

// fail marks the client closed and wakes every pending call.
func (c *Client) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		c.readErr = err
		c.conn.Close()
		c.logger.Debug("backend connection closed", "error", err)
	}
	for id, reply := range c.pending {
		close(reply)
		delete(c.pending, id)
	}
}
