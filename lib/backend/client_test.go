// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/termdeck-foundation/termdeck/lib/codec"
)

// testServer runs handle for every request frame read from conn until
// the connection closes. Responses and events are written through the
// returned encoder.
func testServer(t *testing.T, conn net.Conn, handle func(Request, *codec.Encoder)) {
	t.Helper()
	go func() {
		decoder := codec.NewDecoder(conn)
		encoder := codec.NewEncoder(conn)
		for {
			var request Request
			if err := decoder.Decode(&request); err != nil {
				if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrClosedPipe) {
					t.Logf("test server read: %v", err)
				}
				return
			}
			handle(request, encoder)
		}
	}()
}

func testClient(t *testing.T, handle func(Request, *codec.Encoder)) *Client {
	t.Helper()
	clientSide, serverSide := net.Pipe()
	testServer(t, serverSide, handle)
	client := NewClient(clientSide, slog.New(slog.DiscardHandler))
	t.Cleanup(func() {
		client.Close()
		serverSide.Close()
	})
	return client
}

func respond(encoder *codec.Encoder, id uint64, data any) {
	f := frame{ID: id, OK: true}
	if data != nil {
		encoded, err := codec.Marshal(data)
		if err != nil {
			panic(err)
		}
		f.Data = encoded
	}
	if err := encoder.Encode(f); err != nil {
		panic(err)
	}
}

func TestCreateSessionRoundtrip(t *testing.T) {
	client := testClient(t, func(request Request, encoder *codec.Encoder) {
		if request.Method != MethodSessionCreate {
			t.Errorf("method = %q, want session.create", request.Method)
		}
		var params SessionCreateParams
		if err := codec.Unmarshal(request.Params, &params); err != nil {
			t.Errorf("decoding params: %v", err)
		}
		if params.ConnectionID != "Work/staging" || params.Rows != 24 || params.Cols != 80 {
			t.Errorf("params = %+v", params)
		}
		respond(encoder, request.ID, SessionCreateResult{SessionID: "sess-1"})
	})

	sessionID, err := client.CreateSession(context.Background(), "Work/staging", 24, 80)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sessionID != "sess-1" {
		t.Errorf("sessionID = %q, want sess-1", sessionID)
	}
}

func TestCallErrorSurfacesBackendMessage(t *testing.T) {
	client := testClient(t, func(request Request, encoder *codec.Encoder) {
		encoder.Encode(frame{ID: request.ID, OK: false, Error: "no such session"})
	})

	err := client.CloseSession(context.Background(), "sess-404")
	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("err = %v, want *CallError", err)
	}
	if callErr.Method != MethodSessionClose || callErr.Message != "no such session" {
		t.Errorf("callErr = %+v", callErr)
	}
}

func TestConcurrentCallsCorrelateByID(t *testing.T) {
	// Responses are sent in reverse arrival order; each call must
	// still receive its own result. The two calls race to the server,
	// so each response echoes the tunnel ID its request named.
	stateFor := func(request Request) TunnelStateChange {
		var params TunnelParams
		if err := codec.Unmarshal(request.Params, &params); err != nil {
			t.Errorf("decoding params: %v", err)
		}
		return TunnelStateChange{TunnelID: params.TunnelID, Status: "connected"}
	}
	requests := make(chan Request, 2)
	client := testClient(t, func(request Request, encoder *codec.Encoder) {
		requests <- request
		if len(requests) == 2 {
			first := <-requests
			second := <-requests
			respond(encoder, second.ID, stateFor(second))
			respond(encoder, first.ID, stateFor(first))
		}
	})

	type outcome struct {
		id    string
		state TunnelStateChange
		err   error
	}
	results := make(chan outcome, 2)
	for _, tunnelID := range []string{"tun-1", "tun-2"} {
		go func() {
			state, err := client.TunnelState(context.Background(), tunnelID)
			results <- outcome{id: tunnelID, state: state, err: err}
		}()
	}

	for range 2 {
		got := <-results
		if got.err != nil {
			t.Fatalf("TunnelState(%s): %v", got.id, got.err)
		}
		if got.state.TunnelID != got.id {
			t.Errorf("call for %s got state for %s", got.id, got.state.TunnelID)
		}
	}
}

func TestEventsDispatchToHandler(t *testing.T) {
	output := SessionOutput{SessionID: "sess-1", Data: []byte("$ ")}
	body, err := codec.Marshal(output)
	if err != nil {
		t.Fatal(err)
	}

	client := testClient(t, func(request Request, encoder *codec.Encoder) {
		// Push an event before the response; both must arrive.
		encoder.Encode(frame{Event: EventSessionOutput, Body: body})
		respond(encoder, request.ID, nil)
	})

	events := make(chan Event, 1)
	client.OnEvent(func(event Event) { events <- event })

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}

	select {
	case event := <-events:
		if event.Name != EventSessionOutput {
			t.Fatalf("event = %q, want session.output", event.Name)
		}
		var decoded SessionOutput
		if err := codec.Unmarshal(event.Body, &decoded); err != nil {
			t.Fatalf("decoding event body: %v", err)
		}
		if decoded.SessionID != "sess-1" || string(decoded.Data) != "$ " {
			t.Errorf("decoded event = %+v", decoded)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestCallAfterCloseFails(t *testing.T) {
	client := testClient(t, func(Request, *codec.Encoder) {})
	client.Close()

	// The read loop notices the closed connection asynchronously;
	// either path must end in ErrClosed.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := client.HealthCheck(ctx)
	if err == nil {
		t.Fatal("call on closed client succeeded")
	}
}

func TestPendingCallFailsWhenServerDisconnects(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	client := NewClient(clientSide, slog.New(slog.DiscardHandler))
	t.Cleanup(func() { client.Close() })

	go func() {
		decoder := codec.NewDecoder(serverSide)
		var request Request
		decoder.Decode(&request)
		serverSide.Close()
	}()

	err := client.HealthCheck(context.Background())
	if !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}

func TestCallHonorsContextCancellation(t *testing.T) {
	client := testClient(t, func(Request, *codec.Encoder) {
		// Never respond.
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := client.HealthCheck(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
}
