package ipc

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// shortSocket keeps the path under the unix socket length limit on macOS
func shortSocket(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "cm")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "s.sock")
}

type running struct {
	path   string
	cancel context.CancelFunc
	done   chan struct{}
	err    error // valid after done is closed
}

func serve(t *testing.T, handler Handler) *running {
	t.Helper()
	r := &running{path: shortSocket(t), done: make(chan struct{})}
	srv, err := Listen(r.path, handler, zaptest.NewLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	go func() {
		defer close(r.done)
		r.err = srv.Serve(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-r.done
	})
	return r
}

func TestRoundTrip(t *testing.T) {
	path := serve(t, func(_ context.Context, req *Request) *Response {
		var args EntryArgs
		if err := req.DecodeArgs(&args); err != nil {
			return Errorf("%v", err)
		}
		return OK("found", map[string]string{"command": req.Command, "id": args.ID})
	}).path

	req, err := NewRequest(CmdDelete, EntryArgs{ID: "abc"})
	require.NoError(t, err)

	resp, err := SendRequest(context.Background(), path, req)
	require.NoError(t, err)
	require.NoError(t, resp.Err())
	assert.Equal(t, "found", resp.Message)

	var data map[string]string
	require.NoError(t, resp.DecodeData(&data))
	assert.Equal(t, map[string]string{"command": CmdDelete, "id": "abc"}, data)
}

func TestErrorResponse(t *testing.T) {
	path := serve(t, func(_ context.Context, req *Request) *Response {
		return Errorf("unknown command %q", req.Command)
	}).path

	resp, err := SendRequest(context.Background(), path, &Request{Command: "bogus"})
	require.NoError(t, err)
	assert.EqualError(t, resp.Err(), `unknown command "bogus"`)
}

func TestInvalidRequest(t *testing.T) {
	path := serve(t, func(context.Context, *Request) *Response {
		t.Error("handler must not run for malformed input")
		return nil
	}).path

	conn, err := net.Dial("unix", path)
	require.NoError(t, err)
	defer conn.Close()
	_, err = conn.Write([]byte("{not json\n"))
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.NewDecoder(conn).Decode(&resp))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Message, "invalid request")
}

func TestInvalidRequestWriteFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	srv := &Server{logger: zap.New(core), handler: func(context.Context, *Request) *Response {
		t.Error("handler must not run for malformed input")
		return nil
	}}

	server, client := net.Pipe()
	go func() {
		client.Write([]byte("{not json\n"))
		client.Close()
	}()
	srv.handleConn(context.Background(), server)

	assert.Equal(t, 1, logs.FilterMessage("failed to write response").Len())
}

func TestDaemonNotRunning(t *testing.T) {
	_, err := SendRequest(context.Background(), shortSocket(t), &Request{Command: CmdStatus})
	assert.ErrorIs(t, err, ErrDaemonNotRunning)
}

func TestServeStopsOnCancel(t *testing.T) {
	r := serve(t, func(context.Context, *Request) *Response { return OK("", nil) })

	r.cancel()
	select {
	case <-r.done:
		assert.NoError(t, r.err)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	_, err := os.Stat(r.path)
	assert.True(t, os.IsNotExist(err), "socket file is removed")
}

func TestRequestArgs(t *testing.T) {
	req, err := NewRequest(CmdClear, nil)
	require.NoError(t, err)
	assert.Empty(t, req.Args)

	var args HistoryArgs
	require.NoError(t, req.DecodeArgs(&args))

	req = &Request{Command: CmdHistory, Args: json.RawMessage(`{"limit":"ten"}`)}
	assert.ErrorContains(t, req.DecodeArgs(&args), "invalid history arguments")
}
