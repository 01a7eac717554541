// Package ipc is the JSON-over-unix-socket protocol between the CLI and the
// daemon. One request and one response per connection.
package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ErrDaemonNotRunning is returned when nothing listens on the socket
var ErrDaemonNotRunning = errors.New("clipman daemon is not running")

const requestTimeout = 10 * time.Second

// Handler answers one request
type Handler func(ctx context.Context, req *Request) *Response

// SendRequest connects to the daemon, sends a request, and returns the response.
func SendRequest(ctx context.Context, socketPath string, req *Request) (*Response, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", socketPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ECONNREFUSED) {
			return nil, ErrDaemonNotRunning
		}
		return nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}
	defer conn.Close()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(requestTimeout)
	}
	conn.SetDeadline(deadline)

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

// Server accepts connections on a unix socket
type Server struct {
	ln      net.Listener
	path    string
	handler Handler
	logger  *zap.Logger

	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

// Listen binds socketPath, replacing a stale socket file left by a previous
// run. Callers hold the daemon lock, so the file cannot belong to a live
// daemon.
func Listen(socketPath string, handler Handler, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.Remove(socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove stale socket: %w", err)
	}
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on socket: %w", err)
	}
	if err := os.Chmod(socketPath, 0600); err != nil {
		ln.Close()
		return nil, fmt.Errorf("failed to restrict socket permissions: %w", err)
	}
	return &Server{ln: ln, path: socketPath, handler: handler, logger: logger}, nil
}

// Addr returns the socket path
func (s *Server) Addr() string { return s.path }

// Serve handles connections until ctx ends or Close is called, then waits
// for in-flight requests.
func (s *Server) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { s.Close() })
	defer stop()

	s.logger.Info("IPC server listening", zap.String("socket", s.path))
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			s.logger.Warn("accept failed", zap.Error(err))
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

// Close stops accepting and removes the socket file
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.ln.Close()
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) && s.closeErr == nil {
			s.closeErr = err
		}
	})
	return s.closeErr
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(requestTimeout))

	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	var req Request
	if err := dec.Decode(&req); err != nil {
		if err := enc.Encode(Errorf("invalid request: %v", err)); err != nil {
			s.logger.Debug("failed to write response", zap.Error(err))
		}
		return
	}

	resp := s.handler(ctx, &req)
	if resp == nil {
		resp = Errorf("no response for %q", req.Command)
	}
	if err := enc.Encode(resp); err != nil {
		s.logger.Debug("failed to write response", zap.String("command", req.Command), zap.Error(err))
	}
}
