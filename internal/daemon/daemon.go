// Package daemon runs the clipboard manager as a long-lived process and
// answers CLI requests over the IPC socket.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/berrythewa/clipman/internal/clipboard"
	"github.com/berrythewa/clipman/internal/config"
	"github.com/berrythewa/clipman/internal/ipc"
	"github.com/berrythewa/clipman/internal/platform"
	"github.com/berrythewa/clipman/internal/storage"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrAlreadyRunning is returned when another daemon holds the data directory
var ErrAlreadyRunning = errors.New("another clipman daemon is already running")

// Daemon owns the single-instance lock, the manager and the IPC server
type Daemon struct {
	cfg     *config.Config
	logger  *zap.Logger
	lock    *os.File
	manager *clipboard.Manager
	server  *ipc.Server

	closeOnce sync.Once
	closeErr  error
}

// New acquires the lock, loads history and binds the socket. Nothing is
// polled until Run.
func New(cfg *config.Config, logger *zap.Logger) (d *Daemon, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(cfg.Storage.Dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	lock, err := acquireLock(cfg.LockPath())
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, releaseLock(lock))
		}
	}()

	backend, err := storage.Open(cfg.Storage, logger.Named("storage"))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	pb, err := platform.New(cfg.Clipboard.Backend, logger.Named("platform"))
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to open clipboard: %w", err), backend.Close())
	}

	manager := clipboard.NewManager(pb, backend, clipboard.Options{
		MaxItems:       cfg.History.MaxItems,
		Interval:       cfg.History.Interval(),
		PreservePinned: cfg.History.PreservePinned,
		MaxContentSize: cfg.History.MaxContentSize,
		Logger:         logger,
	})

	h := newHandler(manager, cfg.SocketPath, logger.Named("ipc"))
	server, err := ipc.Listen(cfg.SocketPath, h.handle, logger.Named("ipc"))
	if err != nil {
		return nil, multierr.Append(err, manager.Close())
	}

	return &Daemon{
		cfg:     cfg,
		logger:  logger,
		lock:    lock,
		manager: manager,
		server:  server,
	}, nil
}

// Manager exposes the running manager
func (d *Daemon) Manager() *clipboard.Manager { return d.manager }

// Run monitors the clipboard and serves requests until ctx ends, then shuts
// everything down.
func (d *Daemon) Run(ctx context.Context) error {
	d.manager.Start(ctx)
	d.logger.Info("clipman daemon started",
		zap.Int("pid", os.Getpid()),
		zap.String("socket", d.cfg.SocketPath),
		zap.String("storage", d.cfg.Storage.Backend),
		zap.String("clipboard", d.cfg.Clipboard.Backend),
		zap.Int("items", len(d.manager.Items())))

	err := d.server.Serve(ctx)
	return multierr.Append(err, d.Close())
}

// Close stops serving, flushes queued mutations and releases the lock
func (d *Daemon) Close() error {
	d.closeOnce.Do(func() {
		d.closeErr = multierr.Combine(
			d.server.Close(),
			d.manager.Close(),
			releaseLock(d.lock),
		)
		if d.closeErr != nil {
			d.logger.Error("daemon shutdown incomplete", zap.Error(d.closeErr))
		} else {
			d.logger.Info("clipman daemon stopped")
		}
	})
	return d.closeErr
}
