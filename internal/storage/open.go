package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/berrythewa/clipman/internal/config"
	"go.uber.org/zap"
)

// Open returns the backend selected by cfg.Backend rooted at cfg.Dir
func Open(cfg config.StorageConfig, logger *zap.Logger) (Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Backend {
	case "", "file":
		logger.Debug("using file storage", zap.String("dir", cfg.Dir))
		b, err := NewFileBackend(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "bolt":
		if err := os.MkdirAll(cfg.Dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		path := filepath.Join(cfg.Dir, "clipman.db")
		logger.Debug("using bolt storage", zap.String("path", path))
		b, err := NewBoltBackend(path)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "memory":
		logger.Warn("using in-memory storage, history will not survive restarts")
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
