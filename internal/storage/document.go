package storage

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

// Document is a JSON-encoded list of T stored under one key. Failures are
// logged and never surfaced: in-memory state stays authoritative.
type Document[T any] struct {
	backend Backend
	key     string
	logger  *zap.Logger
}

// NewDocument binds key on backend
func NewDocument[T any](backend Backend, key string, logger *zap.Logger) *Document[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Document[T]{
		backend: backend,
		key:     key,
		logger:  logger.With(zap.String("document", key)),
	}
}

// Load returns the stored list. A missing or unreadable document loads as
// empty.
func (d *Document[T]) Load() []T {
	data, err := d.backend.Read(d.key)
	if errors.Is(err, ErrNotFound) {
		d.logger.Debug("no stored document, starting empty")
		return []T{}
	}
	if err != nil {
		d.logger.Error("failed to read document", zap.Error(err))
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		d.logger.Error("failed to decode document, starting empty", zap.Error(err))
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	d.logger.Debug("loaded document", zap.Int("items", len(items)))
	return items
}

// Save replaces the stored list with items
func (d *Document[T]) Save(items []T) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		d.logger.Error("failed to encode document", zap.Error(err))
		return
	}
	if err := d.backend.Write(d.key, data); err != nil {
		d.logger.Error("failed to write document", zap.Error(err))
	}
}
