// Package storage persists whole documents (the history list, the group list)
// as JSON blobs over a pluggable byte store.
package storage

import "errors"

// ErrNotFound is returned by Backend.Read when no document is stored under key
var ErrNotFound = errors.New("document not found")

// Document keys
const (
	HistoryKey = "clipboard_items"
	GroupsKey  = "custom_groups"
)

//go:generate mockgen -source=backend.go -destination=mock_backend_test.go -package=storage

// Backend stores opaque documents by key. Writes replace the whole document.
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
	Close() error
}
