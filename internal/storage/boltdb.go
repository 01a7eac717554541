package storage

import (
	"fmt"
	"time"

	"github.com/berrythewa/clipman/pkg/compression"
	"go.etcd.io/bbolt"
)

const documentsBucket = "documents"

// BoltBackend stores documents in a single bbolt bucket. Large values are
// gzipped on write and inflated transparently on read.
type BoltBackend struct {
	db *bbolt.DB
}

// NewBoltBackend opens (or creates) the database at path
func NewBoltBackend(path string) (*BoltBackend, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(documentsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) Read(key string) ([]byte, error) {
	var raw []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(documentsBucket)).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		// v is only valid inside the transaction
		raw = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return compression.Decompress(raw)
}

func (b *BoltBackend) Write(key string, data []byte) error {
	packed, err := compression.MaybeCompress(data)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(documentsBucket)).Put([]byte(key), packed)
	})
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}
