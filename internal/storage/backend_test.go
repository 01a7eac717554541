package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/berrythewa/clipman/internal/config"
	"github.com/berrythewa/clipman/pkg/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func TestBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) Backend{
		"file": func(t *testing.T) Backend {
			b, err := NewFileBackend(filepath.Join(t.TempDir(), "nested"))
			require.NoError(t, err)
			return b
		},
		"bolt": func(t *testing.T) Backend {
			b, err := NewBoltBackend(filepath.Join(t.TempDir(), "clipman.db"))
			require.NoError(t, err)
			return b
		},
		"memory": func(t *testing.T) Backend {
			return NewMemoryBackend()
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			b := open(t)
			defer b.Close()

			_, err := b.Read(HistoryKey)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, b.Write(HistoryKey, []byte(`["one"]`)))
			require.NoError(t, b.Write(HistoryKey, []byte(`["two"]`)))

			got, err := b.Read(HistoryKey)
			require.NoError(t, err)
			assert.Equal(t, []byte(`["two"]`), got)

			large := bytes.Repeat([]byte(`"entry",`), 1000)
			require.NoError(t, b.Write(GroupsKey, large))
			got, err = b.Read(GroupsKey)
			require.NoError(t, err)
			assert.Equal(t, large, got)
		})
	}
}

func TestFileBackendLayout(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)

	require.NoError(t, b.Write(HistoryKey, []byte("[]")))

	data, err := os.ReadFile(filepath.Join(dir, "clipboard_items.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestBoltBackendCompressesLargeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipman.db")
	b, err := NewBoltBackend(path)
	require.NoError(t, err)

	large := bytes.Repeat([]byte("x"), 4*compression.Threshold)
	require.NoError(t, b.Write(HistoryKey, large))
	require.NoError(t, b.Write(GroupsKey, []byte("[]")))
	require.NoError(t, b.Close())

	db, err := bbolt.Open(path, 0600, nil)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentsBucket))
		assert.True(t, compression.IsCompressed(bucket.Get([]byte(HistoryKey))))
		assert.Equal(t, []byte("[]"), bucket.Get([]byte(GroupsKey)))
		return nil
	}))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	for _, backend := range []string{"file", "bolt", "memory"} {
		b, err := Open(config.StorageConfig{Backend: backend, Dir: filepath.Join(dir, backend)}, nil)
		require.NoError(t, err, backend)
		require.NoError(t, b.Close())
	}

	_, err := Open(config.StorageConfig{Backend: "s3", Dir: dir}, nil)
	assert.Error(t, err)
}
