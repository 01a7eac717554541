// Package compression gzips stored documents once they grow past a threshold.
package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Threshold is the payload size from which MaybeCompress compresses
const Threshold = 1024 // 1KB

var magic = []byte{0x1f, 0x8b}

// IsCompressed reports whether data starts with the gzip magic bytes
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, magic)
}

// Compress gzips data unconditionally
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	return buf.Bytes(), nil
}

// MaybeCompress compresses data only when it is at least Threshold bytes
func MaybeCompress(data []byte) ([]byte, error) {
	if len(data) < Threshold {
		return data, nil
	}
	return Compress(data)
}

// Decompress reverses Compress. Data without the gzip header is returned as is.
func Decompress(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return out, nil
}
