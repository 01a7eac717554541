//go:build !cgo

package platform

import (
	"errors"

	"go.uber.org/zap"
)

func newNative(_ *zap.Logger) (Pasteboard, error) {
	return nil, errors.New("native clipboard requires cgo")
}
