package platform

import (
	"fmt"

	"github.com/berrythewa/clipman/internal/types"
	"go.uber.org/zap"
)

// Pasteboard abstracts the OS clipboard. Implementations never fail loudly:
// anything unreadable is reported as absent and write failures are logged.
type Pasteboard interface {
	// ChangeCount returns a counter that increases whenever the clipboard
	// contents change, including through Write
	ChangeCount() int64

	// ReadText returns the plain-text representation, if any
	ReadText() (string, bool)

	// ReadImage returns raster image bytes, if any
	ReadImage() ([]byte, bool)

	// Write clears the clipboard and sets exactly one representation
	// matching the content variant
	Write(types.Content)
}

// Backend names accepted by New
const (
	BackendNative = "native"
	BackendText   = "text"
	BackendMemory = "memory"
)

// New returns the pasteboard implementation selected by backend. The native
// backend falls back to the text-only one when the display clipboard cannot
// be initialized.
func New(backend string, logger *zap.Logger) (Pasteboard, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch backend {
	case "", BackendNative:
		pb, err := newNative(logger)
		if err != nil {
			logger.Warn("native clipboard unavailable, using text-only fallback", zap.Error(err))
			return NewText(logger), nil
		}
		logger.Debug("using native clipboard", zap.String("type", fmt.Sprintf("%T", pb)))
		return pb, nil
	case BackendText:
		return NewText(logger), nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown clipboard backend %q", backend)
	}
}
