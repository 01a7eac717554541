//go:build !darwin && cgo

package platform

import (
	"fmt"

	"github.com/berrythewa/clipman/internal/types"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

// nativePasteboard uses golang.design/x/clipboard on X11 and Windows. Neither
// exposes a change counter we can poll cheaply, so one is derived from
// payload fingerprints.
type nativePasteboard struct {
	tracker changeTracker
	logger  *zap.Logger
}

func newNative(logger *zap.Logger) (Pasteboard, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("init display clipboard: %w", err)
	}
	return &nativePasteboard{logger: logger}, nil
}

func (p *nativePasteboard) ChangeCount() int64 {
	return p.tracker.observe(clipboard.Read(clipboard.FmtText), clipboard.Read(clipboard.FmtImage))
}

func (p *nativePasteboard) ReadText() (string, bool) {
	text := clipboard.Read(clipboard.FmtText)
	if len(text) == 0 {
		return "", false
	}
	return string(text), true
}

func (p *nativePasteboard) ReadImage() ([]byte, bool) {
	img := clipboard.Read(clipboard.FmtImage)
	if len(img) == 0 {
		return nil, false
	}
	return img, true
}

func (p *nativePasteboard) Write(content types.Content) {
	switch content.Type {
	case types.TypeText:
		clipboard.Write(clipboard.FmtText, content.Data)
		p.tracker.wrote(content.Data, nil)
	case types.TypeImage:
		clipboard.Write(clipboard.FmtImage, content.Data)
		p.tracker.wrote(nil, content.Data)
	default:
		p.logger.Warn("unsupported content type, write dropped", zap.String("type", string(content.Type)))
	}
}
