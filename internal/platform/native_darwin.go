//go:build darwin && cgo

package platform

// #cgo CFLAGS: -x objective-c
// #cgo LDFLAGS: -framework Cocoa
// #import <Cocoa/Cocoa.h>
//
// static long clipman_change_count() {
//     return (long)[[NSPasteboard generalPasteboard] changeCount];
// }
import "C"

import (
	"fmt"

	"github.com/berrythewa/clipman/internal/types"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

// darwinPasteboard reads NSPasteboard's own changeCount and moves payloads
// through golang.design/x/clipboard.
type darwinPasteboard struct {
	logger *zap.Logger
}

func newNative(logger *zap.Logger) (Pasteboard, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("init NSPasteboard: %w", err)
	}
	return &darwinPasteboard{logger: logger}, nil
}

func (p *darwinPasteboard) ChangeCount() int64 {
	return int64(C.clipman_change_count())
}

func (p *darwinPasteboard) ReadText() (string, bool) {
	text := clipboard.Read(clipboard.FmtText)
	if len(text) == 0 {
		return "", false
	}
	return string(text), true
}

func (p *darwinPasteboard) ReadImage() ([]byte, bool) {
	img := clipboard.Read(clipboard.FmtImage)
	if len(img) == 0 {
		return nil, false
	}
	return img, true
}

func (p *darwinPasteboard) Write(content types.Content) {
	switch content.Type {
	case types.TypeText:
		clipboard.Write(clipboard.FmtText, content.Data)
	case types.TypeImage:
		clipboard.Write(clipboard.FmtImage, content.Data)
	default:
		p.logger.Warn("unsupported content type, write dropped", zap.String("type", string(content.Type)))
		return
	}
	p.logger.Debug("wrote clipboard",
		zap.String("type", string(content.Type)),
		zap.Int64("change_count", p.ChangeCount()))
}
