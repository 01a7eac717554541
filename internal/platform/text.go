package platform

import (
	atottoClip "github.com/atotto/clipboard"
	"github.com/berrythewa/clipman/internal/types"
	"go.uber.org/zap"
)

// Text is a fallback pasteboard backed by atotto/clipboard. It only carries
// plain text; image writes are dropped with a warning.
type Text struct {
	tracker changeTracker
	logger  *zap.Logger
}

// NewText returns the text-only pasteboard
func NewText(logger *zap.Logger) *Text {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Text{logger: logger}
}

func (c *Text) ChangeCount() int64 {
	text, _ := c.ReadText()
	return c.tracker.observe([]byte(text), nil)
}

func (c *Text) ReadText() (string, bool) {
	text, err := atottoClip.ReadAll()
	if err != nil {
		c.logger.Debug("clipboard text unavailable", zap.Error(err))
		return "", false
	}
	if text == "" {
		return "", false
	}
	return text, true
}

func (c *Text) ReadImage() ([]byte, bool) {
	return nil, false
}

func (c *Text) Write(content types.Content) {
	text, ok := content.Text()
	if !ok {
		c.logger.Warn("text clipboard cannot hold images, write dropped",
			zap.Int("size", content.Size()))
		return
	}
	if err := atottoClip.WriteAll(text); err != nil {
		c.logger.Error("failed to write clipboard", zap.Error(err))
		return
	}
	c.tracker.wrote([]byte(text), nil)
}
