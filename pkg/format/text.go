package format

import (
	"github.com/berrythewa/clipman/internal/types"
)

// FormatText renders text content within the line and width limits
func FormatText(content types.Content, opts Options) string {
	text, ok := content.Text()
	if !ok || text == "" {
		return ""
	}
	text = TruncateLines(text, opts.MaxLines)
	return TruncateEachLine(text, opts.MaxWidth)
}

// FormatTextPreview creates a single-line preview of text content
func FormatTextPreview(content types.Content, maxLen int) string {
	text, ok := content.Text()
	if !ok {
		return ""
	}
	if text = OneLine(text); text == "" {
		return "(whitespace)"
	}
	return TruncateText(text, maxLen)
}
