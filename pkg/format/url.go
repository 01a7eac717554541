package format

import (
	"github.com/berrythewa/clipman/internal/types"
	"mvdan.cc/xurls/v2"
)

// FormatURL highlights every link inside text content
func FormatURL(content types.Content, opts Options) string {
	text := FormatText(content, opts)
	if !opts.UseColors {
		return text
	}
	return xurls.Relaxed().ReplaceAllStringFunc(text, func(link string) string {
		return ColorizeIf(link, Underline+Blue, true)
	})
}
