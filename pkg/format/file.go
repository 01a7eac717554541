package format

import (
	"fmt"
	"strings"

	"github.com/berrythewa/clipman/internal/types"
)

// FormatFile formats copied file paths, one per line
func FormatFile(content types.Content, opts Options) string {
	text, _ := content.Text()
	return formatFileList(splitPaths(text), opts)
}

// FormatFilePreview creates a short preview of file path content
func FormatFilePreview(content types.Content, maxLen int) string {
	text, _ := content.Text()
	files := splitPaths(text)
	if len(files) == 1 {
		return TruncateText(files[0], maxLen)
	}
	return fmt.Sprintf("[%d files]", len(files))
}

func splitPaths(text string) []string {
	var files []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files
}

func formatFileList(files []string, opts Options) string {
	if len(files) == 0 {
		return "[Empty file list]"
	}

	// Show up to 3 files, then summary
	const maxShow = 3
	shown := files
	if len(files) > maxShow {
		shown = files[:maxShow]
	}
	out := make([]string, len(shown))
	for i, f := range shown {
		out[i] = TruncateText(f, opts.MaxWidth)
	}
	list := strings.Join(out, "\n")
	if remaining := len(files) - len(shown); remaining > 0 {
		list += fmt.Sprintf("\n... and %d more files", remaining)
	}
	return list
}
