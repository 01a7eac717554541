package format

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/berrythewa/clipman/internal/types"
)

// FormatImage describes image content by format, dimensions and size
func FormatImage(content types.Content, _ Options) string {
	data, _ := content.Image()
	size := FormatSize(int64(len(data)))
	cfg, kind, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Sprintf("[Binary image data - %s]", size)
	}
	return fmt.Sprintf("[%s image %dx%d - %s]", kind, cfg.Width, cfg.Height, size)
}

// FormatImagePreview creates a short preview of image content
func FormatImagePreview(content types.Content) string {
	data, _ := content.Image()
	return fmt.Sprintf("[Image %s]", FormatSize(int64(len(data))))
}
