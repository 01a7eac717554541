package format

import (
	"time"

	"github.com/berrythewa/clipman/internal/types"
)

// Options controls formatting behavior
type Options struct {
	UseColors    bool
	UseIcons     bool
	MaxWidth     int  // Max content width (0 = no limit)
	MaxLines     int  // Max content lines (0 = no limit)
	ShowMetadata bool // Show id, timestamp, size and tags
	Compact      bool // Use compact single-line format
	IDLength     int  // Shown id prefix length (0 = full id)

	Now func() time.Time // reference for relative times, defaults to time.Now
}

// DefaultOptions returns sensible defaults
func DefaultOptions() Options {
	return Options{
		UseColors:    true,
		UseIcons:     true,
		MaxWidth:     80,
		MaxLines:     10,
		ShowMetadata: true,
		IDLength:     8,
	}
}

// CompactOptions returns options for compact single-line display
func CompactOptions() Options {
	opts := DefaultOptions()
	opts.Compact = true
	opts.ShowMetadata = false
	opts.MaxLines = 1
	return opts
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// TagIcons maps classification tags to Unicode icons
var TagIcons = map[string]string{
	types.TagText:     "📝",
	types.TagImage:    "🖼️",
	types.TagFile:     "📁",
	types.TagLink:     "🔗",
	types.TagRichText: "📄",
	types.TagCode:     "💻",
	types.TagNumber:   "🔢",
	types.TagDateTime: "📅",
	types.TagAddress:  "📍",
}

// TagColors maps classification tags to colors
var TagColors = map[string]string{
	types.TagText:     Cyan,
	types.TagImage:    Magenta,
	types.TagFile:     BrightYellow,
	types.TagLink:     Blue,
	types.TagRichText: Gray,
	types.TagCode:     Green,
	types.TagNumber:   Yellow,
	types.TagDateTime: Yellow,
	types.TagAddress:  Red,
}

// kindOrder decides which tag labels an entry when it carries several
var kindOrder = []string{
	types.TagImage,
	types.TagLink,
	types.TagFile,
	types.TagCode,
	types.TagRichText,
	types.TagAddress,
	types.TagDateTime,
	types.TagNumber,
	types.TagText,
}

// Kind returns the classification tag that best describes the entry
func Kind(e types.Entry) string {
	for _, tag := range kindOrder {
		if e.HasTag(tag) {
			return tag
		}
	}
	if e.Content.Type == types.TypeImage {
		return types.TagImage
	}
	return types.TagText
}
