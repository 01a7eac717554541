package format

import (
	"fmt"
	"strings"

	"github.com/berrythewa/clipman/internal/types"
)

// Stats summarizes a history list
type Stats struct {
	Entries   int
	Favorites int
	TotalSize int64
	ByKind    map[string]int
	Oldest    types.Entry
	Newest    types.Entry
}

// ComputeStats aggregates entries given most recent first
func ComputeStats(entries []types.Entry) Stats {
	s := Stats{Entries: len(entries), ByKind: make(map[string]int)}
	for _, e := range entries {
		s.TotalSize += int64(e.Content.Size())
		s.ByKind[Kind(e)]++
		if e.IsFavorite {
			s.Favorites++
		}
	}
	if len(entries) > 0 {
		s.Newest, s.Oldest = entries[0], entries[len(entries)-1]
	}
	return s
}

// FormatStats formats clipboard statistics for display
func FormatStats(s Stats, opts Options) string {
	parts := []string{
		ColorizeIf("📊 Clipboard Statistics", BrightBlue, opts.UseColors),
		"",
		formatStatLine("Total entries", fmt.Sprint(s.Entries), opts),
		formatStatLine("Favorites", fmt.Sprint(s.Favorites), opts),
		formatStatLine("Total size", FormatSize(s.TotalSize), opts),
	}
	if s.Entries > 0 {
		now := opts.now()
		parts = append(parts,
			formatStatLine("Oldest entry", FormatRelativeTime(s.Oldest.CreatedAt, now), opts),
			formatStatLine("Newest entry", FormatRelativeTime(s.Newest.CreatedAt, now), opts))
	}

	if len(s.ByKind) > 0 {
		parts = append(parts, "", ColorizeIf("Entries by type", BrightBlue, opts.UseColors))
		// fixed order keeps output stable
		for _, kind := range kindOrder {
			count, ok := s.ByKind[kind]
			if !ok {
				continue
			}
			icon := ""
			if opts.UseIcons {
				icon = TagIcons[kind] + " "
			}
			parts = append(parts, fmt.Sprintf("  %s%s: %d", icon, ColorizeIf(kind, TagColors[kind], opts.UseColors), count))
		}
	}
	return strings.Join(parts, "\n")
}

func formatStatLine(label, value string, opts Options) string {
	if opts.UseColors {
		return fmt.Sprintf("  %s%s:%s %s", BrightCyan, label, Reset, value)
	}
	return fmt.Sprintf("  %s: %s", label, value)
}
