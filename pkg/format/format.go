// Package format renders clipboard history, groups and tags for the terminal.
package format

import (
	"fmt"
	"strings"

	"github.com/berrythewa/clipman/internal/types"
)

// Formatter is the main formatting orchestrator that delegates to specialized formatters
type Formatter struct {
	options Options
}

// New creates a new formatter with the given options
func New(opts Options) *Formatter {
	return &Formatter{options: opts}
}

// NewDefault creates a new formatter with default options
func NewDefault() *Formatter {
	return New(DefaultOptions())
}

// FormatEntry formats a single history entry
func (f *Formatter) FormatEntry(e types.Entry) string {
	header := f.formatHeader(e)

	if f.options.Compact {
		return header + " " + DimIf(f.formatPreview(e, 50), f.options.UseColors)
	}

	parts := []string{header}
	if f.options.ShowMetadata {
		parts = append(parts, f.formatMetadata(e))
	}
	if body := f.formatBody(e); body != "" {
		parts = append(parts, IndentText(body, "  "))
	}
	return strings.Join(parts, "\n")
}

// FormatEntryList formats entries under a titled header
func (f *Formatter) FormatEntryList(title string, entries []types.Entry) string {
	if len(entries) == 0 {
		return ColorizeIf("No clipboard history", Gray, f.options.UseColors)
	}

	parts := []string{
		ColorizeIf(fmt.Sprintf("📋 %s (%d entries)", title, len(entries)), BrightBlue, f.options.UseColors),
		"",
	}
	for i, e := range entries {
		index := DimIf(fmt.Sprintf("[%d]", i+1), f.options.UseColors)
		if f.options.Compact {
			parts = append(parts, index+" "+f.FormatEntry(e))
			continue
		}
		parts = append(parts, index, f.FormatEntry(e))
		if i < len(entries)-1 {
			parts = append(parts, CreateSeparator(f.options))
		}
	}
	return strings.Join(parts, "\n")
}

// FormatGroup formats a group and its live members
func (f *Formatter) FormatGroup(g types.Group, members []types.Entry) string {
	title := fmt.Sprintf("Group %s", g.Name)
	header := BoldIf(title, f.options.UseColors) + " " + DimIf(f.shortID(g.ID), f.options.UseColors)
	if len(members) == 0 {
		return header + "\n" + ColorizeIf("  (no entries)", Gray, f.options.UseColors)
	}
	parts := []string{header}
	for _, e := range members {
		parts = append(parts, "  "+New(f.compact()).FormatEntry(e))
	}
	if stale := len(g.ItemIDs) - len(members); stale > 0 {
		parts = append(parts, DimIf(fmt.Sprintf("  (%d members no longer in history)", stale), f.options.UseColors))
	}
	return strings.Join(parts, "\n")
}

// FormatGroupList formats one line per group
func (f *Formatter) FormatGroupList(groups []types.Group) string {
	if len(groups) == 0 {
		return ColorizeIf("No groups", Gray, f.options.UseColors)
	}
	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		lines = append(lines, fmt.Sprintf("%s  %s %s",
			DimIf(f.shortID(g.ID), f.options.UseColors),
			BoldIf(g.Name, f.options.UseColors),
			DimIf(fmt.Sprintf("(%d)", len(g.ItemIDs)), f.options.UseColors)))
	}
	return strings.Join(lines, "\n")
}

// FormatTags formats a tag universe, one tag per line
func (f *Formatter) FormatTags(tags []string) string {
	if len(tags) == 0 {
		return ColorizeIf("No tags", Gray, f.options.UseColors)
	}
	lines := make([]string, 0, len(tags))
	for _, tag := range tags {
		lines = append(lines, f.formatTag(tag))
	}
	return strings.Join(lines, "\n")
}

func (f *Formatter) compact() Options {
	opts := f.options
	opts.Compact = true
	opts.ShowMetadata = false
	return opts
}

func (f *Formatter) formatHeader(e types.Entry) string {
	kind := Kind(e)
	label := kind
	if f.options.UseIcons {
		if icon, ok := TagIcons[kind]; ok {
			label = icon + " " + kind
		}
	}
	header := ColorizeIf(label, TagColors[kind], f.options.UseColors)
	if e.IsFavorite {
		header = ColorizeIf("★", Yellow, f.options.UseColors) + " " + header
	}
	return DimIf(f.shortID(e.ID), f.options.UseColors) + " " + header
}

func (f *Formatter) formatMetadata(e types.Entry) string {
	parts := []string{
		"Copied: " + FormatRelativeTime(e.CreatedAt, f.options.now()),
		"Size: " + FormatSize(int64(e.Content.Size())),
	}
	if len(e.Tags) > 0 {
		tags := make([]string, len(e.Tags))
		for i, tag := range e.Tags {
			tags[i] = "#" + tag
		}
		parts = append(parts, "Tags: "+strings.Join(tags, " "))
	}
	return DimIf("  "+strings.Join(parts, " • "), f.options.UseColors)
}

// formatBody delegates to specialized formatters based on the entry kind
func (f *Formatter) formatBody(e types.Entry) string {
	if e.Content.Type == types.TypeImage {
		return FormatImage(e.Content, f.options)
	}
	switch Kind(e) {
	case types.TagLink:
		return FormatURL(e.Content, f.options)
	case types.TagFile:
		return FormatFile(e.Content, f.options)
	default:
		return FormatText(e.Content, f.options)
	}
}

func (f *Formatter) formatPreview(e types.Entry, maxLen int) string {
	if e.Content.Type == types.TypeImage {
		return FormatImagePreview(e.Content)
	}
	if Kind(e) == types.TagFile {
		return FormatFilePreview(e.Content, maxLen)
	}
	return FormatTextPreview(e.Content, maxLen)
}

func (f *Formatter) formatTag(tag string) string {
	label := tag
	if f.options.UseIcons {
		if icon, ok := TagIcons[tag]; ok {
			label = icon + " " + tag
		}
	}
	return ColorizeIf(label, TagColors[tag], f.options.UseColors)
}

func (f *Formatter) shortID(id string) string {
	if n := f.options.IDLength; n > 0 && len(id) > n {
		return id[:n]
	}
	return id
}

// Package-level convenience functions

// FormatEntry formats a single entry with given options
func FormatEntry(e types.Entry, opts Options) string {
	return New(opts).FormatEntry(e)
}

// FormatEntryList formats multiple entries with given options
func FormatEntryList(title string, entries []types.Entry, opts Options) string {
	return New(opts).FormatEntryList(title, entries)
}
