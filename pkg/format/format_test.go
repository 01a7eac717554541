package format

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/berrythewa/clipman/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 9, 8, 12, 0, 0, 0, time.UTC)

func plainOptions() Options {
	opts := DefaultOptions()
	opts.UseColors = false
	opts.UseIcons = false
	opts.Now = func() time.Time { return now }
	return opts
}

func TestFormatEntry(t *testing.T) {
	e := types.Entry{
		ID:         "0123456789abcdef",
		Content:    types.TextContent("hello\nworld"),
		CreatedAt:  now.Add(-2 * time.Hour),
		IsFavorite: true,
		Tags:       []string{types.TagText},
	}

	want := "01234567 ★ Text\n" +
		"  Copied: 2 hours ago • Size: 11 B • Tags: #Text\n" +
		"  hello\n" +
		"  world"
	assert.Equal(t, want, FormatEntry(e, plainOptions()))

	compact := CompactOptions()
	compact.UseColors, compact.UseIcons = false, false
	assert.Equal(t, "01234567 ★ Text hello world", FormatEntry(e, compact))
}

func TestFormatEntryList(t *testing.T) {
	opts := plainOptions()
	assert.Equal(t, "No clipboard history", FormatEntryList("History", nil, opts))

	entries := []types.Entry{
		{ID: "a", Content: types.TextContent("one"), CreatedAt: now, Tags: []string{types.TagText}},
		{ID: "b", Content: types.TextContent("/etc/hosts"), CreatedAt: now, Tags: []string{types.TagFile}},
	}
	opts.Compact = true
	opts.ShowMetadata = false
	assert.Equal(t, "📋 History (2 entries)\n\n[1] a Text one\n[2] b File /etc/hosts",
		FormatEntryList("History", entries, opts))
}

func TestKind(t *testing.T) {
	tests := []struct {
		entry types.Entry
		want  string
	}{
		{types.Entry{Tags: []string{types.TagRichText, types.TagCode}}, types.TagCode},
		{types.Entry{Tags: []string{"work", types.TagLink}}, types.TagLink},
		{types.Entry{Tags: []string{"work"}}, types.TagText},
		{types.Entry{Content: types.ImageContent([]byte{1})}, types.TagImage},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Kind(tt.entry), "tags %v", tt.entry.Tags)
	}
}

func TestFormatImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))))

	assert.Contains(t, FormatImage(types.ImageContent(buf.Bytes()), plainOptions()), "[png image 3x2 - ")
	assert.Equal(t, "[Binary image data - 3 B]", FormatImage(types.ImageContent([]byte{1, 2, 3}), plainOptions()))
}

func TestFormatFile(t *testing.T) {
	opts := plainOptions()
	content := types.TextContent("/a\n/b\n/c\n/d\n")
	assert.Equal(t, "/a\n/b\n/c\n... and 1 more files", FormatFile(content, opts))
	assert.Equal(t, "[4 files]", FormatFilePreview(content, 20))
	assert.Equal(t, "/a", FormatFilePreview(types.TextContent(" /a "), 20))
}

func TestFormatURLHighlightsLinks(t *testing.T) {
	opts := plainOptions()
	content := types.TextContent("see https://go.dev")
	assert.Equal(t, "see https://go.dev", FormatURL(content, opts))

	opts.UseColors = true
	assert.Equal(t, "see "+Underline+Blue+"https://go.dev"+Reset, FormatURL(content, opts))
}

func TestFormatGroup(t *testing.T) {
	opts := plainOptions()
	g := types.Group{ID: "g1", Name: "Work", ItemIDs: []string{"a", "gone"}}
	members := []types.Entry{{ID: "a", Content: types.TextContent("note"), Tags: []string{types.TagText}}}

	assert.Equal(t, "Group Work g1\n  a Text note\n  (1 members no longer in history)", New(opts).FormatGroup(g, members))
	assert.Equal(t, "g1  Work (2)", New(opts).FormatGroupList([]types.Group{g}))
	assert.Equal(t, "No groups", New(opts).FormatGroupList(nil))
}

func TestFormatStats(t *testing.T) {
	entries := []types.Entry{
		{Content: types.TextContent("new"), CreatedAt: now, Tags: []string{types.TagText}, IsFavorite: true},
		{Content: types.ImageContent(make([]byte, 2048)), CreatedAt: now.Add(-3 * 24 * time.Hour), Tags: []string{types.TagImage}},
	}
	s := ComputeStats(entries)
	assert.Equal(t, 2, s.Entries)
	assert.Equal(t, 1, s.Favorites)
	assert.Equal(t, int64(2051), s.TotalSize)
	assert.Equal(t, map[string]int{types.TagText: 1, types.TagImage: 1}, s.ByKind)

	out := FormatStats(s, plainOptions())
	assert.Contains(t, out, "  Total size: 2.0 KB")
	assert.Contains(t, out, "  Oldest entry: 3 days ago")
	assert.Contains(t, out, "  Image: 1\n  Text: 1")
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, "10 B", FormatSize(10))
	assert.Equal(t, "1.5 KB", FormatSize(1536))
	assert.Equal(t, "ab...", TruncateText("abcdef", 5))
	assert.Equal(t, "héllo", TruncateText("héllo", 5))
	assert.Equal(t, "a\nb\n... (1 more lines)", TruncateLines("a\nb\nc", 2))
	assert.Equal(t, "a b c", OneLine(" a\n b\tc "))
	assert.Equal(t, "(whitespace)", FormatTextPreview(types.TextContent(" \n "), 10))

	assert.Equal(t, "just now", FormatRelativeTime(now.Add(-time.Second), now))
	assert.Equal(t, "1 minute ago", FormatRelativeTime(now.Add(-time.Minute), now))
	assert.Equal(t, "5 days ago", FormatRelativeTime(now.Add(-5*24*time.Hour), now))
}
