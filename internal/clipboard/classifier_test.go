package clipboard

import (
	"testing"

	"github.com/berrythewa/clipman/internal/platform"
	"github.com/berrythewa/clipman/internal/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	pb := platform.NewMemory()

	_, ok := Classify(pb)
	assert.False(t, ok, "empty pasteboard")

	pb.SetText("")
	_, ok = Classify(pb)
	assert.False(t, ok, "empty text is nothing")

	pb.SetText("hello")
	content, ok := Classify(pb)
	assert.True(t, ok)
	assert.True(t, content.Equal(types.TextContent("hello")))

	pb.SetText("a\xffb")
	content, ok = Classify(pb)
	assert.True(t, ok)
	assert.Equal(t, "a\uFFFDb", content.String(), "invalid UTF-8 is replaced at capture")

	pb.SetImage([]byte{0x89, 'P', 'N', 'G'})
	content, ok = Classify(pb)
	assert.True(t, ok)
	assert.Equal(t, types.TypeImage, content.Type, "image takes priority over text")
}

func TestDeriveTags(t *testing.T) {
	tests := []struct {
		name    string
		content types.Content
		want    []string
	}{
		{"plain", types.TextContent("Hello world"), []string{types.TagText}},
		{"image", types.ImageContent([]byte{1, 2}), []string{types.TagImage}},
		{"link", types.TextContent("see https://example.com/docs"), []string{types.TagLink}},
		{"mailto", types.TextContent("mailto:someone@example.com"), []string{types.TagLink}},
		{"integer", types.TextContent("  12345\n"), []string{types.TagNumber}},
		{"amount", types.TextContent("1,234.56"), []string{types.TagNumber}},
		{"phone", types.TextContent("Call +1 415-555-0132"), []string{types.TagNumber}},
		{"iso date and time", types.TextContent("Meet on 2025-09-08 at 10:30"), []string{types.TagDateTime}},
		{"month name", types.TextContent("due March 3, 2025"), []string{types.TagDateTime}},
		{"address", types.TextContent("1600 Pennsylvania Avenue"), []string{types.TagAddress}},
		{"unix path", types.TextContent("/usr/local/bin"), []string{types.TagFile}},
		{"home path", types.TextContent("notes\n~/Documents/todo.txt"), []string{types.TagFile}},
		{"windows path", types.TextContent(`C:\Windows\System32`), []string{types.TagFile}},
		{"code", types.TextContent("func main() {}"), []string{types.TagCode}},
		{"html", types.TextContent(`<div style="color:red">hi</div>`), []string{types.TagRichText}},
		{"quill delta", types.TextContent(`{"ops":[]}`), []string{types.TagCode, types.TagRichText}},
		{"link and code", types.TextContent(`import "https://deno.land/x/mod.ts"`), []string{types.TagCode, types.TagLink}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, DeriveTags(tt.content)); diff != "" {
				t.Errorf("DeriveTags() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
