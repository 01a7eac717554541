package clipboard

import (
	"regexp"
	"slices"
	"strings"

	"github.com/berrythewa/clipman/internal/platform"
	"github.com/berrythewa/clipman/internal/types"
	"mvdan.cc/xurls/v2"
)

// Classify reads the pasteboard and returns what should be captured. Image
// data wins over text; empty text counts as nothing.
func Classify(pb platform.Pasteboard) (types.Content, bool) {
	if img, ok := pb.ReadImage(); ok && len(img) > 0 {
		return types.ImageContent(img), true
	}
	if text, ok := pb.ReadText(); ok && text != "" {
		return types.TextContent(text), true
	}
	return types.Content{}, false
}

const monthName = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\b`

var (
	linkPattern = xurls.Strict()

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:\+\d{1,3}[ .-]?)?\(?\d{3}\)?[ .-]\d{3}[ .-]\d{4}\b`),
		regexp.MustCompile(`\+\d{1,3}(?:[ .-]\d{2,4}){2,4}\b`),
	}

	dateTimePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}(?:[T ]\d{2}:\d{2}(?::\d{2})?)?\b`),
		regexp.MustCompile(`\b\d{1,2}[/.]\d{1,2}[/.]\d{2,4}\b`),
		regexp.MustCompile(`(?i)\b` + monthName + `\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?\b`),
		regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?\s+` + monthName),
		regexp.MustCompile(`(?i)\b(?:[01]?\d|2[0-3]):[0-5]\d(?::[0-5]\d)?(?:\s*[ap]m)?\b`),
		regexp.MustCompile(`(?i)\b(?:today|tomorrow|yesterday)\b`),
	}

	addressPattern = regexp.MustCompile(`(?i)\b\d{1,6}\s+(?:[a-z0-9.'-]+\s+){1,4}(?:street|st|avenue|ave|road|rd|boulevard|blvd|lane|ln|drive|dr|court|ct|way|place|pl|terrace|parkway|pkwy|circle|cir|highway|hwy)\b`)

	filePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^(~/|\./|/)[^\x00\s]*`),
		regexp.MustCompile(`(?m)^[a-zA-Z]:[\\/][^\x00\s]*`),
	}

	numericPattern = regexp.MustCompile(`^[0-9,.]+$`)

	codeMarkers     = []string{"func ", "class ", "struct ", "enum ", "import ", "public ", "private ", "{", "}"}
	richTextMarkers = []string{"<html", "<body", "<div", "style=", `{"ops":`}
)

// DeriveTags returns the sorted tag set for content at capture time
func DeriveTags(content types.Content) []string {
	text, ok := content.Text()
	if !ok {
		return []string{types.TagImage}
	}

	var tags []string
	if linkPattern.MatchString(text) {
		tags = append(tags, types.TagLink)
	}
	if matchAny(phonePatterns, text) {
		tags = append(tags, types.TagNumber)
	}
	if matchAny(dateTimePatterns, text) {
		tags = append(tags, types.TagDateTime)
	}
	if addressPattern.MatchString(text) {
		tags = append(tags, types.TagAddress)
	}
	if matchAny(filePatterns, text) {
		tags = append(tags, types.TagFile)
	}
	if containsAny(text, codeMarkers) {
		tags = append(tags, types.TagCode)
	}
	if containsAny(text, richTextMarkers) {
		tags = append(tags, types.TagRichText)
	}
	if numericPattern.MatchString(strings.TrimSpace(text)) {
		tags = append(tags, types.TagNumber)
	}

	if len(tags) == 0 {
		return []string{types.TagText}
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
