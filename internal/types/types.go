package types

import (
	"slices"
	"strings"
	"time"
)

// Tag names produced by content classification
const (
	TagLink     = "Link"
	TagNumber   = "Number"
	TagDateTime = "Date/Time"
	TagAddress  = "Address"
	TagFile     = "File"
	TagCode     = "Code"
	TagRichText = "Rich Text"
	TagText     = "Text"
	TagImage    = "Image"
)

// Entry is one captured clipboard snapshot. Only IsFavorite and Tags change
// after creation.
type Entry struct {
	ID         string    `json:"id"`
	Content    Content   `json:"content"`
	CreatedAt  time.Time `json:"timestamp"`
	IsFavorite bool      `json:"isFavorite"`
	Tags       []string  `json:"tag"`
}

// HasTag reports whether tag is in the entry's tag set
func (e Entry) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// Clone returns a deep copy safe to hand to observers
func (e Entry) Clone() Entry {
	e.Content.Data = slices.Clone(e.Content.Data)
	e.Tags = slices.Clone(e.Tags)
	return e
}

// Group is a user-named collection of entry ids. Membership is by reference
// only; ids may outlive their entries.
type Group struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	ItemIDs []string `json:"itemIds"`
}

// Contains reports whether entryID is a member
func (g Group) Contains(entryID string) bool {
	return slices.Contains(g.ItemIDs, entryID)
}

// Clone returns a deep copy
func (g Group) Clone() Group {
	g.ItemIDs = slices.Clone(g.ItemIDs)
	return g
}

// NormalizeSet trims, drops blanks, de-duplicates and sorts a string set
func NormalizeSet(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// CloneEntries deep-copies a history list
func CloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

// CloneGroups deep-copies a group list
func CloneGroups(groups []Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = g.Clone()
	}
	return out
}
