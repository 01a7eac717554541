package clipboard

import (
	"strings"

	"github.com/berrythewa/clipman/internal/types"
)

// Tab selects the base list a Query filters
type Tab string

const (
	TabAll       Tab = "all"
	TabFavorites Tab = "favorites"
	TabGroup     Tab = "group"
)

// Query narrows the history the way the list views do: a tab, then a
// case-insensitive text search, then required tags.
type Query struct {
	Tab     Tab
	GroupID string // used with TabGroup
	Search  string
	Tags    []string // every tag must be present
}

// Filter returns the entries matching q in history order
func (m *Manager) Filter(q Query) []types.Entry {
	return q.Apply(m.base(q.Tab, q.GroupID))
}

// AllTags returns the sorted tags present in a tab, before search and tag
// filtering.
func (m *Manager) AllTags(tab Tab, groupID string) []string {
	var tags []string
	for _, e := range m.base(tab, groupID) {
		tags = append(tags, e.Tags...)
	}
	return types.NormalizeSet(tags)
}

func (m *Manager) base(tab Tab, groupID string) []types.Entry {
	switch tab {
	case TabFavorites:
		return m.FavoriteItems()
	case TabGroup:
		return m.ItemsInGroup(groupID)
	default:
		return m.Items()
	}
}

// Apply filters entries by search text and tags. Images never match a
// non-empty search.
func (q Query) Apply(entries []types.Entry) []types.Entry {
	needle := strings.ToLower(q.Search)
	out := make([]types.Entry, 0, len(entries))
	for _, e := range entries {
		if needle != "" {
			text, ok := e.Content.Text()
			if !ok || !strings.Contains(strings.ToLower(text), needle) {
				continue
			}
		}
		if hasAllTags(e, q.Tags) {
			out = append(out, e)
		}
	}
	return out
}

func hasAllTags(e types.Entry, tags []string) bool {
	for _, tag := range tags {
		if !e.HasTag(tag) {
			return false
		}
	}
	return true
}
