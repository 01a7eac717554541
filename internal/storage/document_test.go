package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/berrythewa/clipman/internal/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func sampleEntries() []types.Entry {
	at := time.Date(2025, 9, 8, 10, 0, 0, 0, time.UTC)
	return []types.Entry{
		{ID: "b", Content: types.TextContent("hello"), CreatedAt: at, Tags: []string{types.TagText}},
		{ID: "a", Content: types.ImageContent([]byte{0x89, 'P', 'N', 'G'}), CreatedAt: at.Add(-time.Minute), IsFavorite: true, Tags: []string{types.TagImage}},
	}
}

func roundTrip[T any](t *testing.T, key string, want []T) {
	t.Helper()
	backend := NewMemoryBackend()
	NewDocument[T](backend, key, zaptest.NewLogger(t)).Save(want)

	got := NewDocument[T](backend, key, nil).Load()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	at := time.Date(2025, 9, 8, 10, 0, 0, 0, time.UTC)

	entries := []struct {
		name string
		want []types.Entry
	}{
		{"text and image", sampleEntries()},
		{"empty", []types.Entry{}},
		{"multi-tag", []types.Entry{{
			ID:        "c",
			Content:   types.TextContent(`<div>func main() {}</div> https://go.dev`),
			CreatedAt: at,
			Tags:      []string{types.TagCode, types.TagLink, types.TagRichText, "work"},
		}}},
		{"replaced invalid utf-8", []types.Entry{
			{ID: "d", Content: types.TextContent("a\xffb"), CreatedAt: at, Tags: []string{types.TagText}},
		}},
	}
	for _, tt := range entries {
		t.Run("entries/"+tt.name, func(t *testing.T) {
			roundTrip(t, HistoryKey, tt.want)
		})
	}

	groups := []struct {
		name string
		want []types.Group
	}{
		{"empty", []types.Group{}},
		{"several members", []types.Group{
			{ID: "g1", Name: "Work", ItemIDs: []string{"a", "b", "c"}},
			{ID: "g2", Name: "Snippets", ItemIDs: []string{"c"}},
		}},
	}
	for _, tt := range groups {
		t.Run("groups/"+tt.name, func(t *testing.T) {
			roundTrip(t, GroupsKey, tt.want)
		})
	}
}

func TestDocumentMissingLoadsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)
	backend.EXPECT().Read(GroupsKey).Return(nil, ErrNotFound)

	got := NewDocument[types.Group](backend, GroupsKey, nil).Load()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDocumentCorruptLoadsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)
	backend.EXPECT().Read(HistoryKey).Return([]byte(`[{"id":`), nil)

	core, logs := observer.New(zap.ErrorLevel)
	got := NewDocument[types.Entry](backend, HistoryKey, zap.New(core)).Load()

	assert.Empty(t, got)
	assert.Equal(t, 1, logs.FilterMessage("failed to decode document, starting empty").Len())
}

func TestDocumentReadErrorLoadsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)
	backend.EXPECT().Read(HistoryKey).Return(nil, errors.New("disk on fire"))

	core, logs := observer.New(zap.ErrorLevel)
	got := NewDocument[types.Entry](backend, HistoryKey, zap.New(core)).Load()

	assert.Empty(t, got)
	assert.Equal(t, 1, logs.FilterMessage("failed to read document").Len())
}

func TestDocumentSaveFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)
	backend.EXPECT().Write(HistoryKey, gomock.Any()).Return(errors.New("read-only file system"))

	core, logs := observer.New(zap.ErrorLevel)
	doc := NewDocument[types.Entry](backend, HistoryKey, zap.New(core))
	doc.Save(sampleEntries())

	entries := logs.FilterMessage("failed to write document").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, HistoryKey, entries[0].ContextMap()["document"])
	}
}

func TestDocumentSaveNilWritesEmptyList(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)
	backend.EXPECT().Write(GroupsKey, []byte("[]")).Return(nil)

	NewDocument[types.Group](backend, GroupsKey, nil).Save(nil)
}
