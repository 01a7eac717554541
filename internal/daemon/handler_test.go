package daemon

import (
	"context"
	"fmt"
	"testing"

	"github.com/berrythewa/clipman/internal/clipboard"
	"github.com/berrythewa/clipman/internal/ipc"
	"github.com/berrythewa/clipman/internal/platform"
	"github.com/berrythewa/clipman/internal/storage"
	"github.com/berrythewa/clipman/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	pb      *platform.Memory
	manager *clipboard.Manager
	handler *handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	n := 0
	pb := platform.NewMemory()
	m := clipboard.NewManager(pb, storage.NewMemoryBackend(), clipboard.Options{
		Logger: zaptest.NewLogger(t),
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%02d", n)
		},
	})
	t.Cleanup(func() { m.Close() })
	return &fixture{pb: pb, manager: m, handler: newHandler(m, "/tmp/test.sock", zaptest.NewLogger(t))}
}

func (f *fixture) capture(values ...string) {
	for _, v := range values {
		f.pb.CopyText(v)
		<-f.manager.Poll()
	}
}

// call sends one request through the handler and requires success
func (f *fixture) call(t *testing.T, command string, args, out any) *ipc.Response {
	t.Helper()
	resp := f.send(t, command, args)
	require.NoError(t, resp.Err())
	if out != nil {
		require.NoError(t, resp.DecodeData(out))
	}
	return resp
}

func (f *fixture) send(t *testing.T, command string, args any) *ipc.Response {
	t.Helper()
	req, err := ipc.NewRequest(command, args)
	require.NoError(t, err)
	return f.handler.handle(context.Background(), req)
}

func entryTexts(entries []types.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Content.String())
	}
	return out
}

func TestHandleStatus(t *testing.T) {
	f := newFixture(t)
	f.capture("a", "b")

	var info ipc.StatusInfo
	f.call(t, ipc.CmdStatus, nil, &info)
	assert.Equal(t, 2, info.Items)
	assert.Equal(t, 0, info.Groups)
	assert.Equal(t, "/tmp/test.sock", info.Socket)
	assert.NotZero(t, info.PID)
}

func TestHandleHistory(t *testing.T) {
	f := newFixture(t)
	f.capture("https://go.dev", "hello", "Hello again")

	var entries []types.Entry
	f.call(t, ipc.CmdHistory, nil, &entries)
	assert.Equal(t, []string{"Hello again", "hello", "https://go.dev"}, entryTexts(entries))

	f.call(t, ipc.CmdHistory, ipc.HistoryArgs{Search: "HELLO", Limit: 1}, &entries)
	assert.Equal(t, []string{"Hello again"}, entryTexts(entries))

	f.call(t, ipc.CmdHistory, ipc.HistoryArgs{Tags: []string{types.TagLink}}, &entries)
	assert.Equal(t, []string{"https://go.dev"}, entryTexts(entries))

	resp := f.send(t, ipc.CmdHistory, ipc.HistoryArgs{Tab: "bogus"})
	assert.EqualError(t, resp.Err(), `unknown tab "bogus"`)
}

func TestHandleFavoriteAndTabs(t *testing.T) {
	f := newFixture(t)
	f.capture("keep", "other")

	var entry types.Entry
	resp := f.call(t, ipc.CmdFavorite, ipc.EntryArgs{ID: "id-01"}, &entry)
	assert.Equal(t, "added to favorites", resp.Message)
	assert.True(t, entry.IsFavorite)

	var entries []types.Entry
	f.call(t, ipc.CmdHistory, ipc.HistoryArgs{Tab: "favorites"}, &entries)
	assert.Equal(t, []string{"keep"}, entryTexts(entries))

	resp = f.call(t, ipc.CmdFavorite, ipc.EntryArgs{ID: "id-01"}, &entry)
	assert.Equal(t, "removed from favorites", resp.Message)
	assert.False(t, entry.IsFavorite)
}

func TestHandleEntryPrefixes(t *testing.T) {
	f := newFixture(t)
	f.capture("one", "two")

	var entry types.Entry
	f.call(t, ipc.CmdCopy, ipc.EntryArgs{ID: "id-01"}, &entry)
	text, ok := f.pb.ReadText()
	require.True(t, ok)
	assert.Equal(t, "one", text)

	resp := f.send(t, ipc.CmdCopy, ipc.EntryArgs{ID: "id-0"})
	assert.ErrorContains(t, resp.Err(), "ambiguous")

	resp = f.send(t, ipc.CmdDelete, ipc.EntryArgs{ID: "nope"})
	assert.EqualError(t, resp.Err(), `no entry "nope" in history`)

	resp = f.send(t, ipc.CmdDelete, ipc.EntryArgs{})
	assert.EqualError(t, resp.Err(), "an entry id is required")
}

func TestHandleCopyMovesToFront(t *testing.T) {
	f := newFixture(t)
	f.capture("old", "new")

	f.call(t, ipc.CmdCopy, ipc.EntryArgs{ID: "id-01"}, nil)

	var entries []types.Entry
	f.call(t, ipc.CmdHistory, nil, &entries)
	assert.Equal(t, []string{"old", "new"}, entryTexts(entries))
}

func TestHandleDeleteAndClear(t *testing.T) {
	f := newFixture(t)
	f.capture("a", "b", "c", "d")

	f.call(t, ipc.CmdDelete, ipc.EntryArgs{ID: "id-02"}, nil)
	f.call(t, ipc.CmdFavorite, ipc.EntryArgs{ID: "id-01"}, nil)

	resp := f.call(t, ipc.CmdClear, nil, nil)
	assert.Equal(t, "removed 1 entries", resp.Message)
	assert.Equal(t, []string{"d", "a"}, entryTexts(f.manager.Items()))
}

func TestHandleSetTags(t *testing.T) {
	f := newFixture(t)
	f.capture("note")

	var entry types.Entry
	f.call(t, ipc.CmdSetTags, ipc.SetTagsArgs{ID: "id-01", Tags: []string{"work", " todo "}}, &entry)
	assert.Equal(t, []string{"todo", "work"}, entry.Tags)

	var tags []string
	f.call(t, ipc.CmdTags, nil, &tags)
	assert.Equal(t, []string{"todo", "work"}, tags)
}

func TestHandleGroups(t *testing.T) {
	f := newFixture(t)
	f.capture("first", "second")

	var g types.Group
	f.call(t, ipc.CmdGroupCreate, ipc.GroupArgs{Name: "Snippets"}, &g)
	assert.Equal(t, "Snippets", g.Name)

	f.call(t, ipc.CmdGroupAdd, ipc.MemberArgs{GroupID: "Snippets", ItemID: "id-01"}, nil)

	var details ipc.GroupDetails
	f.call(t, ipc.CmdGroupShow, ipc.GroupArgs{Name: "Snippets"}, &details)
	assert.Equal(t, g.ID, details.Group.ID)
	assert.Equal(t, []string{"first"}, entryTexts(details.Items))

	var entries []types.Entry
	f.call(t, ipc.CmdHistory, ipc.HistoryArgs{Tab: "group", GroupID: g.ID}, &entries)
	assert.Equal(t, []string{"first"}, entryTexts(entries))

	var renamed types.Group
	f.call(t, ipc.CmdGroupRename, ipc.GroupArgs{ID: g.ID, Name: "Code"}, &renamed)
	assert.Equal(t, "Code", renamed.Name)

	resp := f.send(t, ipc.CmdGroupRename, ipc.GroupArgs{ID: g.ID, Name: "  "})
	assert.Error(t, resp.Err())

	// a deleted entry can still be removed from the group by id
	f.call(t, ipc.CmdDelete, ipc.EntryArgs{ID: "id-01"}, nil)
	f.call(t, ipc.CmdGroupRemove, ipc.MemberArgs{GroupID: "Code", ItemID: "id-01"}, nil)
	assert.False(t, f.manager.IsItemInGroup("id-01", g.ID))

	var list []types.Group
	f.call(t, ipc.CmdGroupList, nil, &list)
	require.Len(t, list, 1)

	f.call(t, ipc.CmdGroupDelete, ipc.GroupArgs{ID: g.ID}, nil)
	assert.Empty(t, f.manager.Groups())

	resp = f.send(t, ipc.CmdGroupShow, ipc.GroupArgs{Name: "Code"})
	assert.EqualError(t, resp.Err(), `no group "Code"`)
}

func TestHandleUnknownCommand(t *testing.T) {
	f := newFixture(t)
	resp := f.handler.handle(context.Background(), &ipc.Request{Command: "flush"})
	assert.EqualError(t, resp.Err(), `unknown command "flush"`)
}

func TestHandleCanceledRequest(t *testing.T) {
	f := newFixture(t)
	f.capture("a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, err := ipc.NewRequest(ipc.CmdDelete, ipc.EntryArgs{ID: "id-01"})
	require.NoError(t, err)

	// the mutation is already queued; only the wait is abandoned
	resp := f.handler.handle(ctx, req)
	if resp.Status == ipc.StatusError {
		assert.Equal(t, context.Canceled.Error(), resp.Message)
	}
}
