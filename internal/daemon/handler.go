package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/berrythewa/clipman/internal/clipboard"
	"github.com/berrythewa/clipman/internal/ipc"
	"github.com/berrythewa/clipman/internal/types"
	"go.uber.org/zap"
)

// handler maps IPC commands onto manager operations. Entry and group
// references accept a full id or a unique id prefix; groups also match by
// exact name.
type handler struct {
	manager *clipboard.Manager
	socket  string
	logger  *zap.Logger
}

func newHandler(m *clipboard.Manager, socket string, logger *zap.Logger) *handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &handler{manager: m, socket: socket, logger: logger}
}

func (h *handler) handle(ctx context.Context, req *ipc.Request) *ipc.Response {
	h.logger.Debug("handling request", zap.String("command", req.Command))

	var resp *ipc.Response
	switch req.Command {
	case ipc.CmdStatus:
		resp = ipc.OK("running", ipc.StatusInfo{
			PID:    os.Getpid(),
			Items:  len(h.manager.Items()),
			Groups: len(h.manager.Groups()),
			Socket: h.socket,
		})
	case ipc.CmdHistory:
		resp = h.history(req)
	case ipc.CmdTags:
		resp = h.tags(req)
	case ipc.CmdCopy:
		resp = h.copy(ctx, req)
	case ipc.CmdDelete:
		resp = h.delete(ctx, req)
	case ipc.CmdFavorite:
		resp = h.favorite(ctx, req)
	case ipc.CmdSetTags:
		resp = h.setTags(ctx, req)
	case ipc.CmdClear:
		resp = h.clear(ctx)
	case ipc.CmdGroupList:
		resp = ipc.OK("", h.manager.Groups())
	case ipc.CmdGroupCreate:
		resp = h.groupCreate(ctx, req)
	case ipc.CmdGroupDelete:
		resp = h.groupDelete(ctx, req)
	case ipc.CmdGroupRename:
		resp = h.groupRename(ctx, req)
	case ipc.CmdGroupAdd:
		resp = h.groupAdd(ctx, req)
	case ipc.CmdGroupRemove:
		resp = h.groupRemove(ctx, req)
	case ipc.CmdGroupShow:
		resp = h.groupShow(req)
	default:
		resp = ipc.Errorf("unknown command %q", req.Command)
	}

	if resp.Status != ipc.StatusOK {
		h.logger.Debug("request failed",
			zap.String("command", req.Command),
			zap.String("error", resp.Message))
	}
	return resp
}

func (h *handler) query(args ipc.HistoryArgs) (clipboard.Query, error) {
	q := clipboard.Query{Search: args.Search, Tags: args.Tags}
	switch clipboard.Tab(args.Tab) {
	case "", clipboard.TabAll:
		q.Tab = clipboard.TabAll
	case clipboard.TabFavorites:
		q.Tab = clipboard.TabFavorites
	case clipboard.TabGroup:
		g, err := h.resolveGroup(args.GroupID)
		if err != nil {
			return q, err
		}
		q.Tab, q.GroupID = clipboard.TabGroup, g.ID
	default:
		return q, fmt.Errorf("unknown tab %q", args.Tab)
	}
	return q, nil
}

func (h *handler) history(req *ipc.Request) *ipc.Response {
	var args ipc.HistoryArgs
	if err := req.DecodeArgs(&args); err != nil {
		return ipc.Errorf("%v", err)
	}
	q, err := h.query(args)
	if err != nil {
		return ipc.Errorf("%v", err)
	}
	entries := h.manager.Filter(q)
	if args.Limit > 0 && len(entries) > args.Limit {
		entries = entries[:args.Limit]
	}
	return ipc.OK("", entries)
}

func (h *handler) tags(req *ipc.Request) *ipc.Response {
	var args ipc.HistoryArgs
	if err := req.DecodeArgs(&args); err != nil {
		return ipc.Errorf("%v", err)
	}
	q, err := h.query(args)
	if err != nil {
		return ipc.Errorf("%v", err)
	}
	return ipc.OK("", h.manager.AllTags(q.Tab, q.GroupID))
}

func (h *handler) copy(ctx context.Context, req *ipc.Request) *ipc.Response {
	entry, err := h.entryArg(req)
	if err != nil {
		return ipc.Errorf("%v", err)
	}
	if err := wait(ctx, h.manager.CopyToClipboard(entry)); err != nil {
		return ipc.Errorf("%v", err)
	}
	return ipc.OK("copied to clipboard", entry)
}

func (h *handler) delete(ctx context.Context, req *ipc.Request) *ipc.Response {
	entry, err := h.entryArg(req)
	if err != nil {
		return ipc.Errorf("%v", err)
	}
	if err := wait(ctx, h.manager.DeleteItem(entry.ID)); err != nil {
		return ipc.Errorf("%v", err)
	}
	return ipc.OK("deleted "+entry.ID, nil)
}

func (h *handler) favorite(ctx context.Context, req *ipc.Request) *ipc.Response {
	entry, err := h.entryArg(req)
	if err != nil {
		return ipc.Errorf("%v", err)
	}
	if err := wait(ctx, h.manager.ToggleFavorite(entry.ID)); err != nil {
		return ipc.Errorf("%v", err)
	}
	updated, ok := h.manager.Item(entry.ID)
	if !ok {
		return ipc.Errorf("entry %s was removed", entry.ID)
	}
	msg := "removed from favorites"
	if updated.IsFavorite {
		msg = "added to favorites"
	}
	return ipc.OK(msg, updated)
}

func (h *handler) setTags(ctx context.Context, req *ipc.Request) *ipc.Response {
	var args ipc.SetTagsArgs
	if err := req.DecodeArgs(&args); err != nil {
		return ipc.Errorf("%v", err)
	}
	entry, err := h.resolveEntry(args.ID)
	if err != nil {
		return ipc.Errorf("%v", err)
	}
	if err := wait(ctx, h.manager.SetTags(entry.ID, args.Tags)); err != nil {
		return ipc.Errorf("%v", err)
	}
	updated, ok := h.manager.Item(entry.ID)
	if !ok {
		return ipc.Errorf("entry %s was removed", entry.ID)
	}
	return ipc.OK("tags updated", updated)
}

func (h *handler) clear(ctx context.Context) *ipc.Response {
	before := len(h.manager.Items())
	if err := wait(ctx, h.manager.ClearHistory()); err != nil {
		return ipc.Errorf("%v", err)
	}
	removed := before - len(h.manager.Items())
	return ipc.OK(fmt.Sprintf("removed %d entries", removed), nil)
}

func (h *handler) groupCreate(ctx context.Context, req *ipc.Request) *ipc.Response {
	var args ipc.GroupArgs
	if err := req.DecodeArgs(&args); err != nil {
		return ipc.Errorf("%v", err)
	}
	g, done := h.manager.CreateCustomGroup(args.Name)
	if err := wait(ctx, done); err != nil {
		return ipc.Errorf("%v", err)
	}
	return ipc.OK("created group "+g.Name, g)
}

func (h *handler) groupDelete(ctx context.Context, req *ipc.Request) *ipc.Response {
	g, err := h.groupArg(req)
	if err != nil {
		return ipc.Errorf("%v", err)
	}
	if err := wait(ctx, h.manager.DeleteCustomGroup(g.ID)); err != nil {
		return ipc.Errorf("%v", err)
	}
	return ipc.OK("deleted group "+g.Name, nil)
}

func (h *handler) groupRename(ctx context.Context, req *ipc.Request) *ipc.Response {
	var args ipc.GroupArgs
	if err := req.DecodeArgs(&args); err != nil {
		return ipc.Errorf("%v", err)
	}
	if strings.TrimSpace(args.Name) == "" {
		return ipc.Errorf("a new group name is required")
	}
	g, err := h.resolveGroup(args.ID)
	if err != nil {
		return ipc.Errorf("%v", err)
	}
	if err := wait(ctx, h.manager.RenameCustomGroup(g.ID, args.Name)); err != nil {
		return ipc.Errorf("%v", err)
	}
	updated, _ := h.manager.Group(g.ID)
	return ipc.OK("renamed group", updated)
}

func (h *handler) groupAdd(ctx context.Context, req *ipc.Request) *ipc.Response {
	var args ipc.MemberArgs
	if err := req.DecodeArgs(&args); err != nil {
		return ipc.Errorf("%v", err)
	}
	g, err := h.resolveGroup(args.GroupID)
	if err != nil {
		return ipc.Errorf("%v", err)
	}
	entry, err := h.resolveEntry(args.ItemID)
	if err != nil {
		return ipc.Errorf("%v", err)
	}
	if err := wait(ctx, h.manager.AddItemToGroup(entry.ID, g.ID)); err != nil {
		return ipc.Errorf("%v", err)
	}
	return ipc.OK(fmt.Sprintf("added %s to %s", entry.ID, g.Name), nil)
}

func (h *handler) groupRemove(ctx context.Context, req *ipc.Request) *ipc.Response {
	var args ipc.MemberArgs
	if err := req.DecodeArgs(&args); err != nil {
		return ipc.Errorf("%v", err)
	}
	g, err := h.resolveGroup(args.GroupID)
	if err != nil {
		return ipc.Errorf("%v", err)
	}
	// Members may refer to entries already gone from history
	itemID := args.ItemID
	if !g.Contains(itemID) {
		entry, err := h.resolveEntry(itemID)
		if err != nil {
			return ipc.Errorf("%v", err)
		}
		itemID = entry.ID
	}
	if err := wait(ctx, h.manager.RemoveItemFromGroup(itemID, g.ID)); err != nil {
		return ipc.Errorf("%v", err)
	}
	return ipc.OK(fmt.Sprintf("removed %s from %s", itemID, g.Name), nil)
}

func (h *handler) groupShow(req *ipc.Request) *ipc.Response {
	g, err := h.groupArg(req)
	if err != nil {
		return ipc.Errorf("%v", err)
	}
	return ipc.OK("", ipc.GroupDetails{Group: g, Items: h.manager.ItemsInGroup(g.ID)})
}

func (h *handler) entryArg(req *ipc.Request) (types.Entry, error) {
	var args ipc.EntryArgs
	if err := req.DecodeArgs(&args); err != nil {
		return types.Entry{}, err
	}
	return h.resolveEntry(args.ID)
}

func (h *handler) groupArg(req *ipc.Request) (types.Group, error) {
	var args ipc.GroupArgs
	if err := req.DecodeArgs(&args); err != nil {
		return types.Group{}, err
	}
	ref := args.ID
	if ref == "" {
		ref = args.Name
	}
	return h.resolveGroup(ref)
}

func (h *handler) resolveEntry(ref string) (types.Entry, error) {
	if ref == "" {
		return types.Entry{}, errors.New("an entry id is required")
	}
	if e, ok := h.manager.Item(ref); ok {
		return e, nil
	}
	var matches []types.Entry
	for _, e := range h.manager.Items() {
		if strings.HasPrefix(e.ID, ref) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return types.Entry{}, fmt.Errorf("no entry %q in history", ref)
	case 1:
		return matches[0], nil
	default:
		return types.Entry{}, fmt.Errorf("entry id %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func (h *handler) resolveGroup(ref string) (types.Group, error) {
	if ref == "" {
		return types.Group{}, errors.New("a group id or name is required")
	}
	if g, ok := h.manager.Group(ref); ok {
		return g, nil
	}
	all := h.manager.Groups()
	var matches []types.Group
	for _, g := range all {
		if g.Name == ref {
			matches = append(matches, g)
		}
	}
	if len(matches) == 0 {
		for _, g := range all {
			if strings.HasPrefix(g.ID, ref) {
				matches = append(matches, g)
			}
		}
	}
	switch len(matches) {
	case 0:
		return types.Group{}, fmt.Errorf("no group %q", ref)
	case 1:
		return matches[0], nil
	default:
		return types.Group{}, fmt.Errorf("group %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// wait blocks until a mutation is applied or the request is abandoned
func wait(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
