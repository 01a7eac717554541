// Package groups maintains user-named collections of history entry ids.
package groups

import (
	"slices"
	"strings"
	"sync/atomic"

	"github.com/berrythewa/clipman/internal/common"
	"github.com/berrythewa/clipman/internal/queue"
	"github.com/berrythewa/clipman/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultName is given to groups created with a blank name
const DefaultName = "Untitled"

// Persister saves and restores the full group list
type Persister interface {
	Load() []types.Group
	Save([]types.Group)
}

// Options configures a Registry
type Options struct {
	Logger *zap.Logger
	NewID  func() string
}

// Registry owns the group list. Mutations run on the shared queue; reads
// see the snapshot published by the last completed mutation.
type Registry struct {
	queue   *queue.Queue
	persist Persister
	logger  *zap.Logger
	newID   func() string

	groups   []types.Group // owned by queue jobs
	snapshot atomic.Pointer[[]types.Group]
	feed     common.Feed[[]types.Group]
}

// New loads the persisted groups and returns a ready registry
func New(q *queue.Queue, persist Persister, opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	r := &Registry{
		queue:   q,
		persist: persist,
		logger:  opts.Logger,
		newID:   opts.NewID,
	}
	empty := []types.Group{}
	r.snapshot.Store(&empty)

	<-q.Submit(func() {
		loaded := persist.Load()
		for i := range loaded {
			loaded[i].ItemIDs = types.NormalizeSet(loaded[i].ItemIDs)
		}
		r.groups = loaded
		r.publish()
		r.logger.Debug("groups loaded", zap.Int("count", len(loaded)))
	})
	return r
}

// Create adds an empty group. The returned group is final; the channel
// closes once it is visible and saved.
func (r *Registry) Create(name string) (types.Group, <-chan struct{}) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	g := types.Group{ID: r.newID(), Name: name, ItemIDs: []string{}}

	done := r.queue.Submit(func() {
		r.groups = append(r.groups, g.Clone())
		r.commit()
		r.logger.Info("group created", zap.String("group_id", g.ID), zap.String("name", g.Name))
	})
	return g.Clone(), done
}

// Delete removes a group. Its entries are untouched.
func (r *Registry) Delete(groupID string) <-chan struct{} {
	return r.queue.Submit(func() {
		i := r.indexOf(groupID)
		if i < 0 {
			r.logger.Debug("delete of unknown group ignored", zap.String("group_id", groupID))
			return
		}
		r.groups = slices.Delete(r.groups, i, i+1)
		r.commit()
	})
}

// Rename changes a group's name. Blank names are ignored.
func (r *Registry) Rename(groupID, name string) <-chan struct{} {
	name = strings.TrimSpace(name)
	return r.queue.Submit(func() {
		if name == "" {
			r.logger.Debug("blank group name ignored", zap.String("group_id", groupID))
			return
		}
		i := r.indexOf(groupID)
		if i < 0 {
			r.logger.Debug("rename of unknown group ignored", zap.String("group_id", groupID))
			return
		}
		if r.groups[i].Name == name {
			return
		}
		r.groups[i].Name = name
		r.commit()
	})
}

// AddMember puts entryID into the group. Adding an existing member is a no-op.
func (r *Registry) AddMember(groupID, entryID string) <-chan struct{} {
	return r.queue.Submit(func() {
		i := r.indexOf(groupID)
		if i < 0 {
			r.logger.Debug("add to unknown group ignored",
				zap.String("group_id", groupID), zap.String("entry_id", entryID))
			return
		}
		ids := r.groups[i].ItemIDs
		pos, found := slices.BinarySearch(ids, entryID)
		if found {
			return
		}
		r.groups[i].ItemIDs = slices.Insert(ids, pos, entryID)
		r.commit()
	})
}

// RemoveMember takes entryID out of the group
func (r *Registry) RemoveMember(groupID, entryID string) <-chan struct{} {
	return r.queue.Submit(func() {
		i := r.indexOf(groupID)
		if i < 0 {
			r.logger.Debug("remove from unknown group ignored",
				zap.String("group_id", groupID), zap.String("entry_id", entryID))
			return
		}
		ids := r.groups[i].ItemIDs
		pos, found := slices.BinarySearch(ids, entryID)
		if !found {
			return
		}
		r.groups[i].ItemIDs = slices.Delete(ids, pos, pos+1)
		r.commit()
	})
}

// Groups returns the current group list in creation order
func (r *Registry) Groups() []types.Group {
	return types.CloneGroups(*r.snapshot.Load())
}

// Group looks up one group by id
func (r *Registry) Group(groupID string) (types.Group, bool) {
	for _, g := range *r.snapshot.Load() {
		if g.ID == groupID {
			return g.Clone(), true
		}
	}
	return types.Group{}, false
}

// Contains reports whether entryID is a member of the group
func (r *Registry) Contains(groupID, entryID string) bool {
	g, ok := r.Group(groupID)
	return ok && g.Contains(entryID)
}

// IsReferenced reports whether any group lists entryID
func (r *Registry) IsReferenced(entryID string) bool {
	for _, g := range *r.snapshot.Load() {
		if g.Contains(entryID) {
			return true
		}
	}
	return false
}

// MembersOf projects the group over history: members in history order, with
// ids that no longer resolve left out.
func (r *Registry) MembersOf(groupID string, history []types.Entry) []types.Entry {
	g, ok := r.Group(groupID)
	if !ok {
		return []types.Entry{}
	}
	out := make([]types.Entry, 0, len(g.ItemIDs))
	for _, e := range history {
		if g.Contains(e.ID) {
			out = append(out, e.Clone())
		}
	}
	return out
}

// Subscribe streams the group list after every change
func (r *Registry) Subscribe() (<-chan []types.Group, func()) {
	return r.feed.Subscribe()
}

// Close ends all subscriptions
func (r *Registry) Close() {
	r.feed.Close()
}

func (r *Registry) indexOf(groupID string) int {
	return slices.IndexFunc(r.groups, func(g types.Group) bool { return g.ID == groupID })
}

func (r *Registry) commit() {
	r.publish()
	r.persist.Save(r.groups)
}

func (r *Registry) publish() {
	snap := types.CloneGroups(r.groups)
	r.snapshot.Store(&snap)
	r.feed.Publish(types.CloneGroups(snap))
}
