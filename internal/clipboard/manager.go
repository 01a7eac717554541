package clipboard

import (
	"context"

	"github.com/berrythewa/clipman/internal/groups"
	"github.com/berrythewa/clipman/internal/platform"
	"github.com/berrythewa/clipman/internal/queue"
	"github.com/berrythewa/clipman/internal/storage"
	"github.com/berrythewa/clipman/internal/types"
	"go.uber.org/zap"
)

// Manager is what clients talk to: history and groups behind one serial
// queue, so no two mutations of either ever interleave.
type Manager struct {
	queue   *queue.Queue
	store   *Store
	groups  *groups.Registry
	backend storage.Backend
	logger  *zap.Logger
}

// NewManager loads history and groups from backend. The manager takes
// ownership of backend and closes it on Close.
func NewManager(pb platform.Pasteboard, backend storage.Backend, opts Options) *Manager {
	opts = opts.withDefaults()
	logger := opts.Logger

	q := queue.New()
	registry := groups.New(q,
		storage.NewDocument[types.Group](backend, storage.GroupsKey, logger),
		groups.Options{Logger: logger.Named("groups"), NewID: opts.NewID})

	storeOpts := opts
	storeOpts.Logger = logger.Named("history")
	store := NewStore(pb, q,
		storage.NewDocument[types.Entry](backend, storage.HistoryKey, logger),
		registry, storeOpts)

	return &Manager{
		queue:   q,
		store:   store,
		groups:  registry,
		backend: backend,
		logger:  logger,
	}
}

// Start begins clipboard monitoring
func (m *Manager) Start(ctx context.Context) { m.store.Start(ctx) }

// Stop halts clipboard monitoring
func (m *Manager) Stop() { m.store.Stop() }

// Poll checks the clipboard once
func (m *Manager) Poll() <-chan struct{} { return m.store.Poll() }

// Close stops monitoring, runs every queued mutation, ends subscriptions and
// closes the storage backend.
func (m *Manager) Close() error {
	m.store.Stop()
	m.queue.Close()
	m.store.Close()
	m.groups.Close()
	return m.backend.Close()
}

func (m *Manager) Items() []types.Entry { return m.store.Items() }
func (m *Manager) Item(id string) (types.Entry, bool) { return m.store.Item(id) }
func (m *Manager) FavoriteItems() []types.Entry { return m.store.FavoriteItems() }
func (m *Manager) Groups() []types.Group { return m.groups.Groups() }
func (m *Manager) Group(id string) (types.Group, bool) { return m.groups.Group(id) }
func (m *Manager) Subscribe() (<-chan []types.Entry, func()) { return m.store.Subscribe() }

// SubscribeGroups streams the group list after every change
func (m *Manager) SubscribeGroups() (<-chan []types.Group, func()) { return m.groups.Subscribe() }

func (m *Manager) CopyToClipboard(entry types.Entry) <-chan struct{} {
	return m.store.CopyToClipboard(entry)
}

func (m *Manager) DeleteItem(id string) <-chan struct{} { return m.store.DeleteItem(id) }
func (m *Manager) ToggleFavorite(id string) <-chan struct{} { return m.store.ToggleFavorite(id) }
func (m *Manager) ClearHistory() <-chan struct{} { return m.store.ClearHistory() }

func (m *Manager) SetTags(id string, tags []string) <-chan struct{} {
	return m.store.SetTags(id, tags)
}

func (m *Manager) CreateCustomGroup(name string) (types.Group, <-chan struct{}) {
	return m.groups.Create(name)
}

func (m *Manager) DeleteCustomGroup(groupID string) <-chan struct{} {
	return m.groups.Delete(groupID)
}

func (m *Manager) RenameCustomGroup(groupID, name string) <-chan struct{} {
	return m.groups.Rename(groupID, name)
}

func (m *Manager) AddItemToGroup(itemID, groupID string) <-chan struct{} {
	return m.groups.AddMember(groupID, itemID)
}

func (m *Manager) RemoveItemFromGroup(itemID, groupID string) <-chan struct{} {
	return m.groups.RemoveMember(groupID, itemID)
}

// ItemsInGroup returns the group's live members in history order
func (m *Manager) ItemsInGroup(groupID string) []types.Entry {
	return m.groups.MembersOf(groupID, m.store.Items())
}

func (m *Manager) IsItemInGroup(itemID, groupID string) bool {
	return m.groups.Contains(groupID, itemID)
}
