// Package clipboard is the history engine: it watches the pasteboard, keeps
// the bounded de-duplicated history and exposes it to clients.
package clipboard

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/berrythewa/clipman/internal/common"
	"github.com/berrythewa/clipman/internal/platform"
	"github.com/berrythewa/clipman/internal/queue"
	"github.com/berrythewa/clipman/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultMaxItems       = 50
	DefaultInterval       = 500 * time.Millisecond
	DefaultMaxContentSize = 100 * 1024 * 1024 // 100MB
)

// Persister saves and restores the full history list
type Persister interface {
	Load() []types.Entry
	Save([]types.Entry)
}

// Pinner reports entries that something outside the history refers to
type Pinner interface {
	IsReferenced(entryID string) bool
}

type noPins struct{}

func (noPins) IsReferenced(string) bool { return false }

// Options configures a Store. Zero values select the defaults.
type Options struct {
	MaxItems int
	Interval time.Duration

	// Evict entries that are neither favorite nor grouped first
	PreservePinned bool

	// Clipboard payloads larger than this are not captured
	MaxContentSize int

	Logger *zap.Logger
	Now    func() time.Time
	NewID  func() string
}

func (o Options) withDefaults() Options {
	if o.MaxItems <= 0 {
		o.MaxItems = DefaultMaxItems
	}
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.MaxContentSize <= 0 {
		o.MaxContentSize = DefaultMaxContentSize
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	return o
}

// Store is the history state machine. Every mutation is a job on the shared
// queue; each returns a channel closed once the new list is applied,
// published and saved.
type Store struct {
	pb      platform.Pasteboard
	queue   *queue.Queue
	persist Persister
	pins    Pinner
	opts    Options
	logger  *zap.Logger

	// owned by queue jobs
	items      []types.Entry
	lastChange int64

	snapshot atomic.Pointer[[]types.Entry]
	feed     common.Feed[[]types.Entry]

	mu      sync.Mutex
	cancel  context.CancelFunc
	ticking chan struct{}
}

// NewStore loads persisted history and records the pasteboard's current
// change count, so whatever is on the clipboard at startup is not captured.
func NewStore(pb platform.Pasteboard, q *queue.Queue, persist Persister, pins Pinner, opts Options) *Store {
	opts = opts.withDefaults()
	if pins == nil {
		pins = noPins{}
	}

	s := &Store{
		pb:      pb,
		queue:   q,
		persist: persist,
		pins:    pins,
		opts:    opts,
		logger:  opts.Logger,
	}
	empty := []types.Entry{}
	s.snapshot.Store(&empty)

	<-q.Submit(func() {
		s.items = persist.Load()
		s.lastChange = pb.ChangeCount()
		s.publish()
		s.logger.Debug("history loaded",
			zap.Int("items", len(s.items)),
			zap.Int64("change_count", s.lastChange))
	})
	return s
}

// Poll captures the clipboard if it changed since the last observation
func (s *Store) Poll() <-chan struct{} {
	return s.queue.Submit(s.poll)
}

func (s *Store) poll() {
	count := s.pb.ChangeCount()
	if count == s.lastChange {
		return
	}
	// Record first: the same external change is never processed twice
	s.lastChange = count

	content, ok := Classify(s.pb)
	if !ok {
		return
	}
	if size := content.Size(); size > s.opts.MaxContentSize {
		s.logger.Debug("content exceeds maximum size, not captured",
			zap.Int("content_size_bytes", size),
			zap.Int("max_size_bytes", s.opts.MaxContentSize))
		return
	}
	if len(s.items) > 0 && s.items[0].Content.Equal(content) {
		return
	}
	// Content seen earlier resurfaces as the front entry instead of a duplicate
	if i := slices.IndexFunc(s.items, func(e types.Entry) bool { return e.Content.Equal(content) }); i > 0 {
		s.moveToFront(i)
		s.commit()
		s.logger.Debug("resurfaced clipboard entry", zap.String("entry_id", s.items[0].ID))
		return
	}

	entry := types.Entry{
		ID:        s.opts.NewID(),
		Content:   content,
		CreatedAt: s.opts.Now().UTC(),
		Tags:      DeriveTags(content),
	}
	s.items = slices.Insert(s.items, 0, entry)
	s.evict()
	s.commit()

	s.logger.Debug("captured clipboard entry",
		zap.String("entry_id", entry.ID),
		zap.String("type", string(content.Type)),
		zap.Int("size", content.Size()),
		zap.Strings("tags", entry.Tags))
}

// evict trims the list to MaxItems from the tail. The front entry always
// survives.
func (s *Store) evict() {
	limit := s.opts.MaxItems
	if len(s.items) <= limit {
		return
	}
	if s.opts.PreservePinned {
		for i := len(s.items) - 1; i > 0 && len(s.items) > limit; i-- {
			if !s.pinned(s.items[i]) {
				s.items = slices.Delete(s.items, i, i+1)
			}
		}
	}
	if len(s.items) > limit {
		s.items = slices.Delete(s.items, limit, len(s.items))
	}
}

func (s *Store) pinned(e types.Entry) bool {
	return e.IsFavorite || s.pins.IsReferenced(e.ID)
}

// CopyToClipboard writes the entry's content to the pasteboard and moves the
// entry to the front when it is still in history. The write itself is not
// captured by the next poll.
func (s *Store) CopyToClipboard(entry types.Entry) <-chan struct{} {
	content := types.Content{Type: entry.Content.Type, Data: slices.Clone(entry.Content.Data)}
	return s.queue.Submit(func() {
		s.pb.Write(content)
		s.lastChange = s.pb.ChangeCount()

		i := s.indexOf(entry.ID)
		switch {
		case i < 0:
			s.logger.Debug("copied entry is not in history", zap.String("entry_id", entry.ID))
		case i > 0:
			s.moveToFront(i)
			s.commit()
		}
	})
}

func (s *Store) moveToFront(i int) {
	moved := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)
	s.items = slices.Insert(s.items, 0, moved)
}

// DeleteItem removes the entry. Unchanged clipboard content is not
// re-captured afterwards; only a new clipboard change is.
func (s *Store) DeleteItem(id string) <-chan struct{} {
	return s.queue.Submit(func() {
		i := s.indexOf(id)
		if i < 0 {
			s.logger.Debug("delete of unknown entry ignored", zap.String("entry_id", id))
			return
		}
		s.items = slices.Delete(s.items, i, i+1)
		s.commit()
	})
}

// ToggleFavorite flips the favorite flag in place
func (s *Store) ToggleFavorite(id string) <-chan struct{} {
	return s.queue.Submit(func() {
		i := s.indexOf(id)
		if i < 0 {
			s.logger.Debug("favorite of unknown entry ignored", zap.String("entry_id", id))
			return
		}
		s.items[i].IsFavorite = !s.items[i].IsFavorite
		s.commit()
	})
}

// SetTags replaces the entry's tag set
func (s *Store) SetTags(id string, tags []string) <-chan struct{} {
	tags = types.NormalizeSet(tags)
	return s.queue.Submit(func() {
		i := s.indexOf(id)
		if i < 0 {
			s.logger.Debug("tagging of unknown entry ignored", zap.String("entry_id", id))
			return
		}
		if slices.Equal(s.items[i].Tags, tags) {
			return
		}
		s.items[i].Tags = tags
		s.commit()
	})
}

// ClearHistory drops everything except the front entry, favorites and
// entries referenced by a group. Order is preserved.
func (s *Store) ClearHistory() <-chan struct{} {
	return s.queue.Submit(func() {
		kept := make([]types.Entry, 0, len(s.items))
		for i, e := range s.items {
			if i == 0 || s.pinned(e) {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(s.items) {
			return
		}
		s.logger.Info("history cleared",
			zap.Int("removed", len(s.items)-len(kept)),
			zap.Int("kept", len(kept)))
		s.items = kept
		s.commit()
	})
}

// Start polls the pasteboard every Interval until ctx ends or Stop is called.
// A tick is skipped while the previous poll is still queued.
func (s *Store) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.ticking = make(chan struct{})
	go s.tick(ctx, s.ticking)
	s.logger.Info("clipboard monitoring started", zap.Duration("interval", s.opts.Interval))
}

func (s *Store) tick(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	var inflight <-chan struct{}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if inflight != nil {
				select {
				case <-inflight:
				default:
					continue
				}
			}
			inflight = s.Poll()
		}
	}
}

// Stop halts polling. Jobs already queued still run.
func (s *Store) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.ticking
	s.cancel, s.ticking = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("clipboard monitoring stopped")
}

// Close stops polling and ends all subscriptions
func (s *Store) Close() {
	s.Stop()
	s.feed.Close()
}

// Items returns the current history, most recent first
func (s *Store) Items() []types.Entry {
	return types.CloneEntries(*s.snapshot.Load())
}

// Item looks up one entry by id
func (s *Store) Item(id string) (types.Entry, bool) {
	for _, e := range *s.snapshot.Load() {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return types.Entry{}, false
}

// FavoriteItems returns the favorites in history order
func (s *Store) FavoriteItems() []types.Entry {
	var out []types.Entry
	for _, e := range *s.snapshot.Load() {
		if e.IsFavorite {
			out = append(out, e.Clone())
		}
	}
	if out == nil {
		out = []types.Entry{}
	}
	return out
}

// Subscribe streams the history after every change, starting with the
// current list. Values are shared between subscribers and must not be
// modified.
func (s *Store) Subscribe() (<-chan []types.Entry, func()) {
	return s.feed.Subscribe()
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(e types.Entry) bool { return e.ID == id })
}

func (s *Store) commit() {
	s.publish()
	s.persist.Save(s.items)
}

func (s *Store) publish() {
	snap := types.CloneEntries(s.items)
	s.snapshot.Store(&snap)
	s.feed.Publish(types.CloneEntries(snap))
}
