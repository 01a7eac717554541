package platform

import (
	"sync"

	"github.com/zeebo/xxh3"
)

// changeTracker synthesizes a change counter for clipboards that do not
// expose one, by hashing what was last seen.
type changeTracker struct {
	mu    sync.Mutex
	count int64
	text  xxh3.Uint128
	image xxh3.Uint128
	seen  bool
}

// observe records the current payloads and returns the counter, bumped if
// either payload differs from the previous observation
func (t *changeTracker) observe(text, image []byte) int64 {
	th, ih := xxh3.Hash128(text), xxh3.Hash128(image)

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.seen {
		t.seen = true
	} else if th != t.text || ih != t.image {
		t.count++
	}
	t.text, t.image = th, ih
	return t.count
}

// wrote accounts for a write made through the pasteboard itself
func (t *changeTracker) wrote(text, image []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.count++
	t.text, t.image = xxh3.Hash128(text), xxh3.Hash128(image)
	t.seen = true
}
