package platform

import (
	"slices"
	"sync"

	"github.com/berrythewa/clipman/internal/types"
)

// Memory is an in-process pasteboard used by tests and headless runs. Like
// NSPasteboard, clearing and every set bump the change counter.
type Memory struct {
	mu     sync.Mutex
	count  int64
	text   *string
	image  []byte
	writes int
}

// NewMemory returns an empty in-memory pasteboard
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ChangeCount() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

func (m *Memory) ReadText() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.text == nil {
		return "", false
	}
	return *m.text, true
}

func (m *Memory) ReadImage() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.image == nil {
		return nil, false
	}
	return slices.Clone(m.image), true
}

func (m *Memory) Write(content types.Content) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	m.clearLocked()
	switch content.Type {
	case types.TypeText:
		s := string(content.Data)
		m.text = &s
		m.count++
	case types.TypeImage:
		m.image = slices.Clone(content.Data)
		m.count++
	}
}

// Clear empties the pasteboard
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

// SetText simulates another application copying text
func (m *Memory) SetText(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = &s
	m.count++
}

// SetImage simulates another application copying an image
func (m *Memory) SetImage(b []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.image = slices.Clone(b)
	m.count++
}

// CopyText replaces the contents with text, as a user copy would
func (m *Memory) CopyText(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
	m.text = &s
	m.count++
}

// Writes returns how many times Write was called
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Memory) clearLocked() {
	m.text = nil
	m.image = nil
	m.count++
}
