package session

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager hands out one Store per visitor, keyed by the opaque session ID
// carried in the storefront cookie. Stores idle past the TTL are dropped
// along with their files.
type Manager struct {
	dir string
	ttl time.Duration

	mu     sync.Mutex
	active map[string]*entry
}

type entry struct {
	store    *Store
	lastSeen time.Time
}

// NewManager creates a Manager persisting under dir. Sessions idle longer
// than ttl expire on next access.
func NewManager(dir string, ttl time.Duration) *Manager {
	return &Manager{dir: dir, ttl: ttl, active: map[string]*entry{}}
}

// NewID mints a fresh session ID.
func (m *Manager) NewID() string {
	return uuid.NewString()
}

// Store returns the visitor's store, loading it from disk on first access.
// Unknown IDs get an empty store; the caller cannot tell a new visitor from
// an expired one, which matches cleared browser storage.
func (m *Manager) Store(id string) *Store {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	m.purgeLocked(now)

	if e, ok := m.active[id]; ok {
		e.lastSeen = now
		return e.store
	}
	st := Open(m.path(id))
	m.active[id] = &entry{store: st, lastSeen: now}
	return st
}

// Drop removes the visitor's session entirely, file included. Used on
// logout when the visitor asks to be forgotten.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	delete(m.active, id)
	m.mu.Unlock()
	_ = os.Remove(m.path(id))
}

func (m *Manager) purgeLocked(now time.Time) {
	if m.ttl <= 0 {
		return
	}
	for id, e := range m.active {
		if now.Sub(e.lastSeen) > m.ttl {
			delete(m.active, id)
			_ = os.Remove(m.path(id))
		}
	}
}

func (m *Manager) path(id string) string {
	// Session IDs are uuids we minted, but never trust them as path input.
	return filepath.Join(m.dir, filepath.Base(id)+".json")
}
