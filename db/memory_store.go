package db

import (
	"context"
	"sync"
	"time"

	"roster-lookup-go/roster"
)

type memoryEntry struct {
	session  *roster.Session
	lastSeen time.Time
}

// MemoryStore keeps sessions in process memory. Sessions idle for longer than
// the TTL are dropped lazily.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates a MemoryStore. A ttl of zero disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create implements SessionStore.
func (m *MemoryStore) Create(_ context.Context) (*roster.Session, error) {
	s := roster.NewSession(newSessionID())
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	m.sessions[s.ID] = &memoryEntry{session: s, lastSeen: m.now()}
	return s, nil
}

// Get implements SessionStore.
func (m *MemoryStore) Get(_ context.Context, id string) (*roster.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok || m.expired(e) {
		delete(m.sessions, id)
		return nil, ErrSessionNotFound
	}
	e.lastSeen = m.now()
	return e.session, nil
}

// Save implements SessionStore.
func (m *MemoryStore) Save(_ context.Context, s *roster.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &memoryEntry{session: s, lastSeen: m.now()}
	return nil
}

// Delete implements SessionStore.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, e := range m.sessions {
		if !m.expired(e) {
			n++
		}
	}
	return n
}

func (m *MemoryStore) expired(e *memoryEntry) bool {
	return m.ttl > 0 && m.now().Sub(e.lastSeen) > m.ttl
}

func (m *MemoryStore) sweepLocked() {
	for id, e := range m.sessions {
		if m.expired(e) {
			delete(m.sessions, id)
		}
	}
}
