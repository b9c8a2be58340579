package session

import (
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/match-test/internal/catalog"
)

// Manager owns the live sessions of a server.
type Manager struct {
	catalog *catalog.Catalog
	jobs    JobCreator

	mu       sync.RWMutex
	sessions map[string]*Session
	lastSeen map[string]time.Time
}

// NewManager creates a manager whose sessions share cat and jc.
func NewManager(cat *catalog.Catalog, jc JobCreator) *Manager {
	return &Manager{
		catalog:  cat,
		jobs:     jc,
		sessions: make(map[string]*Session),
		lastSeen: make(map[string]time.Time),
	}
}

// Create starts a new session.
func (m *Manager) Create() *Session {
	s := New(m.catalog, m.jobs)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.lastSeen[s.ID] = s.CreatedAt
	m.mu.Unlock()
	return s
}

// Get returns the session with id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, eris.Wrapf(ErrNotFound, "%q", id)
	}
	m.lastSeen[id] = time.Now().UTC()
	return s, nil
}

// Delete ends a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return eris.Wrapf(ErrNotFound, "%q", id)
	}
	delete(m.sessions, id)
	delete(m.lastSeen, id)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Prune drops sessions idle for longer than maxIdle and returns how many
// were removed.
func (m *Manager) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().UTC().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, seen := range m.lastSeen {
		if seen.Before(cutoff) {
			delete(m.sessions, id)
			delete(m.lastSeen, id)
			n++
		}
	}
	if n > 0 {
		zap.L().Info("session: pruned idle sessions", zap.Int("count", n), zap.Int("remaining", len(m.sessions)))
	}
	return n
}
