package erp

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SessionStore keeps sessions and serializes work on each of them.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	// Do runs fn while holding the session's lock.
	Do(ctx context.Context, id string, fn func(*Session) error) error
	Delete(ctx context.Context, id string) error
}

// InMemorySessionStore is a concurrency-safe store with idle expiry.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

type sessionEntry struct {
	mu      sync.Mutex
	session *Session
}

// NewInMemorySessionStore creates a store. A non-positive ttl keeps sessions forever.
func NewInMemorySessionStore(ttl time.Duration) *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create stores the session and sweeps idle ones.
func (s *InMemorySessionStore) Create(_ context.Context, session *Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("erp: session id is required")
	}
	now := s.now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.TouchedAt = now
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	s.sessions[session.ID] = &sessionEntry{session: session}
	return nil
}

// Do runs fn against the session, refreshing its idle timer.
func (s *InMemorySessionStore) Do(_ context.Context, id string, fn func(*Session) error) error {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSession, id)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	now := s.now()
	if s.expired(entry.session, now) {
		return fmt.Errorf("%w: %q expired", ErrUnknownSession, id)
	}
	entry.session.TouchedAt = now
	return fn(entry.session)
}

// Delete removes a session. Unknown ids are ignored.
func (s *InMemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Len reports the number of stored sessions, expired ones included until swept.
func (s *InMemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *InMemorySessionStore) sweepLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, entry := range s.sessions {
		if !entry.mu.TryLock() {
			continue
		}
		if s.expired(entry.session, now) {
			delete(s.sessions, id)
		}
		entry.mu.Unlock()
	}
}

func (s *InMemorySessionStore) expired(session *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(session.TouchedAt) > s.ttl
}
