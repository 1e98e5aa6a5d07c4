package routecache

import (
	"context"
	"sync"
	"time"

	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/routing"
)

type entry struct {
	selection routing.Selection
	expiresAt time.Time
}

// MemoryStore is an in-memory route cache for tests/dev and as the fallback
// when valkey is disabled.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewMemoryStore constructs a cache backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry)}
}

// Get implements routing.Cache.
func (s *MemoryStore) Get(_ context.Context, key string) (routing.Selection, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return routing.Selection{}, false, nil
	}
	if hasExpired(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return routing.Selection{}, false, nil
	}
	return e.selection, true, nil
}

// Save stores the selection with optional TTL.
func (s *MemoryStore) Save(_ context.Context, key string, sel routing.Selection, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{selection: sel, expiresAt: exp}
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ routing.Cache = (*MemoryStore)(nil)
