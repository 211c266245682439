package abuse

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the default process-local state store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	// nowFn is swappable for tests.
	nowFn func() time.Time
}

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), nowFn: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, key string) (State, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return State{}, false, nil
	}
	return entry.state, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, state State, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{state: state, expiresAt: s.nowFn().Add(ttl)}
	return nil
}

func (s *MemoryStore) Prune(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pruned := 0
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) && !now.Before(entry.state.BlockedUntil) {
			delete(s.entries, key)
			pruned++
		}
	}
	return pruned, nil
}

func (s *MemoryStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
