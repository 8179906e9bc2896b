package ratelimit

import (
	"sync"
	"time"
)

// Store counts requests per key within fixed windows. Implementations
// may be in-process (single instance) or external (multi-instance); the
// in-memory store below is only safe for single-instance deployment.
type Store interface {
	// Increment bumps the counter for key, starting a fresh window
	// expiring at now+window when none is active, and returns the
	// post-increment count together with the window reset time.
	Increment(key string, window time.Duration, now time.Time) (count int, resetAt time.Time)

	// Sweep drops entries whose window has passed to bound memory growth.
	Sweep(now time.Time)
}

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryStore is a mutex-guarded in-memory Store. Counter state is lost
// on process restart; all windows silently reset, which is acceptable
// degradation for abuse deterrence.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*entry),
	}
}

func (s *MemoryStore) Increment(key string, window time.Duration, now time.Time) (int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &entry{resetAt: now.Add(window)}
		s.entries[key] = e
	}

	e.count++
	return e.count, e.resetAt
}

func (s *MemoryStore) Sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if now.After(e.resetAt) {
			delete(s.entries, key)
		}
	}
}

// Len reports the current number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
