// Package cache provides the process-wide memo store for acquired
// datasets: a key-value cache with per-entry expiry and an explicit
// Clear for the user-triggered refresh action.
package cache

import (
	"sync"
	"time"
)

// entry is one cached value. A zero ExpiresAt means the entry never
// expires and survives until the next Clear.
type entry struct {
	Value     interface{}
	CachedAt  time.Time
	ExpiresAt time.Time
}

// Store is a TTL cache keyed by caller-chosen strings. It is safe for
// concurrent use, though the dashboard pipeline has a single reader per
// page render.
type Store struct {
	entries   map[string]entry
	mutex     sync.RWMutex
	hitCount  int64
	missCount int64
	stopChan  chan struct{}
	stopOnce  sync.Once
}

// NewStore creates a new store and starts its background sweep of
// expired entries.
func NewStore() *Store {
	s := &Store{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	go s.cleanup()

	return s
}

// Get retrieves a cached value. Expired entries count as misses.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	e, exists := s.entries[key]
	if !exists || (!e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)) {
		s.missCount++
		return nil, false
	}

	s.hitCount++
	return e.Value, true
}

// Set stores a value with the given time-to-live. A non-positive ttl
// stores the entry without expiry.
func (s *Store) Set(key string, value interface{}, ttl time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	e := entry{
		Value:    value,
		CachedAt: time.Now(),
	}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	s.entries[key] = e
}

// Clear drops every entry. The manual refresh action invalidates the
// whole cache uniformly rather than selecting entries.
func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.entries = make(map[string]entry)
}

// Stats returns cache statistics for diagnostics.
func (s *Store) Stats() map[string]interface{} {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	total := s.hitCount + s.missCount
	hitRatio := float64(0)
	if total > 0 {
		hitRatio = float64(s.hitCount) / float64(total)
	}

	return map[string]interface{}{
		"entries":    len(s.entries),
		"hit_count":  s.hitCount,
		"miss_count": s.missCount,
		"hit_ratio":  hitRatio,
	}
}

// Stop gracefully stops the background sweep.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

func (s *Store) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mutex.Lock()
			now := time.Now()
			for key, e := range s.entries {
				if !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt) {
					delete(s.entries, key)
				}
			}
			s.mutex.Unlock()
		case <-s.stopChan:
			return
		}
	}
}
