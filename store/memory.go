package store

import (
	"context"
	"sync"
	"time"

	adskip "github.com/heibot/adskip"
)

// MemoryStore is an in-memory Store for tests and single-process use.
type MemoryStore struct {
	mu    sync.RWMutex
	cache map[string]adskip.CacheEntry
	rules []adskip.KeywordRule
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: make(map[string]adskip.CacheEntry),
	}
}

// GetCachedRange returns the cached entry for a video, or ErrCacheMiss.
func (s *MemoryStore) GetCachedRange(ctx context.Context, videoID string) (*adskip.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.cache[videoID]
	if !ok {
		return nil, adskip.ErrCacheMiss
	}
	e := entry
	return &e, nil
}

// SetCachedRange stores a cache entry for a video.
func (s *MemoryStore) SetCachedRange(ctx context.Context, videoID string, entry adskip.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}
	s.cache[videoID] = entry
	return nil
}

// PruneCacheOlderThan removes entries created before now-ttl.
func (s *MemoryStore) PruneCacheOlderThan(ctx context.Context, ttl time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-ttl).Unix()
	removed := 0
	for id, entry := range s.cache {
		if entry.CreatedAt < cutoff {
			delete(s.cache, id)
			removed++
		}
	}
	return removed, nil
}

// GetRules returns a copy of the learned rule set.
func (s *MemoryStore) GetRules(ctx context.Context) ([]adskip.KeywordRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules := make([]adskip.KeywordRule, len(s.rules))
	copy(rules, s.rules)
	return rules, nil
}

// SetRules replaces the learned rule set.
func (s *MemoryStore) SetRules(ctx context.Context, rules []adskip.KeywordRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rules = make([]adskip.KeywordRule, len(rules))
	copy(s.rules, rules)
	return nil
}

// Now returns the current time.
func (s *MemoryStore) Now() time.Time {
	return time.Now()
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
