// Package store provides the data storage interface for detection results
// and learned rules.
package store

import (
	"context"
	"time"

	adskip "github.com/heibot/adskip"
)

// Store defines the interface for adskip data storage.
//
// Cache entries follow the no-ad sentinel contract: an entry whose start
// and end are both zero records a confirmed absence of an ad, so cache
// hits can short-circuit detection either way.
type Store interface {
	// Cache operations
	GetCachedRange(ctx context.Context, videoID string) (*adskip.CacheEntry, error)
	SetCachedRange(ctx context.Context, videoID string, entry adskip.CacheEntry) error
	PruneCacheOlderThan(ctx context.Context, ttl time.Duration) (removed int, err error)

	// Learned rule operations
	GetRules(ctx context.Context) ([]adskip.KeywordRule, error)
	SetRules(ctx context.Context, rules []adskip.KeywordRule) error

	// Utility
	Now() time.Time

	// Health check
	Ping(ctx context.Context) error
	Close() error
}
