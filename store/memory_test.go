package store

import (
	"context"
	"errors"
	"testing"
	"time"

	adskip "github.com/heibot/adskip"
)

func TestMemoryStore_CacheRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.GetCachedRange(ctx, "BV1xx"); !errors.Is(err, adskip.ErrCacheMiss) {
		t.Fatalf("empty store GetCachedRange() error = %v, want ErrCacheMiss", err)
	}

	entry := adskip.CacheEntry{StartTime: 120, EndTime: 180, Advertiser: "某品牌"}
	if err := s.SetCachedRange(ctx, "BV1xx", entry); err != nil {
		t.Fatalf("SetCachedRange() error = %v", err)
	}

	got, err := s.GetCachedRange(ctx, "BV1xx")
	if err != nil {
		t.Fatalf("GetCachedRange() error = %v", err)
	}
	if got.StartTime != 120 || got.EndTime != 180 || got.Advertiser != "某品牌" {
		t.Errorf("entry = %+v", got)
	}
	if got.CreatedAt == 0 {
		t.Error("CreatedAt not backfilled")
	}
}

func TestMemoryStore_NoAdSentinel(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.SetCachedRange(ctx, "BV2yy", adskip.CacheEntry{}); err != nil {
		t.Fatalf("SetCachedRange() error = %v", err)
	}

	got, err := s.GetCachedRange(ctx, "BV2yy")
	if err != nil {
		t.Fatalf("GetCachedRange() error = %v", err)
	}
	if !got.IsNoAd() {
		t.Errorf("IsNoAd() = false for %+v", got)
	}
}

func TestMemoryStore_Prune(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	old := adskip.CacheEntry{StartTime: 10, EndTime: 20, CreatedAt: time.Now().Add(-4 * 24 * time.Hour).Unix()}
	fresh := adskip.CacheEntry{StartTime: 30, EndTime: 40, CreatedAt: time.Now().Unix()}
	s.SetCachedRange(ctx, "old", old)
	s.SetCachedRange(ctx, "fresh", fresh)

	removed, err := s.PruneCacheOlderThan(ctx, adskip.DefaultCacheTTL)
	if err != nil {
		t.Fatalf("PruneCacheOlderThan() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := s.GetCachedRange(ctx, "old"); !errors.Is(err, adskip.ErrCacheMiss) {
		t.Error("old entry survived pruning")
	}
	if _, err := s.GetCachedRange(ctx, "fresh"); err != nil {
		t.Error("fresh entry was pruned")
	}
}

func TestMemoryStore_Rules(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rules := []adskip.KeywordRule{
		{Keyword: "某品牌", Pattern: "某品牌", HitCount: 1, AddedAt: 100},
	}
	if err := s.SetRules(ctx, rules); err != nil {
		t.Fatalf("SetRules() error = %v", err)
	}

	got, err := s.GetRules(ctx)
	if err != nil {
		t.Fatalf("GetRules() error = %v", err)
	}
	if len(got) != 1 || got[0].Keyword != "某品牌" {
		t.Errorf("rules = %+v", got)
	}

	// Returned slice must be a copy.
	got[0].HitCount = 99
	again, _ := s.GetRules(ctx)
	if again[0].HitCount != 1 {
		t.Error("GetRules() leaked internal slice")
	}
}
