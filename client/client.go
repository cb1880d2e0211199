package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	adskip "github.com/heibot/adskip"
	"github.com/heibot/adskip/hooks"
	"github.com/heibot/adskip/keyword"
	"github.com/heibot/adskip/providers"
	"github.com/heibot/adskip/rules"
	"github.com/heibot/adskip/store"
	"github.com/heibot/adskip/timerange"
)

// Client is the main detection client.
type Client struct {
	store    store.Store
	hooks    hooks.Hooks
	provider providers.Provider
	matchers *keyword.Cache
	opts     Options

	mu       sync.Mutex
	activeID string
}

// New creates a new detection client.
func New(opts Options) (*Client, error) {
	if opts.Store == nil {
		return nil, adskip.ErrStoreNotConfigured
	}

	if opts.Hooks == nil {
		opts.Hooks = hooks.NopHooks{}
	}

	return &Client{
		store:    opts.Store,
		hooks:    opts.Hooks,
		provider: opts.Provider,
		matchers: keyword.NewCache(),
		opts:     opts,
	}, nil
}

// SetActive marks the video the caller currently cares about. A detection
// that started for the active video and resolves after a later SetActive
// yields a stale outcome with no side effects. Detections for videos that
// were never active, such as batch prefetch, commit normally. An empty id
// clears the guard.
func (c *Client) SetActive(videoID string) {
	c.mu.Lock()
	c.activeID = videoID
	c.mu.Unlock()
}

// Detect runs one detection: cache check, skip gates, local screening,
// and only then AI inference, followed by validation, caching, and rule
// learning for cacheable outcomes.
func (c *Client) Detect(ctx context.Context, input DetectInput) (*Outcome, error) {
	if input.Video.ID == "" {
		return nil, adskip.NewValidationError("video.id", "video id is required")
	}

	wasActive := c.isActive(input.Video.ID)

	// Cache check: hits resolve with zero provider calls either way.
	if cached, err := c.store.GetCachedRange(ctx, input.Video.ID); err == nil {
		return c.outcomeFromCache(cached), nil
	}

	if outcome := c.checkSkipGates(input); outcome != nil {
		return outcome, nil
	}

	pr, err := c.runPipeline(ctx, input)
	if err != nil {
		outcome := &Outcome{Status: adskip.StatusFailed, Route: pr.route}
		if wasActive && !c.isActive(input.Video.ID) {
			outcome.Stale = true
		} else {
			c.fireDetectionFailed(ctx, input.Video, err)
		}
		return outcome, err
	}

	outcome := &Outcome{
		Status: pr.status,
		Source: pr.source,
		Route:  pr.route,
		Result: pr.result,
	}

	// A result for the watched video that arrives after the viewer moved
	// on must not touch the cache or the rule set.
	if wasActive && !c.isActive(input.Video.ID) {
		outcome.Stale = true
		return outcome, nil
	}

	c.commit(ctx, input, outcome)
	return outcome, nil
}

// PruneCache removes cache entries older than the configured TTL.
func (c *Client) PruneCache(ctx context.Context) (int, error) {
	return c.store.PruneCacheOlderThan(ctx, c.opts.CacheTTL)
}

// outcomeFromCache maps a cache entry to an outcome. The zero-range
// sentinel records a confirmed no-ad answer.
func (c *Client) outcomeFromCache(entry *adskip.CacheEntry) *Outcome {
	if entry.IsNoAd() {
		return &Outcome{Status: adskip.StatusNoAd, Source: adskip.SourceCache}
	}
	return &Outcome{
		Status: adskip.StatusDetected,
		Source: adskip.SourceCache,
		Result: &adskip.AdDetectionResult{
			AdTimeRange: adskip.AdTimeRange{StartTime: entry.StartTime, EndTime: entry.EndTime},
			Advertiser:  entry.Advertiser,
		},
	}
}

// checkSkipGates returns a skip outcome for ineligible inputs, nil otherwise.
// Skips are never cached.
func (c *Client) checkSkipGates(input DetectInput) *Outcome {
	if !input.LoggedIn {
		return &Outcome{Status: adskip.StatusSkipped, SkipReason: adskip.SkipNotLoggedIn}
	}
	if input.Video.Duration < c.opts.IgnoreShorterThan {
		return &Outcome{Status: adskip.StatusSkipped, SkipReason: adskip.SkipTooShort}
	}
	if c.opts.IgnoreLongerThan > 0 && input.Video.Duration > c.opts.IgnoreLongerThan {
		return &Outcome{Status: adskip.StatusSkipped, SkipReason: adskip.SkipTooLong}
	}
	return nil
}

func (c *Client) isActive(videoID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeID != "" && c.activeID == videoID
}

// commit applies the side effects of a resolved, non-stale detection:
// cache write for confirmed answers, rule learning for named advertisers,
// and hooks. Failures and skips never reach here.
func (c *Client) commit(ctx context.Context, input DetectInput, outcome *Outcome) {
	switch outcome.Status {
	case adskip.StatusDetected:
		entry := adskip.CacheEntry{
			StartTime:  outcome.Result.StartTime,
			EndTime:    outcome.Result.EndTime,
			Advertiser: outcome.Result.Advertiser,
			CreatedAt:  c.store.Now().Unix(),
		}
		// Best effort: a missed cache write means one redundant re-detection.
		_ = c.store.SetCachedRange(ctx, input.Video.ID, entry)

		if outcome.Result.Advertiser != "" {
			c.learnAdvertiser(ctx, outcome.Result.Advertiser)
		}

		c.hooks.OnAdDetected(ctx, hooks.AdDetectedEvent{
			Video:     input.Video,
			Result:    *outcome.Result,
			Source:    outcome.Source,
			Route:     outcome.Route,
			Timestamp: time.Now(),
		})

	case adskip.StatusNoAd:
		// Zero-range sentinel so the next lookup short-circuits too.
		_ = c.store.SetCachedRange(ctx, input.Video.ID, adskip.CacheEntry{
			CreatedAt: c.store.Now().Unix(),
		})

		c.hooks.OnNoAdConfirmed(ctx, hooks.NoAdConfirmedEvent{
			Video:     input.Video,
			Source:    outcome.Source,
			Route:     outcome.Route,
			Timestamp: time.Now(),
		})
	}
}

// learnAdvertiser records one advertiser sighting with a read-modify-write
// over the stored rule set.
func (c *Client) learnAdvertiser(ctx context.Context, advertiser string) {
	current, err := c.store.GetRules(ctx)
	if err != nil {
		return
	}

	existing := false
	for _, r := range current {
		if r.Keyword == advertiser {
			existing = true
			break
		}
	}

	updated := rules.RecordSighting(current, advertiser)
	if err := c.store.SetRules(ctx, updated); err != nil {
		return
	}

	c.hooks.OnRuleLearned(ctx, hooks.RuleLearnedEvent{
		Advertiser: advertiser,
		RuleCount:  len(updated),
		Existing:   existing,
		Timestamp:  time.Now(),
	})
}

func (c *Client) fireDetectionFailed(ctx context.Context, video adskip.VideoInfo, err error) {
	c.hooks.OnDetectionFailed(ctx, hooks.DetectionFailedEvent{
		Video:     video,
		Category:  adskip.GetErrorCategory(err),
		Err:       err,
		Timestamp: time.Now(),
	})
}

// callProvider runs the optional connectivity probe and one inference
// call, each under its own deadline, and validates the response.
func (c *Client) callProvider(ctx context.Context, input DetectInput, text string) (*adskip.AdDetectionResult, error) {
	if c.provider == nil {
		return nil, adskip.ErrProviderNotFound
	}

	if c.opts.CheckConnectivity {
		probeTimeout := c.opts.ConnectivityTimeout
		if probeTimeout <= 0 {
			probeTimeout = adskip.DefaultConnectivityTimeout
		}
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := c.provider.CheckConnectivity(probeCtx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("connectivity check failed: %w", err)
		}
	}

	inferTimeout := c.opts.InferenceTimeout
	if inferTimeout <= 0 {
		inferTimeout = adskip.DefaultInferenceTimeout
	}
	inferCtx, cancel := context.WithTimeout(ctx, inferTimeout)
	defer cancel()

	raw, err := c.provider.Generate(inferCtx, providers.Request{
		System:  providers.SystemPrompt,
		User:    providers.BuildUserPrompt(input.Video.Title, input.Video.Description, text),
		VideoID: input.Video.ID,
	})
	if err != nil {
		return nil, err
	}

	return timerange.FromAIResponse(c.provider.Name(), raw)
}
