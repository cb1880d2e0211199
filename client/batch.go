package client

import (
	"context"
	"sync"

	adskip "github.com/heibot/adskip"
)

// BatchItemResult is the outcome of one item in a batch detection.
type BatchItemResult struct {
	VideoID string
	Outcome *Outcome
	Err     error
}

// DetectBatchInput is the input for a batch detection.
type DetectBatchInput struct {
	// Items are the independent detections to run.
	Items []DetectInput

	// Concurrency bounds the number of detections in flight. Default: 4.
	Concurrency int
}

// DetectBatchResult aggregates per-video outcomes.
type DetectBatchResult struct {
	// Results maps video ID to its result.
	Results map[string]*BatchItemResult

	// Counters over terminal states.
	DetectedCount int
	NoAdCount     int
	SkippedCount  int
	FailedCount   int
}

// DetectBatch runs independent detections for several videos with bounded
// concurrency, the prefetch case when a viewer queues up several videos.
// Each item resolves on its own; one failure does not abort the batch.
func (c *Client) DetectBatch(ctx context.Context, input DetectBatchInput) (*DetectBatchResult, error) {
	if len(input.Items) == 0 {
		return nil, adskip.ErrNoInput
	}

	concurrency := input.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	if concurrency > len(input.Items) {
		concurrency = len(input.Items)
	}

	results := make([]*BatchItemResult, len(input.Items))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, item := range input.Items {
		wg.Add(1)
		go func(i int, item DetectInput) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcome, err := c.Detect(ctx, item)
			results[i] = &BatchItemResult{
				VideoID: item.Video.ID,
				Outcome: outcome,
				Err:     err,
			}
		}(i, item)
	}
	wg.Wait()

	out := &DetectBatchResult{Results: make(map[string]*BatchItemResult, len(results))}
	for _, r := range results {
		out.Results[r.VideoID] = r
		if r.Err != nil || r.Outcome == nil {
			out.FailedCount++
			continue
		}
		switch r.Outcome.Status {
		case adskip.StatusDetected:
			out.DetectedCount++
		case adskip.StatusNoAd:
			out.NoAdCount++
		case adskip.StatusSkipped:
			out.SkippedCount++
		default:
			out.FailedCount++
		}
	}
	return out, nil
}
