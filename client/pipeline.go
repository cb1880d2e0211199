package client

import (
	"context"
	"sort"

	adskip "github.com/heibot/adskip"
	"github.com/heibot/adskip/keyword"
	"github.com/heibot/adskip/textnorm"
	"github.com/heibot/adskip/timerange"
)

// pipelineResult carries the resolution of the screening and inference
// stages, before side effects are applied.
type pipelineResult struct {
	status adskip.DetectStatus
	source adskip.DetectSource
	route  adskip.Route
	result *adskip.AdDetectionResult
}

// runPipeline executes route selection, local screening, and when the
// screen is inconclusive, AI inference. It performs no writes.
func (c *Client) runPipeline(ctx context.Context, input DetectInput) (pipelineResult, error) {
	learned, err := c.store.GetRules(ctx)
	if err != nil {
		return pipelineResult{}, err
	}
	matcher := c.matchers.Get(learned, input.DisabledBuiltins)

	if len(input.Captions) > 0 {
		return c.runCaptionRoute(ctx, input, matcher)
	}
	return c.runCommentRoute(ctx, input, matcher)
}

// runCaptionRoute screens the subtitle track. A dense keyword cluster
// resolves locally; otherwise the compressed track goes to the AI.
func (c *Client) runCaptionRoute(ctx context.Context, input DetectInput, matcher *keyword.Matcher) (pipelineResult, error) {
	pr := pipelineResult{route: adskip.RouteCaptions}

	hitSpans, hits := matcher.ScanSpans(input.Captions)

	if w, dense := keyword.FindDenseWindow(hits, c.opts.Screen.DenseWindowSeconds, c.opts.Screen.DenseMinHits); dense {
		inWindow := spansWithin(hitSpans, w.Start, w.End)
		r, err := timerange.FromDenseHits(inWindow)
		if err == nil {
			pr.status = adskip.StatusDetected
			pr.source = adskip.SourceKeyword
			pr.result = &adskip.AdDetectionResult{AdTimeRange: r}
			return pr, nil
		}
		// A degenerate window falls through to the AI.
	}

	compressed := textnorm.Compress(input.Captions, textnorm.CompressOptions{
		WindowSeconds: c.opts.Screen.CompressWindowSeconds,
		FillerWords:   c.opts.Screen.FillerWords,
	})
	if compressed == "" {
		// Filler-only track, nothing an ad could hide in.
		pr.status = adskip.StatusNoAd
		pr.source = adskip.SourceKeyword
		return pr, nil
	}

	return c.resolveWithAI(ctx, input, pr, compressed)
}

// runCommentRoute screens the timed comment stream. Zero hits confirm the
// absence of an ad without an AI call; any hit sends the surrounding
// comment windows to the AI.
func (c *Client) runCommentRoute(ctx context.Context, input DetectInput, matcher *keyword.Matcher) (pipelineResult, error) {
	pr := pipelineResult{route: adskip.RouteComments}

	if input.Video.CommentTrackID == 0 {
		return pr, adskip.NewUpstreamDataError("comment_track", "no resolvable comment track id").
			WithCause(adskip.ErrNoTrackID)
	}
	if len(input.Comments) == 0 {
		pr.status = adskip.StatusNoAd
		pr.source = adskip.SourceComments
		return pr, nil
	}

	hits := matcher.Scan(input.Comments)
	if len(hits) == 0 {
		pr.status = adskip.StatusNoAd
		pr.source = adskip.SourceComments
		return pr, nil
	}

	windows := mergeWindows(hits, c.opts.Screen.CommentWindowSeconds)
	nearby := commentsWithin(input.Comments, windows)
	text := textnorm.FormatComments(nearby)

	return c.resolveWithAI(ctx, input, pr, text)
}

// resolveWithAI delegates to the provider and maps the validated response
// onto a terminal status.
func (c *Client) resolveWithAI(ctx context.Context, input DetectInput, pr pipelineResult, text string) (pipelineResult, error) {
	result, err := c.callProvider(ctx, input, text)
	if err != nil {
		return pr, err
	}

	pr.source = adskip.SourceAI
	if result == nil {
		pr.status = adskip.StatusNoAd
		return pr, nil
	}
	pr.status = adskip.StatusDetected
	pr.result = result
	return pr, nil
}

// window is a closed interval of video time.
type window struct {
	start float64
	end   float64
}

// mergeWindows builds symmetric context windows around hit timestamps and
// merges overlapping ones, clamping at zero.
func mergeWindows(hits []float64, halfWidth float64) []window {
	sorted := make([]float64, len(hits))
	copy(sorted, hits)
	sort.Float64s(sorted)

	var merged []window
	for _, h := range sorted {
		start := h - halfWidth
		if start < 0 {
			start = 0
		}
		w := window{start: start, end: h + halfWidth}

		if n := len(merged); n > 0 && w.start <= merged[n-1].end {
			if w.end > merged[n-1].end {
				merged[n-1].end = w.end
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

// commentsWithin returns the comments falling inside any window, in input
// order.
func commentsWithin(comments []adskip.TimedText, windows []window) []adskip.TimedText {
	var selected []adskip.TimedText
	for _, cm := range comments {
		for _, w := range windows {
			if cm.Time >= w.start && cm.Time <= w.end {
				selected = append(selected, cm)
				break
			}
		}
	}
	return selected
}

// spansWithin returns the caption spans starting inside [start, end].
func spansWithin(spans []adskip.TimedSpanText, start, end float64) []adskip.TimedSpanText {
	var selected []adskip.TimedSpanText
	for _, s := range spans {
		if s.From >= start && s.From <= end {
			selected = append(selected, s)
		}
	}
	return selected
}
