// Package textnorm reduces raw caption and comment volume before it is sent
// to a metered AI model, without discarding the timing precision needed for
// range resolution.
package textnorm

import (
	"fmt"
	"math"
	"sort"
	"strings"

	adskip "github.com/heibot/adskip"
)

// DefaultFillerWords are pure filler entries dropped during compression.
var DefaultFillerWords = []string{
	"嗯", "啊", "哦", "呃", "哎", "唉", "嘛", "呀",
	"嗯嗯", "啊啊", "哈哈", "哈哈哈", "嘿嘿", "哇",
}

// CompressOptions configures Compress.
type CompressOptions struct {
	// WindowSeconds is the fixed window size captions are grouped into.
	WindowSeconds float64

	// FillerWords are entries dropped entirely when a caption consists of
	// nothing else. Nil means DefaultFillerWords.
	FillerWords []string
}

// DefaultCompressOptions returns the default compression options.
func DefaultCompressOptions() CompressOptions {
	return CompressOptions{
		WindowSeconds: adskip.DefaultCompressWindowSeconds,
		FillerWords:   DefaultFillerWords,
	}
}

// Compress groups captions into fixed-size time windows, drops filler-only
// entries, removes immediately-adjacent duplicates within a window, and
// serializes each window as "[start-end s]: a，b，c". Windows are joined by
// "; ". Deterministic for a given input and filler set. Empty or
// filler-only input yields "".
func Compress(captions []adskip.TimedSpanText, opts CompressOptions) string {
	if len(captions) == 0 {
		return ""
	}
	if opts.WindowSeconds <= 0 {
		opts.WindowSeconds = adskip.DefaultCompressWindowSeconds
	}
	fillers := opts.FillerWords
	if fillers == nil {
		fillers = DefaultFillerWords
	}
	fillerSet := make(map[string]struct{}, len(fillers))
	for _, f := range fillers {
		fillerSet[f] = struct{}{}
	}

	// Group trimmed non-filler entries by window index, preserving input order.
	byWindow := make(map[int][]string)
	var order []int
	for _, c := range captions {
		trimmed := strings.TrimSpace(c.Content)
		if trimmed == "" {
			continue
		}
		if _, filler := fillerSet[trimmed]; filler {
			continue
		}
		idx := int(math.Floor(c.From / opts.WindowSeconds))
		if _, ok := byWindow[idx]; !ok {
			order = append(order, idx)
		}
		byWindow[idx] = append(byWindow[idx], trimmed)
	}
	if len(byWindow) == 0 {
		return ""
	}

	sort.Ints(order)

	parts := make([]string, 0, len(order))
	for _, idx := range order {
		start := float64(idx) * opts.WindowSeconds
		end := start + opts.WindowSeconds

		// Remove adjacent duplicates inside the window.
		var deduped []string
		for _, content := range byWindow[idx] {
			if len(deduped) == 0 || deduped[len(deduped)-1] != content {
				deduped = append(deduped, content)
			}
		}

		parts = append(parts, fmt.Sprintf("[%s-%ss]: %s",
			formatSeconds(start), formatSeconds(end), strings.Join(deduped, "，")))
	}

	return strings.Join(parts, "; ")
}

// FormatCaptions renders captions one entry at a time as "[from-to]:content"
// joined by ";". Used when entries are few enough not to need compression.
func FormatCaptions(entries []adskip.TimedSpanText) string {
	if len(entries) == 0 {
		return ""
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("[%s-%s]:%s",
			formatSeconds(e.From), formatSeconds(e.To), e.Content))
	}
	return strings.Join(parts, ";")
}

// FormatComments renders point-in-time comments as "[<t>s] content" joined
// by "; ", with the timestamp rounded to the nearest second.
func FormatComments(entries []adskip.TimedText) string {
	if len(entries) == 0 {
		return ""
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("[%.0fs] %s", e.Time, e.Content))
	}
	return strings.Join(parts, "; ")
}

// formatSeconds prints a timestamp without a trailing ".0" for whole seconds.
func formatSeconds(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
